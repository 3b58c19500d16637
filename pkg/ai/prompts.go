package ai

import (
	"encoding/json"
	"fmt"

	"resume-builder/internal/domain"
)

// Temperatures per call shape. Career chat runs warmer for more varied prose.
const (
	TemperatureDefault = 0.7
	TemperatureChat    = 0.8
)

func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// SummaryPrompt asks for a professional summary paragraph built from the
// document's personal info, experience, education and skills.
func SummaryPrompt(doc *domain.Document) []Message {
	prompt := fmt.Sprintf(`Create a professional resume summary based on the following information:

Name: %s
Job Title: %s
Experience: %s
Education: %s
Skills: %s

Please write a concise, professional summary paragraph (3-5 sentences) highlighting key qualifications, experience, and career goals.`,
		doc.Personal.FullName,
		doc.Personal.JobTitle,
		mustJSON(doc.Experience),
		mustJSON(doc.Education),
		mustJSON(doc.Skills),
	)

	return []Message{
		{Role: RoleSystem, Content: "You are a professional resume writer who creates compelling, concise resume summaries."},
		{Role: RoleUser, Content: prompt},
	}
}

// SectionSuggestionsPrompt asks for three concrete improvements to one
// section's content.
func SectionSuggestionsPrompt(section domain.Section, content string) []Message {
	prompt := fmt.Sprintf(`Review the following %s section of a resume:

%s

Please provide 3 specific suggestions to improve this section. Focus on:
- Better wording and clarity
- Highlighting achievements
- Strengthening impact
- Using action verbs and metrics

Format your response as a numbered list with clear, actionable suggestions.`, section, content)

	return []Message{
		{Role: RoleSystem, Content: "You are a professional resume coach who provides helpful, specific feedback to improve resumes."},
		{Role: RoleUser, Content: prompt},
	}
}

// ReviewPrompt asks for a full-resume review.
func ReviewPrompt(doc *domain.Document) []Message {
	prompt := fmt.Sprintf(`Please review the following resume and provide constructive feedback:

Name: %s
Job Title: %s
Summary: %s
Experience: %s
Education: %s
Skills: %s
Projects: %s
Certifications: %s

Please provide:
1. Overall assessment (strengths, weaknesses)
2. Section-by-section review with specific improvement suggestions
3. Three key action items to make the resume more effective`,
		doc.Personal.FullName,
		doc.Personal.JobTitle,
		doc.Summary,
		mustJSON(doc.Experience),
		mustJSON(doc.Education),
		mustJSON(doc.Skills),
		mustJSON(doc.Projects),
		mustJSON(doc.Certifications),
	)

	return []Message{
		{Role: RoleSystem, Content: "You are a professional resume reviewer with years of experience in HR and recruiting across multiple industries. Provide helpful, specific feedback focused on improving the resume's effectiveness."},
		{Role: RoleUser, Content: prompt},
	}
}

// CareerAdvicePrompt builds an open-ended career-advice chat turn, with
// resume context appended when a document is supplied.
func CareerAdvicePrompt(query string, doc *domain.Document) []Message {
	prompt := fmt.Sprintf(`The user is asking for career advice: %q

Please provide helpful, specific career advice responding to this query.`, query)

	if doc != nil {
		prompt += fmt.Sprintf(`

Here is some context from their resume:
Name: %s
Job Title: %s
Experience: %s
Education: %s
Skills: %s`,
			doc.Personal.FullName,
			doc.Personal.JobTitle,
			mustJSON(doc.Experience),
			mustJSON(doc.Education),
			mustJSON(doc.Skills),
		)
	}

	return []Message{
		{Role: RoleSystem, Content: "You are a professional career counselor who provides thoughtful, tailored career advice. Be supportive, specific, and action-oriented in your responses."},
		{Role: RoleUser, Content: prompt},
	}
}
