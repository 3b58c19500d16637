package domain

import (
	"time"

	"github.com/google/uuid"
)

// Section identifies one slice of the resume document. Sections are edited
// one at a time and committed in the fixed wizard order below.
type Section string

const (
	SectionPersonal       Section = "personal"
	SectionSummary        Section = "summary"
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionSkills         Section = "skills"
	SectionCertifications Section = "certifications"
	SectionProjects       Section = "projects"
)

// SectionOrder is the wizard order. Committing a section advances the active
// section to its successor; the last section has none.
var SectionOrder = []Section{
	SectionPersonal,
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionCertifications,
	SectionProjects,
}

// Next returns the successor of s in the wizard order, or s itself when s is
// the last section or unknown.
func (s Section) Next() Section {
	for i, sec := range SectionOrder {
		if sec == s && i < len(SectionOrder)-1 {
			return SectionOrder[i+1]
		}
	}
	return s
}

// Valid reports whether s names a known section.
func (s Section) Valid() bool {
	for _, sec := range SectionOrder {
		if sec == s {
			return true
		}
	}
	return false
}

type TemplateID string

const (
	TemplateSimple TemplateID = "simple"
	TemplateModern TemplateID = "modern"
)

func (t TemplateID) Valid() bool {
	return t == TemplateSimple || t == TemplateModern
}

type Personal struct {
	FullName string `json:"fullName,omitempty"`
	JobTitle string `json:"jobTitle,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedIn,omitempty"`
}

func (p Personal) Empty() bool {
	return p == Personal{}
}

type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current,omitempty"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current,omitempty"`
	Description string `json:"description,omitempty"`
}

type SkillCategory struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

type Certification struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Issuer      string `json:"issuer,omitempty"`
	Date        string `json:"date,omitempty"`
	Expiration  string `json:"expiration,omitempty"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}

type Project struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role,omitempty"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate,omitempty"`
	Current      bool   `json:"current,omitempty"`
	URL          string `json:"url,omitempty"`
	Description  string `json:"description,omitempty"`
	Technologies string `json:"technologies,omitempty"`
}

// Document is the full nested record a user is building. List sections keep
// insertion order; entry ids are generated at creation and never reused.
type Document struct {
	Personal       Personal        `json:"personal,omitempty"`
	Summary        string          `json:"summary,omitempty"`
	Experience     []Experience    `json:"experience,omitempty"`
	Education      []Education     `json:"education,omitempty"`
	Skills         []SkillCategory `json:"skills,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
	Projects       []Project       `json:"projects,omitempty"`
}

// SectionEmpty reports whether section s is in its empty / default state.
func (d *Document) SectionEmpty(s Section) bool {
	switch s {
	case SectionPersonal:
		return d.Personal.Empty()
	case SectionSummary:
		return d.Summary == ""
	case SectionExperience:
		return len(d.Experience) == 0
	case SectionEducation:
		return len(d.Education) == 0
	case SectionSkills:
		return len(d.Skills) == 0
	case SectionCertifications:
		return len(d.Certifications) == 0
	case SectionProjects:
		return len(d.Projects) == 0
	}
	return true
}

// Empty reports whether every section is in its default state.
func (d *Document) Empty() bool {
	for _, s := range SectionOrder {
		if !d.SectionEmpty(s) {
			return false
		}
	}
	return true
}

// Title derives the stored resume title from the person's name.
func (d *Document) Title() string {
	if d.Personal.FullName != "" {
		return d.Personal.FullName + "'s Resume"
	}
	return "New Resume"
}

// Record is a stored resume row, keyed by id and owned by a user.
type Record struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Title      string     `json:"title"`
	Content    Document   `json:"content"`
	TemplateID TemplateID `json:"template_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewEntryID returns a fresh locally-unique id for a list entry.
func NewEntryID() string {
	return uuid.New().String()
}
