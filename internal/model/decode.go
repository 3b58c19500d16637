package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"resume-builder/internal/domain"
)

// SectionValue is a decoded, typed section payload. Exactly one field is set,
// matching Section.
type SectionValue struct {
	Section        domain.Section
	Personal       *domain.Personal
	Summary        *string
	Experience     []domain.Experience
	Education      []domain.Education
	Skills         []domain.SkillCategory
	Certifications []domain.Certification
	Projects       []domain.Project
}

func strictDecode(raw []byte, out interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

// DecodeSection decodes a committed payload into the tagged value for the
// named section. Unknown sections and mistyped payloads are rejected; empty
// values are allowed. List entries arriving without an id are assigned one,
// so every stored entry has a stable key.
func DecodeSection(section domain.Section, raw []byte) (SectionValue, error) {
	v := SectionValue{Section: section}
	switch section {
	case domain.SectionPersonal:
		var p domain.Personal
		if err := strictDecode(raw, &p); err != nil {
			return v, fmt.Errorf("decode personal: %w", err)
		}
		v.Personal = &p
	case domain.SectionSummary:
		var s string
		if err := strictDecode(raw, &s); err != nil {
			return v, fmt.Errorf("decode summary: %w", err)
		}
		v.Summary = &s
	case domain.SectionExperience:
		var list []domain.Experience
		if err := strictDecode(raw, &list); err != nil {
			return v, fmt.Errorf("decode experience: %w", err)
		}
		for i := range list {
			if list[i].ID == "" {
				list[i].ID = domain.NewEntryID()
			}
		}
		v.Experience = list
	case domain.SectionEducation:
		var list []domain.Education
		if err := strictDecode(raw, &list); err != nil {
			return v, fmt.Errorf("decode education: %w", err)
		}
		for i := range list {
			if list[i].ID == "" {
				list[i].ID = domain.NewEntryID()
			}
		}
		v.Education = list
	case domain.SectionSkills:
		var list []domain.SkillCategory
		if err := strictDecode(raw, &list); err != nil {
			return v, fmt.Errorf("decode skills: %w", err)
		}
		for i := range list {
			if list[i].ID == "" {
				list[i].ID = domain.NewEntryID()
			}
		}
		v.Skills = list
	case domain.SectionCertifications:
		var list []domain.Certification
		if err := strictDecode(raw, &list); err != nil {
			return v, fmt.Errorf("decode certifications: %w", err)
		}
		for i := range list {
			if list[i].ID == "" {
				list[i].ID = domain.NewEntryID()
			}
		}
		v.Certifications = list
	case domain.SectionProjects:
		var list []domain.Project
		if err := strictDecode(raw, &list); err != nil {
			return v, fmt.Errorf("decode projects: %w", err)
		}
		for i := range list {
			if list[i].ID == "" {
				list[i].ID = domain.NewEntryID()
			}
		}
		v.Projects = list
	default:
		return v, fmt.Errorf("unknown section %q", section)
	}
	return v, nil
}

// Apply replaces the section's slot in the document with the decoded value.
// Last commit per key always wins.
func (v SectionValue) Apply(doc *domain.Document) {
	switch v.Section {
	case domain.SectionPersonal:
		doc.Personal = *v.Personal
	case domain.SectionSummary:
		doc.Summary = *v.Summary
	case domain.SectionExperience:
		doc.Experience = v.Experience
	case domain.SectionEducation:
		doc.Education = v.Education
	case domain.SectionSkills:
		doc.Skills = v.Skills
	case domain.SectionCertifications:
		doc.Certifications = v.Certifications
	case domain.SectionProjects:
		doc.Projects = v.Projects
	}
}
