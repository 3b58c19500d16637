package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionNext(t *testing.T) {
	assert.Equal(t, SectionSummary, SectionPersonal.Next())
	assert.Equal(t, SectionExperience, SectionSummary.Next())
	assert.Equal(t, SectionProjects, SectionProjects.Next(), "last section has no successor")
	assert.Equal(t, Section("bogus"), Section("bogus").Next())
}

func TestSectionValid(t *testing.T) {
	for _, s := range SectionOrder {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Section("hobbies").Valid())
}

func TestDocumentSectionEmpty(t *testing.T) {
	var doc Document
	assert.True(t, doc.Empty())
	for _, s := range SectionOrder {
		assert.True(t, doc.SectionEmpty(s), string(s))
	}

	doc.Skills = []SkillCategory{{ID: "1", Name: "Languages"}}
	assert.False(t, doc.SectionEmpty(SectionSkills))
	assert.False(t, doc.Empty())
	assert.True(t, doc.SectionEmpty(SectionPersonal))
}

func TestDocumentTitle(t *testing.T) {
	doc := Document{}
	assert.Equal(t, "New Resume", doc.Title())

	doc.Personal.FullName = "Jane Doe"
	assert.Equal(t, "Jane Doe's Resume", doc.Title())
}

func TestTemplateIDValid(t *testing.T) {
	assert.True(t, TemplateSimple.Valid())
	assert.True(t, TemplateModern.Valid())
	assert.False(t, TemplateID("fancy").Valid())
	assert.False(t, TemplateID("").Valid())
}
