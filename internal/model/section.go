package model

// SectionID names one step of the resume wizard.
type SectionID string

const (
	SectionTemplate   SectionID = "template"
	SectionPersonal   SectionID = "personal"
	SectionSummary    SectionID = "summary"
	SectionEducation  SectionID = "education"
	SectionExperience SectionID = "experience"
	SectionSkills     SectionID = "skills"
	SectionProjects   SectionID = "projects"
)

// SectionOrder is the fixed, linear wizard order.
var SectionOrder = []SectionID{
	SectionTemplate,
	SectionPersonal,
	SectionSummary,
	SectionEducation,
	SectionExperience,
	SectionSkills,
	SectionProjects,
}

func SectionIndex(id SectionID) int {
	for i, s := range SectionOrder {
		if s == id {
			return i
		}
	}
	return -1
}
