package wizard

import "portfolio-resume/internal/model"

// Section describes one wizard step for display.
type Section struct {
	ID          model.SectionID `json:"id"`
	Label       string          `json:"label"`
	Icon        string          `json:"icon"`
	Description string          `json:"description"`
}

var sections = map[model.SectionID]Section{
	model.SectionTemplate:   {ID: model.SectionTemplate, Label: "Template", Icon: "🎨", Description: "Choose a template for your resume"},
	model.SectionPersonal:   {ID: model.SectionPersonal, Label: "Personal Info", Icon: "👤", Description: "Add your contact information"},
	model.SectionSummary:    {ID: model.SectionSummary, Label: "Summary", Icon: "📝", Description: "Write a brief professional summary"},
	model.SectionEducation:  {ID: model.SectionEducation, Label: "Education", Icon: "🎓", Description: "Add your educational background"},
	model.SectionExperience: {ID: model.SectionExperience, Label: "Experience", Icon: "💼", Description: "Add your work experience"},
	model.SectionSkills:     {ID: model.SectionSkills, Label: "Skills", Icon: "⚡", Description: "List your skills and proficiency"},
	model.SectionProjects:   {ID: model.SectionProjects, Label: "Projects", Icon: "🚀", Description: "Showcase your projects"},
}

// Sections returns the wizard steps in order.
func Sections() []Section {
	out := make([]Section, 0, len(model.SectionOrder))
	for _, id := range model.SectionOrder {
		out = append(out, sections[id])
	}
	return out
}

func LookupSection(id model.SectionID) (Section, bool) {
	s, ok := sections[id]
	return s, ok
}
