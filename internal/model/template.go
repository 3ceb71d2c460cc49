package model

import "errors"

var ErrUnknownTemplate = errors.New("unknown template")

type TemplateID string

const (
	TemplateModern       TemplateID = "modern"
	TemplateProfessional TemplateID = "professional"
	TemplateMinimal      TemplateID = "minimal"
	TemplateCreative     TemplateID = "creative"

	DefaultTemplate = TemplateModern
)

// Palette holds the colors the exported document is drawn with.
type Palette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
	Text      string `json:"text"`
	LightText string `json:"lightText"`
}

// PreviewClasses are the class names the on-screen preview uses per region.
type PreviewClasses struct {
	Container string `json:"container"`
	Header    string `json:"header"`
	Section   string `json:"section"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Accent    string `json:"accent"`
}

type TemplateConfig struct {
	ID          TemplateID     `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Color       string         `json:"color"`
	Preview     string         `json:"preview"`
	Palette     Palette        `json:"palette"`
	Classes     PreviewClasses `json:"classes"`
}

var templateOrder = []TemplateID{TemplateModern, TemplateProfessional, TemplateMinimal, TemplateCreative}

var templates = map[TemplateID]TemplateConfig{
	TemplateModern: {
		ID:          TemplateModern,
		Name:        "Modern",
		Description: "Clean layout with accent colors and modern typography",
		Color:       "bg-gradient-to-r from-blue-500 to-purple-600",
		Preview:     "🔄",
		Palette:     Palette{Primary: "#3498db", Secondary: "#8e44ad", Accent: "#d6eaf8", Text: "#2c3e50", LightText: "#7f8c8d"},
		Classes: PreviewClasses{
			Container: "bg-white text-gray-800",
			Header:    "bg-gradient-to-r from-blue-500 to-purple-600 text-white",
			Section:   "border-l-4 border-blue-500",
			Title:     "text-blue-600 font-bold",
			Text:      "text-gray-700",
			Accent:    "bg-blue-100 text-blue-800",
		},
	},
	TemplateProfessional: {
		ID:          TemplateProfessional,
		Name:        "Professional",
		Description: "Traditional format preferred by corporate employers",
		Color:       "bg-gradient-to-r from-gray-700 to-gray-900",
		Preview:     "💼",
		Palette:     Palette{Primary: "#2c3e50", Secondary: "#34495e", Accent: "#ecf0f1", Text: "#2c3e50", LightText: "#7f8c8d"},
		Classes: PreviewClasses{
			Container: "bg-white text-gray-800",
			Header:    "bg-gray-800 text-white",
			Section:   "border-l-4 border-gray-600",
			Title:     "text-gray-800 font-bold",
			Text:      "text-gray-600",
			Accent:    "bg-gray-100 text-gray-800",
		},
	},
	TemplateMinimal: {
		ID:          TemplateMinimal,
		Name:        "Minimal",
		Description: "Simple and clean design focusing on content",
		Color:       "bg-gradient-to-r from-green-500 to-teal-600",
		Preview:     "📄",
		Palette:     Palette{Primary: "#27ae60", Secondary: "#2ecc71", Accent: "#d5f4e6", Text: "#2c3e50", LightText: "#7f8c8d"},
		Classes: PreviewClasses{
			Container: "bg-white text-gray-800",
			Header:    "bg-green-50 border-b border-green-200",
			Section:   "",
			Title:     "text-green-700 font-semibold",
			Text:      "text-gray-600",
			Accent:    "bg-green-100 text-green-800",
		},
	},
	TemplateCreative: {
		ID:          TemplateCreative,
		Name:        "Creative",
		Description: "Modern design with creative elements for creative industries",
		Color:       "bg-gradient-to-r from-orange-500 to-pink-600",
		Preview:     "🎨",
		Palette:     Palette{Primary: "#e67e22", Secondary: "#e74c3c", Accent: "#fdebd0", Text: "#2c3e50", LightText: "#7f8c8d"},
		Classes: PreviewClasses{
			Container: "bg-white text-gray-800",
			Header:    "bg-gradient-to-r from-orange-400 to-pink-500 text-white",
			Section:   "border-l-4 border-orange-400",
			Title:     "text-orange-500 font-bold",
			Text:      "text-gray-700",
			Accent:    "bg-orange-100 text-orange-800",
		},
	},
}

// Templates returns every preset in display order.
func Templates() []TemplateConfig {
	out := make([]TemplateConfig, 0, len(templateOrder))
	for _, id := range templateOrder {
		out = append(out, templates[id])
	}
	return out
}

func LookupTemplate(id TemplateID) (TemplateConfig, error) {
	t, ok := templates[id]
	if !ok {
		return TemplateConfig{}, ErrUnknownTemplate
	}
	return t, nil
}
