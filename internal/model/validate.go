package model

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/resume.schema.json
var resumeSchema []byte

var compiledSchema = mustCompileSchema(resumeSchema)

func mustCompileSchema(b []byte) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
	if err != nil {
		panic(fmt.Sprintf("compile resume schema: %v", err))
	}
	return s
}

// SchemaError lists the structural problems found in a JSON document.
type SchemaError struct {
	Problems []string `json:"problems"`
}

func (e *SchemaError) Error() string {
	return "schema validation failed: " + strings.Join(e.Problems, "; ")
}

// ValidateSchema validates a decoded JSON document (map, slice or struct)
// against resume.schema.json.
func ValidateSchema(doc interface{}) error {
	return checkSchema(gojsonschema.NewGoLoader(doc))
}

// ValidateSchemaJSON is ValidateSchema for raw bytes.
func ValidateSchemaJSON(b []byte) error {
	return checkSchema(gojsonschema.NewBytesLoader(b))
}

func checkSchema(doc gojsonschema.JSONLoader) error {
	res, err := compiledSchema.Validate(doc)
	if err != nil {
		return &SchemaError{Problems: []string{err.Error()}}
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return &SchemaError{Problems: msgs}
}

var entryProperties = map[string]bool{
	"education":      true,
	"workExperience": true,
	"skills":         true,
	"projects":       true,
}

// ValidateBodyJSON checks the request body that edits one top-level property
// of the resume. List properties take a single entry, personalInfo takes the
// object and summary takes {"summary": "..."}.
func ValidateBodyJSON(property string, body []byte) error {
	if !json.Valid(body) {
		return &SchemaError{Problems: []string{"body is not valid JSON"}}
	}

	if property == "summary" {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			return &SchemaError{Problems: []string{"(root): Invalid type. Expected: object"}}
		}
		var extra []string
		for k := range fields {
			if k != "summary" {
				extra = append(extra, "(root): Additional property "+k+" is not allowed")
			}
		}
		if len(extra) > 0 {
			sort.Strings(extra)
			return &SchemaError{Problems: extra}
		}
		return ValidateSchemaJSON(body)
	}

	var value interface{} = json.RawMessage(body)
	if entryProperties[property] {
		value = []json.RawMessage{json.RawMessage(body)}
	}
	doc, err := json.Marshal(map[string]interface{}{property: value})
	if err != nil {
		return &SchemaError{Problems: []string{err.Error()}}
	}
	return ValidateSchemaJSON(doc)
}

// ValidationErrors collects presence failures. Sections maps a wizard section
// to its first message, Fields maps a dotted field path to its message.
type ValidationErrors struct {
	Sections map[SectionID]string `json:"sections,omitempty"`
	Fields   map[string]string    `json:"fields,omitempty"`
}

func newValidationErrors() *ValidationErrors {
	return &ValidationErrors{Sections: map[SectionID]string{}, Fields: map[string]string{}}
}

func (v *ValidationErrors) addField(section SectionID, field, msg string) {
	if _, ok := v.Sections[section]; !ok && section != "" {
		v.Sections[section] = msg
	}
	v.Fields[field] = msg
}

func (v *ValidationErrors) empty() bool {
	return len(v.Sections) == 0 && len(v.Fields) == 0
}

func (v *ValidationErrors) Error() string {
	if first := v.FirstSection(); first != "" {
		return fmt.Sprintf("validation failed: %s: %s", first, v.Sections[first])
	}
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// FirstSection returns the earliest failing section in wizard order.
func (v *ValidationErrors) FirstSection() SectionID {
	for _, s := range SectionOrder {
		if _, ok := v.Sections[s]; ok {
			return s
		}
	}
	return ""
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// Validate runs the presence checks required before export. It returns nil or
// a *ValidationErrors.
func Validate(d ResumeData) error {
	v := newValidationErrors()

	p := d.PersonalInfo
	if blank(p.FullName) {
		v.addField(SectionPersonal, "personal.fullName", "Full name is required")
	}
	if blank(p.Email) {
		v.addField(SectionPersonal, "personal.email", "Email is required")
	}
	if blank(p.Phone) {
		v.addField(SectionPersonal, "personal.phone", "Phone number is required")
	}
	if len(d.Education) == 0 {
		v.addField(SectionEducation, "education", "At least one education entry is required")
	}
	if len(d.Skills) == 0 {
		v.addField(SectionSkills, "skills", "At least one skill is required")
	}

	if v.empty() {
		return nil
	}
	return v
}

func ValidateEducation(e Education) error {
	v := newValidationErrors()
	if blank(e.Institution) {
		v.addField("", "institution", "Institution is required")
	}
	if blank(e.Degree) {
		v.addField("", "degree", "Degree is required")
	}
	if v.empty() {
		return nil
	}
	return v
}

func ValidateExperience(e WorkExperience) error {
	v := newValidationErrors()
	if blank(e.Company) {
		v.addField("", "company", "Company is required")
	}
	if blank(e.Position) {
		v.addField("", "position", "Position is required")
	}
	if v.empty() {
		return nil
	}
	return v
}

func ValidateSkill(s Skill) error {
	v := newValidationErrors()
	if blank(s.Name) {
		v.addField("", "name", "Skill name is required")
	}
	if s.Level < MinSkillLevel || s.Level > MaxSkillLevel {
		v.addField("", "level", fmt.Sprintf("Level must be between %d and %d", MinSkillLevel, MaxSkillLevel))
	}
	if !IsSkillCategory(s.Category) {
		v.addField("", "category", "Unknown skill category")
	}
	if v.empty() {
		return nil
	}
	return v
}

func ValidateProject(p Project) error {
	v := newValidationErrors()
	if blank(p.Name) {
		v.addField("", "name", "Project name is required")
	}
	if blank(p.Description) {
		v.addField("", "description", "Project description is required")
	}
	if v.empty() {
		return nil
	}
	return v
}
