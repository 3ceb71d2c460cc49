package wizard

import (
	"errors"
	"math"
	"strings"
	"time"

	"portfolio-resume/internal/model"

	"github.com/google/uuid"
)

var (
	ErrEntryNotFound   = errors.New("entry not found")
	ErrUnknownSection  = errors.New("unknown section")
	ErrDraftNotFound   = errors.New("draft not found")
	ErrUnknownNavigate = errors.New("unknown navigation action")
	ErrDraftConflict   = errors.New("draft was modified concurrently")
)

// Draft is one resume editing session: the aggregate plus the wizard state
// around it.
type Draft struct {
	ID        uuid.UUID        `json:"id"`
	OwnerID   string           `json:"ownerId,omitempty"`
	Data      model.ResumeData `json:"data"`
	Template  model.TemplateID `json:"template"`
	Active    model.SectionID  `json:"activeSection"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func NewDraft(ownerID string) *Draft {
	now := time.Now()
	return &Draft{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Data:      model.NewResumeData(),
		Template:  model.DefaultTemplate,
		Active:    model.SectionPersonal,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (d *Draft) touch() { d.UpdatedAt = time.Now() }

// Reset restores the empty aggregate and default template.
func (d *Draft) Reset() {
	d.Data = model.NewResumeData()
	d.Template = model.DefaultTemplate
	d.Active = model.SectionPersonal
	d.touch()
}

// --- navigation ---

// Step returns the 1-based position of the active section.
func (d *Draft) Step() int {
	return model.SectionIndex(d.Active) + 1
}

func (d *Draft) Next() model.SectionID {
	if i := model.SectionIndex(d.Active); i >= 0 && i < len(model.SectionOrder)-1 {
		d.Active = model.SectionOrder[i+1]
	}
	return d.Active
}

func (d *Draft) Previous() model.SectionID {
	if i := model.SectionIndex(d.Active); i > 0 {
		d.Active = model.SectionOrder[i-1]
	}
	return d.Active
}

func (d *Draft) GoTo(id model.SectionID) error {
	if model.SectionIndex(id) < 0 {
		return ErrUnknownSection
	}
	d.Active = id
	return nil
}

// Navigate applies a "next", "previous" or "goto" action.
func (d *Draft) Navigate(action string, target model.SectionID) error {
	switch strings.ToLower(action) {
	case "next":
		d.Next()
	case "previous", "prev":
		d.Previous()
	case "goto":
		return d.GoTo(target)
	default:
		return ErrUnknownNavigate
	}
	return nil
}

// Completion summarises how many wizard sections hold content.
type Completion struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

func (d *Draft) Completion() Completion {
	total := len(model.SectionOrder)
	done := 0
	for _, s := range model.SectionOrder {
		if d.sectionPopulated(s) {
			done++
		}
	}
	return Completion{
		Completed:  done,
		Total:      total,
		Percentage: int(math.Round(float64(done) / float64(total) * 100)),
	}
}

func (d *Draft) sectionPopulated(s model.SectionID) bool {
	p := d.Data.PersonalInfo
	switch s {
	case model.SectionTemplate:
		return d.Template != ""
	case model.SectionPersonal:
		return p.FullName != "" && p.Email != "" && p.Phone != ""
	case model.SectionSummary:
		return d.Data.Summary != ""
	case model.SectionEducation:
		return len(d.Data.Education) > 0
	case model.SectionExperience:
		return len(d.Data.WorkExperience) > 0
	case model.SectionSkills:
		return len(d.Data.Skills) > 0
	case model.SectionProjects:
		return len(d.Data.Projects) > 0
	}
	return false
}

// --- whole-section setters ---

func (d *Draft) SelectTemplate(id model.TemplateID) error {
	if _, err := model.LookupTemplate(id); err != nil {
		return err
	}
	d.Template = id
	d.touch()
	return nil
}

func (d *Draft) SetPersonalInfo(p model.PersonalInfo) {
	d.Data.PersonalInfo = p
	d.touch()
}

func (d *Draft) SetSummary(s string) {
	d.Data.Summary = s
	d.touch()
}

// --- list entries ---
//
// Add* and Update* share the entry rules and normalization, so an edit can
// never store an entry that could not have been added.

func (d *Draft) AddEducation(e model.Education) (model.Education, error) {
	if err := model.ValidateEducation(e); err != nil {
		return e, err
	}
	e.ID = defaultIDs.Next()
	d.Data.Education = append(d.Data.Education, e)
	d.touch()
	return e, nil
}

func (d *Draft) UpdateEducation(id string, e model.Education) error {
	if err := model.ValidateEducation(e); err != nil {
		return err
	}
	e.ID = id
	return d.replace(func() bool { return replaceByID(d.Data.Education, e, func(x model.Education) string { return x.ID }) })
}

func (d *Draft) RemoveEducation(id string) error {
	out, err := removeByID(d.Data.Education, id, func(x model.Education) string { return x.ID })
	if err != nil {
		return err
	}
	d.Data.Education = out
	d.touch()
	return nil
}

func (d *Draft) AddExperience(e model.WorkExperience) (model.WorkExperience, error) {
	model.NormalizeExperience(&e)
	if err := model.ValidateExperience(e); err != nil {
		return e, err
	}
	e.ID = defaultIDs.Next()
	d.Data.WorkExperience = append(d.Data.WorkExperience, e)
	d.touch()
	return e, nil
}

func (d *Draft) UpdateExperience(id string, e model.WorkExperience) error {
	model.NormalizeExperience(&e)
	if err := model.ValidateExperience(e); err != nil {
		return err
	}
	e.ID = id
	return d.replace(func() bool {
		return replaceByID(d.Data.WorkExperience, e, func(x model.WorkExperience) string { return x.ID })
	})
}

func (d *Draft) RemoveExperience(id string) error {
	out, err := removeByID(d.Data.WorkExperience, id, func(x model.WorkExperience) string { return x.ID })
	if err != nil {
		return err
	}
	d.Data.WorkExperience = out
	d.touch()
	return nil
}

func (d *Draft) AddSkill(s model.Skill) (model.Skill, error) {
	s.Name = strings.TrimSpace(s.Name)
	model.NormalizeSkill(&s)
	if err := model.ValidateSkill(s); err != nil {
		return s, err
	}
	s.ID = defaultIDs.Next()
	d.Data.Skills = append(d.Data.Skills, s)
	d.touch()
	return s, nil
}

func (d *Draft) UpdateSkill(id string, s model.Skill) error {
	s.Name = strings.TrimSpace(s.Name)
	model.NormalizeSkill(&s)
	if err := model.ValidateSkill(s); err != nil {
		return err
	}
	s.ID = id
	return d.replace(func() bool { return replaceByID(d.Data.Skills, s, func(x model.Skill) string { return x.ID }) })
}

func (d *Draft) RemoveSkill(id string) error {
	out, err := removeByID(d.Data.Skills, id, func(x model.Skill) string { return x.ID })
	if err != nil {
		return err
	}
	d.Data.Skills = out
	d.touch()
	return nil
}

func (d *Draft) AddProject(p model.Project) (model.Project, error) {
	model.NormalizeProject(&p)
	if err := model.ValidateProject(p); err != nil {
		return p, err
	}
	p.ID = defaultIDs.Next()
	d.Data.Projects = append(d.Data.Projects, p)
	d.touch()
	return p, nil
}

func (d *Draft) UpdateProject(id string, p model.Project) error {
	model.NormalizeProject(&p)
	if err := model.ValidateProject(p); err != nil {
		return err
	}
	p.ID = id
	return d.replace(func() bool { return replaceByID(d.Data.Projects, p, func(x model.Project) string { return x.ID }) })
}

func (d *Draft) RemoveProject(id string) error {
	out, err := removeByID(d.Data.Projects, id, func(x model.Project) string { return x.ID })
	if err != nil {
		return err
	}
	d.Data.Projects = out
	d.touch()
	return nil
}

func (d *Draft) replace(fn func() bool) error {
	if !fn() {
		return ErrEntryNotFound
	}
	d.touch()
	return nil
}

func replaceByID[T any](list []T, v T, id func(T) string) bool {
	want := id(v)
	for i := range list {
		if id(list[i]) == want {
			list[i] = v
			return true
		}
	}
	return false
}

func removeByID[T any](list []T, want string, id func(T) string) ([]T, error) {
	for i := range list {
		if id(list[i]) == want {
			out := make([]T, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...), nil
		}
	}
	return list, ErrEntryNotFound
}
