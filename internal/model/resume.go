package model

// Go models for the resume aggregate built up by the wizard. JSON names match
// resume.schema.json.

type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

type Education struct {
	ID           string `json:"id"`
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate,omitempty"` // empty means "Present"
	GPA          string `json:"gpa,omitempty"`
	Description  string `json:"description"`
}

type WorkExperience struct {
	ID           string     `json:"id"`
	Company      string     `json:"company"`
	Position     string     `json:"position"`
	StartDate    string     `json:"startDate"`
	EndDate      string     `json:"endDate,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
	Achievements StringList `json:"achievements"`
}

type Skill struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Category string `json:"category"`
}

type Project struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Technologies StringList `json:"technologies"`
	Link         string     `json:"link,omitempty"`
}

type ResumeData struct {
	PersonalInfo   PersonalInfo     `json:"personalInfo"`
	Summary        string           `json:"summary"`
	Education      []Education      `json:"education"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Skills         []Skill          `json:"skills"`
	Projects       []Project        `json:"projects"`
}

// NewResumeData returns an empty aggregate with non-nil lists so it encodes
// as [] rather than null.
func NewResumeData() ResumeData {
	return ResumeData{
		Education:      []Education{},
		WorkExperience: []WorkExperience{},
		Skills:         []Skill{},
		Projects:       []Project{},
	}
}

const (
	MinSkillLevel     = 1
	MaxSkillLevel     = 5
	DefaultSkillLevel = 3
)

// SkillCategories is the fixed, ordered set a Skill.Category must come from.
var SkillCategories = []string{
	"Programming Languages",
	"Frameworks & Libraries",
	"Tools & Technologies",
	"Databases",
	"Cloud Platforms",
	"Soft Skills",
	"Languages",
	"Other",
}

var levelLabels = [...]string{"Beginner", "Intermediate", "Advanced", "Expert", "Master"}

// LevelLabel returns the human label for a proficiency level, or "" when the
// level is out of range.
func LevelLabel(level int) string {
	if level < MinSkillLevel || level > MaxSkillLevel {
		return ""
	}
	return levelLabels[level-1]
}

func IsSkillCategory(c string) bool {
	for _, known := range SkillCategories {
		if known == c {
			return true
		}
	}
	return false
}

// NormalizeExperience trims list entries and enforces that a current role
// carries no end date.
func NormalizeExperience(e *WorkExperience) {
	e.Achievements = e.Achievements.Compact()
	if e.Current {
		e.EndDate = ""
	}
}

func NormalizeProject(p *Project) {
	p.Technologies = p.Technologies.Compact()
}

// NormalizeSkill fills defaults for a skill that arrived without level or
// category.
func NormalizeSkill(s *Skill) {
	if s.Level == 0 {
		s.Level = DefaultSkillLevel
	}
	if s.Category == "" {
		s.Category = SkillCategories[0]
	}
}
