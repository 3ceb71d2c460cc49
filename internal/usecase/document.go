package usecase

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"portfolio-resume/internal/model"

	"golang.org/x/net/publicsuffix"
)

//go:embed templates/*.html templates/*.css
var templateFS embed.FS

var funcs = template.FuncMap{
	"month":      model.FormatMonth,
	"dateRange":  model.DateRange,
	"levelLabel": model.LevelLabel,
	"linkLabel":  LinkLabel,
	"levelDots": func(level int) []bool {
		dots := make([]bool, model.MaxSkillLevel)
		for i := range dots {
			dots[i] = i < level
		}
		return dots
	},
}

var (
	documentTpl = template.Must(template.New("resume.html").Funcs(funcs).ParseFS(templateFS, "templates/resume.html"))
	previewTpl  = template.Must(template.New("preview.html").Funcs(funcs).ParseFS(templateFS, "templates/preview.html"))
)

type skillGroup struct {
	Category string
	Skills   []model.Skill
}

type link struct {
	Name string
	URL  string
}

type documentView struct {
	Data        model.ResumeData
	Template    model.TemplateConfig
	Vars        template.CSS
	Links       []link
	SkillGroups []skillGroup
}

func newDocumentView(data model.ResumeData, tpl model.TemplateConfig) documentView {
	p := tpl.Palette
	vars := fmt.Sprintf(":root{--primary:%s;--secondary:%s;--accent:%s;--text:%s;--light-text:%s}",
		p.Primary, p.Secondary, p.Accent, p.Text, p.LightText)

	var links []link
	for _, l := range []link{
		{"LinkedIn", data.PersonalInfo.LinkedIn},
		{"GitHub", data.PersonalInfo.GitHub},
		{"Portfolio", data.PersonalInfo.Website},
	} {
		if strings.TrimSpace(l.URL) != "" {
			links = append(links, l)
		}
	}

	return documentView{
		Data:        data,
		Template:    tpl,
		Vars:        template.CSS(vars),
		Links:       links,
		SkillGroups: groupSkills(data.Skills),
	}
}

// groupSkills buckets skills by category, in category order, dropping empty
// buckets.
func groupSkills(skills []model.Skill) []skillGroup {
	var out []skillGroup
	for _, c := range model.SkillCategories {
		g := skillGroup{Category: c}
		for _, s := range skills {
			if s.Category == c {
				g.Skills = append(g.Skills, s)
			}
		}
		if len(g.Skills) > 0 {
			out = append(out, g)
		}
	}
	return out
}

// RenderDocument produces the self-contained HTML handed to the PDF renderer.
func RenderDocument(data model.ResumeData, tpl model.TemplateConfig) (string, error) {
	var buf bytes.Buffer
	if err := documentTpl.Execute(&buf, newDocumentView(data, tpl)); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return inlineStylesheet(buf.String())
}

// RenderPreview produces the on-screen preview fragment, styled through the
// template's class names.
func RenderPreview(data model.ResumeData, tpl model.TemplateConfig) (string, error) {
	var buf bytes.Buffer
	if err := previewTpl.Execute(&buf, newDocumentView(data, tpl)); err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}
	return buf.String(), nil
}

// inlineStylesheet injects style.css at the top of <head> so the document
// renders without any file lookups.
func inlineStylesheet(html string) (string, error) {
	css, err := templateFS.ReadFile("templates/style.css")
	if err != nil {
		return "", err
	}
	block := "<style>" + string(css) + "</style>"
	if strings.Contains(strings.ToLower(html), "<head>") {
		return strings.Replace(html, "<head>", "<head>"+block, 1), nil
	}
	return block + html, nil
}

// LinkLabel shortens a URL to its registrable domain for display, e.g.
// "https://www.linkedin.com/in/ada" becomes "linkedin.com".
func LinkLabel(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	candidate := raw
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return raw
	}
	host := parsed.Hostname()
	if host == "" {
		return raw
	}
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}
