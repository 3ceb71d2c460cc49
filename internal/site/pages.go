package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"portfolio-resume/internal/auth"
	"portfolio-resume/internal/model"
	"portfolio-resume/internal/usecase"
)

//go:embed templates/*.html
var pageFS embed.FS

const (
	PageHome      = "home"
	PageAbout     = "about"
	PageServices  = "services"
	PageContact   = "contact"
	PageDashboard = "dashboard"
	PageLogin     = "login"
	PageRegister  = "register"
)

var pageNames = []string{PageHome, PageAbout, PageServices, PageContact, PageDashboard, PageLogin, PageRegister}

var pageFuncs = template.FuncMap{
	"stars": func(n int) string {
		if n < 0 {
			n = 0
		}
		if n > 5 {
			n = 5
		}
		return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
	},
}

// Viewer is the signed-in user as the pages show them.
type Viewer struct {
	Name  string
	Email string
}

// Page is the data handed to every page template. Unused fields stay zero.
type Page struct {
	Title       string
	Content     *Content
	Viewer      *Viewer
	Year        int
	Templates   []model.TemplateConfig
	Dashboard   *usecase.Dashboard
	Providers   []auth.Provider
	CallbackURL string
	Form        interface{}
	Errors      map[string]string
	Flash       string
	FlashError  bool
}

// Pages renders the public site from its content.
type Pages struct {
	content *Content
	tpls    map[string]*template.Template
}

func NewPages(c *Content) (*Pages, error) {
	p := &Pages{content: c, tpls: map[string]*template.Template{}}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(pageFuncs).ParseFS(pageFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		p.tpls[name] = t
	}
	return p, nil
}

func (p *Pages) Content() *Content { return p.content }

// Render executes the named page. Content, Year, Templates and a default
// Title are filled in when the caller left them empty.
func (p *Pages) Render(name string, data Page) ([]byte, error) {
	t, ok := p.tpls[name]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", name)
	}
	if data.Content == nil {
		data.Content = p.content
	}
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	if data.Templates == nil {
		data.Templates = model.Templates()
	}
	if data.Title == "" {
		data.Title = strings.ToUpper(name[:1]) + name[1:]
	}
	if data.Errors == nil {
		data.Errors = map[string]string{}
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("render page %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
