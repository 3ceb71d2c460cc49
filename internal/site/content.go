package site

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

type Owner struct {
	Name    string `yaml:"name"`
	Role    string `yaml:"role"`
	Tagline string `yaml:"tagline"`
}

type Hero struct {
	Headline string `yaml:"headline"`
	Subline  string `yaml:"subline"`
	CTALabel string `yaml:"cta_label"`
	CTAHref  string `yaml:"cta_href"`
}

type SkillBar struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

type CarouselItem struct {
	Name    string `yaml:"name"`
	Details string `yaml:"details"`
	Logo    string `yaml:"logo"`
}

type About struct {
	Intro    string         `yaml:"intro"`
	Skills   []SkillBar     `yaml:"skills"`
	Carousel []CarouselItem `yaml:"carousel"`
}

type TimelineEntry struct {
	Title       string   `yaml:"title"`
	Subtitle    string   `yaml:"subtitle"`
	Date        string   `yaml:"date"`
	Type        string   `yaml:"type"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Link        string   `yaml:"link"`
}

type Service struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type Review struct {
	Author string `yaml:"author"`
	Role   string `yaml:"role"`
	Quote  string `yaml:"quote"`
	Rating int    `yaml:"rating"`
}

type Social struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

type ContactInfo struct {
	Email    string   `yaml:"email"`
	Phone    string   `yaml:"phone"`
	Location string   `yaml:"location"`
	Socials  []Social `yaml:"socials"`
}

// Content is everything the public pages show.
type Content struct {
	Owner    Owner           `yaml:"owner"`
	Hero     Hero            `yaml:"hero"`
	About    About           `yaml:"about"`
	Timeline []TimelineEntry `yaml:"timeline"`
	Services []Service       `yaml:"services"`
	Reviews  []Review        `yaml:"reviews"`
	Contact  ContactInfo     `yaml:"contact"`
}

// LoadContent parses the embedded default, then overlays the file at path
// when one is given. Keys missing from the override keep their defaults.
func LoadContent(path string) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(defaultContent, &c); err != nil {
		return nil, fmt.Errorf("parse default site content: %w", err)
	}
	if path == "" {
		return &c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site content: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse site content %s: %w", path, err)
	}
	return &c, nil
}
