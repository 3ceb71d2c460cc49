package model

import (
	"regexp"
	"strings"
	"time"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeName    = regexp.MustCompile(`[/\\"<>:|?*\x00-\x1f\x7f]`)
)

// ExportFileName derives the download name from the user's full name. The
// result is a single path element: separators, quotes and control characters
// become "_".
func ExportFileName(fullName string) string {
	name := strings.TrimSpace(fullName)
	if name == "" {
		return "resume.pdf"
	}
	name = whitespaceRun.ReplaceAllString(name, "_")
	name = unsafeName.ReplaceAllString(name, "_")
	return name + "_Resume.pdf"
}

var monthLayouts = []string{"2006-01", "2006-01-02", time.RFC3339}

// FormatMonth renders a year-month date as "Jan 2006". Input it cannot parse
// is returned unchanged.
func FormatMonth(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2006")
		}
	}
	return s
}

// DateRange renders "<start> - <end>", using "Present" for open-ended or
// current entries.
func DateRange(start, end string, current bool) string {
	to := "Present"
	if !current && strings.TrimSpace(end) != "" {
		to = FormatMonth(end)
	}
	return FormatMonth(start) + " - " + to
}
