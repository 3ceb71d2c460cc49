package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StringList is a list of free-text entries (achievements, technologies).
// Input may be a JSON array or a single string separated by commas or
// newlines, so form posts and API clients can both send it.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*l = StringList{}
	case string:
		*l = SplitList(t)
	case []interface{}:
		out := make(StringList, 0, len(t))
		for _, it := range t {
			switch v := it.(type) {
			case string:
				out = append(out, v)
			case nil:
			default:
				out = append(out, fmt.Sprintf("%v", v))
			}
		}
		*l = out
	default:
		*l = StringList{fmt.Sprintf("%v", t)}
	}
	return nil
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Compact trims every entry and drops the blank ones.
func (l StringList) Compact() StringList {
	out := make(StringList, 0, len(l))
	for _, s := range l {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SplitList splits s on commas and newlines.
func SplitList(s string) StringList {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' })
	return StringList(parts).Compact()
}
