package wizard

import (
	"errors"
	"fmt"

	"portfolio-resume/internal/model"
)

// SectionStatus holds validation state for one wizard section.
type SectionStatus struct {
	Section model.SectionID `json:"section"`
	Valid   bool            `json:"valid"`
	Missing []string        `json:"missing"`
	Message string          `json:"message,omitempty"`
}

// SectionStatus reports whether a section passes the export checks and which
// fields it is missing. Sections without export requirements are always
// valid.
func (d *Draft) SectionStatus(id model.SectionID) SectionStatus {
	res := SectionStatus{Section: id, Valid: true, Missing: []string{}}

	var verr *model.ValidationErrors
	if err := model.Validate(d.Data); !errors.As(err, &verr) {
		return res
	}
	msg, failed := verr.Sections[id]
	if !failed {
		return res
	}
	res.Valid = false
	res.Message = msg
	switch id {
	case model.SectionPersonal:
		for _, f := range []string{"fullName", "email", "phone"} {
			if _, ok := verr.Fields[fmt.Sprintf("personal.%s", f)]; ok {
				res.Missing = append(res.Missing, f)
			}
		}
	default:
		res.Missing = append(res.Missing, string(id))
	}
	return res
}

// Statuses returns SectionStatus for every section in wizard order.
func (d *Draft) Statuses() []SectionStatus {
	out := make([]SectionStatus, 0, len(model.SectionOrder))
	for _, s := range model.SectionOrder {
		out = append(out, d.SectionStatus(s))
	}
	return out
}
