package http

import (
	"errors"
	"fmt"

	"portfolio-resume/internal/auth"
	"portfolio-resume/internal/model"
	"portfolio-resume/internal/usecase"
	"portfolio-resume/internal/wizard"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type draftView struct {
	Draft      *wizard.Draft          `json:"draft"`
	Step       int                    `json:"step"`
	Completion wizard.Completion      `json:"completion"`
	Sections   []wizard.SectionStatus `json:"sections"`
}

func viewOf(d *wizard.Draft) draftView {
	return draftView{Draft: d, Step: d.Step(), Completion: d.Completion(), Sections: d.Statuses()}
}

func (h *Handler) ListTemplates(c *fiber.Ctx) error {
	return c.JSON(model.Templates())
}

func (h *Handler) ListSections(c *fiber.Ctx) error {
	return c.JSON(wizard.Sections())
}

func ownerOf(c *fiber.Ctx) string {
	if s, ok := auth.SessionFrom(c); ok {
		return s.ID
	}
	return ""
}

func draftID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid draft id")
	}
	return id, nil
}

// visibleTo reports drafts owned by someone else as missing.
func visibleTo(d *wizard.Draft, owner string) error {
	if d.OwnerID != "" && d.OwnerID != owner {
		return wizard.ErrDraftNotFound
	}
	return nil
}

// loadDraft fetches the :id draft.
func (h *Handler) loadDraft(c *fiber.Ctx) (*wizard.Draft, error) {
	id, err := draftID(c)
	if err != nil {
		return nil, err
	}
	d, err := h.drafts.Get(c.UserContext(), id)
	if err != nil {
		return nil, err
	}
	if err := visibleTo(d, ownerOf(c)); err != nil {
		return nil, err
	}
	return d, nil
}

// mutate applies fn to the :id draft through the store's atomic update and
// responds with the draft view.
func (h *Handler) mutate(c *fiber.Ctx, status int, fn func(d *wizard.Draft) error) error {
	id, err := draftID(c)
	if err != nil {
		return err
	}
	owner := ownerOf(c)
	d, err := h.drafts.Update(c.UserContext(), id, func(d *wizard.Draft) error {
		if err := visibleTo(d, owner); err != nil {
			return err
		}
		return fn(d)
	})
	if err != nil {
		return err
	}
	return c.Status(status).JSON(viewOf(d))
}

func parseBody(c *fiber.Ctx, v interface{}) error {
	if err := c.BodyParser(v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	return nil
}

// parseSectionBody checks a JSON body against the resume schema for one
// top-level property before decoding it.
func parseSectionBody(c *fiber.Ctx, property string, v interface{}) error {
	if c.Is("json") {
		if err := model.ValidateBodyJSON(property, c.Body()); err != nil {
			return err
		}
	}
	return parseBody(c, v)
}

func (h *Handler) CreateDraft(c *fiber.Ctx) error {
	d := wizard.NewDraft(ownerOf(c))

	var req struct {
		Template model.TemplateID `json:"template"`
	}
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}
	if req.Template != "" {
		if err := d.SelectTemplate(req.Template); err != nil {
			return err
		}
	}

	if err := h.drafts.Save(c.UserContext(), d); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(viewOf(d))
}

func (h *Handler) GetDraft(c *fiber.Ctx) error {
	d, err := h.loadDraft(c)
	if err != nil {
		return err
	}
	return c.JSON(viewOf(d))
}

func (h *Handler) DeleteDraft(c *fiber.Ctx) error {
	d, err := h.loadDraft(c)
	if err != nil {
		return err
	}
	if err := h.drafts.Delete(c.UserContext(), d.ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ResetDraft(c *fiber.Ctx) error {
	return h.mutate(c, fiber.StatusOK, func(d *wizard.Draft) error {
		d.Reset()
		return nil
	})
}

func (h *Handler) SelectTemplate(c *fiber.Ctx) error {
	var req struct {
		Template model.TemplateID `json:"template"`
	}
	if err := parseBody(c, &req); err != nil {
		return err
	}
	return h.mutate(c, fiber.StatusOK, func(d *wizard.Draft) error { return d.SelectTemplate(req.Template) })
}

func (h *Handler) UpdatePersonal(c *fiber.Ctx) error {
	var p model.PersonalInfo
	if err := parseSectionBody(c, "personalInfo", &p); err != nil {
		return err
	}
	return h.mutate(c, fiber.StatusOK, func(d *wizard.Draft) error {
		d.SetPersonalInfo(p)
		return nil
	})
}

func (h *Handler) UpdateSummary(c *fiber.Ctx) error {
	var req struct {
		Summary string `json:"summary"`
	}
	if err := parseSectionBody(c, "summary", &req); err != nil {
		return err
	}
	return h.mutate(c, fiber.StatusOK, func(d *wizard.Draft) error {
		d.SetSummary(req.Summary)
		return nil
	})
}

func (h *Handler) Navigate(c *fiber.Ctx) error {
	var req struct {
		Action  string          `json:"action"`
		Section model.SectionID `json:"section"`
	}
	if err := parseBody(c, &req); err != nil {
		return err
	}
	return h.mutate(c, fiber.StatusOK, func(d *wizard.Draft) error { return d.Navigate(req.Action, req.Section) })
}

func (h *Handler) Preview(c *fiber.Ctx) error {
	d, err := h.loadDraft(c)
	if err != nil {
		return err
	}
	html, err := usecase.Preview(d)
	if err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.SendString(html)
}

// Validate reports the export checks without rendering anything.
func (h *Handler) Validate(c *fiber.Ctx) error {
	d, err := h.loadDraft(c)
	if err != nil {
		return err
	}
	body := fiber.Map{"valid": true, "sections": d.Statuses()}
	if verr := model.Validate(d.Data); verr != nil {
		body["valid"] = false
		if v, ok := verr.(*model.ValidationErrors); ok {
			body["section"] = v.FirstSection()
			body["fields"] = v.Fields
		}
	}
	return c.JSON(body)
}

// Export renders the PDF. A failed check moves the wizard to the first
// failing section before the 422 is returned.
func (h *Handler) Export(c *fiber.Ctx) error {
	d, err := h.loadDraft(c)
	if err != nil {
		return err
	}

	res, err := h.exporter.Export(c.UserContext(), d)
	if err != nil {
		var v *model.ValidationErrors
		if errors.As(err, &v) {
			if s := v.FirstSection(); s != "" {
				_, uerr := h.drafts.Update(c.UserContext(), d.ID, func(d *wizard.Draft) error { return d.GoTo(s) })
				if uerr != nil {
					h.log.Warn("failed to save draft after navigation", "draft_id", d.ID, "error", uerr)
				}
			}
		}
		return err
	}

	c.Attachment(res.FileName)
	if res.RecordID != "" {
		c.Set("X-Export-Id", res.RecordID)
	}
	return c.Send(res.PDF)
}
