package http

import (
	"portfolio-resume/internal/model"
	"portfolio-resume/internal/wizard"

	"github.com/gofiber/fiber/v2"
)

// entryOps binds the add/update/remove operations of one list section.
type entryOps struct {
	add    func(d *wizard.Draft, c *fiber.Ctx) error
	update func(d *wizard.Draft, id string, c *fiber.Ctx) error
	remove func(d *wizard.Draft, id string) error
}

func decode[T any](c *fiber.Ctx, property string) (T, error) {
	var v T
	err := parseSectionBody(c, property, &v)
	return v, err
}

var entrySections = map[string]entryOps{
	"education": {
		add: func(d *wizard.Draft, c *fiber.Ctx) error {
			e, err := decode[model.Education](c, "education")
			if err != nil {
				return err
			}
			_, err = d.AddEducation(e)
			return err
		},
		update: func(d *wizard.Draft, id string, c *fiber.Ctx) error {
			e, err := decode[model.Education](c, "education")
			if err != nil {
				return err
			}
			return d.UpdateEducation(id, e)
		},
		remove: (*wizard.Draft).RemoveEducation,
	},
	"experience": {
		add: func(d *wizard.Draft, c *fiber.Ctx) error {
			e, err := decode[model.WorkExperience](c, "workExperience")
			if err != nil {
				return err
			}
			_, err = d.AddExperience(e)
			return err
		},
		update: func(d *wizard.Draft, id string, c *fiber.Ctx) error {
			e, err := decode[model.WorkExperience](c, "workExperience")
			if err != nil {
				return err
			}
			return d.UpdateExperience(id, e)
		},
		remove: (*wizard.Draft).RemoveExperience,
	},
	"skills": {
		add: func(d *wizard.Draft, c *fiber.Ctx) error {
			s, err := decode[model.Skill](c, "skills")
			if err != nil {
				return err
			}
			_, err = d.AddSkill(s)
			return err
		},
		update: func(d *wizard.Draft, id string, c *fiber.Ctx) error {
			s, err := decode[model.Skill](c, "skills")
			if err != nil {
				return err
			}
			return d.UpdateSkill(id, s)
		},
		remove: (*wizard.Draft).RemoveSkill,
	},
	"projects": {
		add: func(d *wizard.Draft, c *fiber.Ctx) error {
			p, err := decode[model.Project](c, "projects")
			if err != nil {
				return err
			}
			_, err = d.AddProject(p)
			return err
		},
		update: func(d *wizard.Draft, id string, c *fiber.Ctx) error {
			p, err := decode[model.Project](c, "projects")
			if err != nil {
				return err
			}
			return d.UpdateProject(id, p)
		},
		remove: (*wizard.Draft).RemoveProject,
	},
}

func lookupEntryOps(c *fiber.Ctx) (entryOps, error) {
	ops, ok := entrySections[c.Params("section")]
	if !ok {
		return entryOps{}, fiber.NewError(fiber.StatusNotFound, "unknown section")
	}
	return ops, nil
}

func (h *Handler) AddEntry(c *fiber.Ctx) error {
	ops, err := lookupEntryOps(c)
	if err != nil {
		return err
	}
	return h.mutate(c, fiber.StatusCreated, func(d *wizard.Draft) error { return ops.add(d, c) })
}

func (h *Handler) UpdateEntry(c *fiber.Ctx) error {
	ops, err := lookupEntryOps(c)
	if err != nil {
		return err
	}
	id := c.Params("entryID")
	return h.mutate(c, fiber.StatusOK, func(d *wizard.Draft) error { return ops.update(d, id, c) })
}

func (h *Handler) RemoveEntry(c *fiber.Ctx) error {
	ops, err := lookupEntryOps(c)
	if err != nil {
		return err
	}
	id := c.Params("entryID")
	return h.mutate(c, fiber.StatusOK, func(d *wizard.Draft) error { return ops.remove(d, id) })
}
