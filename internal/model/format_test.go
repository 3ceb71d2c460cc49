package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "Ada_Lovelace_Resume.pdf", ExportFileName("Ada Lovelace"))
	assert.Equal(t, "Ada_King_Lovelace_Resume.pdf", ExportFileName("  Ada \t King   Lovelace "))
	assert.Equal(t, "resume.pdf", ExportFileName("   "))
}

func TestExportFileName_SinglePathElement(t *testing.T) {
	assert.Equal(t, "Ada__The_Countess__Lovelace_Resume.pdf", ExportFileName(`Ada "The Countess" Lovelace`))
	assert.Equal(t, ".._.._tmp_evil_Resume.pdf", ExportFileName("../../tmp/evil"))
	assert.Equal(t, "C__Users_ada_Resume.pdf", ExportFileName(`C:\Users\ada`))
	assert.Equal(t, "a_b_Resume.pdf", ExportFileName("a\x00b"))
	assert.Equal(t, "Zoë_Ñúñez_Resume.pdf", ExportFileName("Zoë Ñúñez"))

	for _, in := range []string{"../../tmp/evil", `x/..\y`, `"quoted"`} {
		name := ExportFileName(in)
		assert.NotContains(t, name, "/")
		assert.NotContains(t, name, `\`)
		assert.NotContains(t, name, `"`)
	}
}

func TestFormatMonth(t *testing.T) {
	assert.Equal(t, "May 2023", FormatMonth("2023-05"))
	assert.Equal(t, "Jan 2020", FormatMonth("2020-01-15"))
	assert.Equal(t, "", FormatMonth(""))
	assert.Equal(t, "someday", FormatMonth("someday"))
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "Jan 2020 - Present", DateRange("2020-01", "", false))
	assert.Equal(t, "Jan 2020 - Present", DateRange("2020-01", "2022-03", true))
	assert.Equal(t, "Jan 2020 - Mar 2022", DateRange("2020-01", "2022-03", false))
}

func TestTemplates(t *testing.T) {
	all := Templates()
	require.Len(t, all, 4)
	assert.Equal(t, DefaultTemplate, all[0].ID)

	cfg, err := LookupTemplate(TemplateCreative)
	require.NoError(t, err)
	assert.Equal(t, "#e67e22", cfg.Palette.Primary)

	_, err = LookupTemplate("retro")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestSkillCategoriesAndLevels(t *testing.T) {
	assert.Len(t, SkillCategories, 8)
	assert.True(t, IsSkillCategory("Databases"))
	assert.False(t, IsSkillCategory("databases"))
	assert.Equal(t, "Beginner", LevelLabel(1))
	assert.Equal(t, "Master", LevelLabel(5))
	assert.Equal(t, "", LevelLabel(0))
}

func TestNormalizeExperience_CurrentClearsEndDate(t *testing.T) {
	e := WorkExperience{Current: true, EndDate: "2024-01", Achievements: StringList{" shipped ", ""}}
	NormalizeExperience(&e)
	assert.Empty(t, e.EndDate)
	assert.Equal(t, StringList{"shipped"}, e.Achievements)
}
