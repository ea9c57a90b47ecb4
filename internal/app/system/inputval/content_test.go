package inputval

import (
	"testing"

	"github.com/dimondcastle/cms/internal/domain/models"
)

func TestContentFields(t *testing.T) {
	t.Run("valid content passes", func(t *testing.T) {
		lc := models.LocaleContent{
			Title: "About",
			Sections: []models.Section{
				{
					Key: models.SectionHero,
					Blocks: []models.Block{
						{Type: models.BlockHeading, Text: "Welcome", Level: 1},
						{Type: models.BlockParagraph, Text: "Hello"},
					},
				},
			},
		}
		if fields := ContentFields("en", lc); len(fields) != 0 {
			t.Errorf("valid content produced errors: %+v", fields)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		fields := ContentFields("en", models.LocaleContent{})
		if fields["en.title"] == "" {
			t.Errorf("missing title not reported: %+v", fields)
		}
	})

	t.Run("unknown section key", func(t *testing.T) {
		lc := models.LocaleContent{
			Title:    "X",
			Sections: []models.Section{{Key: "sidebar"}},
		}
		fields := ContentFields("en", lc)
		if fields["en.sections[0].key"] == "" {
			t.Errorf("unknown section key not reported: %+v", fields)
		}
	})

	t.Run("unknown block type", func(t *testing.T) {
		lc := models.LocaleContent{
			Title: "X",
			Sections: []models.Section{
				{
					Key:    models.SectionRichText,
					Blocks: []models.Block{{Type: "marquee", Text: "x"}},
				},
			},
		}
		fields := ContentFields("en", lc)
		if fields["en.sections[0].blocks[0].type"] == "" {
			t.Errorf("unknown block type not reported: %+v", fields)
		}
	})

	t.Run("heading level out of range", func(t *testing.T) {
		lc := models.LocaleContent{
			Title: "X",
			Sections: []models.Section{
				{
					Key:    models.SectionRichText,
					Blocks: []models.Block{{Type: models.BlockHeading, Text: "x", Level: 7}},
				},
			},
		}
		fields := ContentFields("en", lc)
		if fields["en.sections[0].blocks[0].level"] == "" {
			t.Errorf("bad heading level not reported: %+v", fields)
		}
	})

	t.Run("hostile link href", func(t *testing.T) {
		lc := models.LocaleContent{
			Title: "X",
			Sections: []models.Section{
				{
					Key:    models.SectionRichText,
					Blocks: []models.Block{{Type: models.BlockLink, Href: "javascript:alert(1)", Label: "x"}},
				},
			},
		}
		fields := ContentFields("en", lc)
		if fields["en.sections[0].blocks[0].href"] == "" {
			t.Errorf("hostile href not reported: %+v", fields)
		}
	})

	t.Run("blocks inside grid rows checked", func(t *testing.T) {
		lc := models.LocaleContent{
			Title: "X",
			Sections: []models.Section{
				{
					Key: models.SectionRichText,
					Rows: []models.Row{
						{Cols: []models.GridCol{
							{Span: 6, Blocks: []models.Block{{Type: "widget"}}},
						}},
					},
				},
			},
		}
		fields := ContentFields("en", lc)
		if fields["en.sections[0].rows[0].cols[0].blocks[0].type"] == "" {
			t.Errorf("grid block type not reported: %+v", fields)
		}
	})
}

func TestMergeFields(t *testing.T) {
	dst := map[string]string{"a": "first"}
	MergeFields(dst, map[string]string{"a": "second", "b": "new"})
	if dst["a"] != "first" {
		t.Errorf("existing key overwritten: %q", dst["a"])
	}
	if dst["b"] != "new" {
		t.Errorf("new key not merged: %q", dst["b"])
	}
}
