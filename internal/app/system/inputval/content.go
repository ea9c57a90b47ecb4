package inputval

import (
	"fmt"
	"strings"

	"github.com/dimondcastle/cms/internal/domain/models"
)

// ContentFields checks a locale's section/block tree against the closed
// section and block vocabularies and returns field errors keyed under
// prefix ("en", "ar"). Writes with unknown tags are rejected here; the
// renderer stays lenient for documents that predate a vocabulary change.
func ContentFields(prefix string, lc models.LocaleContent) map[string]string {
	out := map[string]string{}
	if strings.TrimSpace(lc.Title) == "" {
		out[prefix+".title"] = "Title is required."
	}
	for i, sec := range lc.Sections {
		checkSection(out, fmt.Sprintf("%s.sections[%d]", prefix, i), sec)
	}
	return out
}

// ProductContentFields is ContentFields for a product locale, which carries
// a name instead of a title.
func ProductContentFields(prefix string, pl models.ProductLocale) map[string]string {
	out := map[string]string{}
	if strings.TrimSpace(pl.Name) == "" {
		out[prefix+".name"] = "Name is required."
	}
	for i, sec := range pl.Sections {
		checkSection(out, fmt.Sprintf("%s.sections[%d]", prefix, i), sec)
	}
	return out
}

func checkSection(out map[string]string, path string, sec models.Section) {
	if !models.IsValidSectionKey(sec.Key) {
		out[path+".key"] = "Unknown section key: " + string(sec.Key) + "."
	}
	for i, blk := range sec.Blocks {
		checkBlock(out, fmt.Sprintf("%s.blocks[%d]", path, i), blk)
	}
	for ri, row := range sec.Rows {
		for ci, col := range row.Cols {
			for bi, blk := range col.Blocks {
				checkBlock(out, fmt.Sprintf("%s.rows[%d].cols[%d].blocks[%d]", path, ri, ci, bi), blk)
			}
		}
	}
}

func checkBlock(out map[string]string, path string, blk models.Block) {
	if !models.IsValidBlockType(blk.Type) {
		out[path+".type"] = "Unknown block type: " + string(blk.Type) + "."
		return
	}
	if blk.Type == models.BlockHeading && (blk.Level < 0 || blk.Level > 6) {
		out[path+".level"] = "Heading level must be between 1 and 6."
	}
	if (blk.Type == models.BlockLink || blk.Type == models.BlockButton) && blk.Href != "" {
		if !strings.HasPrefix(blk.Href, "/") && !strings.HasPrefix(blk.Href, "#") && !IsValidHTTPURL(blk.Href) {
			out[path+".href"] = "Href must be a site path or an http(s) URL."
		}
	}
}

// MergeFields folds src into dst, keeping the first message per field.
func MergeFields(dst, src map[string]string) map[string]string {
	for k, v := range src {
		if _, ok := dst[k]; !ok {
			dst[k] = v
		}
	}
	return dst
}
