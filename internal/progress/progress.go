// Package progress computes document-collection completion from a config
// and a startup's upload records. It is the single implementation used by
// the startup dashboard, the admin overview, message variables, and the
// submit gate.
package progress

import (
	"fmt"
	"math"

	"github.com/fundbase/docportal/internal/models"
)

type CategoryProgress struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Uploaded int    `json:"uploaded"`
	Required int    `json:"required"`
}

type Summary struct {
	Percent    int                `json:"percent"`
	Uploaded   int                `json:"uploaded"`
	Required   int                `json:"required"`
	Categories []CategoryProgress `json:"categories"`
}

// Complete reports whether every required item has an upload.
func (s Summary) Complete() bool {
	return s.Percent >= 100
}

// matches reports whether doc satisfies the (category, item) pair.
// Extra uploads never count toward progress.
func matches(doc *models.Document, categoryID, itemID string) bool {
	return !doc.IsExtra && doc.Category == categoryID && doc.Name == itemID
}

// Overall tallies required items against upload records.
//
// Rules: a nil config yields 0% with no categories (missing config means
// nothing can be collected yet); a config whose categories require nothing
// yields 100% (nothing required is fully satisfied).
func Overall(config *models.DocumentConfig, docs []models.Document) Summary {
	if config == nil {
		return Summary{Percent: 0, Categories: []CategoryProgress{}}
	}

	summary := Summary{Categories: make([]CategoryProgress, 0, len(config.Categories))}
	for _, cat := range config.Categories {
		cp := CategoryProgress{ID: cat.ID, Name: cat.Name}
		for _, item := range cat.Documents {
			if !item.Required {
				continue
			}
			cp.Required++
			for i := range docs {
				if matches(&docs[i], cat.ID, item.ID) {
					cp.Uploaded++
					break
				}
			}
		}
		summary.Uploaded += cp.Uploaded
		summary.Required += cp.Required
		summary.Categories = append(summary.Categories, cp)
	}

	if summary.Required == 0 {
		summary.Percent = 100
		return summary
	}
	summary.Percent = int(math.Round(float64(summary.Uploaded) / float64(summary.Required) * 100))
	return summary
}

// Status splits the required items into uploaded and missing display lists,
// each entry rendered as "Category name: Item name".
func Status(config *models.DocumentConfig, docs []models.Document) (uploaded, missing []string) {
	uploaded = []string{}
	missing = []string{}
	if config == nil {
		return uploaded, missing
	}
	for _, cat := range config.Categories {
		for _, item := range cat.Documents {
			if !item.Required {
				continue
			}
			entry := fmt.Sprintf("%s: %s", cat.Name, item.Name)
			found := false
			for i := range docs {
				if matches(&docs[i], cat.ID, item.ID) {
					found = true
					break
				}
			}
			if found {
				uploaded = append(uploaded, entry)
			} else {
				missing = append(missing, entry)
			}
		}
	}
	return uploaded, missing
}
