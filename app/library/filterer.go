package library

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lysyi3m/dirfeed/app/preset"
)

// Filterer hides documents according to the preset include/exclude rules
type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

func (f *Filterer) Run(docs []Document, filters []preset.Filter) []Document {
	if len(filters) == 0 {
		return docs
	}

	visible := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if isFiltered, reason := f.applyFilters(doc, filters); isFiltered {
			slog.Debug("Document filtered", "file", doc.Name, "reason", reason)
			continue
		}
		visible = append(visible, doc)
	}

	return visible
}

func (f *Filterer) applyFilters(doc Document, filters []preset.Filter) (bool, string) {
	for _, filter := range filters {
		value := f.getFieldValue(doc, filter.Field)

		for _, exclude := range filter.Excludes {
			if f.matchesFilter(value, exclude) {
				return true, fmt.Sprintf("Excluded by %s filter: contains '%s'", filter.Field, exclude)
			}
		}

		if len(filter.Includes) > 0 {
			matched := false
			for _, include := range filter.Includes {
				if f.matchesFilter(value, include) {
					matched = true
					break
				}
			}
			if !matched {
				return true, fmt.Sprintf("Excluded by %s filter: does not contain any of %v", filter.Field, filter.Includes)
			}
		}
	}

	return false, ""
}

func (f *Filterer) matchesFilter(value, pattern string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}

func (f *Filterer) getFieldValue(doc Document, field string) string {
	switch field {
	case "name":
		return doc.Name
	case "title":
		return doc.Title
	case "content":
		return doc.Body
	case "type":
		return doc.MediaType
	default:
		return ""
	}
}
