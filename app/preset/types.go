package preset

import (
	"strings"

	"github.com/lysyi3m/dirfeed/app/atom"
)

// Date types select which file time orders a feed or listing
const (
	DateTypePublished = "published"
	DateTypeUpdated   = "updated"
)

var DateTypes = []string{DateTypePublished, DateTypeUpdated}

// NormalizeDateType maps anything but "updated" to "published".
func NormalizeDateType(dateType string) string {
	if dateType == DateTypeUpdated {
		return DateTypeUpdated
	}
	return DateTypePublished
}

// Preset is the feed and page metadata loaded from the preset file
type Preset struct {
	Page       Page                  `yaml:"page"`
	Feeds      map[string]*atom.Feed `yaml:"feeds"`
	Filters    []Filter              `yaml:"filters"`
	MaxEntries int                   `yaml:"max_entries"`
	TitleCase  bool                  `yaml:"title_case"` // title-case entry titles derived from file names
}

type Page struct {
	Title   string `yaml:"title"`   // may contain {dateType}
	Heading string `yaml:"heading"` // defaults to the title
}

type Filter struct {
	Field    string   `yaml:"field"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// Feed returns a copy of the feed metadata for dateType that callers may
// fill with entries.
func (p *Preset) Feed(dateType string) *atom.Feed {
	f, ok := p.Feeds[NormalizeDateType(dateType)]
	if !ok || f == nil {
		return &atom.Feed{}
	}
	feed := *f
	return &feed
}

func (p *Preset) PageTitle(dateType string) string {
	return strings.ReplaceAll(p.Page.Title, "{dateType}", NormalizeDateType(dateType))
}

func (p *Preset) PageHeading(dateType string) string {
	if p.Page.Heading == "" {
		return p.PageTitle(dateType)
	}
	return strings.ReplaceAll(p.Page.Heading, "{dateType}", NormalizeDateType(dateType))
}
