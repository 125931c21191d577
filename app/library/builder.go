package library

import (
	"net/url"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lysyi3m/dirfeed/app/atom"
	"github.com/lysyi3m/dirfeed/app/preset"
)

// FilesPrefix is the path under which raw files are served
const FilesPrefix = "files/"

type FeedOptions struct {
	DateType   string
	MaxEntries int  // 0 for no limit
	TitleCase  bool // title-case entry titles
	Now        func() time.Time
}

// Sort orders documents newest first by the time dateType selects, then
// by name.
func Sort(docs []Document, dateType string) {
	slices.SortStableFunc(docs, func(a, b Document) int {
		if c := b.Time(dateType).Compare(a.Time(dateType)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
}

// FileHref returns the relative link to a raw file.
func FileHref(name string) string {
	return FilesPrefix + url.PathEscape(name)
}

// Entry maps a document to an Atom entry.
func (d Document) Entry(titleCase bool) atom.Entry {
	title := d.Title
	if titleCase {
		title = cases.Title(language.Und, cases.NoLower).String(title)
	}

	entry := atom.Entry{
		ID:        d.Name,
		Title:     atom.PlainText(title),
		Updated:   atom.At(d.ModifiedAt),
		Published: atom.At(d.PublishedAt),
		Link: &atom.Link{
			Href: FileHref(d.Name),
			Rel:  "alternate",
			Type: d.MediaType,
		},
		Content: &atom.Content{
			Type:    d.AtomType,
			Content: d.Body,
		},
		Source: d.Origin,
	}

	if d.Summary != "" {
		entry.Summary = atom.PlainText(d.Summary)
	}

	return entry
}

// BuildFeed fills a copy of base with entries for docs. Entries defined by
// base itself take precedence over the documents. A missing updated date
// is taken from the newest entry, or the current time for an empty feed.
func BuildFeed(base *atom.Feed, docs []Document, opts FeedOptions) *atom.Feed {
	feed := *base
	dateType := preset.NormalizeDateType(opts.DateType)

	if feed.Entry == nil && len(feed.Entries) == 0 {
		sorted := slices.Clone(docs)
		Sort(sorted, dateType)
		if opts.MaxEntries > 0 && len(sorted) > opts.MaxEntries {
			sorted = sorted[:opts.MaxEntries]
		}

		feed.Entries = make([]atom.Entry, 0, len(sorted))
		for _, doc := range sorted {
			feed.Entries = append(feed.Entries, doc.Entry(opts.TitleCase))
		}
	}

	if feed.Updated.IsZero() {
		feed.Updated = newestDate(&feed, dateType, opts.Now)
	}

	return &feed
}

func newestDate(feed *atom.Feed, dateType string, now func() time.Time) atom.Date {
	entries := feed.Entries
	if len(entries) == 0 && feed.Entry != nil {
		entries = []atom.Entry{*feed.Entry}
	}

	if len(entries) > 0 {
		first := entries[0]
		if dateType == preset.DateTypeUpdated || first.Published.IsZero() {
			return first.Updated
		}
		return first.Published
	}

	if now == nil {
		now = time.Now
	}
	return atom.At(now().UTC())
}
