package library

import (
	"time"

	"github.com/lysyi3m/dirfeed/app/atom"
	"github.com/lysyi3m/dirfeed/app/preset"
)

// Document is a data file prepared for publishing
type Document struct {
	Name        string // File name inside the data directory
	Title       string // Name without extension
	Extension   string // Lowercase, without the dot
	MediaType   string // HTTP content type
	AtomType    string // Atom content type attribute
	Body        string // Inline content; base64 for binary media types
	Size        int64
	ModifiedAt  time.Time
	PublishedAt time.Time  // First time the file was seen
	Summary     string     // Plain text excerpt of HTML documents
	Origin      *atom.Feed // Metadata of the feed the file contains, if any
}

// Time returns the timestamp ordering the document for dateType.
func (d Document) Time(dateType string) time.Time {
	if preset.NormalizeDateType(dateType) == preset.DateTypeUpdated {
		return d.ModifiedAt
	}
	return d.PublishedAt
}
