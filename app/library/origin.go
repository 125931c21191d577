package library

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/lysyi3m/dirfeed/app/atom"
)

// OriginParser recognises data files that are themselves RSS or Atom feeds
// and describes them as an entry source
type OriginParser struct {
	gofeedParser *gofeed.Parser
}

func NewOriginParser() *OriginParser {
	return &OriginParser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *OriginParser) Run(data []byte) (*atom.Feed, error) {
	feed, err := p.gofeedParser.ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	id := cmp.Or(feed.FeedLink, feed.Link)
	if id == "" {
		return nil, fmt.Errorf("feed has no identifying link")
	}

	origin := &atom.Feed{
		ID:        id,
		Title:     atom.PlainText(strings.TrimSpace(feed.Title)),
		Subtitle:  atom.PlainText(strings.TrimSpace(feed.Description)),
		Generator: atom.NoGenerator,
	}

	if feed.UpdatedParsed != nil {
		origin.Updated = atom.At(*feed.UpdatedParsed)
	} else if feed.PublishedParsed != nil {
		origin.Updated = atom.At(*feed.PublishedParsed)
	}

	for _, author := range feed.Authors {
		if author != nil && author.Name != "" {
			origin.Authors = append(origin.Authors, atom.Person{Name: author.Name, Email: author.Email})
		}
	}

	if feed.Link != "" {
		origin.Links = append(origin.Links, atom.Link{Href: feed.Link, Rel: "alternate"})
	}
	if feed.FeedLink != "" {
		origin.Links = append(origin.Links, atom.Link{Href: feed.FeedLink, Rel: "self"})
	}

	for _, category := range feed.Categories {
		if category != "" {
			origin.Categories = append(origin.Categories, atom.Category{Term: category})
		}
	}

	return origin, nil
}
