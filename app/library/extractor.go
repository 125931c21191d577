package library

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
)

// Extractor derives plain text summaries from HTML documents
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Run(name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("HTML data is empty")
	}

	pageURL := &url.URL{Scheme: "file", Path: "/" + name}
	article, err := readability.FromReader(strings.NewReader(string(data)), pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract summary: %w", err)
	}

	excerpt := strings.Join(strings.Fields(article.Excerpt), " ")
	if excerpt == "" {
		return "", fmt.Errorf("no summary extracted from HTML data")
	}

	slog.Debug("Summary extracted", "file", name, "title", article.Title, "excerpt_length", len(excerpt))

	return excerpt, nil
}
