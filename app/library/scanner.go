package library

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Registry remembers when files were first seen
type Registry interface {
	FirstSeen(ctx context.Context, name string, modified time.Time) (time.Time, error)
	Prune(ctx context.Context, present []string) (int64, error)
}

// Scanner reads the data directory into documents
type Scanner struct {
	dir          string
	registry     Registry
	limit        int
	extractor    *Extractor
	originParser *OriginParser
}

// NewScanner creates a scanner for dir. Without a registry documents are
// published at their modification time.
func NewScanner(dir string, registry Registry) *Scanner {
	return &Scanner{
		dir:          dir,
		registry:     registry,
		limit:        runtime.GOMAXPROCS(0),
		extractor:    NewExtractor(),
		originParser: NewOriginParser(),
	}
}

func (s *Scanner) Dir() string {
	return s.dir
}

// Scan stats and reads every regular, non-hidden file in the data directory.
// The result is in directory order.
func (s *Scanner) Scan(ctx context.Context) ([]Document, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}

	docs := make([]Document, len(names))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.limit)
	for i, name := range names {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			doc, err := s.load(name)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	if s.registry != nil {
		for i := range docs {
			published, err := s.registry.FirstSeen(ctx, docs[i].Name, docs[i].ModifiedAt)
			if err != nil {
				return nil, err
			}
			docs[i].PublishedAt = published
		}

		removed, err := s.registry.Prune(ctx, names)
		if err != nil {
			slog.Warn("Failed to prune file registry", "error", err)
		} else if removed > 0 {
			slog.Debug("Pruned file registry", "removed", removed)
		}
	}

	slog.Debug("Data directory scanned", "dir", s.dir, "files", len(docs))

	return docs, nil
}

// load reads a single file and fills everything but the publication time.
func (s *Scanner) load(name string) (Document, error) {
	path := filepath.Join(s.dir, name)

	info, err := os.Stat(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to stat %s: %w", name, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read %s: %w", name, err)
	}

	ext, title := splitName(name)
	t := detectType(ext, data)
	atomType, body := inlineBody(t, data)

	doc := Document{
		Name:        name,
		Title:       title,
		Extension:   ext,
		MediaType:   t.mediaType,
		AtomType:    atomType,
		Body:        body,
		Size:        info.Size(),
		ModifiedAt:  info.ModTime().UTC(),
		PublishedAt: info.ModTime().UTC(),
	}

	if atomType == "html" || atomType == "xhtml" {
		if summary, err := s.extractor.Run(name, data); err == nil {
			doc.Summary = summary
		} else {
			slog.Debug("No summary for document", "file", name, "error", err)
		}
	}

	if isXMLType(atomType) {
		if origin, err := s.originParser.Run(data); err == nil {
			doc.Origin = origin
		}
	}

	return doc, nil
}

// Open returns the path of a published file, refusing names that would
// escape the data directory.
func (s *Scanner) Open(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid file name: %q", name)
	}

	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", name, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", name)
	}
	return path, nil
}
