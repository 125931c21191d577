package preset

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sync"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/lysyi3m/dirfeed/app/atom"
)

// Store holds the current preset and reloads it from disk on demand
type Store struct {
	path   string
	preset *Preset
	mu     sync.RWMutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads, validates and caches the preset file. A missing file yields
// the built-in defaults. On error the previously cached preset is kept.
func (s *Store) Load() (*Preset, error) {
	preset, err := s.parsePreset()
	if err != nil {
		return nil, err
	}

	setDefaults(preset)

	if err := validatePreset(preset); err != nil {
		return nil, fmt.Errorf("invalid preset %s: %w", s.path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.preset = preset

	slog.Debug("Preset loaded", "path", s.path, "feeds", len(preset.Feeds), "filters", len(preset.Filters))

	return preset, nil
}

// Get returns the cached preset, or the defaults if nothing was loaded.
func (s *Store) Get() *Preset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.preset == nil {
		preset := &Preset{}
		setDefaults(preset)
		return preset
	}
	return s.preset
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) parsePreset() (*Preset, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		slog.Debug("Preset file not found, using defaults", "path", s.path)
		return &Preset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var preset Preset
	if err := yaml.Unmarshal(data, &preset); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &preset, nil
}

func setDefaults(preset *Preset) {
	if preset.Page.Title == "" {
		preset.Page.Title = "dirfeed ({dateType})"
	}

	if preset.Feeds == nil {
		preset.Feeds = make(map[string]*atom.Feed, len(DateTypes))
	}
	for _, dateType := range DateTypes {
		if preset.Feeds[dateType] == nil {
			preset.Feeds[dateType] = &atom.Feed{
				ID:     "urn:dirfeed:" + dateType,
				Title:  atom.PlainText("dirfeed (" + dateType + ")"),
				Author: &atom.Person{Name: "dirfeed"},
			}
		}
	}
}

func validatePreset(preset *Preset) error {
	if preset.MaxEntries < 0 {
		return fmt.Errorf("max entries must be non-negative")
	}

	for dateType, feed := range preset.Feeds {
		if !slices.Contains(DateTypes, dateType) {
			return fmt.Errorf("unknown feed date type: %s", dateType)
		}

		requiredFeedFields := map[string]string{
			"id":    feed.ID,
			"title": feed.Title.Content,
		}
		for fieldName, fieldValue := range requiredFeedFields {
			if fieldValue == "" {
				return fmt.Errorf("feed %s: %s is required", dateType, fieldName)
			}
		}

		// Entries built from files carry no authors
		hasEntries := feed.Entry != nil || len(feed.Entries) > 0
		if !hasEntries && feed.Author == nil && len(feed.Authors) == 0 {
			return fmt.Errorf("feed %s: at least one author is required", dateType)
		}

		if feed.Lang.Tag != "" {
			tag, err := language.Parse(feed.Lang.Tag)
			if err != nil {
				return fmt.Errorf("feed %s: invalid lang %q: %w", dateType, feed.Lang.Tag, err)
			}
			feed.Lang.Tag = tag.String()
		}

		if err := checkRenders(feed); err != nil {
			return fmt.Errorf("feed %s: %w", dateType, err)
		}
	}

	validFields := map[string]bool{
		"name":    true,
		"title":   true,
		"content": true,
		"type":    true,
	}

	for i, filter := range preset.Filters {
		if !validFields[filter.Field] {
			return fmt.Errorf("invalid filter field at index %d: %s", i, filter.Field)
		}
		if len(filter.Includes) == 0 && len(filter.Excludes) == 0 {
			return fmt.Errorf("filter at index %d must have at least one include or exclude rule", i)
		}
	}

	return nil
}

// checkRenders serializes a copy of feed the way the server will, with a
// stand-in file entry when the preset lists no entries of its own.
func checkRenders(feed *atom.Feed) error {
	epoch := atom.At(time.Unix(0, 0).UTC())

	sample := *feed
	if sample.Updated.IsZero() {
		sample.Updated = epoch
	}
	if sample.Entry == nil && len(sample.Entries) == 0 {
		sample.Entries = []atom.Entry{{
			ID:      "sample.txt",
			Title:   atom.PlainText("sample"),
			Updated: epoch,
		}}
	}

	_, err := atom.Render(&sample)
	return err
}
