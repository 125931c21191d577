package preset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testPreset = `
page:
  title: "Brett's main page ({dateType})"

feeds:
  published:
    id: "http://brett-zamir.me/published"
    title: "Brett's main page (Atom)"
    base: "http://127.0.0.1:1338/"
    lang: en-us
    authors:
      - name: "Brett Zamir"
    links:
      - title: "Atom feed (new posts)"
        rel: self
        href: "http://brett-zamir.me/?format=atom&dateType=published"
  updated:
    id: "http://brett-zamir.me/updated"
    title: "Brett's main page (Atom)"
    author: "Brett Zamir"

filters:
  - field: "title"
    excludes:
      - "draft"

max_entries: 10
title_case: true
`

func writePreset(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "feed.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStoreLoadValidPreset(t *testing.T) {
	store := NewStore(writePreset(t, testPreset))

	preset, err := store.Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(preset.Feeds) != 2 {
		t.Errorf("Expected 2 feeds, got %d", len(preset.Feeds))
	}

	published := preset.Feeds[DateTypePublished]
	if published.ID != "http://brett-zamir.me/published" {
		t.Errorf("Expected published feed id, got '%s'", published.ID)
	}
	if published.Lang.Tag != "en-US" {
		t.Errorf("Expected canonical lang 'en-US', got '%s'", published.Lang.Tag)
	}
	if len(published.Links) != 1 || published.Links[0].Rel != "self" {
		t.Errorf("Expected one self link, got %+v", published.Links)
	}

	updated := preset.Feeds[DateTypeUpdated]
	if updated.Author == nil || updated.Author.Name != "Brett Zamir" {
		t.Errorf("Expected author shorthand to be decoded, got %+v", updated.Author)
	}

	if len(preset.Filters) != 1 || preset.Filters[0].Excludes[0] != "draft" {
		t.Errorf("Expected one exclude filter, got %+v", preset.Filters)
	}
	if preset.MaxEntries != 10 {
		t.Errorf("Expected max entries 10, got %d", preset.MaxEntries)
	}
	if !preset.TitleCase {
		t.Error("Expected title case to be enabled")
	}
	if store.Get() != preset {
		t.Error("Get should return the loaded preset")
	}
}

func TestStoreLoadMissingFileUsesDefaults(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.yml"))

	preset, err := store.Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	for _, dateType := range DateTypes {
		feed := preset.Feeds[dateType]
		if feed == nil {
			t.Fatalf("Expected default feed for %s", dateType)
		}
		if feed.ID != "urn:dirfeed:"+dateType {
			t.Errorf("Expected default id for %s, got '%s'", dateType, feed.ID)
		}
		if feed.Author == nil {
			t.Errorf("Expected default author for %s", dateType)
		}
	}

	if preset.PageTitle("updated") != "dirfeed (updated)" {
		t.Errorf("Expected default page title, got '%s'", preset.PageTitle("updated"))
	}
}

func TestStoreGetBeforeLoad(t *testing.T) {
	store := NewStore("unused.yml")

	preset := store.Get()
	if preset == nil || len(preset.Feeds) != 2 {
		t.Fatalf("Expected default preset with two feeds, got %+v", preset)
	}
}

func TestStoreLoadInvalidPresets(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "invalid yaml",
			content: "feeds: [",
			errMsg:  "failed to parse YAML",
		},
		{
			name: "unknown date type",
			content: `
feeds:
  yearly:
    id: "urn:x"
    title: "x"
    author: "A"
`,
			errMsg: "unknown feed date type",
		},
		{
			name: "missing id",
			content: `
feeds:
  published:
    title: "x"
    author: "A"
`,
			errMsg: "id is required",
		},
		{
			name: "missing author",
			content: `
feeds:
  published:
    id: "urn:x"
    title: "x"
`,
			errMsg: "at least one author is required",
		},
		{
			name: "unnamed author",
			content: `
feeds:
  published:
    id: "urn:x"
    title: "x"
    author:
      email: "a@example.com"
`,
			errMsg: "authors requirement was not met",
		},
		{
			name: "entries without authors",
			content: `
feeds:
  published:
    id: "urn:x"
    title: "x"
    entries:
      - id: "urn:e"
        title: "e"
        updated: "2020-01-01T00:00:00Z"
`,
			errMsg: "authors requirement was not met",
		},
		{
			name: "link without href",
			content: `
feeds:
  updated:
    id: "urn:x"
    title: "x"
    author: "A"
    links:
      - rel: self
`,
			errMsg: "missing the required \"href\" attribute",
		},
		{
			name: "invalid lang",
			content: `
feeds:
  published:
    id: "urn:x"
    title: "x"
    author: "A"
    lang: "toolongsubtag"
`,
			errMsg: "invalid lang",
		},
		{
			name: "invalid filter field",
			content: `
filters:
  - field: "size"
    includes: ["x"]
`,
			errMsg: "invalid filter field",
		},
		{
			name: "empty filter",
			content: `
filters:
  - field: "title"
`,
			errMsg: "must have at least one include or exclude rule",
		},
		{
			name:    "negative max entries",
			content: "max_entries: -1",
			errMsg:  "max entries must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(writePreset(t, tt.content))

			_, err := store.Load()
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Expected error containing '%s', got: %v", tt.errMsg, err)
			}
		})
	}
}

func TestStoreLoadKeepsPreviousOnError(t *testing.T) {
	path := writePreset(t, testPreset)
	store := NewStore(path)

	first, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("feeds: ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(); err == nil {
		t.Fatal("Expected error for broken preset")
	}

	if store.Get() != first {
		t.Error("Expected previous preset to be kept after a failed reload")
	}
}

func TestPresetFeedReturnsCopy(t *testing.T) {
	store := NewStore(writePreset(t, testPreset))
	preset, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}

	feed := preset.Feed("published")
	feed.ID = "changed"

	if preset.Feeds[DateTypePublished].ID == "changed" {
		t.Error("Feed should return a copy")
	}

	// Unknown date types fall back to published
	if preset.Feed("bogus").ID != "http://brett-zamir.me/published" {
		t.Errorf("Expected published feed for unknown date type, got '%s'", preset.Feed("bogus").ID)
	}
}

func TestPresetPageTitle(t *testing.T) {
	preset := &Preset{Page: Page{Title: "Main ({dateType})"}}

	if got := preset.PageTitle("updated"); got != "Main (updated)" {
		t.Errorf("Expected 'Main (updated)', got '%s'", got)
	}
	if got := preset.PageHeading("other"); got != "Main (published)" {
		t.Errorf("Expected heading to default to title, got '%s'", got)
	}

	preset.Page.Heading = "Posts by {dateType} date"
	if got := preset.PageHeading("updated"); got != "Posts by updated date" {
		t.Errorf("Expected custom heading, got '%s'", got)
	}
}

func TestNormalizeDateType(t *testing.T) {
	tests := map[string]string{
		"":          DateTypePublished,
		"published": DateTypePublished,
		"updated":   DateTypeUpdated,
		"UPDATED":   DateTypePublished,
	}

	for in, expected := range tests {
		if got := NormalizeDateType(in); got != expected {
			t.Errorf("NormalizeDateType(%q) = %q, expected %q", in, got, expected)
		}
	}
}

func TestStoreWatchReloads(t *testing.T) {
	path := writePreset(t, testPreset)
	store := NewStore(path)
	if _, err := store.Load(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan struct{}, 1)
	onReload := func() {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	}

	if err := store.Watch(ctx, 10*time.Millisecond, onReload); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	updated := strings.Replace(testPreset, "max_entries: 10", "max_entries: 3", 1)
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("Expected the reload callback to run")
	}
	if store.Get().MaxEntries != 3 {
		t.Errorf("Expected max entries 3 after reload, got %d", store.Get().MaxEntries)
	}
}
