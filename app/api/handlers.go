package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/dirfeed/app/atom"
	"github.com/lysyi3m/dirfeed/app/library"
	"github.com/lysyi3m/dirfeed/app/page"
	"github.com/lysyi3m/dirfeed/app/preset"
)

const (
	atomContentType  = "application/atom+xml; charset=utf-8"
	xhtmlContentType = "application/xhtml+xml; charset=utf-8"
)

type Handler struct {
	scanner    ScannerInterface
	presets    *preset.Store
	files      FileCounterInterface
	filterer   *library.Filterer
	serializer *atom.Serializer
	responses  *responseCache
	opts       Options
}

// NewHandler wires the HTTP handlers. files may be nil when no registry is
// configured.
func NewHandler(scanner ScannerInterface, presets *preset.Store, files FileCounterInterface, opts Options) *Handler {
	generator := atom.DefaultGenerator
	if opts.Version != "" {
		generator.Version = opts.Version
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Handler{
		scanner:    scanner,
		presets:    presets,
		files:      files,
		filterer:   library.NewFilterer(),
		serializer: atom.NewSerializer(atom.Defaults{Lang: atom.DefaultLang, Generator: &generator}),
		responses:  newResponseCache(opts.CacheTTL),
		opts:       opts,
	}
}

// GetIndex serves the Atom feed when format=atom and the HTML listing
// otherwise.
func (h *Handler) GetIndex(c *gin.Context) {
	dateType := preset.NormalizeDateType(c.Query("dateType"))

	format := "listing"
	if c.Query("format") == "atom" {
		format = "atom"
	}
	key := format + ":" + dateType

	if out, ok := h.responses.get(key); ok {
		slog.Debug("Serving cached response", "key", key)
		h.write(c, dateType, out)
		return
	}

	var out rendered
	var ok bool
	if format == "atom" {
		out, ok = h.getFeed(c, dateType)
	} else {
		out, ok = h.getListing(c, dateType)
	}
	if !ok {
		return
	}

	h.responses.set(key, out)
	h.write(c, dateType, out)
}

// Invalidate drops every cached feed and listing.
func (h *Handler) Invalidate() {
	h.responses.flush()
}

func (h *Handler) write(c *gin.Context, dateType string, out rendered) {
	if out.ContentType == atomContentType {
		c.Header("X-Feed-Entries", strconv.Itoa(out.Entries))
		c.Header("X-Feed-Date-Type", dateType)
	}
	c.Data(http.StatusOK, out.ContentType, out.Body)
}

func (h *Handler) visibleDocuments(c *gin.Context, p *preset.Preset) ([]library.Document, bool) {
	docs, err := h.scanner.Scan(c.Request.Context())
	if err != nil {
		slog.Error("Failed to scan data directory", "error", err)
		c.Status(http.StatusInternalServerError)
		return nil, false
	}
	return h.filterer.Run(docs, p.Filters), true
}

func (h *Handler) getFeed(c *gin.Context, dateType string) (rendered, bool) {
	p := h.presets.Get()

	docs, ok := h.visibleDocuments(c, p)
	if !ok {
		return rendered{}, false
	}

	base := p.Feed(dateType)
	if base.Base == "" && h.opts.BaseUrl != "" {
		base.Base = h.opts.BaseUrl
	}

	maxEntries := h.opts.MaxEntries
	if p.MaxEntries > 0 {
		maxEntries = p.MaxEntries
	}

	feed := library.BuildFeed(base, docs, library.FeedOptions{
		DateType:   dateType,
		MaxEntries: maxEntries,
		TitleCase:  p.TitleCase,
		Now:        h.opts.Now,
	})

	out, err := h.serializer.Run(feed)
	if err != nil {
		slog.Error("Atom generation error", "date_type", dateType, "error", err)
		c.Status(http.StatusInternalServerError)
		return rendered{}, false
	}

	slog.Debug("Feed rendered", "date_type", dateType, "entries", len(feed.Entries))

	return rendered{ContentType: atomContentType, Body: []byte(out), Entries: len(feed.Entries)}, true
}

func (h *Handler) getListing(c *gin.Context, dateType string) (rendered, bool) {
	p := h.presets.Get()

	docs, ok := h.visibleDocuments(c, p)
	if !ok {
		return rendered{}, false
	}

	library.Sort(docs, dateType)

	items := make([]page.Item, 0, len(docs))
	for _, doc := range docs {
		items = append(items, page.Item{
			Href:  library.FileHref(doc.Name),
			Label: doc.Title,
			Time:  doc.Time(dateType),
		})
	}

	alternates := make([]page.Alternate, 0, len(preset.DateTypes))
	for _, dt := range preset.DateTypes {
		alternates = append(alternates, page.Alternate{
			Href:  "?format=atom&dateType=" + dt,
			Title: p.Feed(dt).Title.Content,
			Type:  "application/atom+xml",
		})
	}

	out := page.Listing(p.PageTitle(dateType), p.PageHeading(dateType), alternates, items)
	return rendered{ContentType: xhtmlContentType, Body: []byte(out), Entries: len(items)}, true
}

// GetFile serves a data file as is.
func (h *Handler) GetFile(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("name"), "/")

	path, err := h.scanner.Open(name)
	if err != nil {
		slog.Debug("File not found", "file", name, "error", err)
		c.Status(http.StatusNotFound)
		return
	}

	mediaType, ok := library.MediaTypeForName(name)
	if !ok {
		mtype, err := mimetype.DetectFile(path)
		if err != nil {
			slog.Error("Failed to detect file type", "file", name, "error", err)
			c.Status(http.StatusInternalServerError)
			return
		}
		mediaType = mtype.String()
	}

	c.Header("Content-Type", mediaType)
	c.File(path)
}

// PostRender serializes a JSON feed description.
func (h *Handler) PostRender(c *gin.Context) {
	var f atom.Feed
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid feed description",
			"details": err.Error(),
		})
		return
	}

	out, err := h.serializer.Run(&f)
	if err != nil {
		var atomErr *atom.Error
		if errors.As(err, &atomErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": atomErr.Error(),
				"kind":  atomErr.Kind,
				"field": atomErr.Field,
				"scope": atomErr.Scope,
			})
			return
		}
		slog.Error("Atom generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, atomContentType, []byte(out))
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"status":    "ok",
		"timestamp": h.opts.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.opts.Version,
		"preset":    h.presets.Path(),
	}

	if h.files != nil {
		if fileCount, err := h.files.GetFileCount(c.Request.Context()); err == nil {
			health["files"] = fileCount
		} else {
			slog.Error("Database error", "operation", "get_file_count", "error", err)
		}
	}

	c.JSON(http.StatusOK, health)
}
