package atom

// DefaultGenerator is written as <generator> unless a feed sets its own or
// switches it off.
var DefaultGenerator = Generator{
	URI:     "https://github.com/lysyi3m/dirfeed",
	Content: "dirfeed",
	Version: "1.0",
}

// Defaults are substituted once per scope before emission.
type Defaults struct {
	// Lang is used for xml:lang when the document sets none. Empty omits it.
	Lang string
	// Generator is used when the feed sets none. Nil omits it.
	Generator *Generator
}

// Serializer turns feed descriptions into Atom documents. It holds no
// per-call state and is safe for concurrent use.
type Serializer struct {
	defaults Defaults
}

func NewSerializer(defaults Defaults) *Serializer {
	return &Serializer{defaults: defaults}
}

var defaultSerializer = NewSerializer(Defaults{Lang: DefaultLang, Generator: &DefaultGenerator})

// Render serializes f with the package defaults.
func Render(f *Feed) (string, error) {
	return defaultSerializer.Run(f)
}

// Run validates f and returns the Atom document. A description without id,
// title and updated becomes a single-entry document rooted at <entry>. On
// error no output is produced. f is not modified.
func (s *Serializer) Run(f *Feed) (string, error) {
	if f == nil {
		return "", missingProperty("id")
	}

	sc := canonicalFeed(f)
	root := s.rootAttributes(f)

	var w xmlWriter
	if isSingleEntryDocument(f) {
		entry, es, err := validateSingleEntry(f, sc)
		if err != nil {
			return "", err
		}
		w.buf.WriteString(xmlDeclaration)
		s.writeEntry(&w, entry, es, 0, root)
		return w.String(), nil
	}

	if err := checkRequired(f); err != nil {
		return "", err
	}
	if err := validateScope(f, sc, true); err != nil {
		return "", err
	}

	w.buf.WriteString(xmlDeclaration)
	w.open("feed", 0, root)
	s.writeFeedOrSource(&w, f, sc, 1, true)
	w.close("feed", 0)
	return w.String(), nil
}

func (s *Serializer) rootAttributes(f *Feed) string {
	lang := f.Lang.Tag
	if lang == "" {
		lang = s.defaults.Lang
	}
	if f.Lang.Disabled {
		lang = ""
	}
	return attributes(
		"xmlns", Namespace,
		"xml:base", f.Base,
		"xml:lang", lang,
	)
}

func (s *Serializer) generator(f *Feed) *Generator {
	g := f.Generator
	if g == nil || (*g == Generator{}) {
		return s.defaults.Generator
	}
	if g.Disabled {
		return nil
	}
	return g
}

// writeFeedOrSource writes the children of <feed> (isFeed) or <source>.
// Entries are only written for a feed.
func (s *Serializer) writeFeedOrSource(w *xmlWriter, f *Feed, sc scope, level int, isFeed bool) {
	w.escapedElement("id", level, f.ID)
	w.escapedElement("icon", level, f.Icon)
	w.escapedElement("logo", level, f.Logo)
	if !f.Updated.IsZero() {
		w.element("updated", level, EscapeContent(FormatDate(f.Updated)), "")
	}

	writePersons(w, sc, level)

	w.writeText("title", level, f.Title)
	w.writeText("subtitle", level, f.Subtitle)
	w.writeText("rights", level, f.Rights)

	if g := s.generator(f); g != nil && !g.Disabled {
		w.element("generator", level, EscapeContent(g.Content), attributes("uri", g.URI, "version", g.Version))
	}

	writeLinksAndCategories(w, sc, level)
	w.raw(level, f.ExtensionElements)

	if !isFeed {
		return
	}
	for i := range sc.entries {
		s.writeEntry(w, &sc.entries[i], canonicalEntry(&sc.entries[i]), level, "")
	}
}

// writeEntry writes one <entry>. attrs is non-empty only for the root of a
// single-entry document.
func (s *Serializer) writeEntry(w *xmlWriter, e *Entry, sc scope, level int, attrs string) {
	next := level + 1

	w.open("entry", level, attrs)

	w.escapedElement("id", next, e.ID)
	w.element("updated", next, EscapeContent(FormatDate(e.Updated)), "")
	if !e.Published.IsZero() {
		w.element("published", next, EscapeContent(FormatDate(e.Published)), "")
	}

	writePersons(w, sc, next)

	w.writeText("title", next, e.Title)
	w.writeText("summary", next, e.Summary)
	w.writeText("rights", next, e.Rights)

	writeLinksAndCategories(w, sc, next)
	w.raw(next, e.ExtensionElements)

	if e.Source != nil {
		w.open("source", next, "")
		s.writeFeedOrSource(w, e.Source, canonicalFeed(e.Source), next+1, false)
		w.close("source", next)
	}

	w.writeContent(e, next)

	w.close("entry", level)
}

func writePersons(w *xmlWriter, sc scope, level int) {
	groups := []struct {
		element string
		persons []Person
	}{
		{"author", sc.authors},
		{"contributor", sc.contributors},
	}

	for _, group := range groups {
		for _, p := range group.persons {
			w.open(group.element, level, "")
			w.escapedElement("name", level+1, p.Name)
			w.escapedElement("uri", level+1, p.URI)
			w.escapedElement("email", level+1, p.Email)
			w.raw(level+1, p.ExtensionElements)
			w.close(group.element, level)
		}
	}
}

func writeLinksAndCategories(w *xmlWriter, sc scope, level int) {
	for _, l := range sc.links {
		w.element("link", level, l.Content, attributes(
			"href", l.Href,
			"rel", l.Rel,
			"type", l.Type,
			"hreflang", l.Hreflang,
			"title", l.Title,
			"length", l.Length,
		))
	}
	for _, c := range sc.categories {
		w.element("category", level, c.Content, attributes(
			"term", c.Term,
			"scheme", c.Scheme,
			"label", c.Label,
		))
	}
}
