package atom

// isSingleEntryDocument reports whether f carries none of the feed-level
// required properties, which makes it a bare <entry> document.
func isSingleEntryDocument(f *Feed) bool {
	return f.ID == "" && f.Title.IsZero() && f.Updated.IsZero()
}

func checkRequired(f *Feed) error {
	switch {
	case f.ID == "":
		return missingProperty("id")
	case f.Title.IsZero():
		return missingProperty("title")
	case f.Updated.IsZero():
		return missingProperty("updated")
	}
	return nil
}

// validateScope checks a feed (strict) or source (lenient) and, for a feed,
// every entry it carries.
//
// A feed needs named authors of its own or entries that supply them: at least
// one entry with authors, and no author-bearing entry with an unnamed author.
// When the entries supply them, the feed's own authors may lack a name.
// A source only needs every author it does carry to be named.
func validateScope(f *Feed, s scope, strict bool) error {
	name := ScopeSource
	if strict {
		name = ScopeFeed
	}

	if strict {
		ownAuthors := len(s.authors) > 0 && allNamed(s.authors)
		if !ownAuthors && !entriesSupplyAuthors(s.entries) {
			return authorsNotMet(name)
		}
	} else if !allNamed(s.authors) || !entryAuthorsNamed(s.entries) {
		return authorsNotMet(name)
	}

	if err := checkLinksAndCategories(s, name); err != nil {
		return err
	}

	if !strict {
		return nil
	}
	for i := range s.entries {
		if err := validateEntry(&s.entries[i], canonicalEntry(&s.entries[i])); err != nil {
			return err
		}
	}
	return nil
}

// validateEntry checks one entry and its nested source.
func validateEntry(e *Entry, s scope) error {
	switch {
	case e.ID == "":
		return &Error{Kind: KindEntryMissingRequiredProperty, Field: "id", Scope: ScopeEntry}
	case e.Title.IsZero():
		return &Error{Kind: KindEntryMissingRequiredProperty, Field: "title", Scope: ScopeEntry}
	case e.Updated.IsZero():
		return &Error{Kind: KindEntryMissingRequiredProperty, Field: "updated", Scope: ScopeEntry}
	}

	if !allNamed(s.authors) {
		return authorsNotMet(ScopeEntry)
	}
	if err := checkLinksAndCategories(s, ScopeEntry); err != nil {
		return err
	}

	if e.Source != nil {
		if err := validateScope(e.Source, canonicalFeed(e.Source), false); err != nil {
			return err
		}
	}
	return nil
}

// validateSingleEntry checks a document without feed metadata and returns
// the entry to render together with its canonical scope. Document-level
// authors stand in for the entry's when it has none.
func validateSingleEntry(f *Feed, s scope) (*Entry, scope, error) {
	switch {
	case len(s.entries) == 0:
		return nil, scope{}, &Error{Kind: KindNoEntries, Scope: ScopeEntry}
	case len(s.entries) > 1:
		return nil, scope{}, &Error{Kind: KindTooManyEntries, Scope: ScopeEntry}
	}

	entry := &s.entries[0]
	es := canonicalEntry(entry)
	if len(es.authors) == 0 {
		es.authors = s.authors
	}
	if len(es.authors) == 0 || !allNamed(es.authors) {
		return nil, scope{}, authorsNotMet(ScopeEntry)
	}

	if err := validateEntry(entry, es); err != nil {
		return nil, scope{}, err
	}
	return entry, es, nil
}

func checkLinksAndCategories(s scope, name string) error {
	for _, l := range s.links {
		if l.Href == "" {
			return &Error{Kind: KindLinkMissingHref, Scope: name}
		}
	}
	for _, c := range s.categories {
		if c.Term == "" {
			return &Error{Kind: KindCategoryMissingTerm, Scope: name}
		}
	}
	return nil
}

func allNamed(persons []Person) bool {
	for _, p := range persons {
		if p.Name == "" {
			return false
		}
	}
	return true
}

// entriesSupplyAuthors reports whether at least one entry has authors and
// every entry that has authors names all of them.
func entriesSupplyAuthors(entries []Entry) bool {
	found := false
	for i := range entries {
		authors := collect(entries[i].Authors, entries[i].Author)
		if len(authors) == 0 {
			continue
		}
		if !allNamed(authors) {
			return false
		}
		found = true
	}
	return found
}

func entryAuthorsNamed(entries []Entry) bool {
	for i := range entries {
		if !allNamed(collect(entries[i].Authors, entries[i].Author)) {
			return false
		}
	}
	return true
}
