package atom

// scope is the canonical form of a feed, source or entry: every collection
// is a single ordered slice. It shares no slices with the caller's value.
type scope struct {
	authors      []Person
	contributors []Person
	links        []Link
	categories   []Category
	entries      []Entry
}

func canonicalFeed(f *Feed) scope {
	return scope{
		authors:      collect(f.Authors, f.Author),
		contributors: collect(f.Contributors, f.Contributor),
		links:        collect(f.Links, f.Link),
		categories:   collect(f.Categories, f.Category),
		entries:      collect(f.Entries, f.Entry),
	}
}

func canonicalEntry(e *Entry) scope {
	return scope{
		authors:      collect(e.Authors, e.Author),
		contributors: collect(e.Contributors, e.Contributor),
		links:        collect(e.Links, e.Link),
		categories:   collect(e.Categories, e.Category),
	}
}

// collect returns a copy of plural when it is non-empty, else a one-element
// slice holding *singular, else nil.
func collect[T any](plural []T, singular *T) []T {
	if len(plural) > 0 {
		out := make([]T, len(plural))
		copy(out, plural)
		return out
	}
	if singular != nil {
		return []T{*singular}
	}
	return nil
}

// entrySource returns the out-of-line content reference of e, if any.
func entrySource(e *Entry) string {
	if e.Src != "" {
		return e.Src
	}
	if e.Content != nil {
		return e.Content.Src
	}
	return ""
}
