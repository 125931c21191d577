package atom

import (
	"errors"
	"fmt"
)

// ErrorKind identifies which rule a feed description violated.
type ErrorKind string

const (
	KindMissingRequiredProperty      ErrorKind = "missing_required_property"
	KindAuthorRequirementNotMet      ErrorKind = "author_requirement_not_met"
	KindLinkMissingHref              ErrorKind = "link_missing_href"
	KindCategoryMissingTerm          ErrorKind = "category_missing_term"
	KindEntryMissingRequiredProperty ErrorKind = "entry_missing_required_property"
	KindTooManyEntries               ErrorKind = "too_many_entries"
	KindNoEntries                    ErrorKind = "no_entries"
)

// Scopes reported in Error.Scope.
const (
	ScopeFeed   = "feed"
	ScopeSource = "source"
	ScopeEntry  = "entry"
)

// Error is returned for every invalid feed description. All of them are
// caller input errors.
type Error struct {
	Kind  ErrorKind
	Field string
	Scope string
}

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrMissingRequiredProperty      = &Error{Kind: KindMissingRequiredProperty}
	ErrAuthorRequirementNotMet      = &Error{Kind: KindAuthorRequirementNotMet}
	ErrLinkMissingHref              = &Error{Kind: KindLinkMissingHref}
	ErrCategoryMissingTerm          = &Error{Kind: KindCategoryMissingTerm}
	ErrEntryMissingRequiredProperty = &Error{Kind: KindEntryMissingRequiredProperty}
	ErrTooManyEntries               = &Error{Kind: KindTooManyEntries}
	ErrNoEntries                    = &Error{Kind: KindNoEntries}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindMissingRequiredProperty:
		return fmt.Sprintf("the required property %q was not supplied", e.Field)
	case KindAuthorRequirementNotMet:
		return fmt.Sprintf("the authors requirement was not met for the %s", e.scope())
	case KindLinkMissingHref:
		return fmt.Sprintf("a link in the %s is missing the required \"href\" attribute", e.scope())
	case KindCategoryMissingTerm:
		return fmt.Sprintf("a category in the %s is missing the required \"term\" attribute", e.scope())
	case KindEntryMissingRequiredProperty:
		return fmt.Sprintf("entry is missing the required property %q", e.Field)
	case KindTooManyEntries:
		return "no feed id, title or updated was supplied and more than one entry was given for a single-entry document"
	case KindNoEntries:
		return "no feed id, title or updated was supplied and no entry was given for a single-entry document"
	default:
		return string(e.Kind)
	}
}

// Is matches errors of the same kind so callers can use the sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

func (e *Error) scope() string {
	if e.Scope == "" {
		return ScopeFeed
	}
	return e.Scope
}

func missingProperty(field string) *Error {
	return &Error{Kind: KindMissingRequiredProperty, Field: field, Scope: ScopeFeed}
}

func authorsNotMet(scope string) *Error {
	return &Error{Kind: KindAuthorRequirementNotMet, Scope: scope}
}
