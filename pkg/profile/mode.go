package profile

import (
	"fmt"
	"strings"
)

// SortMode selects the order in which a profile keeps its pairs.
// The zero value is SortByDateCreation.
type SortMode int

const (
	SortByDateCreation SortMode = iota
	SortByDateCreationRev
	SortByTitle
	SortByTitleRev
	SortByURL
	SortByURLRev
)

var sortModeNames = map[SortMode]string{
	SortByDateCreation:    "date",
	SortByDateCreationRev: "date_rev",
	SortByTitle:           "title",
	SortByTitleRev:        "title_rev",
	SortByURL:             "url",
	SortByURLRev:          "url_rev",
}

// sortCycle is the order used by Next.
var sortCycle = []SortMode{
	SortByDateCreation,
	SortByDateCreationRev,
	SortByTitle,
	SortByTitleRev,
	SortByURL,
	SortByURLRev,
}

// String returns the name used in profile files and configuration.
func (m SortMode) String() string {
	if name, ok := sortModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("SortMode(%d)", int(m))
}

// Valid reports whether m is one of the known sort modes.
func (m SortMode) Valid() bool {
	_, ok := sortModeNames[m]
	return ok
}

// Next returns the mode following m, wrapping around.
func (m SortMode) Next() SortMode {
	for i, mode := range sortCycle {
		if mode == m {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return SortByDateCreation
}

// ParseSortMode parses a sort mode name. An empty string yields the default.
func ParseSortMode(s string) (SortMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortByDateCreation, nil
	}
	for mode, name := range sortModeNames {
		if name == s {
			return mode, nil
		}
	}
	return SortByDateCreation, fmt.Errorf("profile: unknown sort mode %q", s)
}

// SearchField selects which index a search consults.
type SearchField int

const (
	SearchByTitle SearchField = iota
	SearchByURL
	SearchEither
)

// String returns a short label for the field.
func (f SearchField) String() string {
	switch f {
	case SearchByTitle:
		return "title"
	case SearchByURL:
		return "url"
	case SearchEither:
		return "either"
	default:
		return fmt.Sprintf("SearchField(%d)", int(f))
	}
}

// SearchMode is a search field plus the matching rule. Blurry searches
// match on substring containment, exact searches on equality.
type SearchMode struct {
	Field  SearchField
	Blurry bool
}

// DefaultSearchMode is a blurry search by title.
func DefaultSearchMode() SearchMode {
	return ByTitle(true)
}

// ByURL searches the URL index.
func ByURL(blurry bool) SearchMode {
	return SearchMode{Field: SearchByURL, Blurry: blurry}
}

// ByTitle searches the title index.
func ByTitle(blurry bool) SearchMode {
	return SearchMode{Field: SearchByTitle, Blurry: blurry}
}

// EitherMatch searches both indices and unions the results.
func EitherMatch(blurry bool) SearchMode {
	return SearchMode{Field: SearchEither, Blurry: blurry}
}

// String renders the mode as "field" or "field (exact)".
func (m SearchMode) String() string {
	if m.Blurry {
		return m.Field.String()
	}
	return m.Field.String() + " (exact)"
}
