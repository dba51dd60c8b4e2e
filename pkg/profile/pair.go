package profile

import "time"

const (
	// PlaceholderTitle is used when AddNew is called without a title.
	PlaceholderTitle = "Title not given"

	// MissingTitle replaces empty titles in imported or saved data.
	MissingTitle = "No Title Given"

	defaultPairURL   = "https://duckduckgo.com/"
	defaultPairTitle = "Duckduckgo Homepage"
)

// Pair is a single bookmarked browser tab.
//
// Identity is the (URL, Title) combination: the same URL may be stored
// under several titles, and the same title under different URLs is a
// distinct pair (although a profile only ever keeps one pair per title).
type Pair struct {
	URL       string
	Title     string
	CreatedAt time.Time

	// Highlighted is UI state only. It is never persisted and does not
	// count as a modification of the owning profile.
	Highlighted bool
}

// PairKey is the identity of a Pair.
type PairKey struct {
	URL   string
	Title string
}

// NewPair creates a pair stamped with the current time.
func NewPair(url, title string) Pair {
	return NewPairAt(url, title, time.Now())
}

// NewPairAt creates a pair with an explicit creation time, used when
// rebuilding pairs from saved data.
func NewPairAt(url, title string, createdAt time.Time) Pair {
	return Pair{
		URL:       url,
		Title:     title,
		CreatedAt: createdAt,
	}
}

// DefaultPair returns the placeholder pair shown when nothing else exists yet.
func DefaultPair() Pair {
	return NewPair(defaultPairURL, defaultPairTitle)
}

// Key returns the identity of the pair.
func (p Pair) Key() PairKey {
	return PairKey{URL: p.URL, Title: p.Title}
}

// Same reports whether two pairs share an identity.
func (p Pair) Same(other Pair) bool {
	return p.URL == other.URL && p.Title == other.Title
}
