package profile

import "sort"

// lessFunc reports whether a sorts before b.
type lessFunc func(a, b Pair) bool

var comparators = map[SortMode]lessFunc{
	SortByTitle:    func(a, b Pair) bool { return a.Title < b.Title },
	SortByTitleRev: func(a, b Pair) bool { return a.Title > b.Title },
	SortByURL:      func(a, b Pair) bool { return a.URL < b.URL },
	SortByURLRev:   func(a, b Pair) bool { return a.URL > b.URL },
	SortByDateCreation: func(a, b Pair) bool {
		return a.CreatedAt.Before(b.CreatedAt)
	},
	SortByDateCreationRev: func(a, b Pair) bool {
		return a.CreatedAt.After(b.CreatedAt)
	},
}

func comparatorFor(mode SortMode) lessFunc {
	if less, ok := comparators[mode]; ok {
		return less
	}
	return comparators[SortByDateCreation]
}

// Sort reorders the pairs by mode. Calling Sort with the current mode is a no-op.
// Ties may be permuted, except for title order where titles are unique.
func (p *Profile) Sort(mode SortMode) {
	if mode == p.sortMode || !mode.Valid() {
		return
	}

	less := comparatorFor(mode)
	sort.Slice(p.pairs, func(i, j int) bool {
		return less(p.pairs[i], p.pairs[j])
	})

	p.sortMode = mode
	p.touch()
}

// insertPosition returns the index at which pair keeps the sequence ordered
// under the current mode. Equal elements stay ahead of the new one, so the
// default mode always appends.
func (p *Profile) insertPosition(pair Pair) int {
	less := comparatorFor(p.sortMode)
	return sort.Search(len(p.pairs), func(i int) bool {
		return less(pair, p.pairs[i])
	})
}
