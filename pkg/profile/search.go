package profile

import (
	"fmt"
	"strings"
)

type keySet map[PairKey]struct{}

// searchers maps each field to the index lookups it runs.
var searchers = map[SearchField]func(p *Profile, query string, blurry bool) keySet{
	SearchByURL:   (*Profile).matchURL,
	SearchByTitle: (*Profile).matchTitle,
	SearchEither: func(p *Profile, query string, blurry bool) keySet {
		matched := p.matchURL(query, blurry)
		for key := range p.matchTitle(query, blurry) {
			matched[key] = struct{}{}
		}
		return matched
	},
}

// Search looks up pairs matching query. Exact searches are single index
// lookups; blurry searches scan the index keys for a case-sensitive
// substring. Results follow the profile's current order.
//
// ErrNothingFound is returned when no pair matches. For EitherMatch that
// means neither the URL nor the title search matched.
func (p *Profile) Search(query string, mode SearchMode) ([]Pair, error) {
	search, ok := searchers[mode.Field]
	if !ok {
		return nil, fmt.Errorf("profile: unknown search field %s", mode.Field)
	}

	matched := search(p, query, mode.Blurry)
	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: %q by %s", ErrNothingFound, query, mode)
	}

	results := make([]Pair, 0, len(matched))
	for _, pair := range p.pairs {
		if _, ok := matched[pair.Key()]; ok {
			results = append(results, pair)
		}
	}
	return results, nil
}

func (p *Profile) matchURL(query string, blurry bool) keySet {
	matched := make(keySet)
	if !blurry {
		for key := range p.byURL[query] {
			matched[key] = struct{}{}
		}
		return matched
	}

	for url, bucket := range p.byURL {
		if !strings.Contains(url, query) {
			continue
		}
		for key := range bucket {
			matched[key] = struct{}{}
		}
	}
	return matched
}

func (p *Profile) matchTitle(query string, blurry bool) keySet {
	matched := make(keySet)
	if !blurry {
		if key, ok := p.byTitle[query]; ok {
			matched[key] = struct{}{}
		}
		return matched
	}

	for title, key := range p.byTitle {
		if strings.Contains(title, query) {
			matched[key] = struct{}{}
		}
	}
	return matched
}
