package profile

import (
	"fmt"
	"sort"
	"time"
)

// Profile is a named collection of pairs with two secondary indices.
//
// The pairs slice is the only owner of Pair values. byURL and byTitle hold
// PairKeys and are patched alongside every mutation of the slice, so after
// each public operation:
//   - every pair is reachable through byURL and byTitle,
//   - no index entry refers to a key missing from pairs,
//   - pairs is ordered by sortMode.
//
// A Profile is not safe for concurrent use; callers that share one must
// guard it with a single lock (see library.Library).
type Profile struct {
	id   int64
	name string

	createdAt      time.Time
	lastModifiedAt time.Time

	sortMode SortMode
	pairs    []Pair

	// One URL can be stored under several titles, but a title maps to one pair.
	byURL   map[string]map[PairKey]struct{}
	byTitle map[string]PairKey

	now func() time.Time
}

// Option configures a Profile at construction.
type Option func(*Profile)

// WithClock replaces time.Now for creation and modification timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Profile) {
		if now != nil {
			p.now = now
		}
	}
}

// WithSortMode sets the initial sort mode.
func WithSortMode(mode SortMode) Option {
	return func(p *Profile) {
		if mode.Valid() {
			p.sortMode = mode
		}
	}
}

// WithLastModified sets the last-modified time of a hydrated profile.
func WithLastModified(t time.Time) Option {
	return func(p *Profile) {
		p.lastModifiedAt = t
	}
}

func newProfile(id int64, name string) *Profile {
	return &Profile{
		id:       id,
		name:     name,
		sortMode: SortByDateCreation,
		byURL:    make(map[string]map[PairKey]struct{}),
		byTitle:  make(map[string]PairKey),
		now:      time.Now,
	}
}

// New creates an empty profile. The id normally comes from an IDAllocator.
func New(id int64, name string, opts ...Option) *Profile {
	p := newProfile(id, name)
	for _, opt := range opts {
		opt(p)
	}

	p.createdAt = p.now()
	p.lastModifiedAt = p.createdAt
	return p
}

// Hydrate rebuilds a profile from previously saved pairs.
//
// Input is not assumed to be deduplicated: when two pairs share a title the
// later one owns the title index, but both stay in the sequence and the URL
// index. The pairs are stably ordered by the profile's sort mode.
func Hydrate(id int64, name string, createdAt time.Time, pairs []Pair, opts ...Option) *Profile {
	p := newProfile(id, name)
	p.createdAt = createdAt
	p.lastModifiedAt = createdAt
	for _, opt := range opts {
		opt(p)
	}

	p.pairs = make([]Pair, len(pairs))
	copy(p.pairs, pairs)
	for i := range p.pairs {
		p.pairs[i].Highlighted = false
		p.indexAdd(p.pairs[i])
	}

	less := comparatorFor(p.sortMode)
	sort.SliceStable(p.pairs, func(i, j int) bool {
		return less(p.pairs[i], p.pairs[j])
	})

	return p
}

// ID returns the immutable profile identifier.
func (p *Profile) ID() int64 { return p.id }

// Name returns the profile name.
func (p *Profile) Name() string { return p.name }

// CreatedAt returns the creation time.
func (p *Profile) CreatedAt() time.Time { return p.createdAt }

// LastModifiedAt returns the time of the last change to the name, sort mode or pair set.
func (p *Profile) LastModifiedAt() time.Time { return p.lastModifiedAt }

// SortMode returns the current sort mode.
func (p *Profile) SortMode() SortMode { return p.sortMode }

// Len returns the number of pairs.
func (p *Profile) Len() int { return len(p.pairs) }

// Pairs returns a copy of the ordered pairs.
func (p *Profile) Pairs() []Pair {
	out := make([]Pair, len(p.pairs))
	copy(out, p.pairs)
	return out
}

// At returns the pair at idx.
func (p *Profile) At(idx int) (Pair, bool) {
	if idx < 0 || idx >= len(p.pairs) {
		return Pair{}, false
	}
	return p.pairs[idx], true
}

// URLCount returns how many pairs are stored under url.
func (p *Profile) URLCount(url string) int {
	return len(p.byURL[url])
}

// TitleOwner returns the identity of the pair that owns title.
func (p *Profile) TitleOwner(title string) (PairKey, bool) {
	key, ok := p.byTitle[title]
	return key, ok
}

// Rename replaces the profile name.
func (p *Profile) Rename(name string) {
	p.name = name
	p.touch()
}

// AddNew adds a pair for url. An empty title is replaced by PlaceholderTitle;
// no title is ever fetched from the network here.
//
// It fails with ErrDuplicatePair if the exact pair exists and with
// ErrTitleCollision if another pair already uses the title. On error the
// profile is unchanged.
func (p *Profile) AddNew(url, title string) (Pair, error) {
	if url == "" {
		return Pair{}, ErrEmptyURL
	}
	if title == "" {
		title = PlaceholderTitle
	}

	pair := NewPairAt(url, title, p.now())
	if err := p.checkInsert(pair.Key(), nil); err != nil {
		return Pair{}, err
	}

	p.insert(pair)
	p.touch()
	return pair, nil
}

// RemovePair removes the pair at idx. ref must still match the stored pair,
// otherwise ErrNotFound is returned and nothing changes.
func (p *Profile) RemovePair(idx int, ref Pair) error {
	if err := p.checkRef(idx, ref); err != nil {
		return err
	}

	p.removeAt(idx)
	p.touch()
	return nil
}

// UpdatePair replaces the pair at idx with a new url and title, keeping its
// creation time. The replacement goes through the same checks as AddNew.
func (p *Profile) UpdatePair(idx int, ref Pair, url, title string) (Pair, error) {
	if err := p.checkRef(idx, ref); err != nil {
		return Pair{}, err
	}
	if url == "" {
		return Pair{}, ErrEmptyURL
	}
	if title == "" {
		title = PlaceholderTitle
	}

	old := p.pairs[idx]
	updated := NewPairAt(url, title, old.CreatedAt)
	updated.Highlighted = old.Highlighted
	if updated.Same(old) {
		return old, nil
	}

	oldKey := old.Key()
	if err := p.checkInsert(updated.Key(), &oldKey); err != nil {
		return Pair{}, err
	}

	p.removeAt(idx)
	p.insert(updated)
	p.touch()
	return updated, nil
}

// SetHighlighted toggles the transient highlight flag of the pair at idx.
func (p *Profile) SetHighlighted(idx int, on bool) error {
	if idx < 0 || idx >= len(p.pairs) {
		return fmt.Errorf("%w: index %d out of range", ErrNotFound, idx)
	}
	p.pairs[idx].Highlighted = on
	return nil
}

// ClearHighlights resets the highlight flag on every pair.
func (p *Profile) ClearHighlights() {
	for i := range p.pairs {
		p.pairs[i].Highlighted = false
	}
}

// CheckInvariants verifies that the sequence and both indices agree.
// Title uniqueness is not checked: hydrated profiles may carry collisions.
func (p *Profile) CheckInvariants() error {
	present := make(map[PairKey]struct{}, len(p.pairs))
	for _, pair := range p.pairs {
		key := pair.Key()
		present[key] = struct{}{}

		if _, ok := p.byURL[pair.URL][key]; !ok {
			return fmt.Errorf("profile: pair %q (%s) missing from url index", pair.Title, pair.URL)
		}
		if _, ok := p.byTitle[pair.Title]; !ok {
			return fmt.Errorf("profile: pair %q (%s) missing from title index", pair.Title, pair.URL)
		}
	}

	for url, bucket := range p.byURL {
		if len(bucket) == 0 {
			return fmt.Errorf("profile: empty url bucket for %s", url)
		}
		for key := range bucket {
			if _, ok := present[key]; !ok || key.URL != url {
				return fmt.Errorf("profile: dangling url index entry %q (%s)", key.Title, key.URL)
			}
		}
	}
	for title, key := range p.byTitle {
		if _, ok := present[key]; !ok || key.Title != title {
			return fmt.Errorf("profile: dangling title index entry %q (%s)", key.Title, key.URL)
		}
	}

	if less := comparatorFor(p.sortMode); !sort.SliceIsSorted(p.pairs, func(i, j int) bool {
		return less(p.pairs[i], p.pairs[j])
	}) {
		return fmt.Errorf("profile: pairs not ordered by %s", p.sortMode)
	}

	return nil
}

func (p *Profile) touch() {
	p.lastModifiedAt = p.now()
}

func (p *Profile) checkRef(idx int, ref Pair) error {
	if idx < 0 || idx >= len(p.pairs) {
		return fmt.Errorf("%w: index %d out of range", ErrNotFound, idx)
	}
	if !p.pairs[idx].Same(ref) {
		return fmt.Errorf("%w: %q (%s) is not at index %d", ErrNotFound, ref.Title, ref.URL, idx)
	}
	return nil
}

// checkInsert validates that key can be added. replacing names a pair that
// is about to be removed and may therefore keep its title.
func (p *Profile) checkInsert(key PairKey, replacing *PairKey) error {
	if _, exists := p.byURL[key.URL][key]; exists {
		return fmt.Errorf("%w: %q (%s)", ErrDuplicatePair, key.Title, key.URL)
	}
	if owner, taken := p.byTitle[key.Title]; taken {
		if replacing == nil || owner != *replacing {
			return fmt.Errorf("%w: %q is used by %s", ErrTitleCollision, key.Title, owner.URL)
		}
	}
	return nil
}

func (p *Profile) insert(pair Pair) {
	pos := p.insertPosition(pair)
	p.pairs = append(p.pairs, Pair{})
	copy(p.pairs[pos+1:], p.pairs[pos:])
	p.pairs[pos] = pair
	p.indexAdd(pair)
}

func (p *Profile) removeAt(idx int) {
	removed := p.pairs[idx]
	p.pairs = append(p.pairs[:idx], p.pairs[idx+1:]...)
	p.indexRemove(removed)
}

func (p *Profile) indexAdd(pair Pair) {
	key := pair.Key()
	bucket, ok := p.byURL[pair.URL]
	if !ok {
		bucket = make(map[PairKey]struct{})
		p.byURL[pair.URL] = bucket
	}
	bucket[key] = struct{}{}
	p.byTitle[pair.Title] = key
}

// indexRemove drops the index entries of a pair that has already been taken
// out of the sequence. Identical pairs (possible after hydration) keep their
// entries, and a title index entry falls back to the last remaining pair
// with the same title.
func (p *Profile) indexRemove(pair Pair) {
	key := pair.Key()

	var identical bool
	var fallback *PairKey
	for i := range p.pairs {
		if p.pairs[i].Same(pair) {
			identical = true
			break
		}
		if p.pairs[i].Title == pair.Title {
			k := p.pairs[i].Key()
			fallback = &k
		}
	}
	if identical {
		return
	}

	if bucket, ok := p.byURL[pair.URL]; ok {
		delete(bucket, key)
		if len(bucket) == 0 {
			delete(p.byURL, pair.URL)
		}
	}

	if owner, ok := p.byTitle[pair.Title]; ok && owner == key {
		if fallback != nil {
			p.byTitle[pair.Title] = *fallback
		} else {
			delete(p.byTitle, pair.Title)
		}
	}
}
