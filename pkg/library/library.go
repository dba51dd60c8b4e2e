// Package library manages the set of saved profiles: it owns the id
// allocator and the backing store and serialises every access to the
// profiles it holds.
package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/entrhq/tabresumer/pkg/bookmarks"
	"github.com/entrhq/tabresumer/pkg/logging"
	"github.com/entrhq/tabresumer/pkg/profile"
	"github.com/entrhq/tabresumer/pkg/storage"
)

// ErrProfileNotFound is returned for unknown profile ids.
var ErrProfileNotFound = errors.New("library: profile not found")

// Summary is a read-only description of a profile for listings.
type Summary struct {
	ID             int64
	Name           string
	Pairs          int
	CreatedAt      time.Time
	LastModifiedAt time.Time
	SortMode       profile.SortMode
}

// Options configures a Library.
type Options struct {
	DefaultSort profile.SortMode
	IDBase      int64
	Logger      *logging.Logger
	// Now is used for imported pairs without a date; defaults to time.Now.
	Now func() time.Time
}

// Library holds every loaded profile. A single mutex guards the
// collection and each profile, so the multi-field invariants of a
// profile are always updated as a unit.
type Library struct {
	mu       sync.Mutex
	store    storage.Store
	alloc    *profile.IDAllocator
	profiles map[int64]*profile.Profile

	defaultSort profile.SortMode
	logger      *logging.Logger
	now         func() time.Time
}

// Open loads all profiles from store. An empty store is not an error.
func Open(ctx context.Context, store storage.Store, opts Options) (*Library, error) {
	l := &Library{
		store:       store,
		alloc:       profile.NewIDAllocator(opts.IDBase),
		profiles:    make(map[int64]*profile.Profile),
		defaultSort: opts.DefaultSort,
		logger:      opts.Logger,
		now:         opts.Now,
	}
	if l.logger == nil {
		l.logger = logging.NewNop()
	}
	if l.now == nil {
		l.now = time.Now
	}

	loaded, err := store.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrNoProfiles):
		l.logger.Infof("no saved profiles")
		return l, nil
	case err != nil:
		return nil, fmt.Errorf("library: load profiles: %w", err)
	}

	for _, p := range loaded {
		if err := p.CheckInvariants(); err != nil {
			l.logger.Warnf("profile %d: %v", p.ID(), err)
		}
		l.alloc.Observe(p.ID())
		l.profiles[p.ID()] = p
	}
	l.logger.Infof("loaded %d profiles, next id after %d", len(loaded), l.alloc.Last())
	return l, nil
}

func summarize(p *profile.Profile) Summary {
	return Summary{
		ID:             p.ID(),
		Name:           p.Name(),
		Pairs:          p.Len(),
		CreatedAt:      p.CreatedAt(),
		LastModifiedAt: p.LastModifiedAt(),
		SortMode:       p.SortMode(),
	}
}

// Profiles lists every profile, most recently modified first.
func (l *Library) Profiles() []Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Summary, 0, len(l.profiles))
	for _, p := range l.profiles {
		out = append(out, summarize(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastModifiedAt.Equal(out[j].LastModifiedAt) {
			return out[i].LastModifiedAt.After(out[j].LastModifiedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Get returns the summary of one profile.
func (l *Library) Get(id int64) (Summary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.profiles[id]
	if !ok {
		return Summary{}, fmt.Errorf("%w: %d", ErrProfileNotFound, id)
	}
	return summarize(p), nil
}

// View runs fn with read access to a profile. fn must not keep p or mutate it.
func (l *Library) View(id int64, fn func(p *profile.Profile)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.profiles[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrProfileNotFound, id)
	}
	fn(p)
	return nil
}

// Create makes a new empty profile and saves it.
func (l *Library) Create(ctx context.Context, name string) (Summary, error) {
	p := profile.New(l.alloc.Next(), name, profile.WithSortMode(l.defaultSort))
	if err := l.store.Save(ctx, p); err != nil {
		return Summary{}, fmt.Errorf("library: save new profile: %w", err)
	}

	l.mu.Lock()
	l.profiles[p.ID()] = p
	l.mu.Unlock()

	l.logger.Infof("created profile %d %q", p.ID(), name)
	return summarize(p), nil
}

// ImportBookmarks creates a profile from a Netscape bookmark export.
func (l *Library) ImportBookmarks(ctx context.Context, name string, r io.Reader) (Summary, error) {
	now := l.now()
	pairs, err := bookmarks.ParseNetscape(r, now)
	if err != nil {
		return Summary{}, err
	}

	p := profile.Hydrate(l.alloc.Next(), name, now, pairs, profile.WithSortMode(l.defaultSort))
	if err := l.store.Save(ctx, p); err != nil {
		return Summary{}, fmt.Errorf("library: save imported profile: %w", err)
	}

	l.mu.Lock()
	l.profiles[p.ID()] = p
	l.mu.Unlock()

	l.logger.Infof("imported %d bookmarks into profile %d %q", p.Len(), p.ID(), name)
	return summarize(p), nil
}

// Delete removes a profile and its file.
func (l *Library) Delete(ctx context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.profiles[id]; !ok {
		return fmt.Errorf("%w: %d", ErrProfileNotFound, id)
	}
	if err := l.store.Delete(ctx, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("library: delete profile %d: %w", id, err)
	}
	delete(l.profiles, id)

	l.logger.Infof("deleted profile %d", id)
	return nil
}

// Mutate runs fn against a profile under the library lock. When fn
// succeeds and the profile's modification time moved, it is saved.
func (l *Library) Mutate(ctx context.Context, id int64, fn func(p *profile.Profile) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.profiles[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrProfileNotFound, id)
	}

	before := p.LastModifiedAt()
	if err := fn(p); err != nil {
		return err
	}
	if p.LastModifiedAt().Equal(before) {
		return nil
	}

	if err := l.store.Save(ctx, p); err != nil {
		l.logger.Errorf("save profile %d: %v", id, err)
		return fmt.Errorf("library: save profile %d: %w", id, err)
	}
	return nil
}

// Rename renames a profile and saves it.
func (l *Library) Rename(ctx context.Context, id int64, name string) error {
	return l.Mutate(ctx, id, func(p *profile.Profile) error {
		p.Rename(name)
		return nil
	})
}

// Flush saves every profile concurrently.
func (l *Library) Flush(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range l.profiles {
		g.Go(func() error {
			return l.store.Save(gctx, p)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("library: flush: %w", err)
	}
	return nil
}
