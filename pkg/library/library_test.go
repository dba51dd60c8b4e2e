package library

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/tabresumer/pkg/profile"
	"github.com/entrhq/tabresumer/pkg/storage"
)

func openTemp(t *testing.T, opts Options) (*Library, *storage.FileStore) {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	lib, err := Open(context.Background(), store, opts)
	require.NoError(t, err)
	return lib, store
}

func TestOpen_Empty(t *testing.T) {
	lib, _ := openTemp(t, Options{})
	assert.Empty(t, lib.Profiles())
}

func TestCreateAndReload(t *testing.T) {
	ctx := context.Background()
	lib, store := openTemp(t, Options{DefaultSort: profile.SortByTitle})

	work, err := lib.Create(ctx, "work")
	require.NoError(t, err)
	assert.Equal(t, int64(1), work.ID)
	assert.Equal(t, profile.SortByTitle, work.SortMode)

	require.NoError(t, lib.Mutate(ctx, work.ID, func(p *profile.Profile) error {
		_, err := p.AddNew("https://b.com", "B")
		if err != nil {
			return err
		}
		_, err = p.AddNew("https://a.com", "A")
		return err
	}))

	reloaded, err := Open(ctx, store, Options{})
	require.NoError(t, err)

	got, err := reloaded.Get(work.ID)
	require.NoError(t, err)
	assert.Equal(t, "work", got.Name)
	assert.Equal(t, 2, got.Pairs)

	require.NoError(t, reloaded.View(work.ID, func(p *profile.Profile) {
		pairs := p.Pairs()
		assert.Equal(t, "A", pairs[0].Title)
		assert.Equal(t, "B", pairs[1].Title)
	}))

	next, err := reloaded.Create(ctx, "home")
	require.NoError(t, err)
	assert.Greater(t, next.ID, work.ID, "ids from disk are never reissued")
}

func TestIDBase(t *testing.T) {
	lib, _ := openTemp(t, Options{IDBase: 100})
	s, err := lib.Create(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, int64(101), s.ID)
}

func TestMutate(t *testing.T) {
	ctx := context.Background()
	lib, _ := openTemp(t, Options{})
	s, err := lib.Create(ctx, "p")
	require.NoError(t, err)

	t.Run("propagates profile errors", func(t *testing.T) {
		err := lib.Mutate(ctx, s.ID, func(p *profile.Profile) error {
			if _, err := p.AddNew("https://a.com", "A"); err != nil {
				return err
			}
			_, err := p.AddNew("https://a.com", "A")
			return err
		})
		assert.ErrorIs(t, err, profile.ErrDuplicatePair)
	})

	t.Run("unknown profile", func(t *testing.T) {
		err := lib.Mutate(ctx, 999, func(*profile.Profile) error { return nil })
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}

func TestRenameAndOrdering(t *testing.T) {
	ctx := context.Background()
	lib, _ := openTemp(t, Options{})

	a, err := lib.Create(ctx, "a")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	b, err := lib.Create(ctx, "b")
	require.NoError(t, err)

	list := lib.Profiles()
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID, "newest first")

	time.Sleep(2 * time.Millisecond)
	require.NoError(t, lib.Rename(ctx, a.ID, "renamed"))

	list = lib.Profiles()
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, "renamed", list[0].Name)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	lib, store := openTemp(t, Options{})
	s, err := lib.Create(ctx, "gone")
	require.NoError(t, err)

	require.NoError(t, lib.Delete(ctx, s.ID))
	_, err = lib.Get(s.ID)
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.ErrorIs(t, lib.Delete(ctx, s.ID), ErrProfileNotFound)

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, storage.ErrNoProfiles)
}

func TestImportBookmarks(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	lib, _ := openTemp(t, Options{Now: func() time.Time { return now }})

	export := `<DL><p>
<DT><A HREF="https://go.dev/" ADD_DATE="1700000100">Go</A>
<DT><A HREF="https://go.dev/" ADD_DATE="1700000200">Go</A>
<DT><A HREF="https://charm.sh/">Charm</A>
</DL>`

	s, err := lib.ImportBookmarks(ctx, "imported", strings.NewReader(export))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Pairs, "duplicates are kept on bulk import")
	assert.True(t, s.CreatedAt.Equal(now))

	require.NoError(t, lib.View(s.ID, func(p *profile.Profile) {
		found, err := p.Search("charm", profile.EitherMatch(true))
		require.NoError(t, err)
		assert.Len(t, found, 1)
	}))
}

type failingStore struct {
	storage.Store
	mu    sync.Mutex
	saves int
}

func (f *failingStore) Load(context.Context) ([]*profile.Profile, error) {
	return []*profile.Profile{profile.New(5, "a"), profile.New(6, "b")}, nil
}

func (f *failingStore) Save(context.Context, *profile.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	return errors.New("read-only")
}

func TestFlush(t *testing.T) {
	ctx := context.Background()
	lib, _ := openTemp(t, Options{})
	_, err := lib.Create(ctx, "a")
	require.NoError(t, err)
	_, err = lib.Create(ctx, "b")
	require.NoError(t, err)
	assert.NoError(t, lib.Flush(ctx))

	store := &failingStore{}
	failing, err := Open(ctx, store, Options{})
	require.NoError(t, err)
	assert.Error(t, failing.Flush(ctx))

	_, err = failing.Create(ctx, "c")
	assert.Error(t, err)
	assert.Len(t, failing.Profiles(), 2)
}
