package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/tabresumer/pkg/library"
	"github.com/entrhq/tabresumer/pkg/logging"
	"github.com/entrhq/tabresumer/pkg/profile"
	"github.com/entrhq/tabresumer/pkg/storage"
)

type fakeOpener struct {
	opened [][]string
	err    error
}

func (f *fakeOpener) Open(_ context.Context, urls []string) error {
	if f.err != nil {
		return f.err
	}
	f.opened = append(f.opened, urls)
	return nil
}

func newTestModel(t *testing.T) (*model, *library.Library, *fakeOpener) {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	lib, err := library.Open(context.Background(), store, library.Options{DefaultSort: profile.SortByTitle})
	require.NoError(t, err)

	opener := &fakeOpener{}
	m := newModel(context.Background(), lib, opener, logging.NewNop())
	return m, lib, opener
}

func seedProfile(t *testing.T, lib *library.Library, name string, pairs ...[2]string) int64 {
	t.Helper()
	ctx := context.Background()
	s, err := lib.Create(ctx, name)
	require.NoError(t, err)
	require.NoError(t, lib.Mutate(ctx, s.ID, func(p *profile.Profile) error {
		for _, pair := range pairs {
			if _, err := p.AddNew(pair[0], pair[1]); err != nil {
				return err
			}
		}
		return nil
	}))
	return s.ID
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func TestCreateProfile(t *testing.T) {
	m, lib, _ := newTestModel(t)

	press(m, runes("n"))
	assert.Equal(t, promptNewProfile, m.prompt)

	press(m, runes("work"), enter)
	assert.Equal(t, promptNone, m.prompt)
	assert.False(t, m.statusErr)

	profiles := lib.Profiles()
	require.Len(t, profiles, 1)
	assert.Equal(t, "work", profiles[0].Name)
	assert.Len(t, m.profiles, 1)
}

func TestCreateProfile_EmptyName(t *testing.T) {
	m, lib, _ := newTestModel(t)

	press(m, runes("n"), enter)
	assert.True(t, m.statusErr)
	assert.Empty(t, lib.Profiles())
}

func TestRenameProfile(t *testing.T) {
	m, lib, _ := newTestModel(t)
	id := seedProfile(t, lib, "old")
	m.refresh()

	press(m, runes("r"))
	assert.Equal(t, "old", m.input.Value())

	m.input.SetValue("")
	press(m, runes("new"), enter)

	got, err := lib.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)
}

func TestDeleteProfile(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		m, lib, _ := newTestModel(t)
		seedProfile(t, lib, "gone")
		m.refresh()

		press(m, runes("d"), runes("y"))
		assert.Empty(t, lib.Profiles())
		assert.Empty(t, m.profiles)
	})

	t.Run("cancelled", func(t *testing.T) {
		m, lib, _ := newTestModel(t)
		seedProfile(t, lib, "kept")
		m.refresh()

		press(m, runes("d"), runes("n"))
		assert.Len(t, lib.Profiles(), 1)
		assert.Equal(t, "Delete cancelled", m.status)
	})
}

func TestAddPair(t *testing.T) {
	m, lib, _ := newTestModel(t)
	id := seedProfile(t, lib, "work")
	m.refresh()

	press(m, enter)
	require.Equal(t, screenPairs, m.screen)
	assert.Equal(t, id, m.current)

	press(m, runes("a"), runes("https://go.dev"), enter)
	assert.Equal(t, promptAddTitle, m.prompt)
	assert.Equal(t, "https://go.dev", m.pendingURL)

	press(m, runes("Go"), enter)
	require.Len(t, m.pairs, 1)
	assert.Equal(t, "Go", m.pairs[0].Title)

	// An empty title falls back to the placeholder.
	press(m, runes("a"), runes("https://example.com"), enter, enter)
	require.Len(t, m.pairs, 2)
	var titles []string
	for _, p := range m.pairs {
		titles = append(titles, p.Title)
	}
	assert.Contains(t, titles, profile.PlaceholderTitle)
}

func TestAddPair_Duplicate(t *testing.T) {
	m, lib, _ := newTestModel(t)
	seedProfile(t, lib, "work", [2]string{"https://go.dev", "Go"})
	m.refresh()

	press(m, enter, runes("a"), runes("https://go.dev"), enter, runes("Go"), enter)
	assert.True(t, m.statusErr)
	assert.Len(t, m.pairs, 1)
}

func TestAddPair_Escape(t *testing.T) {
	m, lib, _ := newTestModel(t)
	seedProfile(t, lib, "work")
	m.refresh()

	press(m, enter, runes("a"), runes("https://go.dev"), enter, esc)
	assert.Equal(t, promptNone, m.prompt)
	assert.Empty(t, m.pendingURL)
	assert.Empty(t, m.pairs)
}

func TestRemovePair(t *testing.T) {
	m, lib, _ := newTestModel(t)
	id := seedProfile(t, lib, "work",
		[2]string{"https://a.com", "A"},
		[2]string{"https://b.com", "B"},
	)
	m.refresh()

	press(m, enter, down, runes("x"))
	require.Len(t, m.pairs, 1)
	assert.Equal(t, "A", m.pairs[0].Title)

	require.NoError(t, lib.View(id, func(p *profile.Profile) {
		assert.NoError(t, p.CheckInvariants())
		assert.Equal(t, 0, p.URLCount("https://b.com"))
	}))
}

func TestNavigationHighlights(t *testing.T) {
	m, lib, _ := newTestModel(t)
	id := seedProfile(t, lib, "work",
		[2]string{"https://a.com", "A"},
		[2]string{"https://b.com", "B"},
	)
	m.refresh()
	before, err := lib.Get(id)
	require.NoError(t, err)

	press(m, enter)
	assert.True(t, m.pairs[0].Highlighted)

	press(m, down)
	assert.False(t, m.pairs[0].Highlighted)
	assert.True(t, m.pairs[1].Highlighted)

	after, err := lib.Get(id)
	require.NoError(t, err)
	assert.Equal(t, before.LastModifiedAt, after.LastModifiedAt)

	press(m, esc)
	assert.Equal(t, screenProfiles, m.screen)
	require.NoError(t, lib.View(id, func(p *profile.Profile) {
		for _, pair := range p.Pairs() {
			assert.False(t, pair.Highlighted)
		}
	}))
}

func TestSortCycle(t *testing.T) {
	m, lib, _ := newTestModel(t)
	id := seedProfile(t, lib, "work",
		[2]string{"https://a.com", "A"},
		[2]string{"https://b.com", "B"},
	)
	m.refresh()

	press(m, enter, runes("s"))

	got, err := lib.Get(id)
	require.NoError(t, err)
	assert.Equal(t, profile.SortByTitleRev, got.SortMode)
	assert.Equal(t, "B", m.pairs[0].Title)
	assert.Equal(t, "Sorted by title_rev", m.status)
}

func TestSearch(t *testing.T) {
	m, lib, _ := newTestModel(t)
	seedProfile(t, lib, "work",
		[2]string{"https://github.com", "GitHub"},
		[2]string{"https://go.dev", "Go"},
		[2]string{"https://gitlab.com", "GitLab"},
	)
	m.refresh()

	press(m, enter, runes("/"), runes("Git"), enter)
	require.True(t, m.searching)
	require.Len(t, m.results, 2)
	assert.Equal(t, "GitHub", m.results[0].Title)
	assert.Equal(t, "GitLab", m.results[1].Title)
	assert.True(t, m.results[0].Highlighted)

	press(m, esc)
	assert.False(t, m.searching)
	assert.Len(t, m.visiblePairs(), 3)
}

func TestSearch_ModeToggles(t *testing.T) {
	m, lib, _ := newTestModel(t)
	seedProfile(t, lib, "work", [2]string{"https://go.dev", "Go"})
	m.refresh()

	press(m, enter, runes("/"))
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, profile.SearchByURL, m.searchMode.Field)
	press(m, tea.KeyMsg{Type: tea.KeyCtrlE})
	assert.False(t, m.searchMode.Blurry)

	press(m, runes("https://go.dev"), enter)
	require.Len(t, m.results, 1)
	assert.Equal(t, "Go", m.results[0].Title)
}

func TestSearch_NothingFound(t *testing.T) {
	m, lib, _ := newTestModel(t)
	seedProfile(t, lib, "work", [2]string{"https://go.dev", "Go"})
	m.refresh()

	press(m, enter, runes("/"), runes("rust"), enter)
	assert.False(t, m.searching)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, profile.ErrNothingFound.Error())
}

func TestCopyURL(t *testing.T) {
	m, lib, _ := newTestModel(t)
	seedProfile(t, lib, "work", [2]string{"https://go.dev", "Go"})
	m.refresh()

	var copied string
	m.copy = func(s string) error {
		copied = s
		return nil
	}
	press(m, enter, runes("y"))
	assert.Equal(t, "https://go.dev", copied)

	m.copy = func(string) error { return errors.New("no clipboard") }
	press(m, runes("y"))
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "no clipboard")
}

func TestOpen(t *testing.T) {
	m, lib, opener := newTestModel(t)
	seedProfile(t, lib, "work",
		[2]string{"https://a.com", "A"},
		[2]string{"https://b.com", "B"},
	)
	m.refresh()

	press(m, runes("o"))
	require.Len(t, opener.opened, 1)
	assert.ElementsMatch(t, []string{"https://a.com", "https://b.com"}, opener.opened[0])

	press(m, enter, down, runes("o"))
	require.Len(t, opener.opened, 2)
	assert.Equal(t, []string{"https://b.com"}, opener.opened[1])

	opener.err = errors.New("browser missing")
	press(m, runes("o"))
	assert.True(t, m.statusErr)
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestExitError(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	killed := fmt.Errorf("%w: %w", tea.ErrProgramKilled, context.Canceled)

	assert.NoError(t, exitError(context.Background(), nil))
	assert.NoError(t, exitError(cancelled, killed))
	assert.NoError(t, exitError(context.Background(), tea.ErrInterrupted))
	assert.ErrorIs(t, exitError(context.Background(), killed), tea.ErrProgramKilled)
	assert.Error(t, exitError(cancelled, errors.New("terminal gone")))
}

func TestView(t *testing.T) {
	m, lib, _ := newTestModel(t)
	assert.Contains(t, m.View(), "No profiles yet")

	seedProfile(t, lib, "work", [2]string{"https://go.dev", "Go"})
	m.refresh()
	assert.Contains(t, m.View(), "work")

	press(m, enter)
	view := m.View()
	assert.Contains(t, view, "Go")
	assert.Contains(t, view, "https://go.dev")
}
