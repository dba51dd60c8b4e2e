// Package tui is the terminal front end of tabresumer. It lists profiles,
// shows the tabs of one profile, and turns key presses into library
// operations; it never touches a profile except through those operations.
//
// Files:
//   - tui.go: program lifecycle
//   - model.go: state and refresh logic
//   - update.go: key handling
//   - view.go: rendering
package tui

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/tabresumer/pkg/library"
	"github.com/entrhq/tabresumer/pkg/logging"
	"github.com/entrhq/tabresumer/pkg/profile"
)

// Opener opens URLs in a browser.
type Opener interface {
	Open(ctx context.Context, urls []string) error
}

type screen int

const (
	screenProfiles screen = iota
	screenPairs
)

// prompt is the question the input line is currently answering.
type prompt int

const (
	promptNone prompt = iota
	promptNewProfile
	promptRename
	promptConfirmDelete
	promptAddURL
	promptAddTitle
	promptSearch
)

type model struct {
	ctx    context.Context
	lib    *library.Library
	opener Opener
	copy   func(string) error
	logger *logging.Logger

	screen screen
	prompt prompt
	input  textinput.Model

	profiles      []library.Summary
	profileCursor int

	// Pairs screen state
	current    int64
	pairs      []profile.Pair
	pairCursor int
	pendingURL string
	searchMode profile.SearchMode
	results    []profile.Pair
	searching  bool

	status    string
	statusErr bool

	width  int
	height int
}

func newModel(ctx context.Context, lib *library.Library, opener Opener, logger *logging.Logger) *model {
	input := textinput.New()
	input.CharLimit = 2048
	input.Width = 60

	if logger == nil {
		logger = logging.NewNop()
	}

	m := &model{
		ctx:        ctx,
		lib:        lib,
		opener:     opener,
		copy:       clipboard.WriteAll,
		logger:     logger,
		input:      input,
		searchMode: profile.DefaultSearchMode(),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return nil
}

// refresh re-reads the library after every operation.
func (m *model) refresh() {
	m.profiles = m.lib.Profiles()
	m.profileCursor = clamp(m.profileCursor, len(m.profiles))

	if m.screen != screenPairs {
		return
	}
	err := m.lib.View(m.current, func(p *profile.Profile) {
		m.pairs = p.Pairs()
	})
	if err != nil {
		m.leavePairs()
		m.setError(err)
		return
	}
	m.pairCursor = clamp(m.pairCursor, len(m.visiblePairs()))
}

// visiblePairs is the search result list while searching, else every pair.
func (m *model) visiblePairs() []profile.Pair {
	if m.searching {
		return m.results
	}
	return m.pairs
}

func (m *model) selectedProfile() (library.Summary, bool) {
	if m.profileCursor < 0 || m.profileCursor >= len(m.profiles) {
		return library.Summary{}, false
	}
	return m.profiles[m.profileCursor], true
}

// selectedPair returns the pair under the cursor and its index in the profile.
func (m *model) selectedPair() (profile.Pair, int, bool) {
	visible := m.visiblePairs()
	if m.pairCursor < 0 || m.pairCursor >= len(visible) {
		return profile.Pair{}, -1, false
	}
	pair := visible[m.pairCursor]
	for i, candidate := range m.pairs {
		if candidate.Same(pair) {
			return pair, i, true
		}
	}
	return profile.Pair{}, -1, false
}

func (m *model) enterPairs(id int64) {
	m.screen = screenPairs
	m.current = id
	m.pairCursor = 0
	m.searching = false
	m.results = nil
	m.refresh()
	m.syncHighlight()
}

func (m *model) leavePairs() {
	if m.screen == screenPairs {
		_ = m.lib.Mutate(m.ctx, m.current, func(p *profile.Profile) error {
			p.ClearHighlights()
			return nil
		})
	}
	m.screen = screenProfiles
	m.current = 0
	m.pairs = nil
	m.results = nil
	m.searching = false
}

// syncHighlight marks the pair under the cursor. Highlighting is not a
// modification, so nothing is saved.
func (m *model) syncHighlight() {
	_, idx, ok := m.selectedPair()
	err := m.lib.Mutate(m.ctx, m.current, func(p *profile.Profile) error {
		p.ClearHighlights()
		if !ok {
			return nil
		}
		return p.SetHighlighted(idx, true)
	})
	if err != nil {
		m.logger.Warnf("highlight: %v", err)
		return
	}
	_ = m.lib.View(m.current, func(p *profile.Profile) { m.pairs = p.Pairs() })
	for i := range m.results {
		m.results[i].Highlighted = i == m.pairCursor
	}
}

func (m *model) setStatus(format string) {
	m.status = format
	m.statusErr = false
}

func (m *model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
	m.logger.Warnf("%v", err)
}

func (m *model) startPrompt(p prompt, placeholder, value string) tea.Cmd {
	m.prompt = p
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *model) endPrompt() {
	m.prompt = promptNone
	m.input.Blur()
	m.input.Reset()
}

func clamp(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
