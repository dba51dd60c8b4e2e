package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/tabresumer/pkg/profile"
)

var errEmptyName = errors.New("profile name cannot be empty")

// Update implements tea.Model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m, m.updatePrompt(msg)
		}
		if m.screen == screenPairs {
			return m, m.updatePairs(msg)
		}
		return m, m.updateProfiles(msg)
	}

	return m, nil
}

func (m *model) updateProfiles(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit), key.Matches(msg, keys.Back):
		return tea.Quit

	case key.Matches(msg, keys.Up):
		m.profileCursor = clamp(m.profileCursor-1, len(m.profiles))

	case key.Matches(msg, keys.Down):
		m.profileCursor = clamp(m.profileCursor+1, len(m.profiles))

	case key.Matches(msg, keys.Enter):
		if selected, ok := m.selectedProfile(); ok {
			m.enterPairs(selected.ID)
		}

	case key.Matches(msg, keys.New):
		return m.startPrompt(promptNewProfile, "profile name", "")

	case key.Matches(msg, keys.Rename):
		if selected, ok := m.selectedProfile(); ok {
			return m.startPrompt(promptRename, "new name", selected.Name)
		}

	case key.Matches(msg, keys.Delete):
		if selected, ok := m.selectedProfile(); ok {
			m.setStatus(fmt.Sprintf("Delete %q? (y/n)", selected.Name))
			m.prompt = promptConfirmDelete
		}

	case key.Matches(msg, keys.Open):
		if selected, ok := m.selectedProfile(); ok {
			var urls []string
			_ = m.lib.View(selected.ID, func(p *profile.Profile) {
				for _, pair := range p.Pairs() {
					urls = append(urls, pair.URL)
				}
			})
			m.open(urls)
		}
	}
	return nil
}

func (m *model) updatePairs(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		m.leavePairs()
		return tea.Quit

	case key.Matches(msg, keys.Back):
		if m.searching {
			m.searching = false
			m.results = nil
			m.pairCursor = 0
			m.setStatus("")
			m.syncHighlight()
			return nil
		}
		m.leavePairs()
		m.refresh()

	case key.Matches(msg, keys.Up):
		m.pairCursor = clamp(m.pairCursor-1, len(m.visiblePairs()))
		m.syncHighlight()

	case key.Matches(msg, keys.Down):
		m.pairCursor = clamp(m.pairCursor+1, len(m.visiblePairs()))
		m.syncHighlight()

	case key.Matches(msg, keys.Add):
		return m.startPrompt(promptAddURL, "https://…", "")

	case key.Matches(msg, keys.Remove):
		m.removeSelected()

	case key.Matches(msg, keys.Sort):
		var mode profile.SortMode
		err := m.lib.Mutate(m.ctx, m.current, func(p *profile.Profile) error {
			mode = p.SortMode().Next()
			p.Sort(mode)
			return nil
		})
		if err != nil {
			m.setError(err)
			return nil
		}
		m.searching = false
		m.results = nil
		m.setStatus("Sorted by " + mode.String())
		m.afterChange()

	case key.Matches(msg, keys.Search):
		return m.startPrompt(promptSearch, "search "+m.searchMode.String(), "")

	case key.Matches(msg, keys.Copy):
		if pair, _, ok := m.selectedPair(); ok {
			if err := m.copy(pair.URL); err != nil {
				m.setError(fmt.Errorf("copy to clipboard: %w", err))
				return nil
			}
			m.setStatus("Copied " + pair.URL)
		}

	case key.Matches(msg, keys.Open), key.Matches(msg, keys.Enter):
		if pair, _, ok := m.selectedPair(); ok {
			m.open([]string{pair.URL})
		}
	}
	return nil
}

func (m *model) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	if m.prompt == promptConfirmDelete {
		m.prompt = promptNone
		if key.Matches(msg, keys.Confirm) {
			m.deleteSelectedProfile()
		} else {
			m.setStatus("Delete cancelled")
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.Back):
		m.pendingURL = ""
		m.endPrompt()
		return nil

	case key.Matches(msg, keys.Enter):
		value := strings.TrimSpace(m.input.Value())
		current := m.prompt
		m.endPrompt()
		return m.submit(current, value)

	case m.prompt == promptSearch && key.Matches(msg, keys.Field):
		m.searchMode.Field = (m.searchMode.Field + 1) % (profile.SearchEither + 1)
		m.input.Placeholder = "search " + m.searchMode.String()
		return nil

	case m.prompt == promptSearch && key.Matches(msg, keys.Exact):
		m.searchMode.Blurry = !m.searchMode.Blurry
		m.input.Placeholder = "search " + m.searchMode.String()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *model) submit(p prompt, value string) tea.Cmd {
	switch p {
	case promptNewProfile:
		if value == "" {
			m.setError(errEmptyName)
			return nil
		}
		created, err := m.lib.Create(m.ctx, value)
		if err != nil {
			m.setError(err)
			return nil
		}
		m.refresh()
		for i, s := range m.profiles {
			if s.ID == created.ID {
				m.profileCursor = i
			}
		}
		m.setStatus(fmt.Sprintf("Created %q", value))

	case promptRename:
		selected, ok := m.selectedProfile()
		if !ok {
			return nil
		}
		if value == "" {
			m.setError(errEmptyName)
			return nil
		}
		if err := m.lib.Rename(m.ctx, selected.ID, value); err != nil {
			m.setError(err)
			return nil
		}
		m.refresh()
		m.setStatus(fmt.Sprintf("Renamed to %q", value))

	case promptAddURL:
		if value == "" {
			m.setError(profile.ErrEmptyURL)
			return nil
		}
		m.pendingURL = value
		return m.startPrompt(promptAddTitle, "title (empty: "+profile.PlaceholderTitle+")", "")

	case promptAddTitle:
		url := m.pendingURL
		m.pendingURL = ""
		var added profile.Pair
		err := m.lib.Mutate(m.ctx, m.current, func(p *profile.Profile) error {
			var err error
			added, err = p.AddNew(url, value)
			return err
		})
		if err != nil {
			m.setError(err)
			return nil
		}
		m.setStatus(fmt.Sprintf("Added %q", added.Title))
		m.afterChange()

	case promptSearch:
		m.search(value)
	}
	return nil
}

func (m *model) search(query string) {
	if query == "" {
		m.searching = false
		m.results = nil
		m.syncHighlight()
		return
	}

	var (
		results []profile.Pair
		err     error
	)
	_ = m.lib.View(m.current, func(p *profile.Profile) {
		results, err = p.Search(query, m.searchMode)
	})
	if err != nil {
		m.setError(err)
		return
	}

	m.searching = true
	m.results = results
	m.pairCursor = 0
	m.setStatus(fmt.Sprintf("%d match(es) for %q by %s", len(results), query, m.searchMode))
	m.syncHighlight()
}

func (m *model) removeSelected() {
	pair, idx, ok := m.selectedPair()
	if !ok {
		return
	}
	err := m.lib.Mutate(m.ctx, m.current, func(p *profile.Profile) error {
		return p.RemovePair(idx, pair)
	})
	if err != nil {
		m.setError(err)
		return
	}

	if m.searching {
		kept := m.results[:0]
		for _, r := range m.results {
			if !r.Same(pair) {
				kept = append(kept, r)
			}
		}
		m.results = kept
	}
	m.setStatus(fmt.Sprintf("Removed %q", pair.Title))
	m.afterChange()
}

func (m *model) deleteSelectedProfile() {
	selected, ok := m.selectedProfile()
	if !ok {
		return
	}
	if err := m.lib.Delete(m.ctx, selected.ID); err != nil {
		m.setError(err)
		return
	}
	m.refresh()
	m.setStatus(fmt.Sprintf("Deleted %q", selected.Name))
}

func (m *model) open(urls []string) {
	if len(urls) == 0 {
		m.setStatus("Nothing to open")
		return
	}
	if m.opener == nil {
		m.setError(errors.New("no browser configured"))
		return
	}
	if err := m.opener.Open(m.ctx, urls); err != nil {
		m.setError(err)
		return
	}
	m.setStatus(fmt.Sprintf("Opened %d tab(s)", len(urls)))
}

// afterChange refreshes state and moves the highlight after a mutation.
func (m *model) afterChange() {
	m.refresh()
	m.syncHighlight()
}
