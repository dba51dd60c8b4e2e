package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Back    key.Binding
	Quit    key.Binding
	New     key.Binding
	Rename  key.Binding
	Delete  key.Binding
	Open    key.Binding
	Add     key.Binding
	Remove  key.Binding
	Sort    key.Binding
	Search  key.Binding
	Copy    key.Binding
	Field   key.Binding
	Exact   key.Binding
	Confirm key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new profile")),
	Rename:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
	Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add tab")),
	Remove:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove tab")),
	Sort:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle sort")),
	Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy url")),
	Field:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "search field")),
	Exact:   key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "exact/blurry")),
	Confirm: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
}

func helpLine(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += " • "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
