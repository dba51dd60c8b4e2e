package storage

import (
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/entrhq/tabresumer/pkg/profile"
)

type document struct {
	General     general      `yaml:"general"`
	BrowserTabs []browserTab `yaml:"browser_tabs"`
}

type general struct {
	Name             string `yaml:"name"`
	ID               int64  `yaml:"id"`
	TimeCreated      string `yaml:"time_created"`
	TimeLastModified string `yaml:"time_last_modified,omitempty"`
	SortMode         string `yaml:"sort_mode,omitempty"`
}

type browserTab struct {
	URL         string `yaml:"url"`
	Title       string `yaml:"title"`
	TimeCreated string `yaml:"time_created"`
}

// Parse decodes a profile file. Tabs without a URL or with an unreadable
// timestamp are dropped; everything else is handed to profile.Hydrate.
func Parse(raw []byte) (*profile.Profile, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("storage: parse error: %w", err)
	}

	created, err := ParseTimestamp(doc.General.TimeCreated)
	if err != nil {
		return nil, err
	}

	opts := []profile.Option{}
	if doc.General.TimeLastModified != "" {
		modified, err := ParseTimestamp(doc.General.TimeLastModified)
		if err != nil {
			return nil, err
		}
		opts = append(opts, profile.WithLastModified(modified))
	}
	if mode, err := profile.ParseSortMode(doc.General.SortMode); err == nil {
		opts = append(opts, profile.WithSortMode(mode))
	} else {
		slog.Debug("storage: ignoring sort mode", "profile", doc.General.ID, "err", err)
	}

	pairs := make([]profile.Pair, 0, len(doc.BrowserTabs))
	for _, tab := range doc.BrowserTabs {
		if tab.URL == "" {
			continue
		}
		title := tab.Title
		if title == "" {
			title = profile.MissingTitle
		}
		tabCreated, err := ParseTimestamp(tab.TimeCreated)
		if err != nil {
			slog.Debug("storage: dropping tab with bad timestamp", "url", tab.URL, "err", err)
			continue
		}
		pairs = append(pairs, profile.NewPairAt(tab.URL, title, tabCreated))
	}

	return profile.Hydrate(doc.General.ID, doc.General.Name, created, pairs, opts...), nil
}

// ownerLast returns the pairs in profile order, except that the pair owning
// a shared title is written after every other pair with that title. Parse
// gives a shared title to the last pair in file order, so this keeps title
// ownership stable across a save and load.
func ownerLast(p *profile.Profile) []profile.Pair {
	pairs := p.Pairs()
	last := make(map[string]int, len(pairs))
	for i, pair := range pairs {
		last[pair.Title] = i
	}

	out := make([]profile.Pair, 0, len(pairs))
	held := make(map[string][]profile.Pair)
	for i, pair := range pairs {
		owner, ok := p.TitleOwner(pair.Title)
		if ok && owner == pair.Key() && i != last[pair.Title] {
			held[pair.Title] = append(held[pair.Title], pair)
			continue
		}
		out = append(out, pair)
		if i == last[pair.Title] {
			out = append(out, held[pair.Title]...)
		}
	}
	return out
}

// Serialize renders a profile to its on-disk representation.
func Serialize(p *profile.Profile) ([]byte, error) {
	doc := document{
		General: general{
			Name:             p.Name(),
			ID:               p.ID(),
			TimeCreated:      FormatTimestamp(p.CreatedAt()),
			TimeLastModified: FormatTimestamp(p.LastModifiedAt()),
			SortMode:         p.SortMode().String(),
		},
	}
	for _, pair := range ownerLast(p) {
		doc.BrowserTabs = append(doc.BrowserTabs, browserTab{
			URL:         pair.URL,
			Title:       pair.Title,
			TimeCreated: FormatTimestamp(pair.CreatedAt),
		})
	}

	b, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("storage: serialize error: %w", err)
	}
	return b, nil
}
