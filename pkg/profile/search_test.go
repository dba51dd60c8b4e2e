package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchFixture(t *testing.T) *Profile {
	t.Helper()

	p := newTestProfile()
	for _, pair := range []struct{ url, title string }{
		{"https://go.dev/doc", "Go Documentation"},
		{"https://go.dev/doc", "Effective Go"},
		{"https://github.com/charmbracelet", "Charm"},
		{"https://news.ycombinator.com", "Hacker News"},
	} {
		_, err := p.AddNew(pair.url, pair.title)
		require.NoError(t, err)
	}
	return p
}

func TestSearch(t *testing.T) {
	p := searchFixture(t)

	tests := []struct {
		name  string
		query string
		mode  SearchMode
		want  []string
	}{
		{"exact url", "https://go.dev/doc", ByURL(false), []string{"Go Documentation", "Effective Go"}},
		{"blurry url", "github", ByURL(true), []string{"Charm"}},
		{"exact title", "Charm", ByTitle(false), []string{"Charm"}},
		{"blurry title", "Go", ByTitle(true), []string{"Go Documentation", "Effective Go"}},
		{"blurry url substring", "ycombinator", ByURL(true), []string{"Hacker News"}},
		{"either unions both sides", "news", EitherMatch(true), []string{"Hacker News"}},
		{"either url side only", "charmbracelet", EitherMatch(true), []string{"Charm"}},
		{"default mode", "Hacker", DefaultSearchMode(), []string{"Hacker News"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Search(tt.query, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestSearch_BlurryMatchesCase(t *testing.T) {
	p := newTestProfile()
	_, err := p.AddNew("https://Example.com/Docs", "Alpha Docs")
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		mode  SearchMode
		found bool
	}{
		{"title same case", "Alpha", ByTitle(true), true},
		{"title other case", "alpha", ByTitle(true), false},
		{"url same case", "Example.com", ByURL(true), true},
		{"url other case", "example.com", ByURL(true), false},
		{"either other case", "docs", EitherMatch(true), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Search(tt.query, tt.mode)
			if tt.found {
				require.NoError(t, err)
				assert.Len(t, got, 1)
				return
			}
			assert.ErrorIs(t, err, ErrNothingFound)
			assert.Empty(t, got)
		})
	}
}

func TestSearch_NothingFound(t *testing.T) {
	p := searchFixture(t)

	for _, mode := range []SearchMode{ByURL(true), ByURL(false), ByTitle(true), ByTitle(false), EitherMatch(true), EitherMatch(false)} {
		t.Run(mode.String(), func(t *testing.T) {
			got, err := p.Search("zzz", mode)
			assert.ErrorIs(t, err, ErrNothingFound)
			assert.Empty(t, got)
		})
	}
}

func TestSearch_RoundTrip(t *testing.T) {
	p := newTestProfile()
	_, err := p.AddNew("https://a.com/x", "First")
	require.NoError(t, err)
	added, err := p.AddNew("https://a.com/x", "Second")
	require.NoError(t, err)

	byTitle, err := p.Search("Second", ByTitle(false))
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.True(t, byTitle[0].Same(added))

	byURL, err := p.Search("https://a.com/x", ByURL(false))
	require.NoError(t, err)
	assert.Len(t, byURL, 2)
	assert.Contains(t, titles(byURL), "Second")
}

func TestSearch_FollowsSortMode(t *testing.T) {
	p := searchFixture(t)
	p.Sort(SortByTitle)

	got, err := p.Search("go", EitherMatch(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"Effective Go", "Go Documentation"}, titles(got))
}
