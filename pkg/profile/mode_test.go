package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortMode_ParseRoundTrip(t *testing.T) {
	for _, mode := range sortCycle {
		parsed, err := ParseSortMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}

	mode, err := ParseSortMode("")
	require.NoError(t, err)
	assert.Equal(t, SortByDateCreation, mode)

	_, err = ParseSortMode("sideways")
	assert.Error(t, err)
}

func TestSortMode_Next(t *testing.T) {
	mode := SortByDateCreation
	for range sortCycle {
		mode = mode.Next()
	}
	assert.Equal(t, SortByDateCreation, mode)
	assert.Equal(t, SortByTitle, SortByDateCreationRev.Next())
}

func TestSearchMode_Defaults(t *testing.T) {
	mode := DefaultSearchMode()
	assert.Equal(t, SearchByTitle, mode.Field)
	assert.True(t, mode.Blurry)
	assert.Equal(t, "url (exact)", ByURL(false).String())
	assert.Equal(t, "either", EitherMatch(true).String())
}
