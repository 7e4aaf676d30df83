package levenshtein_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/contactdir/levenshtein"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExclusionSet_Excludes(t *testing.T) {
	t.Parallel()

	set := levenshtein.NewExclusionSet([]string{"אום אל-פחם", "סח'נין", "כפר קרע", "ג'ת"})

	tests := []struct {
		name     string
		locality string
		want     bool
	}{
		{"exact", "כפר קרע", true},
		{"hyphen and space fold", "אום אל פחם", true},
		{"geresh folds to apostrophe", "סח׳נין", true},
		{"one edit", "סחנין", true},
		{"extra spaces", "  כפר   קרע ", true},
		{"unrelated", "חיפה", false},
		{"short names match exactly only", "גת", false},
		{"short name exact", "ג׳ת", true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, set.Excludes(tt.locality))
		})
	}
}

func TestExclusionSet_MaxDistanceZero(t *testing.T) {
	t.Parallel()

	set := levenshtein.NewExclusionSet([]string{"סח'נין"})
	set.MaxDistance = 0

	assert.True(t, set.Excludes("סח׳נין"))
	assert.False(t, set.Excludes("סחנין"))
}

func TestExclusionSet_nil(t *testing.T) {
	t.Parallel()

	var set *levenshtein.ExclusionSet
	assert.False(t, set.Excludes("חיפה"))
}

func TestReadExclusionSet(t *testing.T) {
	t.Parallel()

	set, err := levenshtein.ReadExclusionSet(strings.NewReader("# Arab authorities\nטמרה\n\n  טייבה  \n"))

	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Excludes("טייבה"))
	assert.False(t, set.Excludes("# Arab authorities"))
}
