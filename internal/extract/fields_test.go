package extract

import (
	"testing"

	"movie-loader/internal/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMultiValue(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected []string
	}{
		{"comma space", "Drama, Romance, Sci-Fi", []string{"Drama", "Romance", "Sci-Fi"}},
		{"no spaces", "Drama,Romance,Sci-Fi", []string{"Drama", "Romance", "Sci-Fi"}},
		{"mixed spacing", "A, B,C", []string{"A", "B", "C"}},
		{"single value", "Spike Jonze", []string{"Spike Jonze"}},
		{"duplicates kept", "Drama, Drama", []string{"Drama", "Drama"}},
		{"order kept", "Sci-Fi,Action, Adventure", []string{"Sci-Fi", "Action", "Adventure"}},
		{"empty", "", nil},
		{"blank", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := source.Record{FieldGenre: tt.value}
			result, err := SplitMultiValue(rec, FieldGenre)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSplitMultiValueSpacingIndependent(t *testing.T) {
	variants := []string{
		"Joaquin Phoenix, Amy Adams, Rooney Mara",
		"Joaquin Phoenix,Amy Adams,Rooney Mara",
		"Joaquin Phoenix, Amy Adams,Rooney Mara",
	}

	want := []string{"Joaquin Phoenix", "Amy Adams", "Rooney Mara"}
	for _, v := range variants {
		got, err := SplitMultiValue(source.Record{FieldActors: v}, FieldActors)
		require.NoError(t, err)
		assert.Equal(t, want, got, v)
	}
}

func TestSplitMultiValueMissingField(t *testing.T) {
	_, err := SplitMultiValue(source.Record{FieldTitle: "Her"}, FieldGenre)
	require.Error(t, err)
	assert.ErrorIs(t, err, source.ErrMissingField)
	assert.Contains(t, err.Error(), FieldGenre)
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"Drama", "Romance"}, Unique([]string{"Drama", "Romance", "Drama"}))
	assert.Empty(t, Unique(nil))
}
