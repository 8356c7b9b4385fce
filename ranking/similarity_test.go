package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"kitten", "sitting", 3},
		{"流浪地球", "流浪地球2", 1},
		{"三体", "三国", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"|"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 1.0, Similarity("inception", "inception"))
	assert.Equal(t, 0.0, Similarity("", "abc"))
	assert.InDelta(t, 2.0/3.0, Similarity("abc", "abd"), 1e-9)
	assert.InDelta(t, 4.0/7.0, Similarity("kitten", "sitting"), 1e-9)
	assert.InDelta(t, 0.5, Similarity("三体", "三国"), 1e-9)
}

func TestSimilarity_Properties(t *testing.T) {
	words := []string{"", "a", "matrix", "thematrix", "matrixreloaded", "流浪地球", "流浪地球2", "heat"}

	for _, a := range words {
		assert.Equal(t, 1.0, Similarity(a, a), "self similarity of %q", a)
		for _, b := range words {
			sim := Similarity(a, b)
			assert.GreaterOrEqual(t, sim, 0.0)
			assert.LessOrEqual(t, sim, 1.0)
			assert.Equal(t, sim, Similarity(b, a), "symmetry of %q and %q", a, b)

			above, ok := similarityAbove(a, b, similarityThreshold)
			assert.Equal(t, sim > similarityThreshold, ok, "threshold check of %q and %q", a, b)
			if ok {
				assert.Equal(t, sim, above)
			}
		}
	}
}
