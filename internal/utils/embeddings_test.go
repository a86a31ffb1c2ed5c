package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		vec1 []float64
		vec2 []float64
		want float64
	}{
		{
			name: "identical vectors",
			vec1: []float64{1, 2, 3},
			vec2: []float64{1, 2, 3},
			want: 1,
		},
		{
			name: "opposite vectors",
			vec1: []float64{1, 0},
			vec2: []float64{-1, 0},
			want: -1,
		},
		{
			name: "orthogonal vectors",
			vec1: []float64{1, 0},
			vec2: []float64{0, 1},
			want: 0,
		},
		{
			name: "zero magnitude yields exactly zero",
			vec1: []float64{0, 0},
			vec2: []float64{1, 1},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineSimilarity(tt.vec1, tt.vec2)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCosineSimilarityIsCommutative(t *testing.T) {
	vec1 := []float64{0.3, -1.7, 2.2, 0.05}
	vec2 := []float64{1.1, 0.4, -0.9, 3.0}

	ab, err := CosineSimilarity(vec1, vec2)
	require.NoError(t, err)
	ba, err := CosineSimilarity(vec2, vec1)
	require.NoError(t, err)

	assert.Equal(t, ab, ba)
	assert.GreaterOrEqual(t, ab, -1.0)
	assert.LessOrEqual(t, ab, 1.0)
}

func TestCosineSimilarityRejectsBadInput(t *testing.T) {
	_, err := CosineSimilarity([]float64{1, 2}, []float64{1, 2, 3})
	assert.Error(t, err)

	_, err = CosineSimilarity(nil, []float64{1})
	assert.Error(t, err)
}
