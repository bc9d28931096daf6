package embed

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"empty", nil, nil, 0},
		{"mismatched length", []float32{1, 2}, []float32{1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CosineSimilarity(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("CosineSimilarity = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCosineSimilarity_Scaled(t *testing.T) {
	// Cosine similarity is scale-invariant.
	a := []float32{1, 2, 3}
	b := []float32{2, 4, 6}
	if got := CosineSimilarity(a, b); math.Abs(got-1) > 1e-6 {
		t.Errorf("expected 1 for scaled vector, got %v", got)
	}
}

func TestNewOpenAIEmbedder_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIEmbedder("", "", ""); err == nil {
		t.Error("expected error without API key")
	}
	if _, err := NewOpenAIEmbedder("k", "", ""); err != nil {
		t.Errorf("unexpected error with key: %v", err)
	}
}
