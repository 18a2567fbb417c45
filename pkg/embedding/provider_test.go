package embedding

import (
	"math"
	"testing"
)

func TestNormalizeVector(t *testing.T) {
	got := NormalizeVector([]float32{3, 4})

	var norm float64
	for _, v := range got {
		norm += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(norm)-1) > 1e-6 {
		t.Errorf("normalized magnitude = %v, want 1", math.Sqrt(norm))
	}
	if math.Abs(float64(got[0])-0.6) > 1e-6 || math.Abs(float64(got[1])-0.8) > 1e-6 {
		t.Errorf("NormalizeVector = %v, want [0.6 0.8]", got)
	}
}

func TestNormalizeVectorZero(t *testing.T) {
	got := NormalizeVector([]float32{0, 0})
	if got[0] != 0 || got[1] != 0 {
		t.Errorf("zero vector should pass through, got %v", got)
	}
}

func TestMeanVector(t *testing.T) {
	got := MeanVector([][]float32{
		{1, 0},
		{0, 1},
	})
	if len(got) != 2 || got[0] != 0.5 || got[1] != 0.5 {
		t.Errorf("MeanVector = %v, want [0.5 0.5]", got)
	}
}

func TestMeanVectorEmpty(t *testing.T) {
	if got := MeanVector(nil); got != nil {
		t.Errorf("MeanVector(nil) = %v, want nil", got)
	}
}

func TestMeanVectorRaggedInput(t *testing.T) {
	// Longer rows are truncated to the first row's dimension
	got := MeanVector([][]float32{
		{2, 2},
		{0, 0, 9},
	})
	if len(got) != 2 || got[0] != 1 || got[1] != 1 {
		t.Errorf("MeanVector = %v, want [1 1]", got)
	}
}
