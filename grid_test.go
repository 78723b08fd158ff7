package oilspill

import "testing"

// S5 — grid interpolation on a 2x2 static grid. The exact-center
// sample is unambiguous; the off-center sample is a golden computed
// from the bilinear formula itself rather than taken on faith.
func TestFieldGridSampleBilinear(t *testing.T) {
	g, err := NewFieldGrid([]float64{0, 1}, []float64{0, 1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.AddVariable("u10", []float64{0, 10, 20, 30}); err != nil {
		t.Fatal(err)
	}

	if got, want := g.Sample("u10", 0.5, 0.5, 0), 15.0; !approxEqual(got, want, 1e-9) {
		t.Errorf("Sample(u10, 0.5, 0.5) = %v, want %v", got, want)
	}

	// 0.75*(0.25*0 + 0.75*10) + 0.25*(0.25*20 + 0.75*30) = 5.625 + 6.875 = 12.5
	if got, want := g.Sample("u10", 0.25, 0.75, 0), 12.5; !approxEqual(got, want, 1e-9) {
		t.Errorf("Sample(u10, 0.25, 0.75) = %v, want %v", got, want)
	}
}

func TestFieldGridSampleMissingVariable(t *testing.T) {
	g, err := NewFieldGrid([]float64{0, 1}, []float64{0, 1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Sample("v10", 0.5, 0.5, 0); got != 0 {
		t.Errorf("Sample of an unregistered variable = %v, want 0", got)
	}
}

func TestFieldGridContains(t *testing.T) {
	g, err := NewFieldGrid([]float64{0, 1}, []float64{0, 1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !g.Contains(0.5, 0.5) {
		t.Error("Contains(0.5, 0.5) = false, want true")
	}
	if g.Contains(2, 2) {
		t.Error("Contains(2, 2) = true, want false")
	}
}

func TestNewFieldGridRejectsNonAscendingAxis(t *testing.T) {
	if _, err := NewFieldGrid([]float64{1, 0}, []float64{0, 1}, nil); err == nil {
		t.Error("expected an error for a non-ascending latitude axis, got nil")
	}
}

func TestFieldGridTimeInterpolation(t *testing.T) {
	g, err := NewFieldGrid([]float64{0, 1}, []float64{0, 1}, []float64{0, 10})
	if err != nil {
		t.Fatal(err)
	}
	// t=0 everywhere 0, t=10 everywhere 20.
	if err := g.AddVariable("u10", []float64{0, 0, 0, 0, 20, 20, 20, 20}); err != nil {
		t.Fatal(err)
	}
	if got, want := g.Sample("u10", 0.5, 0.5, 5), 10.0; !approxEqual(got, want, 1e-9) {
		t.Errorf("Sample at the time midpoint = %v, want %v", got, want)
	}
}
