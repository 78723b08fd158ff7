package oilspill

import (
	"testing"

	"github.com/ctessum/geom"
)

func TestNewInitialStatistics(t *testing.T) {
	s := NewInitialStatistics(10, -70)
	if s.Centroid.Y != 10 || s.Centroid.X != -70 {
		t.Errorf("Centroid = %+v, want (Y=10, X=-70)", s.Centroid)
	}
	if s.RemainingPct != 100 {
		t.Errorf("RemainingPct = %v, want 100", s.RemainingPct)
	}
}

func TestComputeAllBeachedCarriesForwardPrev(t *testing.T) {
	prev := Statistics{AreaKM2: 4.2, MaxDriftKM: 1.1, Beached: 0}
	particles := []Particle{
		{Active: false, Beached: true},
		{Active: false, Beached: true},
	}
	got := Compute(particles, prev, 0, 0)
	if got.Beached != 2 {
		t.Errorf("Beached = %d, want 2", got.Beached)
	}
	if got.AreaKM2 != prev.AreaKM2 || got.MaxDriftKM != prev.MaxDriftKM {
		t.Errorf("Compute with no active particles should carry forward prev's geometry, got %+v", got)
	}
}

func TestComputeActivePopulation(t *testing.T) {
	particles := []Particle{
		{Pos: geom.Point{Y: 0, X: 0}, Active: true, Evaporated: 0.1, Dispersed: 0.05, EmulsionWater: 0.2, Viscosity: 50},
		{Pos: geom.Point{Y: 0.01, X: 0.01}, Active: true, Evaporated: 0.1, Dispersed: 0.05, EmulsionWater: 0.2, Viscosity: 50},
	}
	got := Compute(particles, Statistics{}, 0, 0)
	if got.Beached != 0 {
		t.Errorf("Beached = %d, want 0", got.Beached)
	}
	if got.RemainingPct <= 0 || got.RemainingPct >= 100 {
		t.Errorf("RemainingPct = %v, want strictly between 0 and 100", got.RemainingPct)
	}
	if got.MaxDriftKM <= 0 {
		t.Errorf("MaxDriftKM = %v, want > 0 for particles displaced from the origin", got.MaxDriftKM)
	}
}
