package oilspill

import (
	"math"
	"math/rand"
	"testing"
)

func TestDiskSampleWithinRadius(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const centerLat, centerLon, radius = 45.0, -60.0, 200.0
	for i := 0; i < 500; i++ {
		lat, lon := diskSample(rng, centerLat, centerLon, radius)
		d := haversineKM(centerLat, centerLon, lat, lon) * 1000
		if d > radius+1e-6 {
			t.Fatalf("diskSample produced a point %.2f m from center, want <= %.0f m", d, radius)
		}
	}
}

func TestStandardNormalMoments(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const n = 20000
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		v := standardNormal(rng)
		sum += v
		sumSq += v * v
	}
	mean := sum / n
	variance := sumSq/n - mean*mean
	if math.Abs(mean) > 0.05 {
		t.Errorf("standardNormal mean over %d draws = %v, want ~0", n, mean)
	}
	if math.Abs(variance-1) > 0.1 {
		t.Errorf("standardNormal variance over %d draws = %v, want ~1", n, variance)
	}
}
