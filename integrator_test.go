package oilspill

import (
	"math/rand"
	"testing"
)

// S4 — wind-only drift in scalar mode. Diffusion noise is zero-mean,
// so averaging over many particles isolates the deterministic drift
// term: a net displacement of about 25.9 km over 48 hours.
func TestIntegratorScalarWindDrift(t *testing.T) {
	oilP, err := LookupOil(Crude)
	if err != nil {
		t.Fatal(err)
	}
	const n = 2000
	cfg := IntegratorConfig{
		SpillLat:      10,
		SpillLon:      10,
		OilVolumeTons: 1000,
		Oil:           oilP,
		Mode:          Instant,
		ParticleCount: n,
		UseGridData:   false,
		Scalar: ScalarFields{
			WindSpeed:    5,
			WindDir:      180,
			CurrentSpeed: 0,
			WaterTemp:    15,
		},
	}
	rng := rand.New(rand.NewSource(1))
	in := NewIntegrator(cfg, Grids{}, rng)
	particles := make([]Particle, n)
	in.Initialize(particles)

	const dt = 600.0
	simTime := 0.0
	for simTime < 48*3600 {
		simTime = in.Step(particles, simTime, dt)
	}

	var sumKM float64
	for i := range particles {
		sumKM += haversineKM(cfg.SpillLat, cfg.SpillLon, particles[i].Pos.Y, particles[i].Pos.X)
	}
	meanKM := sumKM / n

	if !approxEqual(meanKM, 25.9, 1.5) {
		t.Errorf("mean drift after 48h = %.2f km, want ~25.9 km", meanKM)
	}
}

// S6 — grounding. A particle placed just offshore of a land mask with
// an onshore wind drift deactivates and reverts to its pre-step position.
func TestIntegratorGrounding(t *testing.T) {
	oilP, err := LookupOil(Crude)
	if err != nil {
		t.Fatal(err)
	}
	landMask, err := NewFieldGrid([]float64{0, 1}, []float64{0, 1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	// Water (0) at lon<=0.5, land (1) at lon>0.5.
	if err := landMask.AddVariable("lsm", []float64{0, 1, 0, 1}); err != nil {
		t.Fatal(err)
	}

	cfg := IntegratorConfig{
		SpillLat:      0.5,
		SpillLon:      0.49,
		OilVolumeTons: 1000,
		Oil:           oilP,
		Mode:          Instant,
		ParticleCount: 1,
		UseGridData:   false,
		Scalar: ScalarFields{
			WindSpeed:    30,
			WindDir:      270, // blowing from the west, i.e. onshore toward increasing lon
			CurrentSpeed: 0,
			WaterTemp:    15,
		},
	}
	rng := rand.New(rand.NewSource(1))
	in := NewIntegrator(cfg, Grids{LandMask: landMask}, rng)
	particles := make([]Particle, 1)
	particles[0].Active = true
	particles[0].Pos.Y = cfg.SpillLat
	particles[0].Pos.X = cfg.SpillLon

	prePos := particles[0].Pos
	in.Step(particles, 0, 3600)

	p := particles[0]
	if p.Active {
		t.Error("particle driven onshore should be inactive after grounding")
	}
	if !p.Beached {
		t.Error("particle driven onshore should be marked beached")
	}
	if !approxEqual(p.Pos.Y, prePos.Y, 1e-12) || !approxEqual(p.Pos.X, prePos.X, 1e-12) {
		t.Errorf("beached particle position = %+v, want unchanged from %+v", p.Pos, prePos)
	}
}
