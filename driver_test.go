package oilspill

import (
	"math/rand"
	"testing"
)

func testDriverConfig() DriverConfig {
	return DriverConfig{
		SpillLat:      30,
		SpillLon:      -88,
		OilVolumeTons: 500,
		OilKind:       Crude,
		Mode:          Instant,
		ParticleCount: 50,
		TimeStep:      600,
		MaxTime:       3600,
		PlaybackSpeed: 2,
		Scalar: ScalarFields{
			WindSpeed: 5,
			WindDir:   200,
			WaterTemp: 18,
		},
	}
}

func TestDriverValidateRejectsBadConfig(t *testing.T) {
	cfg := testDriverConfig()
	cfg.ParticleCount = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for a non-positive particle count, got nil")
	}
}

func TestDriverValidateRequiresDurationForContinuous(t *testing.T) {
	cfg := testDriverConfig()
	cfg.Mode = Continuous
	cfg.SpillDuration = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for continuous mode with zero spill_duration, got nil")
	}
}

func TestDriverLifecycle(t *testing.T) {
	cfg := testDriverConfig()
	d, err := NewSimulationDriver(cfg, Grids{}, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	if d.State() != Idle {
		t.Fatalf("new driver state = %v, want Idle", d.State())
	}

	d.Start()
	if d.State() != Running {
		t.Fatalf("state after Start = %v, want Running", d.State())
	}

	updates := 0
	d.OnUpdate = func(particles []Particle, stats Statistics, timeSeconds float64) { updates++ }
	completed := false
	d.OnComplete = func() { completed = true }

	for d.State() == Running {
		d.Tick()
	}

	if d.State() != Completed {
		t.Errorf("final state = %v, want Completed", d.State())
	}
	if !completed {
		t.Error("OnComplete was never called")
	}
	if updates == 0 {
		t.Error("OnUpdate was never called")
	}
	if d.Time() < cfg.MaxTime {
		t.Errorf("final time = %v, want >= %v", d.Time(), cfg.MaxTime)
	}
}

func TestDriverPauseResume(t *testing.T) {
	cfg := testDriverConfig()
	d, err := NewSimulationDriver(cfg, Grids{}, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	d.Start()
	d.Tick()
	d.Pause()
	if d.State() != Paused {
		t.Fatalf("state after Pause = %v, want Paused", d.State())
	}
	pausedTime := d.Time()
	d.Tick() // a tick while paused must be a no-op
	if d.Time() != pausedTime {
		t.Errorf("Time changed during a paused tick: %v -> %v", pausedTime, d.Time())
	}
	d.Start()
	if d.State() != Running {
		t.Fatalf("state after resuming = %v, want Running", d.State())
	}
}

func TestDriverReset(t *testing.T) {
	cfg := testDriverConfig()
	d, err := NewSimulationDriver(cfg, Grids{}, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	d.Start()
	d.Tick()
	d.Reset()
	if d.State() != Idle {
		t.Fatalf("state after Reset = %v, want Idle", d.State())
	}
	if d.Time() != 0 {
		t.Errorf("Time after Reset = %v, want 0", d.Time())
	}
	if len(d.Trajectory()) != 0 {
		t.Errorf("Trajectory after Reset has %d points, want 0", len(d.Trajectory()))
	}
}
