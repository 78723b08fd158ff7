/*
Copyright (C) 2013-2014 Regents of the University of Minnesota.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

package oilspill

import (
	"fmt"
	"math"
	"math/rand"
)

// State is one of the SimulationDriver's four lifecycle states.
type State int

const (
	Idle State = iota
	Running
	Paused
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// DriverConfig is the full set of runtime configuration values a
// SimulationDriver needs to initialize and run (§6.2 of the engine
// contract it implements).
type DriverConfig struct {
	SpillLat, SpillLon float64
	OilVolumeTons      float64
	OilKind            OilKind

	Mode          ReleaseMode
	SpillDuration float64 // hours

	ParticleCount int
	TimeStep      float64 // seconds
	MaxTime       float64 // seconds

	UseGridData    bool
	GridTimeOffset float64

	Scalar ScalarFields

	PlaybackSpeed int // integration steps per tick
}

// Validate checks the configuration for the invalid-configuration class
// of errors (§7): these must surface before initialize runs.
func (c DriverConfig) Validate() error {
	if c.ParticleCount <= 0 {
		return fmt.Errorf("oilspill: particle_count must be positive, got %d", c.ParticleCount)
	}
	if c.MaxTime <= 0 {
		return fmt.Errorf("oilspill: max_time must be positive, got %g", c.MaxTime)
	}
	if c.TimeStep <= 0 {
		return fmt.Errorf("oilspill: time_step must be positive, got %g", c.TimeStep)
	}
	if c.PlaybackSpeed <= 0 {
		return fmt.Errorf("oilspill: playback_speed must be positive, got %d", c.PlaybackSpeed)
	}
	if _, err := LookupOil(c.OilKind); err != nil {
		return err
	}
	if c.Mode == Continuous && c.SpillDuration <= 0 {
		return fmt.Errorf("oilspill: spill_duration must be positive in continuous mode, got %g", c.SpillDuration)
	}
	return nil
}

// SimulationDriver owns configuration, the particle array, grids, and
// time for one simulation run, and advances the state machine
// idle -> running -> {paused, completed} -> idle.
type SimulationDriver struct {
	cfg   DriverConfig
	oil   OilProperties
	grids Grids

	integrator *Integrator
	rng        *rand.Rand

	state State

	time       float64
	particles  []Particle
	trajectory []TrajectoryPoint
	stats      Statistics

	started bool

	OnUpdate   UpdateFunc
	OnComplete CompleteFunc
}

// NewSimulationDriver validates cfg and constructs a driver in the
// idle state. Grids may have any of its four fields nil.
func NewSimulationDriver(cfg DriverConfig, grids Grids, rng *rand.Rand) (*SimulationDriver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	oil, err := LookupOil(cfg.OilKind)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	d := &SimulationDriver{
		cfg:       cfg,
		oil:       oil,
		grids:     grids,
		rng:       rng,
		state:     Idle,
		particles: make([]Particle, cfg.ParticleCount),
	}
	d.integrator = NewIntegrator(d.integratorConfig(), grids, rng)
	return d, nil
}

func (d *SimulationDriver) integratorConfig() IntegratorConfig {
	return IntegratorConfig{
		SpillLat:       d.cfg.SpillLat,
		SpillLon:       d.cfg.SpillLon,
		OilVolumeTons:  d.cfg.OilVolumeTons,
		Oil:            d.oil,
		Mode:           d.cfg.Mode,
		SpillDuration:  d.cfg.SpillDuration,
		ParticleCount:  d.cfg.ParticleCount,
		UseGridData:    d.cfg.UseGridData,
		GridTimeOffset: d.cfg.GridTimeOffset,
		Scalar:         d.cfg.Scalar,
	}
}

// State returns the driver's current lifecycle state.
func (d *SimulationDriver) State() State { return d.state }

// Time returns the current simulation time in seconds.
func (d *SimulationDriver) Time() float64 { return d.time }

// Particles returns the live particle array. Callers must not retain
// it across a Reset.
func (d *SimulationDriver) Particles() []Particle { return d.particles }

// Stats returns the latest statistics snapshot.
func (d *SimulationDriver) Stats() Statistics { return d.stats }

// Trajectory returns the recorded centroid trajectory so far.
func (d *SimulationDriver) Trajectory() []TrajectoryPoint { return d.trajectory }

// initialize (re)builds the particle population and resets time,
// trajectory, and stats.
func (d *SimulationDriver) initialize() {
	d.integrator = NewIntegrator(d.integratorConfig(), d.grids, d.rng)
	d.integrator.Initialize(d.particles)
	d.time = 0
	d.trajectory = nil
	d.stats = NewInitialStatistics(d.cfg.SpillLat, d.cfg.SpillLon)
	d.started = true
}

// Start transitions idle -> running, initializing on first start.
func (d *SimulationDriver) Start() {
	if !d.started {
		d.initialize()
	}
	if d.state == Idle || d.state == Paused {
		d.state = Running
	}
}

// Pause transitions running -> paused. No-op otherwise.
func (d *SimulationDriver) Pause() {
	if d.state == Running {
		d.state = Paused
	}
}

// Reset transitions any state to idle, discarding particles, time, and
// stats. Synchronous and idempotent.
func (d *SimulationDriver) Reset() {
	d.state = Idle
	d.time = 0
	d.trajectory = nil
	d.stats = Statistics{}
	d.started = false
	for i := range d.particles {
		d.particles[i] = Particle{}
	}
}

// Tick runs up to PlaybackSpeed integration steps and emits exactly one
// OnUpdate. It does nothing unless the driver is Running. When time
// reaches MaxTime, the remaining steps of the tick are skipped, OnUpdate
// still fires, and OnComplete then fires once.
func (d *SimulationDriver) Tick() {
	if d.state != Running {
		return
	}
	if d.time >= d.cfg.MaxTime {
		d.state = Completed
		if d.OnComplete != nil {
			d.OnComplete()
		}
		return
	}

	for step := 0; step < d.cfg.PlaybackSpeed; step++ {
		if d.time >= d.cfg.MaxTime {
			break
		}
		prevTime := d.time
		d.time = d.integrator.Step(d.particles, d.time, d.cfg.TimeStep)
		d.stats = Compute(d.particles, d.stats, d.cfg.SpillLat, d.cfg.SpillLon)
		d.sampleTrajectory(prevTime)
	}

	if d.OnUpdate != nil {
		d.OnUpdate(d.particles, d.stats, d.time)
	}

	if d.time >= d.cfg.MaxTime {
		d.state = Completed
		if d.OnComplete != nil {
			d.OnComplete()
		}
	}
}

// sampleTrajectory appends a centroid sample when this step crossed an
// hour boundary. Using floor(time/3600) rather than time%3600 < dt
// keeps this correct even when the step size does not evenly divide
// one hour.
func (d *SimulationDriver) sampleTrajectory(prevTime float64) {
	if math.Floor(d.time/3600) <= math.Floor(prevTime/3600) {
		return
	}
	d.trajectory = append(d.trajectory, TrajectoryPoint{
		TimeSeconds:   d.time,
		Lat:           d.stats.Centroid.Y,
		Lon:           d.stats.Centroid.X,
		EvaporatedPct: d.stats.EvaporatedPct,
		DispersedPct:  d.stats.DispersedPct,
		EmulsionPct:   d.stats.EmulsionPct,
	})
}
