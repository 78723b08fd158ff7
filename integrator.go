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
	"math"
	"math/rand"
)

// Grids bundles the four named field resources the Integrator consults.
// Any of them may be nil, in which case the scalar fallback fields are
// used for that contribution.
type Grids struct {
	Wind        *FieldGrid // u10, v10 east/north m/s
	Current     *FieldGrid // uo, vo east/north m/s
	Temperature *FieldGrid // thetao degrees C, loaded but not read by the integrator
	LandMask    *FieldGrid // lsm, 0..1 static
}

// ScalarFields carries the fallback environmental conditions used when
// UseGridData is false or no grid covers a particle's position.
type ScalarFields struct {
	WindSpeed    float64 // m/s
	WindDir      float64 // degrees, meteorological "from"
	CurrentSpeed float64 // m/s
	CurrentDir   float64 // degrees, oceanographic "to"
	WaterTemp    float64 // degrees C
}

// ReleaseMode selects how the N particles enter the water.
type ReleaseMode int

const (
	// Instant releases all particles at t=0.
	Instant ReleaseMode = iota
	// Continuous releases particles linearly over SpillDuration hours.
	Continuous
)

// IntegratorConfig holds the run parameters the Integrator needs that
// don't change step to step.
type IntegratorConfig struct {
	SpillLat, SpillLon float64
	OilVolumeTons      float64
	Oil                OilProperties

	Mode          ReleaseMode
	SpillDuration float64 // hours, continuous mode only
	ParticleCount int

	UseGridData    bool
	GridTimeOffset float64 // hours, added to time/3600 when sampling grids

	Scalar ScalarFields
}

// Integrator advances a particle population by one fixed-size step at
// a time. It holds no simulation time itself; the caller (typically
// SimulationDriver) threads time through successive Step calls.
type Integrator struct {
	cfg   IntegratorConfig
	grids Grids
	rng   *rand.Rand

	particlesReleased int
}

// NewIntegrator constructs an Integrator bound to the given
// configuration, grids, and random source. rng may be a fresh
// rand.New(rand.NewSource(seed)) for reproducible runs.
func NewIntegrator(cfg IntegratorConfig, grids Grids, rng *rand.Rand) *Integrator {
	return &Integrator{cfg: cfg, grids: grids, rng: rng}
}

// ParticlesReleased returns the count of particles released so far.
func (in *Integrator) ParticlesReleased() int { return in.particlesReleased }

// Initialize populates particles according to the configured release
// mode. For Instant mode, all particles are placed in a ~200m disk
// around the spill origin and activated. For Continuous mode, all
// particles start inactive, colocated at the spill origin, and are
// activated over time by Step's release schedule.
func (in *Integrator) Initialize(particles []Particle) {
	in.particlesReleased = 0
	for i := range particles {
		particles[i] = Particle{}
		if in.cfg.Mode == Instant {
			lat, lon := diskSample(in.rng, in.cfg.SpillLat, in.cfg.SpillLon, 200)
			particles[i].Pos.Y = lat
			particles[i].Pos.X = lon
			particles[i].Active = true
		} else {
			particles[i].Pos.Y = in.cfg.SpillLat
			particles[i].Pos.X = in.cfg.SpillLon
			particles[i].Active = false
		}
	}
	if in.cfg.Mode == Instant {
		in.particlesReleased = len(particles)
	}
}

// Step advances the particle population by one fixed step of size
// dtSeconds, starting at the given simulation time in seconds (the
// time *before* this step is applied). It returns the new time.
func (in *Integrator) Step(particles []Particle, timeSeconds, dtSeconds float64) float64 {
	in.release(particles, timeSeconds, dtSeconds)

	useGrid := in.cfg.UseGridData && in.anyGridPresent()

	var repW float64
	if useGrid {
		repW = gridRepresentativeWindSpeed
	} else {
		repW = in.cfg.Scalar.WindSpeed * (1 + 0.1*math.Sin(timeSeconds*0.0002))
	}
	timeHours := timeSeconds / 3600
	weather := computeWeathering(timeHours, in.cfg.Scalar.WaterTemp, repW, in.cfg.Oil)

	// Scalar totals are needed in grid mode too, as the fallback for
	// particles that no wind or current grid covers.
	sTotalU, sTotalV, sD := in.scalarDrift(timeSeconds)
	gridTime := timeHours + in.cfg.GridTimeOffset

	for i := range particles {
		p := &particles[i]
		if !p.Active {
			continue
		}
		in.stepParticle(p, dtSeconds, useGrid, gridTime, weather, sTotalU, sTotalV, sD)
	}

	return timeSeconds + dtSeconds
}

// release implements the continuous-mode release schedule.
func (in *Integrator) release(particles []Particle, timeSeconds, dtSeconds float64) {
	if in.cfg.Mode != Continuous {
		return
	}
	n := len(particles)
	if in.particlesReleased >= n {
		return
	}
	durSeconds := in.cfg.SpillDuration * 3600
	if timeSeconds >= durSeconds {
		return
	}
	target := int(math.Floor((timeSeconds + dtSeconds) / durSeconds * float64(n)))
	if target > n {
		target = n
	}
	for idx := in.particlesReleased; idx < target; idx++ {
		lat, lon := diskSample(in.rng, in.cfg.SpillLat, in.cfg.SpillLon, 100)
		particles[idx].Pos.Y = lat
		particles[idx].Pos.X = lon
		particles[idx].Age = 0
		particles[idx].Active = true
	}
	in.particlesReleased = target
}

func (in *Integrator) anyGridPresent() bool {
	return in.grids.Wind != nil || in.grids.Current != nil
}

// scalarDrift computes the scalar-field wind drift and current
// composition used when no grid covers a particle.
func (in *Integrator) scalarDrift(timeSeconds float64) (totalU, totalV, D float64) {
	s := in.cfg.Scalar
	ws := s.WindSpeed * (1 + 0.1*math.Sin(timeSeconds*0.0002))
	wd := s.WindDir + 5*math.Sin(timeSeconds*0.0003)
	cs := s.CurrentSpeed * (1 + 0.05*math.Sin(timeSeconds*0.0005))
	cd := s.CurrentDir + 3*math.Cos(timeSeconds*0.0004)

	thetaW := (wd + 180) * math.Pi / 180
	driftU := ws * 0.03 * math.Sin(thetaW+15*math.Pi/180)
	driftV := ws * 0.03 * math.Cos(thetaW+15*math.Pi/180)

	uc := cs * math.Sin(cd*math.Pi/180)
	vc := cs * math.Cos(cd*math.Pi/180)

	totalU = driftU + uc
	totalV = driftV + vc
	D = 1.0 + 0.5*ws
	return
}

// gridDrift computes the grid-mode drift/current composition, falling
// back to the scalar-mode totals when neither wind nor current grid
// covers the particle's current position.
func (in *Integrator) gridDrift(p *Particle, gridTime, fallbackU, fallbackV, fallbackD float64) (totalU, totalV, D float64) {
	haveWind := in.grids.Wind != nil && in.grids.Wind.Contains(p.Pos.Y, p.Pos.X)
	haveCurrent := in.grids.Current != nil && in.grids.Current.Contains(p.Pos.Y, p.Pos.X)
	if !haveWind && !haveCurrent {
		return fallbackU, fallbackV, fallbackD
	}

	var u10, v10, uo, vo float64
	if haveWind {
		u10 = in.grids.Wind.Sample("u10", p.Pos.Y, p.Pos.X, gridTime)
		v10 = in.grids.Wind.Sample("v10", p.Pos.Y, p.Pos.X, gridTime)
	}
	if haveCurrent {
		uo = in.grids.Current.Sample("uo", p.Pos.Y, p.Pos.X, gridTime)
		vo = in.grids.Current.Sample("vo", p.Pos.Y, p.Pos.X, gridTime)
	}

	wp := math.Hypot(u10, v10)
	theta := math.Atan2(u10, v10) // atan2(east, north): bearing "to", not atan2(y, x)

	driftU := wp * 0.03 * math.Sin(theta+15*math.Pi/180)
	driftV := wp * 0.03 * math.Cos(theta+15*math.Pi/180)

	totalU = driftU + uo
	totalV = driftV + vo
	D = 1 + 0.5*wp
	return
}

// stepParticle applies one integrator step to a single active
// particle.
func (in *Integrator) stepParticle(p *Particle, dtSeconds float64, useGrid bool, gridTime float64, weather Weathering, sTotalU, sTotalV, sD float64) {
	P := in.cfg.Oil

	p.Age += dtSeconds

	p.Evaporated = math.Min(weather.Evaporated, P.VolatileFrac)
	p.Dispersed = math.Min(weather.Dispersed, 0.3)
	p.EmulsionWater = weather.EmulsionWater
	p.Viscosity = P.Viscosity * ViscosityMultiplier(p.Evaporated, p.EmulsionWater)

	remain := 1 - p.Evaporated - p.Dispersed
	if remain < 0.05 {
		p.Active = false
		return
	}
	p.Mass = (in.cfg.OilVolumeTons * 1000 / float64(in.cfg.ParticleCount)) * remain

	if p.Age > 0 {
		p.Thickness = 0.01 * math.Pow(p.Age/3600, -1.0/3.0)
	}

	totalU, totalV, D := sTotalU, sTotalV, sD
	if useGrid {
		totalU, totalV, D = in.gridDrift(p, gridTime, sTotalU, sTotalV, sD)
	}

	xiU := standardNormal(in.rng)
	xiV := standardNormal(in.rng)
	ru := xiU * math.Sqrt(2*D*dtSeconds)
	rv := xiV * math.Sqrt(2*D*dtSeconds)

	du := totalU*dtSeconds + ru
	dv := totalV*dtSeconds + rv

	dLat := (dv / earthRadiusM) * 180 / math.Pi
	dLon := (du / (earthRadiusM * math.Cos(clampLat(p.Pos.Y)*math.Pi/180))) * 180 / math.Pi

	p.Pos.Y += dLat
	p.Pos.X += dLon

	if in.grids.LandMask != nil && in.grids.LandMask.Contains(p.Pos.Y, p.Pos.X) {
		lsm := in.grids.LandMask.Sample("lsm", p.Pos.Y, p.Pos.X, 0)
		if lsm > 0.5 {
			p.Pos.Y -= dLat
			p.Pos.X -= dLon
			p.Active = false
			p.Beached = true
		}
	}
}

// clampLat keeps the cos(lat) denominator away from zero near the poles.
func clampLat(lat float64) float64 {
	const maxLat = 89.999
	if lat > maxLat {
		return maxLat
	}
	if lat < -maxLat {
		return -maxLat
	}
	return lat
}
