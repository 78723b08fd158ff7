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

	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Statistics is a population snapshot computed from the particle array
// after a completed integrator step.
type Statistics struct {
	Centroid      geom.Point // Y=lat, X=lon, degrees
	AreaKM2       float64
	MaxDriftKM    float64
	EvaporatedPct float64
	DispersedPct  float64
	EmulsionPct   float64
	RemainingPct  float64
	Viscosity     float64
	Beached       int
}

// NewInitialStatistics returns the snapshot a SimulationDriver presents
// immediately after initialize, before any step has run.
func NewInitialStatistics(spillLat, spillLon float64) Statistics {
	return Statistics{
		Centroid:     geom.Point{X: spillLon, Y: spillLat},
		RemainingPct: 100,
	}
}

// Compute scans particles and returns an updated snapshot, carrying
// forward centroid/area/max-drift from prev when there are no active
// particles.
func Compute(particles []Particle, prev Statistics, spillLat, spillLon float64) Statistics {
	beached := 0
	var activeIdx []int
	for i := range particles {
		if particles[i].Beached {
			beached++
		}
		if particles[i].Active {
			activeIdx = append(activeIdx, i)
		}
	}

	if len(activeIdx) == 0 {
		out := prev
		out.Beached = beached
		return out
	}

	lats := make([]float64, len(activeIdx))
	lons := make([]float64, len(activeIdx))
	for k, i := range activeIdx {
		lats[k] = particles[i].Pos.Y
		lons[k] = particles[i].Pos.X
	}

	meanLat, varLat := stat.PopMeanVariance(lats, nil)
	meanLon, varLon := stat.PopMeanVariance(lons, nil)
	sigmaLat := math.Sqrt(varLat)
	sigmaLon := math.Sqrt(varLon)

	kmPerDegLat := 111.32
	kmPerDegLon := 111.32 * math.Cos(meanLat*math.Pi/180)
	sigmaLatKM := sigmaLat * kmPerDegLat
	sigmaLonKM := sigmaLon * kmPerDegLon
	area := math.Pi * (2 * sigmaLatKM) * (2 * sigmaLonKM)

	drifts := make([]float64, len(activeIdx))
	for k, i := range activeIdx {
		drifts[k] = haversineKM(spillLat, spillLon, particles[i].Pos.Y, particles[i].Pos.X)
	}
	maxDrift := floats.Max(drifts)

	first := particles[activeIdx[0]]
	return Statistics{
		Centroid:      geom.Point{X: meanLon, Y: meanLat},
		AreaKM2:       area,
		MaxDriftKM:    maxDrift,
		EvaporatedPct: first.Evaporated * 100,
		DispersedPct:  first.Dispersed * 100,
		EmulsionPct:   first.EmulsionWater * 100,
		RemainingPct:  (1 - first.Evaporated - first.Dispersed) * 100,
		Viscosity:     first.Viscosity,
		Beached:       beached,
	}
}

// haversineKM returns the great-circle distance in kilometers between
// two lat/lon points in degrees.
func haversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return (earthRadiusM * c) / 1000
}
