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

// TrajectoryPoint is one centroid sample recorded on an hour boundary,
// paired with the population's mass-balance fractions at that moment
// so a run's weathering budget can be plotted alongside its drift path.
type TrajectoryPoint struct {
	TimeSeconds float64
	Lat, Lon    float64

	EvaporatedPct, DispersedPct, EmulsionPct float64
}

// UpdateFunc is invoked once per driver tick with the current particle
// snapshot, statistics, and simulation time in seconds. Implementations
// must not retain particles beyond the call, since the driver reuses
// the backing array on the next tick.
type UpdateFunc func(particles []Particle, stats Statistics, timeSeconds float64)

// CompleteFunc is invoked exactly once when the simulation reaches
// max_time.
type CompleteFunc func()
