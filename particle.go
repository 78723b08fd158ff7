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

import "github.com/ctessum/geom"

// Particle is a single tagged oil parcel tracked by the Integrator.
type Particle struct {
	Pos geom.Point // X=longitude, Y=latitude, degrees

	Mass      float64 // kg, current residual mass
	Age       float64 // seconds since release
	Thickness float64 // meters, Fay film thickness

	Evaporated    float64 // fraction, 0-1
	Dispersed     float64 // fraction, 0-1
	EmulsionWater float64 // fraction, 0-0.7

	Viscosity float64 // mPa.s

	Active  bool // in water, participates in advection
	Beached bool // grounded; renders but is not advected
}

// Lat returns the particle's latitude in degrees.
func (p *Particle) Lat() float64 { return p.Pos.Y }

// Lon returns the particle's longitude in degrees.
func (p *Particle) Lon() float64 { return p.Pos.X }

// Deactivated reports whether the particle has been taken out of the
// active population by residual-mass depletion rather than grounding.
// A particle in this state is counted in neither the active nor the
// beached population.
func (p *Particle) Deactivated() bool {
	return !p.Active && !p.Beached
}
