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

import "fmt"

// OilKind identifies one of the catalogued oil types.
type OilKind string

// Catalogued oil kinds.
const (
	Crude    OilKind = "crude"
	Fuel     OilKind = "fuel"
	Diesel   OilKind = "diesel"
	Gasoline OilKind = "gasoline"
)

// OilProperties holds the static physical properties of an oil kind
// used by the Weathering and Integrator calculations.
type OilProperties struct {
	Density        float64 // kg/m3
	Viscosity      float64 // mPa.s
	API            float64 // API gravity
	EvapRate       float64 // evaporation rate coefficient
	PourPoint      float64 // degrees C
	VolatileFrac   float64 // fraction, 0-1
	Dispersibility float64 // fraction, 0-1
}

// oilCatalog is the process-wide immutable oil properties table. Values
// are mandatory and must not be rounded.
var oilCatalog = map[OilKind]OilProperties{
	Crude:    {Density: 860, Viscosity: 12, API: 33, EvapRate: 0.042, PourPoint: -15, VolatileFrac: 0.25, Dispersibility: 0.5},
	Fuel:     {Density: 950, Viscosity: 180, API: 17, EvapRate: 0.015, PourPoint: 10, VolatileFrac: 0.08, Dispersibility: 0.2},
	Diesel:   {Density: 840, Viscosity: 4, API: 37, EvapRate: 0.065, PourPoint: -30, VolatileFrac: 0.45, Dispersibility: 0.7},
	Gasoline: {Density: 740, Viscosity: 0.6, API: 60, EvapRate: 0.12, PourPoint: -60, VolatileFrac: 0.80, Dispersibility: 0.9},
}

// LookupOil returns the properties of the given oil kind, or an error if
// the kind is not in the catalog.
func LookupOil(kind OilKind) (OilProperties, error) {
	p, ok := oilCatalog[kind]
	if !ok {
		return OilProperties{}, fmt.Errorf("oilspill: unknown oil kind %q", kind)
	}
	return p, nil
}
