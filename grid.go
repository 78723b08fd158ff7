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

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// FieldGrid stores one or more gridded scalar variables sharing a
// common latitude/longitude axis and an optional time axis, and
// returns bilinearly (and linearly in time) interpolated samples.
//
// Variable storage is backed by sparse.DenseArray, one per named
// variable, shaped [nT, nLat, nLon] for time-varying fields or
// [nLat, nLon] for static fields.
type FieldGrid struct {
	Lat  []float64 // ascending, degrees
	Lon  []float64 // ascending, degrees
	Time []float64 // ascending, hours from the grid epoch; nil if static

	bounds *geom.Bounds

	dLat, dLon float64

	vars map[string]*sparse.DenseArray
}

// NewFieldGrid builds a FieldGrid from raw axes. lat and lon must be
// strictly ascending and have at least two elements each. time may be
// nil for a static grid.
func NewFieldGrid(lat, lon, time []float64) (*FieldGrid, error) {
	if len(lat) < 2 || len(lon) < 2 {
		return nil, fmt.Errorf("oilspill: grid axes must have at least 2 points, got %d lat, %d lon", len(lat), len(lon))
	}
	if !ascending(lat) {
		return nil, fmt.Errorf("oilspill: grid latitude axis is not strictly ascending")
	}
	if !ascending(lon) {
		return nil, fmt.Errorf("oilspill: grid longitude axis is not strictly ascending")
	}
	if time != nil && !ascending(time) {
		return nil, fmt.Errorf("oilspill: grid time axis is not strictly ascending")
	}
	g := &FieldGrid{
		Lat:  lat,
		Lon:  lon,
		Time: time,
		bounds: &geom.Bounds{
			Min: geom.Point{X: lon[0], Y: lat[0]},
			Max: geom.Point{X: lon[len(lon)-1], Y: lat[len(lat)-1]},
		},
		dLat: (lat[len(lat)-1] - lat[0]) / float64(len(lat)-1),
		dLon: (lon[len(lon)-1] - lon[0]) / float64(len(lon)-1),
		vars: make(map[string]*sparse.DenseArray),
	}
	return g, nil
}

func ascending(v []float64) bool {
	for i := 1; i < len(v); i++ {
		if v[i] <= v[i-1] {
			return false
		}
	}
	return true
}

// AddVariable registers a row-major, NaN-free variable array with the
// grid. data must have length nT*nLat*nLon (time-varying) or
// nLat*nLon (static), matching whether the grid carries a time axis.
func (g *FieldGrid) AddVariable(name string, data []float64) error {
	nLat, nLon := len(g.Lat), len(g.Lon)
	var want int
	var arr *sparse.DenseArray
	if g.Time != nil {
		want = len(g.Time) * nLat * nLon
		arr = sparse.ZerosDense(len(g.Time), nLat, nLon)
	} else {
		want = nLat * nLon
		arr = sparse.ZerosDense(nLat, nLon)
	}
	if len(data) != want {
		return fmt.Errorf("oilspill: variable %q has %d values, want %d", name, len(data), want)
	}
	copy(arr.Elements, data)
	g.vars[name] = arr
	return nil
}

// Contains reports whether (lat, lon) falls within the grid's bounding
// box.
func (g *FieldGrid) Contains(lat, lon float64) bool {
	pt := geom.Point{X: lon, Y: lat}
	return pt.X >= g.bounds.Min.X && pt.X <= g.bounds.Max.X &&
		pt.Y >= g.bounds.Min.Y && pt.Y <= g.bounds.Max.Y
}

// Sample returns the interpolated value of var at (lat, lon, timeHours).
// Missing variables return 0. Out-of-axis positions and times clamp to
// the nearest edge rather than erroring.
func (g *FieldGrid) Sample(name string, lat, lon, timeHours float64) float64 {
	arr, ok := g.vars[name]
	if !ok {
		return 0
	}
	nLat, nLon := len(g.Lat), len(g.Lon)

	fi := (lat - g.Lat[0]) / g.dLat
	fj := (lon - g.Lon[0]) / g.dLon
	fi = clamp(fi, 0, float64(nLat-1))
	fj = clamp(fj, 0, float64(nLon-1))

	i0 := int(math.Floor(fi))
	if i0 > nLat-2 {
		i0 = nLat - 2
	}
	i1 := i0 + 1
	j0 := int(math.Floor(fj))
	if j0 > nLon-2 {
		j0 = nLon - 2
	}
	j1 := j0 + 1
	di := fi - float64(i0)
	dj := fj - float64(j0)

	if g.Time == nil {
		return bilinear(arr.Get(i0, j0), arr.Get(i0, j1), arr.Get(i1, j0), arr.Get(i1, j1), di, dj)
	}

	nT := len(g.Time)
	t0 := 0
	dtFrac := 0.0
	switch {
	case timeHours <= g.Time[0]:
		t0 = 0
		dtFrac = 0
	case timeHours >= g.Time[nT-1]:
		t0 = nT - 2
		dtFrac = 1
	default:
		for k := 0; k < nT-1; k++ {
			if timeHours >= g.Time[k] && timeHours <= g.Time[k+1] {
				t0 = k
				dtFrac = (timeHours - g.Time[k]) / (g.Time[k+1] - g.Time[k])
				break
			}
		}
	}
	t1 := t0 + 1
	v0 := bilinear(arr.Get(t0, i0, j0), arr.Get(t0, i0, j1), arr.Get(t0, i1, j0), arr.Get(t0, i1, j1), di, dj)
	v1 := bilinear(arr.Get(t1, i0, j0), arr.Get(t1, i0, j1), arr.Get(t1, i1, j0), arr.Get(t1, i1, j1), di, dj)
	return (1-dtFrac)*v0 + dtFrac*v1
}

// bilinear combines the 4 corner values (i0j0, i0j1, i1j0, i1j1) with
// weights derived from the fractional offsets di (along i) and dj
// (along j).
func bilinear(v00, v01, v10, v11, di, dj float64) float64 {
	return (1-di)*(1-dj)*v00 + (1-di)*dj*v01 + di*(1-dj)*v10 + di*dj*v11
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
