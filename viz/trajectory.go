/*
Copyright © 2017 the InMAP authors.
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

// Package viz renders PNG plots of a simulation run using gonum/plot,
// the same plotting stack the upstream model uses for its own
// vertical-profile and map imagery.
package viz

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	oilspill "github.com/spatialmodel/oilspillsim"
)

// Trajectory renders the centroid drift path as a PNG line plot and
// writes it to w.
func Trajectory(w io.Writer, points []oilspill.TrajectoryPoint) error {
	p, err := plot.New()
	if err != nil {
		return fmt.Errorf("viz: creating plot: %w", err)
	}
	p.Title.Text = "Oil slick centroid trajectory"
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"

	xy := make(plotter.XYs, len(points))
	for i, pt := range points {
		xy[i].X = pt.Lon
		xy[i].Y = pt.Lat
	}
	if err := plotutil.AddLinePoints(p, "centroid", xy); err != nil {
		return fmt.Errorf("viz: adding trajectory line: %w", err)
	}

	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("viz: rendering png: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// WeatheringSeries renders the evaporated/dispersed/emulsion-water
// fractions recorded at each trajectory hour as a PNG line plot, used
// to give a stakeholder report a budget-over-time view.
func WeatheringSeries(w io.Writer, points []oilspill.TrajectoryPoint) error {
	p, err := plot.New()
	if err != nil {
		return fmt.Errorf("viz: creating plot: %w", err)
	}
	p.Title.Text = "Mass-balance fractions over time"
	p.X.Label.Text = "Hours since release"
	p.Y.Label.Text = "Percent of spilled volume"
	p.Y.Min = 0

	toXY := func(pick func(oilspill.TrajectoryPoint) float64) plotter.XYs {
		xy := make(plotter.XYs, len(points))
		for i, pt := range points {
			xy[i].X = pt.TimeSeconds / 3600
			xy[i].Y = pick(pt)
		}
		return xy
	}

	if err := plotutil.AddLinePoints(p,
		"evaporated", toXY(func(pt oilspill.TrajectoryPoint) float64 { return pt.EvaporatedPct }),
		"dispersed", toXY(func(pt oilspill.TrajectoryPoint) float64 { return pt.DispersedPct }),
		"emulsion water", toXY(func(pt oilspill.TrajectoryPoint) float64 { return pt.EmulsionPct }),
	); err != nil {
		return fmt.Errorf("viz: adding weathering series: %w", err)
	}

	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("viz: rendering png: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}
