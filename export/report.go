/*
Copyright © 2013 the InMAP authors.
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

package export

import (
	"fmt"

	"github.com/tealeg/xlsx"

	oilspill "github.com/spatialmodel/oilspillsim"
)

// Report writes a two-sheet workbook: a "Trajectory" sheet with the
// centroid path sampled hourly, and a "Summary" sheet with the final
// statistics snapshot, for a response-agency stakeholder audience.
func Report(path string, trajectory []oilspill.TrajectoryPoint, stats oilspill.Statistics) error {
	file := xlsx.NewFile()

	traj, err := file.AddSheet("Trajectory")
	if err != nil {
		return fmt.Errorf("export: adding Trajectory sheet: %w", err)
	}
	header := traj.AddRow()
	for _, h := range []string{"Time (hr)", "Centroid Lat", "Centroid Lon"} {
		header.AddCell().SetString(h)
	}
	for _, pt := range trajectory {
		row := traj.AddRow()
		row.AddCell().SetFloat(pt.TimeSeconds / 3600)
		row.AddCell().SetFloat(pt.Lat)
		row.AddCell().SetFloat(pt.Lon)
	}

	summary, err := file.AddSheet("Summary")
	if err != nil {
		return fmt.Errorf("export: adding Summary sheet: %w", err)
	}
	rows := []struct {
		label string
		value float64
	}{
		{"Area (km^2)", stats.AreaKM2},
		{"Max drift (km)", stats.MaxDriftKM},
		{"Evaporated (%)", stats.EvaporatedPct},
		{"Dispersed (%)", stats.DispersedPct},
		{"Emulsion water (%)", stats.EmulsionPct},
		{"Remaining (%)", stats.RemainingPct},
		{"Viscosity (mPa.s)", stats.Viscosity},
		{"Beached count", float64(stats.Beached)},
	}
	for _, r := range rows {
		row := summary.AddRow()
		row.AddCell().SetString(r.label)
		row.AddCell().SetFloat(r.value)
	}

	if err := file.Save(path); err != nil {
		return fmt.Errorf("export: saving workbook %q: %w", path, err)
	}
	return nil
}
