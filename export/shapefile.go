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

// Package export writes terminal particle state and run statistics to
// formats a spill-response GIS consumer or stakeholder report expects:
// a point shapefile and a summary workbook.
package export

import (
	"fmt"

	shp "github.com/jonas-p/go-shp"

	oilspill "github.com/spatialmodel/oilspillsim"
)

// Shapefile writes the final particle population as a point
// shapefile, one point per particle, with STATUS, MASS_KG, and AGE_HR
// attribute columns.
func Shapefile(path string, particles []oilspill.Particle) error {
	writer, err := shp.Create(path, shp.POINT)
	if err != nil {
		return fmt.Errorf("export: creating shapefile %q: %w", path, err)
	}
	defer writer.Close()

	fields := []shp.Field{
		shp.StringField("STATUS", 10),
		shp.FloatField("MASS_KG", 16, 4),
		shp.FloatField("AGE_HR", 16, 4),
	}
	writer.SetFields(fields)

	for i, p := range particles {
		writer.Write(&shp.Point{X: p.Pos.X, Y: p.Pos.Y})
		writer.WriteAttribute(i, 0, status(p))
		writer.WriteAttribute(i, 1, p.Mass)
		writer.WriteAttribute(i, 2, p.Age/3600)
	}
	return nil
}

func status(p oilspill.Particle) string {
	switch {
	case p.Beached:
		return "beached"
	case p.Active:
		return "active"
	default:
		return "deactivated"
	}
}
