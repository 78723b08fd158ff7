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

package spillutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	oilspill "github.com/spatialmodel/oilspillsim"
)

// BuildDriverConfig reads the bound configuration values out of cfg
// and assembles an oilspill.DriverConfig. It does not load grid
// resources; call LoadGrids separately, which reads the Grid.* paths
// from cfg.
func BuildDriverConfig(cfg *Cfg) (oilspill.DriverConfig, error) {
	mode, err := parseMode(cfg.GetString("Spill.Mode"))
	if err != nil {
		return oilspill.DriverConfig{}, err
	}

	dc := oilspill.DriverConfig{
		SpillLat:      cfg.GetFloat64("Spill.Lat"),
		SpillLon:      cfg.GetFloat64("Spill.Lng"),
		OilVolumeTons: cfg.GetFloat64("Spill.OilVolume"),
		OilKind:       oilspill.OilKind(cfg.GetString("Spill.OilType")),

		Mode:          mode,
		SpillDuration: cfg.GetFloat64("Spill.Duration"),

		ParticleCount: cfg.GetInt("Particles.Count"),
		TimeStep:      cfg.GetFloat64("Particles.TimeStep"),
		MaxTime:       cfg.GetFloat64("Particles.MaxTime"),
		PlaybackSpeed: cfg.GetInt("Particles.PlaybackSpeed"),

		UseGridData:    cfg.GetBool("Grid.UseGridData"),
		GridTimeOffset: cfg.GetFloat64("Grid.TimeOffset"),

		Scalar: oilspill.ScalarFields{
			WindSpeed:    cfg.GetFloat64("Scalar.WindSpeed"),
			WindDir:      cfg.GetFloat64("Scalar.WindDir"),
			CurrentSpeed: cfg.GetFloat64("Scalar.CurrentSpeed"),
			CurrentDir:   cfg.GetFloat64("Scalar.CurrentDir"),
			WaterTemp:    cfg.GetFloat64("Scalar.WaterTemp"),
		},
	}
	return dc, dc.Validate()
}

func parseMode(s string) (oilspill.ReleaseMode, error) {
	switch strings.ToLower(s) {
	case "", "instant":
		return oilspill.Instant, nil
	case "continuous":
		return oilspill.Continuous, nil
	default:
		return 0, fmt.Errorf("spillutil: unknown Spill.Mode %q, want instant or continuous", s)
	}
}

// GridResourcePaths are the configured locations of the four named
// grid resources. Any may be empty, meaning that resource is absent.
type GridResourcePaths struct {
	Wind, Current, Temperature, LandMask string
}

// GridPaths reads the Grid.* path options out of cfg.
func GridPaths(cfg *Cfg) GridResourcePaths {
	return GridResourcePaths{
		Wind:        cfg.GetString("Grid.Wind"),
		Current:     cfg.GetString("Grid.Current"),
		Temperature: cfg.GetString("Grid.Temperature"),
		LandMask:    cfg.GetString("Grid.LandMask"),
	}
}

// checkOutputFile fills in a default and verifies the output
// directory exists, mirroring the upstream model's own output-path
// validation.
func checkOutputFile(f string) (string, error) {
	if f == "" || f == "-" {
		return "-", nil
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("spillutil: the Output.File directory doesn't exist: %v", err)
	}
	return f, nil
}
