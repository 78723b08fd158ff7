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

package spillutil

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"

	oilspill "github.com/spatialmodel/oilspillsim"
	"github.com/spatialmodel/oilspillsim/export"
	"github.com/spatialmodel/oilspillsim/server"
	"github.com/spatialmodel/oilspillsim/viz"
)

// LoadGrids loads the four named grid resources from cfg, skipping any
// resource whose path is empty and logging and skipping (rather than
// failing the run) any that fails to load or parse, consistent with the
// engine's partial-grid tolerance.
func LoadGrids(ctx context.Context, cfg *Cfg, log *logrus.Entry) oilspill.Grids {
	paths := GridPaths(cfg)
	var g oilspill.Grids
	g.Wind = loadOne(ctx, paths.Wind, false, log)
	g.Current = loadOne(ctx, paths.Current, false, log)
	g.Temperature = loadOne(ctx, paths.Temperature, false, log)
	g.LandMask = loadOne(ctx, paths.LandMask, true, log)
	return g
}

func loadOne(ctx context.Context, location string, isLandMask bool, log *logrus.Entry) *oilspill.FieldGrid {
	if location == "" {
		return nil
	}
	grid, err := oilspill.LoadGridResource(ctx, location, isLandMask)
	if err != nil {
		log.WithError(err).WithField("resource", location).Warn("spillutil: skipping unparseable grid resource")
		return nil
	}
	return grid
}

// Run builds a driver from cfg, loads any configured grid resources,
// and ticks the simulation to completion, printing a one-line summary
// to outChan after every tick and writing the final shapefile/workbook
// exports named by Output.File.
func Run(cfg *Cfg, outChan chan string) error {
	log := logrus.NewEntry(logrus.StandardLogger())

	driverCfg, err := BuildDriverConfig(cfg)
	if err != nil {
		return err
	}
	grids := LoadGrids(context.Background(), cfg, log)

	driver, err := oilspill.NewSimulationDriver(driverCfg, grids, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return err
	}

	driver.Start()
	for driver.State() != oilspill.Completed {
		driver.Tick()
		stats := driver.Stats()
		outChan <- fmt.Sprintf("t=%.0fs remaining=%.1f%% beached=%d area=%.1fkm2\n",
			driver.Time(), stats.RemainingPct, stats.Beached, stats.AreaKM2)
	}

	return writeExports(cfg, driver)
}

func writeExports(cfg *Cfg, driver *oilspill.SimulationDriver) error {
	out := cfg.GetString("Output.File")
	if out == "" || out == "-" {
		return nil
	}
	base := strings.TrimSuffix(out, filepath.Ext(out))
	if err := export.Shapefile(base+".shp", driver.Particles()); err != nil {
		return err
	}
	if err := export.Report(base+".xlsx", driver.Trajectory(), driver.Stats()); err != nil {
		return err
	}
	return writeTrajectoryPlots(base, driver.Trajectory())
}

// writeTrajectoryPlots renders the centroid-drift and weathering-budget
// PNGs alongside the shapefile/workbook exports, giving the gonum/plot
// stack a real product-level call site rather than a diagnostic nobody
// drives.
func writeTrajectoryPlots(base string, trajectory []oilspill.TrajectoryPoint) error {
	f, err := os.Create(base + ".png")
	if err != nil {
		return fmt.Errorf("spillutil: creating trajectory plot: %w", err)
	}
	defer f.Close()
	if err := viz.Trajectory(f, trajectory); err != nil {
		return err
	}

	wf, err := os.Create(base + "_weathering.png")
	if err != nil {
		return fmt.Errorf("spillutil: creating weathering plot: %w", err)
	}
	defer wf.Close()
	return viz.WeatheringSeries(wf, trajectory)
}

// Serve builds a driver from cfg, wires a websocket hub as its
// on_update/on_complete observer, and serves the event stream on
// Output.ListenAddr until the process is killed.
func Serve(cfg *Cfg) error {
	log := logrus.NewEntry(logrus.StandardLogger())

	driverCfg, err := BuildDriverConfig(cfg)
	if err != nil {
		return err
	}
	grids := LoadGrids(context.Background(), cfg, log)

	driver, err := oilspill.NewSimulationDriver(driverCfg, grids, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return err
	}

	hub := server.NewHub(log)
	driver.OnUpdate = hub.BroadcastUpdate
	driver.OnComplete = hub.BroadcastComplete

	addr := cfg.GetString("Output.ListenAddr")
	go func() {
		for driver.State() != oilspill.Completed {
			driver.Start()
			driver.Tick()
			time.Sleep(100 * time.Millisecond)
		}
	}()

	http.HandleFunc("/events", hub.Handler)
	log.WithField("addr", addr).Info("spillutil: serving tick-event websocket")
	if cfg.GetBool("Output.OpenBrowser") {
		open.Run("http://" + addr + "/events")
	}
	return http.ListenAndServe(addr, nil)
}

// CheckGrid loads and validates every configured grid resource without
// running a simulation, printing a pass/fail line per resource.
func CheckGrid(cfg *Cfg, outChan chan string) error {
	log := logrus.NewEntry(logrus.StandardLogger())
	paths := GridPaths(cfg)
	named := []struct {
		name, path string
		landMask   bool
	}{
		{"wind", paths.Wind, false},
		{"current", paths.Current, false},
		{"temperature", paths.Temperature, false},
		{"land_mask", paths.LandMask, true},
	}
	var failed bool
	for _, n := range named {
		if n.path == "" {
			outChan <- fmt.Sprintf("%-12s (not configured)\n", n.name)
			continue
		}
		if _, err := oilspill.LoadGridResource(context.Background(), n.path, n.landMask); err != nil {
			log.WithError(err).WithField("resource", n.path).Error("spillutil: grid resource failed validation")
			outChan <- fmt.Sprintf("%-12s FAIL: %v\n", n.name, err)
			failed = true
			continue
		}
		outChan <- fmt.Sprintf("%-12s OK\n", n.name)
	}
	if failed {
		return fmt.Errorf("spillutil: one or more grid resources failed validation")
	}
	return nil
}
