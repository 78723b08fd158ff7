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

package spillutil

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Cfg holds configuration information for the oil-spill CLI: a viper
// instance for dotted-path, file/flag/env-backed values, plus the
// cobra command tree built around it.
type Cfg struct {
	*viper.Viper

	Root, VersionCmd, RunCmd, ServeCmd, GridCmd *cobra.Command
}

var options []struct {
	name, usage, shorthand string
	defaultVal              interface{}
	flagsets                []*pflag.FlagSet
}

// InitializeConfig builds the command tree and registers every option
// in the table below into each subcommand's own flag set, exactly as
// the upstream model binds one shared options table across several
// cobra subcommands.
func InitializeConfig() *Cfg {
	cfg := &Cfg{Viper: viper.New()}

	cfg.Root = &cobra.Command{
		Use:   "oilspillsim",
		Short: "An oil-spill drift and weathering simulator.",
		Long: `oilspillsim tracks a population of tagged oil parcels forward in time
under wind-driven drift, current advection, turbulent diffusion, and
weathering, starting from a point release.

Configuration can be set via a config file (--config), command-line
flags, or OILSPILL_* environment variables. Refer to
https://github.com/spf13/viper for file-format and precedence details.`,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return setConfig(cfg)
		},
	}

	cfg.VersionCmd = &cobra.Command{
		Use:               "version",
		Short:             "Print the build version.",
		DisableAutoGenTag: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("oilspillsim v%s\n", Version)
		},
	}

	cfg.RunCmd = &cobra.Command{
		Use:               "run",
		Short:             "Run a simulation to completion and print a summary.",
		DisableAutoGenTag: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setConfig(cfg); err != nil {
				return err
			}
			outputFile, err := checkOutputFile(cfg.GetString("Output.File"))
			if err != nil {
				return err
			}
			cfg.Set("Output.File", outputFile)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cfg, OutChan())
		},
	}

	cfg.ServeCmd = &cobra.Command{
		Use:               "serve",
		Short:             "Run a simulation under a tick loop, streaming updates over a websocket.",
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Serve(cfg)
		},
	}

	cfg.GridCmd = &cobra.Command{
		Use:               "grid",
		Short:             "Validate a grid resource document without running a simulation.",
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return CheckGrid(cfg, OutChan())
		},
	}

	options = []struct {
		name, usage, shorthand string
		defaultVal              interface{}
		flagsets                []*pflag.FlagSet
	}{
		{"config", "path to a configuration file", "c", "", []*pflag.FlagSet{cfg.Root.PersistentFlags()}},

		{"Spill.Lat", "spill latitude, degrees", "", 0.0, cmdFlags(cfg)},
		{"Spill.Lng", "spill longitude, degrees", "", 0.0, cmdFlags(cfg)},
		{"Spill.OilVolume", "spilled oil volume, tonnes", "", 1000.0, cmdFlags(cfg)},
		{"Spill.OilType", "oil kind: crude, fuel, diesel, or gasoline", "", "crude", cmdFlags(cfg)},
		{"Spill.Mode", "release mode: instant or continuous", "", "instant", cmdFlags(cfg)},
		{"Spill.Duration", "release duration in hours (continuous mode only)", "", 0.0, cmdFlags(cfg)},

		{"Particles.Count", "number of tracked parcels", "n", 1000, cmdFlags(cfg)},
		{"Particles.TimeStep", "integration step size, seconds", "", 600.0, cmdFlags(cfg)},
		{"Particles.MaxTime", "simulation horizon, seconds", "", 172800.0, cmdFlags(cfg)},
		{"Particles.PlaybackSpeed", "integration steps per tick", "", 1, cmdFlags(cfg)},

		{"Scalar.WindSpeed", "fallback wind speed, m/s", "", 5.0, cmdFlags(cfg)},
		{"Scalar.WindDir", "fallback wind direction, degrees from", "", 270.0, cmdFlags(cfg)},
		{"Scalar.CurrentSpeed", "fallback current speed, m/s", "", 0.2, cmdFlags(cfg)},
		{"Scalar.CurrentDir", "fallback current direction, degrees to", "", 90.0, cmdFlags(cfg)},
		{"Scalar.WaterTemp", "water temperature, degrees C", "", 15.0, cmdFlags(cfg)},

		{"Grid.UseGridData", "prefer loaded grid resources over scalar fallback fields", "", false, cmdFlags(cfg)},
		{"Grid.TimeOffset", "hours added to time/3600 when sampling grids", "", 0.0, cmdFlags(cfg)},
		{"Grid.Wind", "path or URL to a wind grid resource document", "", "", cmdFlags(cfg)},
		{"Grid.Current", "path or URL to a current grid resource document", "", "", cmdFlags(cfg)},
		{"Grid.Temperature", "path or URL to a temperature grid resource document", "", "", cmdFlags(cfg)},
		{"Grid.LandMask", "path or URL to a land-mask grid resource document", "", "", cmdFlags(cfg)},

		{"Output.File", "base path for the shapefile, workbook, and PNG exports (- to skip exports)", "o", "-", []*pflag.FlagSet{cfg.RunCmd.Flags()}},
		{"Output.ListenAddr", "address to serve the websocket event stream on", "", "localhost:8734", []*pflag.FlagSet{cfg.ServeCmd.Flags()}},
		{"Output.OpenBrowser", "open a browser to the event stream on serve startup", "", false, []*pflag.FlagSet{cfg.ServeCmd.Flags()}},
	}

	cfg.SetEnvPrefix("OILSPILL")
	cfg.AutomaticEnv()
	registerFlags(cfg)

	cfg.Root.AddCommand(cfg.VersionCmd, cfg.RunCmd, cfg.ServeCmd, cfg.GridCmd)
	return cfg
}

// cmdFlags lists the subcommands whose flag sets should expose a given
// option — every option shared by run/serve/grid.
func cmdFlags(cfg *Cfg) []*pflag.FlagSet {
	return []*pflag.FlagSet{cfg.RunCmd.Flags(), cfg.ServeCmd.Flags(), cfg.GridCmd.Flags()}
}

// registerFlags declares each table entry's flag on every flag set it
// names, binding the first occurrence into viper and aliasing the
// rest to it so every subcommand shares one value.
func registerFlags(cfg *Cfg) {
	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 {
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, v, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, v, option.usage)
				}
			case bool:
				set.Bool(option.name, v, option.usage)
			case int:
				if option.shorthand == "" {
					set.Int(option.name, v, option.usage)
				} else {
					set.IntP(option.name, option.shorthand, v, option.usage)
				}
			case float64:
				set.Float64(option.name, v, option.usage)
			case map[string]string:
				b := bytes.NewBuffer(nil)
				json.NewEncoder(b).Encode(v)
				set.String(option.name, b.String(), option.usage)
			default:
				panic(fmt.Errorf("spillutil: invalid option default type: %T", option.defaultVal))
			}
			cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

// setConfig reads a configuration file into cfg, if one was named.
func setConfig(cfg *Cfg) error {
	if cfgpath := cfg.GetString("config"); cfgpath != "" {
		cfg.SetConfigFile(cfgpath)
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("spillutil: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// OutChan returns a channel that prints every message sent to it on
// standard output, used by long-running commands to report progress
// without blocking on the terminal.
func OutChan() chan string {
	ch := make(chan string)
	go func() {
		for msg := range ch {
			fmt.Print(msg)
		}
	}()
	return ch
}
