/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gotsunami/InputParameters"
	"github.com/notargets/gotsunami/setups"
	"github.com/notargets/gotsunami/simulator"
)

type Model2D struct {
	ICFile    string
	OutputDir string
	Processes int
	Workers   int
	NoIO      bool
	Timing    bool
	Profile   string
	Perf      bool
	Quiet     bool
}

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional shallow water solver over a decomposed grid",
	Long: `
Runs the two dimensional wave propagation solver. The grid is split over
--processes subdomains that exchange ghost cells every sweep, and each
subdomain writes <output>/<Title>_<rank>.nc.

gotsunami 2D -I input.yaml -n 4`,
	Run: func(cmd *cobra.Command, args []string) {
		m2d := &Model2D{
			ICFile:    viper.GetString("inputConditionsFile"),
			OutputDir: viper.GetString("output"),
			Processes: viper.GetInt("processes"),
			Workers:   viper.GetInt("workers"),
			NoIO:      viper.GetBool("noIO"),
			Timing:    viper.GetBool("timing"),
			Profile:   viper.GetString("profile"),
			Perf:      viper.GetBool("perf"),
			Quiet:     viper.GetBool("quiet"),
		}
		ip, err := processInput(m2d)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if err = Run2D(m2d, ip); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

const exampleFile = `
########################################
Title: "Tohoku"
NX: 200
NY: 100
XLen: 20000
YLen: 10000
EndTime: 600
Solver: fwave              # fwave or roe
FramesPerOutput: 25
CoarseFactor: 1
CheckPointEvery: 10        # frames, 0 disables checkpoints
Boundaries:
  Left: outflow            # outflow or reflecting
  Right: outflow
  Top: reflecting
  Bottom: reflecting
Setup:
  Type: TsunamiEvent2D     # DamBreak1D, DamBreak2D, ArtificialTsunami2D, TsunamiEvent2D or CheckPoint
  BathymetryFile: bathymetry.nc
  DisplacementFile: displacement.nc
########################################
`

func processInput(m2d *Model2D) (ip *InputParameters.InputParameters2D, err error) {
	if len(m2d.ICFile) == 0 {
		fmt.Printf("Example File:%s\n", exampleFile)
		return nil, fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
	}
	if m2d.Processes < 1 {
		return nil, fmt.Errorf("number of processes must be at least 1, have %d", m2d.Processes)
	}
	var data []byte
	if data, err = os.ReadFile(m2d.ICFile); err != nil {
		return nil, fmt.Errorf("reading input parameters: %w", err)
	}
	ip = &InputParameters.InputParameters2D{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", m2d.ICFile, err)
	}
	return
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- grid size\n\t- setup and boundary conditions")
	TwoDCmd.Flags().StringP("output", "o", "output", "directory for NetCDF output and checkpoints")
	TwoDCmd.Flags().IntP("processes", "n", 1, "number of processes the grid is split over")
	TwoDCmd.Flags().IntP("workers", "w", 1, "goroutines per process used by each sweep")
	TwoDCmd.Flags().Bool("noIO", false, "skip writing output frames")
	TwoDCmd.Flags().BoolP("timing", "t", false, "report wall time of setup, simulation and output")
	TwoDCmd.Flags().String("profile", "", "write a cpu or mem profile to the output directory")
	TwoDCmd.Flags().Bool("perf", false, "count CPU instructions of the run with hardware counters (linux)")
	TwoDCmd.Flags().BoolP("quiet", "q", false, "suppress the per frame progress table")
	for _, name := range []string{"inputConditionsFile", "output", "processes", "workers",
		"noIO", "timing", "profile", "perf", "quiet"} {
		if err := viper.BindPFlag(name, TwoDCmd.Flags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func startProfile(mode, dir string) interface{ Stop() } {
	var opt func(*profile.Profile)
	switch mode {
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfile
	default:
		panic(fmt.Errorf("unknown profile mode %s, use cpu or mem", mode))
	}
	return profile.Start(opt, profile.ProfilePath(dir), profile.NoShutdownHook)
}

func Run2D(m2d *Model2D, ip *InputParameters.InputParameters2D) (err error) {
	var (
		log = logrus.StandardLogger()
	)
	if !m2d.Quiet {
		ip.Print()
	}
	in, err := setups.New(ip)
	if err != nil {
		return
	}
	s := simulator.NewSimulator(ip, in)
	s.OutputDir = m2d.OutputDir
	s.IO = !m2d.NoIO
	s.Workers = m2d.Workers
	s.Progress = !m2d.Quiet
	s.Timing = m2d.Timing
	s.Log = log
	if m2d.Profile != "" {
		if err = os.MkdirAll(m2d.OutputDir, 0755); err != nil {
			return
		}
		defer startProfile(m2d.Profile, m2d.OutputDir).Stop()
	}
	run := func() error { return s.RunWorld(m2d.Processes) }
	if m2d.Perf {
		return runWithCounters(run, log)
	}
	return run()
}
