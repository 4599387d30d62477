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
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/gotsunami/analytic_dam_break"
	"github.com/notargets/gotsunami/patches/WavePropagation1D"
	"github.com/notargets/gotsunami/setups"
	"github.com/notargets/gotsunami/solvers"
	"github.com/notargets/gotsunami/utils"
)

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "One dimensional dam break",
	Long: `
Executes the one dimensional wave propagation solver on a dam break and
writes every output frame as CSV rows of time, x, height, momentum and
bathymetry.

gotsunami 1D -k 100 --hLeft 10 --hRight 8 -o dambreak.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		m1d := &Model1D{}
		m1d.K, _ = cmd.Flags().GetInt("k")
		m1d.XMax, _ = cmd.Flags().GetFloat64("xMax")
		m1d.FinalTime, _ = cmd.Flags().GetFloat64("finalTime")
		m1d.FramesPerOutput, _ = cmd.Flags().GetInt("framesPerOutput")
		m1d.Dam.HeightLeft, _ = cmd.Flags().GetFloat64("hLeft")
		m1d.Dam.HeightRight, _ = cmd.Flags().GetFloat64("hRight")
		m1d.Dam.MomentumLeft, _ = cmd.Flags().GetFloat64("huLeft")
		m1d.Dam.MomentumRight, _ = cmd.Flags().GetFloat64("huRight")
		m1d.Dam.BathymetryLeft, _ = cmd.Flags().GetFloat64("bLeft")
		m1d.Dam.BathymetryRight, _ = cmd.Flags().GetFloat64("bRight")
		m1d.Dam.Location, _ = cmd.Flags().GetFloat64("location")
		m1d.Exact, _ = cmd.Flags().GetBool("exact")
		solverName, _ := cmd.Flags().GetString("solver")
		m1d.Solver = solvers.NewSolverType(solverName)
		left, _ := cmd.Flags().GetString("left")
		right, _ := cmd.Flags().GetString("right")
		output, _ := cmd.Flags().GetString("output")
		var err error
		if m1d.Left, err = utils.ParseBCName(left); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if m1d.Right, err = utils.ParseBCName(right); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if err = runToFile(m1d, output); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(OneDCmd)
	var (
		K         = 100 // Number of cells
		XMax      = 100.
		FinalTime = 2.
	)
	OneDCmd.Flags().IntP("k", "k", K, "Number of cells in model")
	OneDCmd.Flags().Float64("xMax", XMax, "length of the domain")
	OneDCmd.Flags().Float64("finalTime", FinalTime, "FinalTime - the target end time for the sim")
	OneDCmd.Flags().Int("framesPerOutput", utils.DefaultFramesPerOutput, "steps between output frames")
	OneDCmd.Flags().Float64("hLeft", 10, "water height left of the dam")
	OneDCmd.Flags().Float64("hRight", 8, "water height right of the dam")
	OneDCmd.Flags().Float64("huLeft", 0, "momentum left of the dam")
	OneDCmd.Flags().Float64("huRight", 0, "momentum right of the dam")
	OneDCmd.Flags().Float64("bLeft", 0, "bathymetry left of the dam")
	OneDCmd.Flags().Float64("bRight", 0, "bathymetry right of the dam")
	OneDCmd.Flags().Float64("location", XMax/2, "position of the dam")
	OneDCmd.Flags().StringP("solver", "s", "fwave", "Riemann solver: fwave or roe")
	OneDCmd.Flags().String("left", "outflow", "left boundary condition: outflow or reflecting")
	OneDCmd.Flags().String("right", "outflow", "right boundary condition: outflow or reflecting")
	OneDCmd.Flags().StringP("output", "o", "", "CSV file for the output frames, stdout if empty")
	OneDCmd.Flags().Bool("exact", false, "report the error against the exact solution (flat bed only)")
}

type Model1D struct {
	K               int // Number of cells
	XMax, FinalTime float64
	FramesPerOutput int
	Solver          solvers.SolverType
	Left, Right     utils.BCType
	Dam             setups.DamBreak1D
	Exact           bool
}

func runToFile(m1d *Model1D, output string) (err error) {
	if output == "" {
		_, err = Run1D(m1d, os.Stdout)
		return
	}
	f, err := os.Create(output)
	if err != nil {
		return
	}
	defer f.Close()
	steps, err := Run1D(m1d, f)
	if err == nil {
		fmt.Printf("%d steps written to %s\n", steps, output)
	}
	return
}

// Run1D solves the dam break and writes a CSV frame every FramesPerOutput steps
func Run1D(m1d *Model1D, out io.Writer) (steps int, err error) {
	if m1d.K < 1 || m1d.XMax <= 0 || m1d.FramesPerOutput < 1 {
		return 0, fmt.Errorf("need positive cell count, length and frame interval, have %d, %g, %d",
			m1d.K, m1d.XMax, m1d.FramesPerOutput)
	}
	var (
		dx   = m1d.XMax / float64(m1d.K)
		p    = WavePropagation1D.NewPatch(m1d.K, solvers.NewSolver(m1d.Solver))
		hMax float64
	)
	for i := 0; i < m1d.K; i++ {
		x := (float64(i) + 0.5) * dx
		p.SetHeight(i, m1d.Dam.Height(x, 0))
		p.SetMomentumX(i, m1d.Dam.MomentumX(x, 0))
		p.SetBathymetry(i, m1d.Dam.Bathymetry(x, 0))
		hMax = math.Max(hMax, m1d.Dam.Height(x, 0))
	}
	if hMax <= 0 {
		return 0, fmt.Errorf("initial condition has no water")
	}
	var (
		dt = 0.5 * dx / math.Sqrt(solvers.Gravity*hMax)
		w  = csv.NewWriter(out)
		t  float64
	)
	if err = w.Write([]string{"time", "x", "height", "momentum_x", "bathymetry"}); err != nil {
		return
	}
	writeFrame := func() error {
		h, hu, b := p.Height(), p.MomentumX(), p.Bathymetry()
		for i := 1; i <= m1d.K; i++ {
			rec := []string{
				strconv.FormatFloat(t, 'g', -1, 64),
				strconv.FormatFloat((float64(i)-0.5)*dx, 'g', -1, 64),
				strconv.FormatFloat(h[i], 'g', -1, 64),
				strconv.FormatFloat(hu[i], 'g', -1, 64),
				strconv.FormatFloat(b[i], 'g', -1, 64),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	}
	for t < m1d.FinalTime {
		if steps%m1d.FramesPerOutput == 0 {
			if err = writeFrame(); err != nil {
				return
			}
		}
		p.SetGhostCells(m1d.Left, m1d.Right)
		p.TimeStep(dt / dx)
		t += dt
		steps++
	}
	if err = writeFrame(); err != nil {
		return
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return
	}
	if m1d.Exact {
		var errH float64
		if errH, err = exactError(m1d, p, t); err != nil {
			return
		}
		logrus.WithFields(logrus.Fields{
			"steps": steps,
			"time":  t,
			"L1":    errH,
		}).Info("height error against exact solution")
	}
	return
}

// exactError is the mean absolute height error of the current solution
func exactError(m1d *Model1D, p *WavePropagation1D.Patch, t float64) (errH float64, err error) {
	d := m1d.Dam
	if d.BathymetryLeft != d.BathymetryRight || d.HeightLeft <= 0 || d.HeightRight <= 0 || t == 0 {
		return 0, fmt.Errorf("exact solution needs a flat wet bed and t > 0")
	}
	var (
		dx    = m1d.XMax / float64(m1d.K)
		exact = analytic_dam_break.NewDamBreak(d.HeightLeft, d.HeightRight,
			d.MomentumLeft/d.HeightLeft, d.MomentumRight/d.HeightRight, d.Location)
		h = p.Height()
	)
	for i := 1; i <= m1d.K; i++ {
		he, _ := exact.Sample((float64(i)-0.5)*dx, t)
		errH += math.Abs(h[i] - he)
	}
	errH /= float64(m1d.K)
	return
}
