package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gotsunami/solvers"
	"github.com/notargets/gotsunami/utils"
)

func TestParse(t *testing.T) {
	{ // Full input
		fileInput := []byte(`
Title: Tohoku
NX: 200
NY: 100
XLen: 2000
YLen: 1000
EndTime: 120.
Solver: Roe
CoarseFactor: 2
CheckPointEvery: 4
CheckPointFile: out/tohoku_cp.nc
Boundaries:
  Left: Reflecting
  Top: wall
Setup:
  Type: TsunamiEvent2D
  BathymetryFile: bathy.nc
  DisplacementFile: disp.nc
  EpicenterOffsetX: -300
`)
		var input InputParameters2D
		require.NoError(t, input.Parse(fileInput))
		input.Print()
		assert.Equal(t, "Tohoku", input.Title)
		assert.Equal(t, 200, input.NX)
		assert.Equal(t, 120., input.EndTime)
		assert.Equal(t, solvers.SOLVER_Roe, input.SolverType())
		assert.Equal(t, 25, input.FramesPerOutput)
		assert.Equal(t, 2, input.CoarseFactor)
		assert.Equal(t, "bathy.nc", input.Setup.BathymetryFile)
		assert.Equal(t, -300., *input.Setup.EpicenterOffsetX)
		assert.Equal(t, -500., *input.Setup.EpicenterOffsetY)
		st, err := input.SetupType()
		assert.NoError(t, err)
		assert.Equal(t, SETUP_TsunamiEvent2D, st)
		bcs, err := input.BoundaryConditions()
		assert.NoError(t, err)
		assert.Equal(t, utils.Boundaries{Left: utils.BCReflecting, Top: utils.BCReflecting}, bcs)
		dx, dy := input.CellSize()
		assert.Equal(t, 10., dx)
		assert.Equal(t, 10., dy)
	}
	{ // Defaults
		var input InputParameters2D
		require.NoError(t, input.Parse([]byte("Title: empty\n")))
		assert.Equal(t, 50, input.NX)
		assert.Equal(t, 10., input.XLen)
		assert.Equal(t, 1.25, input.EndTime)
		assert.Equal(t, solvers.SOLVER_FWave, input.SolverType())
		assert.Equal(t, 1, input.CoarseFactor)
		assert.Equal(t, "DamBreak2D", input.Setup.Type)
	}
	{ // Invalid inputs
		for _, in := range []string{
			"CoarseFactor: -1\n",
			"Solver: hllc\n",
			"Setup:\n  Type: volcano\n",
			"Boundaries:\n  Right: periodic\n",
			"XLen: -4\n",
			"NX: -3\n",
		} {
			var input InputParameters2D
			assert.Error(t, input.Parse([]byte(in)), in)
		}
	}
}
