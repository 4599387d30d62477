package WavePropagation1D

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gotsunami/solvers"
	"github.com/notargets/gotsunami/utils"
)

func damBreak(solver solvers.Solver, bLeft float64) (p *Patch) {
	p = NewPatch(100, solver)
	for i := 0; i < 50; i++ {
		p.SetHeight(i, 10)
		p.SetMomentumX(i, 0)
		p.SetBathymetry(i, bLeft)
	}
	for i := 50; i < 100; i++ {
		p.SetHeight(i, 8)
		p.SetMomentumX(i, 0)
		p.SetBathymetry(i, 0)
	}
	p.SetGhostCells(utils.BCOutflow, utils.BCOutflow)
	return
}

func TestTimeStep(t *testing.T) {
	var (
		tol = 1.e-6
	)
	{ // Roe dam break
		p := damBreak(solvers.Roe{}, 0)
		p.TimeStep(0.1)
		h, hu := p.Height(), p.MomentumX()
		for i := 1; i < 50; i++ {
			assert.InDelta(t, 10., h[i], tol)
			assert.InDelta(t, 0., hu[i], tol)
		}
		assert.InDelta(t, 10-0.1*9.394671362, h[50], tol)
		assert.InDelta(t, 0+0.1*88.25985, hu[50], tol)
		assert.InDelta(t, 8+0.1*9.394671362, h[51], tol)
		assert.InDelta(t, 0+0.1*88.25985, hu[51], tol)
		for i := 52; i < 101; i++ {
			assert.InDelta(t, 8., h[i], tol)
			assert.InDelta(t, 0., hu[i], tol)
		}
	}
	{ // F-wave dam break over a bathymetry step
		p := damBreak(solvers.FWave{}, 5)
		p.TimeStep(0.1)
		h, hu, b := p.Height(), p.MomentumX(), p.Bathymetry()
		for i := 1; i < 50; i++ {
			assert.InDelta(t, 10., h[i], tol)
			assert.InDelta(t, 0., hu[i], tol)
			assert.InDelta(t, 5., b[i], tol)
		}
		assert.InEpsilon(t, 10-0.1*32.8816, h[50], 1.e-5)
		assert.InDelta(t, 0+0.1*308.90947936, hu[50], 1.e-5)
		assert.InEpsilon(t, 8+0.1*32.8816, h[51], 1.e-5)
		assert.InDelta(t, 0+0.1*308.90947936, hu[51], 1.e-5)
		for i := 52; i < 101; i++ {
			assert.InDelta(t, 8., h[i], tol)
			assert.InDelta(t, 0., hu[i], tol)
		}
	}
	{ // Interior water volume is conserved away from the boundaries
		p := damBreak(solvers.FWave{}, 0)
		var before, after float64
		for _, v := range p.Height()[1:101] {
			before += v
		}
		for n := 0; n < 20; n++ {
			p.SetGhostCells(utils.BCReflecting, utils.BCReflecting)
			p.TimeStep(0.05)
		}
		for _, v := range p.Height()[1:101] {
			after += v
		}
		assert.InDelta(t, before, after, 1.e-9)
	}
}

func TestGhostCells(t *testing.T) {
	setup := func() (p *Patch) {
		p = NewPatch(100, nil)
		for i := 0; i < 50; i++ {
			p.SetHeight(i, 10)
			p.SetMomentumX(i, 3)
		}
		for i := 50; i < 100; i++ {
			p.SetHeight(i, 8)
			p.SetMomentumX(i, 4)
		}
		return
	}
	{ // Reflecting on both sides
		p := setup()
		p.SetGhostCells(utils.BCReflecting, utils.BCReflecting)
		assert.Equal(t, 10., p.Height()[0])
		assert.Equal(t, -3., p.MomentumX()[0])
		assert.Equal(t, 8., p.Height()[101])
		assert.Equal(t, -4., p.MomentumX()[101])
	}
	{ // Left reflecting, right outflow
		p := setup()
		p.SetGhostCells(utils.BCReflecting, utils.BCOutflow)
		assert.Equal(t, -3., p.MomentumX()[0])
		assert.Equal(t, 4., p.MomentumX()[101])
	}
	{ // Left outflow, right reflecting
		p := setup()
		p.SetGhostCells(utils.BCOutflow, utils.BCReflecting)
		assert.Equal(t, 3., p.MomentumX()[0])
		assert.Equal(t, -4., p.MomentumX()[101])
	}
}
