package WavePropagation1D

import (
	"github.com/notargets/gotsunami/solvers"
	"github.com/notargets/gotsunami/utils"
)

// Patch is a one dimensional line of cells with one ghost cell on each end.
// Height and momentum are double buffered, bathymetry is not.
type Patch struct {
	nCells int
	solver solvers.Solver
	step   int
	h, hu  [2][]float64
	b      []float64
}

func NewPatch(nCells int, solver solvers.Solver) (p *Patch) {
	if solver == nil {
		solver = solvers.FWave{}
	}
	p = &Patch{
		nCells: nCells,
		solver: solver,
		b:      make([]float64, nCells+2),
	}
	for i := 0; i < 2; i++ {
		p.h[i] = make([]float64, nCells+2)
		p.hu[i] = make([]float64, nCells+2)
	}
	return
}

func (p *Patch) NCells() int { return p.nCells }

// Height returns the current heights, index 0 and nCells+1 are ghost cells
func (p *Patch) Height() []float64 { return p.h[p.step] }

func (p *Patch) MomentumX() []float64 { return p.hu[p.step] }

func (p *Patch) Bathymetry() []float64 { return p.b }

// Setters address interior cells starting at zero
func (p *Patch) SetHeight(ix int, h float64) { p.h[p.step][ix+1] = h }

func (p *Patch) SetMomentumX(ix int, hu float64) { p.hu[p.step][ix+1] = hu }

func (p *Patch) SetBathymetry(ix int, b float64) { p.b[ix+1] = b }

// TimeStep advances the cells by one step, scaling is dt/dx. Ghost cells must
// be current before the call.
func (p *Patch) TimeStep(scaling float64) {
	var (
		hOld, huOld = p.h[p.step], p.hu[p.step]
		next        = 1 - p.step
		hNew, huNew = p.h[next], p.hu[next]
	)
	copy(hNew, hOld)
	copy(huNew, huOld)
	for ed := 0; ed < p.nCells+1; ed++ {
		l, r := ed, ed+1
		netL, netR := p.solver.NetUpdates(hOld[l], hOld[r], huOld[l], huOld[r], p.b[l], p.b[r])
		hNew[l] -= scaling * netL[0]
		huNew[l] -= scaling * netL[1]
		hNew[r] -= scaling * netR[0]
		huNew[r] -= scaling * netR[1]
	}
	p.step = next
}

// SetGhostCells fills both ghost cells from the adjacent interior cells
func (p *Patch) SetGhostCells(left, right utils.BCType) {
	var (
		h, hu = p.h[p.step], p.hu[p.step]
		n     = p.nCells
	)
	h[0], hu[0], p.b[0] = h[1], hu[1], p.b[1]
	if left == utils.BCReflecting {
		hu[0] = -hu[1]
	}
	h[n+1], hu[n+1], p.b[n+1] = h[n], hu[n], p.b[n]
	if right == utils.BCReflecting {
		hu[n+1] = -hu[n]
	}
}
