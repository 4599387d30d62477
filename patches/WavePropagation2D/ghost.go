package WavePropagation2D

import (
	"fmt"

	"github.com/notargets/gotsunami/Decomposition"
	"github.com/notargets/gotsunami/parallel"
	"github.com/notargets/gotsunami/utils"
)

type axis uint8

const (
	axisX axis = iota
	axisY
)

const (
	fieldH = iota
	fieldHU
	fieldHV
	fieldB
	nFields
)

// exchangeTag identifies a halo message by sweep axis, travel direction and
// field. travel is 0 for messages going toward lower indices.
func exchangeTag(ax axis, travel, field int) int {
	return int(ax)*2*nFields + travel*nFields + field
}

// SetGhostCells refreshes every ghost cell of the current buffer, exchanging
// with neighbors where they exist
func (p *Patch) SetGhostCells() {
	cur := p.state[p.step]
	p.setSweepGhostCells(cur, axisX)
	p.setSweepGhostCells(cur, axisY)
}

// setSweepGhostCells fills the two ghost layers crossed by the sweep along ax.
// It returns only after all messages of the round have completed.
func (p *Patch) setSweepGhostCells(q State, ax axis) {
	var (
		fields = [nFields][]float64{q.H, q.HU, q.HV, p.b}
		reqs   parallel.Requests
		dirs   = [2]Decomposition.Direction{Decomposition.Left, Decomposition.Right}
		dt     = p.desc.Column
	)
	if ax == axisY {
		dirs = [2]Decomposition.Direction{Decomposition.Up, Decomposition.Down}
		dt = p.desc.Row
	}
	for travel, dir := range dirs {
		nb, ok := p.topology.Neighbor(dir).Rank()
		if !ok {
			p.applyBoundary(q, dir)
			continue
		}
		border, ghost := p.haloOffsets(dir)
		for f, field := range fields {
			reqs.Add(
				p.comm.Isend(field, border, dt, nb, exchangeTag(ax, travel, f)),
				p.comm.Irecv(field, ghost, dt, nb, exchangeTag(ax, 1-travel, f)),
			)
		}
	}
	if err := reqs.WaitAll(); err != nil {
		panic(fmt.Errorf("rank %d: halo exchange failed: %v", p.topology.Rank, err))
	}
	p.setCorners(fields[:])
}

// haloOffsets returns the start of the innermost interior line and of the
// ghost line on the side dir
func (p *Patch) haloOffsets(dir Decomposition.Direction) (border, ghost int) {
	switch dir {
	case Decomposition.Left:
		border, ghost = p.stride+1, p.stride
	case Decomposition.Right:
		border, ghost = p.stride+p.nx, p.stride+p.nx+1
	case Decomposition.Up:
		border, ghost = p.stride+1, 1
	case Decomposition.Down:
		border, ghost = p.ny*p.stride+1, (p.ny+1)*p.stride+1
	}
	return
}

func (p *Patch) edgeBC(dir Decomposition.Direction) utils.BCType {
	switch dir {
	case Decomposition.Left:
		return p.bcs.Left
	case Decomposition.Right:
		return p.bcs.Right
	case Decomposition.Up:
		return p.bcs.Top
	default:
		return p.bcs.Bottom
	}
}

// applyBoundary copies the adjacent interior cell into each ghost cell of the
// side dir. Reflecting edges negate the momentum normal to the edge.
func (p *Patch) applyBoundary(q State, dir Decomposition.Direction) {
	var (
		border, ghost = p.haloOffsets(dir)
		count, step   = p.ny, p.stride
		normal        = q.HU
	)
	if dir == Decomposition.Up || dir == Decomposition.Down {
		count, step = p.nx, 1
		normal = q.HV
	}
	reflect := p.edgeBC(dir) == utils.BCReflecting
	for n := 0; n < count; n++ {
		g, i := ghost+n*step, border+n*step
		q.H[g] = q.H[i]
		q.HU[g] = q.HU[i]
		q.HV[g] = q.HV[i]
		p.b[g] = p.b[i]
		if reflect {
			normal[g] = -normal[i]
		}
	}
}

// setCorners copies the nearest diagonal interior cell into each corner
func (p *Patch) setCorners(fields [][]float64) {
	var (
		nx, ny, s = p.nx, p.ny, p.stride
		pairs     = [4][2]int{
			{0, s + 1},
			{nx + 1, s + nx},
			{(ny + 1) * s, ny*s + 1},
			{(ny+1)*s + nx + 1, ny*s + nx},
		}
	)
	for _, f := range fields {
		for _, pr := range pairs {
			f[pr[0]] = f[pr[1]]
		}
	}
}
