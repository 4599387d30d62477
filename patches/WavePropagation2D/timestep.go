package WavePropagation2D

import (
	"fmt"
	"sync/atomic"
)

// TimeStep advances the patch by one dimensionally split step, scalingX is
// dt/dx and scalingY is dt/dy. In a distributed run every rank must call
// TimeStep the same number of times.
func (p *Patch) TimeStep(scalingX, scalingY float64) {
	if !atomic.CompareAndSwapInt32(&p.status, int32(StatusReady), int32(StatusStepping)) {
		panic(fmt.Errorf("time step requested while patch is %s", p.Status().Print()))
	}
	defer atomic.StoreInt32(&p.status, int32(StatusReady))

	var (
		next = 1 - p.step
		old  = p.state[p.step]
		qNew = p.state[next]
		star = p.star
	)
	p.setSweepGhostCells(old, axisX)
	copy(star.H, old.H)
	copy(star.HU, old.HU)
	copy(star.HV, old.HV)

	p.rows.ForEachBucket(func(_, yMin, yMax int) {
		p.sweepX(old, star, scalingX, yMin+1, yMax+1)
	})

	p.copyInterior(star, qNew)
	p.setSweepGhostCells(star, axisY)

	p.cols.ForEachBucket(func(_, xMin, xMax int) {
		p.sweepY(star, qNew, scalingY, xMin+1, xMax+1)
	})
	p.step = next
}

// sweepX solves every x interface of the padded rows [yBeg, yEnd). Each row is
// owned by one worker so the writes never overlap.
func (p *Patch) sweepX(src, dst State, scaling float64, yBeg, yEnd int) {
	for y := yBeg; y < yEnd; y++ {
		row := y * p.stride
		for x := 0; x < p.nx+1; x++ {
			l, r := row+x, row+x+1
			netL, netR := p.solver.NetUpdates(src.H[l], src.H[r], src.HU[l], src.HU[r], p.b[l], p.b[r])
			dst.H[l] -= scaling * netL[0]
			dst.HU[l] -= scaling * netL[1]
			dst.H[r] -= scaling * netR[0]
			dst.HU[r] -= scaling * netR[1]
		}
	}
}

// sweepY solves every y interface of the padded columns [xBeg, xEnd)
func (p *Patch) sweepY(src, dst State, scaling float64, xBeg, xEnd int) {
	for x := xBeg; x < xEnd; x++ {
		for y := 0; y < p.ny+1; y++ {
			l, r := y*p.stride+x, (y+1)*p.stride+x
			netL, netR := p.solver.NetUpdates(src.H[l], src.H[r], src.HV[l], src.HV[r], p.b[l], p.b[r])
			dst.H[l] -= scaling * netL[0]
			dst.HV[l] -= scaling * netL[1]
			dst.H[r] -= scaling * netR[0]
			dst.HV[r] -= scaling * netR[1]
		}
	}
}

func (p *Patch) copyInterior(src, dst State) {
	for y := 1; y < p.ny+1; y++ {
		beg, end := y*p.stride+1, y*p.stride+p.nx+1
		copy(dst.H[beg:end], src.H[beg:end])
		copy(dst.HU[beg:end], src.HU[beg:end])
		copy(dst.HV[beg:end], src.HV[beg:end])
	}
}
