package simulator

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/notargets/gotsunami/Decomposition"
	"github.com/notargets/gotsunami/netcdf"
	"github.com/notargets/gotsunami/parallel"
	"github.com/notargets/gotsunami/patches/WavePropagation2D"
	"github.com/notargets/gotsunami/utils"
)

// sample evaluates the setup at the lower left corner (gx*dx, gy*dy) of every
// cell of the subdomain starting at global cell (ox, oy). Ghost cells stay
// zero.
func (s *Simulator) sample(gd Decomposition.GridData, ox, oy int) (q Fields) {
	var (
		dx, dy = s.Params.CellSize()
		stride = gd.LocalNX + 2
		su     = s.Initial.Setup
		pm     = utils.NewPartitionMap(s.Workers, gd.LocalNY)
	)
	for f := range q {
		q[f] = make([]float64, gd.PaddedSize())
	}
	pm.ForEachBucket(func(_, yMin, yMax int) {
		for y := yMin; y < yMax; y++ {
			yp := float64(y+oy) * dy
			for x := 0; x < gd.LocalNX; x++ {
				var (
					xp = float64(x+ox) * dx
					i  = (y+1)*stride + x + 1
				)
				q[fieldH][i] = su.Height(xp, yp)
				q[fieldHU][i] = su.MomentumX(xp, yp)
				q[fieldHV][i] = su.MomentumY(xp, yp)
				q[fieldB][i] = su.Bathymetry(xp, yp)
			}
		}
	})
	return
}

// scatter samples the setup on rank 0 and hands every rank its padded subgrid
func (s *Simulator) scatter(c *parallel.Comm, gd Decomposition.GridData, tp Decomposition.Topology,
	desc Decomposition.ExchangeDescriptors) (q Fields, err error) {
	var (
		reqs parallel.Requests
	)
	if c.Rank() != 0 {
		for f := range q {
			q[f] = make([]float64, gd.PaddedSize())
			reqs.Add(c.Irecv(q[f], 0, desc.Subgrid, 0, tagScatter+f))
		}
		err = reqs.WaitAll()
		return
	}
	for r := 0; r < c.Size(); r++ {
		ox, oy := Decomposition.BuildTopology(r, tp.XDim, tp.YDim).Offset(gd)
		sub := s.sample(gd, ox, oy)
		if r == 0 {
			q = sub
			continue
		}
		for f := range sub {
			reqs.Add(c.Isend(sub[f], 0, desc.Subgrid, r, tagScatter+f))
		}
	}
	err = reqs.WaitAll()
	return
}

// gather collects the interiors of all ranks into dense global arrays on
// rank 0. Other ranks return nil arrays.
func gather(c *parallel.Comm, gd Decomposition.GridData, tp Decomposition.Topology,
	desc Decomposition.ExchangeDescriptors, q Fields) (global Fields, err error) {
	var (
		reqs     parallel.Requests
		interior = gd.LocalNX + 3 // first interior cell of a padded array
	)
	if c.Rank() == 0 {
		block := Decomposition.GlobalBlock(gd)
		for f := range global {
			global[f] = make([]float64, gd.GlobalNX*gd.GlobalNY)
		}
		for r := 0; r < c.Size(); r++ {
			ox, oy := Decomposition.BuildTopology(r, tp.XDim, tp.YDim).Offset(gd)
			for f := range global {
				reqs.Add(c.Irecv(global[f], oy*gd.GlobalNX+ox, block, r, tagGather+f))
			}
		}
	}
	for f := range q {
		reqs.Add(c.Isend(q[f], interior, desc.Interior, 0, tagGather+f))
	}
	err = reqs.WaitAll()
	return
}

func (s *Simulator) checkPointPath() string {
	if s.Params.CheckPointFile != "" {
		return s.Params.CheckPointFile
	}
	return filepath.Join(s.OutputDir, s.name()+"_checkpoint.nc")
}

// checkPoint gathers the global state on rank 0 and writes it as a checkpoint
func (s *Simulator) checkPoint(c *parallel.Comm, gd Decomposition.GridData, tp Decomposition.Topology,
	desc Decomposition.ExchangeDescriptors, p *WavePropagation2D.Patch, t float64, frame int) (err error) {
	q := Fields{p.Height(), p.MomentumX(), p.MomentumY(), p.Bathymetry()}
	global, err := gather(c, gd, tp, desc, q)
	if err != nil || c.Rank() != 0 {
		return
	}
	cp := &netcdf.CheckPoint{
		NX:         gd.GlobalNX,
		NY:         gd.GlobalNY,
		XLen:       s.Params.XLen,
		YLen:       s.Params.YLen,
		SimTime:    t,
		Frame:      frame,
		Height:     global[fieldH],
		MomentumX:  global[fieldHU],
		MomentumY:  global[fieldHV],
		Bathymetry: global[fieldB],
	}
	path := s.checkPointPath()
	if err = netcdf.WriteCheckPoint(path, cp); err != nil {
		return fmt.Errorf("writing checkpoint: %w", err)
	}
	s.logger().WithFields(logrus.Fields{
		"frame": frame,
		"time":  t,
		"path":  path,
	}).Info("checkpoint written")
	return
}
