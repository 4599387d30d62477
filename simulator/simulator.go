package simulator

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gotsunami/Decomposition"
	"github.com/notargets/gotsunami/InputParameters"
	"github.com/notargets/gotsunami/netcdf"
	"github.com/notargets/gotsunami/parallel"
	"github.com/notargets/gotsunami/patches/WavePropagation2D"
	"github.com/notargets/gotsunami/setups"
	"github.com/notargets/gotsunami/solvers"
	"github.com/notargets/gotsunami/utils"
)

const (
	fieldH = iota
	fieldHU
	fieldHV
	fieldB
	nFields
)

// Message tags of the setup scatter and the checkpoint gather. Halo exchange
// inside the patch uses tags below 16.
const (
	tagScatter = 64
	tagGather  = 80
)

type Fields [nFields][]float64

// Recorder receives the output frames of one rank. *netcdf.Writer implements it.
type Recorder interface {
	Store(simTime float64, frame int, h, hu, hv []float64)
	Write() error
}

// RecorderFactory opens the recorder of one rank. bathymetry is the padded
// local bathymetry.
type RecorderFactory func(tp Decomposition.Topology, gd Decomposition.GridData,
	bathymetry []float64) (Recorder, error)

type Simulator struct {
	Params    *InputParameters.InputParameters2D
	Initial   setups.Initial
	OutputDir string
	IO        bool            // store output frames
	NewWriter RecorderFactory // nil writes one NetCDF file per rank to OutputDir
	Workers   int             // goroutines per sweep and per setup sampling
	Progress  bool            // rank 0 prints a line per frame
	Timing    bool
	Log       logrus.FieldLogger
	// Set on rank 0 after Run
	Steps    int
	EndTime  float64
	VolumeT0 float64
	Volume   float64
}

func NewSimulator(ip *InputParameters.InputParameters2D, in setups.Initial) (s *Simulator) {
	s = &Simulator{
		Params:    ip,
		Initial:   in,
		OutputDir: ".",
		IO:        true,
		Workers:   1,
		Log:       logrus.StandardLogger(),
	}
	return
}

func (s *Simulator) name() string {
	if s.Params.Title == "" {
		return "tsunami"
	}
	return s.Params.Title
}

// RunWorld runs the simulation on size ranks and returns the first failure
func (s *Simulator) RunWorld(size int) error {
	return parallel.NewWorld(size).Run(s.Run)
}

// Run executes the simulation as one rank of the world behind c. Every rank
// of the world must call Run.
func (s *Simulator) Run(c *parallel.Comm) (err error) {
	var (
		ip     = s.Params
		rank   = c.Rank()
		log    = s.logger().WithField("rank", rank)
		timer  = utils.NewTimer(s.Timing && rank == 0, log)
		dx, dy = ip.CellSize()
	)
	gd, xDim, yDim, err := Decomposition.Decompose(c.Size(), ip.NX, ip.NY)
	if err != nil {
		log.WithError(err).Error("decomposition failed")
		c.Abort(err)
		return
	}
	tp := Decomposition.BuildTopology(rank, xDim, yDim)
	desc := Decomposition.BuildExchangeDescriptors(gd.LocalNX, gd.LocalNY)
	if rank == 0 {
		log.WithFields(logrus.Fields{
			"processes": c.Size(),
			"layout":    fmt.Sprintf("%dx%d", xDim, yDim),
			"local":     fmt.Sprintf("%dx%d", gd.LocalNX, gd.LocalNY),
		}).Info("domain decomposed")
	}

	q, err := s.scatter(c, gd, tp, desc)
	if err != nil {
		return fmt.Errorf("distributing initial condition: %w", err)
	}
	hMax, err := c.AllReduceMax(floats.Max(q[fieldH]))
	if err != nil {
		return
	}
	if hMax <= 0 {
		err = fmt.Errorf("initial condition has no water, maximum height is %g", hMax)
		c.Abort(err)
		return
	}
	var (
		dt       = 0.5 * math.Min(dx, dy) / math.Sqrt(solvers.Gravity*hMax)
		scalingX = dt / dx
		scalingY = dt / dy
	)
	p := WavePropagation2D.NewPatch(gd.LocalNX, gd.LocalNY,
		WavePropagation2D.WithSolver(solvers.NewSolver(ip.SolverType())),
		WavePropagation2D.WithBoundaries(s.boundaries()),
		WavePropagation2D.WithTopology(tp, c),
		WavePropagation2D.WithWorkers(s.Workers),
	)
	p.Load(q[fieldH], q[fieldHU], q[fieldHV], q[fieldB])

	var w Recorder
	if s.IO {
		if w, err = s.recorder(tp, gd, p.Bathymetry()); err != nil {
			return fmt.Errorf("opening output: %w", err)
		}
	}
	vol0, err := s.volume(c, p)
	if err != nil {
		return
	}
	timer.Report("setup")
	if rank == 0 && s.Progress {
		s.PrintInitialization(dt, hMax)
	}

	var (
		t          = s.Initial.StartTime()
		frame      = s.Initial.StartFrame()
		startFrame = frame
		steps      int
		start      = time.Now()
	)
	for t < ip.EndTime {
		if steps%ip.FramesPerOutput == 0 {
			if w != nil {
				w.Store(t, frame, p.Height(), p.MomentumX(), p.MomentumY())
			}
			if s.Progress {
				var vol float64
				if vol, err = s.volume(c, p); err != nil {
					return
				}
				if rank == 0 {
					s.PrintUpdate(frame, steps, t, vol)
				}
			}
			if ip.CheckPointEvery > 0 && frame != startFrame && frame%ip.CheckPointEvery == 0 {
				if err = s.checkPoint(c, gd, tp, desc, p, t, frame); err != nil {
					return
				}
			}
			frame++
		}
		p.TimeStep(scalingX, scalingY)
		t += dt
		steps++
	}
	elapsed := time.Since(start)
	timer.Report("simulation")

	if w != nil {
		if err = w.Write(); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		timer.Report("output")
	}
	vol, err := s.volume(c, p)
	if err != nil {
		return
	}
	if rank == 0 {
		s.Steps, s.EndTime, s.VolumeT0, s.Volume = steps, t, vol0, vol
		if s.Progress {
			s.PrintFinal(elapsed, steps)
		}
		log.WithFields(logrus.Fields{
			"steps":   steps,
			"time":    t,
			"volume":  vol,
			"dVolume": vol - vol0,
		}).Info("simulation finished")
	}
	return c.Barrier()
}

func (s *Simulator) logger() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}

func (s *Simulator) boundaries() utils.Boundaries {
	bcs, err := s.Params.BoundaryConditions()
	if err != nil {
		panic(err)
	}
	return bcs
}

func (s *Simulator) recorder(tp Decomposition.Topology, gd Decomposition.GridData,
	bathymetry []float64) (Recorder, error) {
	if s.NewWriter != nil {
		return s.NewWriter(tp, gd, bathymetry)
	}
	var (
		dx, dy = s.Params.CellSize()
		ox, oy = tp.Offset(gd)
		path   = filepath.Join(s.OutputDir, fmt.Sprintf("%s_%d.nc", s.name(), tp.Rank))
	)
	return netcdf.NewWriter(path, gd.LocalNX, gd.LocalNY, gd.LocalNX+2, dx, dy,
		float64(ox)*dx, float64(oy)*dy, s.Params.CoarseFactor, bathymetry)
}

// volume is the total water volume of the world, identical on every rank
func (s *Simulator) volume(c *parallel.Comm, p *WavePropagation2D.Patch) (vol float64, err error) {
	var (
		h      = p.Height()
		stride = p.Stride()
		dx, dy = s.Params.CellSize()
	)
	for y := 1; y <= p.NY(); y++ {
		vol += floats.Sum(h[y*stride+1 : y*stride+1+p.NX()])
	}
	vol, err = c.AllReduceSum(vol * dx * dy)
	return
}
