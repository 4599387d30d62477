package WavePropagation2D

import (
	"fmt"
	"sync/atomic"

	"github.com/notargets/gotsunami/Decomposition"
	"github.com/notargets/gotsunami/parallel"
	"github.com/notargets/gotsunami/solvers"
	"github.com/notargets/gotsunami/utils"
)

type Status int32

const (
	StatusUninitialized Status = iota
	StatusReady
	StatusStepping
)

var StatusPrintNames = []string{"Uninitialized", "Ready", "Stepping"}

func (s Status) Print() (txt string) {
	txt = StatusPrintNames[s]
	return
}

// Messenger moves strided data between ranks. *parallel.Comm implements it.
type Messenger interface {
	Isend(buf []float64, offset int, dt parallel.Datatype, dest, tag int) *parallel.Request
	Irecv(buf []float64, offset int, dt parallel.Datatype, source, tag int) *parallel.Request
}

// State is one buffer of the evolving fields, each a padded row-major array
type State struct {
	H, HU, HV []float64
}

func newState(size int) State {
	return State{
		H:  make([]float64, size),
		HU: make([]float64, size),
		HV: make([]float64, size),
	}
}

// Patch is the padded local subdomain of localNX by localNY cells. The cell
// at unpadded (x, y) lives at index (y+1)*Stride() + x+1.
type Patch struct {
	nx, ny, stride int
	solver         solvers.Solver
	bcs            utils.Boundaries
	topology       Decomposition.Topology
	comm           Messenger
	desc           Decomposition.ExchangeDescriptors
	rows, cols     *utils.PartitionMap
	state          [2]State
	star           State
	b              []float64
	step           int
	status         int32
}

type Option func(p *Patch)

func WithSolver(s solvers.Solver) Option {
	return func(p *Patch) { p.solver = s }
}

func WithBoundaries(bcs utils.Boundaries) Option {
	return func(p *Patch) { p.bcs = bcs }
}

// WithTopology connects the patch to its neighboring subdomains. Edges without
// a neighbor fall back to the boundary conditions.
func WithTopology(tp Decomposition.Topology, comm Messenger) Option {
	return func(p *Patch) {
		p.topology = tp
		p.comm = comm
	}
}

// WithWorkers sets the number of goroutines used by each sweep
func WithWorkers(n int) Option {
	return func(p *Patch) {
		p.rows = utils.NewPartitionMap(n, p.ny)
		p.cols = utils.NewPartitionMap(n, p.nx)
	}
}

func NewPatch(nx, ny int, opts ...Option) (p *Patch) {
	if nx < 1 || ny < 1 {
		panic(fmt.Errorf("patch needs at least one cell in each direction, have %dx%d", nx, ny))
	}
	var (
		size = (nx + 2) * (ny + 2)
	)
	p = &Patch{
		nx:       nx,
		ny:       ny,
		stride:   nx + 2,
		solver:   solvers.FWave{},
		bcs:      utils.AllOutflow(),
		topology: Decomposition.Standalone(),
		desc:     Decomposition.BuildExchangeDescriptors(nx, ny),
		rows:     utils.NewPartitionMap(1, ny),
		cols:     utils.NewPartitionMap(1, nx),
		state:    [2]State{newState(size), newState(size)},
		star:     newState(size),
		b:        make([]float64, size),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.comm == nil && p.topology.Size > 1 {
		panic(fmt.Errorf("rank %d of %d has no messenger", p.topology.Rank, p.topology.Size))
	}
	atomic.StoreInt32(&p.status, int32(StatusReady))
	return
}

func (p *Patch) Status() Status { return Status(atomic.LoadInt32(&p.status)) }

func (p *Patch) NX() int { return p.nx }

func (p *Patch) NY() int { return p.ny }

// Stride is the distance between two rows of the padded arrays
func (p *Patch) Stride() int { return p.stride }

func (p *Patch) Topology() Decomposition.Topology { return p.topology }

func (p *Patch) idx(x, y int) int { return (y+1)*p.stride + x + 1 }

// Accessors return the current padded arrays, callers must not modify them
func (p *Patch) Height() []float64 { return p.state[p.step].H }

func (p *Patch) MomentumX() []float64 { return p.state[p.step].HU }

func (p *Patch) MomentumY() []float64 { return p.state[p.step].HV }

func (p *Patch) Bathymetry() []float64 { return p.b }

func (p *Patch) SetHeight(x, y int, h float64) { p.state[p.step].H[p.idx(x, y)] = h }

func (p *Patch) SetMomentumX(x, y int, hu float64) { p.state[p.step].HU[p.idx(x, y)] = hu }

func (p *Patch) SetMomentumY(x, y int, hv float64) { p.state[p.step].HV[p.idx(x, y)] = hv }

func (p *Patch) SetBathymetry(x, y int, b float64) { p.b[p.idx(x, y)] = b }

// Load copies complete padded arrays into the current buffer
func (p *Patch) Load(h, hu, hv, b []float64) {
	cur := p.state[p.step]
	for _, f := range [][2][]float64{{cur.H, h}, {cur.HU, hu}, {cur.HV, hv}, {p.b, b}} {
		if len(f[1]) != len(f[0]) {
			panic(fmt.Errorf("padded array of length %d, expected %d", len(f[1]), len(f[0])))
		}
		copy(f[0], f[1])
	}
}
