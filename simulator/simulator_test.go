package simulator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gotsunami/Decomposition"
	"github.com/notargets/gotsunami/InputParameters"
	"github.com/notargets/gotsunami/netcdf"
	"github.com/notargets/gotsunami/parallel"
	"github.com/notargets/gotsunami/setups"
)

// ramp is a setup with a distinct value in every cell
type ramp struct{}

func (ramp) Height(x, y float64) float64     { return 1 + x + 100*y }
func (ramp) MomentumX(x, y float64) float64  { return x }
func (ramp) MomentumY(x, y float64) float64  { return y }
func (ramp) Bathymetry(x, y float64) float64 { return -x - y }

func newParams(t *testing.T, yml string) *InputParameters.InputParameters2D {
	var ip InputParameters.InputParameters2D
	require.NoError(t, ip.Parse([]byte(yml)))
	return &ip
}

func quiet() logrus.FieldLogger {
	l := logrus.New()
	l.Level = logrus.WarnLevel
	return l
}

func newTestSimulator(t *testing.T, yml string, su setups.Setup) *Simulator {
	s := NewSimulator(newParams(t, yml), setups.Initial{Setup: su})
	s.OutputDir = t.TempDir()
	s.Log = quiet()
	return s
}

type memRecorder struct {
	times  []float64
	frames []int
	height [][]float64
	wrote  bool
}

func (m *memRecorder) Store(simTime float64, frame int, h, hu, hv []float64) {
	m.times = append(m.times, simTime)
	m.frames = append(m.frames, frame)
	m.height = append(m.height, append([]float64(nil), h...))
}

func (m *memRecorder) Write() error {
	m.wrote = true
	return nil
}

type memRecorders struct {
	mu     sync.Mutex
	byRank map[int]*memRecorder
}

func (mr *memRecorders) factory(tp Decomposition.Topology, _ Decomposition.GridData,
	_ []float64) (Recorder, error) {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	if mr.byRank == nil {
		mr.byRank = make(map[int]*memRecorder)
	}
	m := &memRecorder{}
	mr.byRank[tp.Rank] = m
	return m, nil
}

func TestScatterGather(t *testing.T) {
	s := newTestSimulator(t, "NX: 12\nNY: 6\nXLen: 12\nYLen: 6\n", ramp{})
	s.Workers = 3
	for _, worldSize := range []int{1, 2, 3, 4, 6} {
		gd, xDim, yDim, err := Decomposition.Decompose(worldSize, 12, 6)
		require.NoError(t, err)
		var global Fields
		err = parallel.NewWorld(worldSize).Run(func(c *parallel.Comm) error {
			tp := Decomposition.BuildTopology(c.Rank(), xDim, yDim)
			desc := Decomposition.BuildExchangeDescriptors(gd.LocalNX, gd.LocalNY)
			q, err := s.scatter(c, gd, tp, desc)
			if err != nil {
				return err
			}
			ox, oy := tp.Offset(gd)
			// ghost cells are left empty
			assert.Equal(t, 0., q[fieldH][0])
			assert.Equal(t, 1+float64(ox)+100*float64(oy), q[fieldH][gd.LocalNX+3])
			g, err := gather(c, gd, tp, desc, q)
			if c.Rank() == 0 {
				global = g
			} else {
				assert.Nil(t, g[fieldH])
			}
			return err
		})
		require.NoError(t, err)
		for y := 0; y < 6; y++ {
			for x := 0; x < 12; x++ {
				xp, yp := float64(x), float64(y)
				i := y*12 + x
				assert.Equal(t, ramp{}.Height(xp, yp), global[fieldH][i], "world %d", worldSize)
				assert.Equal(t, ramp{}.MomentumX(xp, yp), global[fieldHU][i])
				assert.Equal(t, ramp{}.MomentumY(xp, yp), global[fieldHV][i])
				assert.Equal(t, ramp{}.Bathymetry(xp, yp), global[fieldB][i])
			}
		}
	}
}

const dtTolerance = 0.051

const damBreak = `
Title: dam
NX: 16
NY: 16
XLen: 16
YLen: 16
FramesPerOutput: 5
`

func TestRunFrames(t *testing.T) {
	var (
		mr = &memRecorders{}
		s  = newTestSimulator(t, damBreak+"EndTime: 1\n", setups.DamBreak2D{
			CenterX: 8, CenterY: 8, Radius: 3, HeightInside: 10, HeightOutside: 5})
	)
	s.NewWriter = mr.factory
	require.NoError(t, s.RunWorld(4))
	assert.Equal(t, 20, s.Steps)
	assert.Len(t, mr.byRank, 4)
	for rank, m := range mr.byRank {
		assert.True(t, m.wrote, "rank %d", rank)
		assert.Equal(t, []int{0, 1, 2, 3}, m.frames)
		assert.Equal(t, 0., m.times[0])
		assert.Len(t, m.height[0], 10*10)
	}
	assert.InDelta(t, 1., s.EndTime, dtTolerance)
}

func TestResume(t *testing.T) {
	var (
		mr = &memRecorders{}
		s  = newTestSimulator(t, damBreak+"EndTime: 10.5\n", setups.DamBreak2D{
			CenterX: 8, CenterY: 8, Radius: 3, HeightInside: 10, HeightOutside: 5})
	)
	s.Initial.Resume = &setups.Resume{SimTime: 10, Frame: 40}
	s.NewWriter = mr.factory
	require.NoError(t, s.RunWorld(1))
	assert.Equal(t, 10, s.Steps)
	m := mr.byRank[0]
	assert.Equal(t, []int{40, 41}, m.frames)
	assert.Equal(t, 10., m.times[0])
}

func TestReflectingBoxConservesVolume(t *testing.T) {
	s := newTestSimulator(t, damBreak+`EndTime: 5
Boundaries:
  Left: reflecting
  Right: reflecting
  Top: reflecting
  Bottom: reflecting
`, setups.DamBreak2D{CenterX: 4, CenterY: 10, Radius: 3, HeightInside: 10, HeightOutside: 5})
	s.IO = false
	s.Workers = 2
	require.NoError(t, s.RunWorld(2))
	assert.InDelta(t, s.VolumeT0, s.Volume, 1.e-9*s.VolumeT0)
	assert.InDelta(t, 5., s.EndTime, 0.1)
}

func TestCheckPointsMatchAcrossWorlds(t *testing.T) {
	read := func(worldSize int) *netcdf.CheckPoint {
		s := newTestSimulator(t, damBreak+"EndTime: 1\nCheckPointEvery: 1\nSolver: roe\n",
			setups.DamBreak2D{CenterX: 5, CenterY: 9, Radius: 4, HeightInside: 10, HeightOutside: 5})
		s.IO = false
		require.NoError(t, s.RunWorld(worldSize))
		cp, err := netcdf.ReadCheckPoint(filepath.Join(s.OutputDir, "dam_checkpoint.nc"))
		require.NoError(t, err)
		return cp
	}
	ref := read(1)
	assert.Equal(t, 3, ref.Frame)
	assert.Equal(t, 16, ref.NX)
	assert.Len(t, ref.Height, 16*16)
	for _, worldSize := range []int{2, 4} {
		cp := read(worldSize)
		assert.Equal(t, ref, cp, "world %d", worldSize)
	}
	{ // Resuming from the checkpoint starts with the stored state
		in := setups.Initial{Setup: setups.NewCheckPoint(ref), Resume: setups.NewCheckPoint(ref).Resume()}
		s := NewSimulator(newParams(t, damBreak+"EndTime: 1\n"), in)
		s.Log = quiet()
		mr := &memRecorders{}
		s.NewWriter = mr.factory
		require.NoError(t, s.RunWorld(1))
		m := mr.byRank[0]
		assert.Equal(t, 3, m.frames[0])
		assert.Equal(t, ref.SimTime, m.times[0])
		assert.Equal(t, ref.Height[0], m.height[0][19])
		assert.Equal(t, ref.Height[16*3+2], m.height[0][4*18+3])
	}
}

func TestNetCDFOutput(t *testing.T) {
	s := newTestSimulator(t, damBreak+"EndTime: 1\nCoarseFactor: 2\n", setups.DamBreak2D{
		CenterX: 8, CenterY: 8, Radius: 3, HeightInside: 10, HeightOutside: 5})
	require.NoError(t, s.RunWorld(2))
	for rank := 0; rank < 2; rank++ {
		_, err := os.Stat(filepath.Join(s.OutputDir, fmt.Sprintf("dam_%d.nc", rank)))
		assert.NoError(t, err)
	}
}

func TestRunErrors(t *testing.T) {
	{ // Uneven decomposition aborts every rank
		s := newTestSimulator(t, "NX: 9\nNY: 4\n", ramp{})
		err := s.RunWorld(2)
		require.Error(t, err)
		var de *Decomposition.DecompositionError
		assert.True(t, errors.As(err, &de))
	}
	{ // Dry domain
		s := newTestSimulator(t, "NX: 4\nNY: 4\n", setups.DamBreak2D{})
		assert.Error(t, s.RunWorld(1))
	}
	{ // Output directory can't be created
		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
		s := newTestSimulator(t, damBreak+"EndTime: 1\n", setups.DamBreak2D{
			CenterX: 8, CenterY: 8, Radius: 3, HeightInside: 10, HeightOutside: 5})
		s.OutputDir = filepath.Join(blocker, "out")
		assert.Error(t, s.RunWorld(1))
	}
}
