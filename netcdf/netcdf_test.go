package netcdf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// padded builds a (nx+2)*(ny+2) array whose interior cell (x, y) holds
// f(x, y) and whose ghost cells hold -1
func padded(nx, ny int, f func(x, y int) float64) (a []float64) {
	a = make([]float64, (nx+2)*(ny+2))
	for i := range a {
		a[i] = -1
	}
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			a[(y+1)*(nx+2)+x+1] = f(x, y)
		}
	}
	return
}

func readFloat32(t *testing.T, f *cdf.File, v string) []float32 {
	r := f.Reader(v, nil, nil)
	require.NotNil(t, r)
	buf := r.Zero(-1)
	_, err := r.Read(buf)
	require.NoError(t, err)
	return buf.([]float32)
}

func TestWriter(t *testing.T) {
	var (
		nx, ny = 4, 2
		dir    = t.TempDir()
		b      = padded(nx, ny, func(x, y int) float64 { return float64(-x) })
	)
	{ // Full resolution
		path := filepath.Join(dir, "out", "run_0.nc")
		w, err := NewWriter(path, nx, ny, nx+2, 10, 20, 100, 200, 1, b)
		require.NoError(t, err)
		w.Store(0, 0, padded(nx, ny, func(x, y int) float64 { return float64(x + 10*y) }),
			padded(nx, ny, func(x, y int) float64 { return 1 }),
			padded(nx, ny, func(x, y int) float64 { return 2 }))
		w.Store(1.5, 1, padded(nx, ny, func(x, y int) float64 { return float64(100 + x + 10*y) }),
			padded(nx, ny, func(x, y int) float64 { return 3 }),
			padded(nx, ny, func(x, y int) float64 { return 4 }))
		assert.Equal(t, 2, w.NumFrames())
		require.NoError(t, w.Write())

		ff, err := os.Open(path)
		require.NoError(t, err)
		defer ff.Close()
		f, err := cdf.Open(ff)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 2, 4}, f.Header.Lengths("height"))
		assert.Equal(t, "meters", f.Header.GetAttribute("height", "units"))
		assert.Equal(t, "meters*kg/s", f.Header.GetAttribute("momentum_x", "units"))
		assert.Equal(t, "seconds", f.Header.GetAttribute("time", "units"))
		assert.Equal(t, []float32{105, 115, 125, 135}, readFloat32(t, f, "x"))
		assert.Equal(t, []float32{210, 230}, readFloat32(t, f, "y"))
		assert.Equal(t, []float32{0, 1.5}, readFloat32(t, f, "time"))
		assert.Equal(t, []float32{0, -1, -2, -3, 0, -1, -2, -3}, readFloat32(t, f, "bathymetry"))
		assert.Equal(t, []float32{
			0, 1, 2, 3, 10, 11, 12, 13,
			100, 101, 102, 103, 110, 111, 112, 113,
		}, readFloat32(t, f, "height"))
		hv := readFloat32(t, f, "momentum_y")
		assert.Equal(t, float32(2), hv[0])
		assert.Equal(t, float32(4), hv[15])
	}
	{ // Coarse output averages 2x2 blocks
		path := filepath.Join(dir, "coarse.nc")
		w, err := NewWriter(path, nx, ny, nx+2, 10, 20, 0, 0, 2, b)
		require.NoError(t, err)
		assert.Equal(t, 2, w.CoarseNX())
		assert.Equal(t, 1, w.CoarseNY())
		w.Store(0, 0, padded(nx, ny, func(x, y int) float64 { return float64(x + 10*y) }),
			padded(nx, ny, func(x, y int) float64 { return 0 }),
			padded(nx, ny, func(x, y int) float64 { return 0 }))
		require.NoError(t, w.Write())
		ff, err := os.Open(path)
		require.NoError(t, err)
		defer ff.Close()
		f, err := cdf.Open(ff)
		require.NoError(t, err)
		assert.Equal(t, []float32{5.5, 7.5}, readFloat32(t, f, "height"))
		assert.Equal(t, []float32{-0.5, -2.5}, readFloat32(t, f, "bathymetry"))
		assert.Equal(t, []float32{10, 30}, readFloat32(t, f, "x"))
		assert.Equal(t, []float32{20}, readFloat32(t, f, "y"))
	}
	{ // Invalid coarse factors
		_, err := NewWriter("x.nc", nx, ny, nx+2, 1, 1, 0, 0, 0, b)
		assert.Error(t, err)
		_, err = NewWriter("x.nc", nx, ny, nx+2, 1, 1, 0, 0, 3, b)
		assert.Error(t, err)
	}
}

func TestCheckPoint(t *testing.T) {
	var (
		path = filepath.Join(t.TempDir(), "cp", "check.nc")
		cp   = &CheckPoint{
			NX: 2, NY: 3, XLen: 20, YLen: 30,
			SimTime: 12.25, Frame: 7,
			Height:     []float64{0, 0, 2, 1, 0, 0},
			MomentumX:  []float64{0, 1, 2, 3, 4, 5},
			MomentumY:  []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6},
			Bathymetry: []float64{1.5, 2.5, 3.5, 4.5, 5.5, 6.5},
		}
	)
	require.NoError(t, WriteCheckPoint(path, cp))
	back, err := ReadCheckPoint(path)
	require.NoError(t, err)
	assert.Equal(t, cp, back)

	cp.Height = cp.Height[:2]
	assert.Error(t, WriteCheckPoint(path, cp))
	_, err = ReadCheckPoint(filepath.Join(t.TempDir(), "missing.nc"))
	assert.Error(t, err)
}

func TestGrid(t *testing.T) {
	var (
		path = filepath.Join(t.TempDir(), "bathymetry.nc")
		g    = &Grid{
			X: []float64{-10, 0, 10},
			Y: []float64{-5, 5},
			Z: []float64{1, 2, 3, 4, 5, 6},
		}
	)
	require.NoError(t, WriteGrid(path, g))
	back, err := ReadGrid(path)
	require.NoError(t, err)
	assert.Equal(t, g, back)
	assert.Equal(t, 6., back.At(2, 1))
	assert.Equal(t, 2., back.At(1, 0))
}

func TestWriteVar(t *testing.T) {
	dir := t.TempDir()
	{ // A single cell grid fills every variable with one write
		path := filepath.Join(dir, "single.nc")
		g := &Grid{X: []float64{0, 1}, Y: []float64{0}, Z: []float64{1, 2}}
		require.NoError(t, WriteGrid(path, g))
		back, err := ReadGrid(path)
		require.NoError(t, err)
		assert.Equal(t, g, back)
	}
	{ // Reaching the end of a variable is fine, running past it is not
		h := cdf.NewHeader([]string{"x"}, []int{2})
		h.AddVariable("v", []string{"x"}, []float64{0})
		h.Define()
		ff, err := os.Create(filepath.Join(dir, "v.nc"))
		require.NoError(t, err)
		defer ff.Close()
		f, err := cdf.Create(ff, h)
		require.NoError(t, err)
		assert.NoError(t, writeVar(f, "v", []float64{1, 2}))
		assert.Error(t, writeVar(f, "v", []float64{1, 2, 3}))
		assert.Error(t, writeVar(f, "w", []float64{1}))
	}
	{ // Close errors surface unless an earlier error is pending
		ff, err := os.Create(filepath.Join(dir, "closed"))
		require.NoError(t, err)
		require.NoError(t, ff.Close())
		var closeErr error
		closeFile(ff, &closeErr)
		assert.Error(t, closeErr)
		first := errors.New("first")
		closeErr = first
		closeFile(ff, &closeErr)
		assert.Equal(t, first, closeErr)
	}
}
