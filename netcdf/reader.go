package netcdf

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
)

// Grid is a rectilinear field z(y, x) read from file, with z stored row major
// in y
type Grid struct {
	X, Y []float64
	Z    []float64
}

func (g *Grid) At(ix, iy int) float64 {
	return g.Z[iy*len(g.X)+ix]
}

// readVar reads a whole floating point variable as float64
func readVar(f *cdf.File, v string) (data []float64, err error) {
	r := f.Reader(v, nil, nil)
	if r == nil {
		return nil, fmt.Errorf("missing variable %s", v)
	}
	buf := r.Zero(-1)
	if _, err = r.Read(buf); err != nil {
		return nil, fmt.Errorf("reading variable %s: %v", v, err)
	}
	switch vals := buf.(type) {
	case []float64:
		data = vals
	case []float32:
		data = make([]float64, len(vals))
		for i, val := range vals {
			data[i] = float64(val)
		}
	case []int32:
		data = make([]float64, len(vals))
		for i, val := range vals {
			data[i] = float64(val)
		}
	default:
		return nil, fmt.Errorf("variable %s is not numeric", v)
	}
	return
}

func open(path string) (ff *os.File, f *cdf.File, err error) {
	if ff, err = os.Open(path); err != nil {
		return nil, nil, fmt.Errorf("netcdf: %v", err)
	}
	if f, err = cdf.Open(ff); err != nil {
		ff.Close()
		return nil, nil, fmt.Errorf("netcdf: reading header of %s: %v", path, err)
	}
	return
}

// ReadGrid reads the x, y and z variables of a bathymetry or displacement file
func ReadGrid(path string) (g *Grid, err error) {
	ff, f, err := open(path)
	if err != nil {
		return
	}
	defer ff.Close()
	g = &Grid{}
	for _, v := range []struct {
		name string
		dst  *[]float64
	}{{"x", &g.X}, {"y", &g.Y}, {"z", &g.Z}} {
		if *v.dst, err = readVar(f, v.name); err != nil {
			return nil, fmt.Errorf("netcdf: %s: %v", path, err)
		}
	}
	if len(g.Z) != len(g.X)*len(g.Y) {
		return nil, fmt.Errorf("netcdf: %s: z has %d values for a %dx%d grid",
			path, len(g.Z), len(g.X), len(g.Y))
	}
	return
}

// WriteGrid stores g with the layout ReadGrid expects
func WriteGrid(path string, g *Grid) (err error) {
	h := cdf.NewHeader([]string{"x", "y"}, []int{len(g.X), len(g.Y)})
	h.AddVariable("x", []string{"x"}, []float64{0})
	h.AddVariable("y", []string{"y"}, []float64{0})
	h.AddVariable("z", []string{"y", "x"}, []float64{0})
	h.AddAttribute("z", "units", "meters")
	h.Define()
	ff, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("netcdf: %v", err)
	}
	defer closeFile(ff, &err)
	f, err := cdf.Create(ff, h)
	if err != nil {
		return fmt.Errorf("netcdf: writing header of %s: %v", path, err)
	}
	for v, data := range map[string][]float64{"x": g.X, "y": g.Y, "z": g.Z} {
		if err = writeVar(f, v, data); err != nil {
			return fmt.Errorf("netcdf: writing variable %s to %s: %v", v, path, err)
		}
	}
	return
}
