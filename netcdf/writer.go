package netcdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ctessum/cdf"
)

// Writer buffers output frames of one subdomain and persists them as a
// NetCDF classic file with dimensions x, y and time
type Writer struct {
	Path         string
	NX, NY       int     // interior cells of the subdomain
	Stride       int     // row length of the padded arrays
	DX, DY       float64 // cell size
	OriginX      float64 // physical x of the left edge of the subdomain
	OriginY      float64
	CoarseFactor int
	bathymetry   []float32
	times        []float32
	frames       []int
	height       [][]float32
	momentumX    [][]float32
	momentumY    [][]float32
}

func NewWriter(path string, nx, ny, stride int, dx, dy, originX, originY float64,
	coarseFactor int, bathymetry []float64) (w *Writer, err error) {
	if coarseFactor < 1 {
		err = fmt.Errorf("netcdf: coarse factor must be at least 1, have %d", coarseFactor)
		return
	}
	if nx/coarseFactor == 0 || ny/coarseFactor == 0 {
		err = fmt.Errorf("netcdf: coarse factor %d exceeds the %dx%d subdomain",
			coarseFactor, nx, ny)
		return
	}
	w = &Writer{
		Path:         path,
		NX:           nx,
		NY:           ny,
		Stride:       stride,
		DX:           dx,
		DY:           dy,
		OriginX:      originX,
		OriginY:      originY,
		CoarseFactor: coarseFactor,
	}
	w.bathymetry = w.coarsen(bathymetry)
	return
}

// CoarseNX is the number of output cells in x
func (w *Writer) CoarseNX() int { return w.NX / w.CoarseFactor }

func (w *Writer) CoarseNY() int { return w.NY / w.CoarseFactor }

// coarsen strips the ghost cells of a padded array and averages blocks of
// CoarseFactor by CoarseFactor cells. Cells that do not fill a whole block at
// the high edges are dropped.
func (w *Writer) coarsen(padded []float64) (out []float32) {
	var (
		cf       = w.CoarseFactor
		nxC, nyC = w.CoarseNX(), w.CoarseNY()
		norm     = 1. / float64(cf*cf)
	)
	out = make([]float32, nxC*nyC)
	for jc := 0; jc < nyC; jc++ {
		for ic := 0; ic < nxC; ic++ {
			var sum float64
			for j := jc * cf; j < (jc+1)*cf; j++ {
				row := (j + 1) * w.Stride
				for i := ic * cf; i < (ic+1)*cf; i++ {
					sum += padded[row+i+1]
				}
			}
			out[jc*nxC+ic] = float32(sum * norm)
		}
	}
	return
}

// Store keeps one frame of padded height and momenta until Write
func (w *Writer) Store(simTime float64, frame int, h, hu, hv []float64) {
	w.times = append(w.times, float32(simTime))
	w.frames = append(w.frames, frame)
	w.height = append(w.height, w.coarsen(h))
	w.momentumX = append(w.momentumX, w.coarsen(hu))
	w.momentumY = append(w.momentumY, w.coarsen(hv))
}

func (w *Writer) NumFrames() int { return len(w.times) }

func (w *Writer) coordinates() (x, y []float32) {
	var (
		cf = float64(w.CoarseFactor)
	)
	x = make([]float32, w.CoarseNX())
	for i := range x {
		x[i] = float32(w.OriginX + (float64(i)+0.5)*cf*w.DX)
	}
	y = make([]float32, w.CoarseNY())
	for j := range y {
		y[j] = float32(w.OriginY + (float64(j)+0.5)*cf*w.DY)
	}
	return
}

func flatten(frames [][]float32) (out []float32) {
	for _, f := range frames {
		out = append(out, f...)
	}
	return
}

// Write persists every stored frame, replacing any existing file
func (w *Writer) Write() (err error) {
	var (
		nFrames = len(w.times)
	)
	h := cdf.NewHeader(
		[]string{"x", "y", "time"},
		[]int{w.CoarseNX(), w.CoarseNY(), nFrames})
	h.AddAttribute("", "comment", "shallow water simulation output")
	h.AddAttribute("", "coarse_factor", []int32{int32(w.CoarseFactor)})
	h.AddVariable("x", []string{"x"}, []float32{0})
	h.AddAttribute("x", "units", "meters")
	h.AddAttribute("x", "axis", "X")
	h.AddVariable("y", []string{"y"}, []float32{0})
	h.AddAttribute("y", "units", "meters")
	h.AddAttribute("y", "axis", "Y")
	h.AddVariable("time", []string{"time"}, []float32{0})
	h.AddAttribute("time", "units", "seconds")
	h.AddVariable("frame", []string{"time"}, []int32{0})
	h.AddVariable("bathymetry", []string{"y", "x"}, []float32{0})
	h.AddAttribute("bathymetry", "units", "meters")
	for _, v := range []string{"height", "momentum_x", "momentum_y"} {
		h.AddVariable(v, []string{"time", "y", "x"}, []float32{0})
	}
	h.AddAttribute("height", "units", "meters")
	h.AddAttribute("momentum_x", "units", "meters*kg/s")
	h.AddAttribute("momentum_y", "units", "meters*kg/s")
	h.Define()
	if errs := h.Check(); len(errs) != 0 {
		return fmt.Errorf("netcdf: invalid header for %s: %v", w.Path, errs[0])
	}

	if dir := filepath.Dir(w.Path); dir != "" {
		if err = os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("netcdf: creating output directory: %v", err)
		}
	}
	ff, err := os.Create(w.Path)
	if err != nil {
		return fmt.Errorf("netcdf: creating %s: %v", w.Path, err)
	}
	defer closeFile(ff, &err)
	f, err := cdf.Create(ff, h)
	if err != nil {
		return fmt.Errorf("netcdf: writing header of %s: %v", w.Path, err)
	}

	x, y := w.coordinates()
	frames := make([]int32, nFrames)
	for i, fr := range w.frames {
		frames[i] = int32(fr)
	}
	vars := map[string]interface{}{
		"x":          x,
		"y":          y,
		"bathymetry": w.bathymetry,
	}
	if nFrames != 0 {
		vars["time"] = w.times
		vars["frame"] = frames
		vars["height"] = flatten(w.height)
		vars["momentum_x"] = flatten(w.momentumX)
		vars["momentum_y"] = flatten(w.momentumY)
	}
	for _, v := range h.Variables() {
		data, ok := vars[v]
		if !ok {
			continue
		}
		if err = writeVar(f, v, data); err != nil {
			return fmt.Errorf("netcdf: writing variable %s to %s: %v", v, w.Path, err)
		}
	}
	err = cdf.UpdateNumRecs(ff)
	return
}

// writeVar writes a whole variable. The cdf writer reports io.EOF once it
// reaches the end of the variable, so that is only an error if values were
// left over.
func writeVar(f *cdf.File, v string, data interface{}) (err error) {
	wr := f.Writer(v, nil, nil)
	if wr == nil {
		return fmt.Errorf("no variable %s", v)
	}
	n, err := wr.Write(data)
	if err == io.EOF {
		if n == length(data) {
			return nil
		}
		return fmt.Errorf("wrote %d of %d values: %v", n, length(data), err)
	}
	return
}

func length(data interface{}) int {
	switch d := data.(type) {
	case []float64:
		return len(d)
	case []float32:
		return len(d)
	case []int32:
		return len(d)
	}
	return -1
}

// closeFile closes a file opened for writing, keeping the first error
func closeFile(ff *os.File, err *error) {
	if e := ff.Close(); *err == nil {
		*err = e
	}
}
