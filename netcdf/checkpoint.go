package netcdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ctessum/cdf"
)

// CheckPoint is the complete global state needed to resume a run
type CheckPoint struct {
	NX, NY     int
	XLen, YLen float64
	SimTime    float64
	Frame      int
	// unpadded global arrays, row major in y
	Height, MomentumX, MomentumY, Bathymetry []float64
}

var checkPointVars = []string{"height", "momentum_x", "momentum_y", "bathymetry"}

func (cp *CheckPoint) fields() []*[]float64 {
	return []*[]float64{&cp.Height, &cp.MomentumX, &cp.MomentumY, &cp.Bathymetry}
}

// WriteCheckPoint stores cp in double precision so a resumed run continues
// from exactly the same state
func WriteCheckPoint(path string, cp *CheckPoint) (err error) {
	h := cdf.NewHeader([]string{"x", "y"}, []int{cp.NX, cp.NY})
	h.AddAttribute("", "comment", "shallow water checkpoint")
	h.AddAttribute("", "sim_time", []float64{cp.SimTime})
	h.AddAttribute("", "frame", []int32{int32(cp.Frame)})
	h.AddAttribute("", "x_len", []float64{cp.XLen})
	h.AddAttribute("", "y_len", []float64{cp.YLen})
	for _, v := range checkPointVars {
		h.AddVariable(v, []string{"y", "x"}, []float64{0})
	}
	h.Define()
	if dir := filepath.Dir(path); dir != "" {
		if err = os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("netcdf: creating checkpoint directory: %v", err)
		}
	}
	ff, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("netcdf: %v", err)
	}
	defer closeFile(ff, &err)
	f, err := cdf.Create(ff, h)
	if err != nil {
		return fmt.Errorf("netcdf: writing header of %s: %v", path, err)
	}
	for i, field := range cp.fields() {
		if len(*field) != cp.NX*cp.NY {
			return fmt.Errorf("netcdf: checkpoint %s has %d values, expected %d",
				checkPointVars[i], len(*field), cp.NX*cp.NY)
		}
		if err = writeVar(f, checkPointVars[i], *field); err != nil {
			return fmt.Errorf("netcdf: writing variable %s to %s: %v", checkPointVars[i], path, err)
		}
	}
	return
}

func ReadCheckPoint(path string) (cp *CheckPoint, err error) {
	ff, f, err := open(path)
	if err != nil {
		return
	}
	defer ff.Close()
	lengths := f.Header.Lengths("height")
	if len(lengths) != 2 {
		return nil, fmt.Errorf("netcdf: %s is not a checkpoint", path)
	}
	cp = &CheckPoint{NX: lengths[1], NY: lengths[0]}
	scalars := []struct {
		name string
		dst  *float64
	}{{"sim_time", &cp.SimTime}, {"x_len", &cp.XLen}, {"y_len", &cp.YLen}}
	for _, s := range scalars {
		val, ok := f.Header.GetAttribute("", s.name).([]float64)
		if !ok || len(val) != 1 {
			return nil, fmt.Errorf("netcdf: %s: missing attribute %s", path, s.name)
		}
		*s.dst = val[0]
	}
	frame, ok := f.Header.GetAttribute("", "frame").([]int32)
	if !ok || len(frame) != 1 {
		return nil, fmt.Errorf("netcdf: %s: missing attribute frame", path)
	}
	cp.Frame = int(frame[0])
	for i, field := range cp.fields() {
		if *field, err = readVar(f, checkPointVars[i]); err != nil {
			return nil, fmt.Errorf("netcdf: %s: %v", path, err)
		}
	}
	return
}
