package setups

// Setup gives the initial state as a function of physical coordinates
type Setup interface {
	Height(x, y float64) float64
	MomentumX(x, y float64) float64
	MomentumY(x, y float64) float64
	Bathymetry(x, y float64) float64
}

// Resume carries the clock of a run restarted from a checkpoint
type Resume struct {
	SimTime float64
	Frame   int
}

// Initial is the initial condition of a run. Resume is nil for a fresh start.
type Initial struct {
	Setup  Setup
	Resume *Resume
}

func (in Initial) StartTime() float64 {
	if in.Resume == nil {
		return 0
	}
	return in.Resume.SimTime
}

func (in Initial) StartFrame() int {
	if in.Resume == nil {
		return 0
	}
	return in.Resume.Frame
}
