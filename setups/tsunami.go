package setups

import (
	"math"
	"sort"

	"github.com/notargets/gotsunami/netcdf"
)

// Delta keeps coastal cells from falling dry: ocean depth is at least Delta
// and land height is at least Delta
const Delta = 20.

// coastal turns input bathymetry and vertical displacement into the water
// height and bathymetry seen by the solver
func coastal(bIn, d float64) (h, b float64) {
	if bIn < 0 {
		return math.Max(-bIn, Delta), math.Min(bIn, -Delta) + d
	}
	return 0, math.Max(bIn, Delta) + d
}

// ArtificialTsunami2D is a flat ocean of depth 100 with a sinusoidal seafloor
// displacement of 1000 by 1000 meters in the middle of the domain
type ArtificialTsunami2D struct {
	XLen, YLen float64
}

func (a ArtificialTsunami2D) displacement(x, y float64) float64 {
	var (
		xr = x - 0.5*a.XLen
		yr = y - 0.5*a.YLen
	)
	if math.Abs(xr) > 500 || math.Abs(yr) > 500 {
		return 0
	}
	return 5 * math.Sin((xr/500+1)*math.Pi) * (-(yr/500)*(yr/500) + 1)
}

func (a ArtificialTsunami2D) Height(x, y float64) float64 {
	h, _ := coastal(-100, 0)
	return h
}

func (a ArtificialTsunami2D) MomentumX(_, _ float64) float64 { return 0 }

func (a ArtificialTsunami2D) MomentumY(_, _ float64) float64 { return 0 }

func (a ArtificialTsunami2D) Bathymetry(x, y float64) float64 {
	_, b := coastal(-100, a.displacement(x, y))
	return b
}

// TsunamiEvent2D samples gridded bathymetry and seafloor displacement. The
// simulation origin is moved by the epicenter offsets into data coordinates.
type TsunamiEvent2D struct {
	Bathy, Displacement *netcdf.Grid
	OffsetX, OffsetY    float64
}

// nearest returns the index of the coordinate closest to v in ascending coords
func nearest(coords []float64, v float64) int {
	i := sort.SearchFloat64s(coords, v)
	switch {
	case i == 0:
		return 0
	case i == len(coords):
		return len(coords) - 1
	case v-coords[i-1] <= coords[i]-v:
		return i - 1
	}
	return i
}

func inside(coords []float64, v float64) bool {
	return len(coords) != 0 && v >= coords[0] && v <= coords[len(coords)-1]
}

func (te *TsunamiEvent2D) sample(x, y float64) (h, b float64) {
	var (
		xd  = x + te.OffsetX
		yd  = y + te.OffsetY
		g   = te.Bathy
		bIn = g.At(nearest(g.X, xd), nearest(g.Y, yd))
		d   float64
	)
	if dg := te.Displacement; dg != nil && inside(dg.X, xd) && inside(dg.Y, yd) {
		d = dg.At(nearest(dg.X, xd), nearest(dg.Y, yd))
	}
	return coastal(bIn, d)
}

func (te *TsunamiEvent2D) Height(x, y float64) float64 {
	h, _ := te.sample(x, y)
	return h
}

func (te *TsunamiEvent2D) MomentumX(_, _ float64) float64 { return 0 }

func (te *TsunamiEvent2D) MomentumY(_, _ float64) float64 { return 0 }

func (te *TsunamiEvent2D) Bathymetry(x, y float64) float64 {
	_, b := te.sample(x, y)
	return b
}

// CheckPoint replays a stored global state. Coordinates map to the cell whose
// lower left corner is nearest, using the stored cell size.
type CheckPoint struct {
	cp     *netcdf.CheckPoint
	dx, dy float64
}

func NewCheckPoint(cp *netcdf.CheckPoint) *CheckPoint {
	return &CheckPoint{
		cp: cp,
		dx: cp.XLen / float64(cp.NX),
		dy: cp.YLen / float64(cp.NY),
	}
}

func (c *CheckPoint) index(x, y float64) int {
	ix := int(math.Floor(x/c.dx + 0.5))
	iy := int(math.Floor(y/c.dy + 0.5))
	ix = min(max(ix, 0), c.cp.NX-1)
	iy = min(max(iy, 0), c.cp.NY-1)
	return iy*c.cp.NX + ix
}

func (c *CheckPoint) Height(x, y float64) float64 { return c.cp.Height[c.index(x, y)] }

func (c *CheckPoint) MomentumX(x, y float64) float64 { return c.cp.MomentumX[c.index(x, y)] }

func (c *CheckPoint) MomentumY(x, y float64) float64 { return c.cp.MomentumY[c.index(x, y)] }

func (c *CheckPoint) Bathymetry(x, y float64) float64 { return c.cp.Bathymetry[c.index(x, y)] }

func (c *CheckPoint) Resume() *Resume {
	return &Resume{SimTime: c.cp.SimTime, Frame: c.cp.Frame}
}
