package setups

import "math"

// DamBreak1D separates two water columns at Location along x
type DamBreak1D struct {
	HeightLeft, HeightRight     float64
	MomentumLeft, MomentumRight float64
	BathymetryLeft              float64
	BathymetryRight             float64
	Location                    float64
}

func (d DamBreak1D) Height(x, _ float64) float64 {
	if x < d.Location {
		return d.HeightLeft
	}
	return d.HeightRight
}

func (d DamBreak1D) MomentumX(x, _ float64) float64 {
	if x < d.Location {
		return d.MomentumLeft
	}
	return d.MomentumRight
}

func (d DamBreak1D) MomentumY(_, _ float64) float64 { return 0 }

func (d DamBreak1D) Bathymetry(x, _ float64) float64 {
	if x < d.Location {
		return d.BathymetryLeft
	}
	return d.BathymetryRight
}

// DamBreak2D is a cylindrical water column that collapses in still water
type DamBreak2D struct {
	CenterX, CenterY float64
	Radius           float64
	HeightInside     float64
	HeightOutside    float64
	Bathymetry0      float64
}

func (d DamBreak2D) Height(x, y float64) float64 {
	if math.Hypot(x-d.CenterX, y-d.CenterY) < d.Radius {
		return d.HeightInside
	}
	return d.HeightOutside
}

func (d DamBreak2D) MomentumX(_, _ float64) float64 { return 0 }

func (d DamBreak2D) MomentumY(_, _ float64) float64 { return 0 }

func (d DamBreak2D) Bathymetry(_, _ float64) float64 { return d.Bathymetry0 }
