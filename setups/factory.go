package setups

import (
	"fmt"

	"github.com/notargets/gotsunami/InputParameters"
	"github.com/notargets/gotsunami/netcdf"
)

// New builds the initial condition named by the parameter Setup block.
// Input files are read here so failures surface before any stepping.
func New(ip *InputParameters.InputParameters2D) (in Initial, err error) {
	var (
		st InputParameters.SetupType
		sp = ip.Setup
	)
	if st, err = ip.SetupType(); err != nil {
		return
	}
	switch st {
	case InputParameters.SETUP_DamBreak1D:
		d := DamBreak1D{
			HeightLeft:      sp.HeightLeft,
			HeightRight:     sp.HeightRight,
			MomentumLeft:    sp.MomentumLeft,
			MomentumRight:   sp.MomentumRight,
			BathymetryLeft:  sp.Bathymetry,
			BathymetryRight: sp.Bathymetry,
			Location:        sp.Location,
		}
		if d.HeightLeft == 0 && d.HeightRight == 0 {
			d.HeightLeft, d.HeightRight = 10, 5
		}
		if d.Location == 0 {
			d.Location = 0.5 * ip.XLen
		}
		in.Setup = d
	case InputParameters.SETUP_DamBreak2D:
		d := DamBreak2D{
			CenterX:       sp.CenterX,
			CenterY:       sp.CenterY,
			Radius:        sp.Radius,
			HeightInside:  sp.HeightInside,
			HeightOutside: sp.HeightOutside,
			Bathymetry0:   sp.Bathymetry,
		}
		if d.CenterX == 0 && d.CenterY == 0 {
			d.CenterX, d.CenterY = 0.5*ip.XLen, 0.5*ip.YLen
		}
		if d.Radius == 0 {
			d.Radius = 0.1 * min(ip.XLen, ip.YLen)
		}
		if d.HeightInside == 0 && d.HeightOutside == 0 {
			d.HeightInside, d.HeightOutside = 10, 5
		}
		in.Setup = d
	case InputParameters.SETUP_ArtificialTsunami2D:
		in.Setup = ArtificialTsunami2D{XLen: ip.XLen, YLen: ip.YLen}
	case InputParameters.SETUP_TsunamiEvent2D:
		te := &TsunamiEvent2D{
			OffsetX: *sp.EpicenterOffsetX,
			OffsetY: *sp.EpicenterOffsetY,
		}
		if te.Bathy, err = netcdf.ReadGrid(sp.BathymetryFile); err != nil {
			return in, fmt.Errorf("reading bathymetry: %w", err)
		}
		if sp.DisplacementFile != "" {
			if te.Displacement, err = netcdf.ReadGrid(sp.DisplacementFile); err != nil {
				return in, fmt.Errorf("reading displacement: %w", err)
			}
		}
		in.Setup = te
	case InputParameters.SETUP_CheckPoint:
		var cp *netcdf.CheckPoint
		if cp, err = netcdf.ReadCheckPoint(sp.CheckPointFile); err != nil {
			return in, fmt.Errorf("reading checkpoint: %w", err)
		}
		if cp.NX != ip.NX || cp.NY != ip.NY {
			return in, fmt.Errorf("checkpoint grid %dx%d does not match configured grid %dx%d",
				cp.NX, cp.NY, ip.NX, ip.NY)
		}
		c := NewCheckPoint(cp)
		in.Setup, in.Resume = c, c.Resume()
	}
	return
}
