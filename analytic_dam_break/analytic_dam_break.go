package analytic_dam_break

import (
	"fmt"
	"math"

	"github.com/notargets/gotsunami/solvers"
)

// DamBreak is the exact solution of the shallow water Riemann problem over a
// flat wet bottom, with the discontinuity at X0 at time zero
type DamBreak struct {
	HL, HR, UL, UR float64
	X0             float64
	HStar, UStar   float64 // state between the two waves
}

func NewDamBreak(hL, hR, uL, uR, x0 float64) (db *DamBreak) {
	if hL <= 0 || hR <= 0 {
		panic(fmt.Errorf("exact dam break needs a wet bed, have heights %g and %g", hL, hR))
	}
	if 2*(celerity(hL)+celerity(hR)) <= uR-uL {
		panic(fmt.Errorf("initial states create a dry region"))
	}
	db = &DamBreak{HL: hL, HR: hR, UL: uL, UR: uR, X0: x0}
	db.HStar = fzero(db.residual, 0.5*(hL+hR))
	db.UStar = 0.5*(uL+uR) + 0.5*(waveFunc(db.HStar, hR)-waveFunc(db.HStar, hL))
	return
}

func celerity(h float64) float64 { return math.Sqrt(solvers.Gravity * h) }

// waveFunc is the velocity jump across a rarefaction (h <= hK) or a shock
// connecting hK to h
func waveFunc(h, hK float64) float64 {
	if h <= hK {
		return 2 * (celerity(h) - celerity(hK))
	}
	return (h - hK) * math.Sqrt(0.5*solvers.Gravity*(h+hK)/(h*hK))
}

func (db *DamBreak) residual(h float64) float64 {
	return waveFunc(h, db.HL) + waveFunc(h, db.HR) + db.UR - db.UL
}

// fzero finds a root of f with the secant method, keeping the iterate positive
func fzero(f func(h float64) float64, start float64) float64 {
	var (
		tol      = 1.e-12
		hOld     = 0.5 * start
		res, old = f(start), f(hOld)
		h        = start
	)
	for i := 0; math.Abs(res) > tol && i < 100; i++ {
		deriv := (res - old) / (h - hOld)
		if deriv == 0 {
			break
		}
		hNew := h - res/deriv
		if hNew <= 0 {
			hNew = 0.5 * h
		}
		hOld, old = h, res
		h, res = hNew, f(hNew)
	}
	return h
}

// Speeds returns the leftmost and rightmost signal speeds of the solution
func (db *DamBreak) Speeds() (sLeft, sRight float64) {
	var (
		cL, cR = celerity(db.HL), celerity(db.HR)
	)
	if db.HStar > db.HL {
		sLeft = db.UL - cL*math.Sqrt(0.5*db.HStar*(db.HStar+db.HL))/db.HL
	} else {
		sLeft = db.UL - cL
	}
	if db.HStar > db.HR {
		sRight = db.UR + cR*math.Sqrt(0.5*db.HStar*(db.HStar+db.HR))/db.HR
	} else {
		sRight = db.UR + cR
	}
	return
}

// Sample returns height and velocity at position x and time t > 0
func (db *DamBreak) Sample(x, t float64) (h, u float64) {
	var (
		s      = (x - db.X0) / t
		g      = solvers.Gravity
		cL, cR = celerity(db.HL), celerity(db.HR)
		cStar  = celerity(db.HStar)
		sL, sR = db.Speeds()
	)
	if s <= db.UStar {
		switch {
		case s < sL:
			return db.HL, db.UL
		case db.HStar > db.HL, s > db.UStar-cStar:
			return db.HStar, db.UStar
		}
		c := (db.UL + 2*cL - s) / 3
		return c * c / g, (db.UL + 2*cL + 2*s) / 3
	}
	switch {
	case s > sR:
		return db.HR, db.UR
	case db.HStar > db.HR, s < db.UStar+cStar:
		return db.HStar, db.UStar
	}
	c := (-db.UR + 2*cR + s) / 3
	return c * c / g, (db.UR - 2*cR + 2*s) / 3
}
