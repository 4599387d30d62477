package solvers

import (
	"fmt"
	"strings"
)

// Gravity is the standard gravitational acceleration used by every solver and
// by the time step computation
const Gravity = 9.80665

// Solver computes the net-updates for a single interface between a left and a
// right cell. netL is subtracted from the left cell, netR from the right cell,
// both after scaling by dt/dx. Element 0 is height, element 1 is momentum.
type Solver interface {
	NetUpdates(hL, hR, huL, huR, bL, bR float64) (netL, netR [2]float64)
}

type SolverType uint8

const (
	SOLVER_FWave SolverType = iota
	SOLVER_Roe
)

var (
	SolverNames = map[string]SolverType{
		"fwave":  SOLVER_FWave,
		"f-wave": SOLVER_FWave,
		"roe":    SOLVER_Roe,
	}
	SolverPrintNames = []string{"F-Wave", "Roe"}
)

func (st SolverType) Print() (txt string) {
	txt = SolverPrintNames[st]
	return
}

func NewSolverType(label string) (st SolverType) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if st, ok = SolverNames[label]; !ok {
		err = fmt.Errorf("unable to use solver named %s", label)
		panic(err)
	}
	return
}

func NewSolver(st SolverType) Solver {
	switch st {
	case SOLVER_Roe:
		return Roe{}
	case SOLVER_FWave:
		return FWave{}
	default:
		panic(fmt.Errorf("unknown solver type %d", st))
	}
}
