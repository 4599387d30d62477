package utils

import (
	"fmt"
	"strings"
)

// BCType is the condition applied on a domain edge that has no neighboring
// subdomain
type BCType uint8

const (
	BCOutflow    BCType = iota // ghost cells copy the adjacent interior cell
	BCReflecting               // solid wall, normal momentum is negated
)

func (bc BCType) String() string {
	switch bc {
	case BCOutflow:
		return "Outflow"
	case BCReflecting:
		return "Reflecting"
	}
	return "Unknown"
}

// BCNameMap maps lowercase names to BCType
var BCNameMap = map[string]BCType{
	"outflow":    BCOutflow,
	"outlet":     BCOutflow,
	"open":       BCOutflow,
	"reflecting": BCReflecting,
	"wall":       BCReflecting,
	"slip_wall":  BCReflecting,
}

// ParseBCName converts a boundary condition name, case-insensitive. An empty
// name means outflow.
func ParseBCName(name string) (bc BCType, err error) {
	var (
		ok        bool
		lowerName = strings.ToLower(strings.TrimSpace(name))
	)
	if lowerName == "" {
		return BCOutflow, nil
	}
	if bc, ok = BCNameMap[lowerName]; !ok {
		err = fmt.Errorf("unknown boundary condition %q", name)
	}
	return
}

// Boundaries holds the condition of each edge of the global domain. Top is
// the y = 0 edge.
type Boundaries struct {
	Left, Right, Top, Bottom BCType
}

func AllOutflow() Boundaries {
	return Boundaries{BCOutflow, BCOutflow, BCOutflow, BCOutflow}
}

func AllReflecting() Boundaries {
	return Boundaries{BCReflecting, BCReflecting, BCReflecting, BCReflecting}
}

func (b Boundaries) String() string {
	return fmt.Sprintf("Left: %s, Right: %s, Top: %s, Bottom: %s",
		b.Left, b.Right, b.Top, b.Bottom)
}
