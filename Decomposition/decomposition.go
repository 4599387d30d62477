package Decomposition

import (
	"fmt"
	"math"
)

// GridData holds the global and per-rank cell counts. Local counts never
// include the ghost layer.
type GridData struct {
	GlobalNX, GlobalNY int
	LocalNX, LocalNY   int
}

// PaddedSize is the length of one padded local array
func (gd GridData) PaddedSize() int {
	return (gd.LocalNX + 2) * (gd.LocalNY + 2)
}

type DecompositionError struct {
	WorldSize, XDim, YDim int
	GlobalNX, GlobalNY    int
}

func (e *DecompositionError) Error() string {
	return fmt.Sprintf("cannot split a %dx%d grid over %d processes arranged %dx%d: "+
		"grid dimensions must be divisible by the process dimensions",
		e.GlobalNX, e.GlobalNY, e.WorldSize, e.XDim, e.YDim)
}

// DimsCreate factors worldSize into two dimensions as close to each other as
// possible, with xDim >= yDim
func DimsCreate(worldSize int) (xDim, yDim int) {
	if worldSize < 1 {
		panic(fmt.Errorf("world size must be positive, have %d", worldSize))
	}
	yDim = int(math.Sqrt(float64(worldSize)))
	for worldSize%yDim != 0 {
		yDim--
	}
	xDim = worldSize / yDim
	return
}

// Decompose splits the global grid over worldSize ranks. An uneven split is
// fatal for the whole world.
func Decompose(worldSize, globalNX, globalNY int) (gd GridData, xDim, yDim int, err error) {
	xDim, yDim = DimsCreate(worldSize)
	if globalNX%xDim != 0 || globalNY%yDim != 0 {
		err = &DecompositionError{
			WorldSize: worldSize, XDim: xDim, YDim: yDim,
			GlobalNX: globalNX, GlobalNY: globalNY,
		}
		return
	}
	gd = GridData{
		GlobalNX: globalNX,
		GlobalNY: globalNY,
		LocalNX:  globalNX / xDim,
		LocalNY:  globalNY / yDim,
	}
	return
}
