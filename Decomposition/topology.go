package Decomposition

import "fmt"

type Direction uint8

const (
	Left  Direction = iota // toward x = 0
	Right                  // toward x = localNX+1
	Up                     // toward y = 0
	Down                   // toward y = localNY+1
)

var DirectionPrintNames = []string{"Left", "Right", "Up", "Down"}

func (d Direction) Print() (txt string) {
	txt = DirectionPrintNames[d]
	return
}

// Opposite is the direction a neighbor uses to refer back to this rank
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	default:
		return Up
	}
}

// Neighbor is an optional rank, present only when the subdomain has an
// adjacent subdomain in that direction
type Neighbor struct {
	rank    int
	present bool
}

var NoNeighbor = Neighbor{}

func NeighborRank(rank int) Neighbor {
	return Neighbor{rank: rank, present: true}
}

func (n Neighbor) Rank() (rank int, ok bool) {
	return n.rank, n.present
}

func (n Neighbor) Exists() bool { return n.present }

func (n Neighbor) String() string {
	if !n.present {
		return "none"
	}
	return fmt.Sprintf("%d", n.rank)
}

// Topology places one rank on a non-periodic xDim by yDim cartesian process
// grid. Ranks are numbered row-major in (cx, cy).
type Topology struct {
	Rank, Size int
	XDim, YDim int
	Coords     [2]int
	Neighbors  [4]Neighbor
}

func BuildTopology(rank, xDim, yDim int) (tp Topology) {
	if rank < 0 || rank >= xDim*yDim {
		panic(fmt.Errorf("rank %d outside of %dx%d process grid", rank, xDim, yDim))
	}
	tp = Topology{
		Rank: rank,
		Size: xDim * yDim,
		XDim: xDim,
		YDim: yDim,
	}
	cx, cy := rank/yDim, rank%yDim
	tp.Coords = [2]int{cx, cy}
	tp.Neighbors[Left] = tp.neighborAt(cx-1, cy)
	tp.Neighbors[Right] = tp.neighborAt(cx+1, cy)
	tp.Neighbors[Up] = tp.neighborAt(cx, cy-1)
	tp.Neighbors[Down] = tp.neighborAt(cx, cy+1)
	return
}

// Standalone is the topology of a single rank without neighbors
func Standalone() Topology {
	return BuildTopology(0, 1, 1)
}

func (tp Topology) RankOf(cx, cy int) int {
	return cx*tp.YDim + cy
}

func (tp Topology) neighborAt(cx, cy int) Neighbor {
	if cx < 0 || cx >= tp.XDim || cy < 0 || cy >= tp.YDim {
		return NoNeighbor
	}
	return NeighborRank(tp.RankOf(cx, cy))
}

func (tp Topology) Neighbor(d Direction) Neighbor {
	return tp.Neighbors[d]
}

// Offset is the global cell index of the first interior cell of this rank
func (tp Topology) Offset(gd GridData) (offsetX, offsetY int) {
	offsetX = tp.Coords[0] * gd.LocalNX
	offsetY = tp.Coords[1] * gd.LocalNY
	return
}

func (tp Topology) Print() {
	fmt.Printf("Rank %d of %d at (%d,%d) in %dx%d grid, neighbors L:%s R:%s U:%s D:%s\n",
		tp.Rank, tp.Size, tp.Coords[0], tp.Coords[1], tp.XDim, tp.YDim,
		tp.Neighbors[Left], tp.Neighbors[Right], tp.Neighbors[Up], tp.Neighbors[Down])
}
