package Decomposition

import "github.com/notargets/gotsunami/parallel"

// ExchangeDescriptors are the strided layouts used to move parts of a padded
// local array of (localNX+2)*(localNY+2) values
type ExchangeDescriptors struct {
	Column   parallel.Datatype // localNY cells, one per row
	Row      parallel.Datatype // localNX contiguous cells
	Subgrid  parallel.Datatype // the whole padded array
	Interior parallel.Datatype // every non-ghost cell
}

func BuildExchangeDescriptors(localNX, localNY int) ExchangeDescriptors {
	var (
		stride = localNX + 2
	)
	return ExchangeDescriptors{
		Column:   parallel.Vector(localNY, 1, stride),
		Row:      parallel.Contiguous(localNX),
		Subgrid:  parallel.Contiguous(stride * (localNY + 2)),
		Interior: parallel.Vector(localNY, localNX, stride),
	}
}

// GlobalBlock is the layout of one rank's interior inside a dense unpadded
// global array of globalNX columns
func GlobalBlock(gd GridData) parallel.Datatype {
	return parallel.Vector(gd.LocalNY, gd.LocalNX, gd.GlobalNX)
}
