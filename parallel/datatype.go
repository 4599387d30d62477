package parallel

import "fmt"

// Datatype describes a strided selection of a flat []float64, following the
// MPI vector layout: Count blocks of BlockLength consecutive elements, with
// block starts Stride elements apart.
type Datatype struct {
	Count, BlockLength, Stride int
}

func Contiguous(n int) Datatype {
	return Datatype{Count: 1, BlockLength: n, Stride: n}
}

func Vector(count, blockLength, stride int) Datatype {
	if count < 0 || blockLength < 0 || stride < blockLength {
		panic(fmt.Errorf("invalid vector layout: count %d, block length %d, stride %d",
			count, blockLength, stride))
	}
	return Datatype{Count: count, BlockLength: blockLength, Stride: stride}
}

// Size is the number of elements selected
func (dt Datatype) Size() int {
	return dt.Count * dt.BlockLength
}

// Extent is the span of memory touched, from the first to the last element
func (dt Datatype) Extent() int {
	if dt.Count == 0 {
		return 0
	}
	return (dt.Count-1)*dt.Stride + dt.BlockLength
}

func (dt Datatype) check(buf []float64, offset int) (err error) {
	if offset < 0 || offset+dt.Extent() > len(buf) {
		err = fmt.Errorf("datatype %+v at offset %d exceeds buffer of length %d",
			dt, offset, len(buf))
	}
	return
}

// Pack copies the selected elements of buf starting at offset into a new
// contiguous slice
func (dt Datatype) Pack(buf []float64, offset int) (packed []float64) {
	packed = make([]float64, dt.Size())
	var ii int
	for n := 0; n < dt.Count; n++ {
		start := offset + n*dt.Stride
		copy(packed[ii:ii+dt.BlockLength], buf[start:start+dt.BlockLength])
		ii += dt.BlockLength
	}
	return
}

// Unpack scatters the contiguous data into buf through the datatype layout
func (dt Datatype) Unpack(buf []float64, offset int, data []float64) {
	var ii int
	for n := 0; n < dt.Count; n++ {
		start := offset + n*dt.Stride
		copy(buf[start:start+dt.BlockLength], data[ii:ii+dt.BlockLength])
		ii += dt.BlockLength
	}
}
