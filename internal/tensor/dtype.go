// Package tensor provides the buffer handle and shape descriptor consumed by
// the convolution kernels. Kernels accept only contiguous float32 NCHW
// buffers; Float64 exists so callers holding double-precision data are
// rejected with a typed error instead of being reinterpreted.
package tensor

// DataType is the element type of a RawTensor.
type DataType int

// Element types.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the element width in bytes.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	}
	panic("tensor: unknown data type " + dt.String())
}

func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}
	return "unknown"
}
