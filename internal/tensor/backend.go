package tensor

// Backend defines the convolution entry points a compute backend exposes.
//
// Implementations:
//   - CPU: pure Go direct convolution on a bounded goroutine pool
type Backend interface {
	// Name returns the backend name.
	Name() string

	// Device returns the device the backend accepts buffers from.
	Device() Device

	// Conv2D computes the cross-correlation of input [N,C,H,W] with
	// weight [K,C,R,S] and returns a freshly allocated [N,K,Oh,Ow] output.
	Conv2D(input, weight *RawTensor, stride, padding [2]int) (*RawTensor, error)

	// Conv2DBackward returns the gradients w.r.t. input and weight given the
	// gradient of the forward output.
	Conv2DBackward(input, gradOutput, weight *RawTensor, stride, padding [2]int) (*RawTensor, *RawTensor, error)
}
