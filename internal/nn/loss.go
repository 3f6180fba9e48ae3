package nn

import (
	"fmt"

	"github.com/born-ml/conv2d/internal/tensor"
)

// MSELoss computes Mean Squared Error loss and its gradient.
//
//	Loss = mean((predictions - targets)²)
//	∂Loss/∂predictions = 2 * (predictions - targets) / n
//
// Example:
//
//	loss, grad, err := nn.MSELoss(output, targets)
//	gradInput, err := conv.Backward(grad)
func MSELoss(predictions, targets *tensor.RawTensor) (float64, *tensor.RawTensor, error) {
	if !predictions.Shape().Equal(targets.Shape()) {
		return 0, nil, fmt.Errorf("mse loss: predictions %v and targets %v must have the same shape",
			predictions.Shape(), targets.Shape())
	}

	grad, err := tensor.NewRaw(predictions.Shape(), tensor.Float32, predictions.Device())
	if err != nil {
		return 0, nil, fmt.Errorf("mse loss: %w", err)
	}

	pred, tgt, g := predictions.AsFloat32(), targets.AsFloat32(), grad.AsFloat32()
	n := float64(len(pred))

	var sum float64
	for i := range pred {
		diff := float64(pred[i]) - float64(tgt[i])
		sum += diff * diff
		g[i] = float32(2 * diff / n)
	}
	return sum / n, grad, nil
}
