// Package gradcheck compares analytic gradients against central finite
// differences of a scalar loss.
package gradcheck

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Config controls the finite difference step and the acceptance tolerance.
// An element passes when |analytic - numeric| <= AbsTol + RelTol*|numeric|.
type Config struct {
	Eps    float64 // Perturbation applied to each element.
	AbsTol float64
	RelTol float64
}

// DefaultConfig suits float32 convolutions over values in [-1, 1].
func DefaultConfig() Config {
	return Config{
		Eps:    1e-2,
		AbsTol: 2e-3,
		RelTol: 1e-3,
	}
}

// LossFunc evaluates the scalar loss at the current parameter values.
type LossFunc func() (float64, error)

// Result summarises one gradient comparison.
type Result struct {
	Name      string
	Size      int
	MaxAbsErr float64
	MaxRelErr float64
	Worst     int       // Index of the element with the largest absolute error.
	Numeric   []float64 // Finite difference gradient.
	Passed    bool
}

// String returns a one-line summary.
func (r Result) String() string {
	status := "ok"
	if !r.Passed {
		status = "FAIL"
	}
	return fmt.Sprintf("%s[%d]: max_abs=%.3g max_rel=%.3g worst=%d %s",
		r.Name, r.Size, r.MaxAbsErr, r.MaxRelErr, r.Worst, status)
}

// SumLoss returns Σ out accumulated in float64.
func SumLoss(out []float32) float64 {
	return floats.Sum(toFloat64(out))
}

// Numeric returns ∂loss/∂x by central differences. Each element of x is
// perturbed in place and restored before the next one, so x is unchanged on
// return (also on error).
func Numeric(x []float32, loss LossFunc, eps float64) ([]float64, error) {
	grad := make([]float64, len(x))
	for i := range x {
		orig := x[i]

		x[i] = orig + float32(eps)
		plusStep := x[i]
		fPlus, err := loss()
		if err != nil {
			x[i] = orig
			return nil, err
		}

		x[i] = orig - float32(eps)
		minusStep := x[i]
		fMinus, err := loss()
		x[i] = orig
		if err != nil {
			return nil, err
		}

		// Divide by the step actually representable in float32.
		grad[i] = (fPlus - fMinus) / (float64(plusStep) - float64(minusStep))
	}
	return grad, nil
}

// Compare checks an analytic gradient against a numeric one.
func Compare(name string, analytic []float32, numeric []float64, cfg Config) Result {
	if len(analytic) != len(numeric) {
		panic(fmt.Sprintf("gradcheck: %s: analytic has %d elements, numeric %d", name, len(analytic), len(numeric)))
	}

	a := toFloat64(analytic)
	diff := make([]float64, len(a))
	floats.SubTo(diff, a, numeric)

	res := Result{Name: name, Size: len(a), Numeric: numeric, Passed: true}
	if len(a) == 0 {
		return res
	}
	absDiff := make([]float64, len(diff))
	for i, d := range diff {
		absDiff[i] = math.Abs(d)
	}
	res.Worst = floats.MaxIdx(absDiff)
	res.MaxAbsErr = absDiff[res.Worst]

	for i, absErr := range absDiff {
		scale := math.Max(1, math.Max(math.Abs(a[i]), math.Abs(numeric[i])))
		res.MaxRelErr = math.Max(res.MaxRelErr, absErr/scale)
		if absErr > cfg.AbsTol+cfg.RelTol*math.Abs(numeric[i]) {
			res.Passed = false
		}
	}
	return res
}

// Check computes the numeric gradient of loss w.r.t. x and compares it with
// analytic.
func Check(name string, x, analytic []float32, loss LossFunc, cfg Config) (Result, error) {
	numeric, err := Numeric(x, loss, cfg.Eps)
	if err != nil {
		return Result{}, fmt.Errorf("gradcheck %s: %w", name, err)
	}
	return Compare(name, analytic, numeric, cfg), nil
}

func toFloat64(s []float32) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}
