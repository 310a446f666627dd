package prediction

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// RidgeRegressor is a linear least-squares model with an L2 penalty on every
// weight except the intercept. The penalty keeps the normal equations
// solvable even with fewer samples than features.
type RidgeRegressor struct {
	lambda  float64
	inputs  int
	weights *mat.Dense // (inputs+1) x outputs, row 0 is the intercept
}

func NewRidgeRegressor(lambda float64) *RidgeRegressor {
	return &RidgeRegressor{lambda: lambda}
}

func (r *RidgeRegressor) Train(features [][]float64, targets [][]float64) error {
	if len(features) == 0 {
		return errors.New("no training samples")
	}
	if len(features) != len(targets) {
		return fmt.Errorf("%d feature rows but %d target rows", len(features), len(targets))
	}
	if r.lambda <= 0 {
		return fmt.Errorf("ridge lambda must be positive, got %v", r.lambda)
	}

	inputs, outputs := len(features[0]), len(targets[0])
	if inputs == 0 || outputs == 0 {
		return errors.New("empty feature or target row")
	}

	x := mat.NewDense(len(features), inputs+1, nil)
	y := mat.NewDense(len(targets), outputs, nil)
	for i := range features {
		if len(features[i]) != inputs {
			return fmt.Errorf("sample %d has %d features, expected %d", i, len(features[i]), inputs)
		}
		if len(targets[i]) != outputs {
			return fmt.Errorf("sample %d has %d targets, expected %d", i, len(targets[i]), outputs)
		}
		x.Set(i, 0, 1)
		for j, v := range features[i] {
			x.Set(i, j+1, v)
		}
		y.SetRow(i, targets[i])
	}

	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	for j := 1; j <= inputs; j++ {
		xtx.Set(j, j, xtx.At(j, j)+r.lambda)
	}
	var xty mat.Dense
	xty.Mul(x.T(), y)

	var weights mat.Dense
	if err := weights.Solve(&xtx, &xty); err != nil {
		return fmt.Errorf("solve normal equations: %w", err)
	}

	r.inputs = inputs
	r.weights = &weights
	return nil
}

func (r *RidgeRegressor) Predict(features []float64) ([]float64, error) {
	if r.weights == nil {
		return nil, errors.New("regressor is not trained")
	}
	if len(features) != r.inputs {
		return nil, fmt.Errorf("got %d features, model was trained on %d", len(features), r.inputs)
	}

	_, outputs := r.weights.Dims()
	out := make([]float64, outputs)
	for k := 0; k < outputs; k++ {
		v := r.weights.At(0, k)
		for j, f := range features {
			v += f * r.weights.At(j+1, k)
		}
		out[k] = v
	}
	return out, nil
}
