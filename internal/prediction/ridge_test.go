package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRidgeRegressor_FitsLinearData(t *testing.T) {
	r := NewRidgeRegressor(1e-6)
	features := [][]float64{{0, 1}, {1, 0}, {2, 2}, {3, 1}, {4, 5}}
	targets := make([][]float64, 0, len(features))
	for _, f := range features {
		targets = append(targets, []float64{2*f[0] + 3*f[1] + 1, f[0] - f[1]})
	}
	require.NoError(t, r.Train(features, targets))

	out, err := r.Predict([]float64{10, 2})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.InDelta(t, 27.0, out[0], 1e-3)
	assert.InDelta(t, 8.0, out[1], 1e-3)
}

func TestRidgeRegressor_SingleSample(t *testing.T) {
	r := NewRidgeRegressor(1)
	require.NoError(t, r.Train([][]float64{{0.5, 256, 10, 0.5, 0.5, 30}}, [][]float64{{12, 3}}))

	out, err := r.Predict([]float64{0.5, 256, 10, 0.5, 0.5, 30})
	require.NoError(t, err)
	assert.InDelta(t, 12.0, out[0], 0.5)
	assert.InDelta(t, 3.0, out[1], 0.5)
}

func TestRidgeRegressor_Errors(t *testing.T) {
	r := NewRidgeRegressor(1)

	_, err := r.Predict([]float64{1})
	assert.Error(t, err, "untrained")

	assert.Error(t, r.Train(nil, nil))
	assert.Error(t, r.Train([][]float64{{1}}, [][]float64{{1}, {2}}))
	assert.Error(t, r.Train([][]float64{{1, 2}, {1}}, [][]float64{{1}, {2}}))
	assert.Error(t, NewRidgeRegressor(0).Train([][]float64{{1}}, [][]float64{{1}}))

	require.NoError(t, r.Train([][]float64{{1, 2}}, [][]float64{{1}}))
	_, err = r.Predict([]float64{1, 2, 3})
	assert.Error(t, err, "dimension mismatch")
}
