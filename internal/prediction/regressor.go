package prediction

// Regressor is a trainable multi-output model. Train replaces whatever the
// regressor learned before. Predict must be safe for concurrent use once
// Train has returned.
type Regressor interface {
	Train(features [][]float64, targets [][]float64) error
	Predict(features []float64) ([]float64, error)
}

// RegressorFactory builds an untrained regressor for each full retrain.
type RegressorFactory func() Regressor
