package prediction

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"schedsim/config"
	"schedsim/internal/core"
	"schedsim/internal/logger"
	"schedsim/internal/metrics"
)

type Prediction struct {
	Burst    float64 `json:"burst"`
	Priority float64 `json:"priority"`
	Source   string  `json:"source"`
}

// TrainingSample is a confirmed burst/priority pair for a feature vector.
type TrainingSample struct {
	Features core.FeatureVector
	Burst    float64
	Priority float64
}

type trainedModel struct {
	regressor Regressor
	samples   int
}

// Cache holds the accumulated training set and the model trained on it.
// Record serialises append and retrain; Predict reads an immutable model
// snapshot and never waits for a retrain.
type Cache struct {
	mu         sync.Mutex
	samples    []TrainingSample
	model      atomic.Pointer[trainedModel]
	factory    RegressorFactory
	minSamples int
}

type Option func(*Cache)

func WithRegressorFactory(factory RegressorFactory) Option {
	return func(c *Cache) {
		c.factory = factory
	}
}

// WithMinTrainingSamples delays the first retrain until n samples are held.
func WithMinTrainingSamples(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.minSamples = n
		}
	}
}

func NewCache(opts ...Option) *Cache {
	c := &Cache{
		samples:    make([]TrainingSample, 0),
		factory:    func() Regressor { return NewRidgeRegressor(1.0) },
		minSamples: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	defaultOnce  sync.Once
	defaultCache *Cache
)

// Default returns the process-wide cache, created on first use from the
// scheduler config. It lives as long as the process.
func Default() *Cache {
	defaultOnce.Do(func() {
		cfg := config.GetSchedulerConfig()
		lambda := cfg.RidgeLambda
		defaultCache = NewCache(
			WithMinTrainingSamples(cfg.MinTrainingSamples),
			WithRegressorFactory(func() Regressor { return NewRidgeRegressor(lambda) }),
		)
	})
	return defaultCache
}

// Predict estimates burst and priority. Until a model has been trained, or
// whenever the model cannot answer, it returns HeuristicPrediction.
func (c *Cache) Predict(features core.FeatureVector) Prediction {
	model := c.model.Load()
	if model == nil {
		metrics.PredictionSource.WithLabelValues(SourceHeuristic).Inc()
		return HeuristicPrediction(features)
	}

	out, err := model.regressor.Predict(features.Values())
	if err == nil && (len(out) < 2 || !core.Finite(out[0]) || !core.Finite(out[1])) {
		err = fmt.Errorf("unusable model output %v", out)
	}
	if err != nil {
		logger.Warn("model prediction failed, using heuristic",
			zap.Error(fmt.Errorf("%w: %v", core.ErrModelFailure, err)))
		metrics.PredictionSource.WithLabelValues(SourceHeuristic).Inc()
		return HeuristicPrediction(features)
	}

	metrics.PredictionSource.WithLabelValues(SourceModel).Inc()
	return Prediction{
		Burst:    math.Max(1, out[0]),
		Priority: core.ClampPriority(out[1]),
		Source:   SourceModel,
	}
}

// Record adds process as ground truth for features and retrains.
func (c *Cache) Record(process core.ProcessSpec, features core.FeatureVector) error {
	return c.RecordSample(TrainingSample{
		Features: features,
		Burst:    float64(process.BurstTime),
		Priority: float64(process.Priority),
	})
}

// RecordSample appends sample and retrains a fresh regressor over the whole
// training set. A sample with a non-finite or non-positive burst is rejected
// with ErrInvalidInput and not stored. A failed retrain returns
// ErrModelFailure; the sample is kept and the previous model stays in use.
func (c *Cache) RecordSample(sample TrainingSample) error {
	if !core.Finite(sample.Burst) || sample.Burst <= 0 {
		return fmt.Errorf("%w: training burst must be positive and finite, got %v", core.ErrInvalidInput, sample.Burst)
	}
	if !core.Finite(sample.Priority) {
		return fmt.Errorf("%w: training priority must be finite, got %v", core.ErrInvalidInput, sample.Priority)
	}
	if err := sample.Features.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.samples = append(c.samples, sample)
	metrics.TrainingSamples.Set(float64(len(c.samples)))
	if len(c.samples) < c.minSamples {
		return nil
	}

	features := make([][]float64, 0, len(c.samples))
	targets := make([][]float64, 0, len(c.samples))
	for _, s := range c.samples {
		features = append(features, s.Features.Values())
		targets = append(targets, []float64{s.Burst, s.Priority})
	}

	regressor := c.factory()
	if err := regressor.Train(features, targets); err != nil {
		metrics.ModelRetrains.WithLabelValues("failure").Inc()
		return fmt.Errorf("%w: retrain over %d samples: %v", core.ErrModelFailure, len(c.samples), err)
	}
	c.model.Store(&trainedModel{regressor: regressor, samples: len(c.samples)})
	metrics.ModelRetrains.WithLabelValues("success").Inc()
	logger.Debug("retrained prediction model", zap.Int("samples", len(c.samples)))
	return nil
}

func (c *Cache) Trained() bool {
	return c.model.Load() != nil
}

func (c *Cache) Samples() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.samples)
}
