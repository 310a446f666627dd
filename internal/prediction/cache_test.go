package prediction

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedsim/internal/core"
	"schedsim/internal/metrics"
)

func sampleFeatures() core.FeatureVector {
	return core.FeatureVector{
		IoBound:             0.2,
		MemoryFootprint:     768,
		HistoricalWait:      25,
		CpuIntensity:        0.92,
		DeadlineFlexibility: 0.2,
		EstimatedBurst:      55,
	}
}

type failingRegressor struct{}

func (failingRegressor) Train([][]float64, [][]float64) error {
	return errors.New("singular")
}

func (failingRegressor) Predict([]float64) ([]float64, error) {
	return nil, errors.New("untrained")
}

// constantRegressor trains successfully and answers with out.
type constantRegressor struct {
	out []float64
	err error
}

func (c *constantRegressor) Train([][]float64, [][]float64) error { return nil }

func (c *constantRegressor) Predict([]float64) ([]float64, error) { return c.out, c.err }

func TestHeuristicPrediction(t *testing.T) {
	p := HeuristicPrediction(sampleFeatures())
	assert.Equal(t, SourceHeuristic, p.Source)
	assert.Equal(t, 55.0, p.Burst)
	// urgency = 0.6*0.92 + 0.4*0.8 = 0.872
	assert.InDelta(t, 5-4*0.872, p.Priority, 1e-9)

	relaxed := HeuristicPrediction(core.FeatureVector{CpuIntensity: 0, DeadlineFlexibility: 1, EstimatedBurst: 10, MemoryFootprint: 64})
	assert.Equal(t, 5.0, relaxed.Priority)
	urgent := HeuristicPrediction(core.FeatureVector{CpuIntensity: 1, DeadlineFlexibility: 0, EstimatedBurst: 10, MemoryFootprint: 64})
	assert.Equal(t, 1.0, urgent.Priority)
}

func TestCache_ColdStartUsesHeuristic(t *testing.T) {
	c := NewCache()
	assert.False(t, c.Trained())
	assert.Equal(t, HeuristicPrediction(sampleFeatures()), c.Predict(sampleFeatures()))
}

func TestCache_RecordTrainsModel(t *testing.T) {
	c := NewCache()
	process := core.ProcessSpec{Id: "P1", Name: "encoder", BurstTime: 52, Priority: 2}
	require.NoError(t, c.Record(process, sampleFeatures()))

	assert.True(t, c.Trained())
	assert.Equal(t, 1, c.Samples())

	p := c.Predict(sampleFeatures())
	assert.Equal(t, SourceModel, p.Source)
	assert.InDelta(t, 52.0, p.Burst, 1.0)
	assert.InDelta(t, 2.0, p.Priority, 0.5)
}

func TestCache_MinTrainingSamples(t *testing.T) {
	c := NewCache(WithMinTrainingSamples(2))
	process := core.ProcessSpec{Id: "P1", BurstTime: 10, Priority: 3}

	require.NoError(t, c.Record(process, sampleFeatures()))
	assert.False(t, c.Trained())
	assert.Equal(t, SourceHeuristic, c.Predict(sampleFeatures()).Source)

	require.NoError(t, c.Record(process, sampleFeatures()))
	assert.True(t, c.Trained())
}

func TestCache_RejectsPoisonedSamples(t *testing.T) {
	c := NewCache()
	for _, burst := range []float64{0, -4, math.NaN(), math.Inf(1)} {
		err := c.RecordSample(TrainingSample{Features: sampleFeatures(), Burst: burst, Priority: 2})
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	}

	bad := sampleFeatures()
	bad.IoBound = math.Inf(-1)
	assert.ErrorIs(t, c.RecordSample(TrainingSample{Features: bad, Burst: 3, Priority: 2}), core.ErrInvalidInput)

	assert.Equal(t, 0, c.Samples())
	assert.False(t, c.Trained())
}

func TestCache_RetrainFailureKeepsHeuristic(t *testing.T) {
	c := NewCache(WithRegressorFactory(func() Regressor { return failingRegressor{} }))
	before := testutil.ToFloat64(metrics.ModelRetrains.WithLabelValues("failure"))

	err := c.Record(core.ProcessSpec{Id: "P1", BurstTime: 8, Priority: 1}, sampleFeatures())
	assert.ErrorIs(t, err, core.ErrModelFailure)
	assert.Equal(t, 1, c.Samples())
	assert.False(t, c.Trained())
	assert.Equal(t, SourceHeuristic, c.Predict(sampleFeatures()).Source)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ModelRetrains.WithLabelValues("failure")))
}

func TestCache_RetrainFailureKeepsPreviousModel(t *testing.T) {
	fail := false
	c := NewCache(WithRegressorFactory(func() Regressor {
		if fail {
			return failingRegressor{}
		}
		return &constantRegressor{out: []float64{7, 2}}
	}))
	require.NoError(t, c.Record(core.ProcessSpec{Id: "P1", BurstTime: 7, Priority: 2}, sampleFeatures()))

	fail = true
	err := c.Record(core.ProcessSpec{Id: "P2", BurstTime: 9, Priority: 4}, sampleFeatures())
	assert.ErrorIs(t, err, core.ErrModelFailure)

	p := c.Predict(sampleFeatures())
	assert.Equal(t, Prediction{Burst: 7, Priority: 2, Source: SourceModel}, p)
}

func TestCache_ModelOutputIsClamped(t *testing.T) {
	c := NewCache(WithRegressorFactory(func() Regressor { return &constantRegressor{out: []float64{-3, 11}} }))
	require.NoError(t, c.Record(core.ProcessSpec{Id: "P1", BurstTime: 1, Priority: 5}, sampleFeatures()))

	p := c.Predict(sampleFeatures())
	assert.Equal(t, Prediction{Burst: 1, Priority: 5, Source: SourceModel}, p)
}

func TestCache_PredictFailureFallsBack(t *testing.T) {
	for _, r := range []*constantRegressor{
		{err: errors.New("bad dimensionality")},
		{out: []float64{3}},
		{out: []float64{math.NaN(), 2}},
	} {
		regressor := r
		c := NewCache(WithRegressorFactory(func() Regressor { return regressor }))
		require.NoError(t, c.Record(core.ProcessSpec{Id: "P1", BurstTime: 4, Priority: 2}, sampleFeatures()))
		assert.Equal(t, HeuristicPrediction(sampleFeatures()), c.Predict(sampleFeatures()))
	}
}

func TestCache_ConcurrentRecordAndPredict(t *testing.T) {
	c := NewCache()
	const writers = 16

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			f := sampleFeatures()
			f.EstimatedBurst = float64(10 + i)
			_ = c.Record(core.ProcessSpec{Id: "P", BurstTime: 10 + i, Priority: 1 + i%5}, f)
		}(i)
		go func() {
			defer wg.Done()
			p := c.Predict(sampleFeatures())
			assert.GreaterOrEqual(t, p.Burst, 1.0)
		}()
	}
	wg.Wait()

	assert.Equal(t, writers, c.Samples())
	assert.True(t, c.Trained())
}

func TestDefault_IsSingletonWithResetHook(t *testing.T) {
	resetDefault()
	t.Cleanup(resetDefault)

	first := Default()
	require.NotNil(t, first)
	assert.Same(t, first, Default())
	require.NoError(t, first.Record(core.ProcessSpec{Id: "P1", BurstTime: 5, Priority: 1}, sampleFeatures()))

	resetDefault()
	second := Default()
	assert.NotSame(t, first, second)
	assert.Equal(t, 0, second.Samples())
}

func TestProperty_PredictIsIdempotent(t *testing.T) {
	trained := NewCache()
	require.NoError(t, trained.Record(core.ProcessSpec{Id: "P1", BurstTime: 40, Priority: 2}, sampleFeatures()))
	cold := NewCache()

	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("predict twice without record gives the same answer", prop.ForAll(
		func(io, cpu, deadline, burst float64) bool {
			f := core.FeatureVector{
				IoBound:             io,
				MemoryFootprint:     512,
				HistoricalWait:      30,
				CpuIntensity:        cpu,
				DeadlineFlexibility: deadline,
				EstimatedBurst:      burst,
			}
			return trained.Predict(f) == trained.Predict(f) && cold.Predict(f) == cold.Predict(f)
		},
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
		gen.Float64Range(1, 200),
	))
	properties.Property("heuristic priority stays in [1,5]", prop.ForAll(
		func(cpu, deadline float64) bool {
			p := cold.Predict(core.FeatureVector{CpuIntensity: cpu, DeadlineFlexibility: deadline, EstimatedBurst: 5, MemoryFootprint: 64})
			return p.Priority >= core.MinPriority && p.Priority <= core.MaxPriority
		},
		gen.Float64Range(-2, 3),
		gen.Float64Range(-2, 3),
	))
	properties.TestingRun(t)
}
