package compute

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zephyr-dassouli/dal-orchestrator/internal/model"
)

// FallbackGenerator produces simulated query samples when the AL-Engine
// is unreachable. Every sample is tagged with SourceSimulationFallback
// so the degraded mode stays visible to operators and tests; the
// generator exists to keep the voting flow exercisable, never to pass
// simulated data off as engine output.
type FallbackGenerator struct {
	featureCount int
	poolSize     int
	logger       *zap.Logger
}

// NewFallbackGenerator builds a generator with the given synthetic
// feature width and pretend dataset size.
func NewFallbackGenerator(featureCount, poolSize int, logger *zap.Logger) *FallbackGenerator {
	if featureCount <= 0 {
		featureCount = defaultFeatureCount
	}
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	return &FallbackGenerator{
		featureCount: featureCount,
		poolSize:     poolSize,
		logger:       logger,
	}
}

const (
	defaultFeatureCount = 4
	defaultPoolSize     = 1000
)

// Generate returns batchSize simulated samples for the round. Seeded by
// round so repeated calls within one round are stable for assertions.
func (g *FallbackGenerator) Generate(round uint64, batchSize int) []model.Sample {
	if batchSize <= 0 {
		batchSize = 1
	}
	if batchSize > g.poolSize {
		batchSize = g.poolSize
	}
	rng := rand.New(rand.NewSource(int64(round)))

	g.logger.Warn("generating simulation fallback samples",
		zap.Uint64("round", round),
		zap.Int("batch_size", batchSize))

	// Distinct original indices within the pretend pool.
	indices := rng.Perm(g.poolSize)[:batchSize]

	samples := make([]model.Sample, 0, batchSize)
	for _, idx := range indices {
		features := make(map[string]any, g.featureCount)
		for f := 0; f < g.featureCount; f++ {
			features[featureName(f)] = float64(int(rng.Float64()*1000)) / 100
		}
		samples = append(samples, model.Sample{
			SampleID:      uuid.NewString(),
			OriginalIndex: idx,
			Features:      features,
			Source:        model.SourceSimulationFallback,
			Round:         round,
		})
	}
	return samples
}

func featureName(i int) string {
	names := []string{"sepal_length", "sepal_width", "petal_length", "petal_width"}
	if i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("feature_%d", i)
}
