package engine_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-birthday-card/internal/config"
	"github.com/tartampluch/go-birthday-card/internal/engine"
)

func TestGenerateOrnaments_Counts(t *testing.T) {
	ornaments := engine.GenerateOrnaments(rand.New(rand.NewPCG(3, 4)))

	require.Len(t, ornaments, config.HeartCount+config.SparkleCount)
	hearts, sparkles := 0, 0
	for i, o := range ornaments {
		assert.Equal(t, i, o.ID)
		switch o.Kind {
		case engine.OrnamentHeart:
			hearts++
			assert.GreaterOrEqual(t, o.Period, config.HeartMinPeriod)
			assert.Less(t, o.Period, config.HeartMinPeriod+config.HeartPeriodRange)
			assert.Less(t, o.Delay, config.HeartMaxDelay)
		case engine.OrnamentSparkle:
			sparkles++
			assert.GreaterOrEqual(t, o.Period, config.SparkleMinPeriod)
			assert.Less(t, o.Delay, config.SparkleMaxDelay)
		}
		assert.GreaterOrEqual(t, o.X, 0.0)
		assert.Less(t, o.X, 100.0)
		assert.GreaterOrEqual(t, o.Y, 0.0)
		assert.Less(t, o.Y, 100.0)
	}
	assert.Equal(t, config.HeartCount, hearts)
	assert.Equal(t, config.SparkleCount, sparkles)
}

func TestGenerateOrnaments_Deterministic(t *testing.T) {
	ornaments := engine.GenerateOrnaments(newSeqRand(0))

	first := ornaments[0]
	assert.Equal(t, engine.OrnamentHeart, first.Kind)
	assert.Equal(t, 0.0, first.X)
	assert.Equal(t, config.HeartMinSize, first.Size)
	assert.Equal(t, config.HeartMinPeriod, first.Period)
	assert.Zero(t, first.Delay)

	last := ornaments[len(ornaments)-1]
	assert.Equal(t, engine.OrnamentSparkle, last.Kind)
	assert.Equal(t, config.SparkleMinSize, last.Size)
	assert.Equal(t, config.SparkleMinPeriod, last.Period)
}
