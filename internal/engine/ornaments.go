package engine

import (
	"time"

	"github.com/tartampluch/go-birthday-card/internal/config"
)

// OrnamentKind selects how a background ornament is drawn.
type OrnamentKind int

const (
	OrnamentHeart OrnamentKind = iota
	OrnamentSparkle
)

// Ornament is a decorative background element. X and Y are percentages of the
// card area; Period is one full float/twinkle cycle.
type Ornament struct {
	ID     int
	Kind   OrnamentKind
	X      float64
	Y      float64
	Size   float64
	Period time.Duration
	Delay  time.Duration
}

// GenerateOrnaments places the floating hearts and twinkling sparkles.
func GenerateOrnaments(rng RandSource) []Ornament {
	out := make([]Ornament, 0, config.HeartCount+config.SparkleCount)
	for i := 0; i < config.HeartCount; i++ {
		out = append(out, Ornament{
			ID:     len(out),
			Kind:   OrnamentHeart,
			X:      rng.Float64() * 100,
			Y:      rng.Float64() * 100,
			Size:   rng.Float64()*config.HeartSizeRange + config.HeartMinSize,
			Period: config.HeartMinPeriod + scale(rng, config.HeartPeriodRange),
			Delay:  scale(rng, config.HeartMaxDelay),
		})
	}
	for i := 0; i < config.SparkleCount; i++ {
		out = append(out, Ornament{
			ID:     len(out),
			Kind:   OrnamentSparkle,
			X:      rng.Float64() * 100,
			Y:      rng.Float64() * 100,
			Size:   rng.Float64()*config.SparkleSizeRange + config.SparkleMinSize,
			Period: config.SparkleMinPeriod + scale(rng, config.SparklePeriodRange),
			Delay:  scale(rng, config.SparkleMaxDelay),
		})
	}
	return out
}

func scale(rng RandSource, d time.Duration) time.Duration {
	return time.Duration(rng.Float64() * float64(d))
}
