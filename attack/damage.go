package attack

import (
	"math"
	"math/rand/v2"
	"time"
)

// Source is the random source damage rolls draw from. *rand.Rand satisfies it.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// NewSource returns a seeded Source for reproducible rolls.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// DefaultSource returns a Source seeded from the wall clock.
func DefaultSource() Source {
	return NewSource(uint64(time.Now().UnixNano()))
}

// Roll is one bucket of a weighted damage table.
type Roll struct {
	Value  float64 `yaml:"value" mapstructure:"value"`
	Weight float64 `yaml:"weight" mapstructure:"weight"`
}

// WeightedTable is an ordered list of damage buckets.
type WeightedTable []Roll

// valid drops buckets with non-finite or negative values and non-positive weights.
func (t WeightedTable) valid() (WeightedTable, float64) {
	var (
		out   WeightedTable
		total float64
	)
	for _, r := range t {
		if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) || r.Value < 0 {
			continue
		}
		if math.IsNaN(r.Weight) || math.IsInf(r.Weight, 0) || r.Weight <= 0 {
			continue
		}
		out = append(out, r)
		total += r.Weight
	}
	return out, total
}

// ResolveWeightedDamage draws one value from table, weighting each bucket by
// its Weight. When no bucket is usable it returns max(0, floor(fallback)).
// A nil src uses a clock-seeded source.
func ResolveWeightedDamage(table WeightedTable, fallback float64, src Source) int {
	buckets, total := table.valid()
	if len(buckets) == 0 {
		return floorNonNegative(fallback)
	}
	if src == nil {
		src = DefaultSource()
	}
	draw := src.Float64() * total
	for _, b := range buckets {
		draw -= b.Weight
		if draw <= 0 {
			return floorNonNegative(b.Value)
		}
	}
	// float drift can leave a sliver past the last bucket
	return floorNonNegative(buckets[len(buckets)-1].Value)
}

func floorNonNegative(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if math.IsInf(v, 1) {
		return math.MaxInt32
	}
	return int(math.Floor(v))
}
