package pricing

import (
	"sort"

	"divequote/internal/domain"
)

// GrowthBucket is a discrete fouling level with its surcharge.
type GrowthBucket struct {
	Threshold float64 `yaml:"threshold"`
	Label     string  `yaml:"label"`
	Percent   int     `yaml:"percent"`
}

// DefaultGrowthBuckets maps slider positions to fouling surcharges.
func DefaultGrowthBuckets() []GrowthBucket {
	return []GrowthBucket{
		{Threshold: 5, Label: "Minimal", Percent: 0},
		{Threshold: 15, Label: "Very Light", Percent: 5},
		{Threshold: 25, Label: "Light", Percent: 10},
		{Threshold: 35, Label: "Light Moderate", Percent: 20},
		{Threshold: 45, Label: "Moderate", Percent: 35},
		{Threshold: 55, Label: "Moderate Heavy", Percent: 50},
		{Threshold: 65, Label: "Heavy", Percent: 75},
		{Threshold: 75, Label: "Very Heavy", Percent: 100},
		{Threshold: 85, Label: "Severe", Percent: 150},
		{Threshold: 95, Label: "Extreme", Percent: 200},
	}
}

// GrowthInterpolator resolves a continuous slider position to a bucket. It
// is a step function: the highest threshold not above the input wins.
type GrowthInterpolator struct {
	buckets []GrowthBucket
}

func NewGrowthInterpolator(buckets []GrowthBucket) (*GrowthInterpolator, error) {
	if len(buckets) == 0 {
		return nil, errEmptyGrowthTable
	}
	sorted := make([]GrowthBucket, len(buckets))
	copy(sorted, buckets)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Threshold < sorted[j].Threshold })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Threshold == sorted[i-1].Threshold {
			return nil, errDuplicateThreshold(sorted[i].Threshold)
		}
		if sorted[i].Percent < sorted[i-1].Percent {
			return nil, errNonMonotonicGrowth(sorted[i].Label)
		}
	}
	return &GrowthInterpolator{buckets: sorted}, nil
}

func DefaultGrowthInterpolator() *GrowthInterpolator {
	g, err := NewGrowthInterpolator(DefaultGrowthBuckets())
	if err != nil {
		panic(err)
	}
	return g
}

// Resolve never fails; out-of-range input is clamped to [0,100].
func (g *GrowthInterpolator) Resolve(slider float64) GrowthBucket {
	v := domain.ClampGrowth(slider)
	// first bucket whose threshold is above v
	i := sort.Search(len(g.buckets), func(i int) bool { return g.buckets[i].Threshold > v })
	if i == 0 {
		return g.buckets[0]
	}
	return g.buckets[i-1]
}

func (g *GrowthInterpolator) Buckets() []GrowthBucket {
	out := make([]GrowthBucket, len(g.buckets))
	copy(out, g.buckets)
	return out
}
