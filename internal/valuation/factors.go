package valuation

import (
	"math"

	"vehicle-valuation-api/internal/model"
)

// Bounds is a closed percentage interval.
type Bounds struct {
	Min float64
	Max float64
}

// Clamp returns v limited to b. ±Inf clamps to the nearest bound.
func (b Bounds) Clamp(v float64) float64 {
	return math.Max(b.Min, math.Min(b.Max, v))
}

var (
	MileageImpactBounds   = Bounds{Min: -30, Max: 10}
	ConditionImpactBounds = Bounds{Min: -20, Max: 15}
	MarketDemandBounds    = Bounds{Min: -15, Max: 15}
	FeaturesPremiumBounds = Bounds{Min: -10, Max: 10}
)

// clampFactors reads the four impacts from the reply's "factors" object.
// Missing or non-numeric impacts count as 0.
func clampFactors(raw any) model.Factors {
	obj, _ := raw.(map[string]any)

	impact := func(key string, b Bounds) float64 {
		v, ok := number(obj[key])
		if !ok || math.IsNaN(v) {
			v = 0
		}
		return b.Clamp(v)
	}

	return model.Factors{
		MileageImpact:   impact("mileageImpact", MileageImpactBounds),
		ConditionImpact: impact("conditionImpact", ConditionImpactBounds),
		MarketDemand:    impact("marketDemand", MarketDemandBounds),
		FeaturesPremium: impact("featuresPremium", FeaturesPremiumBounds),
	}
}
