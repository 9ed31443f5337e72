package valuation

import (
	"math"

	"vehicle-valuation-api/internal/model"
)

const (
	highConfidenceListings   = 6
	mediumConfidenceListings = 3

	// Coefficient of variation of listing prices above which the rating
	// drops one level.
	highSpreadLimit   = 0.3
	mediumSpreadLimit = 0.5
)

// RecomputeConfidence derives the rating from the listings alone: how many
// there are, how much their prices disagree and whether any were synthesized.
func RecomputeConfidence(listings []model.Listing) model.Confidence {
	for _, l := range listings {
		if l.Source == SyntheticSource {
			return model.ConfidenceLow
		}
	}

	var level model.Confidence
	switch n := len(listings); {
	case n >= highConfidenceListings:
		level = model.ConfidenceHigh
	case n >= mediumConfidenceListings:
		level = model.ConfidenceMedium
	default:
		level = model.ConfidenceLow
	}

	cv := PriceVariation(listings)
	if level == model.ConfidenceHigh && cv > highSpreadLimit {
		level = model.ConfidenceMedium
	}
	if level == model.ConfidenceMedium && cv > mediumSpreadLimit {
		level = model.ConfidenceLow
	}

	return level
}

// PriceVariation is the coefficient of variation (population standard
// deviation over mean) of listing prices. Fewer than two listings yield 0.
// Prices are scaled by the largest one so that huge prices cannot overflow.
func PriceVariation(listings []model.Listing) float64 {
	if len(listings) < 2 {
		return 0
	}

	var top float64
	for _, l := range listings {
		top = math.Max(top, l.Price)
	}
	if top <= 0 || math.IsInf(top, 0) {
		return 0
	}

	var sum float64
	for _, l := range listings {
		sum += l.Price / top
	}
	mean := sum / float64(len(listings))
	if mean <= 0 {
		return 0
	}

	var sq float64
	for _, l := range listings {
		d := l.Price/top - mean
		sq += d * d
	}

	return math.Sqrt(sq/float64(len(listings))) / mean
}
