package valuation

import (
	"math"

	"vehicle-valuation-api/internal/model"
)

// SyntheticSource marks listings invented by SyntheticListings. Any listing
// carrying it forces the confidence to low.
const SyntheticSource = "synthetic-fallback"

// minSyntheticBase keeps fabricated prices positive for very old vehicles.
const minSyntheticBase = 1000

// SyntheticListings fabricates two comparables around a linear price
// estimate. It only runs when the model returned no usable listing and the
// fallback is enabled, so that the UI always has something to show.
//
// These are not market data.
func SyntheticListings(q model.VehicleQuery) []model.Listing {
	base := 10000 + float64(q.Year-2000)*1000 - float64(q.Mileage)/10000
	if base < minSyntheticBase {
		base = minSyntheticBase
	}

	listing := func(factor float64) model.Listing {
		return model.Listing{
			Price:       math.Round(base * factor),
			Mileage:     q.Mileage,
			Year:        q.Year,
			Version:     q.Version,
			Location:    q.Country,
			Description: "Estimated comparable, no market listing was returned",
			Source:      SyntheticSource,
		}
	}

	return []model.Listing{listing(0.95), listing(1.05)}
}
