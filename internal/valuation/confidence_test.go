package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vehicle-valuation-api/internal/model"
)

func listingsAt(prices ...float64) []model.Listing {
	out := make([]model.Listing, len(prices))
	for i, p := range prices {
		out[i] = model.Listing{Price: p}
	}
	return out
}

func TestRecomputeConfidence(t *testing.T) {
	tests := []struct {
		name     string
		listings []model.Listing
		want     model.Confidence
	}{
		{"no listings", nil, model.ConfidenceLow},
		{"two listings", listingsAt(18000, 18500), model.ConfidenceLow},
		{"four close listings", listingsAt(18000, 18500, 17500, 18200), model.ConfidenceMedium},
		{"seven close listings", listingsAt(18000, 18500, 17500, 18200, 18900, 17800, 18100), model.ConfidenceHigh},
		{"seven listings moderate spread", listingsAt(10000, 10000, 10000, 10000, 10000, 20000, 25000), model.ConfidenceMedium},
		{"seven listings wide spread", listingsAt(1000, 1000, 1000, 1000, 1000, 1000, 30000), model.ConfidenceLow},
		{"four listings wide spread", listingsAt(1000, 1000, 1000, 10000), model.ConfidenceLow},
		{"huge prices wide spread", listingsAt(1e308, 1e308, 1, 1, 1, 1, 1), model.ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecomputeConfidence(tt.listings))
		})
	}
}

func TestRecomputeConfidence_SyntheticForcesLow(t *testing.T) {
	listings := listingsAt(18000, 18500, 17500, 18200, 18900, 17800)
	listings = append(listings, model.Listing{Price: 18000, Source: SyntheticSource})

	assert.Equal(t, model.ConfidenceLow, RecomputeConfidence(listings))
}

func TestPriceVariation(t *testing.T) {
	assert.Equal(t, 0.0, PriceVariation(nil))
	assert.Equal(t, 0.0, PriceVariation(listingsAt(5000)))
	assert.Equal(t, 0.0, PriceVariation(listingsAt(5000, 5000, 5000)))
	assert.InDelta(t, 0.5, PriceVariation(listingsAt(5000, 15000)), 1e-9)
	assert.InDelta(t, 0.5, PriceVariation(listingsAt(5e307, 1.5e308)), 1e-9)
	assert.InDelta(t, 0.0, PriceVariation(listingsAt(1e308, 1e308, 1e308)), 1e-9)
}
