// Package valuation turns the free-form reply of a valuation model into a
// ValuationRecord whose invariants hold whatever the model returned.
//
// Only two defects are fatal: a reply that is not a JSON object and a reply
// without a positive headline value. Everything else is repaired.
package valuation

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"vehicle-valuation-api/internal/model"
)

const (
	defaultListingDescription = "Similar vehicle"

	// Larger odometer readings are treated as missing.
	maxListingMileage = math.MaxInt32
)

// Options tune the normalizer.
type Options struct {
	// Currency is copied into every record.
	Currency string
	// SyntheticFallback enables SyntheticListings when the model returned
	// no usable listing.
	SyntheticFallback bool
}

// Normalizer is safe for concurrent use; it holds no per-request state.
type Normalizer struct {
	opts   Options
	logger *slog.Logger
	now    func() time.Time
}

func NewNormalizer(opts Options, logger *slog.Logger) *Normalizer {
	if opts.Currency == "" {
		opts.Currency = "EUR"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// Normalize validates raw against q. It returns *MalformedReplyError or
// *InvalidValuationError; once the headline value is accepted it never fails.
func (n *Normalizer) Normalize(raw string, q model.VehicleQuery) (*model.ValuationRecord, error) {
	reply, err := decodeReply(raw)
	if err != nil {
		return nil, err
	}

	value, err := headlineValue(reply)
	if err != nil {
		return nil, err
	}

	priceRange, repaired := repairRange(reply["range"], value)
	if repaired {
		n.logger.Warn("invalid range in model reply, derived from value",
			"vehicle", q.Label(),
			"min", priceRange.Min,
			"max", priceRange.Max,
		)
	}

	listings := n.listings(reply["comparableListings"], q)
	if len(listings) == 0 && n.opts.SyntheticFallback {
		n.logger.Warn("no usable comparable listing, using synthetic fallback",
			"vehicle", q.Label(),
		)
		listings = SyntheticListings(q)
	}

	confidence := RecomputeConfidence(listings)
	if reported, ok := text(reply["confidence"]); ok && model.Confidence(reported) != confidence {
		n.logger.Debug("model confidence overridden",
			"reported", reported,
			"recomputed", confidence,
			"listings", len(listings),
		)
	}

	record := &model.ValuationRecord{
		Value:              math.Max(1, math.Round(value)),
		Currency:           n.opts.Currency,
		Confidence:         confidence,
		Range:              priceRange,
		ComparableListings: listings,
		Factors:            clampFactors(reply["factors"]),
		Explanation:        textOr(reply["explanation"], fmt.Sprintf("Estimated value for %s based on market analysis.", q.Label())),
		MarketTrends:       textOr(reply["marketTrends"], fmt.Sprintf("Market analysis for the %s based on similar vehicles and historical data.", q.Label())),
		Source:             textOr(reply["source"], fmt.Sprintf("Market analysis of comparable listings for the %s", q.Label())),
	}

	return record, nil
}

// headlineValue accepts only a positive, finite JSON number.
func headlineValue(reply map[string]any) (float64, error) {
	raw, present := reply["value"]
	if !present || raw == nil {
		return 0, &InvalidValuationError{Reason: "value is missing"}
	}

	value, ok := number(raw)
	if !ok {
		return 0, &InvalidValuationError{Reason: fmt.Sprintf("value is not a number: %v", raw)}
	}
	if !finite(value) || value <= 0 {
		return 0, &InvalidValuationError{Reason: fmt.Sprintf("value must be a positive finite number, got %v", value)}
	}

	return value, nil
}

// repairRange keeps a valid 0 < min < max range from the reply, otherwise
// derives ±10% around value. Bounds are rounded to whole currency units.
func repairRange(raw any, value float64) (model.PriceRange, bool) {
	obj, _ := raw.(map[string]any)

	lo, okLo := number(obj["min"])
	hi, okHi := number(obj["max"])

	repaired := !okLo || !okHi || !finite(lo) || !finite(hi) || lo <= 0 || hi <= lo
	if repaired {
		lo = value * 0.9
		hi = value * 1.1
	}

	r := model.PriceRange{Min: capFinite(math.Round(lo)), Max: capFinite(math.Round(hi))}

	// Rounding can collapse tiny ranges.
	if r.Min < 1 {
		r.Min = 1
	}
	if r.Max <= r.Min {
		r.Max = r.Min + 1
	}

	return r, repaired
}

// capFinite keeps a bound derived from a huge value representable in JSON.
func capFinite(f float64) float64 {
	return math.Min(f, math.MaxFloat64)
}

// listings keeps the entries with a positive price, in order, and fills
// their missing fields from q.
func (n *Normalizer) listings(raw any, q model.VehicleQuery) []model.Listing {
	items, _ := raw.([]any)
	out := make([]model.Listing, 0, len(items))
	maxYear := float64(n.now().Year() + 1)

	dropped := 0
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			dropped++
			continue
		}

		price, ok := number(obj["price"])
		if !ok || !finite(price) || price <= 0 {
			dropped++
			continue
		}

		l := model.Listing{
			Price:       price,
			Year:        q.Year,
			Location:    textOr(obj["location"], q.Country),
			Description: textOr(obj["description"], defaultListingDescription),
		}
		if m, ok := number(obj["mileage"]); ok && m >= 0 && m <= maxListingMileage {
			l.Mileage = int(math.Round(m))
		}
		if y, ok := number(obj["year"]); ok && y >= 1900 && y <= maxYear {
			l.Year = int(math.Round(y))
		}
		if v, ok := text(obj["version"]); ok {
			l.Version = v
		}
		if c, ok := text(obj["condition"]); ok {
			l.Condition = c
		}

		out = append(out, l)
	}

	if dropped > 0 {
		n.logger.Warn("dropped invalid comparable listings",
			"vehicle", q.Label(),
			"dropped", dropped,
			"kept", len(out),
		)
	}

	return out
}

func textOr(v any, fallback string) string {
	if s, ok := text(v); ok {
		return s
	}
	return fallback
}
