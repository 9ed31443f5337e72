package model

// Confidence is the reliability rating attached to a valuation.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ValuationRecord is the normalized answer returned to clients.
// Invariants: Value > 0, 0 < Range.Min < Range.Max, every listing has
// Price > 0 and every factor lies within its documented interval.
type ValuationRecord struct {
	Value              float64    `json:"value"`
	Currency           string     `json:"currency"`
	Confidence         Confidence `json:"confidence"`
	Range              PriceRange `json:"range"`
	ComparableListings []Listing  `json:"comparableListings"`
	Factors            Factors    `json:"factors"`
	Explanation        string     `json:"explanation"`
	MarketTrends       string     `json:"marketTrends"`
	Source             string     `json:"source"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Listing is a comparable vehicle quoted by the model.
type Listing struct {
	Price       float64 `json:"price"`
	Mileage     int     `json:"mileage"`
	Year        int     `json:"year"`
	Version     string  `json:"version,omitempty"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	Condition   string  `json:"condition,omitempty"`
	Source      string  `json:"source,omitempty"`
}

// Factors are percentage impacts on the value.
type Factors struct {
	MileageImpact   float64 `json:"mileageImpact"`
	ConditionImpact float64 `json:"conditionImpact"`
	MarketDemand    float64 `json:"marketDemand"`
	FeaturesPremium float64 `json:"featuresPremium"`
}
