package model

import (
	"strings"

	"vehicle-valuation-api/internal/textnorm"
)

// ValuationRequest is the body of POST /api/valuation.
// Mileage is a pointer so that 0 km stays distinguishable from a missing field.
type ValuationRequest struct {
	Make         string   `json:"make" validate:"required"`
	Model        string   `json:"model" validate:"required"`
	Version      string   `json:"version,omitempty"`
	Year         int      `json:"year" validate:"required,gte=1900,notfuture"`
	Mileage      *int     `json:"mileage" validate:"required,gte=0"`
	Condition    string   `json:"condition" validate:"required,oneof=excellent good fair poor"`
	EngineSize   string   `json:"engineSize,omitempty"`
	EnginePower  string   `json:"enginePower,omitempty"`
	Transmission string   `json:"transmission,omitempty"`
	Fuel         string   `json:"fuel,omitempty"`
	Features     []string `json:"features,omitempty"`
	Country      string   `json:"country,omitempty"`
}

// Sanitize trims free text and lowercases the condition so that
// " Good " passes validation. It must run before validation.
func (r *ValuationRequest) Sanitize() {
	r.Make = textnorm.Clean(r.Make)
	r.Model = textnorm.Clean(r.Model)
	r.Version = textnorm.Clean(r.Version)
	r.Condition = strings.ToLower(strings.TrimSpace(r.Condition))
	r.EngineSize = textnorm.Clean(r.EngineSize)
	r.EnginePower = textnorm.Clean(r.EnginePower)
	r.Transmission = textnorm.Clean(r.Transmission)
	r.Fuel = textnorm.Clean(r.Fuel)
	r.Country = textnorm.Clean(r.Country)
}

// Query converts a validated request into a VehicleQuery. defaultMarket is
// used when the caller did not send a country.
func (r ValuationRequest) Query(defaultMarket string) VehicleQuery {
	country := r.Country
	if country == "" {
		country = defaultMarket
	}

	mileage := 0
	if r.Mileage != nil {
		mileage = *r.Mileage
	}

	return VehicleQuery{
		Make:         r.Make,
		Model:        r.Model,
		Version:      r.Version,
		Year:         r.Year,
		Mileage:      mileage,
		Condition:    Condition(r.Condition),
		EngineSize:   r.EngineSize,
		EnginePower:  r.EnginePower,
		Transmission: r.Transmission,
		Fuel:         r.Fuel,
		Features:     textnorm.UniqueTags(r.Features),
		Country:      country,
	}
}
