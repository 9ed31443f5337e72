package model

import (
	"fmt"
	"strings"
)

// Condition is the seller-declared state of the vehicle.
type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
)

// VehicleQuery is the validated input of a valuation. Build it with
// ValuationRequest.Query; it is not modified afterwards.
type VehicleQuery struct {
	Make         string
	Model        string
	Version      string
	Year         int
	Mileage      int
	Condition    Condition
	EngineSize   string
	EnginePower  string
	Transmission string
	Fuel         string
	Features     []string
	Country      string
}

// Label returns "2018 BMW 320d", with the version appended when known.
func (q VehicleQuery) Label() string {
	label := fmt.Sprintf("%d %s %s", q.Year, q.Make, q.Model)
	if q.Version != "" {
		label += " " + q.Version
	}
	return strings.TrimSpace(label)
}
