// Package prompt renders a VehicleQuery into the instructions sent to the
// valuation model.
package prompt

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"vehicle-valuation-api/internal/model"
	"vehicle-valuation-api/internal/textnorm"
)

// Prompt is the rendered request for one valuation.
type Prompt struct {
	System string
	User   string
	// Seed is a determinism hint for providers that support seeded sampling.
	// It is not unique across vehicles.
	Seed int64
}

const systemPrompt = `You are a vehicle valuation expert with extensive knowledge of the European used car market. ` +
	`You MUST ALWAYS provide a complete valuation response with positive values, even if exact matches aren't available. ` +
	`Base every figure on listings you remember from used car marketplaces, never on depreciation formulas. ` +
	`Keep all value impact factors within realistic ranges. Reply with a single JSON object and nothing else.`

// Build renders q. It has no side effects and always returns a non-empty
// system and user prompt.
func Build(q model.VehicleQuery, currency string) Prompt {
	if currency == "" {
		currency = "EUR"
	}
	market := textnorm.Title(q.Country)
	if market == "" {
		market = "European"
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Estimate the current market value of this %s on the %s used car market.\n\n", q.Label(), market)

	sb.WriteString("Vehicle:\n")
	fmt.Fprintf(&sb, "- Make: %s\n", q.Make)
	fmt.Fprintf(&sb, "- Model: %s\n", q.Model)
	writeOptional(&sb, "Version", q.Version)
	fmt.Fprintf(&sb, "- Year: %d\n", q.Year)
	fmt.Fprintf(&sb, "- Mileage: %d km\n", q.Mileage)
	fmt.Fprintf(&sb, "- Condition: %s\n", q.Condition)
	writeOptional(&sb, "Engine", q.EngineSize)
	writeOptional(&sb, "Power", q.EnginePower)
	writeOptional(&sb, "Transmission", q.Transmission)
	writeOptional(&sb, "Fuel Type", q.Fuel)
	if len(q.Features) > 0 {
		fmt.Fprintf(&sb, "- Features: %s\n", strings.Join(q.Features, ", "))
	}

	sb.WriteString("\nRULES:\n")
	fmt.Fprintf(&sb, "- Use ONLY your knowledge of real listings seen on used car sites for the %s market (mobile.de, AutoScout24, Leboncoin, La Centrale, AutoTrader and similar).\n", market)
	sb.WriteString("- Do NOT answer with theoretical values or depreciation formulas. Quote listings you actually remember.\n")
	sb.WriteString("- If exact matches are not available, use similar vehicles (±2 years, similar trims and versions) and explain the adjustments.\n")
	if q.Version != "" {
		fmt.Fprintf(&sb, "- Factor the %s version into the valuation.\n", q.Version)
	}
	fmt.Fprintf(&sb, "- All prices are in %s. The value MUST be a positive number.\n", currency)
	sb.WriteString("- Provide at least 3 comparable listings.\n")
	sb.WriteString("- Keep all impact percentages realistic:\n")
	sb.WriteString("  * Mileage impact: between -30% and +10%\n")
	sb.WriteString("  * Condition impact: between -20% and +15%\n")
	sb.WriteString("  * Market demand impact: between -15% and +15%\n")
	sb.WriteString("  * Features impact: between -10% and +10%\n")

	sb.WriteString("\nReply with a valid JSON object with ALL fields populated, exactly in this shape:\n")
	sb.WriteString(replySchema)

	return Prompt{
		System: systemPrompt,
		User:   sb.String(),
		Seed:   Seed(q),
	}
}

const replySchema = `{
  "value": number (REQUIRED, must be > 0),
  "confidence": "high|medium|low",
  "explanation": "string (REQUIRED)",
  "marketTrends": "string (REQUIRED)",
  "source": "string (where the remembered listings come from)",
  "range": {
    "min": number (REQUIRED, must be > 0),
    "max": number (REQUIRED, must be > min)
  },
  "comparableListings": [
    {
      "price": number (REQUIRED, must be > 0),
      "mileage": number,
      "year": number,
      "version": "string",
      "location": "string",
      "description": "string",
      "condition": "string"
    }
  ],
  "factors": {
    "mileageImpact": number,
    "conditionImpact": number,
    "marketDemand": number,
    "featuresPremium": number
  }
}`

func writeOptional(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(sb, "- %s: %s\n", label, value)
}

// Seed sums the code points of make+model+year+condition+mileage, with the
// mileage rounded to the nearest 1000 km so small odometer differences map
// to the same seed.
func Seed(q model.VehicleQuery) int64 {
	rounded := int64(math.Round(float64(q.Mileage)/1000) * 1000)

	key := q.Make + q.Model + strconv.Itoa(q.Year) + string(q.Condition) + strconv.FormatInt(rounded, 10)

	var sum int64
	for _, r := range key {
		sum += int64(r)
	}
	return sum
}
