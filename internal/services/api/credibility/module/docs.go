package module

import (
	"skillproof/internal/core/tier"
	"skillproof/internal/modkit/swaggerkit"
)

// DocumentTiers adds the Tier enum, weakest first, to the served OpenAPI document
func DocumentTiers(spec map[string]any) {
	var names []any
	for t := tier.Unverified; t <= tier.Expert; t++ {
		names = append(names, t.String())
	}
	swaggerkit.Component(spec, "schemas")["Tier"] = map[string]any{
		"type":        "string",
		"description": "Credibility tier derived from the 0-100 score",
		"enum":        names,
	}
}
