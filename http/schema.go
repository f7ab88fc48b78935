package http

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"deal-engine/domain"
)

// Request bodies are checked against these schemas before decoding so that
// missing fields and wrong types are reported by name.
const (
	schemaAmortization = "amortization"
	schemaGrade        = "grade"
	schemaDealGap      = "deal-gap"
	schemaComparison   = "comparison"
)

var integerFields = map[string]bool{
	"loanTermYears":      true,
	"termYears":          true,
	"totalUnits":         true,
	"ownerUnits":         true,
	"holdingMonths":      true,
	"rehabMonths":        true,
	"refinanceTermYears": true,
	"baseScore":          true,
	"steps":              true,
}

func objectSchema(required ...string) map[string]interface{} {
	props := make(map[string]interface{}, len(required))
	for _, name := range required {
		kind := "number"
		if integerFields[name] {
			kind = "integer"
		}
		props[name] = map[string]interface{}{"type": kind}
	}
	return map[string]interface{}{
		"type":       "object",
		"required":   required,
		"properties": props,
	}
}

var schemaDefinitions = map[string]map[string]interface{}{
	string(domain.StrategyLTR): objectSchema("purchasePrice", "monthlyRent", "interestRate", "loanTermYears", "propertyTaxesAnnual"),
	string(domain.StrategySTR): objectSchema("purchasePrice", "nightlyRate", "occupancyRate", "averageStayNights",
		"interestRate", "loanTermYears", "propertyTaxesAnnual"),
	string(domain.StrategyBRRRR): objectSchema("purchasePrice", "arv", "monthlyRent", "initialLoanPct",
		"refinanceLtv", "refinanceRate", "refinanceTermYears", "propertyTaxesAnnual"),
	string(domain.StrategyFlip):      objectSchema("listPrice", "arv", "holdingMonths"),
	string(domain.StrategyHouseHack): objectSchema("purchasePrice", "totalUnits", "ownerUnits", "rentPerUnit", "interestRate", "loanTermYears",
		"propertyTaxesAnnual"),
	string(domain.StrategyWholesale): objectSchema("contractPrice", "arv", "assignmentFee"),
	schemaAmortization:               objectSchema("principal", "annualRate", "termYears"),
	schemaGrade: {
		"type":     "object",
		"required": []string{"metric", "value"},
		"properties": map[string]interface{}{
			"metric":   map[string]interface{}{"type": "string"},
			"value":    map[string]interface{}{"type": "number"},
			"strategy": map[string]interface{}{"type": "string"},
		},
	},
	schemaDealGap: objectSchema("listPrice", "incomeValue", "targetPrice", "buyPrice", "baseScore"),
	schemaComparison: {
		"type": "object",
		"anyOf": []interface{}{
			map[string]interface{}{"required": []string{"property"}},
			map[string]interface{}{"required": []string{"facts", "ltr"}},
		},
		"properties": map[string]interface{}{
			"property": map[string]interface{}{"type": "object"},
			"facts":    map[string]interface{}{"type": "object"},
			"ltr":      objectSchema("purchasePrice", "monthlyRent", "interestRate", "loanTermYears", "propertyTaxesAnnual"),
		},
	},
}

// Validator holds the compiled request schemas.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

func NewValidator() (*Validator, error) {
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema, len(schemaDefinitions))}
	for name, def := range schemaDefinitions {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(def))
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", name, err)
		}
		v.schemas[name] = schema
	}
	return v, nil
}

// Validate checks body against the named schema and returns the first
// violation as a *domain.ValidationError.
func (v *Validator) Validate(name string, body []byte) error {
	schema, ok := v.schemas[name]
	if !ok {
		return domain.NewValidationError("strategy", "unknown strategy %q", name)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return domain.NewValidationError("body", "malformed JSON: %v", err)
	}
	if result.Valid() {
		return nil
	}

	first := result.Errors()[0]
	field := first.Field()
	if prop, ok := first.Details()["property"].(string); ok && first.Type() == "required" {
		field = prop
	}
	return &domain.ValidationError{Field: field, Message: first.Description()}
}
