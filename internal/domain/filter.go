package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// Filter validation errors.
var (
	// ErrInvalidFilter is returned for an unknown field or operator, or a
	// numeric value that fails integer coercion.
	ErrInvalidFilter = errors.New("filter contains invalid field or operator")

	// ErrMultipleInequalityFilters is returned when two different fields carry
	// non-equality operators. The store permits a range comparison on only one
	// field, and that field must be the primary sort key.
	ErrMultipleInequalityFilters = errors.New("inequality filter is allowed on only one field")
)

// Filter is a raw, user-supplied filter triple.
type Filter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// filterFields maps the public field enum onto queryable conference columns.
// Field access is always through this table, never by reflective name lookup.
var filterFields = map[string]string{
	"CITY":          "city",
	"TOPIC":         "topics",
	"MONTH":         "month",
	"MAX_ATTENDEES": "max_attendees",
}

// filterOperators maps the public operator enum onto comparisons.
var filterOperators = map[string]string{
	"EQ":   "=",
	"GT":   ">",
	"GTEQ": ">=",
	"LT":   "<",
	"LTEQ": "<=",
	"NE":   "!=",
}

// numericFields are coerced from string to int during compilation.
var numericFields = map[string]bool{
	"month":         true,
	"max_attendees": true,
}

// CompiledFilter is a validated filter with its resolved column, comparison,
// and coerced value.
type CompiledFilter struct {
	Field    string
	Operator string
	Value    any
}

// Inequality reports whether the filter uses a non-equality comparison.
func (f CompiledFilter) Inequality() bool {
	return f.Operator != "="
}

// QueryPlan is an ordered, validated set of conjunctive filters plus the
// single field (if any) designated to carry range comparisons. Result order
// is the inequality field first (required by the store), then name as a
// stable tie-break.
type QueryPlan struct {
	Filters         []CompiledFilter
	InequalityField string
}

// OrderBy returns the result ordering columns for the plan.
func (p *QueryPlan) OrderBy() []string {
	if p.InequalityField != "" && p.InequalityField != "name" {
		return []string{p.InequalityField, "name"}
	}
	return []string{"name"}
}

// CompileFilters parses and validates raw filters into a query plan. It must
// run before any query is issued: the store does not reject invalid
// multi-inequality queries cleanly, so skipping this is a correctness bug.
func CompileFilters(filters []Filter) (*QueryPlan, error) {
	plan := &QueryPlan{Filters: make([]CompiledFilter, 0, len(filters))}

	for _, f := range filters {
		field, ok := filterFields[f.Field]
		if !ok {
			return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidFilter, f.Field)
		}
		op, ok := filterOperators[f.Operator]
		if !ok {
			return nil, fmt.Errorf("%w: unknown operator %q", ErrInvalidFilter, f.Operator)
		}

		// Topics is a set; only membership checks are meaningful, so range
		// operators are rejected here rather than at query time.
		if field == "topics" && op != "=" && op != "!=" {
			return nil, fmt.Errorf("%w: operator %q not supported on TOPIC", ErrInvalidFilter, f.Operator)
		}

		var value any = f.Value
		if numericFields[field] {
			n, err := strconv.Atoi(f.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: field %q requires an integer value, got %q", ErrInvalidFilter, f.Field, f.Value)
			}
			value = n
		}

		if op != "=" {
			if plan.InequalityField != "" && plan.InequalityField != field {
				return nil, ErrMultipleInequalityFilters
			}
			plan.InequalityField = field
		}

		plan.Filters = append(plan.Filters, CompiledFilter{Field: field, Operator: op, Value: value})
	}

	return plan, nil
}
