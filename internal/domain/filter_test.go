package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestCompileFilters(t *testing.T) {
	tests := []struct {
		name        string
		filters     []Filter
		wantFilters []CompiledFilter
		wantIneq    string
		wantOrder   []string
		wantErr     error
	}{
		{
			name:      "empty input",
			filters:   nil,
			wantOrder: []string{"name"},
		},
		{
			name:    "city equality",
			filters: []Filter{{Field: "CITY", Operator: "EQ", Value: "London"}},
			wantFilters: []CompiledFilter{
				{Field: "city", Operator: "=", Value: "London"},
			},
			wantOrder: []string{"name"},
		},
		{
			name:    "month coerced to int",
			filters: []Filter{{Field: "MONTH", Operator: "EQ", Value: "6"}},
			wantFilters: []CompiledFilter{
				{Field: "month", Operator: "=", Value: 6},
			},
			wantOrder: []string{"name"},
		},
		{
			name:    "inequality sets sort field",
			filters: []Filter{{Field: "MAX_ATTENDEES", Operator: "GT", Value: "10"}},
			wantFilters: []CompiledFilter{
				{Field: "max_attendees", Operator: ">", Value: 10},
			},
			wantIneq:  "max_attendees",
			wantOrder: []string{"max_attendees", "name"},
		},
		{
			name: "two inequalities on same field allowed",
			filters: []Filter{
				{Field: "MONTH", Operator: "GTEQ", Value: "6"},
				{Field: "MONTH", Operator: "LTEQ", Value: "8"},
			},
			wantFilters: []CompiledFilter{
				{Field: "month", Operator: ">=", Value: 6},
				{Field: "month", Operator: "<=", Value: 8},
			},
			wantIneq:  "month",
			wantOrder: []string{"month", "name"},
		},
		{
			name: "inequality mixed with equality on another field",
			filters: []Filter{
				{Field: "CITY", Operator: "EQ", Value: "Tokyo"},
				{Field: "MONTH", Operator: "LT", Value: "10"},
			},
			wantFilters: []CompiledFilter{
				{Field: "city", Operator: "=", Value: "Tokyo"},
				{Field: "month", Operator: "<", Value: 10},
			},
			wantIneq:  "month",
			wantOrder: []string{"month", "name"},
		},
		{
			name: "inequalities on two different fields rejected",
			filters: []Filter{
				{Field: "MONTH", Operator: "GT", Value: "3"},
				{Field: "MAX_ATTENDEES", Operator: "LT", Value: "100"},
			},
			wantErr: ErrMultipleInequalityFilters,
		},
		{
			name:    "topic exclusion allowed",
			filters: []Filter{{Field: "TOPIC", Operator: "NE", Value: "Go"}},
			wantFilters: []CompiledFilter{
				{Field: "topics", Operator: "!=", Value: "Go"},
			},
			wantIneq:  "topics",
			wantOrder: []string{"topics", "name"},
		},
		{
			name:    "range operator on topic rejected",
			filters: []Filter{{Field: "TOPIC", Operator: "GT", Value: "Go"}},
			wantErr: ErrInvalidFilter,
		},
		{
			name:    "unknown field",
			filters: []Filter{{Field: "VENUE", Operator: "EQ", Value: "Hall A"}},
			wantErr: ErrInvalidFilter,
		},
		{
			name:    "unknown operator",
			filters: []Filter{{Field: "CITY", Operator: "LIKE", Value: "Lon"}},
			wantErr: ErrInvalidFilter,
		},
		{
			name:    "non-numeric value for numeric field",
			filters: []Filter{{Field: "MONTH", Operator: "EQ", Value: "June"}},
			wantErr: ErrInvalidFilter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := CompileFilters(tt.filters)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CompileFilters() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CompileFilters() unexpected error: %v", err)
			}
			if len(tt.wantFilters) > 0 && !reflect.DeepEqual(plan.Filters, tt.wantFilters) {
				t.Errorf("filters = %+v, want %+v", plan.Filters, tt.wantFilters)
			}
			if plan.InequalityField != tt.wantIneq {
				t.Errorf("inequality field = %q, want %q", plan.InequalityField, tt.wantIneq)
			}
			if got := plan.OrderBy(); !reflect.DeepEqual(got, tt.wantOrder) {
				t.Errorf("OrderBy() = %v, want %v", got, tt.wantOrder)
			}
		})
	}
}

func TestCompiledFilterInequality(t *testing.T) {
	eq := CompiledFilter{Field: "city", Operator: "=", Value: "Paris"}
	if eq.Inequality() {
		t.Error("equality filter reported as inequality")
	}
	ne := CompiledFilter{Field: "month", Operator: "!=", Value: 6}
	if !ne.Inequality() {
		t.Error("NE filter not reported as inequality")
	}
}
