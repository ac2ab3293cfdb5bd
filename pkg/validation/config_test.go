package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePeriodCount(t *testing.T) {
	tests := []struct {
		name            string
		termYears       float64
		paymentsPerYear float64
		expected        string
	}{
		{"Whole number of periods", 30, 12, ""},
		{"Half year semiannual", 0.5, 2, ""},
		{"Rounded up", 2.5, 5, "Loan 'car' term of 2.5 years at 5 payments per year is 12.5 periods, rounded to 13"},
		{"Half period", 1.25, 2, "Loan 'car' term of 1.25 years at 2 payments per year is 2.5 periods, rounded to 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidatePeriodCount("car", tt.termYears, tt.paymentsPerYear))
		})
	}
}

func TestValidateAll(t *testing.T) {
	validator := ConfigValidator{
		Loans: []LoanConfig{
			{Name: "car", TermYears: 5, PaymentsPerYear: 12, Method: "french"},
			{Name: "car", TermYears: 2, PaymentsPerYear: 12, Method: "alemana"},
			{Name: "", TermYears: 1, PaymentsPerYear: 12},
			{Name: "boat", TermYears: 1, PaymentsPerYear: 12, Method: "balloon"},
			{Name: "house", TermYears: 0.75, PaymentsPerYear: 2, Method: "german"},
		},
	}

	assert.Equal(t, []string{
		"Loan name 'car' is used more than once",
		"Loan #3 has no name",
		"Loan 'boat' has unknown method 'balloon'",
		"Loan 'house' term of 0.75 years at 2 payments per year is 1.5 periods, rounded to 2",
	}, validator.ValidateAll())
}

func TestValidateAllClean(t *testing.T) {
	validator := ConfigValidator{
		Loans: []LoanConfig{{Name: "car", TermYears: 1, PaymentsPerYear: 12, Method: "french"}},
	}
	assert.Empty(t, validator.ValidateAll())
}
