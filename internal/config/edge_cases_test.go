package config

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/amortize/pkg/loans"
	"go.uber.org/zap"
)

// TestLoanEdgeCases tests various edge cases in loan processing
func TestLoanEdgeCases(t *testing.T) {
	generator := loans.NewScheduleGenerator(zap.NewNop())

	tests := []struct {
		name            string
		loan            Loan
		expectError     bool
		expectedPeriods int
		expectedMethod  loans.Method
		description     string
	}{
		{
			name:            "Zero interest rate",
			loan:            Loan{Name: "Interest Free", Principal: 1200, AnnualRate: 0, TermYears: 1, PaymentsPerYear: 12},
			expectedPeriods: 12,
			expectedMethod:  loans.MethodFrench,
			description:     "Zero interest loans split the principal evenly",
		},
		{
			name:            "Fractional term rounds up",
			loan:            Loan{Name: "Odd Term", Principal: 5000, AnnualRate: 6, TermYears: 1.3, PaymentsPerYear: 12, Method: "german"},
			expectedPeriods: 16,
			expectedMethod:  loans.MethodGerman,
			description:     "15.6 periods are rounded to 16",
		},
		{
			name:            "Fractional term rounds down",
			loan:            Loan{Name: "Short Term", Principal: 5000, AnnualRate: 6, TermYears: 1.2, PaymentsPerYear: 4, Method: "francesa"},
			expectedPeriods: 5,
			expectedMethod:  loans.MethodFrench,
			description:     "4.8 periods are rounded to 5",
		},
		{
			name:            "Single payment",
			loan:            Loan{Name: "Bullet", Principal: 1000, AnnualRate: 10, TermYears: 1, PaymentsPerYear: 1, Method: "ALEMANA"},
			expectedPeriods: 1,
			expectedMethod:  loans.MethodGerman,
			description:     "Method aliases are case-insensitive",
		},
		{
			name:        "Term shorter than one period",
			loan:        Loan{Name: "Too Short", Principal: 1000, AnnualRate: 10, TermYears: 0.01, PaymentsPerYear: 12},
			expectError: true,
			description: "0.12 periods rounds to no payments at all",
		},
		{
			name:        "Fractional payments per year",
			loan:        Loan{Name: "Fractional", Principal: 1000, AnnualRate: 10, TermYears: 1, PaymentsPerYear: 12.5},
			expectError: true,
			description: "Payments per year must be integral",
		},
		{
			name:        "Infinite principal",
			loan:        Loan{Name: "Infinite", Principal: math.Inf(1), AnnualRate: 10, TermYears: 1, PaymentsPerYear: 12},
			expectError: true,
			description: "Non-finite inputs are rejected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := tt.loan
			err := loan.GetAmortizationSchedule(generator)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %s: %s", tt.name, tt.description)
				}
				var validationErrs loans.ValidationErrors
				if !errors.As(err, &validationErrs) {
					t.Errorf("Expected ValidationErrors, got %T", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for %s: %v", tt.name, err)
			}
			if len(loan.Schedule.Periods) != tt.expectedPeriods {
				t.Errorf("Expected %d periods, got %d (%s)", tt.expectedPeriods, len(loan.Schedule.Periods), tt.description)
			}
			if loan.Schedule.Method != tt.expectedMethod {
				t.Errorf("Expected method %s, got %s", tt.expectedMethod, loan.Schedule.Method)
			}

			last := loan.Schedule.Periods[len(loan.Schedule.Periods)-1]
			if last.Balance != 0 {
				t.Errorf("Final balance should be 0, got %.2f", last.Balance)
			}
			if math.Abs(loan.Schedule.Totals.Principal-loan.Principal) > 0.01*float64(tt.expectedPeriods) {
				t.Errorf("Total principal %.2f too far from %.2f", loan.Schedule.Totals.Principal, loan.Principal)
			}
		})
	}
}

// TestLoanErrorNamesLoan checks that schedule errors identify the loan.
func TestLoanErrorNamesLoan(t *testing.T) {
	loan := Loan{Name: "broken", Principal: -1, AnnualRate: 5, TermYears: 1, PaymentsPerYear: 12}

	err := loan.GetAmortizationSchedule(loans.NewScheduleGenerator(zap.NewNop()))
	if err == nil {
		t.Fatal("Expected error for negative principal")
	}
	if got := err.Error(); got != "loan broken: principal must be a number greater than 0" {
		t.Errorf("Unexpected error message: %q", got)
	}
}
