package config

import (
	"fmt"

	"github.com/iwvelando/amortize/pkg/loans"
	"github.com/iwvelando/amortize/pkg/output"
	"go.uber.org/zap"
)

// Loan indicates a loan and its parameters.
type Loan struct {
	Name            string  `yaml:"name"`
	Principal       float64 `yaml:"principal"`
	AnnualRate      float64 `yaml:"annualRate"` // percent
	TermYears       float64 `yaml:"termYears"`
	PaymentsPerYear float64 `yaml:"paymentsPerYear"`
	Method          string  `yaml:"method,omitempty"` // french (default) or german

	Schedule loans.Schedule `yaml:"-" mapstructure:"-"`
}

// ProcessLoans iterates through all loans and produces the amortization
// schedules.
func (conf *Configuration) ProcessLoans(logger *zap.Logger) error {
	generator := loans.NewScheduleGenerator(logger)
	for i := range conf.Loans {
		if err := conf.Loans[i].GetAmortizationSchedule(generator); err != nil {
			return err
		}
	}
	return nil
}

// GetAmortizationSchedule computes the amortization schedule for a given Loan.
func (loan *Loan) GetAmortizationSchedule(generator *loans.ScheduleGenerator) error {
	method := loans.MethodFrench
	if loan.Method != "" {
		parsed, err := loans.ParseMethod(loan.Method)
		if err != nil {
			return fmt.Errorf("loan %s: %w", loan.Name, err)
		}
		method = parsed
	}

	schedule, err := generator.Generate(loan.Principal, loan.AnnualRate, loan.TermYears, loan.PaymentsPerYear, method)
	if err != nil {
		return fmt.Errorf("loan %s: %w", loan.Name, err)
	}
	loan.Schedule = schedule
	return nil
}

// Schedules returns the computed schedule of every loan, in configuration order.
func (conf *Configuration) Schedules() []output.NamedSchedule {
	results := make([]output.NamedSchedule, 0, len(conf.Loans))
	for _, loan := range conf.Loans {
		results = append(results, output.NamedSchedule{Name: loan.Name, Schedule: loan.Schedule})
	}
	return results
}
