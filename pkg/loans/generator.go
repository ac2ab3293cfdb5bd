package loans

import (
	"fmt"

	"go.uber.org/zap"
)

// ScheduleGenerator validates raw loan inputs and builds their schedules,
// logging what it computed.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// Generate validates the inputs and computes the schedule for method. A
// validation failure is returned as ValidationErrors and no schedule is built.
func (g *ScheduleGenerator) Generate(principal, annualRate, termYears, paymentsPerYear float64, method Method) (Schedule, error) {
	terms, err := NewTerms(principal, annualRate, termYears, paymentsPerYear)
	if err != nil {
		return Schedule{}, err
	}
	return g.GenerateFromTerms(terms, method)
}

// GenerateFromTerms computes the schedule for already validated terms.
func (g *ScheduleGenerator) GenerateFromTerms(terms Terms, method Method) (Schedule, error) {
	if !terms.PeriodCountExact() {
		g.logger.Debug(fmt.Sprintf("term of %g years at %d payments per year rounded to %d periods",
			terms.TermYears, terms.PaymentsPerYear, terms.PeriodCount()),
			zap.String("op", "loans.GenerateFromTerms"),
		)
	}

	schedule, err := Compute(terms, method)
	if err != nil {
		return Schedule{}, err
	}

	g.logger.Debug("computed amortization schedule",
		zap.String("op", "loans.GenerateFromTerms"),
		zap.String("method", string(method)),
		zap.Int("periods", len(schedule.Periods)),
		zap.Float64("total_payment", schedule.Totals.Payment),
		zap.Float64("total_interest", schedule.Totals.Interest),
	)
	return schedule, nil
}
