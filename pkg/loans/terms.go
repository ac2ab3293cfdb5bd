package loans

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/amortize/pkg/constants"
)

// Method selects the amortization convention of a schedule.
type Method string

const (
	// MethodFrench keeps the installment constant; the principal share grows
	// as the balance shrinks.
	MethodFrench Method = "french"
	// MethodGerman keeps the principal share constant; the installment
	// decreases with the balance.
	MethodGerman Method = "german"
)

// ErrUnknownMethod is returned when a schedule method is not recognized.
var ErrUnknownMethod = errors.New("unknown schedule method")

// ParseMethod resolves a method name, case-insensitively. The Spanish names
// "francesa" and "alemana" are accepted as aliases.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "french", "francesa":
		return MethodFrench, nil
	case "german", "alemana":
		return MethodGerman, nil
	default:
		return "", fmt.Errorf("%w: %q (expected %s or %s)", ErrUnknownMethod, name, MethodFrench, MethodGerman)
	}
}

// Title returns the display name of the method.
func (m Method) Title() string {
	switch m {
	case MethodFrench:
		return "French"
	case MethodGerman:
		return "German"
	default:
		return string(m)
	}
}

// Description returns the display name of the method with its defining trait.
func (m Method) Description() string {
	switch m {
	case MethodFrench:
		return "French (constant installment)"
	case MethodGerman:
		return "German (constant amortization)"
	default:
		return string(m)
	}
}

// Terms holds validated loan parameters. Build it with NewTerms; the schedule
// functions assume the values already passed Validate.
type Terms struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annualRate"`
	TermYears         float64 `json:"termYears"`
	PaymentsPerYear   int     `json:"paymentsPerYear"`
}

// NewTerms validates the raw inputs and returns the resulting Terms. On
// failure the error is a ValidationErrors listing every offending field.
func NewTerms(principal, annualRate, termYears, paymentsPerYear float64) (Terms, error) {
	if errs := Validate(principal, annualRate, termYears, paymentsPerYear); errs != nil {
		return Terms{}, errs
	}
	return Terms{
		Principal:         principal,
		AnnualRatePercent: annualRate,
		TermYears:         termYears,
		PaymentsPerYear:   int(paymentsPerYear),
	}, nil
}

// PeriodCount returns round(TermYears * PaymentsPerYear). A non-integral
// product is rounded to the nearest period, which can shorten or lengthen the
// effective term; see PeriodCountExact.
func (t Terms) PeriodCount() int {
	return periodCount(t.TermYears, t.PaymentsPerYear)
}

// PeriodCountExact reports whether TermYears * PaymentsPerYear is integral.
func (t Terms) PeriodCountExact() bool {
	product := t.TermYears * float64(t.PaymentsPerYear)
	return product == math.Trunc(product)
}

// PeriodRate returns the nominal annual rate as a per-period fraction.
func (t Terms) PeriodRate() float64 {
	return t.AnnualRatePercent / constants.PercentageMultiplier / float64(t.PaymentsPerYear)
}

func periodCount(termYears float64, paymentsPerYear int) int {
	return int(math.Round(termYears * float64(paymentsPerYear)))
}
