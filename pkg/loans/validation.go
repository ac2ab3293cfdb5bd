package loans

import (
	"math"
	"strings"

	"github.com/iwvelando/amortize/pkg/mathutil"
)

// Field names reported by ValidationError.
const (
	FieldPrincipal       = "principal"
	FieldAnnualRate      = "annualRate"
	FieldTermYears       = "termYears"
	FieldPaymentsPerYear = "paymentsPerYear"
)

// maxPeriodCount bounds period counts to what fits in an int.
const maxPeriodCount = float64(math.MaxInt)

// ValidationError describes a single loan input that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationErrors is the batch of every failing input, in field order.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	return strings.Join(errs.Messages(), "; ")
}

// Messages returns the human-readable message of each error.
func (errs ValidationErrors) Messages() []string {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Message)
	}
	return messages
}

// Validate checks the four raw loan inputs independently and returns every
// problem found, or nil when all inputs are usable. paymentsPerYear is taken
// as a float so non-integral values can be reported instead of truncated.
func Validate(principal, annualRate, termYears, paymentsPerYear float64) ValidationErrors {
	var errs ValidationErrors

	if !mathutil.IsFinite(principal) || principal <= 0 {
		errs = append(errs, ValidationError{
			Field:   FieldPrincipal,
			Message: "principal must be a number greater than 0",
		})
	}
	if !mathutil.IsFinite(annualRate) || annualRate < 0 {
		errs = append(errs, ValidationError{
			Field:   FieldAnnualRate,
			Message: "annual interest rate must be a number greater than or equal to 0",
		})
	}
	termOK := mathutil.IsFinite(termYears) && termYears > 0
	if !termOK {
		errs = append(errs, ValidationError{
			Field:   FieldTermYears,
			Message: "term in years must be a number greater than 0",
		})
	}
	frequencyOK := mathutil.IsWhole(paymentsPerYear) && paymentsPerYear > 0
	if !frequencyOK {
		errs = append(errs, ValidationError{
			Field:   FieldPaymentsPerYear,
			Message: "payments per year must be an integer greater than 0",
		})
	}

	if termOK && frequencyOK {
		switch periods := math.Round(termYears * paymentsPerYear); {
		case paymentsPerYear >= maxPeriodCount || periods >= maxPeriodCount:
			errs = append(errs, ValidationError{
				Field:   FieldTermYears,
				Message: "term is too long for the payment frequency",
			})
		case periods < 1:
			errs = append(errs, ValidationError{
				Field:   FieldTermYears,
				Message: "term is too short for the payment frequency",
			})
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
