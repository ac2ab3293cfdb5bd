package validation

import (
	"fmt"
	"math"
	"strconv"

	"github.com/iwvelando/amortize/pkg/loans"
	"github.com/iwvelando/amortize/pkg/mathutil"
)

// ConfigValidator inspects configured loans for suspicious but computable
// settings and reports them as warnings.
type ConfigValidator struct {
	Loans []LoanConfig
}

// LoanConfig carries the loan fields the validator looks at.
type LoanConfig struct {
	Name            string
	TermYears       float64
	PaymentsPerYear float64
	Method          string
}

// ValidatePeriodCount warns when term * paymentsPerYear is not a whole number
// of periods and will be rounded.
func ValidatePeriodCount(loanName string, termYears, paymentsPerYear float64) string {
	product := termYears * paymentsPerYear
	if math.IsNaN(product) || math.IsInf(product, 0) || product == math.Trunc(product) {
		return ""
	}
	return fmt.Sprintf("Loan '%s' term of %g years at %g payments per year is %s periods, rounded to %d",
		loanName, termYears, paymentsPerYear, strconv.FormatFloat(mathutil.Round(product), 'f', -1, 64),
		int(math.Round(product)))
}

// ValidateAll validates every loan and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	seen := make(map[string]int)
	for i, loan := range cv.Loans {
		name := loan.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
			warnings = append(warnings, fmt.Sprintf("Loan %s has no name", name))
		} else if _, dup := seen[name]; dup {
			warnings = append(warnings, fmt.Sprintf("Loan name '%s' is used more than once", name))
		}
		seen[name]++

		if loan.Method != "" {
			if _, err := loans.ParseMethod(loan.Method); err != nil {
				warnings = append(warnings, fmt.Sprintf("Loan '%s' has unknown method '%s'", name, loan.Method))
			}
		}

		if warning := ValidatePeriodCount(name, loan.TermYears, loan.PaymentsPerYear); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	return warnings
}
