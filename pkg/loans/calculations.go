// Package loans computes loan amortization schedules.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/amortize/pkg/mathutil"
)

// Period holds the values of one scheduled payment, rounded to cents.
type Period struct {
	Number    int     `json:"period"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

// Totals aggregates the displayed values of a schedule.
type Totals struct {
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
}

// Schedule is the full amortization table of a loan.
type Schedule struct {
	Method  Method   `json:"method"`
	Terms   Terms    `json:"terms"`
	Periods []Period `json:"periods"`
	Totals  Totals   `json:"totals"`
}

// Compute builds the schedule of the given method.
func Compute(t Terms, method Method) (Schedule, error) {
	switch method {
	case MethodFrench:
		return French(t), nil
	case MethodGerman:
		return German(t), nil
	default:
		return Schedule{}, fmt.Errorf("%w: %q", ErrUnknownMethod, string(method))
	}
}

// Installment returns the unrounded constant installment of the French
// method: the annuity payment, or a linear split of the principal when the
// rate is zero.
func Installment(t Terms) float64 {
	n := float64(t.PeriodCount())
	r := t.PeriodRate()
	if r == 0 {
		return t.Principal / n
	}
	return t.Principal * r / (1 - math.Pow(1+r, -n))
}

// French computes a constant installment schedule. The balance recurrence
// runs at full precision; values are rounded only when a period is emitted.
func French(t Terms) Schedule {
	n := t.PeriodCount()
	r := t.PeriodRate()
	installment := Installment(t)

	balance := t.Principal
	periods := make([]Period, 0, n)
	for k := 1; k <= n; k++ {
		interest := balance * r
		principal := installment - interest
		if principal > balance || k == n {
			// The last period settles whatever drift is left, at the same
			// installment.
			principal = balance
			interest = installment - principal
		}
		balance -= principal
		periods = append(periods, newPeriod(k, installment, principal, interest, balance))
	}

	return newSchedule(MethodFrench, t, periods)
}

// German computes a constant principal schedule.
func German(t Terms) Schedule {
	n := t.PeriodCount()
	r := t.PeriodRate()
	amortization := t.Principal / float64(n)

	balance := t.Principal
	periods := make([]Period, 0, n)
	for k := 1; k <= n; k++ {
		interest := balance * r
		principal := amortization
		if principal > balance {
			principal = balance
		}
		payment := principal + interest
		balance -= principal
		periods = append(periods, newPeriod(k, payment, principal, interest, balance))
	}

	return newSchedule(MethodGerman, t, periods)
}

// SumTotals adds the rounded per-period values, so the totals always match
// the sum of the rows as displayed.
func SumTotals(periods []Period) Totals {
	payments := make([]float64, len(periods))
	principals := make([]float64, len(periods))
	interests := make([]float64, len(periods))
	for i, p := range periods {
		payments[i] = p.Payment
		principals[i] = p.Principal
		interests[i] = p.Interest
	}
	return Totals{
		Payment:   mathutil.Sum(payments...),
		Principal: mathutil.Sum(principals...),
		Interest:  mathutil.Sum(interests...),
	}
}

func newPeriod(number int, payment, principal, interest, balance float64) Period {
	return Period{
		Number:    number,
		Payment:   mathutil.Round(payment),
		Principal: mathutil.Round(principal),
		Interest:  mathutil.Round(interest),
		Balance:   mathutil.Round(mathutil.Max(0, balance)),
	}
}

func newSchedule(method Method, t Terms, periods []Period) Schedule {
	return Schedule{
		Method:  method,
		Terms:   t,
		Periods: periods,
		Totals:  SumTotals(periods),
	}
}
