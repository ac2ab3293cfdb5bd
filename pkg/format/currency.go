// Package format renders currency amounts for display.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts with a currency symbol and the digit grouping of
// a language.
type Formatter struct {
	printer      *message.Printer
	symbol       string
	symbolSuffix bool
}

// NewFormatter builds a Formatter for the given BCP 47 language tag. An
// unparsable tag falls back to English. When symbolSuffix is set the symbol
// follows the amount ("1.234,56 €"), otherwise it leads it ("$1,234.56").
func NewFormatter(tag, symbol string, symbolSuffix bool) *Formatter {
	lang, err := language.Parse(tag)
	if err != nil {
		lang = language.English
	}
	return &Formatter{
		printer:      message.NewPrinter(lang),
		symbol:       symbol,
		symbolSuffix: symbolSuffix,
	}
}

var defaultFormatter = NewFormatter("en", "$", false)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	return defaultFormatter.Currency(amount)
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return defaultFormatter.Numeric(amount)
}

// Currency formats amount with the configured symbol.
func (f *Formatter) Currency(amount float64) string {
	sign := ""
	if amount < 0 && math.Abs(amount) >= 0.005 {
		sign = "-"
	}
	digits := f.printer.Sprintf("%.2f", math.Abs(amount))
	if f.symbolSuffix {
		return sign + digits + " " + f.symbol
	}
	return sign + f.symbol + digits
}

// Numeric formats amount with grouping but no symbol.
func (f *Formatter) Numeric(amount float64) string {
	sign := ""
	if amount < 0 && math.Abs(amount) >= 0.005 {
		sign = "-"
	}
	return sign + f.printer.Sprintf("%.2f", math.Abs(amount))
}
