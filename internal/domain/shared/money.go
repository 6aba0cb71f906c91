package shared

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatMoney renders an amount as US dollars with grouping, e.g. "$4,500.00" or "-$12.50"
func FormatMoney(amount float64) string {
	if amount < 0 {
		return "-" + moneyPrinter.Sprintf("$%.2f", math.Abs(amount))
	}
	return moneyPrinter.Sprintf("$%.2f", amount)
}
