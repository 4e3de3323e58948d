// Package money formats whole-rupiah amounts the way the storefront displays
// them everywhere: "Rp" prefix, a non-breaking space, "." thousands grouping and
// no fraction digits.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	idrSymbol = "Rp"
	nbsp      = "\u00a0"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatIDR renders amount as Indonesian Rupiah, e.g. 25000 -> "Rp 25.000".
func FormatIDR(amount int64) string {
	if amount < 0 {
		return "-" + idrSymbol + nbsp + printer.Sprintf("%d", -amount)
	}
	return idrSymbol + nbsp + printer.Sprintf("%d", amount)
}

// Formatter turns an amount into display text.
type Formatter func(int64) string
