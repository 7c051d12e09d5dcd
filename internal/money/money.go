// Package money formats minor-unit amounts for display.
package money

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/uillasnr/mobilefinance/internal/locale"
)

var symbols = map[string]string{
	"BRL": "R$",
	"USD": "$",
	"EUR": "€",
}

// Formatter renders amounts stored in minor units (cents).
type Formatter struct {
	Symbol     string
	DecimalSep string
	GroupSep   string
	spaced     bool // "R$ 10,00" vs "$10.00"
}

// NewFormatter returns a Formatter for an ISO 4217 code and a locale.
// Unknown codes are shown as the code itself.
func NewFormatter(currency string, loc locale.Locale) Formatter {
	code := strings.ToUpper(strings.TrimSpace(currency))
	sym, ok := symbols[code]
	if !ok {
		sym = code
	}
	return Formatter{
		Symbol:     sym,
		DecimalSep: loc.DecimalSep,
		GroupSep:   loc.GroupSep,
		spaced:     loc.DecimalSep == "," || !ok,
	}
}

// Format renders minor units, e.g. -123456 -> "- R$ 1.234,56".
func (f Formatter) Format(minor decimal.Decimal) string {
	major := minor.Abs().Shift(-2)
	s := f.Symbol
	if f.spaced {
		s += " "
	}
	s += f.number(major)
	if minor.IsNegative() {
		if f.spaced {
			return "- " + s
		}
		return "-" + s
	}
	return s
}

func (f Formatter) number(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(f.GroupSep)
		}
		b.WriteRune(r)
	}
	b.WriteString(f.DecimalSep)
	b.WriteString(frac)
	return b.String()
}
