// Package currency renders monetary values according to a project's
// currency display mode. Exchange-rate math happens server-side; the
// client only formats what it receives.
package currency

import (
	"fmt"
	"strings"

	"github.com/nbourbon/admin-obras-sub001/internal/model"
)

// Currency symbols as the original product displays them.
const (
	SymbolARS = "AR$"
	SymbolUSD = "U$D"
)

// FormatARS renders an amount in Argentine convention: AR$ 1.234,56.
func FormatARS(amount float64) string {
	return SymbolARS + " " + group(amount, ".", ",")
}

// FormatUSD renders an amount in US convention: U$D 1,234.56.
func FormatUSD(amount float64) string {
	return SymbolUSD + " " + group(amount, ",", ".")
}

// Format renders the amounts a project's currency mode calls for. In
// dual mode both values are shown, ARS first.
func Format(mode model.CurrencyMode, ars, usd float64) string {
	switch mode {
	case model.CurrencyARS:
		return FormatARS(ars)
	case model.CurrencyUSD:
		return FormatUSD(usd)
	default:
		return FormatARS(ars) + " / " + FormatUSD(usd)
	}
}

// group formats with two decimals and the given thousands/decimal
// separators.
func group(amount float64, thousands, decimal string) string {
	s := fmt.Sprintf("%.2f", amount)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(thousands)
		}
		b.WriteRune(r)
	}

	out := b.String() + decimal + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
