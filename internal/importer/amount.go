package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses s in the given number style.
// European examples: "1.234,56" -> 1234.56, "-588,74" -> -588.74.
func parseAmount(s string, style numberStyle) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(s, " ", "")

	if style == numberEuropean {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	return decimal.NewFromString(clean)
}
