// Package pricing canonicalizes the heterogeneous price representations
// found in menu and cart documents into plain numeric amounts.
package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Normalize coerces a stored price into a canonical non-negative amount.
// Prices arrive either as numbers or as display strings in the
// "R$ 1.234,56" dialect (currency symbol, optional thousands dots,
// decimal comma), or as plain numeric strings. Anything unparseable
// normalizes to 0: a cart must always be able to compute some total
// rather than fail a checkout over a formatting bug.
func Normalize(v any) float64 {
	switch p := v.(type) {
	case nil:
		return 0
	case float64:
		return nonNegative(p)
	case float32:
		return nonNegative(float64(p))
	case int:
		return nonNegative(float64(p))
	case int32:
		return nonNegative(float64(p))
	case int64:
		return nonNegative(float64(p))
	case string:
		return parseString(p)
	default:
		return parseString(fmt.Sprint(v))
	}
}

// Format renders a canonical amount back to the "R$ X,YY" display form.
// It round-trips canonical values, not every input Normalize accepts.
func Format(v float64) string {
	return "R$ " + strings.Replace(strconv.FormatFloat(nonNegative(v), 'f', 2, 64), ".", ",", 1)
}

func parseString(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		// Display form: dots separate thousands, the comma separates decimals.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return nonNegative(f)
}

func nonNegative(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	return f
}
