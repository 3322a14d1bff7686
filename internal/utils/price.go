package utils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Indian price shorthand multipliers, in rupees.
var amountUnits = map[string]float64{
	"k":      1_000,
	"l":      100_000,
	"lac":    100_000,
	"lacs":   100_000,
	"lakh":   100_000,
	"lakhs":  100_000,
	"cr":     10_000_000,
	"crore":  10_000_000,
	"crores": 10_000_000,
}

var amountPattern = regexp.MustCompile(`^([0-9][0-9,]*\.?[0-9]*)\s*([a-zA-Z]*)\.?$`)

// ParseAmount converts an Indian price string to rupees.
// "60L" -> 6000000, "1.2 Cr" -> 12000000, "95k" -> 95000.
// Plain numbers pass through unchanged, so re-parsing an already
// normalized amount is a no-op.
func ParseAmount(input string) (float64, error) {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimPrefix(s, "Rs.")
	s = strings.TrimPrefix(s, "Rs")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	matches := amountPattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("unrecognized amount %q", input)
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(matches[1], ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("unrecognized amount %q", input)
	}

	unit := strings.ToLower(matches[2])
	if unit == "" {
		return value, nil
	}
	multiplier, ok := amountUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unknown price unit %q in %q", matches[2], input)
	}
	return value * multiplier, nil
}

// FormatAmount renders rupees in the shorthand buyers read:
// 12000000 -> "₹1.2 Cr", 6000000 -> "₹60 L", 95000 -> "₹95 K".
func FormatAmount(rupees float64) string {
	switch {
	case rupees >= 10_000_000:
		return "₹" + trimFloat(rupees/10_000_000) + " Cr"
	case rupees >= 100_000:
		return "₹" + trimFloat(rupees/100_000) + " L"
	case rupees >= 1_000:
		return "₹" + trimFloat(rupees/1_000) + " K"
	default:
		return "₹" + trimFloat(rupees)
	}
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
