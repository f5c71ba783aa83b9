package service

import (
	"regexp"
	"strconv"
	"strings"
)

// dollarAmountPattern matches "$50 million", "$1.5B", "$2,300,000" and
// similar monetary forms in filing text.
var dollarAmountPattern = regexp.MustCompile(`(?i)\$\s*([\d,]+(?:\.\d+)?)\s*(billion|million|thousand|bn|b|mm|m|k)?\b`)

// DollarAmount pairs a normalized dollar value with its compact display form.
type DollarAmount struct {
	Display string
	Value   float64
}

// ParseDollarValue normalizes a numeric string with an optional magnitude
// suffix to dollars. An amount with no recognizable suffix is a literal
// dollar figure.
func ParseDollarValue(number, suffix string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.ReplaceAll(number, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	switch strings.ToLower(suffix) {
	case "billion", "bn", "b":
		return n * 1e9, true
	case "million", "mm", "m":
		return n * 1e6, true
	case "thousand", "k":
		return n * 1e3, true
	default:
		return n, true
	}
}

// ExtractDollarAmounts finds every dollar-amount-like substring in text.
func ExtractDollarAmounts(text string) []DollarAmount {
	var amounts []DollarAmount
	for _, m := range dollarAmountPattern.FindAllStringSubmatch(text, -1) {
		value, ok := ParseDollarValue(m[1], m[2])
		if !ok {
			continue
		}
		amounts = append(amounts, DollarAmount{Display: formatAmount(value), Value: value})
	}
	return amounts
}

// LargestDollarAmount returns the biggest dollar figure in text. In a legal
// paragraph the largest figure is usually the claim or settlement total
// rather than an incidental reference.
func LargestDollarAmount(text string) (DollarAmount, bool) {
	amounts := ExtractDollarAmounts(text)
	if len(amounts) == 0 {
		return DollarAmount{}, false
	}
	largest := amounts[0]
	for _, a := range amounts[1:] {
		if a.Value > largest.Value {
			largest = a
		}
	}
	return largest, true
}

func formatAmount(value float64) string {
	switch {
	case value >= 1e12:
		return trimZero(value/1e12) + "T"
	case value >= 1e9:
		return trimZero(value/1e9) + "B"
	case value >= 1e6:
		return trimZero(value/1e6) + "M"
	case value >= 1e3:
		return trimZero(value/1e3) + "K"
	default:
		return "$" + strconv.FormatFloat(value, 'f', -1, 64)
	}
}

func trimZero(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	return "$" + s
}
