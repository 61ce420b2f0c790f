// Package currency parses Brazilian locale-formatted monetary strings.
// Lead revenue arrives as free text from imports ("1.250.000,00", "R$ 50.000")
// and is only interpreted when a revenue filter is applied.
package currency

import (
	"errors"
	"strconv"
	"strings"
)

// ErrUnparsable is returned when the input cannot be interpreted as a value.
var ErrUnparsable = errors.New("unparsable currency value")

// ParseBRL converts a Brazilian-formatted monetary string into a float.
// Thousands separator is ".", decimal separator is ",". A leading currency
// symbol and surrounding whitespace are tolerated.
func ParseBRL(input string) (float64, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, ErrUnparsable
	}

	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = strings.TrimSpace(strings.TrimPrefix(s, "-"))
	}

	// "1.250.000,00" -> "1250000.00"
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrUnparsable
	}

	if negative {
		value = -value
	}
	return value, nil
}
