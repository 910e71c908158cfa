// Package core holds the domain model for the drawer reconciliation
// and debt ledger system.
//
// This file contains monetary amount parsing and formatting. Amounts
// are stored as int64 cents to avoid floating-point drift.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is a monetary amount in cents. Debt transaction amounts may be
// negative; drawer entry fields are non-negative.
type Money struct {
	Cents int64
}

// ParseDecimalToCents converts a non-negative decimal string to cents
// with half-up rounding on the third decimal place. Both dot (12.34)
// and comma (12,34) separators are accepted. An empty string parses to
// zero so that blank form fields mean "nothing counted".
//
// Examples:
//
//	ParseDecimalToCents("")       -> 0, nil
//	ParseDecimalToCents("12.34")  -> 1234, nil
//	ParseDecimalToCents("12,344") -> 1234, nil (rounds down)
//	ParseDecimalToCents("12.345") -> 1235, nil (rounds up)
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	return parseUnsigned(s)
}

// ParseSignedCents converts a decimal string to cents, allowing a
// leading minus for ledger entries that reduce a client balance.
func ParseSignedCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	cents, err := parseUnsigned(s)
	if err != nil {
		return 0, err
	}
	if neg {
		return -cents, nil
	}
	return cents, nil
}

func parseUnsigned(s string) (int64, error) {
	s = strings.ReplaceAll(s, ",", ".")
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}

// String renders the amount for messages and views: whole amounts print
// without decimals ("150"), fractional ones with two ("150.50").
func (m Money) String() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	units := cents / 100
	rem := cents % 100
	var s string
	if rem == 0 {
		s = strconv.FormatInt(units, 10)
	} else {
		s = strconv.FormatInt(units, 10) + "." + fmt.Sprintf("%02d", rem)
	}
	if neg {
		return "-" + s
	}
	return s
}

// Units returns the amount as a float64 for display scaling only.
// Use cents for any arithmetic.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}
