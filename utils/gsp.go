package utils

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrInvalidGSP is returned when a GSP input field contains no digits at all.
var ErrInvalidGSP = errors.New("invalid GSP value: no digits")

var gspPrinter = message.NewPrinter(language.Japanese)

// FormatGSP renders a GSP value with digit grouping, e.g. 9123456 → "9,123,456".
func FormatGSP(gsp int) string {
	return gspPrinter.Sprintf("%d", gsp)
}

// ParseGSPInput extracts the numeric value from a free-form GSP input,
// tolerating grouping commas and stray characters the way the entry field
// does. Inputs without any digit are a validation failure — callers must not
// issue a store call with the result in that case.
func ParseGSPInput(input string) (int, error) {
	var digits strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, ErrInvalidGSP
	}
	gsp, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, ErrInvalidGSP
	}
	return gsp, nil
}
