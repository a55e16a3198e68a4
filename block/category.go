package block

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Decimal and exponent forms only; hex, binary and "inf"/"nan" are not numeric
// category ids.
var numericPattern = regexp.MustCompile(`^[ \t\n\r\v\f]*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?[ \t\n\r\v\f]*$`)

func numericValue(s string) (float64, bool) {
	if !numericPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// CategoryID converts a category attribute to a category id. Empty and
// non-numeric values are rejected, as is anything that truncates to an id
// below 1.
func CategoryID(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	f, ok := numericValue(s)
	if !ok {
		return 0, false
	}
	id := int64(f)
	if id < 1 {
		return 0, false
	}
	return id, true
}
