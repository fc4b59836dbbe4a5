// Package quantity holds the weight policy shared by every selection and order line.
package quantity

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	// Minimum is the smallest weight, in pounds, a line may carry.
	Minimum = 0.1
	// Default is the weight given to a freshly selected product.
	Default = 1.0
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Clamp turns any raw input into a valid weight. Unparseable input counts as zero,
// so the result is always at least Minimum.
func Clamp(raw any) float64 {
	return math.Max(Minimum, parse(raw))
}

func parse(raw any) float64 {
	var v float64
	switch value := raw.(type) {
	case nil:
		return 0
	case float64:
		v = value
	case float32:
		v = float64(value)
	case int:
		v = float64(value)
	case int8:
		v = float64(value)
	case int16:
		v = float64(value)
	case int32:
		v = float64(value)
	case int64:
		v = float64(value)
	case uint:
		v = float64(value)
	case uint8:
		v = float64(value)
	case uint16:
		v = float64(value)
	case uint32:
		v = float64(value)
	case uint64:
		v = float64(value)
	case json.Number:
		v = parseString(string(value))
	case string:
		v = parseString(value)
	case *float64:
		if value == nil {
			return 0
		}
		v = *value
	case *string:
		if value == nil {
			return 0
		}
		v = parseString(*value)
	default:
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parseString reads the longest leading decimal number, the way a free-text
// numeric field does ("2.5 lbs" is 2.5, "abc" is 0).
func parseString(s string) float64 {
	match := leadingNumber.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return v
}
