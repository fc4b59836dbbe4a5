package enums

import "fmt"

// ProductUnit tells the backend how an order line quantity is measured.
type ProductUnit string

const (
	// ProductUnitLbs marks weight-based lines, which is how every mix line is ordered.
	ProductUnitLbs  ProductUnit = "lbs"
	ProductUnitEach ProductUnit = "unit"
)

var validProductUnits = []ProductUnit{
	ProductUnitLbs,
	ProductUnitEach,
}

// String implements fmt.Stringer.
func (u ProductUnit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known ProductUnit.
func (u ProductUnit) IsValid() bool {
	for _, candidate := range validProductUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseProductUnit converts raw input into a ProductUnit.
func ParseProductUnit(value string) (ProductUnit, error) {
	for _, candidate := range validProductUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product unit %q", value)
}
