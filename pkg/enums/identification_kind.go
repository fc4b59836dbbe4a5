package enums

import "regexp"

// IdentificationKind classifies the "cedula" field of a client record.
type IdentificationKind string

const (
	IdentificationCedula   IdentificationKind = "cedula"
	IdentificationRUC      IdentificationKind = "ruc"
	IdentificationPassport IdentificationKind = "passport"
)

var (
	cedulaPattern   = regexp.MustCompile(`^\d{10}$`)
	rucPattern      = regexp.MustCompile(`^\d{13}$`)
	passportPattern = regexp.MustCompile(`^[A-Za-z0-9]{6,9}$`)
)

// String implements fmt.Stringer.
func (k IdentificationKind) String() string {
	return string(k)
}

// ClassifyIdentification reports which identification format the value matches.
// Ten digit values are cedulas even though they also satisfy the passport shape.
func ClassifyIdentification(value string) (IdentificationKind, bool) {
	switch {
	case cedulaPattern.MatchString(value):
		return IdentificationCedula, true
	case rucPattern.MatchString(value):
		return IdentificationRUC, true
	case passportPattern.MatchString(value):
		return IdentificationPassport, true
	}
	return "", false
}
