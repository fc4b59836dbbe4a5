package mixes

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RefKind tells how a stored ingredient encoded its product reference.
type RefKind int

const (
	// RefUnresolved carries no usable identifier.
	RefUnresolved RefKind = iota
	// RefBareID is a plain id string: "665f...".
	RefBareID
	// RefWrappedID is an id inside an object: {"$oid": ...}, {"_id": ...} or {"id": ...}.
	RefWrappedID
	// RefSnapshot is an embedded product carrying a name and/or price, with or without id.
	RefSnapshot
)

func (k RefKind) String() string {
	switch k {
	case RefBareID:
		return "bare_id"
	case RefWrappedID:
		return "wrapped_id"
	case RefSnapshot:
		return "snapshot"
	default:
		return "unresolved"
	}
}

// ProductRef is the decoded form of a stored product reference.
type ProductRef struct {
	Kind  RefKind
	ID    string
	Name  string
	Price *float64
}

// Resolved reports whether the reference yields a product id.
func (r ProductRef) Resolved() bool {
	return r.ID != ""
}

// ParseProductRef decodes every supported reference shape. Anything it cannot read
// becomes RefUnresolved; it never fails.
func ParseProductRef(raw json.RawMessage) ProductRef {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ProductRef{Kind: RefUnresolved}
	}

	switch trimmed[0] {
	case '"':
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return ProductRef{Kind: RefUnresolved}
		}
		if id = strings.TrimSpace(id); id == "" {
			return ProductRef{Kind: RefUnresolved}
		}
		return ProductRef{Kind: RefBareID, ID: id}
	case '{':
		return parseObjectRef(trimmed)
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err == nil && n.String() != "" {
			return ProductRef{Kind: RefBareID, ID: n.String()}
		}
		return ProductRef{Kind: RefUnresolved}
	}
}

func parseObjectRef(raw []byte) ProductRef {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ProductRef{Kind: RefUnresolved}
	}

	id := ""
	for _, key := range []string{"$oid", "_id", "id"} {
		value, ok := fields[key]
		if !ok {
			continue
		}
		// {"_id": {"$oid": ...}} nests one level further
		if nested := ParseProductRef(value); nested.Resolved() {
			id = nested.ID
			break
		}
	}

	name := stringField(fields, "name")
	price, hasPrice := numberField(fields, "pricePerPound", "price")
	if name != "" || hasPrice {
		ref := ProductRef{Kind: RefSnapshot, ID: id, Name: name}
		if hasPrice {
			ref.Price = &price
		}
		return ref
	}
	if id != "" {
		return ProductRef{Kind: RefWrappedID, ID: id}
	}
	return ProductRef{Kind: RefUnresolved}
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func numberField(fields map[string]json.RawMessage, keys ...string) (float64, bool) {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			continue
		}
		if n, ok := toNumber(value); ok {
			return n, true
		}
	}
	return 0, false
}

// toNumber reads a stored numeric field that may be a JSON number or a numeric string.
func toNumber(value any) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
