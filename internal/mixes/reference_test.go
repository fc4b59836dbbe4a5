package mixes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductRefShapes(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		kind   RefKind
		id     string
		label  string
		priced bool
	}{
		{name: "bare id", raw: `"665f1a"`, kind: RefBareID, id: "665f1a"},
		{name: "padded bare id", raw: `"  665f1a "`, kind: RefBareID, id: "665f1a"},
		{name: "numeric id", raw: `42`, kind: RefBareID, id: "42"},
		{name: "oid wrapper", raw: `{"$oid":"665f1b"}`, kind: RefWrappedID, id: "665f1b"},
		{name: "underscore id", raw: `{"_id":"665f1c"}`, kind: RefWrappedID, id: "665f1c"},
		{name: "nested oid", raw: `{"_id":{"$oid":"665f1d"}}`, kind: RefWrappedID, id: "665f1d"},
		{name: "plain id key", raw: `{"id":"665f1e"}`, kind: RefWrappedID, id: "665f1e"},
		{name: "populated product", raw: `{"_id":"665f1f","name":"Almendras","pricePerPound":3.5}`, kind: RefSnapshot, id: "665f1f", label: "Almendras", priced: true},
		{name: "snapshot without id", raw: `{"name":"Pasas","price":"2.25"}`, kind: RefSnapshot, label: "Pasas", priced: true},
		{name: "null", raw: `null`, kind: RefUnresolved},
		{name: "empty string", raw: `""`, kind: RefUnresolved},
		{name: "empty object", raw: `{}`, kind: RefUnresolved},
		{name: "array", raw: `["665f"]`, kind: RefUnresolved},
		{name: "boolean", raw: `true`, kind: RefUnresolved},
		{name: "missing", raw: ``, kind: RefUnresolved},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ref := ParseProductRef(json.RawMessage(tc.raw))
			assert.Equal(t, tc.kind, ref.Kind, "kind %s", ref.Kind)
			assert.Equal(t, tc.id, ref.ID)
			assert.Equal(t, tc.id != "", ref.Resolved())
			assert.Equal(t, tc.label, ref.Name)
			assert.Equal(t, tc.priced, ref.Price != nil)
		})
	}
}

func TestParseProductRefSnapshotPrice(t *testing.T) {
	ref := ParseProductRef(json.RawMessage(`{"name":"Nueces","pricePerPound":"4.75"}`))
	require.NotNil(t, ref.Price)
	assert.Equal(t, 4.75, *ref.Price)

	ref = ParseProductRef(json.RawMessage(`{"name":"Nueces","pricePerPound":"NaN"}`))
	assert.Nil(t, ref.Price)
	assert.Equal(t, RefSnapshot, ref.Kind)
}

func TestRefKindString(t *testing.T) {
	assert.Equal(t, "bare_id", RefBareID.String())
	assert.Equal(t, "wrapped_id", RefWrappedID.String())
	assert.Equal(t, "snapshot", RefSnapshot.String())
	assert.Equal(t, "unresolved", RefUnresolved.String())
}
