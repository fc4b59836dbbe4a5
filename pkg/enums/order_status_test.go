package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusCancelEligibility(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusPendiente, OrderStatusPagado, OrderStatusEnProceso} {
		assert.Truef(t, status.IsCancelable(), "%q should be cancelable", status)
	}
	for _, status := range []OrderStatus{OrderStatusDespachado, OrderStatusCompletado, OrderStatusCancelado} {
		assert.Falsef(t, status.IsCancelable(), "%q should not be cancelable", status)
	}
	assert.False(t, OrderStatus("perdido").IsCancelable())
}

func TestOrderStatusLabels(t *testing.T) {
	assert.Equal(t, "En Proceso", OrderStatusEnProceso.Label())
	assert.Equal(t, "Cancelado", OrderStatusCancelado.Label())
	assert.Equal(t, "Pendiente", OrderStatus("perdido").Label())
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("  En Proceso ")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusEnProceso, status)

	_, err = ParseOrderStatus("shipped")
	assert.Error(t, err)
}

func TestOrderStatusesIsACopy(t *testing.T) {
	statuses := OrderStatuses()
	require.Len(t, statuses, 6)
	statuses[0] = "mutated"
	assert.Equal(t, OrderStatusPendiente, OrderStatuses()[0])
}

func TestClassifyIdentification(t *testing.T) {
	tests := []struct {
		value string
		kind  IdentificationKind
		ok    bool
	}{
		{value: "1712345678", kind: IdentificationCedula, ok: true},
		{value: "1712345678001", kind: IdentificationRUC, ok: true},
		{value: "AB12345", kind: IdentificationPassport, ok: true},
		{value: "12345", ok: false},
		{value: "ABC-12345", ok: false},
	}
	for _, tt := range tests {
		kind, ok := ClassifyIdentification(tt.value)
		assert.Equal(t, tt.ok, ok, tt.value)
		assert.Equal(t, tt.kind, kind, tt.value)
	}
}
