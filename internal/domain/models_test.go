package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoice_Equal(t *testing.T) {
	a := &Invoice{ID: 1, Code: "A"}
	b := &Invoice{ID: 1, Code: "B"}
	c := &Invoice{ID: 2, Code: "A"}

	assert.True(t, a.Equal(b), "same id, different fields")
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))

	unsaved1 := &Invoice{Code: "A"}
	unsaved2 := &Invoice{Code: "A"}
	assert.False(t, unsaved1.Equal(unsaved2))
	assert.True(t, unsaved1.Equal(unsaved1), "same instance")
	assert.False(t, unsaved1.Equal(a))
	assert.False(t, a.Equal(unsaved1))
}

func TestShipment_Equal(t *testing.T) {
	a := &Shipment{ID: 1}
	b := &Shipment{ID: 1, Details: ptr("x")}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(&Shipment{ID: 2}))
	assert.False(t, (&Shipment{}).Equal(&Shipment{}))
}

func TestEnums_Valid(t *testing.T) {
	assert.True(t, InvoiceStatusPaid.Valid())
	assert.False(t, InvoiceStatus("DRAFT").Valid())
	assert.True(t, PaymentMethodPaypal.Valid())
	assert.False(t, PaymentMethod("").Valid())
}

func TestShipment_CloneDropsNestedShipments(t *testing.T) {
	inv := &Invoice{ID: 5, Shipments: []Shipment{{ID: 9}}}
	s := Shipment{ID: 9, TrackingCode: ptr("T1"), Invoice: inv}

	cp := s.Clone()
	require.NotNil(t, cp.Invoice)
	assert.Equal(t, int64(5), cp.Invoice.ID)
	assert.Nil(t, cp.Invoice.Shipments)

	*cp.TrackingCode = "T2"
	assert.Equal(t, "T1", *s.TrackingCode)
	assert.Len(t, inv.Shipments, 1)
}

func TestInvoice_JSONFieldNames(t *testing.T) {
	inv := Invoice{
		ID:            1,
		Code:          "AAAAAAAAAA",
		Date:          time.Unix(0, 0).UTC(),
		Status:        InvoiceStatusPaid,
		PaymentMethod: PaymentMethodCreditCard,
		PaymentDate:   time.Unix(0, 0).UTC(),
		PaymentAmount: decimal.RequireFromString("1.00"),
	}
	raw, err := json.Marshal(inv)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "PAID", m["status"])
	assert.Equal(t, "CREDIT_CARD", m["paymentMethod"])
	assert.Equal(t, "1970-01-01T00:00:00Z", m["paymentDate"])
	assert.Equal(t, float64(1), m["paymentAmount"])
	assert.NotContains(t, m, "shipments")
}

func ptr(s string) *string { return &s }
