package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// суммы в JSON отдаются числом, а не строкой
	decimal.MarshalJSONWithoutQuotes = true
}

// InvoiceStatus статус счёта
type InvoiceStatus string

const (
	InvoiceStatusIssued    InvoiceStatus = "ISSUED"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusIssued, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentMethodCreditCard     PaymentMethod = "CREDIT_CARD"
	PaymentMethodCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
	PaymentMethodPaypal         PaymentMethod = "PAYPAL"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodCashOnDelivery, PaymentMethodPaypal:
		return true
	}
	return false
}

// AmountScale число знаков после запятой у paymentAmount (numeric(21,2))
const (
	AmountScale     = 2
	AmountPrecision = 21
)

// Invoice счёт. ID == 0 означает, что запись ещё не сохранена.
type Invoice struct {
	ID            int64           `json:"id"`
	Code          string          `json:"code"`
	Date          time.Time       `json:"date"`
	Details       *string         `json:"details"`
	Status        InvoiceStatus   `json:"status"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	PaymentDate   time.Time       `json:"paymentDate"`
	PaymentAmount decimal.Decimal `json:"paymentAmount"`
	Shipments     []Shipment      `json:"shipments,omitempty"`
}

// Equal сравнивает счета только по идентификатору; несохранённый счёт равен лишь самому себе
func (i *Invoice) Equal(other *Invoice) bool {
	if i == nil || other == nil {
		return false
	}
	if i == other {
		return true
	}
	return i.ID != 0 && other.ID != 0 && i.ID == other.ID
}

// Clone возвращает глубокую копию
func (i Invoice) Clone() Invoice {
	cp := i
	if i.Details != nil {
		d := *i.Details
		cp.Details = &d
	}
	if i.Shipments != nil {
		cp.Shipments = make([]Shipment, len(i.Shipments))
		for n, s := range i.Shipments {
			cp.Shipments[n] = s.Clone()
		}
	}
	return cp
}

// Shipment отгрузка по счёту
type Shipment struct {
	ID           int64     `json:"id"`
	TrackingCode *string   `json:"trackingCode"`
	Date         time.Time `json:"date"`
	Details      *string   `json:"details"`
	// Invoice ссылка на счёт; в ответах shipments у вложенного счёта не заполняются
	Invoice *Invoice `json:"invoice"`
}

// InvoiceID id счёта, на который ссылается отгрузка, или 0
func (s *Shipment) InvoiceID() int64 {
	if s.Invoice == nil {
		return 0
	}
	return s.Invoice.ID
}

// Equal сравнивает отгрузки только по идентификатору
func (s *Shipment) Equal(other *Shipment) bool {
	if s == nil || other == nil {
		return false
	}
	if s == other {
		return true
	}
	return s.ID != 0 && other.ID != 0 && s.ID == other.ID
}

func (s Shipment) Clone() Shipment {
	cp := s
	if s.TrackingCode != nil {
		tc := *s.TrackingCode
		cp.TrackingCode = &tc
	}
	if s.Details != nil {
		d := *s.Details
		cp.Details = &d
	}
	if s.Invoice != nil {
		inv := *s.Invoice
		inv.Shipments = nil
		inv = inv.Clone()
		cp.Invoice = &inv
	}
	return cp
}
