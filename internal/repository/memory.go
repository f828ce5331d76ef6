package repository

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"kinvoice/internal/domain"
	"kinvoice/internal/pagination"
)

// MemoryStore объединённое in-memory хранилище и простой генератор ID
type MemoryStore struct {
	mu             sync.RWMutex
	nextInvoiceID  int64
	nextShipmentID int64
	invoicesByID   map[int64]domain.Invoice
	// у хранимой отгрузки заполнен только Invoice.ID
	shipmentsByID map[int64]domain.Shipment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextInvoiceID:  1,
		nextShipmentID: 1,
		invoicesByID:   make(map[int64]domain.Invoice),
		shipmentsByID:  make(map[int64]domain.Shipment),
	}
}

// transaction-aware locking helpers
type txKey struct{}

type txMode int

const (
	txNone txMode = iota
	txRead
	txWrite
)

func txModeOf(ctx context.Context) txMode {
	m, _ := ctx.Value(txKey{}).(txMode)
	return m
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if txModeOf(ctx) == txNone {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if txModeOf(ctx) == txNone {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) error {
	switch txModeOf(ctx) {
	case txRead:
		return domain.ErrReadOnlyTx
	case txNone:
		m.mu.Lock()
	}
	return nil
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if txModeOf(ctx) == txNone {
		m.mu.Unlock()
	}
}

func (m *MemoryStore) Ping(ctx context.Context) error { return nil }

// Ensure interfaces
var (
	_ InvoiceRepository = (*MemoryStore)(nil)
	_ Pinger            = (*MemoryStore)(nil)
)

// InvoiceRepository implementation
func (m *MemoryStore) Create(ctx context.Context, inv *domain.Invoice) error {
	if err := m.wlock(ctx); err != nil {
		return err
	}
	defer m.wunlock(ctx)
	inv.ID = m.nextInvoiceID
	m.nextInvoiceID++
	m.invoicesByID[inv.ID] = storedInvoice(inv)
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	inv, ok := m.invoicesByID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	// return copy
	cp := inv.Clone()
	return &cp, nil
}

func (m *MemoryStore) Update(ctx context.Context, inv *domain.Invoice) error {
	if err := m.wlock(ctx); err != nil {
		return err
	}
	defer m.wunlock(ctx)
	if _, ok := m.invoicesByID[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	m.invoicesByID[inv.ID] = storedInvoice(inv)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id int64) error {
	if err := m.wlock(ctx); err != nil {
		return err
	}
	defer m.wunlock(ctx)
	if _, ok := m.invoicesByID[id]; !ok {
		return nil
	}
	for _, s := range m.shipmentsByID {
		if s.InvoiceID() == id {
			return domain.ErrInvoiceInUse
		}
	}
	delete(m.invoicesByID, id)
	return nil
}

func (m *MemoryStore) List(ctx context.Context, req pagination.Request) ([]domain.Invoice, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Invoice, 0, len(m.invoicesByID))
	for _, inv := range m.invoicesByID {
		out = append(out, inv.Clone())
	}
	if err := sortRecords(out, req.Sort, invoiceComparators); err != nil {
		return nil, err
	}
	return pageOf(out, req), nil
}

func (m *MemoryStore) Count(ctx context.Context) (int64, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	return int64(len(m.invoicesByID)), nil
}

func storedInvoice(inv *domain.Invoice) domain.Invoice {
	cp := inv.Clone()
	cp.Shipments = nil
	return cp
}

// ShipmentRepository implementation on wrapper type
type MemoryShipments struct{ store *MemoryStore }

func NewMemoryShipments(store *MemoryStore) *MemoryShipments { return &MemoryShipments{store: store} }

var _ ShipmentRepository = (*MemoryShipments)(nil)

func (ms *MemoryShipments) Create(ctx context.Context, s *domain.Shipment) error {
	if err := ms.store.wlock(ctx); err != nil {
		return err
	}
	defer ms.store.wunlock(ctx)
	if _, ok := ms.store.invoicesByID[s.InvoiceID()]; !ok {
		return domain.ErrInvoiceNotFound
	}
	s.ID = ms.store.nextShipmentID
	ms.store.nextShipmentID++
	ms.store.shipmentsByID[s.ID] = storedShipment(s)
	return nil
}

func (ms *MemoryShipments) GetByID(ctx context.Context, id int64) (*domain.Shipment, error) {
	ms.store.rlock(ctx)
	defer ms.store.runlock(ctx)
	s, ok := ms.store.shipmentsByID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := ms.resolve(s)
	return &cp, nil
}

func (ms *MemoryShipments) Update(ctx context.Context, s *domain.Shipment) error {
	if err := ms.store.wlock(ctx); err != nil {
		return err
	}
	defer ms.store.wunlock(ctx)
	if _, ok := ms.store.shipmentsByID[s.ID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := ms.store.invoicesByID[s.InvoiceID()]; !ok {
		return domain.ErrInvoiceNotFound
	}
	ms.store.shipmentsByID[s.ID] = storedShipment(s)
	return nil
}

func (ms *MemoryShipments) Delete(ctx context.Context, id int64) error {
	if err := ms.store.wlock(ctx); err != nil {
		return err
	}
	defer ms.store.wunlock(ctx)
	delete(ms.store.shipmentsByID, id)
	return nil
}

func (ms *MemoryShipments) List(ctx context.Context, req pagination.Request) ([]domain.Shipment, error) {
	ms.store.rlock(ctx)
	defer ms.store.runlock(ctx)
	out := make([]domain.Shipment, 0, len(ms.store.shipmentsByID))
	for _, s := range ms.store.shipmentsByID {
		out = append(out, ms.resolve(s))
	}
	if err := sortRecords(out, req.Sort, shipmentComparators); err != nil {
		return nil, err
	}
	return pageOf(out, req), nil
}

func (ms *MemoryShipments) ListByInvoice(ctx context.Context, invoiceID int64) ([]domain.Shipment, error) {
	ms.store.rlock(ctx)
	defer ms.store.runlock(ctx)
	out := make([]domain.Shipment, 0)
	for _, s := range ms.store.shipmentsByID {
		if s.InvoiceID() == invoiceID {
			out = append(out, ms.resolve(s))
		}
	}
	slices.SortFunc(out, func(a, b domain.Shipment) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (ms *MemoryShipments) Count(ctx context.Context) (int64, error) {
	ms.store.rlock(ctx)
	defer ms.store.runlock(ctx)
	return int64(len(ms.store.shipmentsByID)), nil
}

// resolve подставляет актуальную копию счёта; вызывается под блокировкой
func (ms *MemoryShipments) resolve(s domain.Shipment) domain.Shipment {
	cp := s.Clone()
	if inv, ok := ms.store.invoicesByID[s.InvoiceID()]; ok {
		ic := inv.Clone()
		cp.Invoice = &ic
	}
	return cp
}

func storedShipment(s *domain.Shipment) domain.Shipment {
	cp := s.Clone()
	cp.Invoice = &domain.Invoice{ID: s.InvoiceID()}
	return cp
}

// Tx manager using store locks to emulate transaction boundary.
// Write transactions snapshot the maps and restore them if fn fails.
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

var _ TxManager = (*MemoryTx)(nil)

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	switch txModeOf(ctx) {
	case txWrite:
		return fn(ctx)
	case txRead:
		return domain.ErrReadOnlyTx
	}
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	invoices, shipments := maps.Clone(s.invoicesByID), maps.Clone(s.shipmentsByID)
	nextInv, nextShip := s.nextInvoiceID, s.nextShipmentID

	if err := fn(context.WithValue(ctx, txKey{}, txWrite)); err != nil {
		s.invoicesByID, s.shipmentsByID = invoices, shipments
		s.nextInvoiceID, s.nextShipmentID = nextInv, nextShip
		return err
	}
	return nil
}

func (tx *MemoryTx) WithReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if txModeOf(ctx) != txNone {
		return fn(ctx)
	}
	tx.store.mu.RLock()
	defer tx.store.mu.RUnlock()
	return fn(context.WithValue(ctx, txKey{}, txRead))
}

// comparators for in-memory sorting; nil values sort last in ascending order,
// as in Postgres
var invoiceComparators = map[string]func(a, b *domain.Invoice) int{
	"id":            func(a, b *domain.Invoice) int { return cmp.Compare(a.ID, b.ID) },
	"code":          func(a, b *domain.Invoice) int { return strings.Compare(a.Code, b.Code) },
	"date":          func(a, b *domain.Invoice) int { return a.Date.Compare(b.Date) },
	"details":       func(a, b *domain.Invoice) int { return compareOptional(a.Details, b.Details) },
	"status":        func(a, b *domain.Invoice) int { return cmp.Compare(a.Status, b.Status) },
	"paymentMethod": func(a, b *domain.Invoice) int { return cmp.Compare(a.PaymentMethod, b.PaymentMethod) },
	"paymentDate":   func(a, b *domain.Invoice) int { return a.PaymentDate.Compare(b.PaymentDate) },
	"paymentAmount": func(a, b *domain.Invoice) int { return a.PaymentAmount.Cmp(b.PaymentAmount) },
}

var shipmentComparators = map[string]func(a, b *domain.Shipment) int{
	"id":           func(a, b *domain.Shipment) int { return cmp.Compare(a.ID, b.ID) },
	"trackingCode": func(a, b *domain.Shipment) int { return compareOptional(a.TrackingCode, b.TrackingCode) },
	"date":         func(a, b *domain.Shipment) int { return a.Date.Compare(b.Date) },
	"details":      func(a, b *domain.Shipment) int { return compareOptional(a.Details, b.Details) },
	"invoice.id":   func(a, b *domain.Shipment) int { return cmp.Compare(a.InvoiceID(), b.InvoiceID()) },
}

func compareOptional(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return strings.Compare(*a, *b)
}

func sortRecords[T any](items []T, orders []pagination.Order, cmps map[string]func(a, b *T) int) error {
	for _, o := range orders {
		if _, ok := cmps[o.Property]; !ok {
			return fmt.Errorf("%w: %q", pagination.ErrInvalidSort, o.Property)
		}
	}
	orders = append(slices.Clone(orders), pagination.Order{Property: "id", Direction: pagination.Asc})
	slices.SortStableFunc(items, func(a, b T) int {
		for _, o := range orders {
			c := cmps[o.Property](&a, &b)
			if o.Descending() {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	return nil
}

func pageOf[T any](items []T, req pagination.Request) []T {
	if req.Size <= 0 {
		return items
	}
	start := req.Offset()
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := min(start+req.Size, len(items))
	return items[start:end]
}
