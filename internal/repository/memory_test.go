package repository

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"kinvoice/internal/domain"
	"kinvoice/internal/pagination"
)

func newInvoice(code string, amount string) domain.Invoice {
	return domain.Invoice{
		Code:          code,
		Date:          time.Unix(0, 0).UTC(),
		Status:        domain.InvoiceStatusPaid,
		PaymentMethod: domain.PaymentMethodCreditCard,
		PaymentDate:   time.Unix(0, 0).UTC(),
		PaymentAmount: decimal.RequireFromString(amount),
	}
}

func TestMemoryStore_InvoiceCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	inv := newInvoice("A", "10.00")
	if err := store.Create(ctx, &inv); err != nil {
		t.Fatalf("create: %v", err)
	}
	if inv.ID == 0 {
		t.Fatalf("no id")
	}

	got, err := store.GetByID(ctx, inv.ID)
	if err != nil || got.ID != inv.ID || got.Code != "A" {
		t.Fatalf("get: %v", err)
	}

	inv.Code = "B"
	if err := store.Update(ctx, &inv); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = store.GetByID(ctx, inv.ID)
	if got.Code != "B" {
		t.Fatalf("update not applied: %q", got.Code)
	}

	if err := store.Delete(ctx, inv.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetByID(ctx, inv.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	// idempotent delete
	if err := store.Delete(ctx, inv.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestMemoryStore_UpdateMissing(t *testing.T) {
	store := NewMemoryStore()
	inv := newInvoice("A", "1")
	inv.ID = 42
	if err := store.Update(context.Background(), &inv); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	details := "orig"
	inv := newInvoice("A", "1")
	inv.Details = &details
	_ = store.Create(ctx, &inv)

	got, _ := store.GetByID(ctx, inv.ID)
	*got.Details = "changed"
	details = "changed too"

	again, _ := store.GetByID(ctx, inv.ID)
	if *again.Details != "orig" {
		t.Fatalf("store leaked a reference: %q", *again.Details)
	}
}

func TestMemoryShipments_InvoiceReference(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	shipments := NewMemoryShipments(store)

	s := domain.Shipment{Date: time.Unix(0, 0).UTC(), Invoice: &domain.Invoice{ID: 99}}
	if err := shipments.Create(ctx, &s); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("expected invoice not found, got %v", err)
	}

	inv := newInvoice("A", "1")
	_ = store.Create(ctx, &inv)
	s.Invoice = &domain.Invoice{ID: inv.ID}
	if err := shipments.Create(ctx, &s); err != nil {
		t.Fatalf("create shipment: %v", err)
	}

	got, err := shipments.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("get shipment: %v", err)
	}
	if got.Invoice == nil || got.Invoice.Code != "A" {
		t.Fatalf("invoice not resolved: %+v", got.Invoice)
	}

	list, _ := shipments.ListByInvoice(ctx, inv.ID)
	if len(list) != 1 || list[0].ID != s.ID {
		t.Fatalf("list by invoice: %+v", list)
	}

	// referenced invoice cannot be deleted
	if err := store.Delete(ctx, inv.ID); !errors.Is(err, domain.ErrInvoiceInUse) {
		t.Fatalf("expected invoice in use, got %v", err)
	}
	if err := shipments.Delete(ctx, s.ID); err != nil {
		t.Fatalf("delete shipment: %v", err)
	}
	if err := store.Delete(ctx, inv.ID); err != nil {
		t.Fatalf("delete invoice: %v", err)
	}
}

func TestMemoryTx_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tx := NewMemoryTx(store)

	boom := errors.New("boom")
	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		inv := newInvoice("A", "1")
		if err := store.Create(ctx, &inv); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("tx: %v", err)
	}

	n, _ := store.Count(ctx)
	if n != 0 {
		t.Fatalf("expected rollback, count %d", n)
	}

	// id counter restored as well
	inv := newInvoice("B", "1")
	_ = store.Create(ctx, &inv)
	if inv.ID != 1 {
		t.Fatalf("expected id 1 after rollback, got %d", inv.ID)
	}
}

func TestMemoryTx_ReadOnlyRejectsWrites(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tx := NewMemoryTx(store)

	err := tx.WithReadOnlyTransaction(ctx, func(ctx context.Context) error {
		if _, err := store.Count(ctx); err != nil {
			return err
		}
		inv := newInvoice("A", "1")
		return store.Create(ctx, &inv)
	})
	if !errors.Is(err, domain.ErrReadOnlyTx) {
		t.Fatalf("expected read-only error, got %v", err)
	}

	err = tx.WithReadOnlyTransaction(ctx, func(ctx context.Context) error {
		return tx.WithTransaction(ctx, func(ctx context.Context) error { return nil })
	})
	if !errors.Is(err, domain.ErrReadOnlyTx) {
		t.Fatalf("expected read-only error for nested write tx, got %v", err)
	}
}

func TestList_SortAndPage(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	add := func(code, amount string) {
		inv := newInvoice(code, amount)
		if err := store.Create(ctx, &inv); err != nil {
			t.Fatal(err)
		}
	}
	add("C", "30")
	add("A", "10")
	add("B", "20")
	add("D", "20")

	// default order is by id
	list, _ := store.List(ctx, pagination.Request{Page: 0, Size: 10})
	if len(list) != 4 || list[0].Code != "C" || list[3].Code != "D" {
		t.Fatalf("default order: %+v", list)
	}

	list, _ = store.List(ctx, pagination.Request{Page: 0, Size: 2, Sort: []pagination.Order{{Property: "code", Direction: pagination.Asc}}})
	if len(list) != 2 || list[0].Code != "A" || list[1].Code != "B" {
		t.Fatalf("sort by code: %+v", list)
	}

	list, _ = store.List(ctx, pagination.Request{Page: 1, Size: 2, Sort: []pagination.Order{{Property: "code", Direction: pagination.Asc}}})
	if len(list) != 2 || list[0].Code != "C" || list[1].Code != "D" {
		t.Fatalf("second page: %+v", list)
	}

	// ties on amount fall back to id
	list, _ = store.List(ctx, pagination.Request{Page: 0, Size: 10, Sort: []pagination.Order{{Property: "paymentAmount", Direction: pagination.Desc}}})
	if list[0].Code != "C" || list[1].Code != "B" || list[2].Code != "D" || list[3].Code != "A" {
		t.Fatalf("sort by amount desc: %+v", list)
	}

	list, _ = store.List(ctx, pagination.Request{Page: 5, Size: 2})
	if len(list) != 0 {
		t.Fatalf("expected empty page, got %d", len(list))
	}

	list, err := store.List(ctx, pagination.Request{Page: math.MaxInt / 10, Size: 20})
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty page for huge page number, got %d (%v)", len(list), err)
	}

	if _, err := store.List(ctx, pagination.Request{Size: 2, Sort: []pagination.Order{{Property: "nope"}}}); !errors.Is(err, pagination.ErrInvalidSort) {
		t.Fatalf("expected invalid sort, got %v", err)
	}
}

func TestOrderByClause(t *testing.T) {
	got, err := orderByClause([]pagination.Order{{Property: "paymentAmount", Direction: pagination.Desc}}, invoiceColumns)
	if err != nil {
		t.Fatal(err)
	}
	if got != "ORDER BY payment_amount DESC, id ASC" {
		t.Fatalf("unexpected clause %q", got)
	}

	got, _ = orderByClause([]pagination.Order{{Property: "invoice.id", Direction: pagination.Asc}, {Property: "id", Direction: pagination.Desc}}, shipmentColumns)
	if got != "ORDER BY s.invoice_id ASC, s.id DESC" {
		t.Fatalf("unexpected clause %q", got)
	}

	if _, err := orderByClause([]pagination.Order{{Property: "code; DROP TABLE invoice"}}, invoiceColumns); !errors.Is(err, pagination.ErrInvalidSort) {
		t.Fatalf("expected invalid sort, got %v", err)
	}
}
