package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"kinvoice/internal/domain"
	"kinvoice/internal/pagination"
	"kinvoice/internal/repository"
)

func setup(t *testing.T) (*InvoiceService, *ShipmentService) {
	t.Helper()
	store := repository.NewMemoryStore()
	shipmentsRepo := repository.NewMemoryShipments(store)
	tx := repository.NewMemoryTx(store)
	is := NewInvoiceService(store, shipmentsRepo, tx)
	ss := NewShipmentService(shipmentsRepo, store, tx)
	return is, ss
}

func validInvoice() domain.Invoice {
	return domain.Invoice{
		Code:          "AAAAAAAAAA",
		Date:          time.Unix(0, 0).UTC(),
		Status:        domain.InvoiceStatusPaid,
		PaymentMethod: domain.PaymentMethodCreditCard,
		PaymentDate:   time.Unix(0, 0).UTC(),
		PaymentAmount: decimal.NewFromInt(1),
	}
}

func TestInvoice_Save_Create(t *testing.T) {
	ctx := context.Background()
	is, _ := setup(t)
	inv, err := is.Save(ctx, validInvoice())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if inv.ID == 0 {
		t.Fatalf("expected id assigned")
	}
}

func TestInvoice_Save_RoundsAmount(t *testing.T) {
	ctx := context.Background()
	is, _ := setup(t)
	in := validInvoice()
	in.PaymentAmount = decimal.RequireFromString("12.345")
	inv, err := is.Save(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if !inv.PaymentAmount.Equal(decimal.RequireFromString("12.35")) {
		t.Fatalf("expected 12.35, got %s", inv.PaymentAmount)
	}
}

func TestInvoice_Save_Invalid(t *testing.T) {
	ctx := context.Background()
	is, _ := setup(t)
	cases := map[string]func(*domain.Invoice){
		"bad status":     func(i *domain.Invoice) { i.Status = "DRAFT" },
		"bad method":     func(i *domain.Invoice) { i.PaymentMethod = "" },
		"negative money": func(i *domain.Invoice) { i.PaymentAmount = decimal.NewFromInt(-1) },
	}
	for name, mutate := range cases {
		in := validInvoice()
		mutate(&in)
		if _, err := is.Save(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected invalid input, got %v", name, err)
		}
	}
}

func TestInvoice_Update_Get_Delete(t *testing.T) {
	ctx := context.Background()
	is, _ := setup(t)
	inv, _ := is.Save(ctx, validInvoice())

	got, err := is.FindOne(ctx, inv.ID)
	if err != nil || got.ID != inv.ID {
		t.Fatalf("get failed: %v", err)
	}

	inv.Code = "BBBBBBBBBB"
	inv.Status = domain.InvoiceStatusIssued
	up, err := is.Save(ctx, *inv)
	if err != nil {
		t.Fatalf("update err: %v", err)
	}
	if up.Code != "BBBBBBBBBB" || up.Status != domain.InvoiceStatusIssued {
		t.Fatalf("not updated")
	}

	if err := is.Delete(ctx, inv.ID); err != nil {
		t.Fatalf("delete err: %v", err)
	}
	if _, err := is.FindOne(ctx, inv.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	// delete is idempotent
	if err := is.Delete(ctx, inv.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestInvoice_Update_Missing(t *testing.T) {
	ctx := context.Background()
	is, _ := setup(t)
	in := validInvoice()
	in.ID = 77
	if _, err := is.Save(ctx, in); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestInvoice_Update_NeverInserts(t *testing.T) {
	ctx := context.Background()
	is, _ := setup(t)
	for _, id := range []int64{0, -3} {
		in := validInvoice()
		in.ID = id
		if _, err := is.Update(ctx, in); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("id %d: expected not found, got %v", id, err)
		}
	}
	page, _ := is.FindAll(ctx, pagination.Request{Size: 20})
	if page.Total != 0 {
		t.Fatalf("update must not insert, got %d invoices", page.Total)
	}
}

func TestInvoice_Create_WithID(t *testing.T) {
	ctx := context.Background()
	is, _ := setup(t)
	in := validInvoice()
	in.ID = 5
	if _, err := is.Create(ctx, in); !errors.Is(err, domain.ErrIDExists) {
		t.Fatalf("expected id exists, got %v", err)
	}
}

func TestInvoice_FindOne_IncludesShipments(t *testing.T) {
	ctx := context.Background()
	is, ss := setup(t)
	inv, _ := is.Save(ctx, validInvoice())
	for range 2 {
		if _, err := ss.Save(ctx, domain.Shipment{Date: time.Now().UTC(), Invoice: &domain.Invoice{ID: inv.ID}}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := is.FindOne(ctx, inv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Shipments) != 2 {
		t.Fatalf("expected 2 shipments, got %d", len(got.Shipments))
	}

	if err := is.Delete(ctx, inv.ID); !errors.Is(err, domain.ErrInvoiceInUse) {
		t.Fatalf("expected invoice in use, got %v", err)
	}
}

func TestInvoice_FindAll_Paging(t *testing.T) {
	ctx := context.Background()
	is, _ := setup(t)
	for range 5 {
		if _, err := is.Save(ctx, validInvoice()); err != nil {
			t.Fatal(err)
		}
	}

	page, err := is.FindAll(ctx, pagination.Request{Page: 1, Size: 2})
	if err != nil {
		t.Fatalf("list err: %v", err)
	}
	if page.Total != 5 || len(page.Content) != 2 || page.TotalPages() != 3 {
		t.Fatalf("unexpected page: total=%d len=%d pages=%d", page.Total, len(page.Content), page.TotalPages())
	}
	if page.Content[0].ID != 3 {
		t.Fatalf("expected id 3 first on page 1, got %d", page.Content[0].ID)
	}
}
