package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"kinvoice/internal/domain"
	"kinvoice/internal/pagination"
)

func TestShipment_CreateResolvesInvoice(t *testing.T) {
	ctx := context.Background()
	is, ss := setup(t)
	inv, _ := is.Save(ctx, validInvoice())

	code := "TRACK-1"
	sh, err := ss.Save(ctx, domain.Shipment{TrackingCode: &code, Date: time.Unix(0, 0).UTC(), Invoice: &domain.Invoice{ID: inv.ID}})
	if err != nil {
		t.Fatalf("create shipment: %v", err)
	}
	if sh.ID == 0 {
		t.Fatalf("expected id")
	}
	if sh.Invoice == nil || sh.Invoice.Code != inv.Code {
		t.Fatalf("invoice not embedded: %+v", sh.Invoice)
	}

	got, err := ss.FindOne(ctx, sh.ID)
	if err != nil || *got.TrackingCode != code {
		t.Fatalf("find: %v", err)
	}
}

func TestShipment_UnknownInvoice(t *testing.T) {
	ctx := context.Background()
	_, ss := setup(t)
	_, err := ss.Save(ctx, domain.Shipment{Date: time.Now(), Invoice: &domain.Invoice{ID: 12}})
	if !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("expected invoice not found, got %v", err)
	}
}

func TestShipment_Invalid(t *testing.T) {
	ctx := context.Background()
	_, ss := setup(t)
	if _, err := ss.Save(ctx, domain.Shipment{Date: time.Now()}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input without invoice, got %v", err)
	}
	if _, err := ss.Create(ctx, domain.Shipment{ID: 4, Date: time.Now(), Invoice: &domain.Invoice{ID: 1}}); !errors.Is(err, domain.ErrIDExists) {
		t.Fatalf("expected id exists, got %v", err)
	}
}

func TestShipment_Update_NeverInserts(t *testing.T) {
	ctx := context.Background()
	is, ss := setup(t)
	inv, _ := is.Save(ctx, validInvoice())
	for _, id := range []int64{0, -1} {
		_, err := ss.Update(ctx, domain.Shipment{ID: id, Date: time.Now(), Invoice: &domain.Invoice{ID: inv.ID}})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("id %d: expected not found, got %v", id, err)
		}
	}
	page, _ := ss.FindAll(ctx, pagination.Request{Size: 20})
	if page.Total != 0 {
		t.Fatalf("update must not insert, got %d shipments", page.Total)
	}
}

func TestShipment_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	is, ss := setup(t)
	inv1, _ := is.Save(ctx, validInvoice())
	inv2, _ := is.Save(ctx, validInvoice())

	sh, err := ss.Save(ctx, domain.Shipment{Date: time.Now().UTC(), Invoice: &domain.Invoice{ID: inv1.ID}})
	if err != nil {
		t.Fatal(err)
	}

	sh.Invoice = &domain.Invoice{ID: inv2.ID}
	moved, err := ss.Save(ctx, *sh)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if moved.InvoiceID() != inv2.ID {
		t.Fatalf("expected invoice %d, got %d", inv2.ID, moved.InvoiceID())
	}

	missing := *sh
	missing.ID = 999
	if _, err := ss.Save(ctx, missing); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	page, _ := ss.FindAll(ctx, pagination.Request{Size: 20})
	if page.Total != 1 {
		t.Fatalf("expected 1 shipment, got %d", page.Total)
	}

	if err := ss.Delete(ctx, sh.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := ss.FindOne(ctx, sh.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := ss.Delete(ctx, sh.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}
