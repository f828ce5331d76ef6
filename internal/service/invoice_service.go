package service

import (
	"context"
	"errors"
	"log/slog"

	"kinvoice/internal/domain"
	"kinvoice/internal/pagination"
	"kinvoice/internal/repository"
)

var ErrInvalidInput = errors.New("invalid input")

// InvoiceService CRUD по счетам; каждая операция в своей транзакции
type InvoiceService struct {
	invoices  repository.InvoiceRepository
	shipments repository.ShipmentRepository
	tx        repository.TxManager
}

func NewInvoiceService(invoices repository.InvoiceRepository, shipments repository.ShipmentRepository, tx repository.TxManager) *InvoiceService {
	return &InvoiceService{invoices: invoices, shipments: shipments, tx: tx}
}

// Save создаёт счёт при ID == 0, иначе обновляет существующий
func (s *InvoiceService) Save(ctx context.Context, inv domain.Invoice) (*domain.Invoice, error) {
	if inv.ID == 0 {
		return s.Create(ctx, inv)
	}
	return s.Update(ctx, inv)
}

// Create сохраняет новый счёт; ID назначает хранилище
func (s *InvoiceService) Create(ctx context.Context, inv domain.Invoice) (*domain.Invoice, error) {
	slog.DebugContext(ctx, "request to create invoice", "code", inv.Code)
	if inv.ID != 0 {
		return nil, domain.ErrIDExists
	}
	cp, err := prepareInvoice(inv)
	if err != nil {
		return nil, err
	}
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.invoices.Create(ctx, &cp)
	})
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// Update перезаписывает существующий счёт; ID <= 0 или отсутствующий даёт ErrNotFound
func (s *InvoiceService) Update(ctx context.Context, inv domain.Invoice) (*domain.Invoice, error) {
	slog.DebugContext(ctx, "request to update invoice", "id", inv.ID, "code", inv.Code)
	if inv.ID <= 0 {
		return nil, domain.ErrNotFound
	}
	cp, err := prepareInvoice(inv)
	if err != nil {
		return nil, err
	}
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.invoices.Update(ctx, &cp)
	})
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func prepareInvoice(inv domain.Invoice) (domain.Invoice, error) {
	if !inv.Status.Valid() || !inv.PaymentMethod.Valid() || inv.PaymentAmount.IsNegative() {
		return domain.Invoice{}, ErrInvalidInput
	}
	cp := inv.Clone()
	cp.Shipments = nil
	cp.PaymentAmount = cp.PaymentAmount.Round(domain.AmountScale)
	return cp, nil
}

// FindAll страница счетов без отгрузок
func (s *InvoiceService) FindAll(ctx context.Context, req pagination.Request) (pagination.Page[domain.Invoice], error) {
	slog.DebugContext(ctx, "request to get all invoices", "page", req.Page, "size", req.Size)
	var page pagination.Page[domain.Invoice]
	err := s.tx.WithReadOnlyTransaction(ctx, func(ctx context.Context) error {
		list, err := s.invoices.List(ctx, req)
		if err != nil {
			return err
		}
		total, err := s.invoices.Count(ctx)
		if err != nil {
			return err
		}
		page = pagination.NewPage(list, req, total)
		return nil
	})
	return page, err
}

// FindOne счёт вместе с отгрузками, которые на него ссылаются
func (s *InvoiceService) FindOne(ctx context.Context, id int64) (*domain.Invoice, error) {
	slog.DebugContext(ctx, "request to get invoice", "id", id)
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	var inv *domain.Invoice
	err := s.tx.WithReadOnlyTransaction(ctx, func(ctx context.Context) error {
		var err error
		inv, err = s.invoices.GetByID(ctx, id)
		if err != nil {
			return err
		}
		inv.Shipments, err = s.shipments.ListByInvoice(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Delete идемпотентен; счёт с отгрузками удалить нельзя (domain.ErrInvoiceInUse)
func (s *InvoiceService) Delete(ctx context.Context, id int64) error {
	slog.DebugContext(ctx, "request to delete invoice", "id", id)
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.invoices.Delete(ctx, id)
	})
}
