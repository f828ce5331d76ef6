package service

import (
	"context"
	"errors"
	"log/slog"

	"kinvoice/internal/domain"
	"kinvoice/internal/pagination"
	"kinvoice/internal/repository"
)

// ShipmentService CRUD по отгрузкам; проверяет, что счёт существует
type ShipmentService struct {
	shipments repository.ShipmentRepository
	invoices  repository.InvoiceRepository
	tx        repository.TxManager
}

func NewShipmentService(shipments repository.ShipmentRepository, invoices repository.InvoiceRepository, tx repository.TxManager) *ShipmentService {
	return &ShipmentService{shipments: shipments, invoices: invoices, tx: tx}
}

// Save создаёт отгрузку при ID == 0, иначе обновляет существующую
func (s *ShipmentService) Save(ctx context.Context, sh domain.Shipment) (*domain.Shipment, error) {
	if sh.ID == 0 {
		return s.Create(ctx, sh)
	}
	return s.Update(ctx, sh)
}

// Create сохраняет новую отгрузку; в ответе счёт подставлен целиком
func (s *ShipmentService) Create(ctx context.Context, sh domain.Shipment) (*domain.Shipment, error) {
	slog.DebugContext(ctx, "request to create shipment", "invoice", sh.InvoiceID())
	if sh.ID != 0 {
		return nil, domain.ErrIDExists
	}
	return s.write(ctx, sh, s.shipments.Create)
}

// Update перезаписывает существующую отгрузку; ID <= 0 или отсутствующая даёт ErrNotFound
func (s *ShipmentService) Update(ctx context.Context, sh domain.Shipment) (*domain.Shipment, error) {
	slog.DebugContext(ctx, "request to update shipment", "id", sh.ID, "invoice", sh.InvoiceID())
	if sh.ID <= 0 {
		return nil, domain.ErrNotFound
	}
	return s.write(ctx, sh, s.shipments.Update)
}

// write подставляет счёт и вызывает store внутри одной транзакции
func (s *ShipmentService) write(ctx context.Context, sh domain.Shipment, store func(context.Context, *domain.Shipment) error) (*domain.Shipment, error) {
	if sh.InvoiceID() <= 0 {
		return nil, ErrInvalidInput
	}
	cp := sh.Clone()
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		inv, err := s.invoices.GetByID(ctx, cp.InvoiceID())
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrInvoiceNotFound
			}
			return err
		}
		cp.Invoice = inv
		return store(ctx, &cp)
	})
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *ShipmentService) FindAll(ctx context.Context, req pagination.Request) (pagination.Page[domain.Shipment], error) {
	slog.DebugContext(ctx, "request to get all shipments", "page", req.Page, "size", req.Size)
	var page pagination.Page[domain.Shipment]
	err := s.tx.WithReadOnlyTransaction(ctx, func(ctx context.Context) error {
		list, err := s.shipments.List(ctx, req)
		if err != nil {
			return err
		}
		total, err := s.shipments.Count(ctx)
		if err != nil {
			return err
		}
		page = pagination.NewPage(list, req, total)
		return nil
	})
	return page, err
}

func (s *ShipmentService) FindOne(ctx context.Context, id int64) (*domain.Shipment, error) {
	slog.DebugContext(ctx, "request to get shipment", "id", id)
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	var sh *domain.Shipment
	err := s.tx.WithReadOnlyTransaction(ctx, func(ctx context.Context) error {
		var err error
		sh, err = s.shipments.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sh, nil
}

func (s *ShipmentService) Delete(ctx context.Context, id int64) error {
	slog.DebugContext(ctx, "request to delete shipment", "id", id)
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.shipments.Delete(ctx, id)
	})
}
