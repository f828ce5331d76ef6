package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kinvoice/internal/domain"
	"kinvoice/internal/pagination"
)

const shipmentSelect = `SELECT s.id, s.tracking_code, s.date, s.details,
	i.id, i.code, i.date, i.details, i.status, i.payment_method, i.payment_date, i.payment_amount
	FROM shipment s JOIN invoice i ON i.id = s.invoice_id`

// PostgresShipments ShipmentRepository; счёт подтягивается join'ом
type PostgresShipments struct{ pool *pgxpool.Pool }

func NewPostgresShipments(pool *pgxpool.Pool) *PostgresShipments {
	return &PostgresShipments{pool: pool}
}

var _ ShipmentRepository = (*PostgresShipments)(nil)

func (r *PostgresShipments) Create(ctx context.Context, s *domain.Shipment) error {
	err := conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO shipment (tracking_code, date, details, invoice_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		s.TrackingCode, s.Date, s.Details, s.InvoiceID(),
	).Scan(&s.ID)
	if err != nil {
		if pgErrCode(err) == pgForeignKeyViolation {
			return domain.ErrInvoiceNotFound
		}
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

func (r *PostgresShipments) GetByID(ctx context.Context, id int64) (*domain.Shipment, error) {
	s, err := scanShipment(conn(ctx, r.pool).QueryRow(ctx, shipmentSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return &s, nil
}

func (r *PostgresShipments) Update(ctx context.Context, s *domain.Shipment) error {
	tag, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE shipment SET tracking_code = $1, date = $2, details = $3, invoice_id = $4 WHERE id = $5`,
		s.TrackingCode, s.Date, s.Details, s.InvoiceID(), s.ID,
	)
	if err != nil {
		if pgErrCode(err) == pgForeignKeyViolation {
			return domain.ErrInvoiceNotFound
		}
		return fmt.Errorf("update shipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresShipments) Delete(ctx context.Context, id int64) error {
	if _, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM shipment WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete shipment: %w", err)
	}
	return nil
}

func (r *PostgresShipments) List(ctx context.Context, req pagination.Request) ([]domain.Shipment, error) {
	orderBy, err := orderByClause(req.Sort, shipmentColumns)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, shipmentSelect+` `+orderBy+` LIMIT $1 OFFSET $2`, req.Size, req.Offset())
}

func (r *PostgresShipments) ListByInvoice(ctx context.Context, invoiceID int64) ([]domain.Shipment, error) {
	return r.query(ctx, shipmentSelect+` WHERE s.invoice_id = $1 ORDER BY s.id`, invoiceID)
}

func (r *PostgresShipments) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := conn(ctx, r.pool).QueryRow(ctx, `SELECT count(*) FROM shipment`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count shipments: %w", err)
	}
	return n, nil
}

func (r *PostgresShipments) query(ctx context.Context, sql string, args ...any) ([]domain.Shipment, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Shipment, error) {
		return scanShipment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan shipments: %w", err)
	}
	return out, nil
}

func scanShipment(row pgx.Row) (domain.Shipment, error) {
	var (
		s              domain.Shipment
		inv            domain.Invoice
		status, method string
	)
	err := row.Scan(
		&s.ID, &s.TrackingCode, &s.Date, &s.Details,
		&inv.ID, &inv.Code, &inv.Date, &inv.Details, &status, &method, &inv.PaymentDate, &inv.PaymentAmount,
	)
	if err != nil {
		return domain.Shipment{}, err
	}
	inv.Status = domain.InvoiceStatus(status)
	inv.PaymentMethod = domain.PaymentMethod(method)
	inv.Date = inv.Date.UTC()
	inv.PaymentDate = inv.PaymentDate.UTC()
	s.Date = s.Date.UTC()
	s.Invoice = &inv
	return s, nil
}
