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

const invoiceSelect = `SELECT id, code, date, details, status, payment_method, payment_date, payment_amount FROM invoice`

// PostgresInvoices InvoiceRepository поверх таблицы invoice
type PostgresInvoices struct{ pool *pgxpool.Pool }

func NewPostgresInvoices(pool *pgxpool.Pool) *PostgresInvoices { return &PostgresInvoices{pool: pool} }

var _ InvoiceRepository = (*PostgresInvoices)(nil)

func (r *PostgresInvoices) Create(ctx context.Context, inv *domain.Invoice) error {
	err := conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO invoice (code, date, details, status, payment_method, payment_date, payment_amount)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		inv.Code, inv.Date, inv.Details, string(inv.Status), string(inv.PaymentMethod), inv.PaymentDate, inv.PaymentAmount,
	).Scan(&inv.ID)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *PostgresInvoices) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	inv, err := scanInvoice(conn(ctx, r.pool).QueryRow(ctx, invoiceSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

func (r *PostgresInvoices) Update(ctx context.Context, inv *domain.Invoice) error {
	tag, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE invoice SET code = $1, date = $2, details = $3, status = $4, payment_method = $5,
		 payment_date = $6, payment_amount = $7 WHERE id = $8`,
		inv.Code, inv.Date, inv.Details, string(inv.Status), string(inv.PaymentMethod), inv.PaymentDate, inv.PaymentAmount, inv.ID,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresInvoices) Delete(ctx context.Context, id int64) error {
	if _, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM invoice WHERE id = $1`, id); err != nil {
		if pgErrCode(err) == pgForeignKeyViolation {
			return domain.ErrInvoiceInUse
		}
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

func (r *PostgresInvoices) List(ctx context.Context, req pagination.Request) ([]domain.Invoice, error) {
	orderBy, err := orderByClause(req.Sort, invoiceColumns)
	if err != nil {
		return nil, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx, invoiceSelect+` `+orderBy+` LIMIT $1 OFFSET $2`, req.Size, req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Invoice, error) {
		return scanInvoice(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan invoices: %w", err)
	}
	return out, nil
}

func (r *PostgresInvoices) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := conn(ctx, r.pool).QueryRow(ctx, `SELECT count(*) FROM invoice`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

func scanInvoice(row pgx.Row) (domain.Invoice, error) {
	var (
		inv            domain.Invoice
		status, method string
	)
	if err := row.Scan(&inv.ID, &inv.Code, &inv.Date, &inv.Details, &status, &method, &inv.PaymentDate, &inv.PaymentAmount); err != nil {
		return domain.Invoice{}, err
	}
	inv.Status = domain.InvoiceStatus(status)
	inv.PaymentMethod = domain.PaymentMethod(method)
	inv.Date = inv.Date.UTC()
	inv.PaymentDate = inv.PaymentDate.UTC()
	return inv, nil
}
