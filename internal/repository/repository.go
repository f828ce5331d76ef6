package repository

import (
	"context"
	"fmt"
	"strings"

	"kinvoice/internal/domain"
	"kinvoice/internal/pagination"
)

// Repository общий CRUD-контракт для сущности T
type Repository[T any] interface {
	// Create присваивает ID и сохраняет запись
	Create(ctx context.Context, e *T) error
	GetByID(ctx context.Context, id int64) (*T, error)
	// Update перезаписывает существующую запись; domain.ErrNotFound, если её нет
	Update(ctx context.Context, e *T) error
	// Delete идемпотентен: удаление отсутствующего id не ошибка
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, req pagination.Request) ([]T, error)
	Count(ctx context.Context) (int64, error)
}

// InvoiceRepository интерфейс репозитория счетов
type InvoiceRepository interface {
	Repository[domain.Invoice]
}

// ShipmentRepository интерфейс репозитория отгрузок
type ShipmentRepository interface {
	Repository[domain.Shipment]
	ListByInvoice(ctx context.Context, invoiceID int64) ([]domain.Shipment, error)
}

// TxManager абстракция транзакции. Каждая операция записи выполняется в своей
// транзакции, чтение в read-only.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	WithReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Pinger проверка доступности хранилища для health-check
type Pinger interface {
	Ping(ctx context.Context) error
}

// Свойства, по которым разрешена сортировка; ключи совпадают с JSON-именами полей.
var (
	invoiceColumns = map[string]string{
		"id":            "id",
		"code":          "code",
		"date":          "date",
		"details":       "details",
		"status":        "status",
		"paymentMethod": "payment_method",
		"paymentDate":   "payment_date",
		"paymentAmount": "payment_amount",
	}
	shipmentColumns = map[string]string{
		"id":           "s.id",
		"trackingCode": "s.tracking_code",
		"date":         "s.date",
		"details":      "s.details",
		"invoice.id":   "s.invoice_id",
	}

	InvoiceSortProperties  = []string{"id", "code", "date", "details", "status", "paymentMethod", "paymentDate", "paymentAmount"}
	ShipmentSortProperties = []string{"id", "trackingCode", "date", "details", "invoice.id"}
)

// orderByClause строит ORDER BY; id добавляется последним для стабильного порядка
func orderByClause(orders []pagination.Order, columns map[string]string) (string, error) {
	idCol := columns["id"]
	parts := make([]string, 0, len(orders)+1)
	seenID := false
	for _, o := range orders {
		col, ok := columns[o.Property]
		if !ok {
			return "", fmt.Errorf("%w: %q", pagination.ErrInvalidSort, o.Property)
		}
		dir := "ASC"
		if o.Descending() {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
		if col == idCol {
			seenID = true
		}
	}
	if !seenID {
		parts = append(parts, idCol+" ASC")
	}
	return "ORDER BY " + strings.Join(parts, ", "), nil
}
