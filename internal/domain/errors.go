package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvoiceNotFound = errors.New("referenced invoice not found")
	ErrInvoiceInUse    = errors.New("invoice is referenced by shipments")
	ErrIDExists        = errors.New("a new entity cannot already have an id")
	ErrIDNull          = errors.New("invalid id")
	ErrReadOnlyTx      = errors.New("write inside read-only transaction")
)
