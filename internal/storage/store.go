// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/CubeDr/hyuni-pay/internal/models"
)

// ErrNotFound is returned when the requested payment does not exist.
var ErrNotFound = errors.New("payment not found")

// Store defines the interface for payment storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreatePayment persists a new payment. Missing ID, Date and CreatedAt
	// fields are populated by the store.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// GetPayment retrieves a payment by its ID, with items and payers in
	// their stored order. Returns ErrNotFound if the payment does not exist.
	GetPayment(ctx context.Context, id string) (*models.Payment, error)

	// ListPayments retrieves all payments, newest first.
	ListPayments(ctx context.Context) ([]models.Payment, error)

	// UpdatePayment replaces an existing payment's state wholesale,
	// including its items and payers. Returns ErrNotFound if the payment
	// does not exist.
	UpdatePayment(ctx context.Context, payment *models.Payment) error

	// DeletePayment removes a payment and everything attached to it.
	// Returns ErrNotFound if the payment does not exist.
	DeletePayment(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
