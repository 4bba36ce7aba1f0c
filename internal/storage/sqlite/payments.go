package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/CubeDr/hyuni-pay/internal/models"
	"github.com/CubeDr/hyuni-pay/internal/storage"
)

// CreatePayment persists a new payment to the database.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}
	if payment.Date == "" {
		payment.Date = time.Now().UTC().Format(time.RFC3339)
	}
	if payment.Title == "" {
		payment.Title = models.DefaultTitle
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO payments (id, title, date, tax, tip, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		payment.ID, payment.Title, payment.Date, payment.Tax, payment.Tip, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	if err := insertChildren(ctx, tx, payment); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetPayment retrieves a payment by ID, including all items and payers in
// their stored order.
func (s *SQLiteStore) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	payment := &models.Payment{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, date, tax, tip, created_at FROM payments WHERE id = ?",
		id,
	).Scan(&payment.ID, &payment.Title, &payment.Date, &payment.Tax, &payment.Tip, &payment.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	if err := s.loadChildren(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ListPayments retrieves all payments, newest first.
func (s *SQLiteStore) ListPayments(ctx context.Context) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, date, tax, tip, created_at FROM payments ORDER BY created_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.Title, &p.Date, &p.Tax, &p.Tip, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	for i := range payments {
		if err := s.loadChildren(ctx, &payments[i]); err != nil {
			return nil, err
		}
	}
	return payments, nil
}

// UpdatePayment replaces an existing payment's state wholesale. Items and
// payers are deleted and reinserted so the stored state always mirrors the
// caller's snapshot exactly.
func (s *SQLiteStore) UpdatePayment(ctx context.Context, payment *models.Payment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE payments SET title = ?, date = ?, tax = ?, tip = ? WHERE id = ?",
		payment.Title, payment.Date, payment.Tax, payment.Tip, payment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, payment.ID)
	}

	// item_payers rows go with their items via ON DELETE CASCADE.
	if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE payment_id = ?", payment.ID); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM payers WHERE payment_id = ?", payment.ID); err != nil {
		return fmt.Errorf("failed to clear payers: %w", err)
	}

	if err := insertChildren(ctx, tx, payment); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeletePayment removes a payment; items, payers and assignments cascade.
func (s *SQLiteStore) DeletePayment(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM payments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	return nil
}

// insertChildren writes the payment's payers, items and item assignments.
func insertChildren(ctx context.Context, tx *sql.Tx, payment *models.Payment) error {
	for pos, payer := range payment.Payers {
		if payer.ID == "" {
			payment.Payers[pos].ID = uuid.New().String()
			payer.ID = payment.Payers[pos].ID
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO payers (id, payment_id, name, position) VALUES (?, ?, ?, ?)",
			payer.ID, payment.ID, payer.Name, pos,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payer: %w", err)
		}
	}

	for pos := range payment.Items {
		item := &payment.Items[pos]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO items (id, payment_id, name, quantity, price, is_shared, position) VALUES (?, ?, ?, ?, ?, ?, ?)",
			item.ID, payment.ID, item.Name, quantity, item.Price, item.IsShared, pos,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for _, payerID := range item.Payers {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO item_payers (item_id, payer_id) VALUES (?, ?)",
				item.ID, payerID,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item assignment: %w", err)
			}
		}
	}
	return nil
}

// loadChildren populates the payment's payers and items, preserving the
// positions they were stored with.
func (s *SQLiteStore) loadChildren(ctx context.Context, payment *models.Payment) error {
	payerRows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM payers WHERE payment_id = ? ORDER BY position",
		payment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get payers: %w", err)
	}
	defer payerRows.Close()

	for payerRows.Next() {
		var p models.Payer
		if err := payerRows.Scan(&p.ID, &p.Name); err != nil {
			return fmt.Errorf("failed to scan payer: %w", err)
		}
		payment.Payers = append(payment.Payers, p)
	}
	if err := payerRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate payers: %w", err)
	}

	itemRows, err := s.db.QueryContext(ctx,
		"SELECT id, name, quantity, price, is_shared FROM items WHERE payment_id = ? ORDER BY position",
		payment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.Item
		if err := itemRows.Scan(&item.ID, &item.Name, &item.Quantity, &item.Price, &item.IsShared); err != nil {
			return fmt.Errorf("failed to scan item: %w", err)
		}
		payment.Items = append(payment.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate items: %w", err)
	}

	for i := range payment.Items {
		item := &payment.Items[i]
		assignRows, err := s.db.QueryContext(ctx,
			"SELECT payer_id FROM item_payers WHERE item_id = ?",
			item.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to get item assignments: %w", err)
		}
		for assignRows.Next() {
			var payerID string
			if err := assignRows.Scan(&payerID); err != nil {
				assignRows.Close()
				return fmt.Errorf("failed to scan assignment: %w", err)
			}
			item.Payers = append(item.Payers, payerID)
		}
		if err := assignRows.Err(); err != nil {
			assignRows.Close()
			return fmt.Errorf("failed to iterate assignments: %w", err)
		}
		assignRows.Close()
	}
	return nil
}
