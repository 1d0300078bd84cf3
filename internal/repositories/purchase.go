package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"popup-registration-platform/internal/models"

	"github.com/lib/pq"
)

// PurchaseRepository handles passes already paid for by attendees
type PurchaseRepository struct {
	db *sql.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *sql.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// GetByAttendees returns prior purchases of the given attendees within a popup
func (r *PurchaseRepository) GetByAttendees(ctx context.Context, popupID int, attendeeIDs []int) ([]models.Purchase, error) {
	if len(attendeeIDs) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(attendeeIDs))
	for i, id := range attendeeIDs {
		ids[i] = int64(id)
	}

	query := `
		SELECT ap.attendee_id, ap.pass_id, ap.quantity, ap.unit_price
		FROM attendee_purchases ap
		JOIN attendees a ON a.id = ap.attendee_id
		WHERE a.popup_id = $1 AND ap.attendee_id = ANY($2)
		ORDER BY ap.id ASC`

	rows, err := r.db.QueryContext(ctx, query, popupID, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get purchases: %w", err)
	}
	defer rows.Close()

	var purchases []models.Purchase
	for rows.Next() {
		var p models.Purchase
		if err := rows.Scan(&p.AttendeeID, &p.PassID, &p.Quantity, &p.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchases: %w", err)
	}

	return purchases, nil
}

// Record stores the charged lines of a completed checkout in one transaction
func (r *PurchaseRepository) Record(ctx context.Context, paymentReference string, lines []models.ChargeableLine) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO attendee_purchases (attendee_id, pass_id, quantity, unit_price, payment_reference)
		VALUES ($1, $2, $3, $4, $5)`)
	if err != nil {
		return fmt.Errorf("failed to prepare purchase insert: %w", err)
	}
	defer stmt.Close()

	for _, line := range lines {
		if _, err := stmt.ExecContext(ctx, line.AttendeeID, line.PassID, line.Quantity, line.UnitPrice, paymentReference); err != nil {
			return fmt.Errorf("failed to record purchase of pass %d: %w", line.PassID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit purchases: %w", err)
	}

	return nil
}
