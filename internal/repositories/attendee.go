package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"popup-registration-platform/internal/models"

	"github.com/lib/pq"
)

// AttendeeRepository handles attendees registered for a popup
type AttendeeRepository struct {
	db *sql.DB
}

// NewAttendeeRepository creates a new attendee repository
func NewAttendeeRepository(db *sql.DB) *AttendeeRepository {
	return &AttendeeRepository{db: db}
}

// GetByPopup returns the given attendees that are registered for the popup.
// Unknown IDs and attendees of other popups are left out.
func (r *AttendeeRepository) GetByPopup(ctx context.Context, popupID int, attendeeIDs []int) ([]models.Attendee, error) {
	if len(attendeeIDs) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(attendeeIDs))
	for i, id := range attendeeIDs {
		ids[i] = int64(id)
	}

	query := `
		SELECT id, popup_id, group_id, name, COALESCE(email, ''), category
		FROM attendees
		WHERE popup_id = $1 AND id = ANY($2)
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, popupID, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get attendees: %w", err)
	}
	defer rows.Close()

	var attendees []models.Attendee
	for rows.Next() {
		var (
			a        models.Attendee
			groupID  sql.NullInt64
			category string
		)
		if err := rows.Scan(&a.ID, &a.PopupID, &groupID, &a.Name, &a.Email, &category); err != nil {
			return nil, fmt.Errorf("failed to scan attendee: %w", err)
		}
		if groupID.Valid {
			id := int(groupID.Int64)
			a.GroupID = &id
		}
		a.Category = models.AttendeeCategory(category)
		attendees = append(attendees, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendees: %w", err)
	}

	return attendees, nil
}

// Create registers an attendee for a popup
func (r *AttendeeRepository) Create(ctx context.Context, attendee *models.Attendee) (*models.Attendee, error) {
	if err := attendee.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var email interface{}
	if attendee.Email != "" {
		email = attendee.Email
	}

	created := *attendee
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO attendees (popup_id, group_id, name, email, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		attendee.PopupID, attendee.GroupID, attendee.Name, email, string(attendee.Category),
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create attendee: %w", err)
	}

	return &created, nil
}
