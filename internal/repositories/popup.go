package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"popup-registration-platform/internal/models"
)

// PopupRepository handles popups
type PopupRepository struct {
	db *sql.DB
}

// NewPopupRepository creates a new popup repository
func NewPopupRepository(db *sql.DB) *PopupRepository {
	return &PopupRepository{db: db}
}

// GetBySlug retrieves a popup by slug
func (r *PopupRepository) GetBySlug(ctx context.Context, slug string) (*models.Popup, error) {
	popup := &models.Popup{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, slug, start_date, end_date
		FROM popups
		WHERE slug = $1`, slug,
	).Scan(&popup.ID, &popup.Name, &popup.Slug, &popup.StartDate, &popup.EndDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrPopupNotFound
		}
		return nil, fmt.Errorf("failed to get popup: %w", err)
	}
	return popup, nil
}

// Create inserts a popup
func (r *PopupRepository) Create(ctx context.Context, popup *models.Popup) (*models.Popup, error) {
	if err := popup.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	created := &models.Popup{}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO popups (name, slug, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, slug, start_date, end_date`,
		popup.Name, popup.Slug, popup.StartDate, popup.EndDate,
	).Scan(&created.ID, &created.Name, &created.Slug, &created.StartDate, &created.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to create popup: %w", err)
	}

	return created, nil
}
