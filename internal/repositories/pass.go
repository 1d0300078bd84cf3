package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"popup-registration-platform/internal/models"

	"github.com/lib/pq"
)

// PassRepository handles the pass catalog of each popup
type PassRepository struct {
	db *sql.DB
}

// NewPassRepository creates a new pass repository
func NewPassRepository(db *sql.DB) *PassRepository {
	return &PassRepository{db: db}
}

const passColumns = `id, popup_id, name, tier, attendee_category, price, compare_price, start_date, end_date`

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// GetByPopup returns the active passes of a popup ordered by ID
func (r *PassRepository) GetByPopup(ctx context.Context, popupID int) ([]*models.Pass, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM popups WHERE id = $1)`, popupID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check popup: %w", err)
	}
	if !exists {
		return nil, models.ErrPopupNotFound
	}

	query := `
		SELECT ` + passColumns + `
		FROM passes
		WHERE popup_id = $1 AND is_active = TRUE
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, popupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get passes by popup: %w", err)
	}
	defer rows.Close()

	passes := []*models.Pass{}
	for rows.Next() {
		pass, err := scanPass(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pass: %w", err)
		}
		passes = append(passes, pass)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating passes: %w", err)
	}

	return passes, nil
}

// GetByIDs returns the given passes of a popup whether or not they are still on
// sale, so passes retired after purchase keep pricing prior orders
func (r *PassRepository) GetByIDs(ctx context.Context, popupID int, passIDs []int) ([]*models.Pass, error) {
	if len(passIDs) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(passIDs))
	for i, id := range passIDs {
		ids[i] = int64(id)
	}

	query := `
		SELECT ` + passColumns + `
		FROM passes
		WHERE popup_id = $1 AND id = ANY($2)
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, popupID, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get passes by id: %w", err)
	}
	defer rows.Close()

	var passes []*models.Pass
	for rows.Next() {
		pass, err := scanPass(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pass: %w", err)
		}
		passes = append(passes, pass)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating passes: %w", err)
	}

	return passes, nil
}

// Create inserts a pass after validating it
func (r *PassRepository) Create(ctx context.Context, pass *models.Pass) (*models.Pass, error) {
	if err := pass.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	categories := make([]string, len(pass.AttendeeCategories))
	for i, c := range pass.AttendeeCategories {
		categories[i] = string(c)
	}

	query := `
		INSERT INTO passes (popup_id, name, tier, attendee_category, price, compare_price, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + passColumns

	created, err := scanPass(r.db.QueryRowContext(ctx, query,
		pass.PopupID,
		pass.Name,
		string(pass.Tier),
		pq.Array(categories),
		pass.Price,
		pass.ComparePrice,
		pass.StartDate,
		pass.EndDate,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create pass: %w", err)
	}

	return created, nil
}

func scanPass(row rowScanner) (*models.Pass, error) {
	var (
		pass         models.Pass
		tier         string
		categories   []string
		comparePrice sql.NullInt64
		startDate    sql.NullTime
		endDate      sql.NullTime
	)

	err := row.Scan(
		&pass.ID,
		&pass.PopupID,
		&pass.Name,
		&tier,
		pq.Array(&categories),
		&pass.Price,
		&comparePrice,
		&startDate,
		&endDate,
	)
	if err != nil {
		return nil, err
	}

	pass.Tier = models.PassTier(tier)
	for _, c := range categories {
		pass.AttendeeCategories = append(pass.AttendeeCategories, models.AttendeeCategory(c))
	}
	if comparePrice.Valid {
		price := int(comparePrice.Int64)
		pass.ComparePrice = &price
	}
	if startDate.Valid {
		start := startDate.Time
		pass.StartDate = &start
	}
	if endDate.Valid {
		end := endDate.Time
		pass.EndDate = &end
	}

	return &pass, nil
}
