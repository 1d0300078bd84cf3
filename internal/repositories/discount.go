package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"popup-registration-platform/internal/models"
)

// GroupRepository handles attendee groups and their discounts
type GroupRepository struct {
	db *sql.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *sql.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// GetByID retrieves a group by ID
func (r *GroupRepository) GetByID(ctx context.Context, id int) (*models.Group, error) {
	query := `
		SELECT id, popup_id, name, discount_percentage
		FROM groups
		WHERE id = $1`

	group := &models.Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&group.ID,
		&group.PopupID,
		&group.Name,
		&group.DiscountPercentage,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

// Create inserts a group
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) (*models.Group, error) {
	if err := group.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	created := &models.Group{}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO groups (popup_id, name, discount_percentage)
		VALUES ($1, $2, $3)
		RETURNING id, popup_id, name, discount_percentage`,
		group.PopupID, group.Name, group.DiscountPercentage,
	).Scan(&created.ID, &created.PopupID, &created.Name, &created.DiscountPercentage)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return created, nil
}

// CouponRepository handles referral and coupon codes
type CouponRepository struct {
	db *sql.DB
}

// NewCouponRepository creates a new coupon repository
func NewCouponRepository(db *sql.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

// GetByCode retrieves a popup's coupon by code, ignoring case
func (r *CouponRepository) GetByCode(ctx context.Context, popupID int, code string) (*models.Coupon, error) {
	query := `
		SELECT id, popup_id, code, discount_percentage, is_active, max_uses, current_uses, start_date, end_date
		FROM coupons
		WHERE popup_id = $1 AND UPPER(code) = UPPER($2)`

	var (
		coupon    models.Coupon
		maxUses   sql.NullInt64
		startDate sql.NullTime
		endDate   sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, popupID, code).Scan(
		&coupon.ID,
		&coupon.PopupID,
		&coupon.Code,
		&coupon.DiscountPercentage,
		&coupon.IsActive,
		&maxUses,
		&coupon.CurrentUses,
		&startDate,
		&endDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	if maxUses.Valid {
		uses := int(maxUses.Int64)
		coupon.MaxUses = &uses
	}
	if startDate.Valid {
		coupon.StartDate = &startDate.Time
	}
	if endDate.Valid {
		coupon.EndDate = &endDate.Time
	}

	return &coupon, nil
}

// IncrementUses records one redemption of a coupon
func (r *CouponRepository) IncrementUses(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE coupons SET current_uses = current_uses + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment coupon uses: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return models.ErrCouponNotFound
	}

	return nil
}

// Create inserts a coupon
func (r *CouponRepository) Create(ctx context.Context, coupon *models.Coupon) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO coupons (popup_id, code, discount_percentage, is_active, max_uses, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		coupon.PopupID, coupon.Code, coupon.DiscountPercentage, coupon.IsActive,
		coupon.MaxUses, coupon.StartDate, coupon.EndDate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create coupon: %w", err)
	}
	return id, nil
}
