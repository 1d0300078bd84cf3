package services

import (
	"context"

	"popup-registration-platform/internal/models"
)

// CheckoutServiceInterface defines the interface for checkout services
type CheckoutServiceInterface interface {
	Catalog(ctx context.Context, popupID int) ([]*models.Pass, error)
	Quote(ctx context.Context, req *QuoteRequest) (*Quote, error)
	Checkout(ctx context.Context, req *QuoteRequest, billing PaymentBillingInfo) (*CheckoutResult, error)
}

// PassStore loads the pass catalog of a popup
type PassStore interface {
	GetByPopup(ctx context.Context, popupID int) ([]*models.Pass, error)
	// GetByIDs includes passes no longer on sale
	GetByIDs(ctx context.Context, popupID int, passIDs []int) ([]*models.Pass, error)
}

// AttendeeStore loads attendees registered for a popup
type AttendeeStore interface {
	GetByPopup(ctx context.Context, popupID int, attendeeIDs []int) ([]models.Attendee, error)
}

// GroupStore loads attendee groups
type GroupStore interface {
	GetByID(ctx context.Context, id int) (*models.Group, error)
}

// CouponStore loads and redeems coupons
type CouponStore interface {
	GetByCode(ctx context.Context, popupID int, code string) (*models.Coupon, error)
	IncrementUses(ctx context.Context, id int) error
}

// PurchaseStore reads and records attendee purchases
type PurchaseStore interface {
	GetByAttendees(ctx context.Context, popupID int, attendeeIDs []int) ([]models.Purchase, error)
	Record(ctx context.Context, paymentReference string, lines []models.ChargeableLine) error
}

var _ CheckoutServiceInterface = (*CheckoutService)(nil)
