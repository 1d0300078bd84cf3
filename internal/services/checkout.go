package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"popup-registration-platform/internal/models"
	"popup-registration-platform/internal/pricing"

	"github.com/google/uuid"
)

// QuoteRequest is a checkout selection submitted by a client
type QuoteRequest struct {
	PopupID    int                        `json:"popup_id"`
	Attendees  []models.AttendeeSelection `json:"attendees"`
	CouponCode string                     `json:"coupon_code,omitempty"`
	GroupID    *int                       `json:"group_id,omitempty"`
	Editing    bool                       `json:"editing"`
}

// Validate validates the quote request
func (r *QuoteRequest) Validate() error {
	if r.PopupID <= 0 {
		return fmt.Errorf("%w: popup id must be positive", models.ErrInvalidInput)
	}
	seen := make(map[int]bool, len(r.Attendees))
	for _, a := range r.Attendees {
		if seen[a.AttendeeID] {
			return fmt.Errorf("%w: attendee %d listed twice", models.ErrInvalidInput, a.AttendeeID)
		}
		seen[a.AttendeeID] = true
	}
	return nil
}

// Quote is a priced cart
type Quote struct {
	ID            string                  `json:"id"`
	PopupID       int                     `json:"popup_id"`
	Currency      string                  `json:"currency"`
	Lines         []models.ChargeableLine `json:"lines"`
	Summary       []string                `json:"summary"`
	Totals        models.TotalResult      `json:"totals"`
	DiscountLabel string                  `json:"discount_label,omitempty"`
	Editing       bool                    `json:"editing"`
	CouponID      *int                    `json:"-"`
}

// CheckoutResult is a paid (or free) checkout
type CheckoutResult struct {
	Quote   *Quote         `json:"quote"`
	Payment *PaymentResult `json:"payment"`
}

// CheckoutService prices selections and settles checkouts
type CheckoutService struct {
	passes    PassStore
	attendees AttendeeStore
	groups    GroupStore
	coupons   CouponStore
	purchases PurchaseStore
	payments  PaymentService
	formatter *pricing.Formatter
	now       func() time.Time
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	passes PassStore,
	attendees AttendeeStore,
	groups GroupStore,
	coupons CouponStore,
	purchases PurchaseStore,
	payments PaymentService,
	formatter *pricing.Formatter,
) *CheckoutService {
	return &CheckoutService{
		passes:    passes,
		attendees: attendees,
		groups:    groups,
		coupons:   coupons,
		purchases: purchases,
		payments:  payments,
		formatter: formatter,
		now:       time.Now,
	}
}

// Catalog returns the passes on sale for a popup
func (s *CheckoutService) Catalog(ctx context.Context, popupID int) ([]*models.Pass, error) {
	passes, err := s.passes.GetByPopup(ctx, popupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return passes, nil
}

// Quote prices a selection without charging it
func (s *CheckoutService) Quote(ctx context.Context, req *QuoteRequest) (*Quote, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	passes, err := s.Catalog(ctx, req.PopupID)
	if err != nil {
		return nil, err
	}
	catalog, err := models.NewCatalog(passes)
	if err != nil {
		return nil, err
	}

	attendees, err := s.verifiedAttendees(ctx, req.PopupID, req.Attendees)
	if err != nil {
		return nil, err
	}
	if req.Editing {
		attendees, err = s.overlayPurchases(ctx, req.PopupID, attendees, catalog)
		if err != nil {
			return nil, err
		}
	}

	discount, couponID, err := s.discountContext(ctx, req)
	if err != nil {
		return nil, err
	}

	lines, err := pricing.ResolveAll(attendees, catalog)
	if err != nil {
		return nil, err
	}

	totals, err := pricing.CalculateTotal(lines, discount)
	if err != nil {
		return nil, err
	}

	summary := make([]string, len(lines))
	for i, line := range lines {
		summary[i] = s.formatter.FormatLine(line, req.Editing)
	}

	quote := &Quote{
		ID:       uuid.New().String(),
		PopupID:  req.PopupID,
		Currency: s.formatter.Currency(),
		Lines:    lines,
		Summary:  summary,
		Totals:   totals,
		Editing:  req.Editing,
		CouponID: couponID,
	}
	if label, ok := pricing.DiscountLabel(discount); ok {
		quote.DiscountLabel = label
	}

	return quote, nil
}

// Checkout prices the selection, charges its total and records the purchases
func (s *CheckoutService) Checkout(ctx context.Context, req *QuoteRequest, billing PaymentBillingInfo) (*CheckoutResult, error) {
	if err := billing.Validate(); err != nil {
		return nil, err
	}

	quote, err := s.Quote(ctx, req)
	if err != nil {
		return nil, err
	}

	var payment *PaymentResult
	if quote.Totals.Total == 0 {
		payment = &PaymentResult{
			PaymentID:   fmt.Sprintf("free_%s", quote.ID),
			Status:      PaymentStatusNoCharge,
			Currency:    quote.Currency,
			ProcessedAt: s.now(),
		}
	} else {
		payment, err = s.payments.ProcessPayment(ctx, quote.Totals.Total, quote.Currency, billing)
		if err != nil {
			return nil, fmt.Errorf("failed to process payment: %w", err)
		}
		if !payment.Succeeded() {
			return &CheckoutResult{Quote: quote, Payment: payment}, fmt.Errorf("%w: %s", models.ErrPaymentRejected, payment.ErrorMessage)
		}
	}

	if err := s.purchases.Record(ctx, payment.PaymentID, billableLines(quote.Lines)); err != nil {
		// Logged with the payment reference for manual reconciliation
		log.Printf("Failed to record purchases for payment %s: %v", payment.PaymentID, err)
		return nil, fmt.Errorf("failed to record purchases: %w", err)
	}

	if quote.CouponID != nil {
		if err := s.coupons.IncrementUses(ctx, *quote.CouponID); err != nil {
			log.Printf("Failed to increment uses of coupon %d: %v", *quote.CouponID, err)
		}
	}

	log.Printf("Checkout %s for popup %d settled: %s (%d lines, total %d)",
		quote.ID, quote.PopupID, payment.Status, len(quote.Lines), quote.Totals.Total)

	return &CheckoutResult{Quote: quote, Payment: payment}, nil
}

// verifiedAttendees replaces the identity and paid state a client sent with the
// stored attendee records. Only prior purchases may mark a selection as paid.
func (s *CheckoutService) verifiedAttendees(ctx context.Context, popupID int, attendees []models.AttendeeSelection) ([]models.AttendeeSelection, error) {
	if len(attendees) == 0 {
		return nil, nil
	}

	records, err := s.attendees.GetByPopup(ctx, popupID, attendeeIDs(attendees))
	if err != nil {
		return nil, fmt.Errorf("failed to load attendees: %w", err)
	}

	registered := make(map[int]models.Attendee, len(records))
	for _, record := range records {
		if record.PopupID == popupID {
			registered[record.ID] = record
		}
	}

	out := make([]models.AttendeeSelection, len(attendees))
	for i, a := range attendees {
		record, ok := registered[a.AttendeeID]
		if !ok {
			return nil, fmt.Errorf("%w: attendee %d is not registered for popup %d", models.ErrInvalidInput, a.AttendeeID, popupID)
		}

		verified := a.Clone()
		verified.Name = record.Name
		verified.Category = record.Category
		for j := range verified.Selections {
			verified.Selections[j].Purchased = false
			verified.Selections[j].OriginalQuantity = 0
			verified.Selections[j].OriginalPrice = nil
		}
		out[i] = verified
	}
	return out, nil
}

// overlayPurchases marks what each attendee already paid for. Purchased passes
// that are no longer on sale are added to the catalog so they still price.
func (s *CheckoutService) overlayPurchases(ctx context.Context, popupID int, attendees []models.AttendeeSelection, catalog models.Catalog) ([]models.AttendeeSelection, error) {
	if len(attendees) == 0 {
		return attendees, nil
	}

	ids := attendeeIDs(attendees)
	purchases, err := s.purchases.GetByAttendees(ctx, popupID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load prior purchases: %w", err)
	}

	requested := make(map[int]bool, len(ids))
	for _, id := range ids {
		requested[id] = true
	}

	var retired []int
	seen := make(map[int]bool)
	for _, purchase := range purchases {
		if !requested[purchase.AttendeeID] || seen[purchase.PassID] {
			continue
		}
		seen[purchase.PassID] = true
		if _, ok := catalog[purchase.PassID]; !ok {
			retired = append(retired, purchase.PassID)
		}
	}

	if len(retired) > 0 {
		passes, err := s.passes.GetByIDs(ctx, popupID, retired)
		if err != nil {
			return nil, fmt.Errorf("failed to load purchased passes: %w", err)
		}
		for _, pass := range passes {
			if pass != nil {
				catalog[pass.ID] = pass
			}
		}
	}

	out := make([]models.AttendeeSelection, len(attendees))
	for i, a := range attendees {
		out[i] = pricing.ApplyPurchases(a, purchases)
	}
	return out, nil
}

func (s *CheckoutService) discountContext(ctx context.Context, req *QuoteRequest) (models.DiscountContext, *int, error) {
	var (
		discount models.DiscountContext
		couponID *int
	)

	if code := strings.TrimSpace(req.CouponCode); code != "" {
		coupon, err := s.coupons.GetByCode(ctx, req.PopupID, code)
		if err != nil {
			return discount, nil, err
		}
		if !coupon.IsRedeemable(s.now()) {
			return discount, nil, models.ErrCouponInactive
		}
		referral, err := coupon.ReferralDiscount()
		if err != nil {
			return discount, nil, err
		}
		discount.Referral = referral
		couponID = &coupon.ID
	}

	if req.GroupID != nil {
		group, err := s.groups.GetByID(ctx, *req.GroupID)
		if err != nil {
			if errors.Is(err, models.ErrGroupNotFound) {
				return discount, nil, fmt.Errorf("%w: group %d", models.ErrInvalidInput, *req.GroupID)
			}
			return discount, nil, err
		}
		if group.PopupID != req.PopupID {
			return discount, nil, fmt.Errorf("%w: group %d belongs to another popup", models.ErrInvalidInput, group.ID)
		}
		if err := group.Validate(); err != nil {
			return discount, nil, err
		}
		discount.GroupDiscountPercentage = group.DiscountPercentage
		discount.GroupName = group.Name
	}

	return discount, couponID, nil
}

func attendeeIDs(attendees []models.AttendeeSelection) []int {
	ids := make([]int, len(attendees))
	for i, a := range attendees {
		ids[i] = a.AttendeeID
	}
	return ids
}

// billableLines drops lines that charge nothing
func billableLines(lines []models.ChargeableLine) []models.ChargeableLine {
	out := make([]models.ChargeableLine, 0, len(lines))
	for _, line := range lines {
		if line.Credit || line.Quantity <= 0 {
			continue
		}
		out = append(out, line)
	}
	return out
}
