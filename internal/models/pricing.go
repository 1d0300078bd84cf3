package models

// ChargeableLine represents an (attendee, pass) pair that will be billed
type ChargeableLine struct {
	AttendeeID int              `json:"attendee_id"`
	PassID     int              `json:"pass_id"`
	PassName   string           `json:"pass_name"`
	Tier       PassTier         `json:"tier"`
	Category   AttendeeCategory `json:"category"`
	UnitPrice  int              `json:"unit_price"` // in cents
	Quantity   int              `json:"quantity"`
	Credit     bool             `json:"credit,omitempty"` // Removal line, display only
}

// TotalResult represents the outcome of a price calculation
type TotalResult struct {
	OriginalTotal      int     `json:"original_total"`  // in cents
	DiscountAmount     int     `json:"discount_amount"` // in cents
	Total              int     `json:"total"`           // in cents
	DiscountPercentage float64 `json:"discount_percentage"`
}

// Subtotal returns the line amount in cents
func (l ChargeableLine) Subtotal() int {
	return l.UnitPrice * l.Quantity
}

// HasDiscount returns true if any discount was applied
func (r TotalResult) HasDiscount() bool {
	return r.DiscountAmount > 0
}
