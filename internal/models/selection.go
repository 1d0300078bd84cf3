package models

// Selection represents an attendee's choice state for a single pass
type Selection struct {
	PassID           int  `json:"pass_id"`
	Quantity         int  `json:"quantity"` // Only meaningful for day passes
	Selected         bool `json:"selected"`
	Purchased        bool `json:"purchased"`
	OriginalQuantity int  `json:"original_quantity"`
	OriginalPrice    *int `json:"original_price,omitempty"` // Unit price paid previously, in cents
}

// AttendeeSelection groups the selections made for one attendee
type AttendeeSelection struct {
	AttendeeID int              `json:"attendee_id"`
	Name       string           `json:"name,omitempty"`
	Category   AttendeeCategory `json:"category"`
	Selections []Selection      `json:"selections"`
}

// Purchase represents a pass bought for an attendee in a prior transaction
type Purchase struct {
	AttendeeID int `json:"attendee_id" db:"attendee_id"`
	PassID     int `json:"pass_id" db:"pass_id"`
	Quantity   int `json:"quantity" db:"quantity"`
	UnitPrice  int `json:"unit_price" db:"unit_price"` // Price paid in cents
}

// ChargeableQuantity returns the number of units the selection would bill for a given tier
func (s Selection) ChargeableQuantity(tier PassTier) int {
	if tier != TierDay {
		if s.Purchased {
			return 0
		}
		return 1
	}

	delta := s.Quantity - s.OriginalQuantity
	if delta < 0 {
		return 0
	}
	return delta
}

// UnitPrice returns the price to bill per unit, preferring the previously paid price
func (s Selection) UnitPrice(pass *Pass) int {
	if s.OriginalPrice != nil {
		return *s.OriginalPrice
	}
	return pass.Price
}

// Clone returns a deep copy of the attendee selection
func (a AttendeeSelection) Clone() AttendeeSelection {
	out := a
	out.Selections = make([]Selection, len(a.Selections))
	for i, s := range a.Selections {
		if s.OriginalPrice != nil {
			price := *s.OriginalPrice
			s.OriginalPrice = &price
		}
		out.Selections[i] = s
	}
	return out
}
