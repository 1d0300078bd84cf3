package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DiscountType represents how a referral discount value is applied
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
)

// ReferralDiscount represents a discount granted by a coupon or invite link
type ReferralDiscount struct {
	Type  DiscountType `json:"type"`
	Value float64      `json:"value"`
	Label string       `json:"label,omitempty"`
}

// DiscountContext holds every discount source for a checkout
type DiscountContext struct {
	Referral                *ReferralDiscount `json:"referral_discount,omitempty"`
	GroupDiscountPercentage float64           `json:"group_discount_percentage"`
	GroupName               string            `json:"group_name,omitempty"`
}

// Group represents an attendee group that may carry a discount
type Group struct {
	ID                 int     `json:"id" db:"id"`
	PopupID            int     `json:"popup_id" db:"popup_id"`
	Name               string  `json:"name" db:"name"`
	DiscountPercentage float64 `json:"discount_percentage" db:"discount_percentage"`
}

// Coupon represents a referral or coupon code for a popup
type Coupon struct {
	ID                 int        `json:"id" db:"id"`
	PopupID            int        `json:"popup_id" db:"popup_id"`
	Code               string     `json:"code" db:"code"`
	DiscountPercentage float64    `json:"discount_percentage" db:"discount_percentage"`
	IsActive           bool       `json:"is_active" db:"is_active"`
	MaxUses            *int       `json:"max_uses,omitempty" db:"max_uses"`
	CurrentUses        int        `json:"current_uses" db:"current_uses"`
	StartDate          *time.Time `json:"start_date,omitempty" db:"start_date"`
	EndDate            *time.Time `json:"end_date,omitempty" db:"end_date"`
}

// ReferralPercentage returns the referral percentage that takes part in the combination
func (d DiscountContext) ReferralPercentage() float64 {
	if d.Referral == nil || d.Referral.Type != DiscountPercentage {
		return 0
	}
	return d.Referral.Value
}

// Validate validates the discount context percentages
func (d DiscountContext) Validate() error {
	if d.Referral != nil && d.Referral.Type == DiscountPercentage {
		if err := validatePercentage("referral_discount.value", d.Referral.Value); err != nil {
			return err
		}
	}

	return validatePercentage("group_discount_percentage", d.GroupDiscountPercentage)
}

// Validate validates the group discount
func (g *Group) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return NewConfigurationError(fmt.Sprintf("group %d", g.ID), "name is required")
	}
	return validatePercentage(fmt.Sprintf("group %d discount", g.ID), g.DiscountPercentage)
}

// IsRedeemable returns true if the coupon can be applied at the given time
func (c *Coupon) IsRedeemable(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.StartDate != nil && now.Before(*c.StartDate) {
		return false
	}
	if c.EndDate != nil && now.After(*c.EndDate) {
		return false
	}
	if c.MaxUses != nil && c.CurrentUses >= *c.MaxUses {
		return false
	}
	return true
}

// ReferralDiscount converts the coupon into a referral discount
func (c *Coupon) ReferralDiscount() (*ReferralDiscount, error) {
	if err := validatePercentage(fmt.Sprintf("coupon %s", c.Code), c.DiscountPercentage); err != nil {
		return nil, err
	}
	return &ReferralDiscount{
		Type:  DiscountPercentage,
		Value: c.DiscountPercentage,
		Label: fmt.Sprintf("Coupon %s (%s%% off)", strings.ToUpper(c.Code), FormatPercentage(c.DiscountPercentage)),
	}, nil
}

// FormatPercentage renders a percentage without trailing zeros
func FormatPercentage(pct float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", pct), "0"), ".")
}

func validatePercentage(field string, pct float64) error {
	if math.IsNaN(pct) || pct < 0 || pct > 100 {
		return NewConfigurationError(field, fmt.Sprintf("percentage %v is outside [0, 100]", pct))
	}
	// Discounts are applied in whole basis points
	if bps := pct * 100; math.Abs(bps-math.Round(bps)) > 1e-6 {
		return NewConfigurationError(field, fmt.Sprintf("percentage %v has more than two decimal places", pct))
	}
	return nil
}
