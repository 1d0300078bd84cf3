package models

import (
	"fmt"
	"strings"
	"time"
)

// PassTier represents the duration class of a pass
type PassTier string

const (
	TierDay    PassTier = "day"
	TierWeek   PassTier = "week"
	TierMonth  PassTier = "month"
	TierPatron PassTier = "patron"
)

// AttendeeCategory represents the kind of attendee a pass is bought for
type AttendeeCategory string

const (
	CategoryMain   AttendeeCategory = "main"
	CategorySpouse AttendeeCategory = "spouse"
	CategoryTeen   AttendeeCategory = "teen"
	CategoryKid    AttendeeCategory = "kid"
	CategoryBaby   AttendeeCategory = "baby"
)

// categoryRank is the display order of attendees in a checkout
var categoryRank = map[AttendeeCategory]int{
	CategoryMain:   0,
	CategorySpouse: 1,
	CategoryTeen:   2,
	CategoryKid:    3,
	CategoryBaby:   4,
}

// Pass represents a purchasable pass in a popup's catalog
type Pass struct {
	ID                 int                `json:"id" db:"id"`
	PopupID            int                `json:"popup_id" db:"popup_id"`
	Name               string             `json:"name" db:"name"`
	Tier               PassTier           `json:"tier" db:"tier"`
	AttendeeCategories []AttendeeCategory `json:"attendee_category" db:"attendee_category"`
	Price              int                `json:"price" db:"price"`                             // Price in cents
	ComparePrice       *int               `json:"compare_price,omitempty" db:"compare_price"` // Display only
	StartDate          *time.Time         `json:"start_date,omitempty" db:"start_date"`
	EndDate            *time.Time         `json:"end_date,omitempty" db:"end_date"`
}

// Catalog indexes a popup's passes by ID
type Catalog map[int]*Pass

// NewCatalog builds a catalog from a pass list, rejecting duplicate IDs
func NewCatalog(passes []*Pass) (Catalog, error) {
	catalog := make(Catalog, len(passes))
	for _, p := range passes {
		if p == nil {
			continue
		}
		if _, exists := catalog[p.ID]; exists {
			return nil, NewConfigurationError(fmt.Sprintf("pass %d", p.ID), "duplicate pass id in catalog")
		}
		catalog[p.ID] = p
	}
	return catalog, nil
}

// IsValid returns true if the tier is one of the known tiers
func (t PassTier) IsValid() bool {
	switch t {
	case TierDay, TierWeek, TierMonth, TierPatron:
		return true
	default:
		return false
	}
}

// RequiresWindow returns true if passes of this tier must carry a coverage window
func (t PassTier) RequiresWindow() bool {
	return t == TierDay || t == TierWeek || t == TierMonth
}

// IsValid returns true if the category is one of the known attendee categories
func (c AttendeeCategory) IsValid() bool {
	_, ok := categoryRank[c]
	return ok
}

// Rank returns the sort position of the category; unknown categories sort last
func (c AttendeeCategory) Rank() int {
	if rank, ok := categoryRank[c]; ok {
		return rank
	}
	return len(categoryRank)
}

// Validate validates the pass against the pricing invariants
func (p *Pass) Validate() error {
	field := fmt.Sprintf("pass %d", p.ID)

	if strings.TrimSpace(p.Name) == "" {
		return NewConfigurationError(field, "name is required")
	}

	if !p.Tier.IsValid() {
		return NewConfigurationError(field, fmt.Sprintf("unknown tier %q", p.Tier))
	}

	if p.Price < 0 {
		return NewConfigurationError(field, "price cannot be negative")
	}

	if p.ComparePrice != nil && *p.ComparePrice < 0 {
		return NewConfigurationError(field, "compare price cannot be negative")
	}

	if p.Tier.RequiresWindow() && (p.StartDate == nil || p.EndDate == nil) {
		return NewConfigurationError(field, fmt.Sprintf("%s passes require start and end dates", p.Tier))
	}

	for _, c := range p.AttendeeCategories {
		if !c.IsValid() {
			return NewConfigurationError(field, fmt.Sprintf("unknown attendee category %q", c))
		}
	}

	return nil
}

// HasWindow returns true if the pass has a non-empty coverage window
func (p *Pass) HasWindow() bool {
	if p.StartDate == nil || p.EndDate == nil {
		return false
	}
	return p.EndDate.After(*p.StartDate)
}

// Covers returns true if this pass's window contains the other pass's window.
// Empty or inverted windows never cover and are never covered.
func (p *Pass) Covers(other *Pass) bool {
	if !p.HasWindow() || !other.HasWindow() {
		return false
	}
	return !other.StartDate.Before(*p.StartDate) && !other.EndDate.After(*p.EndDate)
}

// AllowsCategory returns true if an attendee of the given category may buy the pass
func (p *Pass) AllowsCategory(category AttendeeCategory) bool {
	if len(p.AttendeeCategories) == 0 {
		return true
	}
	for _, c := range p.AttendeeCategories {
		if c == category {
			return true
		}
	}
	return false
}

// HasDiscountedPrice returns true if the pass shows a higher reference price
func (p *Pass) HasDiscountedPrice() bool {
	return p.ComparePrice != nil && *p.ComparePrice > p.Price
}
