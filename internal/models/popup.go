package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Popup represents a temporary city that sells passes
type Popup struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
}

// Validate validates the popup data
func (p *Popup) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: popup name is required", ErrInvalidInput)
	}
	if !slugPattern.MatchString(p.Slug) {
		return fmt.Errorf("%w: popup slug %q must be lowercase words separated by dashes", ErrInvalidInput, p.Slug)
	}
	if !p.EndDate.After(p.StartDate) {
		return fmt.Errorf("%w: popup end date must be after start date", ErrInvalidInput)
	}
	return nil
}
