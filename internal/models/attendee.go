package models

import (
	"fmt"
	"strings"
)

// Attendee represents a person registered for a popup
type Attendee struct {
	ID       int              `json:"id" db:"id"`
	PopupID  int              `json:"popup_id" db:"popup_id"`
	GroupID  *int             `json:"group_id,omitempty" db:"group_id"`
	Name     string           `json:"name" db:"name"`
	Email    string           `json:"email,omitempty" db:"email"`
	Category AttendeeCategory `json:"category" db:"category"`
}

// Validate validates the attendee data
func (a *Attendee) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: attendee name is required", ErrInvalidInput)
	}
	if !a.Category.IsValid() {
		return fmt.Errorf("%w: unknown attendee category %q", ErrInvalidInput, a.Category)
	}
	return nil
}
