package models

import (
	"errors"
	"fmt"
)

// Common errors used throughout the application
var (
	ErrPopupNotFound   = errors.New("popup not found")
	ErrPassNotFound    = errors.New("pass not found")
	ErrGroupNotFound   = errors.New("group not found")
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrCouponInactive  = errors.New("coupon is not active")
	ErrInvalidInput    = errors.New("invalid input")
	ErrPaymentRejected = errors.New("payment rejected")

	// ErrConfiguration marks catalog or discount data that violates the pricing invariants.
	ErrConfiguration = errors.New("pricing configuration error")
	// ErrInputState marks a selection the engine cannot price safely.
	ErrInputState = errors.New("selection input state error")
)

// ConfigurationError reports catalog or discount data that breaks a pricing invariant.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrConfiguration, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrConfiguration, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrConfiguration.
func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// InputStateError reports a selection that references unknown or unpriceable state.
type InputStateError struct {
	AttendeeID int
	PassID     int
	Reason     string
}

func (e *InputStateError) Error() string {
	return fmt.Sprintf("%s: attendee %d, pass %d: %s", ErrInputState, e.AttendeeID, e.PassID, e.Reason)
}

// Unwrap lets errors.Is match ErrInputState.
func (e *InputStateError) Unwrap() error {
	return ErrInputState
}

// NewConfigurationError builds a ConfigurationError.
func NewConfigurationError(field, reason string) error {
	return &ConfigurationError{Field: field, Reason: reason}
}

// NewInputStateError builds an InputStateError.
func NewInputStateError(attendeeID, passID int, reason string) error {
	return &InputStateError{AttendeeID: attendeeID, PassID: passID, Reason: reason}
}
