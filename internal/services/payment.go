package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"popup-registration-platform/internal/models"

	"github.com/google/uuid"
)

// Payment statuses reported by processors
const (
	PaymentStatusSuccess  = "success"
	PaymentStatusFailed   = "failed"
	PaymentStatusNoCharge = "no_charge"
)

// PaymentService charges the checkout total
type PaymentService interface {
	ProcessPayment(ctx context.Context, amount int, currency string, billingInfo PaymentBillingInfo) (*PaymentResult, error)
}

// PaymentBillingInfo represents billing information for payment processing
type PaymentBillingInfo struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	CardToken   string `json:"card_token"`   // Tokenized card information
	PaymentType string `json:"payment_type"` // "card", "bank_transfer", etc.
}

// Validate checks the billing details required by every processor
func (b PaymentBillingInfo) Validate() error {
	if strings.TrimSpace(b.Email) == "" {
		return fmt.Errorf("%w: billing email is required", models.ErrInvalidInput)
	}
	if !strings.Contains(b.Email, "@") {
		return fmt.Errorf("%w: billing email %q is invalid", models.ErrInvalidInput, b.Email)
	}
	return nil
}

// PaymentResult represents the result of a payment processing attempt
type PaymentResult struct {
	PaymentID     string    `json:"payment_id"`
	Status        string    `json:"status"`   // "success", "failed", "no_charge"
	Amount        int       `json:"amount"`   // Amount in minor units
	Currency      string    `json:"currency"` // ISO 4217 code
	TransactionID string    `json:"transaction_id,omitempty"`
	ProcessedAt   time.Time `json:"processed_at"`
	ErrorMessage  string    `json:"error_message,omitempty"`
}

// Succeeded reports whether the payment settled the checkout
func (r *PaymentResult) Succeeded() bool {
	return r.Status == PaymentStatusSuccess || r.Status == PaymentStatusNoCharge
}

// MockPaymentService simulates a payment processor for development and tests
type MockPaymentService struct {
	// declineTokens are card tokens the mock refuses
	declineTokens map[string]bool
}

// NewMockPaymentService creates a new mock payment service
func NewMockPaymentService() *MockPaymentService {
	log.Println("Payment service: Using mock (no payment provider credentials provided)")
	return &MockPaymentService{
		declineTokens: map[string]bool{"tok_declined": true},
	}
}

// NewPaymentService returns the processor for the configured provider
func NewPaymentService(provider string) (PaymentService, error) {
	switch strings.ToLower(provider) {
	case "", "mock":
		return NewMockPaymentService(), nil
	default:
		return nil, fmt.Errorf("unsupported payment provider %q", provider)
	}
}

// ProcessPayment processes a payment
func (s *MockPaymentService) ProcessPayment(ctx context.Context, amount int, currency string, billingInfo PaymentBillingInfo) (*PaymentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("payment amount must be positive, got %d", amount)
	}

	now := time.Now()
	result := &PaymentResult{
		PaymentID:   fmt.Sprintf("mock_pay_%s", uuid.New().String()),
		Amount:      amount,
		Currency:    currency,
		ProcessedAt: now,
	}

	if s.declineTokens[billingInfo.CardToken] {
		log.Printf("Mock Payment: Declined %s %d.%02d for %s", currency, amount/100, amount%100, billingInfo.Email)
		result.Status = PaymentStatusFailed
		result.ErrorMessage = "card declined"
		return result, nil
	}

	log.Printf("Mock Payment: Processing payment of %s %d.%02d for %s", currency, amount/100, amount%100, billingInfo.Email)

	result.Status = PaymentStatusSuccess
	result.TransactionID = fmt.Sprintf("txn_%d", now.Unix())
	return result, nil
}
