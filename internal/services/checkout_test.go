package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"popup-registration-platform/internal/models"
	"popup-registration-platform/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPassStore struct {
	mock.Mock
}

func (m *MockPassStore) GetByPopup(ctx context.Context, popupID int) ([]*models.Pass, error) {
	args := m.Called(ctx, popupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Pass), args.Error(1)
}

func (m *MockPassStore) GetByIDs(ctx context.Context, popupID int, passIDs []int) ([]*models.Pass, error) {
	args := m.Called(ctx, popupID, passIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Pass), args.Error(1)
}

type MockAttendeeStore struct {
	mock.Mock
}

func (m *MockAttendeeStore) GetByPopup(ctx context.Context, popupID int, attendeeIDs []int) ([]models.Attendee, error) {
	args := m.Called(ctx, popupID, attendeeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attendee), args.Error(1)
}

type MockGroupStore struct {
	mock.Mock
}

func (m *MockGroupStore) GetByID(ctx context.Context, id int) (*models.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

type MockCouponStore struct {
	mock.Mock
}

func (m *MockCouponStore) GetByCode(ctx context.Context, popupID int, code string) (*models.Coupon, error) {
	args := m.Called(ctx, popupID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *MockCouponStore) IncrementUses(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPurchaseStore struct {
	mock.Mock
}

func (m *MockPurchaseStore) GetByAttendees(ctx context.Context, popupID int, attendeeIDs []int) ([]models.Purchase, error) {
	args := m.Called(ctx, popupID, attendeeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Purchase), args.Error(1)
}

func (m *MockPurchaseStore) Record(ctx context.Context, paymentReference string, lines []models.ChargeableLine) error {
	args := m.Called(ctx, paymentReference, lines)
	return args.Error(0)
}

type MockPayments struct {
	mock.Mock
}

func (m *MockPayments) ProcessPayment(ctx context.Context, amount int, currency string, billingInfo PaymentBillingInfo) (*PaymentResult, error) {
	args := m.Called(ctx, amount, currency, billingInfo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PaymentResult), args.Error(1)
}

func date(month time.Month, day int) *time.Time {
	t := time.Date(2026, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func testPasses() []*models.Pass {
	return []*models.Pass{
		{ID: 1, PopupID: 1, Name: "Month Pass", Tier: models.TierMonth, Price: 30000, StartDate: date(time.June, 1), EndDate: date(time.June, 30)},
		{ID: 2, PopupID: 1, Name: "Week 1", Tier: models.TierWeek, Price: 10000, StartDate: date(time.June, 1), EndDate: date(time.June, 7)},
		{ID: 4, PopupID: 1, Name: "Day Pass", Tier: models.TierDay, Price: 5000, StartDate: date(time.June, 3), EndDate: date(time.June, 4)},
		{ID: 6, PopupID: 1, Name: "Kids Week", Tier: models.TierWeek, Price: 4000, StartDate: date(time.June, 8), EndDate: date(time.June, 14),
			AttendeeCategories: []models.AttendeeCategory{models.CategoryKid, models.CategoryTeen}},
	}
}

// registeredAttendees mimics a store that returns every row it has
func registeredAttendees() []models.Attendee {
	return []models.Attendee{
		{ID: 10, PopupID: 1, Name: "Ana", Category: models.CategoryMain},
		{ID: 11, PopupID: 1, Name: "Leo", Category: models.CategoryKid},
		{ID: 12, PopupID: 2, Name: "Mia", Category: models.CategoryMain},
	}
}

type fixture struct {
	passes    *MockPassStore
	attendees *MockAttendeeStore
	groups    *MockGroupStore
	coupons   *MockCouponStore
	purchases *MockPurchaseStore
	payments  *MockPayments
	service   *CheckoutService
}

func newFixture(t *testing.T) *fixture {
	formatter, err := pricing.NewFormatter("USD")
	require.NoError(t, err)

	f := &fixture{
		passes:    new(MockPassStore),
		attendees: new(MockAttendeeStore),
		groups:    new(MockGroupStore),
		coupons:   new(MockCouponStore),
		purchases: new(MockPurchaseStore),
		payments:  new(MockPayments),
	}
	f.attendees.On("GetByPopup", mock.Anything, 1, mock.Anything).Return(registeredAttendees(), nil).Maybe()
	f.service = NewCheckoutService(f.passes, f.attendees, f.groups, f.coupons, f.purchases, f.payments, formatter)
	f.service.now = func() time.Time { return time.Date(2026, time.May, 15, 12, 0, 0, 0, time.UTC) }
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.passes.AssertExpectations(t)
	f.groups.AssertExpectations(t)
	f.coupons.AssertExpectations(t)
	f.purchases.AssertExpectations(t)
	f.payments.AssertExpectations(t)
}

func mainAttendee(selections ...models.Selection) models.AttendeeSelection {
	return models.AttendeeSelection{AttendeeID: 10, Name: "Ana", Category: models.CategoryMain, Selections: selections}
}

func TestCheckoutService_Quote(t *testing.T) {
	f := newFixture(t)
	f.passes.On("GetByPopup", mock.Anything, 1).Return(testPasses(), nil)

	quote, err := f.service.Quote(context.Background(), &QuoteRequest{
		PopupID: 1,
		Attendees: []models.AttendeeSelection{mainAttendee(
			models.Selection{PassID: 1, Selected: true},
			models.Selection{PassID: 2, Selected: true},
			models.Selection{PassID: 4, Selected: true, Quantity: 2},
		)},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, quote.ID)
	assert.Equal(t, "USD", quote.Currency)
	require.Len(t, quote.Lines, 1)
	assert.Equal(t, 1, quote.Lines[0].PassID)
	assert.Equal(t, []string{"1 x Month Pass (Main): USD 300.00"}, quote.Summary)
	assert.Equal(t, models.TotalResult{OriginalTotal: 30000, Total: 30000}, quote.Totals)
	assert.Empty(t, quote.DiscountLabel)
	f.assertExpectations(t)
}

func TestCheckoutService_Quote_Discounts(t *testing.T) {
	groupID := 3
	maxUses := 10

	tests := []struct {
		name          string
		couponCode    string
		groupID       *int
		setup         func(f *fixture)
		expectedTotal int
		expectedLabel string
		expectedErr   error
	}{
		{
			name:       "coupon",
			couponCode: "summer",
			setup: func(f *fixture) {
				f.coupons.On("GetByCode", mock.Anything, 1, "summer").Return(&models.Coupon{
					ID: 5, PopupID: 1, Code: "summer", DiscountPercentage: 10, IsActive: true, MaxUses: &maxUses,
				}, nil)
			},
			expectedTotal: 27000,
			expectedLabel: "Coupon SUMMER (10% off)",
		},
		{
			name:    "group",
			groupID: &groupID,
			setup: func(f *fixture) {
				f.groups.On("GetByID", mock.Anything, 3).Return(&models.Group{ID: 3, PopupID: 1, Name: "Builders", DiscountPercentage: 25}, nil)
			},
			expectedTotal: 22500,
			expectedLabel: "Builders discount (25% off)",
		},
		{
			name:       "coupon and group are added",
			couponCode: "summer",
			groupID:    &groupID,
			setup: func(f *fixture) {
				f.coupons.On("GetByCode", mock.Anything, 1, "summer").Return(&models.Coupon{
					ID: 5, PopupID: 1, Code: "summer", DiscountPercentage: 10, IsActive: true,
				}, nil)
				f.groups.On("GetByID", mock.Anything, 3).Return(&models.Group{ID: 3, PopupID: 1, Name: "Builders", DiscountPercentage: 25}, nil)
			},
			expectedTotal: 19500,
			expectedLabel: "Coupon SUMMER (10% off)",
		},
		{
			name:       "exhausted coupon",
			couponCode: "summer",
			setup: func(f *fixture) {
				f.coupons.On("GetByCode", mock.Anything, 1, "summer").Return(&models.Coupon{
					ID: 5, PopupID: 1, Code: "summer", DiscountPercentage: 10, IsActive: true, MaxUses: &maxUses, CurrentUses: 10,
				}, nil)
			},
			expectedErr: models.ErrCouponInactive,
		},
		{
			name:       "unknown coupon",
			couponCode: "nope",
			setup: func(f *fixture) {
				f.coupons.On("GetByCode", mock.Anything, 1, "nope").Return(nil, models.ErrCouponNotFound)
			},
			expectedErr: models.ErrCouponNotFound,
		},
		{
			name:    "unknown group",
			groupID: &groupID,
			setup: func(f *fixture) {
				f.groups.On("GetByID", mock.Anything, 3).Return(nil, models.ErrGroupNotFound)
			},
			expectedErr: models.ErrInvalidInput,
		},
		{
			name:    "group of another popup",
			groupID: &groupID,
			setup: func(f *fixture) {
				f.groups.On("GetByID", mock.Anything, 3).Return(&models.Group{ID: 3, PopupID: 2, Name: "Other", DiscountPercentage: 25}, nil)
			},
			expectedErr: models.ErrInvalidInput,
		},
		{
			name:    "misconfigured group percentage",
			groupID: &groupID,
			setup: func(f *fixture) {
				f.groups.On("GetByID", mock.Anything, 3).Return(&models.Group{ID: 3, PopupID: 1, Name: "Broken", DiscountPercentage: 120}, nil)
			},
			expectedErr: models.ErrConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.passes.On("GetByPopup", mock.Anything, 1).Return(testPasses(), nil)
			tt.setup(f)

			quote, err := f.service.Quote(context.Background(), &QuoteRequest{
				PopupID:    1,
				Attendees:  []models.AttendeeSelection{mainAttendee(models.Selection{PassID: 1, Selected: true})},
				CouponCode: tt.couponCode,
				GroupID:    tt.groupID,
			})

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedTotal, quote.Totals.Total)
			assert.Equal(t, tt.expectedLabel, quote.DiscountLabel)
			f.assertExpectations(t)
		})
	}
}

func TestCheckoutService_Quote_EditingOverlaysPurchases(t *testing.T) {
	f := newFixture(t)
	f.passes.On("GetByPopup", mock.Anything, 1).Return(testPasses(), nil)
	f.purchases.On("GetByAttendees", mock.Anything, 1, []int{10}).Return([]models.Purchase{
		{AttendeeID: 10, PassID: 2, Quantity: 1, UnitPrice: 9000},
		{AttendeeID: 10, PassID: 4, Quantity: 1, UnitPrice: 4500},
		{AttendeeID: 11, PassID: 1, Quantity: 1, UnitPrice: 30000},
	}, nil)

	quote, err := f.service.Quote(context.Background(), &QuoteRequest{
		PopupID: 1,
		Editing: true,
		Attendees: []models.AttendeeSelection{mainAttendee(
			models.Selection{PassID: 2, Selected: true},
			models.Selection{PassID: 4, Selected: true, Quantity: 3},
		)},
	})
	require.NoError(t, err)

	// The purchased week is not billed again and only the two added days are
	require.Len(t, quote.Lines, 1)
	assert.Equal(t, 4, quote.Lines[0].PassID)
	assert.Equal(t, 2, quote.Lines[0].Quantity)
	assert.Equal(t, 4500, quote.Lines[0].UnitPrice)
	assert.Equal(t, 9000, quote.Totals.Total)
	assert.True(t, quote.Editing)
	f.assertExpectations(t)
}

func TestCheckoutService_Quote_IgnoresClientPaidState(t *testing.T) {
	free := 0

	tests := []struct {
		name          string
		attendee      models.AttendeeSelection
		expectedTotal int
		expectedErr   error
	}{
		{
			name:          "original price",
			attendee:      mainAttendee(models.Selection{PassID: 1, Selected: true, OriginalPrice: &free}),
			expectedTotal: 30000,
		},
		{
			name:          "purchased flag outside edit mode",
			attendee:      mainAttendee(models.Selection{PassID: 2, Selected: true, Purchased: true}),
			expectedTotal: 10000,
		},
		{
			name:          "original quantity",
			attendee:      mainAttendee(models.Selection{PassID: 4, Selected: true, Quantity: 2, OriginalQuantity: 2}),
			expectedTotal: 10000,
		},
		{
			name: "category comes from the registration",
			attendee: models.AttendeeSelection{
				AttendeeID: 10,
				Category:   models.CategoryKid,
				Selections: []models.Selection{{PassID: 6, Selected: true}},
			},
			expectedErr: models.ErrInputState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.passes.On("GetByPopup", mock.Anything, 1).Return(testPasses(), nil)

			quote, err := f.service.Quote(context.Background(), &QuoteRequest{
				PopupID:   1,
				Attendees: []models.AttendeeSelection{tt.attendee},
			})

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedTotal, quote.Totals.Total)
			assert.Equal(t, models.CategoryMain, quote.Lines[0].Category)
		})
	}
}

func TestCheckoutService_Quote_EditingPricesRetiredPasses(t *testing.T) {
	f := newFixture(t)
	f.passes.On("GetByPopup", mock.Anything, 1).Return(testPasses(), nil)
	f.purchases.On("GetByAttendees", mock.Anything, 1, []int{10}).Return([]models.Purchase{
		{AttendeeID: 10, PassID: 8, Quantity: 1, UnitPrice: 28000},
	}, nil)
	f.passes.On("GetByIDs", mock.Anything, 1, []int{8}).Return([]*models.Pass{
		{ID: 8, PopupID: 1, Name: "Early Month Pass", Tier: models.TierMonth, Price: 28000, StartDate: date(time.June, 1), EndDate: date(time.June, 30)},
	}, nil)

	quote, err := f.service.Quote(context.Background(), &QuoteRequest{
		PopupID: 1,
		Editing: true,
		Attendees: []models.AttendeeSelection{mainAttendee(
			models.Selection{PassID: 2, Selected: true},
			models.Selection{PassID: 4, Selected: true, Quantity: 1},
		)},
	})
	require.NoError(t, err)

	// The retired month pass still covers the new week and day
	assert.Empty(t, quote.Lines)
	assert.Equal(t, 0, quote.Totals.Total)
	f.assertExpectations(t)
}

func TestCheckoutService_Quote_Errors(t *testing.T) {
	tests := []struct {
		name        string
		req         *QuoteRequest
		passes      []*models.Pass
		storeErr    error
		expectedErr error
	}{
		{
			name:        "invalid popup",
			req:         &QuoteRequest{PopupID: 0},
			expectedErr: models.ErrInvalidInput,
		},
		{
			name: "duplicate attendee",
			req: &QuoteRequest{PopupID: 1, Attendees: []models.AttendeeSelection{
				mainAttendee(), mainAttendee(),
			}},
			expectedErr: models.ErrInvalidInput,
		},
		{
			name:        "unknown popup",
			req:         &QuoteRequest{PopupID: 1},
			storeErr:    models.ErrPopupNotFound,
			expectedErr: models.ErrPopupNotFound,
		},
		{
			name:        "missing pass",
			req:         &QuoteRequest{PopupID: 1, Attendees: []models.AttendeeSelection{mainAttendee(models.Selection{PassID: 99, Selected: true})}},
			passes:      testPasses(),
			expectedErr: models.ErrInputState,
		},
		{
			name: "negative catalog price",
			req:  &QuoteRequest{PopupID: 1, Attendees: []models.AttendeeSelection{mainAttendee(models.Selection{PassID: 7, Selected: true})}},
			passes: []*models.Pass{
				{ID: 7, PopupID: 1, Name: "Broken", Tier: models.TierPatron, Price: -100},
			},
			expectedErr: models.ErrConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.req.PopupID > 0 && len(tt.req.Attendees) < 2 {
				f.passes.On("GetByPopup", mock.Anything, tt.req.PopupID).Return(tt.passes, tt.storeErr)
			}

			_, err := f.service.Quote(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestCheckoutService_Checkout(t *testing.T) {
	billing := PaymentBillingInfo{Email: "ana@example.com", Name: "Ana"}

	f := newFixture(t)
	f.passes.On("GetByPopup", mock.Anything, 1).Return(testPasses(), nil)
	f.coupons.On("GetByCode", mock.Anything, 1, "SUMMER").Return(&models.Coupon{
		ID: 5, PopupID: 1, Code: "SUMMER", DiscountPercentage: 12.5, IsActive: true,
	}, nil)
	f.payments.On("ProcessPayment", mock.Anything, 13125, "USD", billing).Return(&PaymentResult{
		PaymentID: "pay_1", Status: PaymentStatusSuccess, Amount: 13125, Currency: "USD",
	}, nil)
	f.purchases.On("Record", mock.Anything, "pay_1", mock.MatchedBy(func(lines []models.ChargeableLine) bool {
		return len(lines) == 2
	})).Return(nil)
	f.coupons.On("IncrementUses", mock.Anything, 5).Return(nil)

	result, err := f.service.Checkout(context.Background(), &QuoteRequest{
		PopupID:    1,
		CouponCode: "SUMMER",
		Attendees: []models.AttendeeSelection{mainAttendee(
			models.Selection{PassID: 2, Selected: true},
			models.Selection{PassID: 4, Selected: true, Quantity: 1},
		)},
	}, billing)
	require.NoError(t, err)

	assert.Equal(t, 15000, result.Quote.Totals.OriginalTotal)
	assert.Equal(t, 1875, result.Quote.Totals.DiscountAmount)
	assert.Equal(t, "pay_1", result.Payment.PaymentID)
	f.assertExpectations(t)
}

func TestCheckoutService_Checkout_ChargesCatalogPriceOverClientPrice(t *testing.T) {
	billing := PaymentBillingInfo{Email: "ana@example.com"}
	free := 0

	f := newFixture(t)
	f.passes.On("GetByPopup", mock.Anything, 1).Return(testPasses(), nil)
	f.payments.On("ProcessPayment", mock.Anything, 30000, "USD", billing).Return(&PaymentResult{
		PaymentID: "pay_3", Status: PaymentStatusSuccess, Amount: 30000, Currency: "USD",
	}, nil)
	f.purchases.On("Record", mock.Anything, "pay_3", mock.MatchedBy(func(lines []models.ChargeableLine) bool {
		return len(lines) == 1 && lines[0].PassID == 1 && lines[0].UnitPrice == 30000
	})).Return(nil)

	result, err := f.service.Checkout(context.Background(), &QuoteRequest{
		PopupID:   1,
		Attendees: []models.AttendeeSelection{mainAttendee(models.Selection{PassID: 1, Selected: true, OriginalPrice: &free})},
	}, billing)
	require.NoError(t, err)

	assert.Equal(t, PaymentStatusSuccess, result.Payment.Status)
	f.assertExpectations(t)
}

func TestCheckoutService_Checkout_RejectsUnregisteredAttendees(t *testing.T) {
	tests := []struct {
		name       string
		attendeeID int
	}{
		{"unknown attendee", 99},
		{"attendee of another popup", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.passes.On("GetByPopup", mock.Anything, 1).Return(testPasses(), nil)

			attendee := mainAttendee(models.Selection{PassID: 1, Selected: true})
			attendee.AttendeeID = tt.attendeeID

			_, err := f.service.Checkout(context.Background(), &QuoteRequest{
				PopupID:   1,
				Attendees: []models.AttendeeSelection{attendee},
			}, PaymentBillingInfo{Email: "ana@example.com"})

			assert.ErrorIs(t, err, models.ErrInvalidInput)
			f.payments.AssertNotCalled(t, "ProcessPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			f.purchases.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCheckoutService_Checkout_ZeroTotalSkipsProcessor(t *testing.T) {
	f := newFixture(t)
	f.passes.On("GetByPopup", mock.Anything, 1).Return(testPasses(), nil)
	f.purchases.On("GetByAttendees", mock.Anything, 1, []int{10}).Return([]models.Purchase{
		{AttendeeID: 10, PassID: 1, Quantity: 1, UnitPrice: 30000},
	}, nil)
	f.purchases.On("Record", mock.Anything, mock.AnythingOfType("string"), []models.ChargeableLine{}).Return(nil)

	result, err := f.service.Checkout(context.Background(), &QuoteRequest{
		PopupID:   1,
		Editing:   true,
		Attendees: []models.AttendeeSelection{mainAttendee(models.Selection{PassID: 1, Selected: true})},
	}, PaymentBillingInfo{Email: "ana@example.com"})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Quote.Totals.Total)
	assert.Equal(t, PaymentStatusNoCharge, result.Payment.Status)
	f.payments.AssertNotCalled(t, "ProcessPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestCheckoutService_Checkout_Failures(t *testing.T) {
	billing := PaymentBillingInfo{Email: "ana@example.com"}
	req := func() *QuoteRequest {
		return &QuoteRequest{
			PopupID:   1,
			Attendees: []models.AttendeeSelection{mainAttendee(models.Selection{PassID: 2, Selected: true})},
		}
	}

	t.Run("invalid billing", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Checkout(context.Background(), req(), PaymentBillingInfo{})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
		f.assertExpectations(t)
	})

	t.Run("declined payment", func(t *testing.T) {
		f := newFixture(t)
		f.passes.On("GetByPopup", mock.Anything, 1).Return(testPasses(), nil)
		f.payments.On("ProcessPayment", mock.Anything, 10000, "USD", billing).Return(&PaymentResult{
			PaymentID: "pay_2", Status: PaymentStatusFailed, ErrorMessage: "card declined",
		}, nil)

		result, err := f.service.Checkout(context.Background(), req(), billing)
		assert.ErrorIs(t, err, models.ErrPaymentRejected)
		require.NotNil(t, result)
		assert.Equal(t, PaymentStatusFailed, result.Payment.Status)
		f.purchases.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("processor error", func(t *testing.T) {
		f := newFixture(t)
		f.passes.On("GetByPopup", mock.Anything, 1).Return(testPasses(), nil)
		f.payments.On("ProcessPayment", mock.Anything, 10000, "USD", billing).Return(nil, errors.New("gateway timeout"))

		_, err := f.service.Checkout(context.Background(), req(), billing)
		assert.ErrorContains(t, err, "gateway timeout")
	})
}

func TestMockPaymentService(t *testing.T) {
	service := NewMockPaymentService()

	result, err := service.ProcessPayment(context.Background(), 12345, "USD", PaymentBillingInfo{Email: "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusSuccess, result.Status)
	assert.Equal(t, 12345, result.Amount)
	assert.True(t, result.Succeeded())

	declined, err := service.ProcessPayment(context.Background(), 100, "USD", PaymentBillingInfo{Email: "a@b.c", CardToken: "tok_declined"})
	require.NoError(t, err)
	assert.False(t, declined.Succeeded())

	_, err = service.ProcessPayment(context.Background(), 0, "USD", PaymentBillingInfo{Email: "a@b.c"})
	assert.Error(t, err)
}

func TestNewPaymentService(t *testing.T) {
	service, err := NewPaymentService("mock")
	require.NoError(t, err)
	assert.IsType(t, &MockPaymentService{}, service)

	_, err = NewPaymentService("stripe")
	assert.Error(t, err)
}
