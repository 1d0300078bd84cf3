package pricing

import (
	"fmt"
	"math"

	"popup-registration-platform/internal/models"
)

// maxPercentage caps the combined discount so totals never go negative
const maxPercentage = 100.0

// CalculateTotal sums the chargeable lines and applies the combined discount.
//
// The referral percentage and the group percentage are added together and
// capped at 100. The discount is rounded half-up to the cent and the payable
// total is whatever remains of the original total.
func CalculateTotal(lines []models.ChargeableLine, discount models.DiscountContext) (models.TotalResult, error) {
	var originalTotal int
	for _, line := range lines {
		if err := validateLine(line); err != nil {
			return models.TotalResult{}, err
		}
		originalTotal += line.Subtotal()
	}

	pct, err := EffectivePercentage(discount)
	if err != nil {
		return models.TotalResult{}, err
	}

	discountAmount := applyPercentage(originalTotal, pct)

	return models.TotalResult{
		OriginalTotal:      originalTotal,
		DiscountAmount:     discountAmount,
		Total:              originalTotal - discountAmount,
		DiscountPercentage: pct,
	}, nil
}

// EffectivePercentage combines the referral and group percentages, capped at 100
func EffectivePercentage(discount models.DiscountContext) (float64, error) {
	if err := discount.Validate(); err != nil {
		return 0, err
	}

	pct := math.Min(maxPercentage, discount.ReferralPercentage()+discount.GroupDiscountPercentage)
	if pct < 0 || pct > maxPercentage {
		return 0, models.NewConfigurationError("effective discount", fmt.Sprintf("percentage %v is outside [0, 100]", pct))
	}
	return pct, nil
}

// DiscountLabel returns the banner text for the active discount, if any.
// A referral discount wins over a group discount.
func DiscountLabel(discount models.DiscountContext) (string, bool) {
	if discount.Referral != nil {
		if discount.Referral.Label != "" {
			return discount.Referral.Label, true
		}
		return fmt.Sprintf("Referral discount (%s%% off)", models.FormatPercentage(discount.Referral.Value)), true
	}

	if discount.GroupDiscountPercentage > 0 {
		name := discount.GroupName
		if name == "" {
			name = "Group"
		}
		return fmt.Sprintf("%s discount (%s%% off)", name, models.FormatPercentage(discount.GroupDiscountPercentage)), true
	}

	return "", false
}

func validateLine(line models.ChargeableLine) error {
	if line.UnitPrice < 0 {
		return models.NewConfigurationError(fmt.Sprintf("pass %d", line.PassID), "unit price cannot be negative")
	}
	if line.Quantity < 0 {
		return models.NewInputStateError(line.AttendeeID, line.PassID, "quantity cannot be negative")
	}
	if line.Credit {
		return models.NewInputStateError(line.AttendeeID, line.PassID, "credit lines cannot be charged")
	}
	return nil
}

// applyPercentage returns amount * pct / 100 rounded half-up. Validated
// percentages carry at most two decimals, so the basis-point product is exact.
func applyPercentage(amount int, pct float64) int {
	bps := int64(math.Round(pct * 100))
	return int((int64(amount)*bps + 5000) / 10000)
}
