// Package pricing turns attendee pass selections and discount sources into a
// chargeable total. Every function here is pure: inputs are only read, and the
// same arguments always produce the same result.
package pricing

import (
	"fmt"
	"sort"

	"popup-registration-platform/internal/models"
)

// ResolveLineItems returns the chargeable lines for one attendee.
//
// Unselected passes are dropped, week and day passes inside a selected or
// purchased month pass are suppressed, day passes only bill for days added since
// the last purchase, and purchased non-day passes are never billed again.
func ResolveLineItems(attendee models.AttendeeSelection, catalog models.Catalog) ([]models.ChargeableLine, error) {
	if !attendee.Category.IsValid() {
		return nil, models.NewInputStateError(attendee.AttendeeID, 0,
			fmt.Sprintf("unknown attendee category %q", attendee.Category))
	}

	passes := make([]*models.Pass, len(attendee.Selections))
	for i, sel := range attendee.Selections {
		pass, err := lookupPass(attendee, sel, catalog)
		if err != nil {
			return nil, err
		}
		passes[i] = pass
	}

	covering := coveringMonths(attendee.Selections, passes)

	var lines []models.ChargeableLine
	for i, sel := range attendee.Selections {
		pass := passes[i]

		if !sel.Selected {
			continue
		}

		if !sel.Purchased && !pass.AllowsCategory(attendee.Category) {
			return nil, models.NewInputStateError(attendee.AttendeeID, pass.ID,
				fmt.Sprintf("pass is not available to %s attendees", attendee.Category))
		}

		if isSuppressed(pass, covering) {
			continue
		}

		quantity := sel.ChargeableQuantity(pass.Tier)
		if quantity == 0 {
			continue
		}

		unitPrice := sel.UnitPrice(pass)
		if unitPrice < 0 {
			return nil, models.NewConfigurationError(fmt.Sprintf("pass %d", pass.ID), "unit price cannot be negative")
		}

		lines = append(lines, models.ChargeableLine{
			AttendeeID: attendee.AttendeeID,
			PassID:     pass.ID,
			PassName:   pass.Name,
			Tier:       pass.Tier,
			Category:   attendee.Category,
			UnitPrice:  unitPrice,
			Quantity:   quantity,
		})
	}

	return lines, nil
}

// ResolveAll resolves every attendee and orders the lines by attendee category.
// Attendees of the same category keep their input order.
func ResolveAll(attendees []models.AttendeeSelection, catalog models.Catalog) ([]models.ChargeableLine, error) {
	ordered := make([]models.AttendeeSelection, len(attendees))
	copy(ordered, attendees)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Category.Rank() < ordered[j].Category.Rank()
	})

	lines := []models.ChargeableLine{}
	for _, attendee := range ordered {
		attendeeLines, err := ResolveLineItems(attendee, catalog)
		if err != nil {
			return nil, err
		}
		lines = append(lines, attendeeLines...)
	}
	return lines, nil
}

// SuppressedPasses returns the IDs of selected passes that a month pass already covers.
// The UI keeps these visible but they never reach the calculator.
func SuppressedPasses(attendee models.AttendeeSelection, catalog models.Catalog) ([]int, error) {
	passes := make([]*models.Pass, len(attendee.Selections))
	for i, sel := range attendee.Selections {
		pass, err := lookupPass(attendee, sel, catalog)
		if err != nil {
			return nil, err
		}
		passes[i] = pass
	}

	covering := coveringMonths(attendee.Selections, passes)

	var ids []int
	for i, sel := range attendee.Selections {
		if sel.Selected && isSuppressed(passes[i], covering) {
			ids = append(ids, passes[i].ID)
		}
	}
	return ids, nil
}

func lookupPass(attendee models.AttendeeSelection, sel models.Selection, catalog models.Catalog) (*models.Pass, error) {
	pass, ok := catalog[sel.PassID]
	if !ok || pass == nil {
		return nil, models.NewInputStateError(attendee.AttendeeID, sel.PassID, "pass is not in the catalog")
	}
	if err := pass.Validate(); err != nil {
		return nil, err
	}
	if sel.Quantity < 0 || sel.OriginalQuantity < 0 {
		return nil, models.NewInputStateError(attendee.AttendeeID, sel.PassID, "quantity cannot be negative")
	}
	return pass, nil
}

// coveringMonths collects month passes that are selected or already paid for.
func coveringMonths(selections []models.Selection, passes []*models.Pass) []*models.Pass {
	var months []*models.Pass
	for i, sel := range selections {
		if passes[i].Tier != models.TierMonth {
			continue
		}
		if sel.Selected || sel.Purchased {
			months = append(months, passes[i])
		}
	}
	return months
}

func isSuppressed(pass *models.Pass, months []*models.Pass) bool {
	if pass.Tier != models.TierWeek && pass.Tier != models.TierDay {
		return false
	}
	for _, month := range months {
		if month.Covers(pass) {
			return true
		}
	}
	return false
}
