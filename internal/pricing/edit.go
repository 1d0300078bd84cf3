package pricing

import (
	"popup-registration-platform/internal/models"
)

// ApplyPurchases overlays an attendee's prior purchases onto the current selection
// for edit mode. Purchased passes are flagged with the quantity and unit price
// already paid so only newly added units are billed. Passes the client did not
// send are added as selected. Purchases are authoritative over any edit state the
// client sent. Purchases are expected oldest first; a pass bought more than once
// bills its added units at the most recent price paid. The input is not modified.
func ApplyPurchases(attendee models.AttendeeSelection, purchases []models.Purchase) models.AttendeeSelection {
	out := attendee.Clone()

	type paid struct {
		quantity  int
		unitPrice int
	}
	var order []int
	paidByPass := make(map[int]*paid)
	for _, purchase := range purchases {
		if purchase.AttendeeID != attendee.AttendeeID {
			continue
		}
		p, ok := paidByPass[purchase.PassID]
		if !ok {
			p = &paid{}
			paidByPass[purchase.PassID] = p
			order = append(order, purchase.PassID)
		}
		p.quantity += purchase.Quantity
		p.unitPrice = purchase.UnitPrice
	}

	index := make(map[int]int, len(out.Selections))
	for i, sel := range out.Selections {
		index[sel.PassID] = i
	}

	for _, passID := range order {
		p := paidByPass[passID]

		i, ok := index[passID]
		if !ok {
			out.Selections = append(out.Selections, models.Selection{PassID: passID, Selected: true})
			i = len(out.Selections) - 1
		}

		price := p.unitPrice
		sel := &out.Selections[i]
		sel.Purchased = true
		sel.OriginalQuantity = p.quantity
		sel.OriginalPrice = &price
		if sel.Quantity < sel.OriginalQuantity {
			sel.Quantity = sel.OriginalQuantity
		}
	}

	return out
}
