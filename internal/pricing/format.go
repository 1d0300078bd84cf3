package pricing

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"popup-registration-platform/internal/models"
)

// Formatter renders cart summary lines in a fixed currency
type Formatter struct {
	unit currency.Unit
	tag  language.Tag
}

// NewFormatter creates a formatter for an ISO 4217 currency code
func NewFormatter(currencyCode string) (*Formatter, error) {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, models.NewConfigurationError("currency", fmt.Sprintf("unknown currency code %q", currencyCode))
	}

	return &Formatter{unit: unit, tag: language.English}, nil
}

var defaultFormatter = &Formatter{unit: currency.USD, tag: language.English}

// FormatLine renders a line with the default USD formatter
func FormatLine(line models.ChargeableLine, isEditing bool) string {
	return defaultFormatter.FormatLine(line, isEditing)
}

// FormatLine renders "<quantity> x <name> (<category>): <amount>".
// The amount is the same line subtotal the calculator sums; it is shown
// negative only for credit lines while editing.
func (f *Formatter) FormatLine(line models.ChargeableLine, isEditing bool) string {
	amount := line.Subtotal()
	if isEditing && line.Credit {
		amount = -amount
	}

	return fmt.Sprintf("%d x %s (%s): %s",
		line.Quantity,
		line.PassName,
		f.CategoryLabel(line.Category),
		f.FormatAmount(amount),
	)
}

// FormatAmount renders cents as "<CODE> 1,234.50"
func (f *Formatter) FormatAmount(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return message.NewPrinter(f.tag).Sprintf("%s %s%d.%02d", f.unit.String(), sign, cents/100, cents%100)
}

// CategoryLabel returns the display label of an attendee category.
// Casers are stateful, so one is built per call.
func (f *Formatter) CategoryLabel(category models.AttendeeCategory) string {
	return cases.Title(f.tag).String(string(category))
}

// Currency returns the ISO code the formatter renders
func (f *Formatter) Currency() string {
	return f.unit.String()
}
