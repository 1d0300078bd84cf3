// Command quote prices a checkout selection offline from a JSON file.
//
//	go run ./cmd/quote -file cart.json -currency EUR
//
// The file holds {"catalog": [...passes], "attendees": [...], "discount": {...}}.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"popup-registration-platform/internal/models"
	"popup-registration-platform/internal/pricing"
)

// QuoteFile is the offline quote input
type QuoteFile struct {
	Catalog   []*models.Pass             `json:"catalog"`
	Attendees []models.AttendeeSelection `json:"attendees"`
	Discount  models.DiscountContext     `json:"discount"`
}

type options struct {
	file     string
	editing  bool
	currency string
	asJSON   bool
}

func main() {
	log.SetFlags(0)

	var opts options
	flag.StringVar(&opts.file, "file", "-", "Quote input file, - for stdin")
	flag.BoolVar(&opts.editing, "editing", false, "Render the summary for an edit of a prior purchase")
	flag.StringVar(&opts.currency, "currency", "USD", "ISO 4217 currency code")
	flag.BoolVar(&opts.asJSON, "json", false, "Print the priced lines and totals as JSON")
	flag.Parse()

	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		switch {
		case errors.Is(err, models.ErrConfiguration):
			log.Printf("Configuration error: %v", err)
		case errors.Is(err, models.ErrInputState):
			log.Printf("Invalid selection: %v", err)
		default:
			log.Printf("Error: %v", err)
		}
		os.Exit(1)
	}
}

func run(opts options, stdin io.Reader, stdout io.Writer) error {
	input, err := readQuoteFile(opts.file, stdin)
	if err != nil {
		return err
	}

	formatter, err := pricing.NewFormatter(opts.currency)
	if err != nil {
		return err
	}

	catalog, err := models.NewCatalog(input.Catalog)
	if err != nil {
		return err
	}

	lines, err := pricing.ResolveAll(input.Attendees, catalog)
	if err != nil {
		return err
	}

	totals, err := pricing.CalculateTotal(lines, input.Discount)
	if err != nil {
		return err
	}

	label, hasLabel := pricing.DiscountLabel(input.Discount)

	if opts.asJSON {
		summary := make([]string, len(lines))
		for i, line := range lines {
			summary[i] = formatter.FormatLine(line, opts.editing)
		}
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string]interface{}{
			"currency":       formatter.Currency(),
			"lines":          lines,
			"summary":        summary,
			"totals":         totals,
			"discount_label": label,
		})
	}

	if len(lines) == 0 {
		fmt.Fprintln(stdout, "Nothing to charge")
	}
	for _, line := range lines {
		fmt.Fprintln(stdout, formatter.FormatLine(line, opts.editing))
	}

	fmt.Fprintln(stdout)
	if hasLabel {
		fmt.Fprintln(stdout, label)
	}
	fmt.Fprintf(stdout, "Subtotal: %s\n", formatter.FormatAmount(totals.OriginalTotal))
	if totals.HasDiscount() {
		fmt.Fprintf(stdout, "Discount (%s%%): %s\n",
			models.FormatPercentage(totals.DiscountPercentage), formatter.FormatAmount(-totals.DiscountAmount))
	}
	fmt.Fprintf(stdout, "Total: %s\n", formatter.FormatAmount(totals.Total))

	return nil
}

func readQuoteFile(path string, stdin io.Reader) (*QuoteFile, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open quote file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var input QuoteFile
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		return nil, fmt.Errorf("failed to parse quote file: %w", err)
	}
	return &input, nil
}
