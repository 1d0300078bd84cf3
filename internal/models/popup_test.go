package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPopup_Validate(t *testing.T) {
	start := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 29)

	tests := []struct {
		name    string
		popup   Popup
		wantErr bool
	}{
		{
			name:  "valid popup",
			popup: Popup{Name: "Summer Popup", Slug: "summer-popup", StartDate: start, EndDate: end},
		},
		{
			name:    "missing name",
			popup:   Popup{Name: "  ", Slug: "summer-popup", StartDate: start, EndDate: end},
			wantErr: true,
		},
		{
			name:    "uppercase slug",
			popup:   Popup{Name: "Summer", Slug: "Summer-Popup", StartDate: start, EndDate: end},
			wantErr: true,
		},
		{
			name:    "trailing dash",
			popup:   Popup{Name: "Summer", Slug: "summer-", StartDate: start, EndDate: end},
			wantErr: true,
		},
		{
			name:    "end equals start",
			popup:   Popup{Name: "Summer", Slug: "summer", StartDate: start, EndDate: start},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.popup.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
