package dataset

import (
	"strings"
	"testing"
	"time"
)

const sampleCSV = `Topic,City,State,Venue,Event_Date,Gross_Registrants,Attended_HH,Registration_Max,CPA,FB_CPR,CPM,FB_Impressions,FB_Reach,Cost_Per_Verified_HH,Attendance_Rate,Fulfillment_Percent,Venue_Image_Allowed-Current,Venue_Disclosure_Needed
TAXES_IN_RETIREMENT_567,Tampa,FL,Crowne Plaza,2025-03-14,42,22,96,"$61.20","$8.40",12.5,15000,9000,71.3,0.52,0.55,Yes,No
ESTATE_PLANNING_567,Tampa,FL,Hilton Garden Inn,3/2/2025,38,18,,54.10,7.95,,,,68.0,,,no,YES
,,FL,Missing Identity,2025-01-01,10,5,,,,,,,,,,,
`

func TestParseSampleCSV(t *testing.T) {
	result, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if len(result.Events) != 2 {
		t.Fatalf("parsed %d events, want 2", len(result.Events))
	}
	if result.Skipped != 1 {
		t.Errorf("skipped %d rows, want 1", result.Skipped)
	}

	first := result.Events[0]
	if first.Topic != "TAXES_IN_RETIREMENT_567" {
		t.Errorf("topic = %q", first.Topic)
	}
	if first.City != "Tampa" || first.State != "FL" {
		t.Errorf("market = %s, %s", first.City, first.State)
	}
	if first.Venue != "Crowne Plaza" {
		t.Errorf("venue = %q", first.Venue)
	}
	if first.EventDate != time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC) {
		t.Errorf("event date = %v", first.EventDate)
	}
	if first.CPA == nil || *first.CPA != 61.20 {
		t.Errorf("CPA = %v, want 61.20 (currency prefix stripped)", first.CPA)
	}
	if !first.ImageAllowed {
		t.Error("image allowed should be true for Yes")
	}
	if first.DisclosureNeeded {
		t.Error("disclosure needed should be false for No")
	}

	second := result.Events[1]
	if second.EventDate != time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC) {
		t.Errorf("slash date not parsed: %v", second.EventDate)
	}
	if second.CPM != nil {
		t.Errorf("empty CPM should be nil, got %v", *second.CPM)
	}
	if !second.DisclosureNeeded {
		t.Error("disclosure needed should be true for YES")
	}
}

func TestParseDerivesMetrics(t *testing.T) {
	csv := `Topic,City,State,Venue,Gross_Registrants,Attended_HH,Registration_Max
TIR,Tampa,FL,Venue A,40,20,96
`
	result, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(result.Events) != 1 {
		t.Fatalf("parsed %d events, want 1", len(result.Events))
	}

	e := result.Events[0]
	if e.AttendanceRate == nil || *e.AttendanceRate != 0.5 {
		t.Errorf("derived attendance rate = %v, want 0.5", e.AttendanceRate)
	}
	// fulfillment = attended / (max / 2.4) = 20 / 40 = 0.5
	if e.FulfillmentPercent == nil || *e.FulfillmentPercent != 0.5 {
		t.Errorf("derived fulfillment = %v, want 0.5", e.FulfillmentPercent)
	}
}

func TestParseMissingRequiredColumn(t *testing.T) {
	csv := `City,State,Venue
Tampa,FL,Crowne Plaza
`
	if _, err := Parse(strings.NewReader(csv)); err == nil {
		t.Fatal("expected error for missing topic column")
	}
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Topic", "topic"},
		{" Event_Date ", "event_date"},
		{"Venue_Image_Allowed-Current", "venue_image_allowedcurrent"},
		{"Fulfillment %", "fulfillment_"},
		{"Gross Registrants", "gross_registrants"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := normalizeHeader(tt.input); got != tt.expected {
				t.Errorf("normalizeHeader(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		input string
		want  *float64
	}{
		{"61.20", ptr(61.20)},
		{"$61.20", ptr(61.20)},
		{"52.1%", ptr(52.1)},
		{"1,234", ptr(1234)},
		{"", nil},
		{"N/A", nil},
		{"abc", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseFloat(tt.input)
			switch {
			case got == nil && tt.want == nil:
			case got == nil || tt.want == nil:
				t.Errorf("parseFloat(%q) = %v, want %v", tt.input, got, tt.want)
			case *got != *tt.want:
				t.Errorf("parseFloat(%q) = %f, want %f", tt.input, *got, *tt.want)
			}
		})
	}
}

func ptr(f float64) *float64 { return &f }
