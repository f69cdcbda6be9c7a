package vor

import (
	"strings"
	"testing"
	"time"

	"github.com/mashley00/venue-webhook/internal/report"
)

func sampleVenues() []VenueSummary {
	return []VenueSummary{
		{
			Venue: "Crowne Plaza", City: "Tampa", State: "FL",
			MostRecentEvent:     time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			TotalEvents:         2,
			AvgGrossRegistrants: fptr(42),
			AvgCPA:              fptr(50),
			AvgFBCPR:            fptr(9.8),
			AvgAttendanceRate:   fptr(0.55),
			AvgFulfillment:      fptr(0.7),
			ImageAllowed:        true,
			Score:               13.2,
		},
		{
			Venue: "Budget Hall", City: "Tampa", State: "FL",
			MostRecentEvent: time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC),
			TotalEvents:     1,
			AvgCPA:          fptr(90),
			Score:           5.42,
		},
	}
}

func TestBuildReport(t *testing.T) {
	text := BuildReport("TAXES_IN_RETIREMENT_567", "Tampa", "FL", 3, sampleVenues())
	lines := strings.Split(text, "\n")

	if lines[0] != "🏛️ Venue Optimization Report" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "📍 Market: TAMPA, FL | Topic: TAXES_IN_RETIREMENT_567" {
		t.Errorf("market line = %q", lines[1])
	}

	if !strings.Contains(text, "🥇 Crowne Plaza") {
		t.Error("missing gold marker for top venue")
	}
	if !strings.Contains(text, "🥈 Budget Hall") {
		t.Error("missing silver marker for second venue")
	}
	if !strings.Contains(text, "💰 Avg. CPA: $50.00") {
		t.Error("missing formatted CPA")
	}
	if !strings.Contains(text, "🎯 Attendance Rate: 55.00%") {
		t.Error("fraction attendance not rendered on percent scale")
	}
	if !strings.Contains(text, "🖼️ Image Allowed: ✅") {
		t.Error("missing image allowed checkmark")
	}
	if !strings.Contains(text, "**💬 Based on 3 events in TAMPA, FL, Crowne Plaza is the strongest venue for TAXES_IN_RETIREMENT_567.") {
		t.Errorf("summary line wrong:\n%s", text)
	}

	last := lines[len(lines)-1]
	if !strings.HasPrefix(last, "**💬") {
		t.Errorf("last line should be the summary, got %q", last)
	}
	if lines[len(lines)-2] != "---" {
		t.Error("summary should be preceded by a separator")
	}
}

// The rank and separator lines must be the ones the HTML renderer keys
// on, or the browser output loses its structure.
func TestBuildReportAgreesWithRenderer(t *testing.T) {
	text := BuildReport("EP", "Tampa", "FL", 3, sampleVenues())

	var headers, breaks int
	for _, line := range strings.Split(text, "\n") {
		if report.IsVenueHeader(line) {
			headers++
		}
		if report.IsSectionBreak(line) {
			breaks++
		}
	}

	// Title plus two rank lines
	if headers != 3 {
		t.Errorf("venue header lines = %d, want 3", headers)
	}
	// Two rank lines, three separators, one summary
	if breaks != 6 {
		t.Errorf("section break lines = %d, want 6", breaks)
	}
}

func TestBuildReportNoScorableVenues(t *testing.T) {
	text := BuildReport("SS", "Tampa", "FL", 2, nil)

	if !strings.Contains(text, "no venue could be scored") {
		t.Errorf("missing fallback summary:\n%s", text)
	}
	if strings.Contains(text, "🥇") {
		t.Error("rank markers should not appear without venues")
	}
}

func TestBuildReportHonorableMentionOverflow(t *testing.T) {
	venues := make([]VenueSummary, 5)
	for i := range venues {
		venues[i] = VenueSummary{Venue: string(rune('A' + i)), City: "Tampa", State: "FL"}
	}

	text := BuildReport("TIR", "Tampa", "FL", 5, venues)
	if got := strings.Count(text, "🎖️ "); got != 2 {
		t.Errorf("venues past the medals should all carry the ribbon, got %d", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := formatPercent(fptr(0.52)); got != "52.00%" {
		t.Errorf("fraction: got %q", got)
	}
	if got := formatPercent(fptr(52.1)); got != "52.10%" {
		t.Errorf("percent: got %q", got)
	}
	if got := formatPercent(nil); got != "n/a" {
		t.Errorf("nil: got %q", got)
	}
}
