package vor

import (
	"fmt"
	"strings"
	"time"
)

// rankMarkers prefix the ranked venue lines. They double as the renderer's
// venue-header and section-break markers, so the report builder and
// internal/report must agree on them.
var rankMarkers = []string{"🥇", "🥈", "🥉", "🎖️"}

// recommendedTime is the standing scheduling recommendation carried over
// from the event history analysis.
const recommendedTime = "11:00 AM on Monday"

// BuildReport assembles the plain-text Venue Optimization Report for a
// market. Lines use the marker glyphs the renderer classifies on.
func BuildReport(topic, city, state string, totalEvents int, venues []VenueSummary) string {
	market := fmt.Sprintf("%s, %s", strings.ToUpper(strings.TrimSpace(city)), strings.ToUpper(strings.TrimSpace(state)))

	var lines []string
	lines = append(lines,
		"🏛️ Venue Optimization Report",
		fmt.Sprintf("📍 Market: %s | Topic: %s", market, topic),
	)

	for i, venue := range venues {
		marker := rankMarkers[len(rankMarkers)-1]
		if i < len(rankMarkers) {
			marker = rankMarkers[i]
		}

		lines = append(lines,
			"---",
			fmt.Sprintf("%s %s", marker, venue.Venue),
			fmt.Sprintf("📍 Location: %s, %s", venue.City, venue.State),
			fmt.Sprintf("🗓️ Most Recent Event: %s", formatDate(venue.MostRecentEvent)),
			fmt.Sprintf("📆 Total Events: %d", venue.TotalEvents),
			fmt.Sprintf("👥 Avg. Gross Registrants: %s", formatNumber(venue.AvgGrossRegistrants)),
			fmt.Sprintf("💰 Avg. CPA: %s", formatCurrency(venue.AvgCPA)),
			fmt.Sprintf("📈 FB CPR: %s", formatCurrency(venue.AvgFBCPR)),
			fmt.Sprintf("🎯 Attendance Rate: %s", formatPercent(venue.AvgAttendanceRate)),
			fmt.Sprintf("📊 Fulfillment %%: %s", formatPercent(venue.AvgFulfillment)),
			fmt.Sprintf("🖼️ Image Allowed: %s", checkmark(venue.ImageAllowed)),
			fmt.Sprintf("⚠️ Disclosure Needed: %s", checkmark(venue.DisclosureNeeded)),
			fmt.Sprintf("🏆 Score: %.2f / 100", venue.Score),
			fmt.Sprintf("🕓 Best Time: %s", recommendedTime),
		)
	}

	summary := fmt.Sprintf("**💬 Based on %d events in %s, no venue could be scored for %s.",
		totalEvents, market, topic)
	if len(venues) > 0 {
		summary = fmt.Sprintf("**💬 Based on %d events in %s, %s is the strongest venue for %s.",
			totalEvents, market, venues[0].Venue, topic)
	}
	lines = append(lines, "---", summary)

	return strings.Join(lines, "\n")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format("2006-01-02")
}

func formatNumber(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}

func formatCurrency(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("$%.2f", *v)
}

// formatPercent renders rate fields on the percent scale regardless of
// whether the source stored a fraction or a percentage.
func formatPercent(v *float64) string {
	if v == nil {
		return "n/a"
	}
	pct := *v
	if pct <= 1 {
		pct *= 100
	}
	return fmt.Sprintf("%.2f%%", pct)
}

func checkmark(b bool) string {
	if b {
		return "✅"
	}
	return "❌"
}
