package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/mashley00/venue-webhook/internal/database"
)

// ParseResult contains the parsed events and per-row error notes
type ParseResult struct {
	Events  []database.Event
	Skipped int      // rows missing topic/city/state/venue
	Errors  []string // non-fatal per-row parse notes
}

// Column aliases after header normalization. The upstream sheet has been
// renamed more than once, so each field accepts every name seen so far.
var columnAliases = map[string][]string{
	"topic":                {"topic"},
	"city":                 {"city"},
	"state":                {"state"},
	"venue":                {"venue", "venue_name"},
	"event_date":           {"event_date", "date"},
	"gross_registrants":    {"gross_registrants"},
	"attended_hh":          {"attended_hh", "attended_households"},
	"registration_max":     {"registration_max", "registration_cap"},
	"cpa":                  {"cpa"},
	"fb_cpr":               {"fb_cpr"},
	"cpm":                  {"cpm"},
	"fb_impressions":       {"fb_impressions"},
	"fb_reach":             {"fb_reach"},
	"cost_per_verified_hh": {"cost_per_verified_hh"},
	"attendance_rate":      {"attendance_rate"},
	"fulfillment_percent":  {"fulfillment_percent", "fulfillment"},
	"image_allowed":        {"venue_image_allowedcurrent", "venue_image_allowed", "image_allowed"},
	"disclosure_needed":    {"venue_disclosure_needed", "disclosure_needed"},
}

// Parse reads the AllEvents CSV and converts rows into events. Rows without
// the identifying columns are skipped; unparseable metric cells become nil
// rather than failing the import.
func Parse(r io.Reader) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // the sheet has ragged rows
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := resolveColumns(header)
	for _, required := range []string{"topic", "city", "state", "venue"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("CSV is missing required column %q", required)
		}
	}

	result := &ParseResult{}

	for lineNo := 2; ; lineNo++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", lineNo, err))
			continue
		}

		event, ok := parseRow(cols, record)
		if !ok {
			result.Skipped++
			continue
		}

		result.Events = append(result.Events, event)
	}

	return result, nil
}

// resolveColumns maps canonical field names to column indexes, matching
// headers after normalization.
func resolveColumns(header []string) map[string]int {
	normalized := make(map[string]int, len(header))
	for i, h := range header {
		normalized[normalizeHeader(h)] = i
	}

	cols := make(map[string]int)
	for field, aliases := range columnAliases {
		for _, alias := range aliases {
			if idx, ok := normalized[alias]; ok {
				cols[field] = idx
				break
			}
		}
	}
	return cols
}

// normalizeHeader lowercases, converts spaces to underscores and strips
// punctuation, mirroring how the dataset's own column cleaning behaves.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	var b strings.Builder
	for _, r := range h {
		switch {
		case r == ' ':
			b.WriteRune('_')
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

func parseRow(cols map[string]int, record []string) (database.Event, bool) {
	get := func(field string) string {
		idx, ok := cols[field]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	event := database.Event{
		Topic: strings.ToUpper(get("topic")),
		City:  get("city"),
		State: strings.ToUpper(get("state")),
		Venue: get("venue"),
	}

	if event.Topic == "" || event.City == "" || event.State == "" || event.Venue == "" {
		return database.Event{}, false
	}

	if d, ok := parseDate(get("event_date")); ok {
		event.EventDate = d
	}

	event.GrossRegistrants = parseFloat(get("gross_registrants"))
	event.AttendedHH = parseFloat(get("attended_hh"))
	event.RegistrationMax = parseFloat(get("registration_max"))
	event.CPA = parseFloat(get("cpa"))
	event.FBCPR = parseFloat(get("fb_cpr"))
	event.CPM = parseFloat(get("cpm"))
	event.FBImpressions = parseFloat(get("fb_impressions"))
	event.FBReach = parseFloat(get("fb_reach"))
	event.CostPerVerifiedHH = parseFloat(get("cost_per_verified_hh"))
	event.AttendanceRate = parseFloat(get("attendance_rate"))
	event.FulfillmentPercent = parseFloat(get("fulfillment_percent"))
	event.ImageAllowed = parseYesNo(get("image_allowed"))
	event.DisclosureNeeded = parseYesNo(get("disclosure_needed"))

	deriveMetrics(&event)

	return event, true
}

// deriveMetrics fills attendance and fulfillment from raw counts when the
// sheet doesn't carry them. Fulfillment divides by registration_max/2.4,
// the dataset's households-per-registration factor.
func deriveMetrics(event *database.Event) {
	if event.AttendanceRate == nil && event.AttendedHH != nil && event.GrossRegistrants != nil && *event.GrossRegistrants > 0 {
		rate := *event.AttendedHH / *event.GrossRegistrants
		event.AttendanceRate = &rate
	}

	if event.FulfillmentPercent == nil && event.AttendedHH != nil && event.RegistrationMax != nil && *event.RegistrationMax > 0 {
		fulfillment := *event.AttendedHH / (*event.RegistrationMax / 2.4)
		event.FulfillmentPercent = &fulfillment
	}
}

// parseFloat handles the sheet's formatting: "$61.20", "52.1%", "1,234".
// Empty or unparseable cells return nil.
func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "n/a") || strings.EqualFold(s, "na") {
		return nil
	}

	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseYesNo treats "yes" (any case) as true, everything else as false.
func parseYesNo(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "yes")
}

// dateFormats covers the formats observed in the sheet's event_date column
var dateFormats = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"2006-01-02 15:04:05",
	"Jan 2, 2006",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
