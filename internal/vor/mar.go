package vor

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mashley00/venue-webhook/internal/database"
)

// cprDecaySlope is the per-day drift applied to a venue's historical cost
// per registrant: the longer a venue sits unused, the cheaper re-entry
// tends to be.
const cprDecaySlope = -0.014

// MediaOverlay summarizes Facebook media performance for a venue's events.
type MediaOverlay struct {
	AvgCPM            float64 `json:"avg_cpm"`
	EstimatedCVR      float64 `json:"estimated_cvr"`
	RegistrantsPer1K  float64 `json:"registrants_per_1k"`
	EstimatedMediaCPR float64 `json:"estimated_media_cpr"`
	AvgFrequency      float64 `json:"avg_frequency"`
}

// MarketAnalysis is the Market Analysis Report for one market: the venue
// the market has used most, with predictions for its next event.
type MarketAnalysis struct {
	Venue                string        `json:"venue"`
	Market               string        `json:"market"`
	Topic                string        `json:"topic"`
	EventDate            string        `json:"event_date"`
	DaysSinceLastUse     *int          `json:"days_since_last_venue_use"`
	PredictedRegistrants *float64      `json:"predicted_registrants"`
	PredictedCPR         *float64      `json:"predicted_cpr"`
	MediaOverlay         *MediaOverlay `json:"media_overlay,omitempty"`
}

// Analyze builds the Market Analysis Report from a market's event history.
// asOf is the planned event date; predictions decay from the venue's last
// use to that date.
func Analyze(events []database.Event, topic, city, state string, asOf time.Time) (*MarketAnalysis, error) {
	if len(events) == 0 {
		return nil, ErrNoMatchingEvents
	}

	venue := modalVenue(events)

	var venueEvents []database.Event
	for _, e := range events {
		if strings.EqualFold(strings.TrimSpace(e.Venue), venue) {
			venueEvents = append(venueEvents, e)
		}
	}

	analysis := &MarketAnalysis{
		Venue:     venue,
		Market:    fmt.Sprintf("%s, %s", titleCase(city), strings.ToUpper(strings.TrimSpace(state))),
		Topic:     CanonicalTopic(topic),
		EventDate: asOf.Format("2006-01-02"),
	}

	var lastUse time.Time
	for _, e := range venueEvents {
		if e.EventDate.After(lastUse) {
			lastUse = e.EventDate
		}
	}
	if !lastUse.IsZero() {
		days := int(asOf.Sub(lastUse).Hours() / 24)
		analysis.DaysSinceLastUse = &days
	}

	var gross, cpr accumulator
	for _, e := range venueEvents {
		gross.add(e.GrossRegistrants)
		cpr.add(e.CostPerVerifiedHH)
	}

	if m := gross.mean(); m != nil {
		v := round2(*m)
		analysis.PredictedRegistrants = &v
	}
	if m := cpr.mean(); m != nil {
		predicted := *m
		if analysis.DaysSinceLastUse != nil {
			predicted += cprDecaySlope * float64(*analysis.DaysSinceLastUse)
		}
		v := round2(predicted)
		analysis.PredictedCPR = &v
	}

	analysis.MediaOverlay = mediaOverlay(venueEvents)

	return analysis, nil
}

// modalVenue picks the most frequently used venue; ties go to the
// lexicographically smallest name for determinism.
func modalVenue(events []database.Event) string {
	counts := make(map[string]int)
	names := make(map[string]string)
	for _, e := range events {
		key := strings.ToUpper(strings.TrimSpace(e.Venue))
		counts[key]++
		if _, ok := names[key]; !ok {
			names[key] = strings.TrimSpace(e.Venue)
		}
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := ""
	bestCount := -1
	for _, k := range keys {
		if counts[k] > bestCount {
			best = k
			bestCount = counts[k]
		}
	}
	return names[best]
}

// mediaOverlay averages media metrics over events with complete FB data.
// Returns nil when no event qualifies.
func mediaOverlay(events []database.Event) *MediaOverlay {
	var cpm, cvr, regsPer1K, mediaCPR, frequency accumulator

	for _, e := range events {
		if e.FBImpressions == nil || e.FBReach == nil || e.CPM == nil || e.GrossRegistrants == nil {
			continue
		}
		if *e.FBImpressions <= 0 || *e.FBReach <= 0 {
			continue
		}

		impressions := *e.FBImpressions
		gross := *e.GrossRegistrants

		freq := impressions / *e.FBReach
		per1K := gross / (impressions / 1000)

		frequency.add(&freq)
		cpm.add(e.CPM)

		eventCVR := gross / impressions
		cvr.add(&eventCVR)

		regsPer1K.add(&per1K)

		if per1K > 0 {
			eventCPR := *e.CPM / per1K
			mediaCPR.add(&eventCPR)
		}
	}

	avgCPM := cpm.mean()
	if avgCPM == nil {
		return nil
	}

	overlay := &MediaOverlay{AvgCPM: round2(*avgCPM)}
	if m := cvr.mean(); m != nil {
		overlay.EstimatedCVR = round4(*m)
	}
	if m := regsPer1K.mean(); m != nil {
		overlay.RegistrantsPer1K = round2(*m)
	}
	if m := mediaCPR.mean(); m != nil {
		overlay.EstimatedMediaCPR = round2(*m)
	}
	if m := frequency.mean(); m != nil {
		overlay.AvgFrequency = round2(*m)
	}
	return overlay
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
