// Package vor scores historical seminar events and assembles the
// plain-text Venue Optimization Report for a market.
package vor

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/mashley00/venue-webhook/internal/database"
)

// ErrNoMatchingEvents is returned when a market has no event history.
var ErrNoMatchingEvents = errors.New("no matching events for this topic and market")

// topicAliases maps the short codes users type into the dataset's full
// topic names.
var topicAliases = map[string]string{
	"TIR": "TAXES_IN_RETIREMENT_567",
	"EP":  "ESTATE_PLANNING_567",
	"SS":  "SOCIAL_SECURITY_567",
}

// CanonicalTopic resolves a user-supplied topic code to the dataset topic.
// Unknown codes pass through uppercased so new topics work without a
// release.
func CanonicalTopic(topic string) string {
	code := strings.ToUpper(strings.TrimSpace(topic))
	if full, ok := topicAliases[code]; ok {
		return full
	}
	return code
}

// Scoring weights: cheap acquisition matters most, then how full the room
// was, then how many registrants showed up.
const (
	cpaWeight         = 0.5
	fulfillmentWeight = 0.3
	attendanceWeight  = 0.2
	scoreDivisor      = 2.5
)

// Score computes the 0-100 venue score from cost per acquisition,
// fulfillment and attendance. A missing or non-positive CPA makes the row
// unusable and scores 0.
func Score(cpa, fulfillment, attendance *float64) float64 {
	if cpa == nil || *cpa <= 0 {
		return 0
	}

	raw := (1 / *cpa) * cpaWeight
	raw += asFraction(fulfillment) * fulfillmentWeight
	raw += asFraction(attendance) * attendanceWeight

	score := raw / scoreDivisor * 100
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// asFraction normalizes rate fields that the sheet stores inconsistently:
// some rows carry 0.52, others 52.1. Values above 1 are treated as
// percentages.
func asFraction(v *float64) float64 {
	if v == nil {
		return 0
	}
	if *v > 1 {
		return *v / 100
	}
	return *v
}

// VenueSummary aggregates one venue's event history for the report.
type VenueSummary struct {
	Venue string `json:"venue"`
	City  string `json:"city"`
	State string `json:"state"`

	MostRecentEvent time.Time `json:"most_recent_event"`
	TotalEvents     int       `json:"total_events"`

	AvgGrossRegistrants *float64 `json:"avg_gross_registrants,omitempty"`
	AvgCPA              *float64 `json:"avg_cpa,omitempty"`
	AvgFBCPR            *float64 `json:"avg_fb_cpr,omitempty"`
	AvgAttendanceRate   *float64 `json:"avg_attendance_rate,omitempty"`
	AvgFulfillment      *float64 `json:"avg_fulfillment,omitempty"`

	ImageAllowed     bool `json:"image_allowed"`
	DisclosureNeeded bool `json:"disclosure_needed"`

	Score float64 `json:"score"`
}

// MaxRankedVenues is how many venues the report ranks, matching the four
// rank markers (gold, silver, bronze, honorable mention).
const MaxRankedVenues = 4

// RankVenues groups events by venue, scores each venue on its averages and
// returns the top venues ordered by score. Policy flags come from the most
// recent event, since venue policies change over time.
func RankVenues(events []database.Event) []VenueSummary {
	type bucket struct {
		summary VenueSummary
		cpa     accumulator
		fbCPR   accumulator
		gross   accumulator
		attend  accumulator
		fulfill accumulator
	}

	buckets := make(map[string]*bucket)
	var order []string

	for _, event := range events {
		key := strings.ToUpper(strings.TrimSpace(event.Venue))
		b, ok := buckets[key]
		if !ok {
			b = &bucket{summary: VenueSummary{
				Venue: event.Venue,
				City:  event.City,
				State: event.State,
			}}
			buckets[key] = b
			order = append(order, key)
		}

		b.summary.TotalEvents++
		if event.EventDate.After(b.summary.MostRecentEvent) {
			b.summary.MostRecentEvent = event.EventDate
			b.summary.ImageAllowed = event.ImageAllowed
			b.summary.DisclosureNeeded = event.DisclosureNeeded
		}

		b.cpa.add(event.CPA)
		b.fbCPR.add(event.FBCPR)
		b.gross.add(event.GrossRegistrants)
		b.attend.add(event.AttendanceRate)
		b.fulfill.add(event.FulfillmentPercent)
	}

	summaries := make([]VenueSummary, 0, len(buckets))
	for _, key := range order {
		b := buckets[key]
		b.summary.AvgCPA = b.cpa.mean()
		b.summary.AvgFBCPR = b.fbCPR.mean()
		b.summary.AvgGrossRegistrants = b.gross.mean()
		b.summary.AvgAttendanceRate = b.attend.mean()
		b.summary.AvgFulfillment = b.fulfill.mean()
		b.summary.Score = round2(Score(b.summary.AvgCPA, b.summary.AvgFulfillment, b.summary.AvgAttendanceRate))
		summaries = append(summaries, b.summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Score != summaries[j].Score {
			return summaries[i].Score > summaries[j].Score
		}
		return summaries[i].Venue < summaries[j].Venue
	})

	if len(summaries) > MaxRankedVenues {
		summaries = summaries[:MaxRankedVenues]
	}
	return summaries
}

// accumulator averages optional metrics, skipping missing values
type accumulator struct {
	sum   float64
	count int
}

func (a *accumulator) add(v *float64) {
	if v != nil {
		a.sum += *v
		a.count++
	}
}

func (a *accumulator) mean() *float64 {
	if a.count == 0 {
		return nil
	}
	m := a.sum / float64(a.count)
	return &m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
