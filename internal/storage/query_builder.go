package storage

import (
	"strings"

	"github.com/mashley00/venue-webhook/internal/database"
)

// eventColumns is the column list shared by the insert and select paths.
const eventColumns = `topic, city, state, venue, event_date,
	gross_registrants, attended_hh, registration_max, attendance_rate, fulfillment_percent,
	cpa, fb_cpr, cpm, cost_per_verified_hh,
	fb_impressions, fb_reach,
	image_allowed, disclosure_needed`

// BuildInsertQuery returns the parameterized insert statement for one event
func BuildInsertQuery() string {
	return `INSERT INTO events (` + eventColumns + `, imported_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
}

// BuildMarketEventsQuery builds the filtered select for a market lookup.
// Text matching is case-insensitive on trimmed values so user input like
// " tampa " still hits rows stored as "Tampa".
func BuildMarketEventsQuery(filter database.EventFilter) (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}

	sb.WriteString(`SELECT ` + eventColumns + ` FROM events WHERE 1=1`)

	if filter.Topic != nil {
		sb.WriteString(` AND upper(trim(topic)) = upper(trim(?))`)
		args = append(args, *filter.Topic)
	}
	if filter.City != nil {
		sb.WriteString(` AND upper(trim(city)) = upper(trim(?))`)
		args = append(args, *filter.City)
	}
	if filter.State != nil {
		sb.WriteString(` AND upper(trim(state)) = upper(trim(?))`)
		args = append(args, *filter.State)
	}
	if filter.Venue != nil {
		sb.WriteString(` AND upper(trim(venue)) = upper(trim(?))`)
		args = append(args, *filter.Venue)
	}

	sb.WriteString(` ORDER BY event_date DESC NULLS LAST, venue`)

	if filter.Limit > 0 {
		sb.WriteString(` LIMIT ?`)
		args = append(args, filter.Limit)
	}

	return sb.String(), args
}

// BuildMarketsQuery lists the distinct markets with event and venue counts
func BuildMarketsQuery() string {
	return `
	SELECT topic, city, state,
		COUNT(*) AS event_count,
		COUNT(DISTINCT venue) AS venue_count
	FROM events
	GROUP BY topic, city, state
	ORDER BY event_count DESC, topic, state, city`
}

// BuildStatsQuery summarizes the whole event store
func BuildStatsQuery() string {
	return `
	SELECT
		COUNT(*) AS total_events,
		COUNT(DISTINCT venue) AS total_venues,
		COUNT(DISTINCT topic || '|' || upper(city) || '|' || upper(state)) AS total_markets,
		MAX(event_date) AS latest_event_date
	FROM events`
}
