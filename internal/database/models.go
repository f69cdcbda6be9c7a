package database

import "time"

// Event is one historical seminar event at a venue, as imported from the
// AllEvents dataset. Metric fields are pointers because the source CSV has
// gaps; nil means the column was empty or unparseable for that row.
type Event struct {
	Topic string `json:"topic"`
	City  string `json:"city"`
	State string `json:"state"`
	Venue string `json:"venue"`

	EventDate time.Time `json:"event_date"`

	GrossRegistrants   *float64 `json:"gross_registrants,omitempty"`
	AttendedHH         *float64 `json:"attended_hh,omitempty"`
	RegistrationMax    *float64 `json:"registration_max,omitempty"`
	CPA                *float64 `json:"cpa,omitempty"`
	FBCPR              *float64 `json:"fb_cpr,omitempty"`
	CPM                *float64 `json:"cpm,omitempty"`
	FBImpressions      *float64 `json:"fb_impressions,omitempty"`
	FBReach            *float64 `json:"fb_reach,omitempty"`
	CostPerVerifiedHH  *float64 `json:"cost_per_verified_hh,omitempty"`
	AttendanceRate     *float64 `json:"attendance_rate,omitempty"`
	FulfillmentPercent *float64 `json:"fulfillment_percent,omitempty"`

	ImageAllowed     bool `json:"image_allowed"`
	DisclosureNeeded bool `json:"disclosure_needed"`
}

// EventFilter describes a market query. Nil fields are unconstrained.
// String matching is case-insensitive on trimmed values.
type EventFilter struct {
	Topic *string `json:"topic,omitempty"`
	City  *string `json:"city,omitempty"`
	State *string `json:"state,omitempty"`
	Venue *string `json:"venue,omitempty"`
	Limit int     `json:"limit,omitempty"`
}

// MarketInfo summarizes one (topic, city, state) market in the dataset.
type MarketInfo struct {
	Topic      string `json:"topic"`
	City       string `json:"city"`
	State      string `json:"state"`
	EventCount int    `json:"event_count"`
	VenueCount int    `json:"venue_count"`
}

// EventStats summarizes the whole event store.
type EventStats struct {
	TotalEvents     int       `json:"total_events"`
	TotalVenues     int       `json:"total_venues"`
	TotalMarkets    int       `json:"total_markets"`
	LatestEventDate time.Time `json:"latest_event_date"`
}
