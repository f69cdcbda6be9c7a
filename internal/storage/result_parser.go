package storage

import (
	"database/sql"
	"fmt"

	"github.com/mashley00/venue-webhook/internal/database"
)

// parseEventRows scans a result set produced by the eventColumns select
// into events, converting SQL nulls back into nil pointers.
func parseEventRows(rows *sql.Rows) ([]database.Event, error) {
	var events []database.Event

	for rows.Next() {
		var (
			event     database.Event
			eventDate sql.NullTime

			grossRegistrants, attendedHH, registrationMax sql.NullFloat64
			attendanceRate, fulfillmentPercent            sql.NullFloat64
			cpa, fbCPR, cpm, costPerVerifiedHH            sql.NullFloat64
			fbImpressions, fbReach                        sql.NullFloat64
		)

		err := rows.Scan(
			&event.Topic, &event.City, &event.State, &event.Venue, &eventDate,
			&grossRegistrants, &attendedHH, &registrationMax, &attendanceRate, &fulfillmentPercent,
			&cpa, &fbCPR, &cpm, &costPerVerifiedHH,
			&fbImpressions, &fbReach,
			&event.ImageAllowed, &event.DisclosureNeeded,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}

		if eventDate.Valid {
			event.EventDate = eventDate.Time
		}
		event.GrossRegistrants = floatPtr(grossRegistrants)
		event.AttendedHH = floatPtr(attendedHH)
		event.RegistrationMax = floatPtr(registrationMax)
		event.AttendanceRate = floatPtr(attendanceRate)
		event.FulfillmentPercent = floatPtr(fulfillmentPercent)
		event.CPA = floatPtr(cpa)
		event.FBCPR = floatPtr(fbCPR)
		event.CPM = floatPtr(cpm)
		event.CostPerVerifiedHH = floatPtr(costPerVerifiedHH)
		event.FBImpressions = floatPtr(fbImpressions)
		event.FBReach = floatPtr(fbReach)

		events = append(events, event)
	}

	return events, rows.Err()
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
