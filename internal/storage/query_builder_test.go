package storage

import (
	"strings"
	"testing"

	"github.com/mashley00/venue-webhook/internal/database"
)

func strPtr(s string) *string { return &s }

func TestBuildMarketEventsQuery(t *testing.T) {
	tests := []struct {
		name         string
		filter       database.EventFilter
		wantClauses  []string
		wantArgCount int
	}{
		{
			name:         "no constraints",
			filter:       database.EventFilter{},
			wantClauses:  []string{"FROM events", "ORDER BY event_date DESC"},
			wantArgCount: 0,
		},
		{
			name: "full market filter",
			filter: database.EventFilter{
				Topic: strPtr("TAXES_IN_RETIREMENT_567"),
				City:  strPtr("Tampa"),
				State: strPtr("FL"),
			},
			wantClauses: []string{
				"upper(trim(topic))",
				"upper(trim(city))",
				"upper(trim(state))",
			},
			wantArgCount: 3,
		},
		{
			name: "venue filter with limit",
			filter: database.EventFilter{
				Venue: strPtr("Crowne Plaza"),
				Limit: 10,
			},
			wantClauses:  []string{"upper(trim(venue))", "LIMIT ?"},
			wantArgCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := BuildMarketEventsQuery(tt.filter)

			for _, clause := range tt.wantClauses {
				if !strings.Contains(query, clause) {
					t.Errorf("query missing clause %q:\n%s", clause, query)
				}
			}
			if len(args) != tt.wantArgCount {
				t.Errorf("got %d args, want %d", len(args), tt.wantArgCount)
			}
		})
	}
}

func TestBuildInsertQueryPlaceholderCount(t *testing.T) {
	query := BuildInsertQuery()

	// 18 event columns plus imported_at
	if got := strings.Count(query, "?"); got != 19 {
		t.Errorf("insert query has %d placeholders, want 19", got)
	}
}

func TestBuildStatsQueryShape(t *testing.T) {
	query := BuildStatsQuery()

	for _, col := range []string{"total_events", "total_venues", "total_markets", "latest_event_date"} {
		if !strings.Contains(query, col) {
			t.Errorf("stats query missing %q", col)
		}
	}
}
