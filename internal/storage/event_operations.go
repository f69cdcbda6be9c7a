package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mashley00/venue-webhook/internal/database"
)

// InsertEvents writes events in batches inside transactions. An import
// replaces the dataset wholesale, so there is no conflict handling.
func (s *Storage) InsertEvents(ctx context.Context, events []database.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn := s.db.Conn()
	insertSQL := BuildInsertQuery()
	importedAt := time.Now().UTC()

	for start := 0; start < len(events); start += s.batchSize {
		end := start + s.batchSize
		if end > len(events) {
			end = len(events)
		}

		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, insertSQL)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to prepare insert statement: %w", err)
		}

		for _, event := range events[start:end] {
			_, err := stmt.ExecContext(ctx,
				event.Topic, event.City, event.State, event.Venue, nullDate(event.EventDate),
				nullFloat(event.GrossRegistrants), nullFloat(event.AttendedHH), nullFloat(event.RegistrationMax),
				nullFloat(event.AttendanceRate), nullFloat(event.FulfillmentPercent),
				nullFloat(event.CPA), nullFloat(event.FBCPR), nullFloat(event.CPM), nullFloat(event.CostPerVerifiedHH),
				nullFloat(event.FBImpressions), nullFloat(event.FBReach),
				event.ImageAllowed, event.DisclosureNeeded,
				importedAt,
			)
			if err != nil {
				stmt.Close()
				tx.Rollback()
				return fmt.Errorf("failed to insert event for venue %q: %w", event.Venue, err)
			}
		}

		stmt.Close()
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit batch: %w", err)
		}
	}

	return nil
}

// MarketEvents returns the events matching the filter, newest first
func (s *Storage) MarketEvents(ctx context.Context, filter database.EventFilter) ([]database.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query, args := BuildMarketEventsQuery(filter)

	rows, err := s.db.Conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("market events query failed: %w", err)
	}
	defer rows.Close()

	return parseEventRows(rows)
}

// Markets lists every distinct (topic, city, state) market in the store
func (s *Storage) Markets(ctx context.Context) ([]database.MarketInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Conn().QueryContext(ctx, BuildMarketsQuery())
	if err != nil {
		return nil, fmt.Errorf("markets query failed: %w", err)
	}
	defer rows.Close()

	var markets []database.MarketInfo
	for rows.Next() {
		var m database.MarketInfo
		if err := rows.Scan(&m.Topic, &m.City, &m.State, &m.EventCount, &m.VenueCount); err != nil {
			return nil, fmt.Errorf("failed to scan market row: %w", err)
		}
		markets = append(markets, m)
	}

	return markets, rows.Err()
}

// Stats summarizes the event store
func (s *Storage) Stats(ctx context.Context) (*database.EventStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats database.EventStats
	var latest sql.NullTime

	err := s.db.Conn().QueryRowContext(ctx, BuildStatsQuery()).Scan(
		&stats.TotalEvents, &stats.TotalVenues, &stats.TotalMarkets, &latest)
	if err != nil {
		return nil, fmt.Errorf("stats query failed: %w", err)
	}

	if latest.Valid {
		stats.LatestEventDate = latest.Time
	}

	return &stats, nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullDate(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
