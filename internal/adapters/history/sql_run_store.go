package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"waste-collection-sim/internal/platform/obs"
	"waste-collection-sim/internal/ports"
)

// SQLRunStore persists per-day run metrics in Postgres for shared
// deployments.
type SQLRunStore struct {
	DB *sql.DB
}

func NewSQLRunStore(db *sql.DB) *SQLRunStore {
	return &SQLRunStore{DB: db}
}

// InitSchema creates the run-history table when missing.
func InitSchema(db *sql.DB) error {
	q := `
	CREATE TABLE IF NOT EXISTS run_history (
		scenario TEXT NOT NULL,
		day INTEGER NOT NULL,
		total_distance INTEGER NOT NULL,
		collections INTEGER NOT NULL,
		overflows INTEGER NOT NULL,
		truck_load INTEGER NOT NULL,
		PRIMARY KEY (scenario, day)
	);
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init run history schema: %w", err)
	}
	return nil
}

// RecordDay upserts the metrics row for one day of a scenario run.
func (s *SQLRunStore) RecordDay(ctx context.Context, row ports.DayMetrics) (err error) {
	defer obs.Time(ctx, "history.RecordDay")(&err)

	if s.DB == nil {
		return errors.New("run history: db is nil")
	}
	if strings.TrimSpace(row.Scenario) == "" {
		return errors.New("record day: scenario must not be empty")
	}

	q := `
	INSERT INTO run_history (
		scenario, day, total_distance, collections, overflows, truck_load
	) VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (scenario, day) DO UPDATE
	SET total_distance = EXCLUDED.total_distance,
		collections = EXCLUDED.collections,
		overflows = EXCLUDED.overflows,
		truck_load = EXCLUDED.truck_load;
	`
	if _, err := s.DB.ExecContext(ctx, q,
		row.Scenario, row.Day, row.TotalDistance,
		row.CollectionsCompleted, row.OverflowCount, row.TruckLoad,
	); err != nil {
		return fmt.Errorf("record day: insert run_history day=%d: %w", row.Day, err)
	}

	return nil
}

// ListDays returns a scenario's recorded days in day order.
func (s *SQLRunStore) ListDays(ctx context.Context, scenario string) (_ []ports.DayMetrics, err error) {
	defer obs.Time(ctx, "history.ListDays")(&err)

	if s.DB == nil {
		return nil, errors.New("run history: db is nil")
	}
	if strings.TrimSpace(scenario) == "" {
		return nil, errors.New("list days: scenario must not be empty")
	}

	q := `
	SELECT day, total_distance, collections, overflows, truck_load
	FROM run_history
	WHERE scenario = $1
	ORDER BY day;
	`
	rows, err := s.DB.QueryContext(ctx, q, scenario)
	if err != nil {
		return nil, fmt.Errorf("list days: query run_history: %w", err)
	}
	defer rows.Close()

	var out []ports.DayMetrics
	for rows.Next() {
		row := ports.DayMetrics{Scenario: scenario}
		if err := rows.Scan(&row.Day, &row.TotalDistance,
			&row.CollectionsCompleted, &row.OverflowCount, &row.TruckLoad); err != nil {
			return nil, fmt.Errorf("list days: scan rows: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list days: row iteration: %w", err)
	}

	return out, nil
}
