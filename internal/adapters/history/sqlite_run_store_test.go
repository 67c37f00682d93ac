package history

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"waste-collection-sim/internal/ports"
)

func newTestStore(t *testing.T) *SqliteRunStore {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := InitSqliteSchema(conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return NewSqliteRunStore(conn)
}

func TestSqliteRunStoreRecordAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rows := []ports.DayMetrics{
		{Scenario: "data.json", Day: 1, TotalDistance: 10, CollectionsCompleted: 1, OverflowCount: 0, TruckLoad: 60},
		{Scenario: "data.json", Day: 2, TotalDistance: 26, CollectionsCompleted: 2, OverflowCount: 1, TruckLoad: 0},
	}
	for _, row := range rows {
		if err := store.RecordDay(ctx, row); err != nil {
			t.Fatalf("record day %d: %v", row.Day, err)
		}
	}

	got, err := store.ListDays(ctx, "data.json")
	if err != nil {
		t.Fatalf("list days: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("day count = %d, want 2", len(got))
	}
	if got[0] != rows[0] || got[1] != rows[1] {
		t.Fatalf("rows = %+v, want %+v", got, rows)
	}
}

func TestSqliteRunStoreUpsertsSameDay(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := ports.DayMetrics{Scenario: "data.json", Day: 1, TotalDistance: 10}
	second := ports.DayMetrics{Scenario: "data.json", Day: 1, TotalDistance: 99}
	if err := store.RecordDay(ctx, first); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.RecordDay(ctx, second); err != nil {
		t.Fatalf("re-record: %v", err)
	}

	got, err := store.ListDays(ctx, "data.json")
	if err != nil {
		t.Fatalf("list days: %v", err)
	}
	if len(got) != 1 || got[0].TotalDistance != 99 {
		t.Fatalf("rows = %+v, want a single updated row", got)
	}
}

func TestSqliteRunStoreScenariosAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.RecordDay(ctx, ports.DayMetrics{Scenario: "a.json", Day: 1}); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := store.ListDays(ctx, "b.json")
	if err != nil {
		t.Fatalf("list days: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("rows = %+v, want none", got)
	}
}

func TestSqliteRunStoreValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.RecordDay(ctx, ports.DayMetrics{Scenario: "  ", Day: 1}); err == nil {
		t.Fatal("blank scenario must error")
	}
	if _, err := store.ListDays(ctx, ""); err == nil {
		t.Fatal("empty scenario must error")
	}

	nilStore := NewSqliteRunStore(nil)
	if err := nilStore.RecordDay(ctx, ports.DayMetrics{Scenario: "x", Day: 1}); err == nil {
		t.Fatal("nil db must error")
	}
}
