package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches no rows", func(t *testing.T) {
		if !isNotFound(sql.ErrNoRows) {
			t.Fatal("expected true for sql.ErrNoRows")
		}
	})

	t.Run("matches wrapped no rows", func(t *testing.T) {
		if !isNotFound(fmt.Errorf("select week: %w", sql.ErrNoRows)) {
			t.Fatal("expected true for wrapped sql.ErrNoRows")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(fmt.Errorf("pq: relation weeks does not exist")) {
			t.Fatal("expected false for unrelated error")
		}
	})
}

func TestOptionalString(t *testing.T) {
	t.Run("returns trimmed value", func(t *testing.T) {
		got := optionalString("  trace-1  ")
		if got == nil || *got != "trace-1" {
			t.Fatalf("unexpected pointer value: %v", got)
		}
	})

	t.Run("returns nil for blank", func(t *testing.T) {
		if got := optionalString("   "); got != nil {
			t.Fatalf("expected nil, got %q", *got)
		}
	})
}

func TestNullableTime(t *testing.T) {
	t.Run("zero time maps to null", func(t *testing.T) {
		if got := nullableTime(time.Time{}); got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
	})

	t.Run("set time normalizes to utc", func(t *testing.T) {
		loc := time.FixedZone("EST", -5*3600)
		at := time.Date(2025, 9, 14, 13, 0, 0, 0, loc)
		got := nullableTime(at)
		if got == nil {
			t.Fatal("expected non-nil time")
		}
		if got.Location() != time.UTC || !got.Equal(at) {
			t.Fatalf("unexpected time: %v", got)
		}
	})
}
