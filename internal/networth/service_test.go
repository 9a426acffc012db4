package networth

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seed(t *testing.T, svc *Service) {
	t.Helper()
	entries := []struct {
		value string
		date  string
	}{
		{"100000", "2024-01-01"},
		{"120000", "2024-03-01"},
		{"110000", "2024-02-01"},
	}
	for _, e := range entries {
		if _, err := svc.Create(context.Background(), decimal.RequireFromString(e.value), day(e.date)); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
}

func TestHistoryOrderedByDateDesc(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	seed(t, svc)

	history, err := svc.History(context.Background())
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	want := []string{"120000", "110000", "100000"}
	if len(history) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(history))
	}
	for i, w := range want {
		if history[i].Value.String() != w {
			t.Fatalf("history[%d] = %s, want %s", i, history[i].Value, w)
		}
	}

	latest, err := svc.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.ID != history[0].ID || latest.Value.String() != "120000" {
		t.Fatalf("latest %+v does not match history[0] %+v", latest, history[0])
	}
}

func TestLatestEmpty(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Latest(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	history, err := svc.History(context.Background())
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if history == nil || len(history) != 0 {
		t.Fatalf("expected empty non-nil history, got %v", history)
	}
}

func TestCreateRequiresDate(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Create(context.Background(), decimal.NewFromInt(1), time.Time{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateUsesClock(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := &Service{Repo: NewMemoryRepo(), Now: func() time.Time { return fixed }}
	snap, err := svc.Create(context.Background(), decimal.NewFromInt(-250), day("2024-04-30"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !snap.CreatedAt.Equal(fixed) || !snap.UpdatedAt.Equal(fixed) {
		t.Fatalf("unexpected timestamps %+v", snap)
	}
	if snap.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestCreateRoundsToCents(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	snap, err := svc.Create(context.Background(), decimal.RequireFromString("1234.567"), day("2024-04-30"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if snap.Value.String() != "1234.57" {
		t.Fatalf("expected 1234.57, got %s", snap.Value)
	}
	stored, err := repo.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if stored.Value.String() != "1234.57" {
		t.Fatalf("stored value %s, want 1234.57", stored.Value)
	}
}

func TestLatestTieBreaksByID(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := NewMemoryRepo()
	for _, id := range []string{"a", "c", "b"} {
		snap := Snapshot{ID: id, Value: decimal.NewFromInt(1), Date: day("2024-04-30"), CreatedAt: fixed, UpdatedAt: fixed}
		if err := repo.Create(context.Background(), snap); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	history, err := repo.ListByDateDesc(context.Background())
	if err != nil {
		t.Fatalf("ListByDateDesc: %v", err)
	}
	if history[0].ID != "c" || history[1].ID != "b" || history[2].ID != "a" {
		t.Fatalf("unexpected order %s %s %s", history[0].ID, history[1].ID, history[2].ID)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"2024-01-15T10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"2024-01-15T10:30:00.123", time.Date(2024, 1, 15, 10, 30, 0, 123000000, time.UTC), true},
		{"2024-01-15T10:30:00+02:00", time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC), true},
		{"2024-01-15T10:30:00Z", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"15/01/2024", time.Time{}, false},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if tt.ok {
			if err != nil {
				t.Fatalf("ParseDate(%q): %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("ParseDate(%q) = %s, want %s", tt.in, got, tt.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("ParseDate(%q): expected ErrInvalidInput, got %v", tt.in, err)
		}
	}
}

func TestExportXLSX(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	seed(t, svc)

	data, err := svc.ExportXLSX(context.Background())
	if err != nil {
		t.Fatalf("ExportXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][1] != "Value" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[1][0] != "2024-03-01" || rows[1][1] != "120000" {
		t.Fatalf("unexpected first row %v", rows[1])
	}
	if rows[3][0] != "2024-01-01" {
		t.Fatalf("unexpected last row %v", rows[3])
	}
}
