package models

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCombineDeadline(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	tests := []struct {
		name    string
		date    time.Time
		hhmm    string
		loc     *time.Location
		want    time.Time
		wantErr bool
	}{
		{
			name: "utc afternoon",
			date: date(2024, 6, 1),
			hhmm: "14:30",
			loc:  time.UTC,
			want: time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC),
		},
		{
			name: "berlin summer time shifts to utc",
			date: date(2024, 6, 1),
			hhmm: "09:00",
			loc:  berlin,
			want: time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC),
		},
		{
			name:    "malformed time",
			date:    date(2024, 6, 1),
			hhmm:    "bad-time",
			loc:     time.UTC,
			wantErr: true,
		},
		{
			name:    "empty time",
			date:    date(2024, 6, 1),
			hhmm:    "",
			loc:     time.UTC,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CombineDeadline(tt.date, tt.hhmm, tt.loc)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMidnightUTC(t *testing.T) {
	got := MidnightUTC(date(2024, 6, 1))
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDaysToDeadline(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	ptr := func(t time.Time) *time.Time { return &t }

	tests := []struct {
		name     string
		deadline *time.Time
		want     int
	}{
		{"unset deadline is zero", nil, 0},
		{"36 hours ahead", ptr(now.Add(36 * time.Hour)), 1},
		{"less than a day ahead", ptr(now.Add(6 * time.Hour)), 0},
		{"12 hours past already counts negative", ptr(now.Add(-12 * time.Hour)), -1},
		{"three days past", ptr(now.Add(-72 * time.Hour)), -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysToDeadline(tt.deadline, now); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

// Overdue must hold exactly when the deadline is set, in the past, and the
// task is still open; the converse must hold too.
func TestOverdue(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		deadline *time.Time
		status   TaskStatus
		want     bool
	}{
		{"unset deadline never overdue", nil, StatusNew, false},
		{"past deadline open task", &past, StatusNew, true},
		{"past deadline in progress", &past, StatusInProgress, true},
		{"past deadline done", &past, StatusDone, false},
		{"past deadline cancelled", &past, StatusCancelled, false},
		{"future deadline", &future, StatusNew, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overdue(tt.deadline, tt.status, now); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
