package services

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"

	"taskhub/internal/models"
)

func newTestTimerService(now time.Time) (*timerService, *fakeTimerRepo) {
	repo := newFakeTimerRepo()
	svc := NewTimerService(repo).(*timerService)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func intPtr(v int) *int { return &v }

func TestTimerSaveThenGet(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestTimerService(now)
	ctx := context.Background()

	if err := svc.Save(ctx, 42, models.TimerSnapshot{Minutes: intPtr(10)}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := svc.Get(ctx, 42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected a stored state")
	}
	if got.Minutes != 10 {
		t.Errorf("minutes = %d, want 10", got.Minutes)
	}
	// unspecified fields at defaults
	if got.Active || got.Paused {
		t.Error("active/paused should default to false")
	}
	if got.Mode != models.DefaultTimerMode {
		t.Errorf("mode = %q, want %q", got.Mode, models.DefaultTimerMode)
	}
	if got.Seconds != 0 || got.Progress != 0 || got.CurrentStreak != 0 || got.CompletedPomodoros != 0 {
		t.Errorf("counters should default to zero: %+v", got)
	}
	if !got.LastUpdate.Equal(now) {
		t.Errorf("lastUpdate = %v, want server-stamped %v", got.LastUpdate, now)
	}
}

// A second save fully replaces the first; fields dropped from the payload
// revert to defaults instead of keeping the stored value.
func TestTimerSaveIsFullReplace(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestTimerService(now)
	ctx := context.Background()

	active := true
	if err := svc.Save(ctx, 42, models.TimerSnapshot{Active: &active, Minutes: intPtr(5)}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := svc.Save(ctx, 42, models.TimerSnapshot{Minutes: intPtr(15)}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, _ := svc.Get(ctx, 42)
	if got.Active {
		t.Error("active was omitted from the second save and must revert to false")
	}
	if got.Minutes != 15 {
		t.Errorf("minutes = %d, want 15", got.Minutes)
	}
}

func TestTimerResetDeletesState(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestTimerService(now)
	ctx := context.Background()

	if err := svc.Save(ctx, 42, models.TimerSnapshot{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.Reset(ctx, 42); err != nil {
		t.Fatalf("reset: %v", err)
	}

	got, err := svc.Get(ctx, 42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("state after reset = %+v, want absent", got)
	}

	// reset on an absent state is fine too
	if err := svc.Reset(ctx, 42); err != nil {
		t.Errorf("reset of absent state: %v", err)
	}
}

// The check-then-insert race: a concurrent first save slips in after the
// check, the insert hits the unique constraint, and the save retries as an
// update.
func TestTimerSaveRetriesOnUniqueViolation(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, repo := newTestTimerService(now)
	ctx := context.Background()

	repo.insertErr = &pq.Error{Code: "23505"}
	if err := svc.Save(ctx, 42, models.TimerSnapshot{Minutes: intPtr(20)}); err != nil {
		t.Fatalf("save should win via the update path: %v", err)
	}
	if repo.inserts != 1 || repo.updates != 1 {
		t.Errorf("inserts=%d updates=%d, want one failed insert then one update", repo.inserts, repo.updates)
	}

	got, _ := svc.Get(ctx, 42)
	if got == nil || got.Minutes != 20 {
		t.Errorf("state after retry = %+v, want minutes=20", got)
	}
}

func TestTimerSaveOverwritesExisting(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, repo := newTestTimerService(now)
	ctx := context.Background()

	if err := svc.Save(ctx, 42, models.TimerSnapshot{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.Save(ctx, 42, models.TimerSnapshot{Minutes: intPtr(3)}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if repo.inserts != 1 {
		t.Errorf("inserts = %d, existing state must go through update", repo.inserts)
	}
	if repo.updates != 1 {
		t.Errorf("updates = %d, want 1", repo.updates)
	}
}
