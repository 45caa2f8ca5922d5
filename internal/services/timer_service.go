package services

import (
	"context"
	"log"
	"time"

	"taskhub/internal/models"
	"taskhub/internal/repositories"
)

// TimerService stores per-user pomodoro snapshots with last-writer-wins
// semantics. A save fully replaces whatever was stored before; there is no
// field-level merge and no concurrency token, so two browser tabs racing each
// other simply end up with the later write. That is an accepted trade-off,
// not something to paper over here.
type TimerService interface {
	Get(ctx context.Context, userID int64) (*models.TimerState, error)
	Save(ctx context.Context, userID int64, snapshot models.TimerSnapshot) error
	Reset(ctx context.Context, userID int64) error
}

type timerService struct {
	repo repositories.TimerStateRepository
	now  func() time.Time
}

func NewTimerService(repo repositories.TimerStateRepository) TimerService {
	return &timerService{repo: repo, now: time.Now}
}

// Get returns nil when the user has no stored snapshot; the handler renders
// that as {}.
func (s *timerService) Get(ctx context.Context, userID int64) (*models.TimerState, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *timerService) Save(ctx context.Context, userID int64, snapshot models.TimerSnapshot) error {
	state := snapshot.Materialize(userID)
	state.LastUpdate = s.now().UTC()

	existing, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return s.repo.Update(ctx, &state)
	}

	// Check-then-insert leaves a narrow window where a concurrent first save
	// slips in between; the UNIQUE(user_id) constraint catches that, and the
	// loser retries as an update.
	if err := s.repo.Insert(ctx, &state); err != nil {
		if repositories.IsUniqueViolation(err) {
			log.Printf("[timer][save] concurrent insert for user=%d, retrying as update", userID)
			return s.repo.Update(ctx, &state)
		}
		return err
	}
	return nil
}

// Reset deletes the row entirely rather than zeroing fields; the next Get
// reports absent until the next Save.
func (s *timerService) Reset(ctx context.Context, userID int64) error {
	return s.repo.DeleteByUser(ctx, userID)
}
