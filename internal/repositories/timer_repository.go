package repositories

import (
	"context"
	"database/sql"

	"taskhub/internal/models"
)

// TimerStateRepository persists the per-user pomodoro snapshot. The
// timer_states table carries a UNIQUE constraint on user_id; the upsert race
// between two concurrent first saves is resolved by that constraint (the
// loser gets a unique violation and retries as an update, see TimerService).
type TimerStateRepository interface {
	FindByUser(ctx context.Context, userID int64) (*models.TimerState, error)
	Insert(ctx context.Context, state *models.TimerState) error
	Update(ctx context.Context, state *models.TimerState) error
	DeleteByUser(ctx context.Context, userID int64) error
}

type timerStateRepository struct {
	db *sql.DB
}

func NewTimerStateRepository(db *sql.DB) TimerStateRepository {
	return &timerStateRepository{db: db}
}

func (r *timerStateRepository) FindByUser(ctx context.Context, userID int64) (*models.TimerState, error) {
	query := `
		SELECT id, user_id, timer_active, timer_paused, timer_minutes, timer_seconds,
		       timer_mode, timer_progress, current_streak, completed_pomodoros, last_update
		FROM timer_states WHERE user_id = $1`
	st := &models.TimerState{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&st.ID, &st.UserID, &st.Active, &st.Paused, &st.Minutes, &st.Seconds,
		&st.Mode, &st.Progress, &st.CurrentStreak, &st.CompletedPomodoros, &st.LastUpdate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			// absent means "no active timer", not an error
			return nil, nil
		}
		return nil, err
	}
	return st, nil
}

func (r *timerStateRepository) Insert(ctx context.Context, state *models.TimerState) error {
	query := `
		INSERT INTO timer_states (
			user_id, timer_active, timer_paused, timer_minutes, timer_seconds,
			timer_mode, timer_progress, current_streak, completed_pomodoros, last_update
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		state.UserID, state.Active, state.Paused, state.Minutes, state.Seconds,
		state.Mode, state.Progress, state.CurrentStreak, state.CompletedPomodoros, state.LastUpdate,
	).Scan(&state.ID)
}

func (r *timerStateRepository) Update(ctx context.Context, state *models.TimerState) error {
	query := `
		UPDATE timer_states SET
			timer_active=$1, timer_paused=$2, timer_minutes=$3, timer_seconds=$4,
			timer_mode=$5, timer_progress=$6, current_streak=$7, completed_pomodoros=$8,
			last_update=$9
		WHERE user_id=$10`
	_, err := r.db.ExecContext(ctx, query,
		state.Active, state.Paused, state.Minutes, state.Seconds,
		state.Mode, state.Progress, state.CurrentStreak, state.CompletedPomodoros,
		state.LastUpdate, state.UserID,
	)
	return err
}

func (r *timerStateRepository) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM timer_states WHERE user_id = $1`, userID)
	return err
}
