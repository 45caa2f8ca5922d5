package models

import "time"

// Timer snapshot defaults. The timer itself ticks in the browser; the server
// only stores the last snapshot it was handed.
const (
	DefaultTimerMinutes = 25
	DefaultTimerSeconds = 0
	DefaultTimerMode    = "focus"
)

// TimerState is the single pomodoro snapshot kept per user. The JSON field
// names are the wire contract with the frontend widget, hence the camelCase.
type TimerState struct {
	ID     int64 `json:"-"`
	UserID int64 `json:"-"`

	Active             bool      `json:"timerActive"`
	Paused             bool      `json:"timerPaused"`
	Minutes            int       `json:"timerMinutes"`
	Seconds            int       `json:"timerSeconds"`
	Mode               string    `json:"timerMode"`
	Progress           int       `json:"timerProgress"`
	CurrentStreak      int       `json:"currentPomodoroStreak"`
	CompletedPomodoros int       `json:"completedPomodoros"`
	LastUpdate         time.Time `json:"lastUpdate"`
}

// TimerSnapshot is the incoming save payload. Every field is optional; a save
// is a full replace, so anything the client leaves out reverts to its default
// rather than keeping the stored value.
type TimerSnapshot struct {
	Active             *bool   `json:"timerActive"`
	Paused             *bool   `json:"timerPaused"`
	Minutes            *int    `json:"timerMinutes"`
	Seconds            *int    `json:"timerSeconds"`
	Mode               *string `json:"timerMode"`
	Progress           *int    `json:"timerProgress"`
	CurrentStreak      *int    `json:"currentPomodoroStreak"`
	CompletedPomodoros *int    `json:"completedPomodoros"`
}

// Materialize turns a snapshot into the full state row, applying defaults for
// missing fields. LastUpdate is stamped by the store, never trusted from the
// client, so it is not part of the snapshot.
func (s TimerSnapshot) Materialize(userID int64) TimerState {
	st := TimerState{
		UserID:  userID,
		Minutes: DefaultTimerMinutes,
		Seconds: DefaultTimerSeconds,
		Mode:    DefaultTimerMode,
	}
	if s.Active != nil {
		st.Active = *s.Active
	}
	if s.Paused != nil {
		st.Paused = *s.Paused
	}
	if s.Minutes != nil {
		st.Minutes = *s.Minutes
	}
	if s.Seconds != nil {
		st.Seconds = *s.Seconds
	}
	if s.Mode != nil && *s.Mode != "" {
		st.Mode = *s.Mode
	}
	if s.Progress != nil {
		st.Progress = *s.Progress
	}
	if s.CurrentStreak != nil {
		st.CurrentStreak = *s.CurrentStreak
	}
	if s.CompletedPomodoros != nil {
		st.CompletedPomodoros = *s.CompletedPomodoros
	}
	return st
}
