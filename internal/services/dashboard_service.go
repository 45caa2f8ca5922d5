package services

import (
	"context"
	"time"

	"taskhub/internal/models"
	"taskhub/internal/repositories"
)

const (
	urgentTaskLimit = 5
	recentTaskLimit = 20
)

// UrgentTaskEntry is the slim projection used for the "urgent" dashboard
// block. "state" is the historical wire name for status.
type UrgentTaskEntry struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Deadline *time.Time `json:"deadline,omitempty"`
	State    models.TaskStatus `json:"state"`
}

type RecentTaskEntry struct {
	ID         int64              `json:"id"`
	Name       string             `json:"name"`
	State      models.TaskStatus  `json:"state"`
	Deadline   *time.Time         `json:"deadline,omitempty"`
	Priority   models.TaskPriority `json:"priority"`
	AssigneeID int64              `json:"assignee_id"`
	IsOverdue  bool               `json:"is_overdue"`
}

type DashboardData struct {
	repositories.DashboardCounts
	UrgentTasks []UrgentTaskEntry `json:"urgent_tasks"`
	RecentTasks []RecentTaskEntry `json:"recent_tasks"`
}

// DashboardService assembles the per-user task dashboard. Pure read: counts
// and lists come from separate queries and are therefore only approximately
// consistent with each other, which is acceptable for a dashboard snapshot.
type DashboardService interface {
	GetDashboard(ctx context.Context, userID int64) (*DashboardData, error)
}

type dashboardService struct {
	tasks repositories.TaskRepository
	now   func() time.Time
}

func NewDashboardService(tasks repositories.TaskRepository) DashboardService {
	return &dashboardService{tasks: tasks, now: time.Now}
}

func (s *dashboardService) GetDashboard(ctx context.Context, userID int64) (*DashboardData, error) {
	now := s.now().UTC()

	counts, err := s.tasks.CountForDashboard(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	urgent, err := s.tasks.ListUrgent(ctx, userID, urgentTaskLimit)
	if err != nil {
		return nil, err
	}
	recent, err := s.tasks.ListRecent(ctx, userID, recentTaskLimit)
	if err != nil {
		return nil, err
	}

	data := &DashboardData{
		DashboardCounts: counts,
		UrgentTasks:     make([]UrgentTaskEntry, 0, len(urgent)),
		RecentTasks:     make([]RecentTaskEntry, 0, len(recent)),
	}
	for _, t := range urgent {
		data.UrgentTasks = append(data.UrgentTasks, UrgentTaskEntry{
			ID:       t.ID,
			Name:     t.Title,
			Deadline: t.Deadline,
			State:    t.Status,
		})
	}
	for _, t := range recent {
		data.RecentTasks = append(data.RecentTasks, RecentTaskEntry{
			ID:         t.ID,
			Name:       t.Title,
			State:      t.Status,
			Deadline:   t.Deadline,
			Priority:   t.Priority,
			AssigneeID: t.AssigneeID,
			// stored is_overdue can lag behind the clock; recompute
			// from the live deadline for display
			IsOverdue: models.Overdue(t.Deadline, t.Status, now),
		})
	}
	return data, nil
}
