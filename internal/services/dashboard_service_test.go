package services

import (
	"context"
	"testing"
	"time"

	"taskhub/internal/models"
	"taskhub/internal/repositories"
)

func newTestDashboardService(repo *fakeTaskRepo, now time.Time) *dashboardService {
	svc := NewDashboardService(repo).(*dashboardService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestDashboardEmpty(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeTaskRepo()
	svc := newTestDashboardService(repo, now)

	data, err := svc.GetDashboard(context.Background(), 7)
	if err != nil {
		t.Fatalf("dashboard with zero tasks must not error: %v", err)
	}
	if data.Total != 0 || data.New != 0 || data.InProgress != 0 ||
		data.Done != 0 || data.Cancelled != 0 || data.Overdue != 0 {
		t.Errorf("counts = %+v, want all zero", data.DashboardCounts)
	}
	if data.UrgentTasks == nil || len(data.UrgentTasks) != 0 {
		t.Errorf("urgent_tasks = %v, want empty list (not null)", data.UrgentTasks)
	}
	if data.RecentTasks == nil || len(data.RecentTasks) != 0 {
		t.Errorf("recent_tasks = %v, want empty list (not null)", data.RecentTasks)
	}
}

func TestDashboardLimits(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeTaskRepo()

	for i := 0; i < 30; i++ {
		task := models.Task{ID: int64(i + 1), Title: "t", Status: models.StatusNew, Priority: models.PriorityUrgent}
		repo.urgent = append(repo.urgent, task)
		repo.recent = append(repo.recent, task)
	}

	svc := newTestDashboardService(repo, now)
	data, err := svc.GetDashboard(context.Background(), 7)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if repo.urgentLimit != 5 {
		t.Errorf("urgent limit = %d, want 5", repo.urgentLimit)
	}
	if repo.recentLimit != 20 {
		t.Errorf("recent limit = %d, want 20", repo.recentLimit)
	}
	if len(data.UrgentTasks) > 5 {
		t.Errorf("urgent_tasks len = %d, must never exceed 5", len(data.UrgentTasks))
	}
	if len(data.RecentTasks) > 20 {
		t.Errorf("recent_tasks len = %d, must never exceed 20", len(data.RecentTasks))
	}
}

func TestDashboardProjections(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeTaskRepo()

	pastDeadline := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	repo.counts = repositories.DashboardCounts{Total: 2, New: 1, InProgress: 1, Overdue: 1}
	repo.urgent = []models.Task{
		{ID: 3, Title: "urgent one", Status: models.StatusNew, Deadline: &pastDeadline, Priority: models.PriorityUrgent},
	}
	repo.recent = []models.Task{
		{
			ID: 3, Title: "urgent one", Status: models.StatusNew, Priority: models.PriorityUrgent,
			AssigneeID: 7, Deadline: &pastDeadline,
			// stale stored value: the projection must recompute from the clock
			IsOverdue: false,
		},
		{ID: 4, Title: "fresh", Status: models.StatusInProgress, Priority: models.PriorityMedium, AssigneeID: 7},
	}

	svc := newTestDashboardService(repo, now)
	data, err := svc.GetDashboard(context.Background(), 7)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if data.Overdue != 1 {
		t.Errorf("overdue count = %d, want 1", data.Overdue)
	}

	u := data.UrgentTasks[0]
	if u.ID != 3 || u.Name != "urgent one" || u.State != models.StatusNew {
		t.Errorf("urgent projection = %+v", u)
	}
	if u.Deadline == nil || !u.Deadline.Equal(pastDeadline) {
		t.Errorf("urgent deadline = %v", u.Deadline)
	}

	r := data.RecentTasks[0]
	if !r.IsOverdue {
		t.Error("recent projection must recompute is_overdue from the live deadline")
	}
	if r.Priority != models.PriorityUrgent || r.AssigneeID != 7 {
		t.Errorf("recent projection = %+v", r)
	}
	if data.RecentTasks[1].IsOverdue {
		t.Error("task without deadline must not be overdue")
	}
}
