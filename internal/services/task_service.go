package services

import (
	"context"
	"errors"
	"log"
	"time"

	"taskhub/internal/models"
	"taskhub/internal/repositories"
)

// TaskService defines the interface for task-related business logic.
//
// The four transition methods implement a deliberately permissive state
// machine: any of {new, in_progress, done, cancelled} can be reached from any
// other state, so a mis-clicked "cancel" can always be corrected with a
// "reset". Status never changes as a side effect of other field edits.
type TaskService interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, id int64, updateData *models.Task) (*models.Task, error)
	Archive(ctx context.Context, id int64) error

	Start(ctx context.Context, id int64) (*models.Task, error)
	Complete(ctx context.Context, id int64) (*models.Task, error)
	Cancel(ctx context.Context, id int64) (*models.Task, error)
	Reset(ctx context.Context, id int64) (*models.Task, error)
}

var ErrTaskNotFound = errors.New("task not found")

type taskService struct {
	repo  repositories.TaskRepository
	tags  repositories.TagRepository
	users repositories.UserRepository
	now   func() time.Time
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(repo repositories.TaskRepository, tags repositories.TagRepository, users repositories.UserRepository) TaskService {
	return &taskService{repo: repo, tags: tags, users: users, now: time.Now}
}

func (s *taskService) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if task.Status == "" {
		task.Status = models.StatusNew
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.DeadlineTime == "" {
		task.DeadlineTime = models.DefaultDeadlineTime
	}
	if task.AssigneeID == 0 {
		task.AssigneeID = task.CreatorID
	}
	task.Active = true
	task.CreatedAt = s.now().UTC()

	s.recomputeDerived(ctx, task)

	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	if len(task.TagIDs) > 0 {
		if err := s.tags.ReplaceTaskTags(ctx, task.ID, task.TagIDs); err != nil {
			return nil, err
		}
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil || task == nil {
		return task, err
	}
	tagIDs, err := s.tags.FindTaskTagIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	task.TagIDs = tagIDs
	return task, nil
}

func (s *taskService) GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *taskService) Update(ctx context.Context, id int64, updateData *models.Task) (*models.Task, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	// CreatorID and CreatedAt are immutable; everything else follows the
	// update payload.
	existing.Title = updateData.Title
	existing.Description = updateData.Description
	existing.AssigneeID = updateData.AssigneeID
	existing.Priority = updateData.Priority
	existing.DurationHours = updateData.DurationHours
	existing.DeadlineDate = updateData.DeadlineDate
	existing.DeadlineTime = updateData.DeadlineTime
	if existing.DeadlineTime == "" {
		existing.DeadlineTime = models.DefaultDeadlineTime
	}

	s.recomputeDerived(ctx, existing)

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	if updateData.TagIDs != nil {
		if err := s.tags.ReplaceTaskTags(ctx, id, updateData.TagIDs); err != nil {
			return nil, err
		}
		existing.TagIDs = updateData.TagIDs
	}
	return existing, nil
}

func (s *taskService) Archive(ctx context.Context, id int64) error {
	return s.repo.Archive(ctx, id)
}

func (s *taskService) Start(ctx context.Context, id int64) (*models.Task, error) {
	return s.transition(ctx, id, models.StatusInProgress)
}

func (s *taskService) Complete(ctx context.Context, id int64) (*models.Task, error) {
	return s.transition(ctx, id, models.StatusDone)
}

func (s *taskService) Cancel(ctx context.Context, id int64) (*models.Task, error) {
	return s.transition(ctx, id, models.StatusCancelled)
}

func (s *taskService) Reset(ctx context.Context, id int64) (*models.Task, error) {
	return s.transition(ctx, id, models.StatusNew)
}

func (s *taskService) transition(ctx context.Context, id int64, to models.TaskStatus) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}

	task.Status = to
	if to == models.StatusDone {
		completed := s.now().UTC()
		task.CompletedAt = &completed
	}

	s.recomputeDerived(ctx, task)

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// recomputeDerived refreshes deadline, days_to_deadline and is_overdue from
// the current field values and wall-clock now. Timezone lookup failures and
// malformed time strings degrade to midnight UTC of the deadline date; they
// are logged, never returned.
func (s *taskService) recomputeDerived(ctx context.Context, task *models.Task) {
	now := s.now().UTC()
	task.Deadline = s.resolveDeadline(ctx, task)
	task.DaysToDeadline = models.DaysToDeadline(task.Deadline, now)
	task.IsOverdue = models.Overdue(task.Deadline, task.Status, now)
}

func (s *taskService) resolveDeadline(ctx context.Context, task *models.Task) *time.Time {
	if task.DeadlineDate == nil {
		return nil
	}
	date := *task.DeadlineDate

	loc := time.UTC
	tz, err := s.users.Timezone(ctx, task.AssigneeID)
	if err != nil {
		log.Printf("[task][deadline][warn] timezone lookup failed for user=%d, falling back to midnight UTC: %v", task.AssigneeID, err)
		deadline := models.MidnightUTC(date)
		return &deadline
	}
	if tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			log.Printf("[task][deadline][warn] unknown timezone %q for user=%d, falling back to midnight UTC: %v", tz, task.AssigneeID, err)
			deadline := models.MidnightUTC(date)
			return &deadline
		}
		loc = l
	}

	deadline, err := models.CombineDeadline(date, task.DeadlineTime, loc)
	if err != nil {
		log.Printf("[task][deadline][warn] task=%d falling back to midnight UTC: %v", task.ID, err)
		deadline = models.MidnightUTC(date)
	}
	return &deadline
}
