package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"taskhub/internal/models"

	"github.com/lib/pq"
)

// DashboardCounts holds the per-status counters shown on the task dashboard.
type DashboardCounts struct {
	Total      int `json:"total"`
	New        int `json:"new"`
	InProgress int `json:"in_progress"`
	Done       int `json:"done"`
	Cancelled  int `json:"cancelled"`
	Overdue    int `json:"overdue"`
}

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Archive(ctx context.Context, id int64) error

	// Dashboard queries, all scoped to assignee_id = userID AND active = TRUE.
	CountForDashboard(ctx context.Context, userID int64, now time.Time) (DashboardCounts, error)
	ListUrgent(ctx context.Context, userID int64, limit int) ([]models.Task, error)
	ListRecent(ctx context.Context, userID int64, limit int) ([]models.Task, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, title, description, active, status, priority, assignee_id, creator_id,
       created_at, completed_at, duration_hours, deadline_date, deadline_time,
       deadline, days_to_deadline, is_overdue`

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (
			title, description, active, status, priority, assignee_id, creator_id,
			created_at, completed_at, duration_hours, deadline_date, deadline_time,
			deadline, days_to_deadline, is_overdue
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.Active, task.Status, task.Priority,
		task.AssigneeID, task.CreatorID, task.CreatedAt, task.CompletedAt,
		task.DurationHours, task.DeadlineDate, task.DeadlineTime,
		task.Deadline, task.DaysToDeadline, task.IsOverdue,
	).Scan(&task.ID, &task.CreatedAt)
}

func scanTask(row interface{ Scan(...any) error }, t *models.Task) error {
	return row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Active, &t.Status, &t.Priority,
		&t.AssigneeID, &t.CreatorID, &t.CreatedAt, &t.CompletedAt,
		&t.DurationHours, &t.DeadlineDate, &t.DeadlineTime,
		&t.Deadline, &t.DaysToDeadline, &t.IsOverdue,
	)
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task := &models.Task{}
	err := scanTask(r.db.QueryRowContext(ctx, query, id), task)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT ` + taskColumns + ` FROM tasks`

	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if !filter.IncludeArchived {
		conditions = append(conditions, "active = TRUE")
	}
	if filter.AssigneeID != nil {
		conditions = append(conditions, fmt.Sprintf("assignee_id = $%d", argID))
		args = append(args, *filter.AssigneeID)
		argID++
	}
	if filter.CreatorID != nil {
		conditions = append(conditions, fmt.Sprintf("creator_id = $%d", argID))
		args = append(args, *filter.CreatorID)
		argID++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.Priority != nil {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", argID))
		args = append(args, *filter.Priority)
		argID++
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY created_at DESC"

	return r.queryTasks(ctx, baseQuery, args...)
}

func (r *taskRepository) queryTasks(ctx context.Context, query string, args ...interface{}) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			title=$1, description=$2, active=$3, status=$4, priority=$5,
			assignee_id=$6, completed_at=$7, duration_hours=$8,
			deadline_date=$9, deadline_time=$10,
			deadline=$11, days_to_deadline=$12, is_overdue=$13
		WHERE id=$14`
	_, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Active, task.Status, task.Priority,
		task.AssigneeID, task.CompletedAt, task.DurationHours,
		task.DeadlineDate, task.DeadlineTime,
		task.Deadline, task.DaysToDeadline, task.IsOverdue, task.ID,
	)
	return err
}

// Archive soft-deletes: the row stays for history, it just drops out of every
// default listing and the dashboard.
func (r *taskRepository) Archive(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET active = FALSE WHERE id = $1`, id)
	return err
}

func (r *taskRepository) CountForDashboard(ctx context.Context, userID int64, now time.Time) (DashboardCounts, error) {
	// The overdue predicate mirrors models.Overdue; the stored is_overdue
	// column can be stale between writes, so the count goes off the live
	// deadline instead.
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'new'),
			COUNT(*) FILTER (WHERE status = 'in_progress'),
			COUNT(*) FILTER (WHERE status = 'done'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COUNT(*) FILTER (WHERE deadline IS NOT NULL AND deadline < $2
				AND status NOT IN ('done','cancelled'))
		FROM tasks
		WHERE assignee_id = $1 AND active = TRUE`
	var c DashboardCounts
	err := r.db.QueryRowContext(ctx, query, userID, now).Scan(
		&c.Total, &c.New, &c.InProgress, &c.Done, &c.Cancelled, &c.Overdue,
	)
	return c, err
}

func (r *taskRepository) ListUrgent(ctx context.Context, userID int64, limit int) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE assignee_id = $1 AND active = TRUE AND priority = $2
		ORDER BY deadline ASC NULLS LAST, id DESC
		LIMIT $3`
	return r.queryTasks(ctx, query, userID, models.PriorityUrgent, limit)
}

func (r *taskRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE assignee_id = $1 AND active = TRUE
		ORDER BY created_at DESC
		LIMIT $2`
	return r.queryTasks(ctx, query, userID, limit)
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}
