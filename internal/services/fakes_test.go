package services

import (
	"context"
	"time"

	"taskhub/internal/models"
	"taskhub/internal/repositories"
)

// In-memory fakes for the repository interfaces.

type fakeTaskRepo struct {
	tasks  map[int64]*models.Task
	nextID int64

	counts repositories.DashboardCounts
	urgent []models.Task
	recent []models.Task

	urgentLimit int
	recentLimit int
	countErr    error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[int64]*models.Task{}, nextID: 1}
}

func (f *fakeTaskRepo) Store(_ context.Context, task *models.Task) error {
	task.ID = f.nextID
	f.nextID++
	cp := *task
	f.tasks[task.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) FindByID(_ context.Context, id int64) (*models.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTaskRepo) FindAll(_ context.Context, filter models.TaskFilter) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if !filter.IncludeArchived && !t.Active {
			continue
		}
		if filter.AssigneeID != nil && t.AssigneeID != *filter.AssigneeID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	cp := *task
	f.tasks[task.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) Archive(_ context.Context, id int64) error {
	if t, ok := f.tasks[id]; ok {
		t.Active = false
	}
	return nil
}

func (f *fakeTaskRepo) CountForDashboard(_ context.Context, _ int64, _ time.Time) (repositories.DashboardCounts, error) {
	return f.counts, f.countErr
}

func (f *fakeTaskRepo) ListUrgent(_ context.Context, _ int64, limit int) ([]models.Task, error) {
	f.urgentLimit = limit
	if len(f.urgent) > limit {
		return f.urgent[:limit], nil
	}
	return f.urgent, nil
}

func (f *fakeTaskRepo) ListRecent(_ context.Context, _ int64, limit int) ([]models.Task, error) {
	f.recentLimit = limit
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

type fakeTagRepo struct {
	tags     map[int64]*models.TaskTag
	nextID   int64
	taskTags map[int64][]int64
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: map[int64]*models.TaskTag{}, nextID: 1, taskTags: map[int64][]int64{}}
}

func (f *fakeTagRepo) Store(_ context.Context, tag *models.TaskTag) error {
	tag.ID = f.nextID
	f.nextID++
	cp := *tag
	f.tags[tag.ID] = &cp
	return nil
}

func (f *fakeTagRepo) FindByID(_ context.Context, id int64) (*models.TaskTag, error) {
	t, ok := f.tags[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTagRepo) FindAll(_ context.Context) ([]models.TaskTag, error) {
	var out []models.TaskTag
	for _, t := range f.tags {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTagRepo) Update(_ context.Context, tag *models.TaskTag) error {
	cp := *tag
	f.tags[tag.ID] = &cp
	return nil
}

func (f *fakeTagRepo) Delete(_ context.Context, id int64) error {
	delete(f.tags, id)
	return nil
}

func (f *fakeTagRepo) ReplaceTaskTags(_ context.Context, taskID int64, tagIDs []int64) error {
	f.taskTags[taskID] = append([]int64(nil), tagIDs...)
	return nil
}

func (f *fakeTagRepo) FindTaskTagIDs(_ context.Context, taskID int64) ([]int64, error) {
	return f.taskTags[taskID], nil
}

type fakeUserRepo struct {
	timezones map[int64]string
	tzErr     error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{timezones: map[int64]string{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = 1
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, _ int64) (*models.User, error) { return nil, nil }
func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Timezone(_ context.Context, userID int64) (string, error) {
	if f.tzErr != nil {
		return "", f.tzErr
	}
	return f.timezones[userID], nil
}

func (f *fakeUserRepo) GetNotifySettings(_ context.Context, _ int64) (int64, bool, string, bool, error) {
	return 0, false, "", false, nil
}

func (f *fakeUserRepo) UpdateRefresh(_ context.Context, _ int64, _ string, _ time.Time) error {
	return nil
}

func (f *fakeUserRepo) RotateRefresh(_ context.Context, _, _ string, _ time.Time) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetByRefreshToken(_ context.Context, _ string) (*models.User, error) {
	return nil, nil
}

type fakeTimerRepo struct {
	states    map[int64]*models.TimerState
	insertErr error
	inserts   int
	updates   int
}

func newFakeTimerRepo() *fakeTimerRepo {
	return &fakeTimerRepo{states: map[int64]*models.TimerState{}}
}

func (f *fakeTimerRepo) FindByUser(_ context.Context, userID int64) (*models.TimerState, error) {
	st, ok := f.states[userID]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (f *fakeTimerRepo) Insert(_ context.Context, state *models.TimerState) error {
	f.inserts++
	if f.insertErr != nil {
		err := f.insertErr
		f.insertErr = nil
		return err
	}
	state.ID = int64(len(f.states) + 1)
	cp := *state
	f.states[state.UserID] = &cp
	return nil
}

func (f *fakeTimerRepo) Update(_ context.Context, state *models.TimerState) error {
	f.updates++
	cp := *state
	f.states[state.UserID] = &cp
	return nil
}

func (f *fakeTimerRepo) DeleteByUser(_ context.Context, userID int64) error {
	delete(f.states, userID)
	return nil
}

type fakeModuleRepo struct {
	apps      []models.Module
	installed []models.Module

	appsErr       error
	fallbackCalls int
	fallbackLimit int
}

func (f *fakeModuleRepo) FindInstalledApplications(_ context.Context) ([]models.Module, error) {
	return f.apps, f.appsErr
}

func (f *fakeModuleRepo) FindInstalled(_ context.Context, limit int) ([]models.Module, error) {
	f.fallbackCalls++
	f.fallbackLimit = limit
	if len(f.installed) > limit {
		return f.installed[:limit], nil
	}
	return f.installed, nil
}
