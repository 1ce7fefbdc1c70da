package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-api/internal/core/domain"
	"github.com/taskforge/task-api/internal/core/ports"
)

type stubTaskRepo struct {
	byID       map[string]*domain.Task
	listFilter ports.ListTasksFilter
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{byID: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	r.byID[t.ID] = t
	return nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) List(_ context.Context, filter ports.ListTasksFilter) ([]*domain.Task, int64, error) {
	r.listFilter = filter
	var out []*domain.Task
	for _, t := range r.byID {
		if filter.OwnerID != "" && t.Owner.ID != filter.OwnerID {
			continue
		}
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) error {
	if _, ok := r.byID[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.byID[t.ID] = t
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubTaskRepo) Stats(_ context.Context) ([]ports.StatusCount, []ports.StatusCount, int64, error) {
	byStatus := map[domain.TaskStatus]int64{}
	byPriority := map[domain.TaskPriority]int64{}
	for _, t := range r.byID {
		byStatus[t.Status]++
		byPriority[t.Priority]++
	}
	var s, p []ports.StatusCount
	for k, v := range byStatus {
		s = append(s, ports.StatusCount{Key: string(k), Count: v})
	}
	for k, v := range byPriority {
		p = append(p, ports.StatusCount{Key: string(k), Count: v})
	}
	return s, p, int64(len(r.byID)), nil
}

type stubActivityRepo struct {
	items []*domain.TaskActivity
}

func (r *stubActivityRepo) Insert(_ context.Context, a *domain.TaskActivity) error {
	r.items = append(r.items, a)
	return nil
}

func (r *stubActivityRepo) FindByTaskID(_ context.Context, taskID string) ([]*domain.TaskActivity, error) {
	var out []*domain.TaskActivity
	for _, a := range r.items {
		if a.TaskID == taskID {
			out = append(out, a)
		}
	}
	return out, nil
}

type captureRecorder struct {
	records []domain.TaskActivity
}

func (r *captureRecorder) Record(a domain.TaskActivity) {
	r.records = append(r.records, a)
}

var (
	alice = domain.Principal{ID: "alice-id", Email: "alice@example.com", Role: domain.RoleUser}
	bob   = domain.Principal{ID: "bob-id", Email: "bob@example.com", Role: domain.RoleUser}
	root  = domain.Principal{ID: "root-id", Email: "root@example.com", Role: domain.RoleAdmin}
)

func newTestTaskService() (*TaskService, *stubTaskRepo, *stubActivityRepo, *captureRecorder) {
	repo := newStubTaskRepo()
	activity := &stubActivityRepo{}
	rec := &captureRecorder{}
	return NewTaskService(repo, activity, rec, zerolog.Nop()), repo, activity, rec
}

func mustCreate(t *testing.T, svc *TaskService, p domain.Principal, title string) *domain.Task {
	t.Helper()
	task, err := svc.Create(context.Background(), p, ports.CreateTaskInput{Title: title})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return task
}

func TestTaskService_Create_Defaults(t *testing.T) {
	svc, _, _, rec := newTestTaskService()

	task := mustCreate(t, svc, alice, "write report")
	if task.ID == "" {
		t.Fatalf("expected generated id")
	}
	if task.Status != domain.StatusPending {
		t.Fatalf("expected default status pending, got %q", task.Status)
	}
	if task.Priority != domain.PriorityMedium {
		t.Fatalf("expected default priority medium, got %q", task.Priority)
	}
	if task.Owner.ID != alice.ID || task.Owner.Email != alice.Email {
		t.Fatalf("unexpected owner: %+v", task.Owner)
	}
	if len(rec.records) != 1 || rec.records[0].Action != domain.ActivityCreated {
		t.Fatalf("expected one created activity record, got %+v", rec.records)
	}
}

func TestTaskService_Create_RequiresTitle(t *testing.T) {
	svc, _, _, _ := newTestTaskService()

	if _, err := svc.Create(context.Background(), alice, ports.CreateTaskInput{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTaskService_Get_OwnershipPolicy(t *testing.T) {
	svc, _, _, _ := newTestTaskService()
	task := mustCreate(t, svc, alice, "mine")

	if _, err := svc.Get(context.Background(), alice, task.ID); err != nil {
		t.Fatalf("owner should read own task: %v", err)
	}
	if _, err := svc.Get(context.Background(), bob, task.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if _, err := svc.Get(context.Background(), root, task.ID); err != nil {
		t.Fatalf("admin should read any task: %v", err)
	}
	if _, err := svc.Get(context.Background(), alice, "missing"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_List_Scoping(t *testing.T) {
	svc, repo, _, _ := newTestTaskService()
	mustCreate(t, svc, alice, "a1")
	mustCreate(t, svc, bob, "b1")

	res, err := svc.List(context.Background(), alice, ports.ListTasksInput{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.listFilter.OwnerID != alice.ID {
		t.Fatalf("user list must be scoped to owner, filter: %+v", repo.listFilter)
	}
	if res.Total != 1 {
		t.Fatalf("expected 1 task for alice, got %d", res.Total)
	}

	if _, err := svc.List(context.Background(), root, ports.ListTasksInput{}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.listFilter.OwnerID != "" {
		t.Fatalf("admin list must not be owner-scoped, filter: %+v", repo.listFilter)
	}
}

func TestTaskService_List_PaginationBounds(t *testing.T) {
	svc, repo, _, _ := newTestTaskService()

	if _, err := svc.List(context.Background(), alice, ports.ListTasksInput{Page: -3, Limit: 1000}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.listFilter.Page != 1 {
		t.Fatalf("expected page clamped to 1, got %d", repo.listFilter.Page)
	}
	if repo.listFilter.Limit != 100 {
		t.Fatalf("expected limit capped at 100, got %d", repo.listFilter.Limit)
	}
}

func TestTaskService_Update_Partial(t *testing.T) {
	svc, _, _, rec := newTestTaskService()
	task := mustCreate(t, svc, alice, "original")

	newTitle := "renamed"
	updated, err := svc.Update(context.Background(), alice, task.ID, ports.UpdateTaskInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "renamed" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if updated.Status != domain.StatusPending {
		t.Fatalf("untouched fields must survive, status: %q", updated.Status)
	}

	status := string(domain.StatusCompleted)
	updated, err = svc.Update(context.Background(), alice, task.ID, ports.UpdateTaskInput{Status: &status})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.StatusCompleted {
		t.Fatalf("status not updated: %q", updated.Status)
	}

	last := rec.records[len(rec.records)-1]
	if last.Action != domain.ActivityStatusChanged {
		t.Fatalf("expected status_changed record, got %q", last.Action)
	}
	if last.Detail != "pending -> completed" {
		t.Fatalf("unexpected detail: %q", last.Detail)
	}
}

func TestTaskService_Update_Forbidden(t *testing.T) {
	svc, _, _, _ := newTestTaskService()
	task := mustCreate(t, svc, alice, "mine")

	title := "hijack"
	if _, err := svc.Update(context.Background(), bob, task.ID, ports.UpdateTaskInput{Title: &title}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Update(context.Background(), root, task.ID, ports.UpdateTaskInput{Title: &title}); err != nil {
		t.Fatalf("admin update should succeed: %v", err)
	}
}

func TestTaskService_Delete(t *testing.T) {
	svc, repo, _, rec := newTestTaskService()
	task := mustCreate(t, svc, alice, "done soon")

	if err := svc.Delete(context.Background(), bob, task.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), alice, task.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := repo.byID[task.ID]; ok {
		t.Fatalf("task not removed")
	}
	last := rec.records[len(rec.records)-1]
	if last.Action != domain.ActivityDeleted {
		t.Fatalf("expected deleted record, got %q", last.Action)
	}
}

func TestTaskService_Stats(t *testing.T) {
	svc, _, _, _ := newTestTaskService()
	mustCreate(t, svc, alice, "one")
	mustCreate(t, svc, bob, "two")

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 2 {
		t.Fatalf("expected total 2, got %d", stats.Total)
	}
}

func TestTaskService_Activity_Policy(t *testing.T) {
	svc, _, activity, _ := newTestTaskService()
	task := mustCreate(t, svc, alice, "traced")

	activity.items = append(activity.items, &domain.TaskActivity{
		TaskID: task.ID, Action: domain.ActivityCreated, ActorID: alice.ID, Timestamp: time.Now().UTC(),
	})

	items, err := svc.Activity(context.Background(), alice, task.ID)
	if err != nil {
		t.Fatalf("activity failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 activity item, got %d", len(items))
	}
	if _, err := svc.Activity(context.Background(), bob, task.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
