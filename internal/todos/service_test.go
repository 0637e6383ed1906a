package todos

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/yourusername/todo-api/internal/apperrors"
	"github.com/yourusername/todo-api/internal/model"
	"github.com/yourusername/todo-api/internal/storage"
)

type testEnv struct {
	svc   *Service
	store *storage.Store
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	store, err := storage.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("storage.Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return testEnv{svc: NewService(store), store: store}
}

func (e testEnv) account(t *testing.T, username string) model.Account {
	t.Helper()
	account, err := e.store.InsertAccount(context.Background(), model.Account{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("InsertAccount returned error: %v", err)
	}
	return account
}

func (e testEnv) task(t *testing.T, owner model.Account, title, description string, status model.TaskStatus) model.Task {
	t.Helper()
	task, err := e.svc.Create(context.Background(), owner, Draft{Title: title, Description: description, Status: status})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return task
}

func ptr[T any](v T) *T { return &v }

func TestCreate(t *testing.T) {
	env := newTestEnv(t)
	owner := env.account(t, "alice")

	task := env.task(t, owner, "Test todo", "Test todo description", model.TaskStatusDraft)
	if task.ID == 0 || task.OwnerID != owner.ID || task.Status != model.TaskStatusDraft {
		t.Fatalf("unexpected task: %#v", task)
	}

	_, err := env.svc.Create(context.Background(), owner, Draft{Title: "x", Status: "urgent"})
	var apiErr *apperrors.Error
	if !errors.As(err, &apiErr) || apiErr.Code != apperrors.CodeInvalidInput {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestOtherOwnersTaskIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	alice := env.account(t, "alice")
	bob := env.account(t, "bob")
	task := env.task(t, alice, "secret", "alice only", model.TaskStatusTodo)
	ctx := context.Background()

	if _, err := env.svc.Get(ctx, bob, task.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Fatalf("Get: expected ErrTaskNotFound, got %v", err)
	}
	if _, err := env.svc.Update(ctx, bob, task.ID, model.TaskPatch{Title: ptr("stolen")}); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Fatalf("Update: expected ErrTaskNotFound, got %v", err)
	}
	if err := env.svc.Delete(ctx, bob, task.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Fatalf("Delete: expected ErrTaskNotFound, got %v", err)
	}

	got, err := env.svc.Get(ctx, alice, task.ID)
	if err != nil {
		t.Fatalf("owner Get returned error: %v", err)
	}
	if got != task {
		t.Fatalf("task changed: %#v", got)
	}
}

func TestUpdateAppliesOnlySuppliedFields(t *testing.T) {
	env := newTestEnv(t)
	owner := env.account(t, "alice")
	task := env.task(t, owner, "title", "description", model.TaskStatusTodo)

	updated, err := env.svc.Update(context.Background(), owner, task.ID, model.TaskPatch{Status: ptr(model.TaskStatusCompleted)})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	want := task
	want.Status = model.TaskStatusCompleted
	if updated != want {
		t.Fatalf("unexpected task: %#v", updated)
	}

	stored, err := env.svc.Get(context.Background(), owner, task.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if stored != want {
		t.Fatalf("update not persisted: %#v", stored)
	}

	if _, err := env.svc.Update(context.Background(), owner, task.ID, model.TaskPatch{Status: ptr(model.TaskStatus("urgent"))}); err == nil {
		t.Fatal("expected invalid status error")
	}
	if _, err := env.svc.Update(context.Background(), owner, task.ID+10, model.TaskPatch{}); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	env := newTestEnv(t)
	owner := env.account(t, "alice")
	task := env.task(t, owner, "title", "description", model.TaskStatusTodo)

	if err := env.svc.Delete(context.Background(), owner, task.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := env.svc.Delete(context.Background(), owner, task.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Fatalf("second Delete: expected ErrTaskNotFound, got %v", err)
	}
}

func TestListFilters(t *testing.T) {
	env := newTestEnv(t)
	owner := env.account(t, "alice")
	other := env.account(t, "bob")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		env.task(t, owner, "Test todo 1", "description", model.TaskStatusDraft)
	}
	for i := 0; i < 3; i++ {
		env.task(t, owner, fmt.Sprintf("Other %d", i), "other description", model.TaskStatusTodo)
	}
	env.task(t, other, "Test todo 1", "description", model.TaskStatusDraft)

	cases := []struct {
		name   string
		filter model.TaskFilter
		want   int
	}{
		{name: "all", filter: model.TaskFilter{}, want: 8},
		{name: "title", filter: model.TaskFilter{Title: ptr("Test todo 1")}, want: 5},
		{name: "title is case sensitive", filter: model.TaskFilter{Title: ptr("test todo")}, want: 0},
		{name: "description", filter: model.TaskFilter{Description: ptr("other")}, want: 3},
		{name: "status", filter: model.TaskFilter{Status: ptr(model.TaskStatusTodo)}, want: 3},
		{name: "combined", filter: model.TaskFilter{Title: ptr("Test"), Description: ptr("desc"), Status: ptr(model.TaskStatusDraft)}, want: 5},
		{name: "combined disjoint", filter: model.TaskFilter{Title: ptr("Test"), Status: ptr(model.TaskStatusTodo)}, want: 0},
		{name: "empty title ignored", filter: model.TaskFilter{Title: ptr("")}, want: 8},
		{name: "limit zero", filter: model.TaskFilter{Limit: ptr(0)}, want: 0},
	}
	for _, tc := range cases {
		tasks, err := env.svc.List(ctx, owner, tc.filter)
		if err != nil {
			t.Fatalf("%s: List returned error: %v", tc.name, err)
		}
		if len(tasks) != tc.want {
			t.Fatalf("%s: got %d tasks, want %d", tc.name, len(tasks), tc.want)
		}
		for _, task := range tasks {
			if task.OwnerID != owner.ID {
				t.Fatalf("%s: leaked task of another owner: %#v", tc.name, task)
			}
		}
	}
}

func TestListPaginationAfterFiltering(t *testing.T) {
	env := newTestEnv(t)
	owner := env.account(t, "alice")

	var created []model.Task
	for i := 0; i < 5; i++ {
		env.task(t, owner, "noise", "noise", model.TaskStatusTrash)
		created = append(created, env.task(t, owner, fmt.Sprintf("item %d", i), "item", model.TaskStatusDoing))
	}

	tasks, err := env.svc.List(context.Background(), owner, model.TaskFilter{
		Status: ptr(model.TaskStatusDoing),
		Offset: 1,
		Limit:  ptr(2),
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(tasks) != 2 || tasks[0] != created[1] || tasks[1] != created[2] {
		t.Fatalf("unexpected page: %#v", tasks)
	}
}

func TestListRejectsInvalidFilter(t *testing.T) {
	env := newTestEnv(t)
	owner := env.account(t, "alice")

	if _, err := env.svc.List(context.Background(), owner, model.TaskFilter{Status: ptr(model.TaskStatus("urgent"))}); err == nil {
		t.Fatal("expected invalid status error")
	}
	if _, err := env.svc.List(context.Background(), owner, model.TaskFilter{Offset: -1}); err == nil {
		t.Fatal("expected negative offset error")
	}
}
