// Package todos は認証済みアカウントが所有するタスクの作成・一覧・更新・削除を提供します。
// タスクの検索は常に所有者 ID で絞り込まれるため、他人のタスクは存在しないものとして扱われます。
package todos

import (
	"context"
	"errors"

	"github.com/yourusername/todo-api/internal/apperrors"
	"github.com/yourusername/todo-api/internal/model"
)

// Repository はタスクの永続化を担います。
type Repository interface {
	InsertTask(ctx context.Context, task model.Task) (model.Task, error)
	GetTask(ctx context.Context, ownerID, taskID int64) (model.Task, error)
	QueryTasks(ctx context.Context, ownerID int64, filter model.TaskFilter) ([]model.Task, error)
	UpdateTask(ctx context.Context, task model.Task) (model.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID int64) error
}

// Draft は新規作成時に受け取るタスクの内容です。
type Draft struct {
	Title       string
	Description string
	Status      model.TaskStatus
}

// Service はタスク操作のユースケースです。
type Service struct {
	repo Repository
}

// NewService は Service を作成します。
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create は owner のタスクを作成します。
func (s *Service) Create(ctx context.Context, owner model.Account, draft Draft) (model.Task, error) {
	if !draft.Status.Valid() {
		return model.Task{}, errInvalidStatus
	}
	return s.repo.InsertTask(ctx, model.Task{
		Title:       draft.Title,
		Description: draft.Description,
		Status:      draft.Status,
		OwnerID:     owner.ID,
	})
}

// List は owner のタスクのうち filter に一致するものを返します。
func (s *Service) List(ctx context.Context, owner model.Account, filter model.TaskFilter) ([]model.Task, error) {
	if filter.Status != nil && *filter.Status != "" && !filter.Status.Valid() {
		return nil, errInvalidStatus
	}
	if filter.Offset < 0 || (filter.Limit != nil && *filter.Limit < 0) {
		return nil, apperrors.InvalidInput("offset and limit must not be negative")
	}
	return s.repo.QueryTasks(ctx, owner.ID, filter)
}

// Get は owner のタスクを取得します。
func (s *Service) Get(ctx context.Context, owner model.Account, taskID int64) (model.Task, error) {
	task, err := s.repo.GetTask(ctx, owner.ID, taskID)
	if err != nil {
		return model.Task{}, translate(err)
	}
	return task, nil
}

// Update は patch で指定されたフィールドだけを書き換えます。
func (s *Service) Update(ctx context.Context, owner model.Account, taskID int64, patch model.TaskPatch) (model.Task, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return model.Task{}, errInvalidStatus
	}

	task, err := s.repo.GetTask(ctx, owner.ID, taskID)
	if err != nil {
		return model.Task{}, translate(err)
	}
	patch.Apply(&task)

	updated, err := s.repo.UpdateTask(ctx, task)
	if err != nil {
		return model.Task{}, translate(err)
	}
	return updated, nil
}

// Delete は owner のタスクを削除します。
func (s *Service) Delete(ctx context.Context, owner model.Account, taskID int64) error {
	if err := s.repo.DeleteTask(ctx, owner.ID, taskID); err != nil {
		return translate(err)
	}
	return nil
}

var errInvalidStatus = apperrors.InvalidInput("status must be one of draft, todo, doing, completed, trash")

func translate(err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return apperrors.ErrTaskNotFound
	}
	return err
}
