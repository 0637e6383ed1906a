package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/todo-api/internal/model"
)

const taskColumns = `id, title, description, status, user_id`

func scanTask(row rowScanner) (model.Task, error) {
	var task model.Task
	if err := row.Scan(&task.ID, &task.Title, &task.Description, &task.Status, &task.OwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, err
	}
	return task, nil
}

// InsertTask はタスクを作成し、採番された ID を設定して返します。
func (s *Store) InsertTask(ctx context.Context, task model.Task) (model.Task, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO todos (title, description, status, user_id) VALUES (?, ?, ?, ?)`,
		task.Title, task.Description, string(task.Status), task.OwnerID,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Task{}, fmt.Errorf("insert task id: %w", err)
	}
	task.ID = id
	return task, nil
}

// GetTask は所有者で絞り込んだうえでタスクを取得します。
// 他のアカウントのタスクは存在しないものとして扱います。
func (s *Store) GetTask(ctx context.Context, ownerID, taskID int64) (model.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM todos WHERE user_id = ? AND id = ?`,
		ownerID, taskID,
	)
	return scanTask(row)
}

// QueryTasks は所有者のタスクのうち、すべての条件に一致するものを ID 順に返します。
// 部分一致は大文字小文字を区別します。ページングは絞り込みの後に適用されます。
func (s *Store) QueryTasks(ctx context.Context, ownerID int64, filter model.TaskFilter) ([]model.Task, error) {
	var (
		where = []string{"user_id = ?"}
		args  = []any{ownerID}
	)
	if filter.Title != nil && *filter.Title != "" {
		where = append(where, "instr(title, ?) > 0")
		args = append(args, *filter.Title)
	}
	if filter.Description != nil && *filter.Description != "" {
		where = append(where, "instr(description, ?) > 0")
		args = append(args, *filter.Description)
	}
	if filter.Status != nil && *filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(*filter.Status))
	}

	// SQLite では LIMIT -1 が件数無制限を表す
	limit := -1
	if filter.Limit != nil {
		limit = *filter.Limit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	query := `SELECT ` + taskColumns + ` FROM todos WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY id ASC LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// UpdateTask はタスクの内容を更新します。所有者が一致しない場合は ErrNotFound です。
func (s *Store) UpdateTask(ctx context.Context, task model.Task) (model.Task, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE todos SET title = ?, description = ?, status = ? WHERE id = ? AND user_id = ?`,
		task.Title, task.Description, string(task.Status), task.ID, task.OwnerID,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("update task: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// DeleteTask は所有者のタスクを削除します。
func (s *Store) DeleteTask(ctx context.Context, ownerID, taskID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE user_id = ? AND id = ?`, ownerID, taskID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return requireAffected(res)
}
