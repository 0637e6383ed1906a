package model

// TaskStatus はタスクの状態を表します。
type TaskStatus string

const (
	TaskStatusDraft     TaskStatus = "draft"
	TaskStatusTodo      TaskStatus = "todo"
	TaskStatusDoing     TaskStatus = "doing"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusTrash     TaskStatus = "trash"
)

// Valid は既知の状態かどうかを返します。
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusDraft, TaskStatusTodo, TaskStatusDoing, TaskStatusCompleted, TaskStatusTrash:
		return true
	default:
		return false
	}
}

// Task は所有者アカウントに紐づくタスクです。
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	OwnerID     int64      `json:"-"`
}

// TaskFilter は一覧取得時の絞り込みとページングの条件です。
// nil のフィールドは条件に含めません。Limit が nil の場合は件数無制限です。
type TaskFilter struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Offset      int
	Limit       *int
}

// TaskPatch は部分更新で指定されたフィールドだけを保持します。
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
}

// Apply は指定されたフィールドを task に反映します。
func (p TaskPatch) Apply(task *Task) {
	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Description != nil {
		task.Description = *p.Description
	}
	if p.Status != nil {
		task.Status = *p.Status
	}
}
