package todos

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/todo-api/internal/apperrors"
	"github.com/yourusername/todo-api/internal/auth"
	"github.com/yourusername/todo-api/internal/model"
)

// TaskService はハンドラーが利用するタスク操作です。
type TaskService interface {
	Create(ctx context.Context, owner model.Account, draft Draft) (model.Task, error)
	List(ctx context.Context, owner model.Account, filter model.TaskFilter) ([]model.Task, error)
	Get(ctx context.Context, owner model.Account, taskID int64) (model.Task, error)
	Update(ctx context.Context, owner model.Account, taskID int64, patch model.TaskPatch) (model.Task, error)
	Delete(ctx context.Context, owner model.Account, taskID int64) error
}

// description は空文字を許すためポインタで必須判定します。
type createRequest struct {
	Title       string           `json:"title" binding:"required"`
	Description *string          `json:"description" binding:"required"`
	Status      model.TaskStatus `json:"status" binding:"required,oneof=draft todo doing completed trash"`
}

type patchRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Status      *model.TaskStatus `json:"status" binding:"omitempty,oneof=draft todo doing completed trash"`
}

type listQuery struct {
	Title       *string `form:"title"`
	Description *string `form:"description"`
	Status      *string `form:"status" binding:"omitempty,oneof=draft todo doing completed trash"`
	Offset      *int    `form:"offset" binding:"omitempty,min=0"`
	Limit       *int    `form:"limit" binding:"omitempty,min=0"`
}

func (q listQuery) filter() model.TaskFilter {
	filter := model.TaskFilter{
		Title:       q.Title,
		Description: q.Description,
		Limit:       q.Limit,
	}
	if q.Status != nil {
		status := model.TaskStatus(*q.Status)
		filter.Status = &status
	}
	if q.Offset != nil {
		filter.Offset = *q.Offset
	}
	return filter
}

// CreateHandler は POST /v1/todos のハンドラーを返します。
func CreateHandler(svc TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := currentOwner(c)
		if !ok {
			return
		}
		var req createRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.InvalidInput("title, description, status を JSON で送ってください"))
			return
		}

		task, err := svc.Create(c.Request.Context(), owner, Draft{
			Title:       req.Title,
			Description: *req.Description,
			Status:      req.Status,
		})
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, task)
	}
}

// ListHandler は GET /v1/todos のハンドラーを返します。
func ListHandler(svc TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := currentOwner(c)
		if !ok {
			return
		}
		var q listQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			apperrors.Respond(c, apperrors.InvalidInput("検索条件が不正です"))
			return
		}

		tasks, err := svc.List(c.Request.Context(), owner, q.filter())
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"todos": tasks})
	}
}

// GetHandler は GET /v1/todos/:id のハンドラーを返します。
func GetHandler(svc TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := currentOwner(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}

		task, err := svc.Get(c.Request.Context(), owner, id)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, task)
	}
}

// PatchHandler は PATCH /v1/todos/:id のハンドラーを返します。
func PatchHandler(svc TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := currentOwner(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req patchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.InvalidInput("更新内容が不正です"))
			return
		}

		task, err := svc.Update(c.Request.Context(), owner, id, model.TaskPatch{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
		})
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, task)
	}
}

// DeleteHandler は DELETE /v1/todos/:id のハンドラーを返します。
func DeleteHandler(svc TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := currentOwner(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}

		if err := svc.Delete(c.Request.Context(), owner, id); err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Task has been deleted successfully."})
	}
}

func currentOwner(c *gin.Context) (model.Account, bool) {
	owner, ok := auth.CurrentAccount(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
	}
	return owner, ok
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.Respond(c, apperrors.InvalidInput("id は整数で指定してください"))
		return 0, false
	}
	return id, true
}
