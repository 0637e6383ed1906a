package accounts

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/todo-api/internal/apperrors"
	"github.com/yourusername/todo-api/internal/auth"
	"github.com/yourusername/todo-api/internal/model"
)

// AccountService はハンドラーが利用するアカウント操作です。
type AccountService interface {
	Register(ctx context.Context, profile Profile) (model.Account, error)
	List(ctx context.Context, offset, limit int) ([]model.Account, error)
	Get(ctx context.Context, id int64) (model.Account, error)
	Update(ctx context.Context, actor model.Account, targetID int64, profile Profile) (model.Account, error)
	Delete(ctx context.Context, actor model.Account, targetID int64) error
}

type accountRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (r accountRequest) profile() Profile {
	return Profile{Username: r.Username, Email: r.Email, Password: r.Password}
}

type listQuery struct {
	Offset int `form:"offset,default=0" binding:"min=0"`
	Limit  int `form:"limit,default=10" binding:"min=0"`
}

// パスワードハッシュと作成日時はレスポンスに含めません。
type accountResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func toResponse(account model.Account) accountResponse {
	return accountResponse{ID: account.ID, Username: account.Username, Email: account.Email}
}

// RegisterHandler は POST /v1/users のハンドラーを返します。
func RegisterHandler(svc AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req accountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.InvalidInput("username, email, password を JSON で送ってください"))
			return
		}

		account, err := svc.Register(c.Request.Context(), req.profile())
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, toResponse(account))
	}
}

// ListHandler は GET /v1/users のハンドラーを返します。
func ListHandler(svc AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q listQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			apperrors.Respond(c, apperrors.InvalidInput("offset と limit は0以上の整数で指定してください"))
			return
		}

		list, err := svc.List(c.Request.Context(), q.Offset, q.Limit)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		users := make([]accountResponse, 0, len(list))
		for _, account := range list {
			users = append(users, toResponse(account))
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

// GetHandler は GET /v1/users/:id のハンドラーを返します。
func GetHandler(svc AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		account, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, toResponse(account))
	}
}

// UpdateHandler は PUT /v1/users/:id のハンドラーを返します。auth.RequireToken の後に置きます。
func UpdateHandler(svc AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := auth.CurrentAccount(c)
		if !ok {
			apperrors.Respond(c, apperrors.ErrUnauthorized)
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req accountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.InvalidInput("username, email, password を JSON で送ってください"))
			return
		}

		account, err := svc.Update(c.Request.Context(), actor, id, req.profile())
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, toResponse(account))
	}
}

// DeleteHandler は DELETE /v1/users/:id のハンドラーを返します。auth.RequireToken の後に置きます。
func DeleteHandler(svc AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := auth.CurrentAccount(c)
		if !ok {
			apperrors.Respond(c, apperrors.ErrUnauthorized)
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}

		if err := svc.Delete(c.Request.Context(), actor, id); err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.Respond(c, apperrors.InvalidInput("id は整数で指定してください"))
		return 0, false
	}
	return id, true
}
