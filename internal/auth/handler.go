package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/todo-api/internal/apperrors"
)

// username にはメールアドレスを指定します（OAuth2 パスワードフローのフォーム形式）。
type loginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Login は POST /v1/auth/token のハンドラーです。
func (m *Manager) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.Respond(c, apperrors.InvalidInput("username と password を指定してください"))
		return
	}

	token, err := m.IssueToken(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, token)
}
