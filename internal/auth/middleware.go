package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/todo-api/internal/apperrors"
	"github.com/yourusername/todo-api/internal/model"
)

// ContextAccountKey は、ハンドラー間で認証済みアカウントを共有するためのキーです。
const ContextAccountKey = "auth.account"

// RequireToken は Authorization ヘッダーの Bearer トークンを検証するミドルウェアを返します。
func (m *Manager) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apperrors.Respond(c, apperrors.ErrUnauthorized)
			return
		}

		account, err := m.Resolve(c.Request.Context(), token)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		c.Set(ContextAccountKey, account)
		c.Next()
	}
}

// CurrentAccount は RequireToken が設定したアカウントを返します。
func CurrentAccount(c *gin.Context) (model.Account, bool) {
	value, ok := c.Get(ContextAccountKey)
	if !ok {
		return model.Account{}, false
	}
	account, ok := value.(model.Account)
	return account, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
