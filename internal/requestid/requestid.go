// Package requestid はリクエストごとの相関 ID を扱う gin ミドルウェアを提供します。
package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// Header はリクエスト ID を受け渡す HTTP ヘッダーです。
	Header = "X-Request-ID"
	// ContextKey は gin.Context に保存するキーです。
	ContextKey = "request_id"

	maxLength = 128
)

// Middleware はクライアントが送った X-Request-ID を引き継ぎ、無ければ UUID を採番します。
// 値はレスポンスヘッダーにも返します。
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" || len(id) > maxLength {
			id = uuid.NewString()
		}
		c.Set(ContextKey, id)
		c.Header(Header, id)
		c.Next()
	}
}

// Get は Middleware が設定したリクエスト ID を返します。
func Get(c *gin.Context) string {
	return c.GetString(ContextKey)
}
