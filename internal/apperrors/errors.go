// Package apperrors はAPIが返すドメインエラーと、そのHTTPレスポンスへの変換を提供します。
package apperrors

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// エラーコード
const (
	CodeDuplicateUsername  = "DUPLICATE_USERNAME"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidInput       = "INVALID_INPUT"
)

// Error はクライアントに返すコードとメッセージを持つエラーです。
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// 認証系のメッセージは原因を区別しません（アカウントの存在を推測させないため）。
var (
	ErrDuplicateUsername  = &Error{Code: CodeDuplicateUsername, Message: "Username already exists"}
	ErrDuplicateEmail     = &Error{Code: CodeDuplicateEmail, Message: "Email already exists"}
	ErrInvalidCredentials = &Error{Code: CodeInvalidCredentials, Message: "Incorrect email or password"}
	ErrUnauthorized       = &Error{Code: CodeUnauthorized, Message: "Could not validate credentials"}
	ErrForbidden          = &Error{Code: CodeForbidden, Message: "Not enough permission"}
	ErrAccountNotFound    = &Error{Code: CodeNotFound, Message: "User not found"}
	ErrTaskNotFound       = &Error{Code: CodeNotFound, Message: "Task not found."}
)

// InvalidInput は入力検証エラーを作成します。
func InvalidInput(message string) *Error {
	return &Error{Code: CodeInvalidInput, Message: message}
}

// StatusOf はエラーコードに対応するHTTPステータスを返します。
func StatusOf(code string) int {
	switch code {
	case CodeDuplicateUsername, CodeDuplicateEmail, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeInvalidCredentials, CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Respond は err をHTTPレスポンスに変換して書き込みます。
func Respond(c *gin.Context, err error) {
	var apiErr *Error
	switch {
	case errors.As(err, &apiErr):
		status := StatusOf(apiErr.Code)
		if status == http.StatusUnauthorized {
			c.Header("WWW-Authenticate", "Bearer")
		}
		c.AbortWithStatusJSON(status, gin.H{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		})
	case errors.Is(err, context.Canceled):
		c.AbortWithStatusJSON(http.StatusRequestTimeout, gin.H{
			"code":    "REQUEST_CANCELED",
			"message": "The request was canceled.",
		})
	default:
		log.Printf("internal error request_id=%s path=%s: %v", c.GetString("request_id"), c.FullPath(), err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "An internal server error occurred.",
		})
	}
}
