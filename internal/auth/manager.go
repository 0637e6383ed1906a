// Package auth は認証・認可機能を提供します。
//
// ログイン時にパスワードを照合してアクセストークンを発行し、保護されたリクエストでは
// Bearer トークンから操作主体のアカウントを解決します。
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/todo-api/internal/apperrors"
	"github.com/yourusername/todo-api/internal/model"
)

// TokenTypeBearer はログインレスポンスの token_type です。
const TokenTypeBearer = "bearer"

// AccountFinder はメールアドレスでアカウントを検索します。
type AccountFinder interface {
	GetAccountByEmail(ctx context.Context, email string) (model.Account, error)
}

// PasswordVerifier は平文パスワードとハッシュ値を照合します。
type PasswordVerifier interface {
	Verify(password, hashed string) bool
}

// TokenCodec はアクセストークンの発行と検証を行います。
type TokenCodec interface {
	Issue(subject string) (string, error)
	Verify(token string) (string, error)
}

// AccessToken はログイン成功時のレスポンスです。
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Manager は認証処理をまとめた構造体です。リクエスト間で状態を持ちません。
type Manager struct {
	accounts  AccountFinder
	passwords PasswordVerifier
	tokens    TokenCodec
}

// NewManager は認証マネージャーを作成します。
func NewManager(accounts AccountFinder, passwords PasswordVerifier, tokens TokenCodec) *Manager {
	return &Manager{
		accounts:  accounts,
		passwords: passwords,
		tokens:    tokens,
	}
}

// Authenticate はメールアドレスとパスワードを照合します。
// アカウントが存在しない場合とパスワードが違う場合は同じエラーを返します。
func (m *Manager) Authenticate(ctx context.Context, email, password string) (model.Account, error) {
	account, err := m.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Account{}, apperrors.ErrInvalidCredentials
		}
		return model.Account{}, fmt.Errorf("lookup account: %w", err)
	}
	if !m.passwords.Verify(password, account.PasswordHash) {
		return model.Account{}, apperrors.ErrInvalidCredentials
	}
	return account, nil
}

// IssueToken は認証に成功した場合にアクセストークンを発行します。
func (m *Manager) IssueToken(ctx context.Context, email, password string) (AccessToken, error) {
	account, err := m.Authenticate(ctx, email, password)
	if err != nil {
		return AccessToken{}, err
	}
	token, err := m.tokens.Issue(account.Email)
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{AccessToken: token, TokenType: TokenTypeBearer}, nil
}

// Resolve はトークンから操作主体のアカウントを解決します。
// 不正・期限切れ・アカウント削除済みはいずれも ErrUnauthorized です。
func (m *Manager) Resolve(ctx context.Context, token string) (model.Account, error) {
	email, err := m.tokens.Verify(token)
	if err != nil {
		return model.Account{}, apperrors.ErrUnauthorized
	}

	account, err := m.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Account{}, apperrors.ErrUnauthorized
		}
		return model.Account{}, fmt.Errorf("lookup account: %w", err)
	}
	return account, nil
}
