// Package accounts はアカウントの登録・参照・更新・削除を提供します。
// 更新と削除は認証済みアカウント自身に対してのみ許可されます。
package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/todo-api/internal/apperrors"
	"github.com/yourusername/todo-api/internal/auth"
	"github.com/yourusername/todo-api/internal/model"
)

// Repository はアカウントの永続化を担います。
type Repository interface {
	GetAccountByID(ctx context.Context, id int64) (model.Account, error)
	FindAccountByUsernameOrEmail(ctx context.Context, username, email string) (model.Account, error)
	ListAccounts(ctx context.Context, offset, limit int) ([]model.Account, error)
	InsertAccount(ctx context.Context, account model.Account) (model.Account, error)
	UpdateAccount(ctx context.Context, account model.Account) (model.Account, error)
	DeleteAccount(ctx context.Context, id int64) error
}

// PasswordHasher は平文パスワードをハッシュ化します。
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Profile は登録・更新時に受け取るアカウント情報です。
type Profile struct {
	Username string
	Email    string
	Password string
}

// Service はアカウント操作のユースケースです。
type Service struct {
	repo   Repository
	hasher PasswordHasher
}

// NewService は Service を作成します。
func NewService(repo Repository, hasher PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// Register はアカウントを作成します。ユーザー名の重複をメールアドレスより先に判定します。
func (s *Service) Register(ctx context.Context, profile Profile) (model.Account, error) {
	existing, err := s.repo.FindAccountByUsernameOrEmail(ctx, profile.Username, profile.Email)
	switch {
	case err == nil:
		if existing.Username == profile.Username {
			return model.Account{}, apperrors.ErrDuplicateUsername
		}
		return model.Account{}, apperrors.ErrDuplicateEmail
	case !errors.Is(err, model.ErrNotFound):
		return model.Account{}, fmt.Errorf("check existing account: %w", err)
	}

	hashed, err := s.hashPassword(profile.Password)
	if err != nil {
		return model.Account{}, err
	}

	account, err := s.repo.InsertAccount(ctx, model.Account{
		Username:     profile.Username,
		Email:        profile.Email,
		PasswordHash: hashed,
	})
	if err != nil {
		return model.Account{}, translateWriteError(err)
	}
	return account, nil
}

// List はアカウントを ID 順に返します。
func (s *Service) List(ctx context.Context, offset, limit int) ([]model.Account, error) {
	return s.repo.ListAccounts(ctx, offset, limit)
}

// Get は ID でアカウントを取得します。
func (s *Service) Get(ctx context.Context, id int64) (model.Account, error) {
	account, err := s.repo.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Account{}, apperrors.ErrAccountNotFound
		}
		return model.Account{}, err
	}
	return account, nil
}

// Update は actor 自身のプロフィールを置き換えます。パスワードは再ハッシュされます。
func (s *Service) Update(ctx context.Context, actor model.Account, targetID int64, profile Profile) (model.Account, error) {
	if actor.ID != targetID {
		return model.Account{}, apperrors.ErrForbidden
	}

	hashed, err := s.hashPassword(profile.Password)
	if err != nil {
		return model.Account{}, err
	}

	updated, err := s.repo.UpdateAccount(ctx, model.Account{
		ID:           actor.ID,
		Username:     profile.Username,
		Email:        profile.Email,
		PasswordHash: hashed,
	})
	if err != nil {
		return model.Account{}, translateWriteError(err)
	}
	return updated, nil
}

// Delete は actor 自身のアカウントと所有タスクを削除します。
func (s *Service) Delete(ctx context.Context, actor model.Account, targetID int64) error {
	if actor.ID != targetID {
		return apperrors.ErrForbidden
	}
	if err := s.repo.DeleteAccount(ctx, actor.ID); err != nil {
		return translateWriteError(err)
	}
	return nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return "", apperrors.InvalidInput("password must be at most 72 bytes")
		}
		return "", err
	}
	return hashed, nil
}

func translateWriteError(err error) error {
	switch {
	case errors.Is(err, model.ErrUsernameTaken):
		return apperrors.ErrDuplicateUsername
	case errors.Is(err, model.ErrEmailTaken):
		return apperrors.ErrDuplicateEmail
	case errors.Is(err, model.ErrNotFound):
		return apperrors.ErrAccountNotFound
	default:
		return err
	}
}
