// Package model はアカウントとタスクのレコード型を定義します。
package model

import (
	"errors"
	"time"
)

// ストレージ層が返す番兵エラーです。
var (
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
)

// Account は登録済みユーザーを表します。PasswordHash は常にハッシュ値です。
type Account struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
