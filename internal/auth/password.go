package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong は bcrypt が扱えない長さ（72バイト超）のパスワードを表します。
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// Hasher は bcrypt によるパスワードのハッシュ化と照合を行います。
type Hasher struct {
	cost int
}

// NewHasher は Hasher を作成します。範囲外のコストは bcrypt.DefaultCost に置き換えます。
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash はソルト付きのハッシュ値を返します。
func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify は password が hashed と一致するかを返します。
// 壊れたハッシュ値を含め、照合できない場合はすべて false です。
func (h *Hasher) Verify(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
