package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// トークン検証の失敗種別です。
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// TokenConfig はアクセストークンの署名設定です。
type TokenConfig struct {
	SecretKey string
	Algorithm string
	ExpiresIn time.Duration
	Now       func() time.Time
}

// TokenService は署名付きアクセストークンの発行と検証を行います。
// 発行済みトークンはサーバー側に保存しません。
type TokenService struct {
	key       []byte
	method    jwt.SigningMethod
	expiresIn time.Duration
	now       func() time.Time
}

// NewTokenService は TokenService を作成します。
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, errors.New("token secret key is required")
	}
	method, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm: %q", cfg.Algorithm)
	}
	if cfg.ExpiresIn <= 0 {
		return nil, errors.New("token lifetime must be positive")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &TokenService{
		key:       []byte(cfg.SecretKey),
		method:    method,
		expiresIn: cfg.ExpiresIn,
		now:       cfg.Now,
	}, nil
}

// Issue は subject を埋め込んだトークンを発行します。
// 有効期限は秒単位に切り捨てた発行時刻 + 有効期間です。
func (s *TokenService) Issue(subject string) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", errors.New("token subject is required")
	}
	issuedAt := s.now().UTC().Truncate(time.Second)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.expiresIn)),
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// Verify は署名と有効期限を検証し、埋め込まれた subject を返します。
func (s *TokenService) Verify(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidToken
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if strings.TrimSpace(claims.Subject) == "" || claims.ExpiresAt == nil {
		return "", ErrInvalidToken
	}
	if !claims.ExpiresAt.Time.After(s.now()) {
		return "", ErrExpiredToken
	}
	return claims.Subject, nil
}
