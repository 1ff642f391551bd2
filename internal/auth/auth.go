// auth проверяет access-токены внешнего auth-сервиса и извлекает Viewer.
// Выпуск/отзыв токенов — зона ответственности внешней системы; здесь
// только валидация подписи HS256 и стандартных клеймов.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-photo-feed/internal/config"
	"github.com/pribylovaa/go-photo-feed/internal/models"
)

var (
	// ErrInvalidToken — токен не прошёл проверку (подпись/клеймы/формат).
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired — срок действия токена истёк.
	ErrTokenExpired = errors.New("token expired")
)

type accessClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Validator проверяет access-токены по общему секрету с auth-сервисом.
type Validator struct {
	cfg config.AuthConfig
}

// NewValidator создаёт валидатор access-токенов.
func NewValidator(cfg config.AuthConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateAccessToken валидирует access-токен и возвращает Viewer.
func (v *Validator) ValidateAccessToken(tokenStr string) (*models.Viewer, error) {
	const op = "auth.ValidateAccessToken"

	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return []byte(v.cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(v.cfg.Issuer),
		jwt.WithAudience(v.cfg.Audience...),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return &models.Viewer{ID: uid, Email: claims.Email}, nil
}
