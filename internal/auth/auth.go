package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoToken - токен отсутствует
var ErrNoToken = errors.New("токен отсутствует")

// Claims - поля JWT токена, которые выдает сервер магазина
type Claims struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	UserID   int    `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// ParseClaims - чтение полей токена без проверки подписи.
// Подпись проверяет только сервер, клиенту ключ недоступен.
func ParseClaims(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ExpiresAt - время истечения токена; false, если токен не JWT или срок не указан
func ExpiresAt(tokenString string) (time.Time, bool) {
	claims, err := ParseClaims(tokenString)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// BearerHeader - значение заголовка Authorization
func BearerHeader(token string) string {
	return "Bearer " + token
}
