package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims are the parts of the employee service token the console cares about.
type Claims struct {
	Role       string `json:"role,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenInspector reads hand-off tokens. With a secret it verifies HS256 signatures;
// without one it trusts the employee service to reject bad tokens and only reads the
// claims it can find, accepting opaque tokens as they are.
type TokenInspector struct {
	Secret []byte
}

func NewTokenInspector(secret string) *TokenInspector {
	if secret == "" {
		return &TokenInspector{}
	}
	return &TokenInspector{Secret: []byte(secret)}
}

func (t *TokenInspector) Verifies() bool {
	return len(t.Secret) > 0
}

// Inspect returns the token claims, or nil claims for an opaque token when no
// secret is configured.
func (t *TokenInspector) Inspect(tokenString string) (*Claims, error) {
	if !t.Verifies() {
		claims := &Claims{}
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return nil, nil
		}
		if claims.ExpiresAt != nil && !time.Now().Before(claims.ExpiresAt.Time) {
			return nil, ErrTokenExpired
		}
		return claims, nil
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrTokenInvalid
}

// Mint signs a token for local development. It needs a secret.
func (t *TokenInspector) Mint(subject string, role Role, employeeID string, ttl time.Duration) (string, error) {
	if !t.Verifies() {
		return "", errors.New("cannot mint tokens without a jwt secret")
	}

	now := time.Now()
	claims := &Claims{
		Role:       string(role),
		EmployeeID: employeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.Secret)
}
