package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Sidnaik04/YT-Assistant/internal/config"
)

// Decode outcomes. An expired-but-authentic token must stay distinguishable
// from a forged or malformed one; callers map them to different responses.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// TokenType separates access tokens from refresh tokens so a refresh token
// can never pass as a bearer access token.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims describes the JWT payload.
type Claims struct {
	UserID    int64     `json:"user_id"`
	TokenType TokenType `json:"typ"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed tokens. Secret and algorithm come
// from process-wide configuration and never change during the process lifetime.
type TokenManager struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a manager from auth configuration.
func NewTokenManager(cfg config.AuthConfig) (*TokenManager, error) {
	method := jwt.GetSigningMethod(cfg.JWTAlgorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", cfg.JWTAlgorithm)
	}

	accessTTL := cfg.AccessTokenTTL()
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	refreshTTL := cfg.RefreshTokenTTL()
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}

	return &TokenManager{
		secret:     []byte(cfg.JWTSecret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// IssueAccess mints a short-lived access token with a unique token id.
func (tm *TokenManager) IssueAccess(userID int64) (string, *Claims, error) {
	return tm.issue(userID, TokenTypeAccess, tm.accessTTL)
}

// IssueRefresh mints a longer-lived refresh token. Refresh tokens carry
// their own token id so logout and rotation can revoke them individually.
func (tm *TokenManager) IssueRefresh(userID int64) (string, *Claims, error) {
	return tm.issue(userID, TokenTypeRefresh, tm.refreshTTL)
}

func (tm *TokenManager) issue(userID int64, typ TokenType, ttl time.Duration) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    userID,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(tm.method, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", nil, err
	}
	return tokenString, claims, nil
}

// Decode verifies a token string and returns its claims. Exactly one of
// three outcomes: valid claims, ErrTokenExpired (authentic but past its
// expiry) or ErrTokenInvalid (bad signature, wrong algorithm, malformed).
func (tm *TokenManager) Decode(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	}, jwt.WithValidMethods([]string{tm.method.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
