package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	defaultIssuer     = "menuqr"
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// AccessClaims is the snapshot of an actor's identity embedded in an access
// token. Role/tenant changes server-side do not affect tokens already issued.
type AccessClaims struct {
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	TenantID  string `json:"tenant_id,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// RefreshClaims carries the user id only. Roles and tenant binding are
// re-derived from stored state at exchange time, so a refresh token can
// never prolong stale privileges.
type RefreshClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies access and refresh tokens with two
// independent HS256 secrets. It holds only immutable configuration and is
// safe for concurrent use.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	now           func() time.Time
}

// TokenOption configures TokenService.
type TokenOption func(*TokenService)

// WithAccessTTL overrides the access token lifetime.
func WithAccessTTL(ttl time.Duration) TokenOption {
	return func(s *TokenService) {
		if ttl > 0 {
			s.accessTTL = ttl
		}
	}
}

// WithRefreshTTL overrides the refresh token lifetime.
func WithRefreshTTL(ttl time.Duration) TokenOption {
	return func(s *TokenService) {
		if ttl > 0 {
			s.refreshTTL = ttl
		}
	}
}

// WithIssuer overrides the issuer claim.
func WithIssuer(issuer string) TokenOption {
	return func(s *TokenService) {
		if issuer = strings.TrimSpace(issuer); issuer != "" {
			s.issuer = issuer
		}
	}
}

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) TokenOption {
	return func(s *TokenService) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewTokenService constructs a TokenService. Both secrets are mandatory and
// must differ; a configuration error here is fatal at process startup.
func NewTokenService(accessSecret, refreshSecret string, opts ...TokenOption) (*TokenService, error) {
	accessSecret = strings.TrimSpace(accessSecret)
	refreshSecret = strings.TrimSpace(refreshSecret)
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("auth: both access and refresh secrets are required")
	}
	if len(accessSecret) == len(refreshSecret) &&
		subtle.ConstantTimeCompare([]byte(accessSecret), []byte(refreshSecret)) == 1 {
		return nil, errors.New("auth: access and refresh secrets must differ")
	}
	s := &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     defaultAccessTTL,
		refreshTTL:    defaultRefreshTTL,
		issuer:        defaultIssuer,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AccessTTL returns the configured access token lifetime.
func (s *TokenService) AccessTTL() time.Duration { return s.accessTTL }

// RefreshTTL returns the configured refresh token lifetime.
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

// IssueAccessToken signs a short-lived token asserting the actor's identity,
// role and tenant as of now.
func (s *TokenService) IssueAccessToken(actor Actor) (string, time.Time, error) {
	if actor.UserID() == "" {
		return "", time.Time{}, errors.New("auth: actor has no user id")
	}
	now := s.now().UTC()
	exp := now.Add(s.accessTTL)
	tenantID, _ := actor.Tenant()
	claims := AccessClaims{
		Email:     actor.Email(),
		Role:      actor.Role(),
		TenantID:  tenantID,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   actor.UserID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.accessSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, exp, nil
}

// IssueRefreshToken signs a long-lived token carrying the user id only.
func (s *TokenService) IssueRefreshToken(userID string) (string, time.Time, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", time.Time{}, errors.New("auth: user id is required")
	}
	now := s.now().UTC()
	exp := now.Add(s.refreshTTL)
	claims := RefreshClaims{
		TokenType: tokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.refreshSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return signed, exp, nil
}

// VerifyAccessToken validates signature, expiry and shape, and returns the
// actor the token asserts. A refresh token never verifies here: the secrets
// are distinct and the token_type claim is checked on top.
func (s *TokenService) VerifyAccessToken(token string) (Actor, error) {
	claims := &AccessClaims{}
	if err := s.parse(token, claims, s.accessSecret); err != nil {
		return Actor{}, ErrInvalidToken
	}
	if claims.TokenType != tokenTypeAccess {
		return Actor{}, ErrInvalidToken
	}
	actor, err := actorFromClaims(claims)
	if err != nil {
		return Actor{}, ErrInvalidToken
	}
	return actor, nil
}

// VerifyRefreshToken validates a refresh token and returns the user id it
// was issued for. Symmetric to VerifyAccessToken.
func (s *TokenService) VerifyRefreshToken(token string) (string, error) {
	claims := &RefreshClaims{}
	if err := s.parse(token, claims, s.refreshSecret); err != nil {
		return "", ErrInvalidToken
	}
	if claims.TokenType != tokenTypeRefresh {
		return "", ErrInvalidToken
	}
	sub := strings.TrimSpace(claims.Subject)
	if sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

func (s *TokenService) parse(token string, claims jwt.Claims, secret []byte) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidToken
	}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return secret, nil
	},
		jwt.WithTimeFunc(s.now),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}

func actorFromClaims(claims *AccessClaims) (Actor, error) {
	sub := strings.TrimSpace(claims.Subject)
	if sub == "" {
		return Actor{}, errors.New("auth: subject missing")
	}
	if claims.Role == RoleSuperAdmin {
		return SuperAdmin(sub, claims.Email), nil
	}
	return TenantActor(sub, claims.Email, claims.Role, claims.TenantID)
}
