package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"menuqr.app/internal/tenant"
)

const bearerPrefix = "Bearer "

// Resolver turns inbound credentials into actor and tenant context: a bearer
// token into an Actor, a public slug into a tenant scope.
type Resolver struct {
	tokens  *TokenService
	tenants tenant.Directory
}

// NewResolver builds a Resolver.
func NewResolver(tokens *TokenService, tenants tenant.Directory) *Resolver {
	return &Resolver{tokens: tokens, tenants: tenants}
}

// ResolveBearer authenticates an Authorization header value. A missing or
// malformed header and an invalid or expired token are distinct causes but
// share one external shape: ErrUnauthenticated.
func (r *Resolver) ResolveBearer(header string) (Actor, error) {
	token, err := bearerToken(header)
	if err != nil {
		return Actor{}, fmt.Errorf("missing credential: %w", ErrUnauthenticated)
	}
	actor, err := r.tokens.VerifyAccessToken(token)
	if err != nil {
		return Actor{}, fmt.Errorf("invalid credential: %w", ErrUnauthenticated)
	}
	return actor, nil
}

// ResolveTenantBySlug looks up the tenant scope for an anonymous request.
// Absent, suspended and cancelled tenants yield the same ErrNotFound; the
// availability gate must not act as a lifecycle oracle.
func (r *Resolver) ResolveTenantBySlug(ctx context.Context, slug string) (string, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return "", ErrNotFound
	}
	t, err := r.tenants.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if !t.PubliclyVisible() {
		return "", ErrNotFound
	}
	return t.ID, nil
}

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}
