package auth

import "context"

type actorContextKey struct{}
type scopeContextKey struct{}

// ContextWithActor attaches the authenticated actor to the context.
func ContextWithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the authenticated actor from the context.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}
	v, ok := ctx.Value(actorContextKey{}).(Actor)
	if !ok || v.UserID() == "" {
		return Actor{}, false
	}
	return v, true
}

// ContextWithScope stores the effective tenant scope for the request.
// Requests by super admins carry no scope: they pick the tenant per call.
func ContextWithScope(ctx context.Context, tenantID string) context.Context {
	if tenantID == "" {
		return ctx
	}
	return context.WithValue(ctx, scopeContextKey{}, tenantID)
}

// ScopeFromContext returns the tenant scope if one was injected.
func ScopeFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(scopeContextKey{}).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// ScopeForActor derives the tenant scope an actor's requests run under.
// Super admins get an empty, unconstrained scope. A non-super-admin without
// a tenant is malformed and gets no scope at all.
func ScopeForActor(actor Actor) (string, error) {
	if actor.IsSuperAdmin() {
		return "", nil
	}
	if id, ok := actor.Tenant(); ok {
		return id, nil
	}
	return "", ErrForbidden
}

// ValidateOwnership is the one-line guard handlers use to check that the
// context's actor may touch a resource owned by resourceTenantID.
func ValidateOwnership(ctx context.Context, resourceTenantID string) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}
	if !CanAccessTenant(actor, resourceTenantID) {
		return ErrForbidden
	}
	return nil
}
