package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"menuqr.app/internal/auth"
)

const authHeader = "Authorization"

var publicPaths = []string{
	"/",
	"/healthz",
	"/readyz",
	"/metrics",
	"/v1/info",
	"/v1/auth/register",
	"/v1/auth/login",
	"/v1/auth/refresh",
	"/v1/auth/logout",
}

var publicPrefixes = []string{
	"/v1/public/",
	"/uploads/",
}

// withAuth is the authentication and tenant-scoping pipeline stage. For
// every non-public path it verifies the bearer token, attaches the actor,
// and injects the actor's tenant scope. Super admins pass through without a
// scope; they name the tenant per request.
func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions || isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		actor, err := a.resolver.ResolveBearer(r.Header.Get(authHeader))
		if err != nil {
			handleCoreError(w, r, err)
			return
		}

		scope, err := auth.ScopeForActor(actor)
		if err != nil {
			writeError(w, r, http.StatusForbidden, "no tenant associated with user")
			return
		}

		ctx := auth.ContextWithActor(r.Context(), actor)
		ctx = auth.ContextWithScope(ctx, scope)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// requireActor extracts the authenticated actor or writes the denial.
func requireActor(w http.ResponseWriter, r *http.Request) (auth.Actor, bool) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		handleCoreError(w, r, auth.ErrUnauthenticated)
		return auth.Actor{}, false
	}
	return actor, true
}

// requireRole enforces a role check inline in a handler.
func requireRole(w http.ResponseWriter, r *http.Request, roles ...auth.Role) (auth.Actor, bool) {
	actor, ok := requireActor(w, r)
	if !ok {
		return auth.Actor{}, false
	}
	if !auth.RequireRole(actor, roles...) {
		writeError(w, r, http.StatusForbidden, "access denied")
		return auth.Actor{}, false
	}
	return actor, true
}

// requireTenantAccess enforces the ownership check inline in a handler.
func requireTenantAccess(w http.ResponseWriter, r *http.Request, tenantID string) bool {
	if err := auth.ValidateOwnership(r.Context(), tenantID); err != nil {
		handleCoreError(w, r, err)
		return false
	}
	return true
}

// effectiveTenant resolves the tenant a request operates on. Scoped actors
// are pinned to their own tenant; super admins must name one explicitly via
// the tenant_id query parameter.
func effectiveTenant(r *http.Request) (string, error) {
	if scope, ok := auth.ScopeFromContext(r.Context()); ok {
		return scope, nil
	}
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		return "", auth.ErrUnauthenticated
	}
	if actor.IsSuperAdmin() {
		if id := strings.TrimSpace(r.URL.Query().Get("tenant_id")); id != "" {
			return id, nil
		}
		return "", fmt.Errorf("%w: tenant_id query parameter is required", auth.ErrInvalidInput)
	}
	return "", auth.ErrForbidden
}
