package auth

import (
	"context"
	"errors"
	"testing"

	"menuqr.app/internal/tenant"
)

// fakeTenantDir serves a fixed set of tenants keyed by id and slug.
type fakeTenantDir struct {
	tenants map[string]*tenant.Tenant
}

func (d *fakeTenantDir) FindByID(_ context.Context, id string) (*tenant.Tenant, error) {
	if t, ok := d.tenants[id]; ok {
		return t, nil
	}
	return nil, tenant.ErrNotFound
}

func (d *fakeTenantDir) FindBySlug(_ context.Context, slug string) (*tenant.Tenant, error) {
	for _, t := range d.tenants {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, tenant.ErrNotFound
}

func (d *fakeTenantDir) Update(_ context.Context, id string, _ tenant.Update) (*tenant.Tenant, error) {
	if t, ok := d.tenants[id]; ok {
		return t, nil
	}
	return nil, tenant.ErrNotFound
}

func testResolver(t *testing.T) (*Resolver, *TokenService) {
	t.Helper()
	tokens := testTokens(t)
	dir := &fakeTenantDir{tenants: map[string]*tenant.Tenant{
		"tenant-active":    {ID: "tenant-active", Slug: "open-cafe", Status: tenant.StatusActive},
		"tenant-trial":     {ID: "tenant-trial", Slug: "new-cafe", Status: tenant.StatusTrial},
		"tenant-suspended": {ID: "tenant-suspended", Slug: "closed-cafe", Status: tenant.StatusSuspended},
		"tenant-cancelled": {ID: "tenant-cancelled", Slug: "gone-cafe", Status: tenant.StatusCancelled},
	}}
	return NewResolver(tokens, dir), tokens
}

func TestResolveBearerSuccess(t *testing.T) {
	resolver, tokens := testResolver(t)
	token, _, err := tokens.IssueAccessToken(mustTenantActor(t, RoleTenantAdmin, "tenant-active"))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	actor, err := resolver.ResolveBearer("Bearer " + token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id, ok := actor.Tenant(); !ok || id != "tenant-active" {
		t.Fatalf("expected tenant-active, got %q", id)
	}
}

func TestResolveBearerDenies(t *testing.T) {
	resolver, tokens := testResolver(t)
	valid, _, err := tokens.IssueAccessToken(mustTenantActor(t, RoleStaff, "tenant-active"))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"bare scheme", "Bearer   "},
		{"garbage token", "Bearer not.a.jwt"},
		{"token without scheme", valid},
	}
	for _, tc := range cases {
		if _, err := resolver.ResolveBearer(tc.header); !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("%s: expected ErrUnauthenticated, got %v", tc.name, err)
		}
	}
}

func TestResolveTenantBySlugAvailabilityGate(t *testing.T) {
	resolver, _ := testResolver(t)
	ctx := context.Background()

	for slug, want := range map[string]string{
		"open-cafe": "tenant-active",
		"new-cafe":  "tenant-trial",
	} {
		id, err := resolver.ResolveTenantBySlug(ctx, slug)
		if err != nil {
			t.Fatalf("slug %q: %v", slug, err)
		}
		if id != want {
			t.Fatalf("slug %q: expected %q, got %q", slug, want, id)
		}
	}

	// Hidden and unknown slugs answer identically.
	for _, slug := range []string{"closed-cafe", "gone-cafe", "no-such-cafe", ""} {
		if _, err := resolver.ResolveTenantBySlug(ctx, slug); !errors.Is(err, ErrNotFound) {
			t.Errorf("slug %q: expected ErrNotFound, got %v", slug, err)
		}
	}
}

func TestResolveTenantBySlugNormalizes(t *testing.T) {
	resolver, _ := testResolver(t)
	id, err := resolver.ResolveTenantBySlug(context.Background(), "  OPEN-CAFE ")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id != "tenant-active" {
		t.Fatalf("expected tenant-active, got %q", id)
	}
}
