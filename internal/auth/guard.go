package auth

// Resource is anything owned by a tenant: a menu item, a category, or the
// tenant record itself.
type Resource interface {
	OwnerTenant() string
}

// CanAccessTenant reports whether the actor may operate within the target
// tenant. Super admins may access every tenant; everyone else exactly their
// own. Total: never fails, only answers.
func CanAccessTenant(actor Actor, tenantID string) bool {
	if actor.IsSuperAdmin() {
		return true
	}
	own, ok := actor.Tenant()
	return ok && tenantID != "" && own == tenantID
}

// RequireRole reports whether the actor's role is one of allowed.
func RequireRole(actor Actor, allowed ...Role) bool {
	for _, role := range allowed {
		if actor.Role() == role {
			return true
		}
	}
	return false
}

// CanMutateResource reports whether the actor may mutate a tenant-owned
// resource. Equivalent to CanAccessTenant on the resource's owner.
func CanMutateResource(actor Actor, res Resource) bool {
	if res == nil {
		return false
	}
	return CanAccessTenant(actor, res.OwnerTenant())
}
