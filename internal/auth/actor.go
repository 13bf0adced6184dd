package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Role is the coarse-grained privilege level carried by every user.
type Role string

const (
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleTenantAdmin Role = "TENANT_ADMIN"
	RoleStaff       Role = "STAFF"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleTenantAdmin, RoleStaff:
		return true
	}
	return false
}

// Actor is the authenticated caller. It is a closed variant: either a
// platform super admin with no fixed tenant, or an actor bound to exactly
// one tenant. Construct via SuperAdmin or TenantActor; the zero value is
// not a valid actor and fails every guard.
type Actor struct {
	userID   string
	email    string
	role     Role
	tenantID string
}

// SuperAdmin constructs a platform-wide actor. Super admins carry no tenant
// of their own; the tenant they operate on must be supplied per request.
func SuperAdmin(userID, email string) Actor {
	return Actor{
		userID: strings.TrimSpace(userID),
		email:  strings.TrimSpace(strings.ToLower(email)),
		role:   RoleSuperAdmin,
	}
}

// TenantActor constructs an actor bound to a single tenant. The binding is
// mandatory: a non-super-admin without a tenant cannot be represented.
func TenantActor(userID, email string, role Role, tenantID string) (Actor, error) {
	userID = strings.TrimSpace(userID)
	tenantID = strings.TrimSpace(tenantID)
	if userID == "" {
		return Actor{}, errors.New("auth: user id is required")
	}
	if role == RoleSuperAdmin {
		return Actor{}, errors.New("auth: super admin is not a tenant actor")
	}
	if !role.Valid() {
		return Actor{}, fmt.Errorf("auth: unknown role %q", role)
	}
	if tenantID == "" {
		return Actor{}, errors.New("auth: tenant id is required")
	}
	return Actor{
		userID:   userID,
		email:    strings.TrimSpace(strings.ToLower(email)),
		role:     role,
		tenantID: tenantID,
	}, nil
}

// UserID returns the stable identifier of the authenticated user.
func (a Actor) UserID() string { return a.userID }

// Email returns the email the actor authenticated with.
func (a Actor) Email() string { return a.email }

// Role returns the actor's role at token-issuance time.
func (a Actor) Role() Role { return a.role }

// IsSuperAdmin reports whether the actor operates platform-wide.
func (a Actor) IsSuperAdmin() bool { return a.role == RoleSuperAdmin }

// Tenant returns the tenant the actor is bound to. Super admins and the
// zero Actor have none.
func (a Actor) Tenant() (string, bool) {
	if a.tenantID == "" {
		return "", false
	}
	return a.tenantID, true
}

// User is a stored account. TenantID is empty only for super admins; it is
// set once at creation and never reassigned.
type User struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actor derives the caller identity a stored user would authenticate as.
func (u *User) Actor() (Actor, error) {
	if u.Role == RoleSuperAdmin {
		return SuperAdmin(u.ID, u.Email), nil
	}
	return TenantActor(u.ID, u.Email, u.Role, u.TenantID)
}
