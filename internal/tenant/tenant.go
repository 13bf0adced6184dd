package tenant

import (
	"context"
	"errors"
	"time"
)

// Status is the lifecycle state of a tenant.
type Status string

const (
	StatusTrial     Status = "TRIAL"
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTrial, StatusActive, StatusSuspended, StatusCancelled:
		return true
	}
	return false
}

var (
	ErrNotFound     = errors.New("tenant: not found")
	ErrInvalidInput = errors.New("tenant: invalid input")
)

// Tenant is a business publishing a menu behind a QR code.
type Tenant struct {
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	BusinessName   string    `json:"business_name"`
	BusinessType   string    `json:"business_type,omitempty"`
	Email          string    `json:"email"`
	WhatsappNumber string    `json:"whatsapp_number,omitempty"`
	LogoURL        string    `json:"logo_url,omitempty"`
	PrimaryColor   string    `json:"primary_color,omitempty"`
	Currency       string    `json:"currency,omitempty"`
	QRCodeURL      string    `json:"qr_code_url,omitempty"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OwnerTenant makes the tenant record its own tenant-owned resource.
func (t *Tenant) OwnerTenant() string { return t.ID }

// PubliclyVisible reports whether the tenant's menu may be served to
// anonymous visitors. Suspended and cancelled tenants are hidden.
func (t *Tenant) PubliclyVisible() bool {
	return t.Status == StatusActive || t.Status == StatusTrial
}

// Update carries optional field changes; nil fields are left untouched.
// Slug, status and ownership are never updatable through this path.
type Update struct {
	BusinessName   *string
	BusinessType   *string
	WhatsappNumber *string
	PrimaryColor   *string
	LogoURL        *string
	QRCodeURL      *string
	Currency       *string
}

// Directory is the external tenant store consumed by the core.
type Directory interface {
	FindByID(ctx context.Context, id string) (*Tenant, error)
	FindBySlug(ctx context.Context, slug string) (*Tenant, error)
	Update(ctx context.Context, id string, upd Update) (*Tenant, error)
}
