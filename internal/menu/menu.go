package menu

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("menu: not found")
	ErrInvalidInput = errors.New("menu: invalid input")
)

// Category groups menu items. TenantID is set at creation and immutable.
type Category struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SortOrder   int       `json:"sort_order"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnerTenant implements the tenant-owned resource contract.
func (c *Category) OwnerTenant() string { return c.TenantID }

// Item is a single dish or product on a tenant's menu. Prices are stored in
// minor currency units. TenantID is set at creation and immutable.
type Item struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	CategoryID  string    `json:"category_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsAvailable bool      `json:"is_available"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnerTenant implements the tenant-owned resource contract.
func (i *Item) OwnerTenant() string { return i.TenantID }

// CategoryUpdate carries optional category changes; nil fields are kept.
type CategoryUpdate struct {
	Name        *string
	Description *string
	SortOrder   *int
	IsActive    *bool
}

// ItemUpdate carries optional item changes; nil fields are kept. The owning
// tenant is never updatable.
type ItemUpdate struct {
	CategoryID  *string
	Name        *string
	Description *string
	PriceCents  *int64
	ImageURL    *string
	IsAvailable *bool
	SortOrder   *int
}

// ItemFilter narrows item listings.
type ItemFilter struct {
	TenantID      string
	CategoryID    string
	AvailableOnly bool
}

// Store is the persistence interface for categories and menu items.
type Store interface {
	CreateCategory(ctx context.Context, c *Category) error
	ListCategories(ctx context.Context, tenantID string, activeOnly bool) ([]*Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	UpdateCategory(ctx context.Context, id string, upd CategoryUpdate) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateItem(ctx context.Context, i *Item) error
	ListItems(ctx context.Context, filter ItemFilter) ([]*Item, error)
	GetItem(ctx context.Context, id string) (*Item, error)
	UpdateItem(ctx context.Context, id string, upd ItemUpdate) (*Item, error)
	DeleteItem(ctx context.Context, id string) error
}
