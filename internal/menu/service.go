package menu

import (
	"context"
	"fmt"
	"strings"

	"menuqr.app/internal/ids"
)

// Service validates menu mutations and assigns identifiers. Tenant scoping
// is the caller's responsibility: every method takes an explicit tenant or
// operates on a resource whose owner the handler has already checked.
type Service struct {
	store Store
}

// NewService builds a menu Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateCategory adds a category to the tenant's menu.
func (s *Service) CreateCategory(ctx context.Context, tenantID string, c Category) (*Category, error) {
	tenantID = strings.TrimSpace(tenantID)
	c.Name = strings.TrimSpace(c.Name)
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	if c.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}
	c.ID = ids.New()
	c.TenantID = tenantID
	c.IsActive = true
	if err := s.store.CreateCategory(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCategories returns the tenant's categories ordered by sort order.
func (s *Service) ListCategories(ctx context.Context, tenantID string, activeOnly bool) ([]*Category, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	return s.store.ListCategories(ctx, tenantID, activeOnly)
}

// GetCategory loads one category.
func (s *Service) GetCategory(ctx context.Context, id string) (*Category, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrNotFound
	}
	return s.store.GetCategory(ctx, id)
}

// UpdateCategory applies a partial update.
func (s *Service) UpdateCategory(ctx context.Context, id string, upd CategoryUpdate) (*Category, error) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, fmt.Errorf("%w: category name cannot be empty", ErrInvalidInput)
	}
	return s.store.UpdateCategory(ctx, id, upd)
}

// DeleteCategory removes a category; its items keep their tenant but lose
// the category link at the store layer.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrNotFound
	}
	return s.store.DeleteCategory(ctx, id)
}

// CreateItem adds an item to the tenant's menu.
func (s *Service) CreateItem(ctx context.Context, tenantID string, i Item) (*Item, error) {
	tenantID = strings.TrimSpace(tenantID)
	i.Name = strings.TrimSpace(i.Name)
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	if i.Name == "" {
		return nil, fmt.Errorf("%w: item name is required", ErrInvalidInput)
	}
	if i.PriceCents < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	if i.CategoryID != "" {
		cat, err := s.store.GetCategory(ctx, i.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat.TenantID != tenantID {
			return nil, fmt.Errorf("%w: category belongs to another tenant", ErrInvalidInput)
		}
	}
	i.ID = ids.New()
	i.TenantID = tenantID
	i.IsAvailable = true
	if err := s.store.CreateItem(ctx, &i); err != nil {
		return nil, err
	}
	return &i, nil
}

// ListItems returns menu items matching the filter.
func (s *Service) ListItems(ctx context.Context, filter ItemFilter) ([]*Item, error) {
	if strings.TrimSpace(filter.TenantID) == "" {
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	return s.store.ListItems(ctx, filter)
}

// GetItem loads one item.
func (s *Service) GetItem(ctx context.Context, id string) (*Item, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrNotFound
	}
	return s.store.GetItem(ctx, id)
}

// UpdateItem applies a partial update.
func (s *Service) UpdateItem(ctx context.Context, id string, upd ItemUpdate) (*Item, error) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, fmt.Errorf("%w: item name cannot be empty", ErrInvalidInput)
	}
	if upd.PriceCents != nil && *upd.PriceCents < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	if upd.CategoryID != nil && *upd.CategoryID != "" {
		item, err := s.store.GetItem(ctx, id)
		if err != nil {
			return nil, err
		}
		cat, err := s.store.GetCategory(ctx, *upd.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat.TenantID != item.TenantID {
			return nil, fmt.Errorf("%w: category belongs to another tenant", ErrInvalidInput)
		}
	}
	return s.store.UpdateItem(ctx, id, upd)
}

// DeleteItem removes an item.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrNotFound
	}
	return s.store.DeleteItem(ctx, id)
}
