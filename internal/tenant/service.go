package tenant

import (
	"context"
	"fmt"
	"strings"
)

// Service wraps the directory with validation and the public availability
// gate. Authorization happens at the handler layer; the service assumes the
// caller has already been scoped.
type Service struct {
	dir Directory
}

// NewService builds a tenant Service.
func NewService(dir Directory) *Service {
	return &Service{dir: dir}
}

// Get loads a tenant by id.
func (s *Service) Get(ctx context.Context, id string) (*Tenant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	return s.dir.FindByID(ctx, id)
}

// PublicBySlug resolves a tenant for the anonymous menu page. Tenants that
// are absent, suspended or cancelled are all reported as not found so the
// lifecycle state never leaks to the public.
func (s *Service) PublicBySlug(ctx context.Context, slug string) (*Tenant, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if !ValidSlug(slug) {
		return nil, ErrNotFound
	}
	t, err := s.dir.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !t.PubliclyVisible() {
		return nil, ErrNotFound
	}
	return t, nil
}

// Update applies a partial update to a tenant's profile.
func (s *Service) Update(ctx context.Context, id string, upd Update) (*Tenant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	if upd.BusinessName != nil && strings.TrimSpace(*upd.BusinessName) == "" {
		return nil, fmt.Errorf("%w: business name cannot be empty", ErrInvalidInput)
	}
	return s.dir.Update(ctx, id, upd)
}

// SetLogo records the uploaded logo location for a tenant.
func (s *Service) SetLogo(ctx context.Context, id, logoURL string) (*Tenant, error) {
	logoURL = strings.TrimSpace(logoURL)
	if logoURL == "" {
		return nil, fmt.Errorf("%w: logo url is required", ErrInvalidInput)
	}
	return s.dir.Update(ctx, id, Update{LogoURL: &logoURL})
}

// SetQRCode records the rendered QR code location for a tenant.
func (s *Service) SetQRCode(ctx context.Context, id, qrURL string) (*Tenant, error) {
	qrURL = strings.TrimSpace(qrURL)
	if qrURL == "" {
		return nil, fmt.Errorf("%w: qr code url is required", ErrInvalidInput)
	}
	return s.dir.Update(ctx, id, Update{QRCodeURL: &qrURL})
}
