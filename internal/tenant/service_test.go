package tenant

import (
	"context"
	"errors"
	"testing"
)

type memDir struct {
	byID map[string]*Tenant
}

func (d *memDir) FindByID(_ context.Context, id string) (*Tenant, error) {
	if t, ok := d.byID[id]; ok {
		return t, nil
	}
	return nil, ErrNotFound
}

func (d *memDir) FindBySlug(_ context.Context, slug string) (*Tenant, error) {
	for _, t := range d.byID {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, ErrNotFound
}

func (d *memDir) Update(_ context.Context, id string, upd Update) (*Tenant, error) {
	t, ok := d.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.BusinessName != nil {
		t.BusinessName = *upd.BusinessName
	}
	if upd.LogoURL != nil {
		t.LogoURL = *upd.LogoURL
	}
	if upd.QRCodeURL != nil {
		t.QRCodeURL = *upd.QRCodeURL
	}
	return t, nil
}

func testDir() *memDir {
	return &memDir{byID: map[string]*Tenant{
		"t-active":    {ID: "t-active", Slug: "open-cafe", BusinessName: "Open Cafe", Status: StatusActive},
		"t-trial":     {ID: "t-trial", Slug: "new-cafe", BusinessName: "New Cafe", Status: StatusTrial},
		"t-suspended": {ID: "t-suspended", Slug: "closed-cafe", BusinessName: "Closed Cafe", Status: StatusSuspended},
		"t-cancelled": {ID: "t-cancelled", Slug: "gone-cafe", BusinessName: "Gone Cafe", Status: StatusCancelled},
	}}
}

func TestPublicBySlugGatesOnStatus(t *testing.T) {
	svc := NewService(testDir())
	ctx := context.Background()

	for _, slug := range []string{"open-cafe", "new-cafe"} {
		if _, err := svc.PublicBySlug(ctx, slug); err != nil {
			t.Fatalf("slug %q: %v", slug, err)
		}
	}
	for _, slug := range []string{"closed-cafe", "gone-cafe", "unknown-cafe", "Bad Slug"} {
		if _, err := svc.PublicBySlug(ctx, slug); !errors.Is(err, ErrNotFound) {
			t.Errorf("slug %q: expected ErrNotFound, got %v", slug, err)
		}
	}
}

func TestUpdateValidatesBusinessName(t *testing.T) {
	svc := NewService(testDir())
	empty := "   "
	if _, err := svc.Update(context.Background(), "t-active", Update{BusinessName: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	name := "Renamed Cafe"
	got, err := svc.Update(context.Background(), "t-active", Update{BusinessName: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.BusinessName != "Renamed Cafe" {
		t.Fatalf("expected rename applied, got %q", got.BusinessName)
	}
}

func TestSetLogoAndQRCode(t *testing.T) {
	svc := NewService(testDir())

	got, err := svc.SetLogo(context.Background(), "t-active", "/uploads/logos/t-active.png")
	if err != nil {
		t.Fatalf("set logo: %v", err)
	}
	if got.LogoURL == "" {
		t.Fatal("expected logo url set")
	}
	if _, err := svc.SetLogo(context.Background(), "t-active", "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank logo, got %v", err)
	}

	got, err = svc.SetQRCode(context.Background(), "t-active", "/uploads/qr-codes/t-active.png")
	if err != nil {
		t.Fatalf("set qr: %v", err)
	}
	if got.QRCodeURL == "" {
		t.Fatal("expected qr url set")
	}
}

func TestGetRequiresID(t *testing.T) {
	svc := NewService(testDir())
	if _, err := svc.Get(context.Background(), " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
