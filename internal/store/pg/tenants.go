package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"menuqr.app/internal/tenant"
)

// Tenants implements tenant.Directory.
type Tenants struct {
	db *sql.DB
}

var _ tenant.Directory = (*Tenants)(nil)

// NewTenants builds a Tenants store.
func NewTenants(db *sql.DB) *Tenants {
	return &Tenants{db: db}
}

const tenantColumns = `id, slug, business_name, business_type, email, whatsapp_number,
	logo_url, primary_color, currency, qr_code_url, status, created_at, updated_at`

func scanTenant(row interface{ Scan(dest ...any) error }) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := row.Scan(&t.ID, &t.Slug, &t.BusinessName, &t.BusinessType, &t.Email, &t.WhatsappNumber,
		&t.LogoURL, &t.PrimaryColor, &t.Currency, &t.QRCodeURL, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tenant.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *Tenants) FindByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+tenantColumns+` from tenants where id=$1`, id)
	return scanTenant(row)
}

func (s *Tenants) FindBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+tenantColumns+` from tenants where slug=$1`, slug)
	return scanTenant(row)
}

func (s *Tenants) Update(ctx context.Context, id string, upd tenant.Update) (*tenant.Tenant, error) {
	sets := []string{"updated_at = now()"}
	args := []any{id}
	add := func(column string, v *string) {
		if v != nil {
			args = append(args, *v)
			sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}
	add("business_name", upd.BusinessName)
	add("business_type", upd.BusinessType)
	add("whatsapp_number", upd.WhatsappNumber)
	add("primary_color", upd.PrimaryColor)
	add("logo_url", upd.LogoURL)
	add("qr_code_url", upd.QRCodeURL)
	add("currency", upd.Currency)

	row := s.db.QueryRowContext(ctx,
		`update tenants set `+strings.Join(sets, ", ")+` where id=$1 returning `+tenantColumns, args...)
	return scanTenant(row)
}
