package pg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"menuqr.app/internal/auth"
	"menuqr.app/internal/tenant"
)

// Users implements auth.UserDirectory and auth.Registrar.
type Users struct {
	db *sql.DB
}

var (
	_ auth.UserDirectory = (*Users)(nil)
	_ auth.Registrar     = (*Users)(nil)
)

// NewUsers builds a Users store.
func NewUsers(db *sql.DB) *Users {
	return &Users{db: db}
}

const userColumns = `id, tenant_id, email, password_hash, first_name, last_name, role, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*auth.User, error) {
	var (
		u        auth.User
		tenantID sql.NullString
	)
	err := row.Scan(&u.ID, &tenantID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrNotFound
		}
		return nil, err
	}
	u.TenantID = tenantID.String
	return &u, nil
}

func (s *Users) FindByID(ctx context.Context, id string) (*auth.User, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+userColumns+` from users where id=$1`, id)
	return scanUser(row)
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+userColumns+` from users where email=$1`, email)
	return scanUser(row)
}

func (s *Users) Create(ctx context.Context, u *auth.User) error {
	_, err := s.db.ExecContext(ctx,
		`insert into users(id, tenant_id, email, password_hash, first_name, last_name, role, is_active)
		 values($1,$2,$3,$4,$5,$6,$7,$8)`,
		u.ID, nullable(u.TenantID), u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.IsActive,
	)
	if isUniqueViolation(err) {
		return auth.ErrEmailTaken
	}
	return err
}

// CreateTenantWithAdmin creates the tenant and its admin user in a single
// transaction. Registration never leaves one without the other.
func (s *Users) CreateTenantWithAdmin(ctx context.Context, t *tenant.Tenant, u *auth.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`insert into tenants(id, slug, business_name, business_type, email, whatsapp_number, qr_code_url, status)
		 values($1,$2,$3,$4,$5,$6,$7,$8)`,
		t.ID, t.Slug, t.BusinessName, t.BusinessType, t.Email, t.WhatsappNumber, t.QRCodeURL, t.Status,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`insert into users(id, tenant_id, email, password_hash, first_name, last_name, role, is_active)
		 values($1,$2,$3,$4,$5,$6,$7,$8)`,
		u.ID, u.TenantID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.IsActive,
	); err != nil {
		if isUniqueViolation(err) {
			return auth.ErrEmailTaken
		}
		return err
	}
	return tx.Commit()
}

// isUniqueViolation reports whether err is a postgres unique constraint
// violation. Two registrations racing on one email both pass the lookup;
// the users.email constraint decides, and the loser must still read as a
// duplicate, not a server fault.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
