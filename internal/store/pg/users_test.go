package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"menuqr.app/internal/auth"
	"menuqr.app/internal/tenant"
)

var userRowColumns = []string{
	"id", "tenant_id", "email", "password_hash", "first_name", "last_name",
	"role", "is_active", "created_at", "updated_at",
}

func TestUsersFindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("select (.+) from users where email=").
		WithArgs("owner@cafe.example").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("user-1", "tenant-1", "owner@cafe.example", "$2a$hash", "Ada", "L", "TENANT_ADMIN", true, now, now))

	store := NewUsers(db)
	got, err := store.FindByEmail(context.Background(), "owner@cafe.example")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if got.TenantID != "tenant-1" || got.Role != auth.RoleTenantAdmin {
		t.Fatalf("unexpected user %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUsersFindByIDNullTenant(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("select (.+) from users where id=").
		WithArgs("root-1").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("root-1", nil, "root@menuqr.app", "$2a$hash", "", "", "SUPER_ADMIN", true, now, now))

	store := NewUsers(db)
	got, err := store.FindByID(context.Background(), "root-1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.TenantID != "" {
		t.Fatalf("expected empty tenant for super admin, got %q", got.TenantID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUsersFindByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select (.+) from users where id=").
		WithArgs("no-such-user").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	store := NewUsers(db)
	if _, err := store.FindByID(context.Background(), "no-such-user"); !errors.Is(err, auth.ErrNotFound) {
		t.Fatalf("expected auth.ErrNotFound, got %v", err)
	}
}

func TestCreateTenantWithAdminCommitsBothInserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("insert into tenants").
		WithArgs("tenant-1", "corner-cafe", "Corner Cafe", "cafe", "owner@cafe.example", "", "", "TRIAL").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("insert into users").
		WithArgs("user-1", "tenant-1", "owner@cafe.example", sqlmock.AnyArg(), "Ada", "L", "TENANT_ADMIN", true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	store := NewUsers(db)
	err = store.CreateTenantWithAdmin(context.Background(),
		&tenant.Tenant{ID: "tenant-1", Slug: "corner-cafe", BusinessName: "Corner Cafe", BusinessType: "cafe", Email: "owner@cafe.example", Status: tenant.StatusTrial},
		&auth.User{ID: "user-1", TenantID: "tenant-1", Email: "owner@cafe.example", PasswordHash: "$2a$hash", FirstName: "Ada", LastName: "L", Role: auth.RoleTenantAdmin, IsActive: true},
	)
	if err != nil {
		t.Fatalf("CreateTenantWithAdmin: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateTenantWithAdminRollsBackOnUserInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("insert into tenants").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("insert into users").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	store := NewUsers(db)
	err = store.CreateTenantWithAdmin(context.Background(),
		&tenant.Tenant{ID: "tenant-1", Slug: "corner-cafe", BusinessName: "Corner Cafe", Status: tenant.StatusTrial},
		&auth.User{ID: "user-1", TenantID: "tenant-1", Email: "owner@cafe.example", Role: auth.RoleTenantAdmin, IsActive: true},
	)
	if err == nil {
		t.Fatal("expected insert failure to surface")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateTenantWithAdminDuplicateEmailRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// The pre-insert lookup passed for both racers; the constraint decides.
	mock.ExpectBegin()
	mock.ExpectExec("insert into tenants").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("insert into users").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	mock.ExpectRollback()

	store := NewUsers(db)
	err = store.CreateTenantWithAdmin(context.Background(),
		&tenant.Tenant{ID: "tenant-1", Slug: "corner-cafe", BusinessName: "Corner Cafe", Status: tenant.StatusTrial},
		&auth.User{ID: "user-1", TenantID: "tenant-1", Email: "owner@cafe.example", Role: auth.RoleTenantAdmin, IsActive: true},
	)
	if !errors.Is(err, auth.ErrEmailTaken) {
		t.Fatalf("expected auth.ErrEmailTaken, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("insert into users").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	store := NewUsers(db)
	err = store.Create(context.Background(),
		&auth.User{ID: "user-2", TenantID: "tenant-1", Email: "owner@cafe.example", Role: auth.RoleStaff, IsActive: true},
	)
	if !errors.Is(err, auth.ErrEmailTaken) {
		t.Fatalf("expected auth.ErrEmailTaken, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
