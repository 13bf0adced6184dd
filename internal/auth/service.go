package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"menuqr.app/internal/ids"
	"menuqr.app/internal/tenant"
)

// UserDirectory is the user store consumed by the auth service.
type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
}

// Registrar creates a tenant and its admin user in one atomic operation.
// Registration must never leave a tenant without an admin or vice versa.
type Registrar interface {
	CreateTenantWithAdmin(ctx context.Context, t *tenant.Tenant, u *User) error
}

// SlugGenerator allocates a unique public slug for a new tenant.
type SlugGenerator interface {
	UniqueSlug(ctx context.Context, businessName string) (string, error)
}

// QRGenerator renders the public menu QR code for a tenant. External
// collaborator; the core depends only on the returned URL.
type QRGenerator interface {
	Generate(ctx context.Context, tenantID, slug string) (string, error)
}

// Session is the credential pair returned to clients by login, registration
// and refresh flows.
type Session struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token,omitempty"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at,omitzero"`
}

// RegisterInput is the payload for tenant self-registration.
type RegisterInput struct {
	BusinessName   string `json:"business_name"`
	BusinessType   string `json:"business_type"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	WhatsappNumber string `json:"whatsapp_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
}

// Service implements the login, registration, refresh and profile flows on
// top of the token service and the external directories.
type Service struct {
	users     UserDirectory
	tenants   tenant.Directory
	registrar Registrar
	slugs     SlugGenerator
	qr        QRGenerator
	tokens    *TokenService
	hasher    Hasher
}

// NewService wires the auth service. All collaborators are required except
// qr, which may be nil when QR rendering is disabled.
func NewService(users UserDirectory, tenants tenant.Directory, registrar Registrar, slugs SlugGenerator, qr QRGenerator, tokens *TokenService, hasher Hasher) (*Service, error) {
	if users == nil || tenants == nil || registrar == nil || slugs == nil || tokens == nil {
		return nil, errors.New("auth: missing service dependency")
	}
	return &Service{
		users:     users,
		tenants:   tenants,
		registrar: registrar,
		slugs:     slugs,
		qr:        qr,
		tokens:    tokens,
		hasher:    hasher,
	}, nil
}

// Register creates a TRIAL tenant with its TENANT_ADMIN user atomically and
// logs the new admin in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Session, *User, *tenant.Tenant, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.BusinessName = strings.TrimSpace(in.BusinessName)
	if in.Email == "" || in.Password == "" || in.BusinessName == "" {
		return Session{}, nil, nil, fmt.Errorf("%w: business name, email and password are required", ErrInvalidInput)
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return Session{}, nil, nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return Session{}, nil, nil, err
	}

	slug, err := s.slugs.UniqueSlug(ctx, in.BusinessName)
	if err != nil {
		return Session{}, nil, nil, err
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return Session{}, nil, nil, err
	}

	t := &tenant.Tenant{
		ID:             ids.New(),
		Slug:           slug,
		BusinessName:   in.BusinessName,
		BusinessType:   strings.TrimSpace(in.BusinessType),
		Email:          in.Email,
		WhatsappNumber: strings.TrimSpace(in.WhatsappNumber),
		Status:         tenant.StatusTrial,
	}
	if s.qr != nil {
		qrURL, err := s.qr.Generate(ctx, t.ID, slug)
		if err != nil {
			return Session{}, nil, nil, fmt.Errorf("render qr code: %w", err)
		}
		t.QRCodeURL = qrURL
	}
	u := &User{
		ID:           ids.New(),
		TenantID:     t.ID,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         RoleTenantAdmin,
		IsActive:     true,
	}
	if err := s.registrar.CreateTenantWithAdmin(ctx, t, u); err != nil {
		return Session{}, nil, nil, err
	}

	session, err := s.sessionFor(u)
	if err != nil {
		return Session{}, nil, nil, err
	}
	return session, u, t, nil
}

// Login authenticates email and password and issues a fresh token pair.
// Unknown emails and wrong passwords share one answer; an inactive account
// is a distinct, deliberate denial.
func (s *Service) Login(ctx context.Context, email, password string) (Session, *User, *tenant.Tenant, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return Session{}, nil, nil, ErrUnauthenticated
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, nil, nil, ErrUnauthenticated
		}
		return Session{}, nil, nil, err
	}
	if !u.IsActive {
		return Session{}, nil, nil, ErrForbidden
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return Session{}, nil, nil, ErrUnauthenticated
	}

	session, err := s.sessionFor(u)
	if err != nil {
		return Session{}, nil, nil, err
	}
	t, err := s.tenantFor(ctx, u)
	if err != nil {
		return Session{}, nil, nil, err
	}
	return session, u, t, nil
}

// Refresh exchanges a refresh token for a new access token. Claims are
// re-derived from current stored state, so role or tenant changes and
// deactivation take effect at the next exchange.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return Session{}, ErrUnauthenticated
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrUnauthenticated
		}
		return Session{}, err
	}
	if !u.IsActive {
		return Session{}, ErrUnauthenticated
	}
	actor, err := u.Actor()
	if err != nil {
		return Session{}, ErrUnauthenticated
	}
	access, accessExp, err := s.tokens.IssueAccessToken(actor)
	if err != nil {
		return Session{}, err
	}
	return Session{AccessToken: access, AccessExpiresAt: accessExp}, nil
}

// Profile returns the stored user and tenant snapshot for an authenticated
// user id.
func (s *Service) Profile(ctx context.Context, userID string) (*User, *tenant.Tenant, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	t, err := s.tenantFor(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return u, t, nil
}

func (s *Service) sessionFor(u *User) (Session, error) {
	actor, err := u.Actor()
	if err != nil {
		return Session{}, err
	}
	access, accessExp, err := s.tokens.IssueAccessToken(actor)
	if err != nil {
		return Session{}, err
	}
	refresh, refreshExp, err := s.tokens.IssueRefreshToken(u.ID)
	if err != nil {
		return Session{}, err
	}
	return Session{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (s *Service) tenantFor(ctx context.Context, u *User) (*tenant.Tenant, error) {
	if u.TenantID == "" {
		return nil, nil
	}
	t, err := s.tenants.FindByID(ctx, u.TenantID)
	if errors.Is(err, tenant.ErrNotFound) {
		return nil, nil
	}
	return t, err
}
