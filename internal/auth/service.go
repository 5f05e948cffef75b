package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/portalmitra/portalmitra/internal/rbac"
	"github.com/portalmitra/portalmitra/internal/shared"
)

// GuestRoleName is the role bound to self-registered users. It must be seeded
// before the system accepts registrations.
const GuestRoleName = "guest"

// RoleResolver resolves the role and flattened permission set for a user.
type RoleResolver interface {
	ResolveRoleAndPermissions(ctx context.Context, userID string) (rbac.Resolution, error)
}

// Mailer enqueues transactional mail. Delivery is best effort.
type Mailer interface {
	EnqueueWelcomeEmail(ctx context.Context, to, name string) error
}

// ServiceConfig tunes optional service behavior.
type ServiceConfig struct {
	// QueryTimeout bounds every backing-store call.
	QueryTimeout time.Duration
	Mailer       Mailer
}

// Service wraps authentication and registration business rules.
type Service struct {
	repo         Repository
	resolver     RoleResolver
	logger       *slog.Logger
	validate     *validator.Validate
	queryTimeout time.Duration
	mailer       Mailer
}

// NewService constructs a new Service.
func NewService(repo Repository, resolver RoleResolver, logger *slog.Logger, cfg ServiceConfig) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = 5 * time.Second
	}
	return &Service{
		repo:         repo,
		resolver:     resolver,
		logger:       logger,
		validate:     validator.New(),
		queryTimeout: cfg.QueryTimeout,
		mailer:       cfg.Mailer,
	}
}

func (s *Service) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.queryTimeout)
}

// Authenticate validates username/password credentials.
//
// Unknown usernames and wrong passwords both return ErrInvalidCredentials.
// The active flag is checked only after the password verifies, so an inactive
// account is reported only to a caller who knows the password.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (*User, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	user, err := s.repo.FindByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		s.logger.Error("authenticate: find user", slog.Any("error", err), slog.Any("credentials", creds))
		return nil, shared.ErrLookup
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, shared.ErrAccountInactive
	}
	return user, nil
}

// Login authenticates and composes the identity with the resolved role and
// permission set. A user with no role assignment cannot complete login.
func (s *Service) Login(ctx context.Context, creds Credentials) (*AuthenticatedUser, error) {
	user, err := s.Authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}

	res, err := s.resolver.ResolveRoleAndPermissions(ctx, user.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNoRoleAssigned) {
			s.logger.Warn("login: user has no role assignment", slog.String("user_id", user.ID))
			return nil, shared.ErrNoRoleAssigned
		}
		s.logger.Error("login: resolve role", slog.Any("error", err), slog.String("user_id", user.ID))
		return nil, shared.ErrLookup
	}

	return &AuthenticatedUser{
		Identity:    user.Identity(),
		Role:        res.Role.Name,
		Permissions: res.Permissions,
	}, nil
}

// RegisterInput carries a registration request. Passwords shorter than 8
// characters are rejected.
type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Username string `validate:"required"`
	Password string `validate:"required,min=8"`
}

// Register creates a new active user bound to the guest role.
//
// The username/email lookups are best-effort pre-checks; the store's unique
// indexes are the authoritative guard, and a losing concurrent insert still
// reports ErrUsernameTaken or ErrEmailTaken.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Identity, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, shared.ErrInvalidInput
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	if _, err := s.repo.FindByUsername(ctx, in.Username); err == nil {
		return nil, shared.ErrUsernameTaken
	} else if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("register: check username", slog.Any("error", err))
		return nil, shared.ErrLookup
	}
	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, shared.ErrEmailTaken
	} else if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("register: check email", slog.Any("error", err))
		return nil, shared.ErrLookup
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("register: hash password", slog.Any("error", err))
		return nil, shared.ErrLookup
	}

	user := &User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.repo.CreateUserWithRole(ctx, user, GuestRoleName, uuid.NewString()); err != nil {
		switch {
		case errors.Is(err, shared.ErrUsernameTaken), errors.Is(err, shared.ErrEmailTaken):
			return nil, err
		case errors.Is(err, shared.ErrRoleProvisioning):
			s.logger.Error("register: guest role not seeded")
			return nil, shared.ErrRoleProvisioning
		default:
			s.logger.Error("register: create user", slog.Any("error", err))
			return nil, shared.ErrLookup
		}
	}

	if s.mailer != nil {
		if err := s.mailer.EnqueueWelcomeEmail(ctx, user.Email, user.Name); err != nil {
			s.logger.Warn("register: enqueue welcome mail", slog.Any("error", err))
		}
	}

	identity := user.Identity()
	return &identity, nil
}
