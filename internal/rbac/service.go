package rbac

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/portalmitra/portalmitra/internal/shared"
)

// Service resolves roles and permissions for users.
//
// Role policy: the role reported to single-role callers is the earliest
// assignment; the permission set is the union across all assignments.
type Service struct {
	repo         Repository
	logger       *slog.Logger
	queryTimeout time.Duration
}

// NewService constructs a Service.
func NewService(repo Repository, logger *slog.Logger, queryTimeout time.Duration) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &Service{repo: repo, logger: logger, queryTimeout: queryTimeout}
}

// ResolvePermissions returns the deduplicated permission names for a user.
//
// Authorization fails closed: a missing or inactive user, a missing role
// assignment, or any backend failure yields an empty set with a nil error.
// Backend failures are logged server-side; callers only see an empty set.
func (s *Service) ResolvePermissions(ctx context.Context, userID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	state, err := s.repo.FindUserState(ctx, userID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("resolve permissions: find user", slog.Any("error", err), slog.String("user_id", userID))
		}
		return []string{}, nil
	}
	if !state.IsActive {
		return []string{}, nil
	}

	assignments, err := s.repo.ListAssignments(ctx, userID)
	if err != nil {
		s.logger.Error("resolve permissions: list assignments", slog.Any("error", err), slog.String("user_id", userID))
		return []string{}, nil
	}
	if len(assignments) == 0 {
		// Every registered user is expected to hold exactly one role; log the
		// misconfiguration rather than failing.
		s.logger.Warn("resolve permissions: user has no role assignment", slog.String("user_id", userID))
		return []string{}, nil
	}

	names, err := s.repo.ListPermissionNames(ctx, roleIDs(assignments))
	if err != nil {
		s.logger.Error("resolve permissions: list grants", slog.Any("error", err), slog.String("user_id", userID))
		return []string{}, nil
	}
	return dedupe(names), nil
}

// ResolveRoleAndPermissions resolves the display role and permission union
// for a user right after login. Unlike ResolvePermissions it surfaces hard
// errors: ErrNoRoleAssigned for a user without assignments, ErrLookup on
// backend failure.
func (s *Service) ResolveRoleAndPermissions(ctx context.Context, userID string) (Resolution, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	assignments, err := s.repo.ListAssignments(ctx, userID)
	if err != nil {
		s.logger.Error("resolve role: list assignments", slog.Any("error", err), slog.String("user_id", userID))
		return Resolution{}, shared.ErrLookup
	}
	if len(assignments) == 0 {
		return Resolution{}, shared.ErrNoRoleAssigned
	}

	role, err := s.repo.GetRole(ctx, assignments[0].RoleID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("resolve role: assignment references missing role",
				slog.String("user_id", userID), slog.String("role_id", assignments[0].RoleID))
			return Resolution{}, shared.ErrNoRoleAssigned
		}
		s.logger.Error("resolve role: get role", slog.Any("error", err), slog.String("user_id", userID))
		return Resolution{}, shared.ErrLookup
	}

	names, err := s.repo.ListPermissionNames(ctx, roleIDs(assignments))
	if err != nil {
		s.logger.Error("resolve role: list grants", slog.Any("error", err), slog.String("user_id", userID))
		return Resolution{}, shared.ErrLookup
	}

	return Resolution{Role: role, Permissions: dedupe(names)}, nil
}

func roleIDs(assignments []Assignment) []string {
	ids := make([]string, len(assignments))
	for i, a := range assignments {
		ids[i] = a.RoleID
	}
	return ids
}

// dedupe enforces set semantics on permission names regardless of how the
// repository produced them. Matching is case-sensitive.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
