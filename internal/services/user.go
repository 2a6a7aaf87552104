package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"invy/internal/domain"
	"invy/internal/permissions"
)

type userService struct {
	userRepo        domain.UserRepository
	logger          *slog.Logger
	superAdminEmail string
	contextTimeout  time.Duration
}

func NewUserService(
	userRepo domain.UserRepository,
	logger *slog.Logger,
	superAdminEmail string,
	timeout time.Duration,
) domain.UserService {
	return &userService{
		userRepo:        userRepo,
		logger:          logger,
		superAdminEmail: superAdminEmail,
		contextTimeout:  timeout,
	}
}

// GetOrCreate resolves the user record for an authenticated identity. The
// record is created lazily on first sight, keyed by the identity provider's
// subject id and email. The configured superadmin email is re-pinned to the
// superadmin role on every resolution rather than relying on one-time setup,
// so a lost role flag heals itself.
func (s *userService) GetOrCreate(ctx context.Context, id, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if email == "" {
		return nil, fmt.Errorf("email is required: %w", domain.ErrUnauthorized)
	}

	user, err := s.lookup(ctx, id, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("resolve user: %w", err)
		}
		now := time.Now()
		user = domain.NewUser(email, now, now)
		user.ID = id
		if err := s.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrDuplicateEmail) {
				// Lost a concurrent first-sign-in race; the row exists now.
				return s.GetOrCreate(ctx, id, email)
			}
			return nil, fmt.Errorf("create user: %w", err)
		}
	}

	return s.pinSuperAdmin(ctx, user), nil
}

func (s *userService) lookup(ctx context.Context, id, email string) (*domain.User, error) {
	if id != "" {
		user, err := s.userRepo.GetByID(ctx, id)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	return s.userRepo.GetByEmail(ctx, email)
}

// pinSuperAdmin asserts the superadmin role for the configured email. A
// failed update is logged and the stale record returned; the next resolution
// retries.
func (s *userService) pinSuperAdmin(ctx context.Context, user *domain.User) *domain.User {
	if s.superAdminEmail == "" || !strings.EqualFold(user.Email, s.superAdminEmail) {
		return user
	}
	if user.Role == domain.RoleSuperAdmin {
		return user
	}
	updated, err := s.userRepo.UpdateRole(ctx, user.ID, domain.RoleSuperAdmin)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to pin superadmin role", "user_id", user.ID, "err", err)
		return user
	}
	return updated
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return s.pinSuperAdmin(ctx, user), nil
}

func (s *userService) UpdatePlanTier(ctx context.Context, actor *domain.User, userID string, tier domain.PlanTier) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := permissions.AssertSuperAdmin(actor); err != nil {
		return nil, err
	}
	updated, err := s.userRepo.UpdatePlanTier(ctx, userID, tier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update plan tier: %w", err)
	}
	return updated, nil
}

func (s *userService) UpdateRole(ctx context.Context, actor *domain.User, userID string, role domain.UserRole) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := permissions.AssertSuperAdmin(actor); err != nil {
		return nil, err
	}
	// A superadmin may not change their own role; someone else has to.
	if actor.ID == userID {
		return nil, domain.ErrSelfRoleChange
	}
	updated, err := s.userRepo.UpdateRole(ctx, userID, role)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update role: %w", err)
	}
	return updated, nil
}
