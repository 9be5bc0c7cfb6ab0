package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

// GetRoleProfile returns the role profile of userID.
func (s *Service) GetRoleProfile(ctx context.Context, userID uuid.UUID) (domain.RoleProfile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("identity.GetRoleProfile get user: %w", err)
	}

	p, err := s.users.GetProfile(ctx, u.ID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("identity.GetRoleProfile get profile: %w", err)
	}
	return p, nil
}

// GetAccount returns the user together with its role profile.
func (s *Service) GetAccount(ctx context.Context, userID uuid.UUID) (*domain.Account, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("identity.GetAccount get user: %w", err)
	}
	return s.account(ctx, u)
}

// GetByEmail returns the account registered under email. The lookup ignores
// case and surrounding whitespace.
func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, domain.NewValidationError("email", "required")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("identity.GetByEmail get user: %w", err)
	}
	return s.account(ctx, u)
}

func (s *Service) account(ctx context.Context, u *domain.User) (*domain.Account, error) {
	p, err := s.users.GetProfile(ctx, u.ID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("get %s profile: %w", u.Role, err)
	}

	account, err := domain.NewAccount(*u, p)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
