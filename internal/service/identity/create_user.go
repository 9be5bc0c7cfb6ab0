package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

// CreateUser creates a user with role and its role profile in one transaction.
// Returns domain.ErrDuplicateEmail if the normalized email is taken and
// domain.ErrInvalidRoleAttributes if attrs do not fit role.
func (s *Service) CreateUser(ctx context.Context, input CreateUserInput, role domain.Role, attrs domain.RoleProfile) (*domain.Account, error) {
	input = input.normalized()

	// Step 1: Validate input
	if err := input.Validate(s.cfg.MinPasswordLength); err != nil {
		return nil, err
	}
	if err := validateProfile(role, attrs); err != nil {
		return nil, err
	}

	// Step 2: Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("identity.CreateUser hash password: %w", err)
	}

	now := s.now()
	account, err := domain.NewAccount(domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         role,
		Status:       domain.AccountStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, attrs)
	if err != nil {
		return nil, err
	}

	// Step 3: Insert user and profile together.
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, err := s.users.Create(txCtx, &account.User)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		account.User = *created

		if err := s.users.CreateProfile(txCtx, account.Profile); err != nil {
			if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
				return fmt.Errorf("create profile: %w: %w", domain.ErrInvalidRoleAttributes, err)
			}
			return fmt.Errorf("create profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user created",
		slog.String("user_id", account.User.ID.String()),
		slog.String("role", role.String()),
	)

	return &account, nil
}
