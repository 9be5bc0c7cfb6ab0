package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

// RecordLogin appends at to the user's login history.
func (s *Service) RecordLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	if at.IsZero() {
		return domain.NewValidationError("at", "required")
	}
	if err := s.users.AppendLogin(ctx, userID, at); err != nil {
		return fmt.Errorf("identity.RecordLogin: %w", err)
	}
	return nil
}

// Authenticate checks email and password and records the login.
// Returns domain.ErrInvalidCredentials if the email is unknown or the password
// is wrong, and domain.ErrAccountDisabled for suspended or deleted accounts.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("identity.Authenticate get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if user.Status.IsDisabled() {
		return nil, fmt.Errorf("user %s is %s: %w", user.ID, user.Status, domain.ErrAccountDisabled)
	}

	now := s.now()
	if err := s.users.AppendLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("identity.Authenticate record login: %w", err)
	}
	user.LoginHistory = append(user.LoginHistory, now)

	s.log.InfoContext(ctx, "user authenticated", slog.String("user_id", user.ID.String()))

	return user, nil
}
