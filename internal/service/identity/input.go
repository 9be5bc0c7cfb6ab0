package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
	"github.com/heartmarshall/eventhub-backend/internal/service/validation"
)

// CreateUserInput holds the credentials and names of a new account.
type CreateUserInput struct {
	Email     string `validate:"required,email,max=254"`
	Password  string `validate:"required,max=72"`
	FirstName string `validate:"required,max=100"`
	LastName  string `validate:"max=100"`
}

// Validate checks all fields and collects all errors. minPassword comes from
// configuration.
func (i CreateUserInput) Validate(minPassword int) error {
	err := validation.Struct(i)

	var errs []domain.FieldError
	if err != nil {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		errs = verr.Errors
	}
	if i.Password != "" && len(i.Password) < minPassword {
		errs = append(errs, domain.FieldError{Field: "password", Message: fmt.Sprintf("min %d characters", minPassword)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i CreateUserInput) normalized() CreateUserInput {
	i.Email = domain.NormalizeEmail(i.Email)
	i.FirstName = strings.TrimSpace(i.FirstName)
	i.LastName = strings.TrimSpace(i.LastName)
	return i
}

// validateProfile checks that the attribute payload belongs to role and that
// its required attributes are present.
func validateProfile(role domain.Role, p domain.RoleProfile) error {
	if !role.IsValid() {
		return fmt.Errorf("%w: %w", domain.ErrInvalidRoleAttributes, domain.NewValidationError("role", "unknown role"))
	}
	if p == nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidRoleAttributes, domain.NewValidationError("profile", "required"))
	}
	if p.Role() != role {
		return fmt.Errorf("%w: %w", domain.ErrInvalidRoleAttributes,
			domain.NewValidationError("profile", fmt.Sprintf("%s attributes given for role %s", p.Role(), role)))
	}

	var errs []domain.FieldError
	required := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, domain.FieldError{Field: field, Message: "required"})
		}
	}

	switch v := p.(type) {
	case domain.StudentProfile:
		required("university", v.University)
		required("specialization", v.Specialization)
		if v.GraduationYear != nil && (*v.GraduationYear < 1900 || *v.GraduationYear > 2200) {
			errs = append(errs, domain.FieldError{Field: "graduation_year", Message: "out of range"})
		}
	case domain.UniversityProfile:
		required("institution_name", v.InstitutionName)
	case domain.CompanyProfile:
		required("company_name", v.CompanyName)
		required("industry", v.Industry)
	case domain.AdminProfile:
		for _, perm := range v.Permissions {
			if strings.TrimSpace(perm) == "" {
				errs = append(errs, domain.FieldError{Field: "permissions", Message: "empty permission"})
				break
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidRoleAttributes, domain.NewValidationErrors(errs))
	}
	return nil
}
