package auth

import (
	"fmt"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/services"
)

// RoleAuthorizer implements services.Authorizer from the caller's role alone.
//
//   - ADMIN: everything
//   - EDITOR: content changes
//   - VIEWER: read only
type RoleAuthorizer struct{}

// NewRoleAuthorizer creates a new role-based authorizer
func NewRoleAuthorizer() services.Authorizer {
	return RoleAuthorizer{}
}

// CanEdit allows admins and editors
func (RoleAuthorizer) CanEdit(caller models.Caller) error {
	if caller.HasRole(models.RoleAdmin, models.RoleEditor) {
		return nil
	}
	return fmt.Errorf("role %s cannot modify content: %w", caller.Role, domain.ErrForbidden)
}

// CanAdminister allows admins only
func (RoleAuthorizer) CanAdminister(caller models.Caller) error {
	if caller.HasRole(models.RoleAdmin) {
		return nil
	}
	return fmt.Errorf("role %s cannot manage spaces: %w", caller.Role, domain.ErrForbidden)
}
