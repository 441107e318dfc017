package repository

import (
	"context"

	"github.com/healthstack/stockops-api/internal/domain/entity"
)

// UserRoleRepository reads the privileges a user holds through role
// assignments.
type UserRoleRepository interface {
	ScopesForUser(ctx context.Context, userID string) (*entity.UserRoleScopes, error)
}
