package postgres

import (
	"context"
	"fmt"

	"github.com/healthstack/stockops-api/internal/domain/entity"
	"github.com/healthstack/stockops-api/internal/domain/repository"
)

var _ repository.UserRoleRepository = (*UserRoleRepo)(nil)

// UserRoleRepo reads role-based privileges from PostgreSQL.
type UserRoleRepo struct {
	q Querier
}

// NewUserRoleRepository builds the role adapter. Pass pool or tx.
func NewUserRoleRepository(q Querier) *UserRoleRepo {
	return &UserRoleRepo{q: q}
}

// ScopesForUser aggregates the operation types and locations every role of
// the user grants. A user without assignments gets empty scopes, not an
// error.
func (r *UserRoleRepo) ScopesForUser(ctx context.Context, userID string) (*entity.UserRoleScopes, error) {
	scopes := &entity.UserRoleScopes{}

	opQuery := `
		SELECT ur.role, s.operation_type_uuid, t.name
		FROM user_roles ur
		JOIN role_operation_types s ON s.role = ur.role
		JOIN stock_operation_types t ON t.uuid = s.operation_type_uuid
		WHERE ur.user_id = $1
		ORDER BY ur.role, t.name`
	rows, err := r.q.Query(ctx, opQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list operation type scopes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s entity.OperationTypeScope
		if err := rows.Scan(&s.Role, &s.OperationTypeUUID, &s.OperationTypeName); err != nil {
			return nil, fmt.Errorf("scan operation type scope: %w", err)
		}
		scopes.OperationTypes = append(scopes.OperationTypes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	locQuery := `
		SELECT ur.role, s.location_uuid, l.name
		FROM user_roles ur
		JOIN role_locations s ON s.role = ur.role
		JOIN locations l ON l.uuid = s.location_uuid
		WHERE ur.user_id = $1
		ORDER BY ur.role, l.name`
	locRows, err := r.q.Query(ctx, locQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list location scopes: %w", err)
	}
	defer locRows.Close()
	for locRows.Next() {
		var s entity.LocationScope
		if err := locRows.Scan(&s.Role, &s.LocationUUID, &s.LocationName); err != nil {
			return nil, fmt.Errorf("scan location scope: %w", err)
		}
		scopes.Locations = append(scopes.Locations, s)
	}
	return scopes, locRows.Err()
}
