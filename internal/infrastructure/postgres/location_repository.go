package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/healthstack/stockops-api/internal/domain"
	"github.com/healthstack/stockops-api/internal/domain/entity"
	"github.com/healthstack/stockops-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo reads facility locations and their tags from PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository builds the location adapter. Pass pool or tx.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// GetByUUID returns one location with its tags.
func (r *LocationRepo) GetByUUID(ctx context.Context, locUUID string) (*entity.Location, error) {
	query := `
		SELECT l.uuid, l.name, COALESCE(array_agg(lt.tag) FILTER (WHERE lt.tag IS NOT NULL), '{}')
		FROM locations l
		LEFT JOIN location_tags lt ON lt.location_uuid = l.uuid
		WHERE l.uuid = $1
		GROUP BY l.uuid, l.name`
	var loc entity.Location
	err := r.q.QueryRow(ctx, query, locUUID).Scan(&loc.UUID, &loc.Name, &loc.Tags)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &loc, nil
}

// ListTaggedStores returns the locations tagged main store or substore.
func (r *LocationRepo) ListTaggedStores(ctx context.Context) ([]entity.Location, error) {
	query := `
		SELECT l.uuid, l.name, array_agg(lt.tag)
		FROM locations l
		JOIN location_tags lt ON lt.location_uuid = l.uuid
		WHERE lt.tag IN ($1, $2)
		GROUP BY l.uuid, l.name
		ORDER BY l.name`
	rows, err := r.q.Query(ctx, query, entity.TagMainStore, entity.TagSubStore)
	if err != nil {
		return nil, fmt.Errorf("list store locations: %w", err)
	}
	defer rows.Close()

	var locations []entity.Location
	for rows.Next() {
		var loc entity.Location
		if err := rows.Scan(&loc.UUID, &loc.Name, &loc.Tags); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}
