package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"petpatrol/internal/domain/catalog"
)

type CatalogRepo struct {
	db *sql.DB
}

var _ catalog.Repository = (*CatalogRepo)(nil)

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) List(ctx context.Context, kind catalog.Kind) ([]catalog.Entry, error) {
	// El nombre de tabla no puede ir como parámetro; solo se aceptan kinds conocidos.
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", catalog.ErrUnknownKind, kind)
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`SELECT id, nombre FROM %s ORDER BY id ASC`, kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Entry, 0)
	for rows.Next() {
		var e catalog.Entry
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
