package memory

import (
	"context"

	"petpatrol/internal/domain/catalog"
)

type catalogRepo struct {
	rows map[catalog.Kind][]catalog.Entry
}

// NewCatalogRepo devuelve las tablas de referencia sembradas con catalog.Defaults.
func NewCatalogRepo() catalog.Repository {
	return &catalogRepo{rows: catalog.Defaults()}
}

func (r *catalogRepo) List(ctx context.Context, kind catalog.Kind) ([]catalog.Entry, error) {
	rows := r.rows[kind]
	out := make([]catalog.Entry, len(rows))
	copy(out, rows)
	return out, nil
}
