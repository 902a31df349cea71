package listings

import (
	"context"

	"petpatrol/internal/domain/catalog"
)

// Store es el almacenamiento relacional de mascotas y posts.
type Store interface {
	BeginTx(ctx context.Context) (Tx, error)
	List(ctx context.Context, f ListFilter) ([]Listing, error)
	GetByPostID(ctx context.Context, postID int64) (Listing, error)
}

// Tx agrupa las escrituras del flujo de creación.
// Rollback después de Commit no hace nada.
type Tx interface {
	InsertPet(ctx context.Context, p Pet) (int64, error)
	InsertPost(ctx context.Context, p Post) (int64, error)
	LinkPet(ctx context.Context, petID, postID int64) error
	Commit() error
	Rollback() error
}

// ReferenceChecker confirma que un id existe en una tabla de referencia.
type ReferenceChecker interface {
	Has(ctx context.Context, kind catalog.Kind, id int64) (bool, error)
}
