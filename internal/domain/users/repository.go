package users

import "context"

type Repository interface {
	// Create devuelve ErrConflict si el email ya existe.
	Create(ctx context.Context, u User) (int64, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// UpdateByEmail devuelve ErrNotFound si ninguna fila coincide.
	UpdateByEmail(ctx context.Context, email string, upd ProfileUpdate) error
}
