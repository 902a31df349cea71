package catalog

import "context"

type Repository interface {
	List(ctx context.Context, kind Kind) ([]Entry, error)
}
