package catalog

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrUnknownKind = errors.New("unknown catalog kind")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, kind Kind) ([]Entry, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return s.repo.List(ctx, kind)
}

// Has indica si id existe en la tabla kind. Implementa listings.ReferenceChecker.
func (s *Service) Has(ctx context.Context, kind Kind, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	entries, err := s.List(ctx, kind)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.ID == id {
			return true, nil
		}
	}
	return false, nil
}
