package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"petpatrol/internal/ports/objectstore"
)

var ErrNotFound = errors.New("object not found")

// Store es un object store en memoria para dev y tests.
type Store struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]objectstore.Object
}

var _ objectstore.Store = (*Store)(nil)

// New crea el store. baseURL arma las URLs públicas (p.ej. "https://bucket.s3.amazonaws.com").
func New(baseURL string) *Store {
	return &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]objectstore.Object),
	}
}

func (s *Store) Put(ctx context.Context, obj objectstore.Object) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(obj.Key) == "" {
		return errors.New("object key required")
	}
	body := make([]byte, len(obj.Body))
	copy(body, obj.Body)
	obj.Body = body

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[obj.Key] = obj
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *Store) URL(key string) string {
	return s.baseURL + "/" + key
}

// Get devuelve un objeto guardado.
func (s *Store) Get(key string) (objectstore.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return objectstore.Object{}, ErrNotFound
	}
	return obj, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
