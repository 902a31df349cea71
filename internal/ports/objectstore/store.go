package objectstore

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("object store not configured")

// Object es lo que se sube a object storage. Key es la clave completa dentro del bucket.
type Object struct {
	Key         string
	Body        []byte
	ContentType string
	Metadata    map[string]string
}

// Store sube y borra objetos públicos y arma su URL pública.
type Store interface {
	Put(ctx context.Context, obj Object) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}
