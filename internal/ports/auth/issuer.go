package auth

import "context"

// TokenIssuer emite un token firmado para los claims dados.
type TokenIssuer interface {
	Issue(ctx context.Context, claims Claims) (string, error)
}
