package jwt

import (
	"context"
	"testing"
	"time"

	"petpatrol/internal/ports/auth"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueVerify(t *testing.T) {
	m := NewManager("test-secret", "petpatrol", time.Hour)
	ctx := context.Background()

	tok, err := m.Issue(ctx, auth.Claims{UserID: "7", Email: "a@b.com"})
	require.NoError(t, err)

	claims, err := m.Verify(ctx, "  "+tok+" ")
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "7", Email: "a@b.com"}, claims)
}

func TestManager_Rejects(t *testing.T) {
	ctx := context.Background()
	m := NewManager("test-secret", "petpatrol", time.Hour)
	good, err := m.Issue(ctx, auth.Claims{UserID: "7"})
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		_, err := m.Verify(ctx, "")
		assert.ErrorIs(t, err, ErrTokenEmpty)
	})

	t.Run("other secret", func(t *testing.T) {
		_, err := NewManager("other", "petpatrol", time.Hour).Verify(ctx, good)
		assert.ErrorIs(t, err, gojwt.ErrTokenSignatureInvalid)
	})

	t.Run("other issuer", func(t *testing.T) {
		_, err := NewManager("test-secret", "someone-else", time.Hour).Verify(ctx, good)
		assert.ErrorIs(t, err, gojwt.ErrTokenInvalidIssuer)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewManager("test-secret", "petpatrol", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Verify(ctx, good)
		assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
	})

	t.Run("alg none", func(t *testing.T) {
		unsigned, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.RegisteredClaims{
			Subject:   "7",
			Issuer:    "petpatrol",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString(gojwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.Verify(ctx, unsigned)
		assert.Error(t, err)
	})
}

func TestManager_IssueRequiresUserID(t *testing.T) {
	_, err := NewManager("s", "petpatrol", 0).Issue(context.Background(), auth.Claims{})
	assert.ErrorIs(t, err, ErrMissingUserID)
}
