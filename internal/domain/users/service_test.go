package users

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"petpatrol/internal/platform/validation"
	"petpatrol/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[int64]User{}}
}

func (f *fakeRepo) Create(_ context.Context, u User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return 0, ErrConflict
		}
	}
	f.nextID++
	u.ID = f.nextID
	f.byID[u.ID] = u
	return u.ID, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (f *fakeRepo) UpdateByEmail(_ context.Context, email string, upd ProfileUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.byID {
		if u.Email != email {
			continue
		}
		if upd.FirstName != nil {
			u.FirstName = *upd.FirstName
		}
		if upd.LastName != nil {
			u.LastName = *upd.LastName
		}
		if upd.Phone != nil {
			u.Phone = *upd.Phone
		}
		if upd.PasswordHash != nil {
			u.PasswordHash = *upd.PasswordHash
		}
		u.UpdatedAt = upd.UpdatedAt
		f.byID[id] = u
		return nil
	}
	return ErrNotFound
}

type stubIssuer struct{ err error }

func (s stubIssuer) Issue(_ context.Context, c auth.Claims) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token-for-" + c.UserID, nil
}

func newTestService(repo Repository, issuer auth.TokenIssuer) *Service {
	svc := NewService(repo, issuer)
	svc.hashCost = bcrypt.MinCost
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc
}

func TestService_Register_HashesPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	u, err := svc.Register(context.Background(), RegisterInput{
		Email:     "  Ana@Example.com ",
		Password:  "supersecreta",
		FirstName: " Ana ",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, "Ana", u.FirstName)
	assert.NotEqual(t, "supersecreta", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("supersecreta")))
}

func TestService_Register_Validation(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "no-es-email", Password: "corta"})
	require.ErrorIs(t, err, ErrInvalidInput)

	fields := validation.Fields(err)
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	assert.ElementsMatch(t, []string{"email_address", "password"}, names)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "12345678"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "A@B.com", Password: "12345678"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestService_Login(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, stubIssuer{})
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "12345678"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"missing password", "a@b.com", "", ErrInvalidInput},
		{"missing email", "", "12345678", ErrInvalidInput},
		{"unknown email", "x@b.com", "12345678", ErrNotFound},
		{"wrong password", "a@b.com", "87654321", ErrUnauthorized},
		{"ok", "A@B.com", "12345678", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), res.User.ID)
			assert.Equal(t, "token-for-1", res.Token)
		})
	}
}

func TestService_Login_IssuerFailure(t *testing.T) {
	svc := newTestService(newFakeRepo(), stubIssuer{err: errors.New("no key")})
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "12345678"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@b.com", "12345678")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestService_UpdateProfile(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "12345678", LastName: "Pérez"})
	require.NoError(t, err)

	first := "  Lucía "
	empty := "   "
	newPass := "otraclave123"
	require.NoError(t, svc.UpdateProfile(ctx, u.ID, UpdateInput{
		Email:     "a@b.com",
		FirstName: &first,
		LastName:  &empty,
		Password:  &newPass,
	}))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lucía", got.FirstName)
	assert.Equal(t, "Pérez", got.LastName, "empty fields are not applied")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte(newPass)))

	err = svc.UpdateProfile(ctx, u.ID, UpdateInput{Email: "nadie@b.com", FirstName: &first})
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.UpdateProfile(ctx, u.ID, UpdateInput{Email: "invalido"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UpdateProfile_OnlyOwnAccount(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	ctx := context.Background()

	victim, err := svc.Register(ctx, RegisterInput{Email: "victim@example.com", Password: "12345678"})
	require.NoError(t, err)
	other, err := svc.Register(ctx, RegisterInput{Email: "otro@example.com", Password: "12345678"})
	require.NoError(t, err)

	pass := "attacker123"
	for _, caller := range []int64{0, other.ID} {
		err := svc.UpdateProfile(ctx, caller, UpdateInput{Email: "victim@example.com", Password: &pass})
		assert.ErrorIs(t, err, ErrForbidden)
	}

	got, err := repo.GetByID(ctx, victim.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("12345678")), "password unchanged")
}
