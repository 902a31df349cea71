package users

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"petpatrol/internal/platform/validation"
	"petpatrol/internal/ports/auth"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
	ErrConflict     = errors.New("email already registered")
	ErrUnauthorized = errors.New("wrong password")
	ErrForbidden    = errors.New("profile belongs to another user")
)

type Service struct {
	repo   Repository
	issuer auth.TokenIssuer // nil = login sin token
	now    func() time.Time

	hashCost int
}

func NewService(repo Repository, issuer auth.TokenIssuer) *Service {
	return &Service{
		repo:     repo,
		issuer:   issuer,
		now:      time.Now,
		hashCost: bcrypt.DefaultCost,
	}
}

type RegisterInput struct {
	Email     string `json:"email_address" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Phone     string `json:"phone_number" validate:"max=30"`
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	in.Email = normalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Phone = strings.TrimSpace(in.Phone)

	if err := validation.Struct(in); err != nil {
		return User{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	u := User{
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.repo.Create(ctx, u)
	if err != nil {
		return User{}, err
	}
	u.ID = id
	return u, nil
}

type LoginResult struct {
	User  User
	Token string
}

func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return LoginResult{}, ErrInvalidInput
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, ErrUnauthorized
	}

	out := LoginResult{User: u}
	if s.issuer != nil {
		token, err := s.issuer.Issue(ctx, auth.Claims{
			UserID: strconv.FormatInt(u.ID, 10),
			Email:  u.Email,
		})
		if err != nil {
			return LoginResult{}, fmt.Errorf("issue token: %w", err)
		}
		out.Token = token
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateInput: campos vacíos (tras trim) no se tocan.
type UpdateInput struct {
	Email     string  `json:"email_address" validate:"required,email"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Phone     *string `json:"phone_number" validate:"omitempty,max=30"`
	Password  *string `json:"password" validate:"omitempty,min=8,max=72"`
}

// UpdateProfile solo modifica la cuenta del propio llamador (callerID).
func (s *Service) UpdateProfile(ctx context.Context, callerID int64, in UpdateInput) error {
	in.Email = normalizeEmail(in.Email)
	in.FirstName = trimmedOrNil(in.FirstName)
	in.LastName = trimmedOrNil(in.LastName)
	in.Phone = trimmedOrNil(in.Phone)
	if in.Password != nil && *in.Password == "" {
		in.Password = nil
	}

	if err := validation.Struct(in); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	target, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if callerID <= 0 || target.ID != callerID {
		return ErrForbidden
	}

	upd := ProfileUpdate{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		UpdatedAt: s.now().UTC(),
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), s.hashCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		h := string(hash)
		upd.PasswordHash = &h
	}

	return s.repo.UpdateByEmail(ctx, in.Email, upd)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
