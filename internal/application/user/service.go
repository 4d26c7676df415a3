package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kapee-shop/api/internal/domain"
	"github.com/kapee-shop/api/internal/pkg/id"
)

type Service interface {
	Register(ctx context.Context, req *domain.CreateUserRequest) (*domain.SafeUser, error)
	// Login verifies the credentials and returns a signed bearer token with
	// the account summary.
	Login(ctx context.Context, req *domain.LoginRequest) (string, *domain.SafeUser, error)
	ResetPassword(ctx context.Context, req *domain.ResetPasswordRequest) error
	Get(ctx context.Context, userID string) (*domain.SafeUser, error)
	List(ctx context.Context) ([]domain.SafeUser, error)
	Update(ctx context.Context, userID string, req *domain.UpdateUserRequest) (*domain.SafeUser, error)
	Delete(ctx context.Context, userID string) error
}

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	Delete(ctx context.Context, userID string) error
	Scan(ctx context.Context) ([]domain.User, error)
}

type tokenSigner interface {
	Sign(userID, email, role string) (string, error)
}

type service struct {
	users  userStore
	tokens tokenSigner
}

type ServiceDeps struct {
	UserRepo userStore
	Tokens   tokenSigner
}

func NewService(deps ServiceDeps) Service {
	return &service{users: deps.UserRepo, tokens: deps.Tokens}
}

func (s *service) Register(ctx context.Context, req *domain.CreateUserRequest) (*domain.SafeUser, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email %s already registered: %w", req.Email, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = domain.RoleUser
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Put(ctx, u); err != nil {
		return nil, err
	}
	return u.Safe(), nil
}

func (s *service) Login(ctx context.Context, req *domain.LoginRequest) (string, *domain.SafeUser, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	token, err := s.tokens.Sign(u.UserID, u.Email, u.Role)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, u.Safe(), nil
}

func (s *service) ResetPassword(ctx context.Context, req *domain.ResetPasswordRequest) error {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.users.Update(ctx, u.UserID, map[string]interface{}{
		"password_hash": string(hash),
	})
}

func (s *service) Get(ctx context.Context, userID string) (*domain.SafeUser, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Safe(), nil
}

func (s *service) List(ctx context.Context) ([]domain.SafeUser, error) {
	users, err := s.users.Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SafeUser, 0, len(users))
	for i := range users {
		out = append(out, *users[i].Safe())
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, userID string, req *domain.UpdateUserRequest) (*domain.SafeUser, error) {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		// A changed email must not collide with another account.
		if other, err := s.users.GetByEmail(ctx, *req.Email); err == nil && other.UserID != userID {
			return nil, fmt.Errorf("email %s already registered: %w", *req.Email, domain.ErrConflict)
		}
		fields["email"] = *req.Email
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}

	if err := s.users.Update(ctx, userID, fields); err != nil {
		return nil, err
	}
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Safe(), nil
}

func (s *service) Delete(ctx context.Context, userID string) error {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return err
	}
	return s.users.Delete(ctx, userID)
}
