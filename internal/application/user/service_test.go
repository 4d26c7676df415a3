package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kapee-shop/api/internal/domain"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}

func (m *mockUserStore) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockUserStore) Scan(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSigner struct{ mock.Mock }

func (m *mockSigner) Sign(userID, email, role string) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}

func newTestService(t *testing.T) (Service, *mockUserStore, *mockSigner) {
	t.Helper()
	users := new(mockUserStore)
	signer := new(mockSigner)
	return NewService(ServiceDeps{UserRepo: users, Tokens: signer}), users, signer
}

func TestRegister_HashesPasswordAndDefaultsRole(t *testing.T) {
	svc, users, _ := newTestService(t)

	users.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, domain.ErrNotFound)

	var stored *domain.User
	users.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.User) }).
		Return(nil)

	safe, err := svc.Register(context.Background(), &domain.CreateUserRequest{
		Name: "Ada", Email: "ada@example.com", Password: "sekrit1",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleUser, safe.Role)
	require.NotNil(t, stored)
	assert.NotEqual(t, "sekrit1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("sekrit1")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, users, _ := newTestService(t)

	users.On("GetByEmail", mock.Anything, "ada@example.com").
		Return(&domain.User{UserID: "user-1", Email: "ada@example.com"}, nil)

	_, err := svc.Register(context.Background(), &domain.CreateUserRequest{
		Name: "Ada", Email: "ada@example.com", Password: "sekrit1",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	users.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestLogin_GoodAndBadPassword(t *testing.T) {
	svc, users, signer := newTestService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("sekrit1"), bcrypt.MinCost)
	require.NoError(t, err)

	u := &domain.User{UserID: "user-1", Email: "ada@example.com", PasswordHash: string(hash), Role: domain.RoleUser}
	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)
	signer.On("Sign", u.UserID, u.Email, u.Role).Return("signed-token", nil)

	token, safe, err := svc.Login(context.Background(), &domain.LoginRequest{Email: u.Email, Password: "sekrit1"})
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	assert.Equal(t, u.UserID, safe.UserID)

	_, _, err = svc.Login(context.Background(), &domain.LoginRequest{Email: u.Email, Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UnknownEmailLooksLikeBadPassword(t *testing.T) {
	svc, users, _ := newTestService(t)

	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

	_, _, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "ghost@example.com", Password: "anything"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUpdate_EmailCollision(t *testing.T) {
	svc, users, _ := newTestService(t)

	users.On("Get", mock.Anything, "user-1").Return(&domain.User{UserID: "user-1"}, nil)
	users.On("GetByEmail", mock.Anything, "taken@example.com").
		Return(&domain.User{UserID: "user-2", Email: "taken@example.com"}, nil)

	email := "taken@example.com"
	_, err := svc.Update(context.Background(), "user-1", &domain.UpdateUserRequest{Email: &email})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestList_StripsPasswordHashes(t *testing.T) {
	svc, users, _ := newTestService(t)

	users.On("Scan", mock.Anything).Return([]domain.User{
		{UserID: "user-1", Name: "Ada", Email: "ada@example.com", PasswordHash: "hash", Role: domain.RoleUser},
	}, nil)

	out, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Ada", out[0].Name)
}
