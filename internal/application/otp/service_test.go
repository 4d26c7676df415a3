package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kapee-shop/api/internal/domain"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCodeStore struct{ mock.Mock }

func (m *mockCodeStore) Put(ctx context.Context, c *domain.OneTimeCode) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCodeStore) FindActive(ctx context.Context, userID, code string, now int64) (*domain.OneTimeCode, error) {
	args := m.Called(ctx, userID, code, now)
	if c := args.Get(0); c != nil {
		return c.(*domain.OneTimeCode), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCodeStore) FindMostRecent(ctx context.Context, userID string) (*domain.OneTimeCode, error) {
	args := m.Called(ctx, userID)
	if c := args.Get(0); c != nil {
		return c.(*domain.OneTimeCode), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCodeStore) DeleteAllForUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockCodeStore) Delete(ctx context.Context, userID, otpID string) error {
	return m.Called(ctx, userID, otpID).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, htmlBody string) error {
	return m.Called(to, subject, htmlBody).Error(0)
}

func newTestService(t *testing.T) (Service, *mockUserStore, *mockCodeStore, *mockMailer) {
	t.Helper()
	users := new(mockUserStore)
	codes := new(mockCodeStore)
	mailer := new(mockMailer)
	svc := NewService(ServiceDeps{UserRepo: users, OTPRepo: codes, Mailer: mailer})
	return svc, users, codes, mailer
}

func testUser() *domain.User {
	return &domain.User{UserID: "user-1", Name: "Ada", Email: "ada@example.com", Role: domain.RoleUser}
}

func TestCreate_IssuesAndMails(t *testing.T) {
	svc, users, codes, mailer := newTestService(t)
	u := testUser()

	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)
	codes.On("DeleteAllForUser", mock.Anything, u.UserID).Return(nil)

	var stored *domain.OneTimeCode
	codes.On("Put", mock.Anything, mock.AnythingOfType("*domain.OneTimeCode")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.OneTimeCode) }).
		Return(nil)
	mailer.On("SendEmail", u.Email, emailSubject, mock.AnythingOfType("string")).Return(nil)

	issued, err := svc.Create(context.Background(), u.Email)
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Len(t, stored.Code, 6)
	assert.Equal(t, stored.CreatedAt+int64(codeTTL.Seconds()), stored.ExpiresAt)
	assert.Equal(t, u.UserID, issued.UserID)
	assert.Equal(t, stored.ExpiresAt, issued.ExpiresAt)

	// The mail body carries the code, the response does not.
	body := mailer.Calls[0].Arguments.String(2)
	assert.Contains(t, body, stored.Code)

	codes.AssertCalled(t, "DeleteAllForUser", mock.Anything, u.UserID)
}

func TestCreate_UnknownEmail(t *testing.T) {
	svc, users, codes, _ := newTestService(t)

	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

	_, err := svc.Create(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	codes.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCreate_MailFailureRollsBack(t *testing.T) {
	svc, users, codes, mailer := newTestService(t)
	u := testUser()

	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)
	codes.On("DeleteAllForUser", mock.Anything, u.UserID).Return(nil)

	var stored *domain.OneTimeCode
	codes.On("Put", mock.Anything, mock.AnythingOfType("*domain.OneTimeCode")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.OneTimeCode) }).
		Return(nil)
	mailer.On("SendEmail", u.Email, emailSubject, mock.AnythingOfType("string")).
		Return(errors.New("smtp refused"))
	codes.On("Delete", mock.Anything, u.UserID, mock.AnythingOfType("string")).Return(nil)

	_, err := svc.Create(context.Background(), u.Email)
	assert.ErrorIs(t, err, domain.ErrDeliveryFailed)

	require.NotNil(t, stored)
	codes.AssertCalled(t, "Delete", mock.Anything, u.UserID, stored.OTPID)
}

func TestCreate_RollbackFailureStillReportsDelivery(t *testing.T) {
	svc, users, codes, mailer := newTestService(t)
	u := testUser()

	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)
	codes.On("DeleteAllForUser", mock.Anything, u.UserID).Return(nil)
	codes.On("Put", mock.Anything, mock.AnythingOfType("*domain.OneTimeCode")).Return(nil)
	mailer.On("SendEmail", u.Email, emailSubject, mock.AnythingOfType("string")).
		Return(errors.New("smtp refused"))
	codes.On("Delete", mock.Anything, u.UserID, mock.AnythingOfType("string")).
		Return(errors.New("dynamo down"))

	_, err := svc.Create(context.Background(), u.Email)
	assert.ErrorIs(t, err, domain.ErrDeliveryFailed)
}

func TestVerify_ConsumesAllCodes(t *testing.T) {
	svc, users, codes, _ := newTestService(t)
	u := testUser()

	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)
	codes.On("FindActive", mock.Anything, u.UserID, "123456", mock.AnythingOfType("int64")).
		Return(&domain.OneTimeCode{UserID: u.UserID, OTPID: "otp-1", Code: "123456"}, nil)
	codes.On("DeleteAllForUser", mock.Anything, u.UserID).Return(nil)

	safe, err := svc.Verify(context.Background(), u.Email, "123456")
	require.NoError(t, err)
	assert.Equal(t, u.UserID, safe.UserID)

	codes.AssertCalled(t, "DeleteAllForUser", mock.Anything, u.UserID)
}

func TestVerify_ConsumeFailureFailsVerification(t *testing.T) {
	svc, users, codes, _ := newTestService(t)
	u := testUser()

	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)
	codes.On("FindActive", mock.Anything, u.UserID, "123456", mock.AnythingOfType("int64")).
		Return(&domain.OneTimeCode{UserID: u.UserID, OTPID: "otp-1", Code: "123456"}, nil)
	codes.On("DeleteAllForUser", mock.Anything, u.UserID).Return(errors.New("dynamo down"))

	// The code is still live, so success here would let the same code
	// verify again. The call must fail instead.
	safe, err := svc.Verify(context.Background(), u.Email, "123456")
	assert.Nil(t, safe)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidOrExpired)
}

func TestVerify_WrongAndExpiredLookTheSame(t *testing.T) {
	svc, users, codes, _ := newTestService(t)
	u := testUser()

	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)
	// The store answers identically for a wrong code and an expired one, so
	// the service cannot help but report them the same way.
	codes.On("FindActive", mock.Anything, u.UserID, mock.AnythingOfType("string"), mock.AnythingOfType("int64")).
		Return(nil, domain.ErrNotFound)

	_, wrongErr := svc.Verify(context.Background(), u.Email, "000000")
	_, expiredErr := svc.Verify(context.Background(), u.Email, "123456")

	assert.ErrorIs(t, wrongErr, domain.ErrInvalidOrExpired)
	assert.ErrorIs(t, expiredErr, domain.ErrInvalidOrExpired)
	assert.Equal(t, wrongErr.Error(), expiredErr.Error())

	codes.AssertNotCalled(t, "DeleteAllForUser", mock.Anything, mock.Anything)
}

func TestResend_WithinWindow(t *testing.T) {
	svc, users, codes, mailer := newTestService(t)
	u := testUser()

	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)
	codes.On("FindMostRecent", mock.Anything, u.UserID).
		Return(&domain.OneTimeCode{UserID: u.UserID, CreatedAt: time.Now().Add(-30 * time.Second).Unix()}, nil)

	_, err := svc.Resend(context.Background(), u.Email)
	assert.ErrorIs(t, err, domain.ErrRateLimited)

	codes.AssertNotCalled(t, "DeleteAllForUser", mock.Anything, mock.Anything)
	codes.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestResend_AfterWindowIssuesNewCode(t *testing.T) {
	svc, users, codes, mailer := newTestService(t)
	u := testUser()

	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)
	codes.On("FindMostRecent", mock.Anything, u.UserID).
		Return(&domain.OneTimeCode{UserID: u.UserID, CreatedAt: time.Now().Add(-2 * time.Minute).Unix()}, nil)
	codes.On("DeleteAllForUser", mock.Anything, u.UserID).Return(nil)
	codes.On("Put", mock.Anything, mock.AnythingOfType("*domain.OneTimeCode")).Return(nil)
	mailer.On("SendEmail", u.Email, emailSubject, mock.AnythingOfType("string")).Return(nil)

	issued, err := svc.Resend(context.Background(), u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.UserID, issued.UserID)

	// The old code is gone before the new one lands.
	codes.AssertCalled(t, "DeleteAllForUser", mock.Anything, u.UserID)
}

func TestResend_NoPriorCode(t *testing.T) {
	svc, users, codes, mailer := newTestService(t)
	u := testUser()

	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)
	codes.On("FindMostRecent", mock.Anything, u.UserID).Return(nil, domain.ErrNotFound)
	codes.On("DeleteAllForUser", mock.Anything, u.UserID).Return(nil)
	codes.On("Put", mock.Anything, mock.AnythingOfType("*domain.OneTimeCode")).Return(nil)
	mailer.On("SendEmail", u.Email, emailSubject, mock.AnythingOfType("string")).Return(nil)

	_, err := svc.Resend(context.Background(), u.Email)
	assert.NoError(t, err)
}
