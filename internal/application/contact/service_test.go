package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kapee-shop/api/internal/domain"
)

type mockContactStore struct{ mock.Mock }

func (m *mockContactStore) Put(ctx context.Context, c *domain.Contact) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockContactStore) Get(ctx context.Context, contactID string) (*domain.Contact, error) {
	args := m.Called(ctx, contactID)
	if c := args.Get(0); c != nil {
		return c.(*domain.Contact), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockContactStore) Scan(ctx context.Context) ([]domain.Contact, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.([]domain.Contact), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockContactStore) Delete(ctx context.Context, contactID string) error {
	return m.Called(ctx, contactID).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, htmlBody string) error {
	return m.Called(to, subject, htmlBody).Error(0)
}

func submission() *domain.CreateContactRequest {
	return &domain.CreateContactRequest{
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: "Where is my wireless mouse order?",
	}
}

func TestSubmit_NotifiesAdminAndVisitor(t *testing.T) {
	contacts := new(mockContactStore)
	mailer := new(mockMailer)
	svc := NewService(ServiceDeps{ContactRepo: contacts, Mailer: mailer, AdminEmail: "admin@kapee.shop"})

	contacts.On("Put", mock.Anything, mock.AnythingOfType("*domain.Contact")).Return(nil)
	mailer.On("SendEmail", "admin@kapee.shop", adminSubject, mock.AnythingOfType("string")).Return(nil)
	mailer.On("SendEmail", "ada@example.com", replySubject, mock.AnythingOfType("string")).Return(nil)

	c, err := svc.Submit(context.Background(), submission())
	require.NoError(t, err)
	assert.NotEmpty(t, c.ContactID)
	mailer.AssertNumberOfCalls(t, "SendEmail", 2)
}

func TestSubmit_MailFailureDoesNotFailSubmission(t *testing.T) {
	contacts := new(mockContactStore)
	mailer := new(mockMailer)
	svc := NewService(ServiceDeps{ContactRepo: contacts, Mailer: mailer, AdminEmail: "admin@kapee.shop"})

	contacts.On("Put", mock.Anything, mock.AnythingOfType("*domain.Contact")).Return(nil)
	mailer.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	c, err := svc.Submit(context.Background(), submission())
	require.NoError(t, err)
	assert.NotEmpty(t, c.ContactID)
}

func TestSubmit_StoreFailureSkipsMail(t *testing.T) {
	contacts := new(mockContactStore)
	mailer := new(mockMailer)
	svc := NewService(ServiceDeps{ContactRepo: contacts, Mailer: mailer, AdminEmail: "admin@kapee.shop"})

	contacts.On("Put", mock.Anything, mock.AnythingOfType("*domain.Contact")).Return(errors.New("dynamo down"))

	_, err := svc.Submit(context.Background(), submission())
	assert.Error(t, err)
	mailer.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything)
}
