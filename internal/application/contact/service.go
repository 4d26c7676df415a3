package contact

import (
	"context"
	"log/slog"
	"time"

	"github.com/kapee-shop/api/internal/domain"
	"github.com/kapee-shop/api/internal/infrastructure/smtp"
	"github.com/kapee-shop/api/internal/pkg/id"
)

const (
	adminSubject = "New Contact Form Submission"
	replySubject = "We received your message"
)

type Service interface {
	// Submit stores the message, then notifies the shop admin and sends the
	// visitor an acknowledgement. Mail failures are logged, not surfaced; the
	// submission already succeeded.
	Submit(ctx context.Context, req *domain.CreateContactRequest) (*domain.Contact, error)
	Get(ctx context.Context, contactID string) (*domain.Contact, error)
	List(ctx context.Context) ([]domain.Contact, error)
	Delete(ctx context.Context, contactID string) error
}

type contactStore interface {
	Put(ctx context.Context, c *domain.Contact) error
	Get(ctx context.Context, contactID string) (*domain.Contact, error)
	Scan(ctx context.Context) ([]domain.Contact, error)
	Delete(ctx context.Context, contactID string) error
}

type service struct {
	contacts   contactStore
	mailer     smtp.Mailer
	adminEmail string
}

type ServiceDeps struct {
	ContactRepo contactStore
	Mailer      smtp.Mailer
	AdminEmail  string
}

func NewService(deps ServiceDeps) Service {
	return &service{contacts: deps.ContactRepo, mailer: deps.Mailer, adminEmail: deps.AdminEmail}
}

func (s *service) Submit(ctx context.Context, req *domain.CreateContactRequest) (*domain.Contact, error) {
	c := &domain.Contact{
		ContactID: id.New(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.contacts.Put(ctx, c); err != nil {
		return nil, err
	}

	if s.adminEmail != "" {
		if err := s.mailer.SendEmail(s.adminEmail, adminSubject,
			smtp.ContactAdminEmailHTML(c.Name, c.Email, c.Phone, c.Message)); err != nil {
			slog.Warn("failed to notify admin of contact submission", "contact_id", c.ContactID, "err", err)
		}
	}
	if err := s.mailer.SendEmail(c.Email, replySubject, smtp.ContactReplyEmailHTML(c.Name)); err != nil {
		slog.Warn("failed to send contact acknowledgement", "contact_id", c.ContactID, "err", err)
	}

	return c, nil
}

func (s *service) Get(ctx context.Context, contactID string) (*domain.Contact, error) {
	return s.contacts.Get(ctx, contactID)
}

func (s *service) List(ctx context.Context) ([]domain.Contact, error) {
	return s.contacts.Scan(ctx)
}

func (s *service) Delete(ctx context.Context, contactID string) error {
	if _, err := s.contacts.Get(ctx, contactID); err != nil {
		return err
	}
	return s.contacts.Delete(ctx, contactID)
}
