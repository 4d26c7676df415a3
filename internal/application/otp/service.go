package otp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kapee-shop/api/internal/domain"
	"github.com/kapee-shop/api/internal/infrastructure/smtp"
	"github.com/kapee-shop/api/internal/pkg/id"
	"github.com/kapee-shop/api/internal/pkg/otpcode"
)

const (
	// codeTTL is how long an issued code stays valid.
	codeTTL = 5 * time.Minute
	// resendWindow is the minimum gap between issuances for one user.
	resendWindow = 60 * time.Second

	emailSubject = "Your Kapee Shop Verification Code"
)

type Service interface {
	// Create issues a fresh code for the account behind email, mails it, and
	// returns the expiry. The code itself is never returned.
	Create(ctx context.Context, email string) (*domain.OTPIssued, error)
	// Verify consumes the code. A wrong code and an expired code are
	// indistinguishable to the caller.
	Verify(ctx context.Context, email, code string) (*domain.SafeUser, error)
	// Resend behaves like Create unless a code was issued within the last
	// minute, in which case it fails without touching stored state.
	Resend(ctx context.Context, email string) (*domain.OTPIssued, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type codeStore interface {
	Put(ctx context.Context, c *domain.OneTimeCode) error
	FindActive(ctx context.Context, userID, code string, now int64) (*domain.OneTimeCode, error)
	FindMostRecent(ctx context.Context, userID string) (*domain.OneTimeCode, error)
	DeleteAllForUser(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID, otpID string) error
}

type service struct {
	users  userStore
	codes  codeStore
	mailer smtp.Mailer
}

type ServiceDeps struct {
	UserRepo userStore
	OTPRepo  codeStore
	Mailer   smtp.Mailer
}

func NewService(deps ServiceDeps) Service {
	return &service{users: deps.UserRepo, codes: deps.OTPRepo, mailer: deps.Mailer}
}

// Create is delete-then-insert: prior codes for the user are removed before
// the new one is written, so at most one code is active per user. The two
// storage calls are not one transaction; two concurrent Creates for the same
// user can interleave and briefly leave two live codes. The resend window and
// the per-IP limiter on the issuance endpoints keep that window narrow.
func (s *service) Create(ctx context.Context, email string) (*domain.OTPIssued, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("no account for %s: %w", email, domain.ErrNotFound)
	}

	if err := s.codes.DeleteAllForUser(ctx, u.UserID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rec := &domain.OneTimeCode{
		UserID:    u.UserID,
		OTPID:     id.New(),
		Code:      otpcode.Generate(),
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(codeTTL).Unix(),
	}
	if err := s.codes.Put(ctx, rec); err != nil {
		return nil, err
	}

	if err := s.mailer.SendEmail(u.Email, emailSubject, smtp.OTPEmailHTML(u.Name, u.Email, rec.Code)); err != nil {
		// Compensate: the code was never delivered, so it must not stay
		// live. A failed compensating delete changes nothing for the caller.
		if delErr := s.codes.Delete(ctx, u.UserID, rec.OTPID); delErr != nil {
			slog.Warn("failed to delete undelivered code", "user_id", u.UserID, "err", delErr)
		}
		return nil, fmt.Errorf("send verification email: %v: %w", err, domain.ErrDeliveryFailed)
	}

	return &domain.OTPIssued{UserID: u.UserID, Email: u.Email, ExpiresAt: rec.ExpiresAt}, nil
}

func (s *service) Verify(ctx context.Context, email, code string) (*domain.SafeUser, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("no account for %s: %w", email, domain.ErrNotFound)
	}

	if _, err := s.codes.FindActive(ctx, u.UserID, code, time.Now().Unix()); err != nil {
		return nil, fmt.Errorf("verification failed: %w", domain.ErrInvalidOrExpired)
	}

	// One-time use: consume every record for the user, not just the match.
	// A failed consume fails the whole call; reporting success here would
	// leave the code live for a second verification.
	if err := s.codes.DeleteAllForUser(ctx, u.UserID); err != nil {
		return nil, fmt.Errorf("consume verified codes: %w", err)
	}

	return u.Safe(), nil
}

func (s *service) Resend(ctx context.Context, email string) (*domain.OTPIssued, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("no account for %s: %w", email, domain.ErrNotFound)
	}

	// The window is anchored to the most recent issuance, so each successful
	// resend restarts it.
	if last, err := s.codes.FindMostRecent(ctx, u.UserID); err == nil {
		if time.Since(time.Unix(last.CreatedAt, 0)) < resendWindow {
			return nil, fmt.Errorf("wait before requesting a new code: %w", domain.ErrRateLimited)
		}
	}

	return s.Create(ctx, email)
}
