package domain

// OneTimeCode is a short-lived email verification code for one account.
// PK: user_id, SK: otp_id (ULID, so the newest record sorts last).
// ExpiresAt is a Unix timestamp used as the DynamoDB TTL attribute.
type OneTimeCode struct {
	UserID    string `json:"user_id" dynamodbav:"user_id"`
	OTPID     string `json:"otp_id" dynamodbav:"otp_id"`
	Code      string `json:"-" dynamodbav:"code"`
	CreatedAt int64  `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}

type CreateOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

// OTPIssued is the confirmation returned after a code is created and mailed.
// The code itself is never returned.
type OTPIssued struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"expires_at"`
}
