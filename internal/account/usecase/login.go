package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/danukusuma/authcore/internal/pkg/goerror"
)

// loginFailedMessage is shared by the unknown-email and wrong-password paths
// so responses cannot be used to probe which emails are registered.
const loginFailedMessage = "Sorry, we can't log you in."

// dummyHash keeps the unknown-email path doing the same bcrypt work as a
// password mismatch.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	Email       string
	FullName    string
	RequiresOTP bool
	// OTP is only populated when the expose_otp_codes development flag is on.
	OTP string
}

// Login verifies credentials and, on success, issues a fresh OTP challenge.
// No session token is minted here; the flow completes in VerifyOTP.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserCredentialByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "login for unknown email", "email", in.Email)
		s.bcrypt.Verify(dummyHash, in.Password)
		return nil, goerror.NewBusiness(loginFailedMessage, goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user credential by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(user.Password, in.Password) {
		slog.WarnContext(ctx, "login password mismatch", "user_id", user.ID)
		return nil, goerror.NewBusiness(loginFailedMessage, goerror.CodeUnauthorized)
	}

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	expiresAt := s.clock.Now().Add(s.cfg.GetMinute("modules.account.otp_ttl_minutes"))

	// Overwrites any prior challenge, so only the newest code is valid.
	if err := s.repoDB.SetOTPChallenge(ctx, user.ID, code, expiresAt); err != nil {
		slog.ErrorContext(ctx, "failed to repo set otp challenge", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	// Delivery happens out of band; a slow broker must not delay the response.
	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishOTPIssued(ctx, OTPIssuedEvent{
			UserID:    user.ID,
			Email:     user.Email,
			FullName:  user.FullName,
			Code:      code,
			ExpiresAt: expiresAt,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish otp issued", "user_id", user.ID, "error", err)
		}
		return nil
	})

	out := &LoginOutput{
		Email:       user.Email,
		FullName:    user.FullName,
		RequiresOTP: true,
	}

	// Development convenience only; never enable in production.
	if s.cfg.GetBool("modules.account.expose_otp_codes") {
		out.OTP = code
	}

	return out, nil
}
