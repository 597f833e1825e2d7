package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/danukusuma/authcore/internal/account/entity"
	"github.com/danukusuma/authcore/internal/pkg/goerror"
)

type VerifyOTPInput struct {
	Email string `validate:"required,email"`
	OTP   string `validate:"required,len=6,numeric"`
}

type VerifyOTPOutput struct {
	User        *entity.User
	AccessToken string
}

// VerifyOTP consumes the pending challenge and mints the session token.
//
// Rejections (no active challenge, wrong code, expired code, replay) are
// indistinguishable to the caller. The code is matched exactly; no trimming
// or normalization is applied to it.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) (*VerifyOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "otp verify for unknown email", "email", in.Email)
		return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	ok, err := s.repoDB.ConsumeOTPChallenge(ctx, user.ID, in.OTP, s.clock.Now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo consume otp challenge", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !ok {
		slog.WarnContext(ctx, "otp challenge rejected", "user_id", user.ID)
		return nil, goerror.NewBusiness("Invalid or expired OTP", goerror.CodeInvalidInput)
	}

	token, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &VerifyOTPOutput{
		User:        user,
		AccessToken: token,
	}, nil
}
