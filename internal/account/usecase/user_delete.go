package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danukusuma/authcore/internal/pkg/goerror"
)

type UserDeleteInput struct {
	ID int64 `validate:"required"`
}

// UserDelete removes an account. Principals may only delete their own.
func (s *Usecase) UserDelete(ctx context.Context, in UserDeleteInput) error {
	ctx, span := s.startSpan(ctx, "UserDelete")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if clm.UserID != in.ID {
		slog.WarnContext(ctx, "user delete denied", "user_id", clm.UserID, "target_id", in.ID)
		return goerror.NewBusiness("You can only delete your own account", goerror.CodeForbidden)
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err = s.repoDB.DeleteUser(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete user", "user_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
