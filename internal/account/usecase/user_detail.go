package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danukusuma/authcore/internal/account/entity"
	"github.com/danukusuma/authcore/internal/pkg/goerror"
)

type UserDetailInput struct {
	ID int64 `validate:"required"`
}

type UserDetailOutput struct {
	User *entity.User
}

// UserDetail returns a profile by ID. Any authenticated principal may look up
// any profile.
func (s *Usecase) UserDetail(ctx context.Context, in UserDetailInput) (*UserDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "UserDetail")
	defer span.End()

	if _, err := s.authenticated(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UserDetailOutput{User: user}, nil
}
