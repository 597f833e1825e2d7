package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/danukusuma/authcore/internal/account/entity"
	"github.com/danukusuma/authcore/internal/pkg/goerror"
)

type UserUpdateInput struct {
	ID int64 `validate:"required"`

	FullName    *string    `validate:"omitempty,min=2,max=100,alphaspace"`
	CompanyName *string    `validate:"omitempty,min=2,max=100"`
	Age         *int32     `validate:"omitempty,min=18"`
	DateOfBirth *time.Time `validate:"omitempty"`
	Password    *string    `validate:"omitempty,password"`
}

type UserUpdateOutput struct {
	User *entity.User
}

// UserUpdate applies a partial profile update. Principals may only update
// their own account; a new password is re-hashed before storage.
func (s *Usecase) UserUpdate(ctx context.Context, in UserUpdateInput) (*UserUpdateOutput, error) {
	ctx, span := s.startSpan(ctx, "UserUpdate")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if clm.UserID != in.ID {
		slog.WarnContext(ctx, "user update denied", "user_id", clm.UserID, "target_id", in.ID)
		return nil, goerror.NewBusiness("You can only update your own account", goerror.CodeForbidden)
	}

	if in.FullName != nil {
		trimmed := strings.TrimSpace(*in.FullName)
		in.FullName = &trimmed
	}
	if in.CompanyName != nil {
		trimmed := strings.TrimSpace(*in.CompanyName)
		in.CompanyName = &trimmed
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	var hashed string
	if in.Password != nil {
		h, err := s.bcrypt.Hash(*in.Password)
		if err != nil {
			slog.ErrorContext(ctx, "failed to hash password", "user_id", in.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
		hashed = string(h)
	}

	user, err := s.repoDB.UpdateUser(ctx, entity.PatchUser{
		ID:          in.ID,
		FullName:    in.FullName,
		CompanyName: in.CompanyName,
		Age:         in.Age,
		DateOfBirth: in.DateOfBirth,
	}, hashed)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update user", "user_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UserUpdateOutput{User: user}, nil
}
