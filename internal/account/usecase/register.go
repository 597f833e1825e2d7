package usecase

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danukusuma/authcore/internal/account/entity"
	"github.com/danukusuma/authcore/internal/pkg/goerror"
	"github.com/danukusuma/authcore/internal/pkg/idempotency"
	"github.com/danukusuma/authcore/internal/pkg/storage"
)

const maxProfileImageBytes = 5 << 20 // 5 MB

const duplicateEmailMessage = "User already exists with this email!"

type RegisterInput struct {
	FullName    string    `validate:"required,min=2,max=100,alphaspace"`
	Email       string    `validate:"required,email"`
	Password    string    `validate:"required,password"`
	CompanyName string    `validate:"required,min=2,max=100"`
	Age         int32     `validate:"required,min=18"`
	DateOfBirth time.Time `validate:"required"`

	Image     []byte
	ImageName string
}

type RegisterOutput struct {
	User        *entity.User
	AccessToken string
}

// Register creates an account and mints a session token immediately;
// registration does not go through the OTP challenge.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	in.CompanyName = strings.TrimSpace(in.CompanyName)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	contentType, err := validateProfileImage(in.Image)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	var out *RegisterOutput
	err = s.idemp.Exec(ctx, "account:register:"+in.Email, func(ctx context.Context) error {
		out, err = s.register(ctx, in, string(hashedPassword), contentType)
		return err
	})
	if errors.Is(err, idempotency.ErrAlreadyInProgress) ||
		errors.Is(err, idempotency.ErrAlreadyCompleted) ||
		errors.Is(err, idempotency.ErrAlreadyFailed) {
		slog.WarnContext(ctx, "registration replay blocked", "email", in.Email)
		return nil, goerror.NewBusiness(duplicateEmailMessage, goerror.CodeInvalidInput)
	}
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Usecase) register(ctx context.Context, in RegisterInput, hashed, contentType string) (*RegisterOutput, error) {
	_, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if err == nil {
		return nil, goerror.NewBusiness(duplicateEmailMessage, goerror.CodeInvalidInput)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	imageURL, err := s.uploadProfileImage(ctx, in.Image, contentType)
	if err != nil {
		return nil, err
	}

	newUser := entity.NewUser{
		ID:              s.uid.Generate(),
		Email:           in.Email,
		FullName:        in.FullName,
		CompanyName:     in.CompanyName,
		Age:             in.Age,
		DateOfBirth:     in.DateOfBirth,
		ProfileImageURL: imageURL,
	}

	if err := s.repoDB.CreateUser(ctx, newUser, hashed); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness(duplicateEmailMessage, goerror.CodeInvalidInput)
		}
		slog.ErrorContext(ctx, "failed to repo create user", "email", newUser.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	token, err := s.jwt.Generate(newUser.ID, newUser.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", newUser.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishUserRegistered(ctx, UserRegisteredEvent{
		UserID:   newUser.ID,
		Email:    newUser.Email,
		FullName: newUser.FullName,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish user registered", "user_id", newUser.ID, "error", err)
	}

	now := s.clock.Now()
	return &RegisterOutput{
		User: &entity.User{
			ID:              newUser.ID,
			Email:           newUser.Email,
			FullName:        newUser.FullName,
			CompanyName:     newUser.CompanyName,
			Age:             newUser.Age,
			DateOfBirth:     newUser.DateOfBirth,
			ProfileImageURL: newUser.ProfileImageURL,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		AccessToken: token,
	}, nil
}

func (s *Usecase) uploadProfileImage(ctx context.Context, image []byte, contentType string) (string, error) {
	bucket := s.cfg.GetString("storage.bucket")
	key := "profiles/" + s.uuid.Generate() + imageExtension(contentType)

	if _, err := s.storage.PutObject(ctx, bucket, key, bytes.NewReader(image), storage.PutOptions{
		Size:        int64(len(image)),
		ContentType: contentType,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to upload profile image", "bucket", bucket, "key", key, "error", err)
		return "", goerror.NewServer(err)
	}

	return strings.TrimRight(s.cfg.GetString("storage.public_base_url"), "/") + "/" + bucket + "/" + key, nil
}

func validateProfileImage(image []byte) (string, error) {
	if len(image) == 0 {
		return "", goerror.NewInvalidInput(nil, "profile_image", "Profile image is required")
	}
	if len(image) > maxProfileImageBytes {
		return "", goerror.NewInvalidInput(nil, "profile_image", "Profile image must be at most 5 MB")
	}

	contentType := http.DetectContentType(image)
	if contentType != "image/jpeg" && contentType != "image/png" {
		return "", goerror.NewInvalidInput(nil, "profile_image", "Profile image must be a JPEG or PNG")
	}

	return contentType, nil
}

func imageExtension(contentType string) string {
	if contentType == "image/png" {
		return ".png"
	}
	return ".jpg"
}
