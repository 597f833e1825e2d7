package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/danukusuma/authcore/internal/pkg/goerror"
)

func validRegisterInput(email string) RegisterInput {
	return RegisterInput{
		FullName:    "Danu Kusuma",
		Email:       email,
		Password:    "Secret123!",
		CompanyName: "Acme Corp",
		Age:         28,
		DateOfBirth: time.Date(1997, time.June, 2, 0, 0, 0, 0, time.UTC),
		Image:       pngBytes,
		ImageName:   "avatar.png",
	}
}

func TestRegister(t *testing.T) {

	t.Run("Success", func(t *testing.T) {

		// Arrange
		f := newFixture(t)

		// Act
		out, err := f.uc.Register(context.Background(), validRegisterInput("new@example.com"))

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.AccessToken == "" {
			t.Fatal("expected access token for new account")
		}
		if out.User == nil || out.User.Email != "new@example.com" {
			t.Fatalf("unexpected user snapshot: %+v", out.User)
		}

		claims, err := f.jwt.Verify(out.AccessToken)
		if err != nil {
			t.Fatalf("verify token: %v", err)
		}
		if claims.UserID != out.User.ID {
			t.Fatal("token subject does not match created user")
		}

		if len(f.storage.puts) != 1 {
			t.Fatalf("expected one uploaded object, got %d", len(f.storage.puts))
		}
		put := f.storage.puts[0]
		if put.bucket != "authcore-test" || put.contentType != "image/png" {
			t.Fatalf("unexpected upload: %+v", put)
		}
		if !strings.HasPrefix(put.key, "profiles/") || !strings.HasSuffix(put.key, ".png") {
			t.Fatalf("unexpected object key %q", put.key)
		}
		if !strings.Contains(out.User.ProfileImageURL, put.key) {
			t.Fatalf("profile url %q does not reference object %q", out.User.ProfileImageURL, put.key)
		}

		if events := f.messaging.registeredEvents(); len(events) != 1 {
			t.Fatalf("expected one registered event, got %d", len(events))
		}
		if f.messaging.registeredEvents()[0].UserID != out.User.ID {
			t.Fatal("registered event does not reference created user")
		}
	})

	t.Run("EmailNormalized", func(t *testing.T) {

		// Arrange
		f := newFixture(t)
		in := validRegisterInput(" New@Example.COM ")

		// Act
		out, err := f.uc.Register(context.Background(), in)

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.User.Email != "new@example.com" {
			t.Fatalf("expected normalized email, got %q", out.User.Email)
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {

		// Arrange
		f := newFixture(t)
		f.seedUser(t, 1, "taken@example.com", "Secret123!")

		// Act
		_, err := f.uc.Register(context.Background(), validRegisterInput("taken@example.com"))

		// Assert
		assertGoError(t, err, goerror.CodeInvalidInput, "User already exists with this email!")
	})

	t.Run("ReplayBlocked", func(t *testing.T) {

		// Arrange
		f := newFixture(t)
		if _, err := f.uc.Register(context.Background(), validRegisterInput("new@example.com")); err != nil {
			t.Fatalf("first register: %v", err)
		}

		// Act
		_, err := f.uc.Register(context.Background(), validRegisterInput("new@example.com"))

		// Assert
		assertGoError(t, err, goerror.CodeInvalidInput, "User already exists with this email!")
	})

	t.Run("WeakPassword", func(t *testing.T) {

		// Arrange
		f := newFixture(t)
		in := validRegisterInput("new@example.com")
		in.Password = "alllowercase"

		// Act
		_, err := f.uc.Register(context.Background(), in)

		// Assert
		assertGoError(t, err, goerror.CodeInvalidInput, "")
	})

	t.Run("Underage", func(t *testing.T) {

		// Arrange
		f := newFixture(t)
		in := validRegisterInput("new@example.com")
		in.Age = 17

		// Act
		_, err := f.uc.Register(context.Background(), in)

		// Assert
		assertGoError(t, err, goerror.CodeInvalidInput, "")
	})

	t.Run("MissingImage", func(t *testing.T) {

		// Arrange
		f := newFixture(t)
		in := validRegisterInput("new@example.com")
		in.Image = nil

		// Act
		_, err := f.uc.Register(context.Background(), in)

		// Assert
		assertGoError(t, err, goerror.CodeInvalidInput, "")
	})

	t.Run("NonImageUpload", func(t *testing.T) {

		// Arrange
		f := newFixture(t)
		in := validRegisterInput("new@example.com")
		in.Image = []byte("definitely not an image payload")

		// Act
		_, err := f.uc.Register(context.Background(), in)

		// Assert
		assertGoError(t, err, goerror.CodeInvalidInput, "")
	})

	t.Run("OversizedImage", func(t *testing.T) {

		// Arrange
		f := newFixture(t)
		in := validRegisterInput("new@example.com")
		big := make([]byte, maxProfileImageBytes+1)
		copy(big, pngBytes)
		in.Image = big

		// Act
		_, err := f.uc.Register(context.Background(), in)

		// Assert
		assertGoError(t, err, goerror.CodeInvalidInput, "")
	})
}
