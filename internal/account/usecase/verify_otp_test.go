package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/danukusuma/authcore/internal/pkg/goerror"
)

func loginForOTP(t *testing.T, f *fixture, email, password string) string {
	t.Helper()

	out, err := f.uc.Login(context.Background(), LoginInput{Email: email, Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if out.OTP == "" {
		t.Fatal("expected exposed otp code in test config")
	}

	return out.OTP
}

func TestVerifyOTP(t *testing.T) {

	t.Run("Success", func(t *testing.T) {

		// Arrange
		f := newFixture(t)
		f.seedUser(t, 1, "known@example.com", "Secret123!")
		code := loginForOTP(t, f, "known@example.com", "Secret123!")

		// Act
		out, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Email: "known@example.com",
			OTP:   code,
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.AccessToken == "" {
			t.Fatal("expected access token")
		}
		if out.User == nil || out.User.ID != 1 {
			t.Fatal("expected user snapshot in output")
		}

		claims, err := f.jwt.Verify(out.AccessToken)
		if err != nil {
			t.Fatalf("verify token: %v", err)
		}
		if claims.UserID != 1 || claims.UserEmail != "known@example.com" {
			t.Fatalf("unexpected claims: %+v", claims)
		}
	})

	t.Run("ReplayRejected", func(t *testing.T) {

		// Arrange
		f := newFixture(t)
		f.seedUser(t, 1, "known@example.com", "Secret123!")
		code := loginForOTP(t, f, "known@example.com", "Secret123!")

		if _, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Email: "known@example.com",
			OTP:   code,
		}); err != nil {
			t.Fatalf("first verify: %v", err)
		}

		// Act
		_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Email: "known@example.com",
			OTP:   code,
		})

		// Assert
		assertGoError(t, err, goerror.CodeInvalidInput, "Invalid or expired OTP")
	})

	t.Run("UnknownEmail", func(t *testing.T) {

		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Email: "nobody@example.com",
			OTP:   "123456",
		})

		// Assert
		assertGoError(t, err, goerror.CodeNotFound, "User not found")
	})

	t.Run("NoChallengePending", func(t *testing.T) {

		// Arrange
		f := newFixture(t)
		f.seedUser(t, 1, "known@example.com", "Secret123!")

		// Act
		_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Email: "known@example.com",
			OTP:   "123456",
		})

		// Assert
		assertGoError(t, err, goerror.CodeInvalidInput, "Invalid or expired OTP")
	})

	t.Run("WrongCodeDoesNotConsume", func(t *testing.T) {

		// Arrange
		f := newFixture(t)
		f.seedUser(t, 1, "known@example.com", "Secret123!")
		code := loginForOTP(t, f, "known@example.com", "Secret123!")

		wrong := "000000"
		if wrong == code {
			wrong = "000001"
		}

		// Act
		_, wrongErr := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Email: "known@example.com",
			OTP:   wrong,
		})
		_, rightErr := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Email: "known@example.com",
			OTP:   code,
		})

		// Assert
		assertGoError(t, wrongErr, goerror.CodeInvalidInput, "Invalid or expired OTP")
		if rightErr != nil {
			t.Fatalf("correct code after failed attempt should work: %v", rightErr)
		}
	})

	t.Run("AcceptedAtExpiryInstant", func(t *testing.T) {

		// Arrange
		f := newFixture(t)
		f.seedUser(t, 1, "known@example.com", "Secret123!")
		code := loginForOTP(t, f, "known@example.com", "Secret123!")

		f.clock.now = f.repo.challenges[1].expiresAt

		// Act
		_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Email: "known@example.com",
			OTP:   code,
		})

		// Assert
		if err != nil {
			t.Fatalf("code should still be valid at the expiry instant: %v", err)
		}
	})

	t.Run("RejectedAfterExpiry", func(t *testing.T) {

		// Arrange
		f := newFixture(t)
		f.seedUser(t, 1, "known@example.com", "Secret123!")
		code := loginForOTP(t, f, "known@example.com", "Secret123!")

		f.clock.now = f.repo.challenges[1].expiresAt.Add(time.Second)

		// Act
		_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Email: "known@example.com",
			OTP:   code,
		})

		// Assert
		assertGoError(t, err, goerror.CodeInvalidInput, "Invalid or expired OTP")
	})

	t.Run("LeadingZerosMatchedExactly", func(t *testing.T) {

		// Arrange
		f := newFixture(t)
		f.seedUser(t, 1, "known@example.com", "Secret123!")
		if err := f.repo.SetOTPChallenge(context.Background(), 1, "001234", f.clock.now.Add(10*time.Minute)); err != nil {
			t.Fatalf("set challenge: %v", err)
		}

		// Act
		_, shortErr := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Email: "known@example.com",
			OTP:   "1234",
		})
		_, exactErr := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Email: "known@example.com",
			OTP:   "001234",
		})

		// Assert
		assertGoError(t, shortErr, goerror.CodeInvalidInput, "")
		if exactErr != nil {
			t.Fatalf("exact code with leading zeros should be accepted: %v", exactErr)
		}
	})
}
