package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/danukusuma/authcore/internal/pkg/goerror"
)

func TestLogin(t *testing.T) {

	t.Run("Success", func(t *testing.T) {

		// Arrange
		f := newFixture(t)
		f.seedUser(t, 1, "known@example.com", "Secret123!")

		// Act
		out, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "known@example.com",
			Password: "Secret123!",
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.RequiresOTP {
			t.Fatal("expected requires_otp to be true")
		}
		if len(out.OTP) != 6 {
			t.Fatalf("expected exposed 6-digit code, got %q", out.OTP)
		}
		for _, c := range out.OTP {
			if c < '0' || c > '9' {
				t.Fatalf("expected numeric code, got %q", out.OTP)
			}
		}

		ch, ok := f.repo.challenges[1]
		if !ok {
			t.Fatal("expected challenge to be stored")
		}
		if ch.code != out.OTP {
			t.Fatal("stored code does not match exposed code")
		}
		if want := f.clock.now.Add(10 * time.Minute); !ch.expiresAt.Equal(want) {
			t.Fatalf("expected expiry %v, got %v", want, ch.expiresAt)
		}

		waitFor(t, func() bool { return len(f.messaging.otpEvents()) == 1 })
		if got := f.messaging.otpEvents()[0].Code; got != out.OTP {
			t.Fatal("published code does not match issued code")
		}
	})

	t.Run("EmailNormalized", func(t *testing.T) {

		// Arrange
		f := newFixture(t)
		f.seedUser(t, 1, "known@example.com", "Secret123!")

		// Act
		out, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "  KNOWN@Example.COM ",
			Password: "Secret123!",
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Email != "known@example.com" {
			t.Fatalf("expected normalized email, got %q", out.Email)
		}
	})

	t.Run("UnknownEmailAndWrongPasswordAreIdentical", func(t *testing.T) {

		// Arrange
		f := newFixture(t)
		f.seedUser(t, 1, "known@example.com", "Secret123!")

		// Act
		_, unknownErr := f.uc.Login(context.Background(), LoginInput{
			Email:    "nobody@example.com",
			Password: "Secret123!",
		})
		_, wrongErr := f.uc.Login(context.Background(), LoginInput{
			Email:    "known@example.com",
			Password: "WrongPass1!",
		})

		// Assert
		assertGoError(t, unknownErr, goerror.CodeUnauthorized, "Sorry, we can't log you in.")
		assertGoError(t, wrongErr, goerror.CodeUnauthorized, "Sorry, we can't log you in.")
		if unknownErr.Error() != wrongErr.Error() {
			t.Fatal("expected both failure paths to produce identical errors")
		}
	})

	t.Run("ReissueInvalidatesPriorCode", func(t *testing.T) {

		// Arrange
		f := newFixture(t)
		f.seedUser(t, 1, "known@example.com", "Secret123!")

		first, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "known@example.com",
			Password: "Secret123!",
		})
		if err != nil {
			t.Fatalf("first login: %v", err)
		}

		// Act
		second, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "known@example.com",
			Password: "Secret123!",
		})
		if err != nil {
			t.Fatalf("second login: %v", err)
		}

		// Assert
		ch := f.repo.challenges[1]
		if ch.code != second.OTP {
			t.Fatal("expected newest code to be the stored challenge")
		}
		if first.OTP == second.OTP {
			t.Skip("codes collided; cannot assert invalidation")
		}
		ok, err := f.repo.ConsumeOTPChallenge(context.Background(), 1, first.OTP, f.clock.now)
		if err != nil {
			t.Fatalf("consume: %v", err)
		}
		if ok {
			t.Fatal("expected prior code to be invalid after reissue")
		}
	})

	t.Run("InvalidEmailFormat", func(t *testing.T) {

		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "not-an-email",
			Password: "Secret123!",
		})

		// Assert
		assertGoError(t, err, goerror.CodeInvalidInput, "")
	})
}
