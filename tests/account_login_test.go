package tests

import (
	"net/http"
	"testing"
)

func TestLogin(t *testing.T) {

	t.Run("IssuesOTPChallenge", func(t *testing.T) {

		// Arrange
		email := uniqueEmail("login")
		registerUser(t, email)

		// Act
		status, data, errEnv := login(t, email, testPassword)

		// Assert
		if status != http.StatusOK {
			t.Fatalf("login failed: status=%d message=%q", status, errEnv.Message)
		}
		if !data.RequiresOTP {
			t.Fatal("expected requires_otp to be true")
		}
		if data.Email != email {
			t.Fatalf("expected email %q, got %q", email, data.Email)
		}
		if data.OTP != "" && len(data.OTP) != 6 {
			t.Fatalf("exposed otp must be 6 digits, got %q", data.OTP)
		}
	})

	t.Run("UnknownEmailAndWrongPasswordAreIdentical", func(t *testing.T) {

		// Arrange
		email := uniqueEmail("login-fail")
		registerUser(t, email)

		// Act
		unknownStatus, _, unknownErr := login(t, uniqueEmail("login-ghost"), testPassword)
		wrongStatus, _, wrongErr := login(t, email, "WrongPass1!")

		// Assert
		if unknownStatus != http.StatusUnauthorized || wrongStatus != http.StatusUnauthorized {
			t.Fatalf("expected 401 for both, got %d and %d", unknownStatus, wrongStatus)
		}
		if unknownErr.Message != "Sorry, we can't log you in." {
			t.Fatalf("unexpected message %q", unknownErr.Message)
		}
		if unknownErr.Message != wrongErr.Message {
			t.Fatalf("failure messages differ: %q vs %q", unknownErr.Message, wrongErr.Message)
		}
	})

	t.Run("InvalidEmailFormat", func(t *testing.T) {

		// Act
		status, _, _ := login(t, "not-an-email", testPassword)

		// Assert
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
	})
}
