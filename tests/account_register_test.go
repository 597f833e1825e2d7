package tests

import (
	"bytes"
	"net/http"
	"testing"
)

func TestRegister(t *testing.T) {

	t.Run("Success", func(t *testing.T) {

		// Arrange
		email := uniqueEmail("register")

		// Act
		status, body := doMultipart(t, "/auth/register", registerFields(email), "profileImage", "avatar.png", pngBytes)

		// Assert
		if status != http.StatusCreated {
			errEnv := decodeError(t, body)
			t.Fatalf("expected 201, got %d message=%q", status, errEnv.Message)
		}

		var data registerData
		env := decodeSuccess(t, body, &data)
		if env.Message != "Registration successful" {
			t.Fatalf("unexpected message %q", env.Message)
		}
		if data.AccessToken == "" {
			t.Fatal("expected access_token in register response")
		}
		if data.Email != email {
			t.Fatalf("expected email %q, got %q", email, data.Email)
		}
		if bytes.Contains(env.Data, []byte(`"password"`)) {
			t.Fatal("register response must not contain a password field")
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {

		// Arrange
		email := uniqueEmail("register-dup")
		registerUser(t, email)

		// Act
		status, body := doMultipart(t, "/auth/register", registerFields(email), "profileImage", "avatar.png", pngBytes)

		// Assert
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
		errEnv := decodeError(t, body)
		if errEnv.Message != "User already exists with this email!" {
			t.Fatalf("unexpected message %q", errEnv.Message)
		}
	})

	t.Run("WeakPassword", func(t *testing.T) {

		// Arrange
		fields := registerFields(uniqueEmail("register-weak"))
		fields["password"] = "alllowercase"

		// Act
		status, _ := doMultipart(t, "/auth/register", fields, "profileImage", "avatar.png", pngBytes)

		// Assert
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
	})

	t.Run("MissingProfileImage", func(t *testing.T) {

		// Arrange
		fields := registerFields(uniqueEmail("register-noimg"))

		// Act
		status, _ := doMultipart(t, "/auth/register", fields, "", "", nil)

		// Assert
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
	})

	t.Run("Underage", func(t *testing.T) {

		// Arrange
		fields := registerFields(uniqueEmail("register-age"))
		fields["age"] = "17"

		// Act
		status, _ := doMultipart(t, "/auth/register", fields, "profileImage", "avatar.png", pngBytes)

		// Assert
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
	})
}
