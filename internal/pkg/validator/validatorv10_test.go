package validator

import (
	"errors"
	"testing"
)

func TestPasswordOK(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     bool
	}{
		{"Valid", "Secret123!", true},
		{"TooShort", "Ab1!", false},
		{"NoUppercase", "secret123!", false},
		{"NoLowercase", "SECRET123!", false},
		{"NoDigit", "Secretxyz!", false},
		{"NoSpecial", "Secret1234", false},
		{"Empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PasswordOK(tc.password); got != tc.want {
				t.Fatalf("PasswordOK(%q) = %v, want %v", tc.password, got, tc.want)
			}
		})
	}
}

func TestV10Validator(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	type registration struct {
		FullName string `validate:"required,alphaspace"`
		Email    string `validate:"required,email"`
		Password string `validate:"required,password"`
	}

	t.Run("Valid", func(t *testing.T) {
		err := v.Validate(registration{
			FullName: "Danu Kusuma",
			Email:    "danu@example.com",
			Password: "Secret123!",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("FieldErrorsAreSnakeCase", func(t *testing.T) {
		err := v.Validate(registration{
			FullName: "Danu99",
			Email:    "not-an-email",
			Password: "weak",
		})
		if err == nil {
			t.Fatal("expected validation error")
		}

		var verr V10ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected V10ValidationError, got %T", err)
		}

		for _, field := range []string{"full_name", "email", "password"} {
			if _, ok := verr[field]; !ok {
				t.Fatalf("expected error for field %q, got %v", field, verr.Values())
			}
		}
	})

	t.Run("AlphaSpaceRejectsPunctuation", func(t *testing.T) {
		err := v.Validate(registration{
			FullName: "Danu; DROP TABLE",
			Email:    "danu@example.com",
			Password: "Secret123!",
		})
		if err == nil {
			t.Fatal("expected validation error")
		}
	})
}
