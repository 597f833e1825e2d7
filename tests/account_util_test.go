package tests

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

const testPassword = "Secret123!"

// pngBytes is the PNG magic number, enough for content type sniffing.
var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

type userData struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	CompanyName     string `json:"company_name"`
	Age             int32  `json:"age"`
	DateOfBirth     string `json:"date_of_birth"`
	ProfileImageURL string `json:"profile_image_url"`
}

type registerData struct {
	userData
	AccessToken string `json:"access_token"`
}

type loginData struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	RequiresOTP bool   `json:"requires_otp"`
	OTP         string `json:"otp"`
}

type verifyOTPData struct {
	userData
	AccessToken string `json:"access_token"`
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

func registerFields(email string) map[string]string {
	return map[string]string{
		"name":        "Test User",
		"email":       email,
		"password":    testPassword,
		"companyName": "Acme Corp",
		"age":         "28",
		"dateOfBirth": "1997-06-02",
	}
}

func registerUser(t *testing.T, email string) registerData {
	t.Helper()

	status, body := doMultipart(t, "/auth/register", registerFields(email), "profileImage", "avatar.png", pngBytes)
	if status != http.StatusCreated {
		errEnv := decodeError(t, body)
		t.Fatalf("register failed: status=%d message=%q", status, errEnv.Message)
	}

	var data registerData
	decodeSuccess(t, body, &data)

	return data
}

func login(t *testing.T, email, password string) (int, loginData, errorEnvelope) {
	t.Helper()

	payload := map[string]string{
		"email":    email,
		"password": password,
	}

	status, body := doJSON(t, http.MethodPost, "/auth/login", payload, "")
	if status != http.StatusOK {
		return status, loginData{}, decodeError(t, body)
	}

	var data loginData
	decodeSuccess(t, body, &data)

	return status, data, errorEnvelope{}
}

// loginOTP runs a login and returns the issued code. The server only exposes
// codes when modules.account.expose_otp_codes is on; tests that need the code
// skip otherwise.
func loginOTP(t *testing.T, email, password string) string {
	t.Helper()

	status, data, errEnv := login(t, email, password)
	if status != http.StatusOK {
		t.Fatalf("login failed: status=%d message=%q", status, errEnv.Message)
	}
	if !data.RequiresOTP {
		t.Fatal("expected requires_otp in login response")
	}
	if data.OTP == "" {
		t.Skip("server does not expose otp codes; enable modules.account.expose_otp_codes to run this test")
	}

	return data.OTP
}

func verifyOTP(t *testing.T, email, code string) (int, verifyOTPData, errorEnvelope) {
	t.Helper()

	payload := map[string]string{
		"email": email,
		"otp":   code,
	}

	status, body := doJSON(t, http.MethodPost, "/auth/verify-otp", payload, "")
	if status != http.StatusOK {
		return status, verifyOTPData{}, decodeError(t, body)
	}

	var data verifyOTPData
	decodeSuccess(t, body, &data)

	return status, data, errorEnvelope{}
}
