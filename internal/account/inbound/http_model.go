package inbound

import (
	"net/http"
	"time"

	"github.com/danukusuma/authcore/internal/account/entity"
)

const dateOnly = "2006-01-02"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	RequiresOTP bool   `json:"requires_otp"`
	OTP         string `json:"otp,omitempty"`
}

func (LoginResponse) Message() string {
	return "OTP sent successfully"
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type VerifyOTPResponse struct {
	UserResponse
	AccessToken string `json:"access_token"`
}

func (VerifyOTPResponse) Message() string {
	return "OTP verified successfully"
}

type RegisterResponse struct {
	UserResponse
	AccessToken string `json:"access_token"`
}

func (RegisterResponse) Message() string {
	return "Registration successful"
}

func (RegisterResponse) StatusCode() int {
	return http.StatusCreated
}

type UserUpdateRequest struct {
	Name        *string `json:"name"`
	CompanyName *string `json:"company_name"`
	Age         *int32  `json:"age"`
	DateOfBirth *string `json:"date_of_birth"`
	Password    *string `json:"password"`
}

type UserUpdateResponse struct {
	UserResponse
}

func (UserUpdateResponse) Message() string {
	return "User updated successfully"
}

type UserDeleteResponse struct{}

func (UserDeleteResponse) Message() string {
	return "User deleted successfully"
}

type UserResponse struct {
	ID              int64     `json:"id,string"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	CompanyName     string    `json:"company_name"`
	Age             int32     `json:"age"`
	DateOfBirth     string    `json:"date_of_birth"`
	ProfileImageURL string    `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func newUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:              user.ID,
		Name:            user.FullName,
		Email:           user.Email,
		CompanyName:     user.CompanyName,
		Age:             user.Age,
		DateOfBirth:     user.DateOfBirth.Format(dateOnly),
		ProfileImageURL: user.ProfileImageURL,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}
