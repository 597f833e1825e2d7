package inbound

import (
	"strconv"
	"time"

	"github.com/danukusuma/authcore/internal/account/usecase"
	"github.com/danukusuma/authcore/internal/pkg/goerror"
	"github.com/danukusuma/authcore/internal/pkg/router"
)

const maxRegisterFormMemory = 8 << 20

// HTTPEndpoint exposes HTTP handlers for authentication and profile workflows.
type HTTPEndpoint struct {
	uc uc
}

// Register creates an account from a multipart form and returns a session
// token; new accounts skip the OTP challenge.
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	if err := r.ParseMultipart(maxRegisterFormMemory); err != nil {
		return nil, err
	}

	age, err := parseFormAge(r.GetForm("age"))
	if err != nil {
		return nil, err
	}

	dateOfBirth, err := parseFormDate(r.GetForm("dateOfBirth"))
	if err != nil {
		return nil, err
	}

	image, imageName, err := r.GetFormFile("profileImage", maxRegisterFormMemory)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		FullName:    r.GetForm("name"),
		Email:       r.GetForm("email"),
		Password:    r.FormValue("password"),
		CompanyName: r.GetForm("companyName"),
		Age:         age,
		DateOfBirth: dateOfBirth,
		Image:       image,
		ImageName:   imageName,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{
		UserResponse: newUserResponse(resp.User),
		AccessToken:  resp.AccessToken,
	}, nil
}

// Login verifies credentials and starts the OTP challenge.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		Email:       resp.Email,
		Name:        resp.FullName,
		RequiresOTP: resp.RequiresOTP,
		OTP:         resp.OTP,
	}, nil
}

// VerifyOTP completes the OTP challenge and returns the session token.
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyOTP(r.Context(), usecase.VerifyOTPInput{
		Email: req.Email,
		OTP:   req.OTP,
	})
	if err != nil {
		return nil, err
	}

	return VerifyOTPResponse{
		UserResponse: newUserResponse(resp.User),
		AccessToken:  resp.AccessToken,
	}, nil
}

// UserDetail returns a profile by ID.
func (h *HTTPEndpoint) UserDetail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.UserDetail(r.Context(), usecase.UserDetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return newUserResponse(resp.User), nil
}

// UserUpdate applies a partial update to the caller's own profile.
func (h *HTTPEndpoint) UserUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req UserUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	var dateOfBirth *time.Time
	if req.DateOfBirth != nil {
		parsed, err := parseFormDate(*req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		dateOfBirth = &parsed
	}

	resp, err := h.uc.UserUpdate(r.Context(), usecase.UserUpdateInput{
		ID:          id,
		FullName:    req.Name,
		CompanyName: req.CompanyName,
		Age:         req.Age,
		DateOfBirth: dateOfBirth,
		Password:    req.Password,
	})
	if err != nil {
		return nil, err
	}

	return UserUpdateResponse{UserResponse: newUserResponse(resp.User)}, nil
}

// UserDelete removes the caller's own account.
func (h *HTTPEndpoint) UserDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.UserDelete(r.Context(), usecase.UserDeleteInput{ID: id}); err != nil {
		return nil, err
	}

	return UserDeleteResponse{}, nil
}

func parseFormAge(raw string) (int32, error) {
	if raw == "" {
		return 0, goerror.NewInvalidInput(nil, "age", "Age is required")
	}

	age, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, goerror.NewInvalidInput(nil, "age", "Age must be a number")
	}

	return int32(age), nil
}

func parseFormDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, goerror.NewInvalidInput(nil, "date_of_birth", "Date of birth is required")
	}

	parsed, err := time.Parse(dateOnly, raw)
	if err != nil {
		// Clients sometimes send full timestamps.
		parsed, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, goerror.NewInvalidInput(nil, "date_of_birth", "Date of birth must be YYYY-MM-DD")
		}
	}

	return parsed, nil
}
