package inbound

import (
	"context"

	"github.com/danukusuma/authcore/internal/account/usecase"
	"github.com/danukusuma/authcore/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) (*usecase.VerifyOTPOutput, error)

	UserDetail(ctx context.Context, in usecase.UserDetailInput) (*usecase.UserDetailOutput, error)
	UserUpdate(ctx context.Context, in usecase.UserUpdateInput) (*usecase.UserUpdateOutput, error)
	UserDelete(ctx context.Context, in usecase.UserDeleteInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Authentication
	r.POST("/auth/register", end.Register)
	r.POST("/auth/login", end.Login)
	r.POST("/auth/verify-otp", end.VerifyOTP)

	// User directory (need authenticated)
	r.GET("/users/find/:id", end.UserDetail)
	r.PUT("/users/:id", end.UserUpdate)
	r.DELETE("/users/:id", end.UserDelete)
}
