package user

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service defines the business logic contract for users and auth.
type Service interface {
	// Authentication
	Signup(ctx context.Context, req SignupRequest) (*UserDTO, error)
	AddAdmin(ctx context.Context, req SignupRequest) (*UserDTO, error)
	Login(ctx context.Context, req LoginRequest) (string, error)
	LoginAdmin(ctx context.Context, req LoginRequest) (string, error)
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, token string, req ResetPasswordRequest) error

	// Profile
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, req UpdateProfileRequest) (*UserDTO, error)

	// Administration
	ListUsers(ctx context.Context) ([]UserDTO, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}
