package user

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storyshare-backend/internal/shared"
)

// ========================================
// AUTH DTOs
// ========================================

// SignupRequest is shared by POST /auth/signup and POST /auth/add-admin.
type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Avatar    string `json:"avatar"`
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Required.Error("firstName is required"),
			validation.Length(2, 100),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("lastName is required"),
			validation.Length(2, 100),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(6, 100).Error("password must be 6-100 characters"),
		),
		validation.Field(&r.Avatar,
			validation.Required.Error("avatar is required"),
			is.URL.Error("avatar must be a valid url"),
		),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
	)
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r ForgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
	)
}

// UpdateProfileRequest mutates the caller's own record. Password is
// optional: when omitted the stored hash is left untouched.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password,omitempty"`
	Avatar    string `json:"avatar"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.LastName, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Password,
			validation.When(r.Password != "", validation.Length(6, 100)),
		),
		validation.Field(&r.Avatar, validation.Required, validation.Length(6, 1000)),
	)
}

// ========================================
// RESPONSE DTOs
// ========================================

// UserDTO is a user with the password stripped; stories and likes stay
// unresolved id lists.
type UserDTO struct {
	ID        primitive.ObjectID   `json:"_id"`
	FirstName string               `json:"firstName"`
	LastName  string               `json:"lastName"`
	Email     string               `json:"email"`
	Avatar    string               `json:"avatar"`
	Role      Role                 `json:"role"`
	Stories   []primitive.ObjectID `json:"stories"`
	Likes     []primitive.ObjectID `json:"likes"`
}

func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Role:      u.Role,
		Stories:   u.Stories,
		Likes:     u.Likes,
	}
}

// ProfileDTO is the caller's own record with stories and likes resolved
// into story documents.
type ProfileDTO struct {
	ID        primitive.ObjectID `json:"_id"`
	FirstName string             `json:"firstName"`
	LastName  string             `json:"lastName"`
	Email     string             `json:"email"`
	Avatar    string             `json:"avatar"`
	Role      Role               `json:"role"`
	Stories   []shared.StorySummary `json:"stories"`
	Likes     []shared.StorySummary `json:"likes"`
}
