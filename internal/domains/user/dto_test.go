package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSignup() SignupRequest {
	return SignupRequest{
		FirstName: "Lina",
		LastName:  "Haddad",
		Email:     "lina@example.com",
		Password:  "secret123",
		Avatar:    "https://cdn.example.com/avatars/lina.png",
	}
}

func TestSignupRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SignupRequest)
		wantErr bool
	}{
		{"valid", func(r *SignupRequest) {}, false},
		{"missing first name", func(r *SignupRequest) { r.FirstName = "" }, true},
		{"first name too short", func(r *SignupRequest) { r.FirstName = "L" }, true},
		{"missing email", func(r *SignupRequest) { r.Email = "" }, true},
		{"malformed email", func(r *SignupRequest) { r.Email = "not-an-email" }, true},
		{"password too short", func(r *SignupRequest) { r.Password = "12345" }, true},
		{"missing avatar", func(r *SignupRequest) { r.Avatar = "" }, true},
		{"avatar not a url", func(r *SignupRequest) { r.Avatar = "::: nope" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignup()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateProfileRequestPasswordOptional(t *testing.T) {
	req := UpdateProfileRequest{
		FirstName: "Lina",
		LastName:  "Haddad",
		Avatar:    "https://cdn.example.com/avatars/lina.png",
	}
	assert.NoError(t, req.Validate())

	req.Password = "short"
	assert.Error(t, req.Validate())

	req.Password = "longenough"
	assert.NoError(t, req.Validate())
}

func TestUserToDTOStripsPassword(t *testing.T) {
	u := User{
		FirstName: "Lina",
		LastName:  "Haddad",
		Email:     "lina@example.com",
		Password:  "$2a$10$hash",
		Role:      RoleUser,
	}

	dto := u.ToDTO()
	assert.Equal(t, u.Email, dto.Email)
	assert.Equal(t, RoleUser, dto.Role)
}
