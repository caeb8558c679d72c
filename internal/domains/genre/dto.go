package genre

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ========================================
// REQUEST DTOS
// ========================================

type AddRequest struct {
	Name string `json:"name"`
}

func (r AddRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 100)),
	)
}

type EditRequest struct {
	Name string `json:"name"`
}

func (r EditRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 100)),
	)
}
