package user

import (
	"time"

	"parcel-delivery/constants"
	"parcel-delivery/models/user"
	"parcel-delivery/validation"
)

// StoreUserRequest is the body of POST /users. Everyone registers as a plain user.
type StoreUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"max=120"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url"`
}

func (r *StoreUserRequest) Validate() error {
	return validation.Struct(r)
}

func (r *StoreUserRequest) ToModel(now time.Time) user.User {
	return user.User{
		Email:     r.Email,
		Name:      r.Name,
		PhotoURL:  r.PhotoURL,
		Role:      constants.RoleUser,
		CreatedAt: now,
		LastLogIn: now,
	}
}

type RoleResponse struct {
	Role string `json:"role"`
}
