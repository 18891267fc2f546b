// internal/app/features/account/types.go
package account

import "github.com/dalemusser/churchhub/internal/domain/models"

type registerInput struct {
	Name         string `json:"name" validate:"required,max=200"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	Role         string `json:"role" validate:"omitempty,oneof=member volunteer leader deacon pastor admin denomination-admin superadmin"`
	Church       string `json:"church" validate:"omitempty,mongodb"`
	Denomination string `json:"denomination"`
	Phone        string `json:"phone"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// profileInput is replace-if-present: empty strings keep the stored value.
type profileInput struct {
	Name         string `json:"name" validate:"omitempty,max=200"`
	Email        string `json:"email" validate:"omitempty,email"`
	Password     string `json:"password" validate:"omitempty,min=6"`
	Church       string `json:"church" validate:"omitempty,mongodb"`
	Denomination string `json:"denomination"`
	Phone        string `json:"phone"`
	Avatar       string `json:"avatar"`
}

type roleInput struct {
	Role string `json:"role" validate:"required"`
}

// authResponse is the user plus a freshly issued bearer token.
type authResponse struct {
	models.User
	Token string `json:"token"`
}
