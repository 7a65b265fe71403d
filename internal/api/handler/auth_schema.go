package handler

import "github.com/marketloop/storefront-api/internal/core/domain"

// messageResponse is the envelope every failure path (and body-less success)
// returns: a success flag plus a human-readable message. The message strings
// are asserted on by clients and carried verbatim from the services.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// The ordered required-field checks for registration and recovery live in
// the service layer, so these schemas deliberately carry no `required` tags
// for those fields: go-playground/validator cannot promise which violation
// is reported first, and the first-missing-field message is a contract.

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Answer   string `json:"answer"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email       string `json:"email"`
	Answer      string `json:"answer"`
	NewPassword string `json:"new_password"`
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type registerResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

type updateProfileResponse struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message"`
	UpdatedUser *domain.User `json:"updated_user"`
}
