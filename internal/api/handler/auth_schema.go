package handler

import "github.com/campusconnect/portal/internal/core/domain"

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
	Remember   bool   `json:"remember"`
}

type signupRequest struct {
	Role            string `json:"role" validate:"required,oneof=student teacher admin organization"`
	FullName        string `json:"fullName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	MobileNumber    string `json:"mobileNumber" validate:"required"`
	UniversityName  string `json:"universityName" validate:"required"`
	Department      string `json:"department"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Terms           bool   `json:"terms"`
}

type authResponse struct {
	Token    string      `json:"token"`
	User     domain.User `json:"user"`
	Redirect string      `json:"redirect"`
}

type strengthRequest struct {
	Password string `json:"password" validate:"required"`
}

type strengthResponse struct {
	Score   int    `json:"score"`
	Label   string `json:"label"`
	Length  bool   `json:"length"`
	Upper   bool   `json:"upper"`
	Lower   bool   `json:"lower"`
	Digit   bool   `json:"digit"`
	Special bool   `json:"special"`
}
