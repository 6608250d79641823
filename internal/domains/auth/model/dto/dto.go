package dto

import (
	"net/http"
	"strings"
)

const (
	FieldUsername = "username"
	FieldPassword = "password"
)

// LoginRequest is the operator sign-in form.
type LoginRequest struct {
	Username string `form:"username" validate:"required,max=255"`
	Password string `form:"password" validate:"required,max=72"`
}

func (r *LoginRequest) FromRequest(request *http.Request) {
	r.Username = strings.TrimSpace(request.PostFormValue(FieldUsername))
	r.Password = request.PostFormValue(FieldPassword)
}
