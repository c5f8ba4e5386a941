package usersrepobridge

import (
	"errors"
	"strings"

	"github.com/dev2ever/userservice/core/repositories/usersrepo"
	"github.com/dev2ever/userservice/sdk/validation"
)

// CreateUserRequest is the payload for POST /users.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// Validate implements the web decode hook. All failures are reported in one
// pass, joined into a single message.
func (r CreateUserRequest) Validate() error {
	return validateUserFields(r.Username, r.Email, r.Password, r.FullName)
}

func (r CreateUserRequest) toInput() usersrepo.CreateUser {
	return usersrepo.CreateUser{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		FullName: r.FullName,
	}
}

// UpdateUserRequest is the payload for PUT /users/{user_id}. Every field is
// required; the update replaces the whole record.
type UpdateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

func (r UpdateUserRequest) Validate() error {
	return validateUserFields(r.Username, r.Email, r.Password, r.FullName)
}

func (r UpdateUserRequest) toInput() usersrepo.UpdateUser {
	return usersrepo.UpdateUser{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		FullName: r.FullName,
	}
}

func validateUserFields(username, email, password, fullName string) error {
	var msgs []string

	if validation.IsBlank(username) {
		msgs = append(msgs, "Username is required.")
	}
	if validation.IsBlank(email) {
		msgs = append(msgs, "Email is required.")
	} else if !validation.IsEmail(email) {
		msgs = append(msgs, "Email must be a valid email address.")
	}
	if validation.IsBlank(password) {
		msgs = append(msgs, "Password is required.")
	}
	if validation.IsBlank(fullName) {
		msgs = append(msgs, "Full name is required.")
	}

	if len(msgs) == 0 {
		return nil
	}
	return errors.New(strings.Join(msgs, ", "))
}
