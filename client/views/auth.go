package views

import (
	"context"

	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/client"
	"github.com/yacinedz/siyaqa/client/guard"
	"github.com/yacinedz/siyaqa/core/user"
)

var ErrPasswordMismatch = errors.New("Passwords do not match")

// RegisterForm collects sign-up input and submits it to the API.
type RegisterForm struct {
	Email           string
	FullName        string
	Phone           string
	Gender          string
	Address         string
	State           string
	Password        string
	PasswordConfirm string
	Role            string
}

// Submit checks the password confirmation locally, then registers the user.
// No request is made when the passwords differ.
func (f *RegisterForm) Submit(ctx context.Context, api *client.Client) (user.User, error) {
	if f.Password != f.PasswordConfirm {
		return user.User{}, ErrPasswordMismatch
	}

	return api.Register(ctx, user.NewUser{
		Email:           f.Email,
		FullName:        f.FullName,
		Phone:           f.Phone,
		Gender:          f.Gender,
		Address:         f.Address,
		State:           f.State,
		Password:        f.Password,
		PasswordConfirm: f.PasswordConfirm,
		Role:            f.Role,
	})
}

// LoginForm collects credentials and exchanges them for a session.
type LoginForm struct {
	Email    string
	Password string
}

// Submit authenticates against the API and returns the path of the dashboard
// matching the user's role. The session store is populated on success.
func (f *LoginForm) Submit(ctx context.Context, api *client.Client) (string, error) {
	token, err := api.Login(ctx, f.Email, f.Password)
	if err != nil {
		return "", err
	}
	return guard.DashboardPath(token.Role), nil
}
