package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core"
	"github.com/yacinedz/siyaqa/core/user"
)

// addUser updates or creates a user.User with the given role.
func (cli *commandLine) addUser(email, fullName, pwd string, role user.Role) error {
	if !role.Valid() {
		return errors.Errorf("invalid role %q", role)
	}

	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)
	fullName = core.CleanString(fullName)

	usr, err := cli.usrRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Cause(err) != user.ErrNotFound {
			return err
		}
		usr = user.User{
			ID:        uuid.NewString(),
			Email:     email,
			CreatedAt: time.Now().UTC(),
		}
	}
	usr.FullName = fullName
	usr.Role = role
	usr.IsActive = true

	if err := user.ValidatePassword(pwd, email, fullName); err != nil {
		return err
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}

	if _, err := cli.usrRepo.GetUserByID(ctx, usr.ID); err != nil {
		if errors.Cause(err) != user.ErrNotFound {
			return err
		}
		_, err = cli.usrRepo.CreateUser(ctx, usr)
		return err
	}
	_, err = cli.usrRepo.UpdateUser(ctx, usr)
	return err
}
