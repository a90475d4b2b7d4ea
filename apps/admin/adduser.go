package main

import (
	"time"

	"github.com/lernfeld/kursadmin/core"
	"github.com/lernfeld/kursadmin/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(name, email, pwd string, isAdmin bool) error {
	email = core.CleanString(email, true /* lower */)

	usr, err := cli.usrRepo.GetUserByEmail(email)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		now := time.Now().UTC()
		usr = user.User{
			Email:     email,
			Role:      user.RoleTrainer,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	usr.Name = core.CleanString(name)
	usr.Status = user.StatusActive
	if isAdmin {
		usr.Role = user.RoleAdmin
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}

	if usr.ID == 0 {
		_, err = cli.usrRepo.CreateUser(usr)
	} else {
		usr.UpdatedAt = time.Now().UTC()
		_, err = cli.usrRepo.UpdateUser(usr, true /* setPassword */)
	}
	return err
}
