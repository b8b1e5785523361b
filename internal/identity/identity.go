// Package identity gates access behind a fixed user table. Real
// authentication is out of scope; this yields a User or rejects.
package identity

import (
	"errors"

	"sereno-backend/internal/model"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type credential struct {
	username string
	password string
	avatar   string
}

var users = []credential{
	{username: "user3", password: "password3", avatar: "👤"},
	{username: "user2", password: "password2", avatar: "👩"},
	{username: "user", password: "password", avatar: "👨"},
}

// Authenticate looks up the (username, secret) pair and returns the user
// record without the secret.
func Authenticate(username, password string) (model.User, error) {
	for _, c := range users {
		if c.username == username && c.password == password {
			return model.User{Username: c.username, Avatar: c.avatar}, nil
		}
	}
	return model.User{}, ErrInvalidCredentials
}
