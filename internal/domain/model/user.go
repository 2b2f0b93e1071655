package model

import (
	"strings"
)

// User is the wire record for the users endpoints.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	IsActive  bool      `json:"isActive"`
	CreatedAt Timestamp `json:"createdAt"`
}

// UserView adds a display name; falls back to the username when both name
// parts are blank.
type UserView struct {
	User
	DisplayName string `json:"-"`
}

// NewUserView derives the display fields from a wire record.
func NewUserView(u User) UserView {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}
	return UserView{User: u, DisplayName: name}
}

// Wire returns the server-defined fields only.
func (v UserView) Wire() User {
	return v.User
}
