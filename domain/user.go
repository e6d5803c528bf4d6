package domain

import (
	apperrors "github.com/adibtatriantama/FCC-Book-Trading/pkg/errors"
)

// Address is the optional city/state pair attached to a user profile.
// Missing addresses are represented by empty strings.
type Address struct {
	City  string
	State string
}

// UserDetails is the denormalized snapshot of a user that gets embedded
// into books and trades. It is a value copy, not a live reference: later
// profile edits do not change snapshots already written.
type UserDetails struct {
	id       string
	nickname string
	address  Address
}

// NewUserDetails creates a user snapshot.
func NewUserDetails(id, nickname string, address Address) UserDetails {
	return UserDetails{
		id:       id,
		nickname: nickname,
		address:  address,
	}
}

func (d UserDetails) ID() string       { return d.id }
func (d UserDetails) Nickname() string { return d.nickname }
func (d UserDetails) Address() Address { return d.address }

// User is a registered member of the marketplace. The id comes from the
// authentication provider and is opaque to this system.
type User struct {
	id       string
	nickname string
	email    string
	address  Address
}

// NewUser creates a user entity.
func NewUser(id, nickname, email string, address Address) (*User, error) {
	if id == "" {
		return nil, apperrors.NewValidation("user id is required")
	}
	if nickname == "" {
		return nil, apperrors.NewValidation("nickname is required")
	}

	return &User{
		id:       id,
		nickname: nickname,
		email:    email,
		address:  address,
	}, nil
}

func (u *User) ID() string       { return u.id }
func (u *User) Nickname() string { return u.nickname }
func (u *User) Email() string    { return u.email }
func (u *User) Address() Address { return u.address }

// Details returns the snapshot shape of this user for embedding.
func (u *User) Details() UserDetails {
	return NewUserDetails(u.id, u.nickname, u.address)
}

// UpdateProfile changes the editable profile fields.
func (u *User) UpdateProfile(nickname string, address Address) error {
	if nickname == "" {
		return apperrors.NewValidation("nickname is required")
	}

	u.nickname = nickname
	u.address = address
	return nil
}
