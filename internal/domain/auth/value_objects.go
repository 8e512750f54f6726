package auth

import (
	"errors"

	"court-booking/internal/domain/member"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Credentials struct {
	email    member.Email
	password member.Password
}

func NewCredentials(emailStr, passwordStr string) (Credentials, error) {
	email, err := member.NewEmail(emailStr)
	if err != nil {
		return Credentials{}, err
	}

	password, err := member.NewPassword(passwordStr)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{
		email:    email,
		password: password,
	}, nil
}

func (c Credentials) Email() member.Email {
	return c.email
}

func (c Credentials) Password() member.Password {
	return c.password
}

// Registration is a validated sign-up request.
type Registration struct {
	credentials Credentials
	name        member.Name
}

func NewRegistration(emailStr, passwordStr, firstName, lastName string) (Registration, error) {
	credentials, err := NewCredentials(emailStr, passwordStr)
	if err != nil {
		return Registration{}, err
	}

	name, err := member.NewName(firstName, lastName)
	if err != nil {
		return Registration{}, err
	}

	return Registration{credentials: credentials, name: name}, nil
}

func (r Registration) Credentials() Credentials {
	return r.credentials
}

func (r Registration) Name() member.Name {
	return r.name
}
