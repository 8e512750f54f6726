//go:build unit || e2e

package builder

import (
	"court-booking/internal/domain/auth"
	reqdto "court-booking/internal/handler/dto/request"
)

type AuthBuilder struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{
		Email:     "test@example.com",
		Password:  "password123",
		FirstName: "Anna",
		LastName:  "Berger",
	}
}

func (a *AuthBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Email:    a.Email,
		Password: a.Password,
	}
}

func (a *AuthBuilder) BuildRegisterDTO() reqdto.RegisterRequest {
	return reqdto.RegisterRequest{
		Email:     a.Email,
		Password:  a.Password,
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}
}

func (a *AuthBuilder) BuildCredentials() (auth.Credentials, error) {
	return auth.NewCredentials(a.Email, a.Password)
}

func (a *AuthBuilder) BuildRegistration() (auth.Registration, error) {
	return auth.NewRegistration(a.Email, a.Password, a.FirstName, a.LastName)
}
