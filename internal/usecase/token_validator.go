package usecase

import (
	"court-booking/internal/domain/member"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/pkg/jwt"

	"github.com/google/uuid"
)

var ErrInvalidToken = errs.New("invalid access token")

// TokenValidator resolves an access token to the member id and role it was
// issued for. The role is only as fresh as the token; use cases re-read it.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, member.Role, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{jwtService: jwtService}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, member.Role, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, ErrInvalidToken)
	}
	if claims.MemberID == uuid.Nil {
		return uuid.Nil, "", errs.Mark(errs.New("token without member id"), ErrInvalidToken)
	}

	role, err := member.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, ErrInvalidToken)
	}
	return claims.MemberID, role, nil
}
