package usecase

import (
	"rental-engine/internal/domain/user"
	"rental-engine/internal/pkg/jwt"
)

// TokenValidator turns a bearer token into the acting user.
type TokenValidator interface {
	Authenticate(tokenString string) (user.Actor, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) Authenticate(tokenString string) (user.Actor, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return user.Actor{}, err
	}
	return claims.Actor()
}
