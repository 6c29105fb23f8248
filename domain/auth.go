package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/specieverse/goapi/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"address"`
	jwt.StandardClaims
}

// AuthUseCase issues and validates session tokens. A session is proven by
// signing a nonce message with the wallet it claims.
type AuthUseCase interface {
	// GetNonce issues a fresh signing nonce for the address.
	GetNonce(ctx ctx.Ctx, address Address) (string, error)
	// SignToken validates the signature over the nonce message and
	// returns a bearer token.
	SignToken(ctx ctx.Ctx, address Address, signature string) (string, error)
	// ParseToken returns the address a valid token was issued for.
	ParseToken(ctx ctx.Ctx, token string) (Address, error)
}
