package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/nvteo/bakeshop-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID   int64
	Username string
	FullName string
	Role     enums.UserRole
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID   int64          `json:"user_id"`
	Username string         `json:"username"`
	FullName string         `json:"full_name"`
	Role     enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}
