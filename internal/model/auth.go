package model

import "github.com/golang-jwt/jwt/v5"

// UserClaims are the JWT claims carried by the session cookie
type UserClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}
