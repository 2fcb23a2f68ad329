package auth

import "time"

// TokenClaims is the identity carried by an issued token.
type TokenClaims struct {
	UserID int64
	Role   string
}

type Strategy interface {
	IssueToken(claims TokenClaims) (string, error)
	ParseToken(token string) (TokenClaims, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
