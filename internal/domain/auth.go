package domain

import "time"

// TokenKind differentiates the purposes a signed token can serve.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
	TokenKindReset   TokenKind = "reset"
)

// TokenPair is handed out after a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// Token represents the verified claims of a signed token.
type Token struct {
	ID        string
	SubjectID int64
	Kind      TokenKind
	ExpiresAt time.Time
	IssuedAt  time.Time
}
