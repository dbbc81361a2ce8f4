package ports

// TokenClaims is the payload carried by a bearer token.
type TokenClaims struct {
	ID    string
	Email string
}

// TokenCodec issues and decodes signed bearer tokens. Decode returns
// domain.ErrInvalidToken for malformed or foreign tokens.
type TokenCodec interface {
	Issue(claims TokenClaims) (string, error)
	Decode(token string) (TokenClaims, error)
}
