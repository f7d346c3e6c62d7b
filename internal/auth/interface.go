package auth

import "inkwell/internal/domain/models"

// JWTVerifier defines the interface for bearer token verification.
// The middleware only ever resolves a token to claims; how the keys are
// fetched and cached is an implementation detail.
type JWTVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed claims.
	// Returns an error if the token is invalid, expired, or has an invalid signature.
	VerifyToken(tokenString string) (*models.SupabaseClaims, error)

	// Close releases any resources held by the verifier (e.g., HTTP connections for JWKS).
	Close() error
}
