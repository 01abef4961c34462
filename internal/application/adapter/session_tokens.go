package adapter

import "context"

// SessionTokens issues and verifies the signed tokens that carry a user key
// across requests.
type SessionTokens interface {
	// Issue creates a signed token whose subject is the user key.
	Issue(ctx context.Context, userKey string) (string, error)

	// Verify checks the token signature and expiry and returns the user key.
	Verify(ctx context.Context, token string) (string, error)
}
