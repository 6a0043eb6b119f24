// Package auth implements the shared-password access gate. It is a
// deliberately low-assurance, single-user check: plain string equality
// against one configured secret, no hashing, no rate limiting. Session
// persistence after a successful check is the client's concern.
package auth

import "github.com/pbaille/ht/internal/domain"

// Gate compares submitted passwords against a single configured secret.
type Gate struct {
	secret string
}

// NewGate creates a Gate around the configured secret. The secret is
// injected rather than read from the environment here so tests can construct
// gates with arbitrary configuration.
func NewGate(secret string) *Gate {
	return &Gate{secret: secret}
}

// Verify reports whether the submitted password matches the configured
// secret. A missing secret is a deployment error, not a failed login, and
// returns ErrPasswordNotConfigured so callers can surface it differently.
func (g *Gate) Verify(submitted string) (bool, error) {
	if g.secret == "" {
		return false, domain.ErrPasswordNotConfigured
	}
	return submitted == g.secret, nil
}
