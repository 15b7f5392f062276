package service

import "context"

// ChallengeResult is the verification outcome, carrying the widget
// provider's machine-readable codes unmodified.
type ChallengeResult struct {
	Success    bool
	ErrorCodes []string
}

// ChallengeVerifier validates a human-verification widget token with the
// widget's provider. Implemented against Cloudflare Turnstile in infra.
type ChallengeVerifier interface {
	Verify(ctx context.Context, token string) (ChallengeResult, error)
}
