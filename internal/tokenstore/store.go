// Package tokenstore holds the OAuth credentials captured by the login
// callback, keyed by user ID. Entries are written once per login and read by
// every webhook request afterwards, so implementations only need a
// read-mostly, single-writer-per-key concurrency contract.
package tokenstore

import (
	"context"

	"golang.org/x/oauth2"
)

// Store is the credential lookup used by the orchestrator and the HTTP
// handlers. Get returns (nil, nil) when no credential is stored for the
// user; absence is not an error.
type Store interface {
	Get(ctx context.Context, userID string) (*oauth2.Token, error)
	Set(ctx context.Context, userID string, token *oauth2.Token) error

	// Identities lists the user IDs that currently have a stored
	// credential. Used for the best-effort single-tenant fallback: when
	// the caller's own ID has no credential, any known identity will do.
	Identities(ctx context.Context) ([]string, error)
}

// Resolve returns the user's credential, falling back to the first known
// identity when the user has none. Single-tenant demo policy, not a
// security boundary. Returns (nil, nil) when no credential exists at all.
func Resolve(ctx context.Context, s Store, userID string) (*oauth2.Token, error) {
	token, err := s.Get(ctx, userID)
	if err != nil || token != nil {
		return token, err
	}

	ids, err := s.Identities(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.Get(ctx, ids[0])
}
