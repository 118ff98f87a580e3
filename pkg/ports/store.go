package ports

import "context"

// TokenStore persists exported state tokens keyed by instance ID, so
// applications can park an instance and rebuild it later with
// Machine.NewInstance(espalier.WithToken(token)).
//
// The engine itself never touches a store; this is a convention for the
// application layer, which may bundle any other per-instance data
// alongside the token.
type TokenStore interface {
	// Save persists the token for an instance ID, overwriting any
	// previous value.
	Save(ctx context.Context, instanceID, token string) error

	// Load retrieves the token for an instance ID.
	// Returns domain.ErrInstanceNotFound when the ID is unknown.
	Load(ctx context.Context, instanceID string) (string, error)

	// Delete removes the token for an instance ID. Deleting an unknown ID
	// is not an error.
	Delete(ctx context.Context, instanceID string) error

	// List returns the known instance IDs.
	List(ctx context.Context) ([]string, error)
}
