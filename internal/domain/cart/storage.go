package cart

import "context"

// Storage is the persistence port for cart snapshots. Implementations load
// and save the full collection for one owner; there are no partial updates.
//
// Load must treat a missing or malformed stored value as an empty cart,
// never as an error the caller has to recover from. The persisted slot
// survives navigation within a session but is last-writer-wins across
// concurrent writers.
type Storage interface {
	Load(ctx context.Context, ownerID string) (Cart, error)
	Save(ctx context.Context, ownerID string, c Cart) error
}
