package favorites

import "context"

// Storage persists favorites lists as full snapshots per owner. Load must
// return an empty list, not an error, when the stored snapshot is missing
// or cannot be decoded.
type Storage interface {
	Load(ctx context.Context, ownerID string) (List, error)
	Save(ctx context.Context, ownerID string, l List) error
}
