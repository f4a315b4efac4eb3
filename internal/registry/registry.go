// Package registry is the durable metadata store for file records and
// their ownership links. Blob bytes never pass through here.
package registry

import (
	"bitwise74/file-api/internal/model"
	"context"
)

// Registry is the repository contract the core depends on. The gorm
// implementation below is the only one in-tree, but nothing above this
// interface knows that.
type Registry interface {
	Get(ctx context.Context, id string) (*model.File, error)

	// Create stores the record together with its initial ownership link
	// in one transaction
	Create(ctx context.Context, f *model.File) error

	Update(ctx context.Context, f *model.File) error

	// Delete removes the record and any remaining ownership links
	Delete(ctx context.Context, id string) error

	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]model.File, int64, error)

	// ListOrphans returns records with zero ownership links
	ListOrphans(ctx context.Context) ([]model.File, error)

	CountOwnershipLinks(ctx context.Context, id string) (int64, error)

	// UsedStorage sums the sizes of all files owned by ownerID
	UsedStorage(ctx context.Context, ownerID string) (int64, error)
}
