package workflow

import (
	"context"

	"github.com/iliyamo/lost-and-found/internal/model"
)

// ItemStore is the persistence contract the workflows need for items.
// Implementations must return ErrNotFound for absent rows; any other
// error is treated as an infrastructure failure.
type ItemStore interface {
	// Find returns the item with the given ID.
	Find(ctx context.Context, id uint64) (*model.Item, error)
	// Insert persists a new item and fills in its generated ID and
	// timestamps.
	Insert(ctx context.Context, item *model.Item) error
	// Update persists the editable fields of an existing item.
	Update(ctx context.Context, item *model.Item) error
	// UpdateStatus writes only the status column.
	UpdateStatus(ctx context.Context, id uint64, status model.ItemStatus) error
	// UpdateVerified writes only the is_verified column.
	UpdateVerified(ctx context.Context, id uint64, verified bool) error
	// Delete removes the item, returning ErrNotFound when no row
	// was deleted.  A second delete is therefore not a silent no-op.
	Delete(ctx context.Context, id uint64) error
}

// ClaimStore is the persistence contract for claims.
type ClaimStore interface {
	// Find returns the claim with the given ID.
	Find(ctx context.Context, id uint64) (*model.Claim, error)
	// Insert persists a new claim and fills in its generated ID,
	// status and timestamp.
	Insert(ctx context.Context, claim *model.Claim) error
	// UpdateStatus writes the claim's status column.
	UpdateStatus(ctx context.Context, id uint64, status model.ClaimStatus) error
	// ListForOwner returns a snapshot of all claims against items
	// owned by the given user, joined with item and claimer details,
	// newest first.
	ListForOwner(ctx context.Context, ownerID uint64) ([]model.ClaimDetail, error)
}
