package workflow

import (
	"context"
	"strings"

	"github.com/iliyamo/lost-and-found/internal/model"
)

// transitions defines every legal status edge, keyed by the current
// status.  Statuses missing from the map (claimed, recovered, closed)
// have no outgoing edges: claimed is an end state for found items and
// recovered/closed are terminal by policy.
var transitions = map[model.ItemStatus][]model.ItemStatus{
	model.StatusLost:  {model.StatusRecovered, model.StatusClosed},
	model.StatusFound: {model.StatusClaimed, model.StatusClosed},
}

// CanTransition reports whether an item may move from one status to
// another.  It encodes the state machine only; permission checks are
// performed by the calling operation.
func CanTransition(from, to model.ItemStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ItemWorkflow enforces the item lifecycle: who may create, edit,
// delete and move items between statuses.
type ItemWorkflow struct {
	items ItemStore
}

// NewItemWorkflow constructs an ItemWorkflow bound to the given store.
func NewItemWorkflow(items ItemStore) *ItemWorkflow {
	if items == nil {
		panic("nil ItemStore passed to NewItemWorkflow")
	}
	return &ItemWorkflow{items: items}
}

// canModify reports whether the caller may edit or delete the item:
// the owner always can, an administrator always can, nobody else ever
// can.
func canModify(item *model.Item, callerID uint64, callerRole model.Role) bool {
	return item.UserID == callerID || callerRole == model.RoleAdmin
}

// Create validates the input and persists a new item owned by the
// caller.  The initial status must be lost or found and the verified
// flag always starts false.
func (w *ItemWorkflow) Create(ctx context.Context, ownerID uint64, in ItemInput) (*model.Item, error) {
	if verr := validateItem(in, true); verr != nil {
		return nil, verr
	}
	item := &model.Item{
		UserID:        ownerID,
		Title:         strings.TrimSpace(in.Title),
		Category:      in.Category,
		Description:   emptyToNil(in.Description),
		Location:      strings.TrimSpace(in.Location),
		DateLostFound: in.DateLostFound,
		ImageURL:      emptyToNil(in.ImageURL),
		Status:        in.Status,
		ContactEmail:  emptyToNil(in.ContactEmail),
		ContactPhone:  emptyToNil(in.ContactPhone),
		IsVerified:    false,
	}
	if err := w.items.Insert(ctx, item); err != nil {
		return nil, wrapStore(err)
	}
	return item, nil
}

// Update replaces the editable fields of an item.  The caller must be
// the owner or an administrator; the owner reference and the status
// are never touched here.  Validation mirrors Create exactly.
func (w *ItemWorkflow) Update(ctx context.Context, itemID, callerID uint64, callerRole model.Role, in ItemInput) (*model.Item, error) {
	item, err := w.items.Find(ctx, itemID)
	if err != nil {
		return nil, wrapStore(err)
	}
	if !canModify(item, callerID, callerRole) {
		return nil, ErrPermissionDenied
	}
	if verr := validateItem(in, false); verr != nil {
		return nil, verr
	}
	item.Title = strings.TrimSpace(in.Title)
	item.Category = in.Category
	item.Description = emptyToNil(in.Description)
	item.Location = strings.TrimSpace(in.Location)
	item.DateLostFound = in.DateLostFound
	item.ImageURL = emptyToNil(in.ImageURL)
	item.ContactEmail = emptyToNil(in.ContactEmail)
	item.ContactPhone = emptyToNil(in.ContactPhone)
	if err := w.items.Update(ctx, item); err != nil {
		return nil, wrapStore(err)
	}
	return item, nil
}

// TransitionStatus moves an item along one of the legal edges.  Only
// the owner may transition an item; administrators moderate through
// SetVerified and Delete instead.  The permission check runs before
// the edge check so a non-owner always sees ErrPermissionDenied.
func (w *ItemWorkflow) TransitionStatus(ctx context.Context, itemID, callerID uint64, next model.ItemStatus) (*model.Item, error) {
	item, err := w.items.Find(ctx, itemID)
	if err != nil {
		return nil, wrapStore(err)
	}
	if item.UserID != callerID {
		return nil, ErrPermissionDenied
	}
	if !CanTransition(item.Status, next) {
		return nil, ErrInvalidTransition
	}
	if err := w.items.UpdateStatus(ctx, itemID, next); err != nil {
		return nil, wrapStore(err)
	}
	item.Status = next
	return item, nil
}

// SetVerified flips the administrator-controlled trust flag.  It is
// independent of the status machine and works on items in any state.
func (w *ItemWorkflow) SetVerified(ctx context.Context, itemID uint64, callerRole model.Role, verified bool) (*model.Item, error) {
	if callerRole != model.RoleAdmin {
		return nil, ErrPermissionDenied
	}
	item, err := w.items.Find(ctx, itemID)
	if err != nil {
		return nil, wrapStore(err)
	}
	if err := w.items.UpdateVerified(ctx, itemID, verified); err != nil {
		return nil, wrapStore(err)
	}
	item.IsVerified = verified
	return item, nil
}

// SetImagePermitted loads an item and verifies the caller may attach
// an image to it, applying the same owner-or-admin rule as Update.
// The actual URL write happens after the upload succeeds, so the two
// steps are split.
func (w *ItemWorkflow) SetImagePermitted(ctx context.Context, itemID, callerID uint64, callerRole model.Role) (*model.Item, error) {
	item, err := w.items.Find(ctx, itemID)
	if err != nil {
		return nil, wrapStore(err)
	}
	if !canModify(item, callerID, callerRole) {
		return nil, ErrPermissionDenied
	}
	return item, nil
}

// Delete removes an item.  The caller must be the owner or an
// administrator.  Deleting an already absent item fails ErrNotFound;
// claims against the item are removed by the database cascade.
func (w *ItemWorkflow) Delete(ctx context.Context, itemID, callerID uint64, callerRole model.Role) error {
	item, err := w.items.Find(ctx, itemID)
	if err != nil {
		return wrapStore(err)
	}
	if !canModify(item, callerID, callerRole) {
		return ErrPermissionDenied
	}
	return wrapStore(w.items.Delete(ctx, itemID))
}
