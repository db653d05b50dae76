package workflow

import (
	"context"
	"strings"

	"github.com/iliyamo/lost-and-found/internal/model"
)

// ClaimWorkflow creates claims against items and lets the item owner
// resolve them.
type ClaimWorkflow struct {
	items  ItemStore
	claims ClaimStore
}

// NewClaimWorkflow constructs a ClaimWorkflow bound to the given stores.
func NewClaimWorkflow(items ItemStore, claims ClaimStore) *ClaimWorkflow {
	if items == nil || claims == nil {
		panic("nil store passed to NewClaimWorkflow")
	}
	return &ClaimWorkflow{items: items, claims: claims}
}

// Submit files a new pending claim against an item.  Owners cannot
// claim their own items and items in a terminal state no longer
// accept claims.  The message must be non-empty after trimming.
func (w *ClaimWorkflow) Submit(ctx context.Context, itemID, claimerID uint64, message string) (*model.Claim, error) {
	item, err := w.items.Find(ctx, itemID)
	if err != nil {
		return nil, wrapStore(err)
	}
	if item.UserID == claimerID {
		return nil, ErrSelfClaim
	}
	if item.Status == model.StatusRecovered || item.Status == model.StatusClosed {
		return nil, ErrItemNotClaimable
	}
	msg := strings.TrimSpace(message)
	if msg == "" {
		return nil, &ValidationError{Fields: map[string]string{"message": "message is required"}}
	}
	claim := &model.Claim{
		ItemID:    itemID,
		ClaimerID: claimerID,
		Message:   msg,
		Status:    model.ClaimPending,
	}
	if err := w.claims.Insert(ctx, claim); err != nil {
		return nil, wrapStore(err)
	}
	return claim, nil
}

// Resolve moves a pending claim to approved or rejected.  Only the
// owner of the claimed item may resolve; the ownership check runs
// before the status check so a wrong caller always sees
// ErrPermissionDenied.  A claim resolves at most once: any later
// attempt fails ErrInvalidTransition regardless of the decision.
func (w *ClaimWorkflow) Resolve(ctx context.Context, claimID, callerID uint64, decision model.ClaimStatus) (*model.Claim, error) {
	if decision != model.ClaimApproved && decision != model.ClaimRejected {
		return nil, &ValidationError{Fields: map[string]string{"decision": "must be approved or rejected"}}
	}
	claim, err := w.claims.Find(ctx, claimID)
	if err != nil {
		return nil, wrapStore(err)
	}
	item, err := w.items.Find(ctx, claim.ItemID)
	if err != nil {
		return nil, wrapStore(err)
	}
	if item.UserID != callerID {
		return nil, ErrPermissionDenied
	}
	if claim.Status != model.ClaimPending {
		return nil, ErrInvalidTransition
	}
	if err := w.claims.UpdateStatus(ctx, claimID, decision); err != nil {
		return nil, wrapStore(err)
	}
	claim.Status = decision
	return claim, nil
}

// ListForOwner returns a point-in-time snapshot of the claims filed
// against the owner's items, joined with item and claimer details for
// display.  Read-only; no side effects.
func (w *ClaimWorkflow) ListForOwner(ctx context.Context, ownerID uint64) ([]model.ClaimDetail, error) {
	details, err := w.claims.ListForOwner(ctx, ownerID)
	if err != nil {
		return nil, wrapStore(err)
	}
	return details, nil
}
