package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lost-and-found/internal/model"
)

func seedFoundItem(store *fakeItemStore, ownerID uint64) uint64 {
	return store.seed(model.Item{
		UserID:   ownerID,
		Title:    "Silver ring",
		Category: model.CategoryJewelry,
		Location: "Beach",
		Status:   model.StatusFound,
	})
}

func TestClaimSubmit(t *testing.T) {
	items := newFakeItemStore()
	claims := newFakeClaimStore(items)
	wf := NewClaimWorkflow(items, claims)
	ctx := context.Background()
	itemID := seedFoundItem(items, 1)

	claim, err := wf.Submit(ctx, itemID, 2, "  That's my ring, it has my initials.  ")
	require.NoError(t, err)
	assert.Equal(t, model.ClaimPending, claim.Status, "claims always start pending")
	assert.Equal(t, "That's my ring, it has my initials.", claim.Message, "message is trimmed")
	assert.Equal(t, uint64(2), claim.ClaimerID)
	assert.NotZero(t, claim.ID)
}

func TestClaimSubmitRules(t *testing.T) {
	items := newFakeItemStore()
	claims := newFakeClaimStore(items)
	wf := NewClaimWorkflow(items, claims)
	ctx := context.Background()
	itemID := seedFoundItem(items, 1)

	// Owners cannot claim their own items.
	_, err := wf.Submit(ctx, itemID, 1, "mine")
	assert.ErrorIs(t, err, ErrSelfClaim)

	// Empty message after trimming is a validation failure.
	_, err = wf.Submit(ctx, itemID, 2, "   ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "message")

	// Missing item.
	_, err = wf.Submit(ctx, 999, 2, "hello")
	assert.ErrorIs(t, err, ErrNotFound)

	// Terminal items no longer accept claims.
	for _, status := range []model.ItemStatus{model.StatusRecovered, model.StatusClosed} {
		id := items.seed(model.Item{UserID: 1, Title: "Old item", Category: model.CategoryOther, Location: "x", Status: status})
		_, err = wf.Submit(ctx, id, 2, "too late")
		assert.ErrorIs(t, err, ErrItemNotClaimable, "status %s", status)
	}

	// Lost items still accept claims ("I found this").
	lostID := items.seed(model.Item{UserID: 1, Title: "Lost phone", Category: model.CategoryElectronics, Location: "Tram", Status: model.StatusLost})
	_, err = wf.Submit(ctx, lostID, 2, "I picked this up yesterday")
	assert.NoError(t, err)
}

func TestClaimResolve(t *testing.T) {
	items := newFakeItemStore()
	claims := newFakeClaimStore(items)
	wf := NewClaimWorkflow(items, claims)
	ctx := context.Background()
	itemID := seedFoundItem(items, 1)

	claim, err := wf.Submit(ctx, itemID, 2, "it is mine")
	require.NoError(t, err)

	resolved, err := wf.Resolve(ctx, claim.ID, 1, model.ClaimApproved)
	require.NoError(t, err)
	assert.Equal(t, model.ClaimApproved, resolved.Status)

	// A claim resolves at most once, regardless of the decision.
	_, err = wf.Resolve(ctx, claim.ID, 1, model.ClaimRejected)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = wf.Resolve(ctx, claim.ID, 1, model.ClaimApproved)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestClaimResolveValidatesDecision(t *testing.T) {
	items := newFakeItemStore()
	claims := newFakeClaimStore(items)
	wf := NewClaimWorkflow(items, claims)
	ctx := context.Background()
	itemID := seedFoundItem(items, 1)
	claim, err := wf.Submit(ctx, itemID, 2, "mine")
	require.NoError(t, err)

	for _, bad := range []model.ClaimStatus{model.ClaimPending, "banana", ""} {
		_, err := wf.Resolve(ctx, claim.ID, 1, bad)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "decision %q", bad)
		assert.Contains(t, verr.Fields, "decision")
	}
}

func TestClaimResolveOwnershipBeforeStatus(t *testing.T) {
	items := newFakeItemStore()
	claims := newFakeClaimStore(items)
	wf := NewClaimWorkflow(items, claims)
	ctx := context.Background()
	itemID := seedFoundItem(items, 1)

	claim, err := wf.Submit(ctx, itemID, 2, "mine")
	require.NoError(t, err)
	_, err = wf.Resolve(ctx, claim.ID, 1, model.ClaimRejected)
	require.NoError(t, err)

	// The claim is already resolved AND the caller does not own the
	// item.  Ownership must be checked first: the claimer learns
	// nothing about moderation state.
	_, err = wf.Resolve(ctx, claim.ID, 2, model.ClaimApproved)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// Same for a complete stranger.
	_, err = wf.Resolve(ctx, claim.ID, 77, model.ClaimApproved)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestClaimListForOwner(t *testing.T) {
	items := newFakeItemStore()
	claims := newFakeClaimStore(items)
	wf := NewClaimWorkflow(items, claims)
	ctx := context.Background()

	myItem := seedFoundItem(items, 1)
	otherItem := seedFoundItem(items, 9)

	_, err := wf.Submit(ctx, myItem, 2, "claim on my item")
	require.NoError(t, err)
	_, err = wf.Submit(ctx, otherItem, 2, "claim on someone else's item")
	require.NoError(t, err)

	details, err := wf.ListForOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, details, 1, "only claims against the owner's items are visible")
	assert.Equal(t, "claim on my item", details[0].Message)
	assert.Equal(t, "Silver ring", details[0].ItemTitle)

	// No claims is an empty list, not an error.
	details, err = wf.ListForOwner(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, details)
}
