package workflow

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lost-and-found/internal/model"
)

func TestCanTransition(t *testing.T) {
	legal := []struct{ from, to model.ItemStatus }{
		{model.StatusLost, model.StatusRecovered},
		{model.StatusLost, model.StatusClosed},
		{model.StatusFound, model.StatusClaimed},
		{model.StatusFound, model.StatusClosed},
	}
	for _, e := range legal {
		assert.True(t, CanTransition(e.from, e.to), "%s -> %s should be legal", e.from, e.to)
	}

	// Everything else is illegal, including self-loops and any edge
	// out of a terminal state.
	all := []model.ItemStatus{
		model.StatusLost, model.StatusFound, model.StatusClaimed,
		model.StatusRecovered, model.StatusClosed,
	}
	legalSet := map[[2]model.ItemStatus]bool{}
	for _, e := range legal {
		legalSet[[2]model.ItemStatus{e.from, e.to}] = true
	}
	for _, from := range all {
		for _, to := range all {
			if legalSet[[2]model.ItemStatus{from, to}] {
				continue
			}
			assert.False(t, CanTransition(from, to), "%s -> %s should be illegal", from, to)
		}
	}
}

func TestItemCreate(t *testing.T) {
	store := newFakeItemStore()
	wf := NewItemWorkflow(store)
	ctx := context.Background()

	in := validInput()
	in.Title = "  Black leather wallet  "
	in.Description = strptr("   ")

	item, err := wf.Create(ctx, 7, in)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), item.UserID)
	assert.Equal(t, "Black leather wallet", item.Title, "title is trimmed")
	assert.Nil(t, item.Description, "blank optional fields persist as nil")
	assert.False(t, item.IsVerified, "new items always start unverified")
	assert.NotZero(t, item.ID)
}

func TestItemCreateValidation(t *testing.T) {
	wf := NewItemWorkflow(newFakeItemStore())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*ItemInput)
		field  string
	}{
		{"short title", func(in *ItemInput) { in.Title = "ab" }, "title"},
		{"long title", func(in *ItemInput) { in.Title = strings.Repeat("x", 101) }, "title"},
		{"short location", func(in *ItemInput) { in.Location = "x" }, "location"},
		{"long description", func(in *ItemInput) { in.Description = strptr(strings.Repeat("d", 1001)) }, "description"},
		{"bad category", func(in *ItemInput) { in.Category = "vehicles" }, "category"},
		{"zero date", func(in *ItemInput) { in.DateLostFound = time.Time{} }, "date_lost_found"},
		{"bad email", func(in *ItemInput) { in.ContactEmail = strptr("not-an-email") }, "contact_email"},
		{"long phone", func(in *ItemInput) { in.ContactPhone = strptr(strings.Repeat("1", 21)) }, "contact_phone"},
		{"bad initial status", func(in *ItemInput) { in.Status = model.StatusClaimed }, "status"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := wf.Create(context.Background(), 1, in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}

	// Multiple violations are reported together, not first-wins.
	in := validInput()
	in.Title = "x"
	in.Location = "y"
	_, err := wf.Create(ctx, 1, in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
}

func TestItemUpdatePermissions(t *testing.T) {
	store := newFakeItemStore()
	wf := NewItemWorkflow(store)
	ctx := context.Background()
	id := store.seed(model.Item{UserID: 1, Title: "Umbrella", Category: model.CategoryOther, Location: "Bus 12", Status: model.StatusLost})

	in := validInput()
	in.Title = "Red umbrella"

	// A stranger is refused.
	_, err := wf.Update(ctx, id, 2, model.RoleUser, in)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// The owner may edit.
	item, err := wf.Update(ctx, id, 1, model.RoleUser, in)
	require.NoError(t, err)
	assert.Equal(t, "Red umbrella", item.Title)
	assert.Equal(t, uint64(1), item.UserID, "owner never changes on update")

	// An admin may edit anyone's item.
	in.Title = "Big red umbrella"
	item, err = wf.Update(ctx, id, 99, model.RoleAdmin, in)
	require.NoError(t, err)
	assert.Equal(t, "Big red umbrella", item.Title)

	// Update never touches status even if the input carries one.
	in.Status = model.StatusRecovered
	item, err = wf.Update(ctx, id, 1, model.RoleUser, in)
	require.NoError(t, err)
	assert.Equal(t, model.StatusLost, item.Status)
}

func TestItemUpdateMissing(t *testing.T) {
	wf := NewItemWorkflow(newFakeItemStore())
	_, err := wf.Update(context.Background(), 42, 1, model.RoleAdmin, validInput())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransitionStatus(t *testing.T) {
	store := newFakeItemStore()
	wf := NewItemWorkflow(store)
	ctx := context.Background()
	id := store.seed(model.Item{UserID: 1, Title: "Phone", Category: model.CategoryElectronics, Location: "Park", Status: model.StatusLost})

	// Owner moves lost -> recovered.
	item, err := wf.TransitionStatus(ctx, id, 1, model.StatusRecovered)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRecovered, item.Status)

	// Terminal: no way back out, not even for the owner.
	_, err = wf.TransitionStatus(ctx, id, 1, model.StatusLost)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = wf.TransitionStatus(ctx, id, 1, model.StatusClosed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionPermissionBeforeEdgeCheck(t *testing.T) {
	store := newFakeItemStore()
	wf := NewItemWorkflow(store)
	ctx := context.Background()
	id := store.seed(model.Item{UserID: 1, Title: "Phone", Category: model.CategoryElectronics, Location: "Park", Status: model.StatusRecovered})

	// The requested edge is illegal AND the caller is not the owner.
	// The permission failure must win so strangers cannot probe item
	// state through error responses.
	_, err := wf.TransitionStatus(ctx, id, 2, model.StatusClosed)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestTransitionOwnerOnly(t *testing.T) {
	store := newFakeItemStore()
	wf := NewItemWorkflow(store)
	ctx := context.Background()
	id := store.seed(model.Item{UserID: 1, Title: "Phone", Category: model.CategoryElectronics, Location: "Park", Status: model.StatusLost})

	// Not even a legal edge helps a non-owner.
	_, err := wf.TransitionStatus(ctx, id, 2, model.StatusRecovered)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// Item untouched.
	it, err := store.Find(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusLost, it.Status)
}

func TestSetVerified(t *testing.T) {
	store := newFakeItemStore()
	wf := NewItemWorkflow(store)
	ctx := context.Background()
	id := store.seed(model.Item{UserID: 1, Title: "Keys", Category: model.CategoryKeys, Location: "Gym", Status: model.StatusFound})

	_, err := wf.SetVerified(ctx, id, model.RoleUser, true)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	item, err := wf.SetVerified(ctx, id, model.RoleAdmin, true)
	require.NoError(t, err)
	assert.True(t, item.IsVerified)

	// Works on terminal items too; verification is orthogonal to status.
	tid := store.seed(model.Item{UserID: 1, Title: "Bag", Category: model.CategoryBags, Location: "Cafe", Status: model.StatusClosed})
	item, err = wf.SetVerified(ctx, tid, model.RoleAdmin, true)
	require.NoError(t, err)
	assert.True(t, item.IsVerified)
	assert.Equal(t, model.StatusClosed, item.Status)
}

func TestItemDelete(t *testing.T) {
	store := newFakeItemStore()
	wf := NewItemWorkflow(store)
	ctx := context.Background()
	id := store.seed(model.Item{UserID: 1, Title: "Book", Category: model.CategoryBooks, Location: "Library", Status: model.StatusFound})

	assert.ErrorIs(t, wf.Delete(ctx, id, 2, model.RoleUser), ErrPermissionDenied)
	require.NoError(t, wf.Delete(ctx, id, 1, model.RoleUser))

	// The second delete reports the absence instead of succeeding
	// silently.
	assert.ErrorIs(t, wf.Delete(ctx, id, 1, model.RoleUser), ErrNotFound)
}

func TestItemStoreFailureWrapped(t *testing.T) {
	store := newFakeItemStore()
	store.failWith = errors.New("connection reset")
	wf := NewItemWorkflow(store)

	_, err := wf.Create(context.Background(), 1, validInput())
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "connection reset")
}
