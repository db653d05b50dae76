package workflow

import (
	"context"
	"time"

	"github.com/iliyamo/lost-and-found/internal/model"
)

// fakeItemStore is an in-memory ItemStore for exercising the workflows
// without a database.
type fakeItemStore struct {
	items  map[uint64]*model.Item
	nextID uint64
	// failWith, when set, is returned by every method to simulate an
	// infrastructure failure.
	failWith error
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{items: map[uint64]*model.Item{}, nextID: 1}
}

func (s *fakeItemStore) Find(_ context.Context, id uint64) (*model.Item, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	it, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (s *fakeItemStore) Insert(_ context.Context, item *model.Item) error {
	if s.failWith != nil {
		return s.failWith
	}
	item.ID = s.nextID
	s.nextID++
	item.CreatedAt = time.Now().UTC()
	item.UpdatedAt = item.CreatedAt
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

func (s *fakeItemStore) Update(_ context.Context, item *model.Item) error {
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.items[item.ID]; !ok {
		return ErrNotFound
	}
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

func (s *fakeItemStore) UpdateStatus(_ context.Context, id uint64, status model.ItemStatus) error {
	if s.failWith != nil {
		return s.failWith
	}
	it, ok := s.items[id]
	if !ok {
		return ErrNotFound
	}
	it.Status = status
	return nil
}

func (s *fakeItemStore) UpdateVerified(_ context.Context, id uint64, verified bool) error {
	if s.failWith != nil {
		return s.failWith
	}
	it, ok := s.items[id]
	if !ok {
		return ErrNotFound
	}
	it.IsVerified = verified
	return nil
}

func (s *fakeItemStore) Delete(_ context.Context, id uint64) error {
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// seed stores an item directly, bypassing validation.
func (s *fakeItemStore) seed(it model.Item) uint64 {
	if it.ID == 0 {
		it.ID = s.nextID
		s.nextID++
	} else if it.ID >= s.nextID {
		s.nextID = it.ID + 1
	}
	s.items[it.ID] = &it
	return it.ID
}

// fakeClaimStore is an in-memory ClaimStore.
type fakeClaimStore struct {
	claims   map[uint64]*model.Claim
	nextID   uint64
	failWith error
	// owner view is assembled from the paired item store.
	items *fakeItemStore
}

func newFakeClaimStore(items *fakeItemStore) *fakeClaimStore {
	return &fakeClaimStore{claims: map[uint64]*model.Claim{}, nextID: 1, items: items}
}

func (s *fakeClaimStore) Find(_ context.Context, id uint64) (*model.Claim, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	c, ok := s.claims[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeClaimStore) Insert(_ context.Context, claim *model.Claim) error {
	if s.failWith != nil {
		return s.failWith
	}
	claim.ID = s.nextID
	s.nextID++
	claim.CreatedAt = time.Now().UTC()
	cp := *claim
	s.claims[claim.ID] = &cp
	return nil
}

func (s *fakeClaimStore) UpdateStatus(_ context.Context, id uint64, status model.ClaimStatus) error {
	if s.failWith != nil {
		return s.failWith
	}
	c, ok := s.claims[id]
	if !ok {
		return ErrNotFound
	}
	c.Status = status
	return nil
}

func (s *fakeClaimStore) ListForOwner(_ context.Context, ownerID uint64) ([]model.ClaimDetail, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	details := make([]model.ClaimDetail, 0)
	for _, c := range s.claims {
		it, ok := s.items.items[c.ItemID]
		if !ok || it.UserID != ownerID {
			continue
		}
		details = append(details, model.ClaimDetail{
			Claim:        *c,
			ItemTitle:    it.Title,
			ItemStatus:   it.Status,
			ClaimerEmail: "claimer@example.com",
		})
	}
	return details, nil
}

// validInput returns an ItemInput that passes every check; tests
// mutate single fields to probe individual rules.
func validInput() ItemInput {
	return ItemInput{
		Title:         "Black leather wallet",
		Category:      model.CategoryAccessories,
		Location:      "Central station, platform 4",
		DateLostFound: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:        model.StatusLost,
	}
}

func strptr(s string) *string { return &s }
