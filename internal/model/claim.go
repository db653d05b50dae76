package model

import "time"

// ClaimStatus enumerates the states of a claim.  A claim is created
// pending and resolved exactly once by the item owner; approved and
// rejected are terminal.
type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "pending"
	ClaimApproved ClaimStatus = "approved"
	ClaimRejected ClaimStatus = "rejected"
)

// Claim is a message from one user asserting interest in another
// user's item, as stored in the `claims` table.
//
// Fields:
//  ID        – primary key identifier.
//  ItemID    – item the claim refers to.
//  ClaimerID – user who submitted the claim.
//  Message   – free-text message, never empty after trimming.
//  Status    – pending, approved or rejected.
//  CreatedAt – creation timestamp.
type Claim struct {
	ID        uint64      `json:"id"`
	ItemID    uint64      `json:"item_id"`
	ClaimerID uint64      `json:"claimer_id"`
	Message   string      `json:"message"`
	Status    ClaimStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// ClaimDetail is a claim joined with the bits of item and claimer
// information an owner needs to moderate it.  It is a read-only
// snapshot assembled for display; resolving a claim goes through the
// workflow using the claim ID.
type ClaimDetail struct {
	Claim
	ItemTitle    string     `json:"item_title"`
	ItemStatus   ItemStatus `json:"item_status"`
	ClaimerName  *string    `json:"claimer_name,omitempty"`
	ClaimerEmail string     `json:"claimer_email"`
}
