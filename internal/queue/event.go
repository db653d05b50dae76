// Package queue defines the domain events exchanged over the message
// broker and the background consumer that turns them into an audit
// trail.
package queue

// ItemReportedEvent is published when a new item is successfully
// created.  It carries enough for downstream consumers to log or
// aggregate without querying the primary database.
type ItemReportedEvent struct {
	ItemID     uint64 `json:"item_id"`
	UserID     uint64 `json:"user_id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Status     string `json:"status"`
	Location   string `json:"location"`
	ReportedAt string `json:"reported_at"`
}

// ClaimResolvedEvent is published when an item owner approves or
// rejects a claim.  The audit consumer appends these to the
// moderation log.
type ClaimResolvedEvent struct {
	ClaimID    uint64 `json:"claim_id"`
	ItemID     uint64 `json:"item_id"`
	ItemTitle  string `json:"item_title"`
	OwnerID    uint64 `json:"owner_id"`
	ClaimerID  uint64 `json:"claimer_id"`
	Decision   string `json:"decision"`
	ResolvedAt string `json:"resolved_at"`
}
