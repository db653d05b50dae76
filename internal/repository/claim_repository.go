package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/lost-and-found/internal/model"
	"github.com/iliyamo/lost-and-found/internal/workflow"
)

// ClaimRepo provides persistence for claims.  It implements
// workflow.ClaimStore.
type ClaimRepo struct {
	db *sql.DB
}

// NewClaimRepo returns a new ClaimRepo bound to the given database.
func NewClaimRepo(db *sql.DB) *ClaimRepo { return &ClaimRepo{db: db} }

// Find returns the claim with the given ID, or workflow.ErrNotFound.
func (r *ClaimRepo) Find(ctx context.Context, id uint64) (*model.Claim, error) {
	const q = "SELECT id, item_id, claimer_id, message, status, created_at FROM claims WHERE id = ?"
	var c model.Claim
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&c.ID, &c.ItemID, &c.ClaimerID, &c.Message, &c.Status, &c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, workflow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Insert persists a new claim and queries the row back to populate
// the generated ID, default status and timestamp.
func (r *ClaimRepo) Insert(ctx context.Context, claim *model.Claim) error {
	const q = "INSERT INTO claims (item_id, claimer_id, message, status) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, claim.ItemID, claim.ClaimerID, claim.Message, claim.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.Find(ctx, uint64(id))
	if err != nil {
		return err
	}
	*claim = *stored
	return nil
}

// UpdateStatus writes the claim's status column.
func (r *ClaimRepo) UpdateStatus(ctx context.Context, id uint64, status model.ClaimStatus) error {
	_, err := r.db.ExecContext(ctx, "UPDATE claims SET status = ? WHERE id = ?", status, id)
	return err
}

// ListForOwner returns all claims filed against items owned by the
// given user, newest first, joined with the item title/status and the
// claimer's profile for the moderation view.
func (r *ClaimRepo) ListForOwner(ctx context.Context, ownerID uint64) ([]model.ClaimDetail, error) {
	const q = `SELECT c.id, c.item_id, c.claimer_id, c.message, c.status, c.created_at,
	                  i.title, i.status,
	                  p.full_name, p.email
	           FROM claims c
	           JOIN items i ON i.id = c.item_id
	           JOIN profiles p ON p.id = c.claimer_id
	           WHERE i.user_id = ?
	           ORDER BY c.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]model.ClaimDetail, 0)
	for rows.Next() {
		var (
			d        model.ClaimDetail
			fullName sql.NullString
		)
		if err := rows.Scan(
			&d.ID, &d.ItemID, &d.ClaimerID, &d.Message, &d.Status, &d.CreatedAt,
			&d.ItemTitle, &d.ItemStatus,
			&fullName, &d.ClaimerEmail,
		); err != nil {
			return nil, err
		}
		if fullName.Valid {
			d.ClaimerName = &fullName.String
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// ListByClaimer returns the claims the given user has submitted,
// newest first.
func (r *ClaimRepo) ListByClaimer(ctx context.Context, claimerID uint64) ([]model.Claim, error) {
	const q = "SELECT id, item_id, claimer_id, message, status, created_at FROM claims WHERE claimer_id = ? ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, q, claimerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	claims := make([]model.Claim, 0)
	for rows.Next() {
		var c model.Claim
		if err := rows.Scan(&c.ID, &c.ItemID, &c.ClaimerID, &c.Message, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}
