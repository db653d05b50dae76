package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/lost-and-found/internal/model"
	"github.com/iliyamo/lost-and-found/internal/workflow"
)

// itemColumns is the canonical column list scanned into model.Item.
const itemColumns = "id, user_id, title, category, description, location, date_lost_found, image_url, status, contact_email, contact_phone, is_verified, created_at, updated_at"

// ItemRepo provides CRUD and listing operations for items.  It
// implements workflow.ItemStore.  All timestamps are stored in UTC.
type ItemRepo struct {
	db *sql.DB
}

// NewItemRepo returns a new ItemRepo bound to the given database.
func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{db: db} }

// scanItem scans a single row into a model.Item, converting nullable
// columns to pointers.
func scanItem(row interface{ Scan(...any) error }) (*model.Item, error) {
	var (
		it           model.Item
		description  sql.NullString
		imageURL     sql.NullString
		contactEmail sql.NullString
		contactPhone sql.NullString
	)
	err := row.Scan(
		&it.ID, &it.UserID, &it.Title, &it.Category, &description,
		&it.Location, &it.DateLostFound, &imageURL, &it.Status,
		&contactEmail, &contactPhone, &it.IsVerified, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		it.Description = &description.String
	}
	if imageURL.Valid {
		it.ImageURL = &imageURL.String
	}
	if contactEmail.Valid {
		it.ContactEmail = &contactEmail.String
	}
	if contactPhone.Valid {
		it.ContactPhone = &contactPhone.String
	}
	return &it, nil
}

// Find returns the item with the given ID, or workflow.ErrNotFound.
func (r *ItemRepo) Find(ctx context.Context, id uint64) (*model.Item, error) {
	const q = "SELECT " + itemColumns + " FROM items WHERE id = ?"
	it, err := scanItem(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, workflow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

// Insert persists a new item and queries the row back so generated
// defaults (ID, timestamps) are populated on the provided record.
func (r *ItemRepo) Insert(ctx context.Context, item *model.Item) error {
	const q = `INSERT INTO items
		(user_id, title, category, description, location, date_lost_found, image_url, status, contact_email, contact_phone, is_verified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		item.UserID, item.Title, item.Category, item.Description,
		item.Location, item.DateLostFound, item.ImageURL, item.Status,
		item.ContactEmail, item.ContactPhone, item.IsVerified,
	)
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
	*item = *stored
	return nil
}

// Update writes the caller-editable columns.  Owner, status and the
// verified flag are deliberately not part of this statement.
func (r *ItemRepo) Update(ctx context.Context, item *model.Item) error {
	const q = `UPDATE items SET
		title = ?, category = ?, description = ?, location = ?,
		date_lost_found = ?, image_url = ?, contact_email = ?, contact_phone = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		item.Title, item.Category, item.Description, item.Location,
		item.DateLostFound, item.ImageURL, item.ContactEmail, item.ContactPhone,
		item.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// The row may exist with identical values; confirm presence.
		if _, ferr := r.Find(ctx, item.ID); ferr != nil {
			return ferr
		}
	}
	return nil
}

// UpdateStatus writes only the status column.
func (r *ItemRepo) UpdateStatus(ctx context.Context, id uint64, status model.ItemStatus) error {
	_, err := r.db.ExecContext(ctx, "UPDATE items SET status = ? WHERE id = ?", status, id)
	return err
}

// UpdateVerified writes only the is_verified column.
func (r *ItemRepo) UpdateVerified(ctx context.Context, id uint64, verified bool) error {
	_, err := r.db.ExecContext(ctx, "UPDATE items SET is_verified = ? WHERE id = ?", verified, id)
	return err
}

// UpdateImageURL attaches an uploaded image to the item.
func (r *ItemRepo) UpdateImageURL(ctx context.Context, id uint64, url string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE items SET image_url = ? WHERE id = ?", url, id)
	return err
}

// Delete removes an item.  Deleting an absent row reports
// workflow.ErrNotFound so a repeated delete is not a silent no-op.
// Claims referencing the item are removed by the FK cascade.
func (r *ItemRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return workflow.ErrNotFound
	}
	return nil
}

// ListFilter narrows the public listing.  Zero values mean "no
// filter".  Query matches title, description and location as a case
// insensitive substring.
type ListFilter struct {
	Status   model.ItemStatus
	Category model.ItemCategory
	Query    string
}

// List returns items matching the filter, newest first.  It backs the
// public browse and search endpoints.
func (r *ItemRepo) List(ctx context.Context, f ListFilter) ([]model.Item, error) {
	q := "SELECT " + itemColumns + " FROM items"
	var (
		conds []string
		args  []any
	)
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		conds = append(conds, "(title LIKE ? OR description LIKE ? OR location LIKE ?)")
		like := "%" + s + "%"
		args = append(args, like, like, like)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// ListByUser returns every item reported by the given user, newest
// first.  Backs the "my items" view.
func (r *ItemRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Item, error) {
	const q = "SELECT " + itemColumns + " FROM items WHERE user_id = ? ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}
