package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/lost-and-found/internal/model"
	"github.com/iliyamo/lost-and-found/internal/workflow"
)

// AdminRepo bundles the moderation queries that do not belong to a
// single entity: the user-deletion cascade and the analytics summary
// for the dashboard.
type AdminRepo struct {
	db *sql.DB
}

// NewAdminRepo returns a new AdminRepo bound to the given database.
func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{db: db} }

// DeleteUserCascade removes a user and everything attached to them in
// one transaction: claims they submitted, claims filed by others
// against their items, their items, role records, refresh tokens, the
// profile and finally the account row.  Running inside a transaction
// means no partial state can be observed; the explicit ordering still
// mirrors the dependency chain (children before parents).  Returns
// workflow.ErrNotFound when no such user exists.
func (r *AdminRepo) DeleteUserCascade(ctx context.Context, userID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	steps := []string{
		"DELETE FROM claims WHERE claimer_id = ?",
		"DELETE c FROM claims c JOIN items i ON i.id = c.item_id WHERE i.user_id = ?",
		"DELETE FROM items WHERE user_id = ?",
		"DELETE FROM user_roles WHERE user_id = ?",
		"DELETE FROM refresh_tokens WHERE user_id = ?",
		"DELETE FROM profiles WHERE id = ?",
	}
	for _, q := range steps {
		if _, err := tx.ExecContext(ctx, q, userID); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", userID)
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
	return tx.Commit()
}

// StatusCount pairs an item status with the number of items in it.
type StatusCount struct {
	Status model.ItemStatus `json:"status"`
	Count  int              `json:"count"`
}

// CategoryCount pairs a category with the number of items filed under it.
type CategoryCount struct {
	Category model.ItemCategory `json:"category"`
	Count    int                `json:"count"`
}

// Analytics is the moderation dashboard summary.
type Analytics struct {
	TotalItems        int             `json:"total_items"`
	LostItems         int             `json:"lost_items"`
	FoundItems        int             `json:"found_items"`
	RecoveredItems    int             `json:"recovered_items"`
	RecoveryRate      int             `json:"recovery_rate"`
	TotalClaims       int             `json:"total_claims"`
	PendingClaims     int             `json:"pending_claims"`
	TotalUsers        int             `json:"total_users"`
	RecentActivity    int             `json:"recent_activity"`
	StatusBreakdown   []StatusCount   `json:"status_breakdown"`
	CategoryBreakdown []CategoryCount `json:"category_breakdown"`
}

// LoadAnalytics assembles the dashboard summary.  The recovery rate
// is recovered items over total items, as a rounded-down percentage;
// recent activity counts items reported in the last seven days.
func (r *AdminRepo) LoadAnalytics(ctx context.Context) (*Analytics, error) {
	a := &Analytics{
		StatusBreakdown:   make([]StatusCount, 0),
		CategoryBreakdown: make([]CategoryCount, 0),
	}

	rows, err := r.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM items GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		a.StatusBreakdown = append(a.StatusBreakdown, sc)
		a.TotalItems += sc.Count
		switch sc.Status {
		case model.StatusLost:
			a.LostItems = sc.Count
		case model.StatusFound:
			a.FoundItems = sc.Count
		case model.StatusRecovered:
			a.RecoveredItems = sc.Count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if a.TotalItems > 0 {
		a.RecoveryRate = a.RecoveredItems * 100 / a.TotalItems
	}

	crows, err := r.db.QueryContext(ctx, "SELECT category, COUNT(*) FROM items GROUP BY category ORDER BY COUNT(*) DESC")
	if err != nil {
		return nil, err
	}
	defer crows.Close()
	for crows.Next() {
		var cc CategoryCount
		if err := crows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, err
		}
		a.CategoryBreakdown = append(a.CategoryBreakdown, cc)
	}
	if err := crows.Err(); err != nil {
		return nil, err
	}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM claims", &a.TotalClaims},
		{"SELECT COUNT(*) FROM claims WHERE status = 'pending'", &a.PendingClaims},
		{"SELECT COUNT(*) FROM users", &a.TotalUsers},
		{"SELECT COUNT(*) FROM items WHERE created_at >= NOW() - INTERVAL 7 DAY", &a.RecentActivity},
	}
	for _, c := range counts {
		if err := r.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, err
		}
	}
	return a, nil
}
