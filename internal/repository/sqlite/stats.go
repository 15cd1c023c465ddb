package sqlite

import (
	"context"

	"github.com/avelar/pitch/internal/models"
)

// Dashboard aggregates. A zero `since` (or empty sinceDate) means no time filter.

func (r *Repo) CountProposals(ctx context.Context, userID, since int64) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM proposals WHERE user_id = ? AND created >= ?`, userID, since)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *Repo) CountProposalsByStatus(ctx context.Context, userID int64, status string, since int64) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM proposals WHERE user_id = ? AND status = ? AND created >= ?`, userID, status, since)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

// SumCompletedProjectBudget totals the budget of completed projects. ISO
// dates compare lexicographically, so the filter is a plain >= on end_date.
func (r *Repo) SumCompletedProjectBudget(ctx context.Context, userID int64, sinceDate string) (int64, error) {
	query := `SELECT COALESCE(SUM(budget), 0) FROM projects WHERE user_id = ? AND status = ?`
	args := []any{userID, models.ProjectStatusCompleted}
	if sinceDate != "" {
		query += ` AND end_date >= ?`
		args = append(args, sinceDate)
	}

	row := r.conn.QueryRow(ctx, query, args...)
	var sum int64
	if err := row.Scan(&sum); err != nil {
		return 0, err
	}
	return sum, nil
}
