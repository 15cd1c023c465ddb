package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avelar/pitch/internal/models"
)

func (r *Repo) CreateProject(ctx context.Context, p *models.Project) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("project is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx,
		`INSERT INTO projects (user_id, title, description, summary, budget, platform, status, start_date, end_date, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Title, p.Description, p.Summary, p.Budget, p.Platform, p.Status, p.StartDate, p.EndDate, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *Repo) ListProjectsByUser(ctx context.Context, userID int64) ([]models.Project, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT id, user_id, title, description, summary, budget, platform, status, start_date, end_date, created, updated FROM projects WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}

	return out, rows.Err()
}

func (r *Repo) GetProject(ctx context.Context, userID, id int64) (*models.Project, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT id, user_id, title, description, summary, budget, platform, status, start_date, end_date, created, updated FROM projects WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	return scanProject(rows)
}

func (r *Repo) UpdateProject(ctx context.Context, p *models.Project) error {
	if p == nil {
		return fmt.Errorf("project is nil")
	}

	_, err := r.conn.Exec(ctx,
		`UPDATE projects SET title = ?, description = ?, summary = ?, budget = ?, platform = ?, status = ?, start_date = ?, end_date = ?, updated = ? WHERE id = ? AND user_id = ?`,
		p.Title, p.Description, p.Summary, p.Budget, p.Platform, p.Status, p.StartDate, p.EndDate, now(), p.ID, p.UserID)
	return err
}

func (r *Repo) DeleteProject(ctx context.Context, userID, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM projects WHERE id = ? AND user_id = ?`, id, userID)
	return err
}

func scanProject(rows *sql.Rows) (*models.Project, error) {
	var p models.Project
	var startDate, endDate sql.NullString
	if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Summary, &p.Budget, &p.Platform, &p.Status, &startDate, &endDate, &p.Created, &p.Updated); err != nil {
		return nil, err
	}

	if startDate.Valid {
		p.StartDate = &startDate.String
	}
	if endDate.Valid {
		p.EndDate = &endDate.String
	}

	return &p, nil
}
