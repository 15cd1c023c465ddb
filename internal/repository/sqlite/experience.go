package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avelar/pitch/internal/models"
)

func (r *Repo) CreateExperience(ctx context.Context, e *models.Experience) (int64, error) {
	if e == nil {
		return 0, fmt.Errorf("experience is nil")
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO experiences (user_id, company, title, location, start_date, end_date, description, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.Company, e.Title, e.Location, e.StartDate, e.EndDate, e.Description, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

// ListExperiencesByUser returns experiences most-recent-first by start date.
func (r *Repo) ListExperiencesByUser(ctx context.Context, userID int64) ([]models.Experience, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT id, user_id, company, title, location, start_date, end_date, description, created FROM experiences WHERE user_id = ? ORDER BY start_date DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Experience
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}

	return out, rows.Err()
}

func (r *Repo) GetExperience(ctx context.Context, userID, id int64) (*models.Experience, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT id, user_id, company, title, location, start_date, end_date, description, created FROM experiences WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	return scanExperience(rows)
}

func (r *Repo) UpdateExperience(ctx context.Context, e *models.Experience) error {
	if e == nil {
		return fmt.Errorf("experience is nil")
	}

	_, err := r.conn.Exec(ctx,
		`UPDATE experiences SET company = ?, title = ?, location = ?, start_date = ?, end_date = ?, description = ? WHERE id = ? AND user_id = ?`,
		e.Company, e.Title, e.Location, e.StartDate, e.EndDate, e.Description, e.ID, e.UserID)
	return err
}

func (r *Repo) DeleteExperience(ctx context.Context, userID, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM experiences WHERE id = ? AND user_id = ?`, id, userID)
	return err
}

func scanExperience(rows *sql.Rows) (*models.Experience, error) {
	var e models.Experience
	var location, endDate sql.NullString
	if err := rows.Scan(&e.ID, &e.UserID, &e.Company, &e.Title, &location, &e.StartDate, &endDate, &e.Description, &e.Created); err != nil {
		return nil, err
	}

	if location.Valid {
		e.Location = &location.String
	}
	if endDate.Valid {
		e.EndDate = &endDate.String
	}

	return &e, nil
}
