package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avelar/pitch/internal/models"
)

func (r *Repo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO users (username, email, password_hash, created) VALUES (?, ?, ?, ?)`, u.Username, u.Email, u.PasswordHash, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *Repo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.scanUser(r.conn.QueryRow(ctx, `SELECT id, username, email, password_hash, created FROM users WHERE id = ?`, id))
}

func (r *Repo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.scanUser(r.conn.QueryRow(ctx, `SELECT id, username, email, password_hash, created FROM users WHERE username = ?`, username))
}

func (r *Repo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanUser(r.conn.QueryRow(ctx, `SELECT id, username, email, password_hash, created FROM users WHERE email = ?`, email))
}

func (r *Repo) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var pw sql.NullString
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &pw, &u.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	if pw.Valid {
		u.PasswordHash = pw.String
	}

	return &u, nil
}
