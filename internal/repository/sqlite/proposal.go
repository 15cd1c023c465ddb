package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/avelar/pitch/internal/models"
)

func (r *Repo) CreateProposal(ctx context.Context, p *models.Proposal) error {
	if p == nil {
		return fmt.Errorf("proposal is nil")
	}
	if p.ID == "" {
		return fmt.Errorf("proposal id is empty")
	}

	details, err := json.Marshal(p.JobDetails)
	if err != nil {
		return fmt.Errorf("marshal job details: %w", err)
	}

	ts := now()
	p.Created = ts
	p.Updated = ts
	_, err = r.conn.Exec(ctx,
		`INSERT INTO proposals (id, user_id, job_description, job_details, proposal_text, status, style, user_feedback, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.JobDescription, string(details), p.ProposalText, p.Status, p.Style, p.UserFeedback, ts, ts)
	return err
}

// ListProposalsByUser returns the caller's proposals newest first.
func (r *Repo) ListProposalsByUser(ctx context.Context, userID int64) ([]models.Proposal, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT id, user_id, job_description, job_details, proposal_text, status, style, user_feedback, created, updated FROM proposals WHERE user_id = ? ORDER BY created DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}

	return out, rows.Err()
}

func (r *Repo) GetProposal(ctx context.Context, userID int64, id string) (*models.Proposal, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT id, user_id, job_description, job_details, proposal_text, status, style, user_feedback, created, updated FROM proposals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	return scanProposal(rows)
}

func (r *Repo) UpdateProposal(ctx context.Context, p *models.Proposal) error {
	if p == nil {
		return fmt.Errorf("proposal is nil")
	}

	_, err := r.conn.Exec(ctx,
		`UPDATE proposals SET proposal_text = ?, status = ?, user_feedback = ?, updated = ? WHERE id = ? AND user_id = ?`,
		p.ProposalText, p.Status, p.UserFeedback, now(), p.ID, p.UserID)
	return err
}

func (r *Repo) DeleteProposal(ctx context.Context, userID int64, id string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM proposals WHERE id = ? AND user_id = ?`, id, userID)
	return err
}

func scanProposal(rows *sql.Rows) (*models.Proposal, error) {
	var p models.Proposal
	var details string
	var feedback sql.NullString
	if err := rows.Scan(&p.ID, &p.UserID, &p.JobDescription, &details, &p.ProposalText, &p.Status, &p.Style, &feedback, &p.Created, &p.Updated); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(details), &p.JobDetails); err != nil {
		return nil, fmt.Errorf("unmarshal job details: %w", err)
	}
	if feedback.Valid {
		p.UserFeedback = &feedback.String
	}

	return &p, nil
}
