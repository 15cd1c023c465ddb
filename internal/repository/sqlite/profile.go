package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/avelar/pitch/internal/models"
)

func (r *Repo) CreateProfile(ctx context.Context, p *models.FreelancerProfile) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("profile is nil")
	}

	skills, links, err := marshalProfileJSON(p)
	if err != nil {
		return 0, err
	}

	ts := now()
	res, err := r.conn.Exec(ctx,
		`INSERT INTO freelancer_profiles (user_id, full_name, tagline, about, skills, portfolio, social_links, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.FullName, p.Tagline, p.About, skills, p.Portfolio, links, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *Repo) GetProfileByUserID(ctx context.Context, userID int64) (*models.FreelancerProfile, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, user_id, full_name, tagline, about, skills, portfolio, social_links, created, updated FROM freelancer_profiles WHERE user_id = ?`, userID)

	var p models.FreelancerProfile
	var skills, links string
	if err := row.Scan(&p.ID, &p.UserID, &p.FullName, &p.Tagline, &p.About, &skills, &p.Portfolio, &links, &p.Created, &p.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	if err := unmarshalProfileJSON(&p, skills, links); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *Repo) UpdateProfile(ctx context.Context, p *models.FreelancerProfile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}

	skills, links, err := marshalProfileJSON(p)
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(ctx,
		`UPDATE freelancer_profiles SET full_name = ?, tagline = ?, about = ?, skills = ?, portfolio = ?, social_links = ?, updated = ? WHERE id = ?`,
		p.FullName, p.Tagline, p.About, skills, p.Portfolio, links, now(), p.ID)
	return err
}

// ImportProfile applies an extracted profile in a single transaction: the
// profile row is upserted and every extracted experience and project row
// inserted. Any failure rolls the whole import back.
func (r *Repo) ImportProfile(ctx context.Context, userID int64, ex *models.ExtractedProfile) error {
	if ex == nil {
		return fmt.Errorf("extracted profile is nil")
	}

	skills, err := json.Marshal(ex.Skills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}
	links, err := json.Marshal(ex.SocialLinks)
	if err != nil {
		return fmt.Errorf("marshal social links: %w", err)
	}

	tx, err := r.conn.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin import tx: %w", err)
	}
	defer tx.Rollback()

	ts := now()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO freelancer_profiles (user_id, full_name, tagline, about, skills, portfolio, social_links, created, updated)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   full_name=excluded.full_name, tagline=excluded.tagline, about=excluded.about,
		   skills=excluded.skills, portfolio=excluded.portfolio, social_links=excluded.social_links, updated=excluded.updated`,
		userID, ex.FullName, ex.ProfessionalTitle, ex.About, string(skills), ex.PortfolioURI, string(links), ts, ts); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	for _, e := range ex.Experience {
		if e.Company == "" || e.Title == "" || e.StartDate == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO experiences (user_id, company, title, start_date, end_date, description, created) VALUES (?, ?, ?, ?, ?, '', ?)`,
			userID, e.Company, e.Title, e.StartDate, e.EndDate, ts); err != nil {
			return fmt.Errorf("insert experience: %w", err)
		}
	}

	for _, p := range ex.Projects {
		if p.Title == "" || p.Description == "" || p.Platform == "" || p.Status == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO projects (user_id, title, description, budget, platform, status, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, p.Title, p.Description, p.Budget, p.Platform, p.Status, ts, ts); err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
	}

	return tx.Commit()
}

func marshalProfileJSON(p *models.FreelancerProfile) (string, string, error) {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.SocialLinks == nil {
		p.SocialLinks = []models.SocialLink{}
	}

	skills, err := json.Marshal(p.Skills)
	if err != nil {
		return "", "", fmt.Errorf("marshal skills: %w", err)
	}
	links, err := json.Marshal(p.SocialLinks)
	if err != nil {
		return "", "", fmt.Errorf("marshal social links: %w", err)
	}

	return string(skills), string(links), nil
}

func unmarshalProfileJSON(p *models.FreelancerProfile, skills, links string) error {
	if err := json.Unmarshal([]byte(skills), &p.Skills); err != nil {
		return fmt.Errorf("unmarshal skills: %w", err)
	}
	if err := json.Unmarshal([]byte(links), &p.SocialLinks); err != nil {
		return fmt.Errorf("unmarshal social links: %w", err)
	}
	return nil
}
