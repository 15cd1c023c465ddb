package repository

import (
	"context"

	"github.com/avelar/pitch/internal/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Every read and write is scoped to the owning user: a lookup for a row owned
// by a different user returns (nil, nil), which the API layer reports as
// not-found. Ownership is never reported as forbidden.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type ProfileRepo interface {
	CreateProfile(ctx context.Context, p *models.FreelancerProfile) (int64, error)
	GetProfileByUserID(ctx context.Context, userID int64) (*models.FreelancerProfile, error)
	UpdateProfile(ctx context.Context, p *models.FreelancerProfile) error
	// ImportProfile upserts the profile and inserts the extracted experience
	// and project rows in one transaction. Partial application is disallowed.
	ImportProfile(ctx context.Context, userID int64, ex *models.ExtractedProfile) error
}

type ExperienceRepo interface {
	CreateExperience(ctx context.Context, e *models.Experience) (int64, error)
	ListExperiencesByUser(ctx context.Context, userID int64) ([]models.Experience, error)
	GetExperience(ctx context.Context, userID, id int64) (*models.Experience, error)
	UpdateExperience(ctx context.Context, e *models.Experience) error
	DeleteExperience(ctx context.Context, userID, id int64) error
}

type ProjectRepo interface {
	CreateProject(ctx context.Context, p *models.Project) (int64, error)
	ListProjectsByUser(ctx context.Context, userID int64) ([]models.Project, error)
	GetProject(ctx context.Context, userID, id int64) (*models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, userID, id int64) error
}

type ProposalRepo interface {
	CreateProposal(ctx context.Context, p *models.Proposal) error
	ListProposalsByUser(ctx context.Context, userID int64) ([]models.Proposal, error)
	GetProposal(ctx context.Context, userID int64, id string) (*models.Proposal, error)
	UpdateProposal(ctx context.Context, p *models.Proposal) error
	DeleteProposal(ctx context.Context, userID int64, id string) error
}

// StatsRepo exposes the aggregates behind the dashboard. A zero `since`
// means no time filter.
type StatsRepo interface {
	CountProposals(ctx context.Context, userID, since int64) (int64, error)
	CountProposalsByStatus(ctx context.Context, userID int64, status string, since int64) (int64, error)
	SumCompletedProjectBudget(ctx context.Context, userID int64, sinceDate string) (int64, error)
}
