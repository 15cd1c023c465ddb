package sqlite

import (
	"time"

	"github.com/avelar/pitch/internal/db"
	"github.com/avelar/pitch/pkg/repository"
)

// Repo implements the repository interfaces using the internal DB wrapper.
type Repo struct {
	conn *db.DB
}

// Ensure Repo implements the public interfaces.
var _ repository.UserRepo = (*Repo)(nil)
var _ repository.ProfileRepo = (*Repo)(nil)
var _ repository.ExperienceRepo = (*Repo)(nil)
var _ repository.ProjectRepo = (*Repo)(nil)
var _ repository.ProposalRepo = (*Repo)(nil)
var _ repository.StatsRepo = (*Repo)(nil)

func New(conn *db.DB) *Repo {
	return &Repo{conn: conn}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}
