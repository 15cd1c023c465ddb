package mock

import (
	"context"
	"sort"

	"github.com/avelar/pitch/internal/models"
)

// In-memory repository fakes for handler and engine tests. Each fake exposes
// its stored rows plus error-injection fields so tests can force failures.
type Mocks struct {
	Users       *UserRepo
	Profiles    *ProfileRepo
	Experiences *ExperienceRepo
	Projects    *ProjectRepo
	Proposals   *ProposalRepo
	Stats       *StatsRepo
}

func NewMocks() *Mocks {
	experiences := &ExperienceRepo{}
	projects := &ProjectRepo{}
	proposals := &ProposalRepo{}
	return &Mocks{
		Users:       &UserRepo{},
		Profiles:    &ProfileRepo{Experiences: experiences, Projects: projects},
		Experiences: experiences,
		Projects:    projects,
		Proposals:   proposals,
		Stats:       &StatsRepo{Proposals: proposals, Projects: projects},
	}
}

type UserRepo struct {
	Stored    []*models.User
	nextID    int64
	CreateErr error
	GetErr    error
}

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	stored := *u
	stored.ID = m.nextID
	m.Stored = append(m.Stored, &stored)
	return stored.ID, nil
}

func (m *UserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, u := range m.Stored {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, u := range m.Stored {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, u := range m.Stored {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type ProfileRepo struct {
	Stored      map[int64]*models.FreelancerProfile
	Experiences *ExperienceRepo
	Projects    *ProjectRepo
	nextID      int64
	CreateErr   error
	GetErr      error
	UpdateErr   error
	ImportErr   error
}

func (m *ProfileRepo) CreateProfile(ctx context.Context, p *models.FreelancerProfile) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	if m.Stored == nil {
		m.Stored = make(map[int64]*models.FreelancerProfile)
	}
	m.nextID++
	stored := *p
	stored.ID = m.nextID
	m.Stored[p.UserID] = &stored
	return stored.ID, nil
}

func (m *ProfileRepo) GetProfileByUserID(ctx context.Context, userID int64) (*models.FreelancerProfile, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	p, ok := m.Stored[userID]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (m *ProfileRepo) UpdateProfile(ctx context.Context, p *models.FreelancerProfile) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if m.Stored == nil {
		m.Stored = make(map[int64]*models.FreelancerProfile)
	}
	stored := *p
	m.Stored[p.UserID] = &stored
	return nil
}

func (m *ProfileRepo) ImportProfile(ctx context.Context, userID int64, ex *models.ExtractedProfile) error {
	if m.ImportErr != nil {
		return m.ImportErr
	}
	if m.Stored == nil {
		m.Stored = make(map[int64]*models.FreelancerProfile)
	}
	m.nextID++
	m.Stored[userID] = &models.FreelancerProfile{
		ID:          m.nextID,
		UserID:      userID,
		FullName:    ex.FullName,
		Tagline:     ex.ProfessionalTitle,
		About:       ex.About,
		Skills:      ex.Skills,
		Portfolio:   ex.PortfolioURI,
		SocialLinks: ex.SocialLinks,
	}
	for _, e := range ex.Experience {
		_, _ = m.Experiences.CreateExperience(ctx, &models.Experience{
			UserID:    userID,
			Company:   e.Company,
			Title:     e.Title,
			StartDate: e.StartDate,
			EndDate:   e.EndDate,
		})
	}
	for _, p := range ex.Projects {
		_, _ = m.Projects.CreateProject(ctx, &models.Project{
			UserID:      userID,
			Title:       p.Title,
			Description: p.Description,
			Budget:      p.Budget,
			Platform:    p.Platform,
			Status:      p.Status,
		})
	}
	return nil
}

type ExperienceRepo struct {
	Stored    []*models.Experience
	nextID    int64
	CreateErr error
	ListErr   error
	GetErr    error
	UpdateErr error
	DeleteErr error
}

func (m *ExperienceRepo) CreateExperience(ctx context.Context, e *models.Experience) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	stored := *e
	stored.ID = m.nextID
	m.Stored = append(m.Stored, &stored)
	return stored.ID, nil
}

func (m *ExperienceRepo) ListExperiencesByUser(ctx context.Context, userID int64) ([]models.Experience, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []models.Experience
	for _, e := range m.Stored {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate > out[j].StartDate })
	return out, nil
}

func (m *ExperienceRepo) GetExperience(ctx context.Context, userID, id int64) (*models.Experience, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, e := range m.Stored {
		if e.ID == id && e.UserID == userID {
			return e, nil
		}
	}
	return nil, nil
}

func (m *ExperienceRepo) UpdateExperience(ctx context.Context, e *models.Experience) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for i, old := range m.Stored {
		if old.ID == e.ID && old.UserID == e.UserID {
			stored := *e
			m.Stored[i] = &stored
			return nil
		}
	}
	return nil
}

func (m *ExperienceRepo) DeleteExperience(ctx context.Context, userID, id int64) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i, e := range m.Stored {
		if e.ID == id && e.UserID == userID {
			m.Stored = append(m.Stored[:i], m.Stored[i+1:]...)
			return nil
		}
	}
	return nil
}

type ProjectRepo struct {
	Stored    []*models.Project
	nextID    int64
	CreateErr error
	ListErr   error
	GetErr    error
	UpdateErr error
	DeleteErr error
}

func (m *ProjectRepo) CreateProject(ctx context.Context, p *models.Project) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	stored := *p
	stored.ID = m.nextID
	m.Stored = append(m.Stored, &stored)
	return stored.ID, nil
}

func (m *ProjectRepo) ListProjectsByUser(ctx context.Context, userID int64) ([]models.Project, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []models.Project
	for _, p := range m.Stored {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *ProjectRepo) GetProject(ctx context.Context, userID, id int64) (*models.Project, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, p := range m.Stored {
		if p.ID == id && p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (m *ProjectRepo) UpdateProject(ctx context.Context, p *models.Project) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for i, old := range m.Stored {
		if old.ID == p.ID && old.UserID == p.UserID {
			stored := *p
			m.Stored[i] = &stored
			return nil
		}
	}
	return nil
}

func (m *ProjectRepo) DeleteProject(ctx context.Context, userID, id int64) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i, p := range m.Stored {
		if p.ID == id && p.UserID == userID {
			m.Stored = append(m.Stored[:i], m.Stored[i+1:]...)
			return nil
		}
	}
	return nil
}

type ProposalRepo struct {
	Stored    []*models.Proposal
	CreateErr error
	ListErr   error
	GetErr    error
	UpdateErr error
	DeleteErr error
}

func (m *ProposalRepo) CreateProposal(ctx context.Context, p *models.Proposal) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	stored := *p
	m.Stored = append(m.Stored, &stored)
	return nil
}

func (m *ProposalRepo) ListProposalsByUser(ctx context.Context, userID int64) ([]models.Proposal, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []models.Proposal
	for _, p := range m.Stored {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Created > out[j].Created })
	return out, nil
}

func (m *ProposalRepo) GetProposal(ctx context.Context, userID int64, id string) (*models.Proposal, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, p := range m.Stored {
		if p.ID == id && p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (m *ProposalRepo) UpdateProposal(ctx context.Context, p *models.Proposal) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for i, old := range m.Stored {
		if old.ID == p.ID && old.UserID == p.UserID {
			stored := *p
			m.Stored[i] = &stored
			return nil
		}
	}
	return nil
}

func (m *ProposalRepo) DeleteProposal(ctx context.Context, userID int64, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i, p := range m.Stored {
		if p.ID == id && p.UserID == userID {
			m.Stored = append(m.Stored[:i], m.Stored[i+1:]...)
			return nil
		}
	}
	return nil
}

// StatsRepo derives aggregates from the proposal and project fakes so
// dashboard tests exercise the same data the other fakes hold.
type StatsRepo struct {
	Proposals *ProposalRepo
	Projects  *ProjectRepo
	CountErr  error
	SumErr    error
}

func (m *StatsRepo) CountProposals(ctx context.Context, userID, since int64) (int64, error) {
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	var n int64
	for _, p := range m.Proposals.Stored {
		if p.UserID == userID && p.Created >= since {
			n++
		}
	}
	return n, nil
}

func (m *StatsRepo) CountProposalsByStatus(ctx context.Context, userID int64, status string, since int64) (int64, error) {
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	var n int64
	for _, p := range m.Proposals.Stored {
		if p.UserID == userID && p.Status == status && p.Created >= since {
			n++
		}
	}
	return n, nil
}

func (m *StatsRepo) SumCompletedProjectBudget(ctx context.Context, userID int64, sinceDate string) (int64, error) {
	if m.SumErr != nil {
		return 0, m.SumErr
	}
	var sum int64
	for _, p := range m.Projects.Stored {
		if p.UserID != userID || p.Status != "completed" {
			continue
		}
		if sinceDate != "" && (p.EndDate == nil || *p.EndDate < sinceDate) {
			continue
		}
		sum += p.Budget
	}
	return sum, nil
}
