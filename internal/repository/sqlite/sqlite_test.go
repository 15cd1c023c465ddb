package sqlite_test

import (
	"context"
	"testing"

	dbfs "github.com/avelar/pitch/db"
	dbpkg "github.com/avelar/pitch/internal/db"
	"github.com/avelar/pitch/internal/models"
	sqlite "github.com/avelar/pitch/internal/repository/sqlite"
)

func setupRepo(t *testing.T) *sqlite.Repo {
	t.Helper()
	ctx := context.Background()
	d, err := dbpkg.New(ctx, "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := dbpkg.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return sqlite.New(d)
}

func seedUser(t *testing.T, repo *sqlite.Repo, username, email string) int64 {
	t.Helper()
	id, err := repo.CreateUser(context.Background(), &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	return id
}

func TestUserCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	// nil user should error
	if _, err := repo.CreateUser(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil user")
	}

	// Non-existing lookups should return nil, nil
	got, err := repo.GetUserByID(ctx, 9999)
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil for missing id, got %#v, %v", got, err)
	}
	got, err = repo.GetUserByUsername(ctx, "ghost")
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil for missing username, got %#v, %v", got, err)
	}
	got, err = repo.GetUserByEmail(ctx, "ghost@example.com")
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil for missing email, got %#v, %v", got, err)
	}

	id := seedUser(t, repo, "alice", "alice@example.com")
	if id == 0 {
		t.Fatalf("expected non-zero id")
	}

	got, err = repo.GetUserByID(ctx, id)
	if err != nil {
		t.Fatalf("GetUserByID error: %v", err)
	}
	if got == nil || got.Username != "alice" || got.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %#v", got)
	}
	if got.Created == 0 {
		t.Fatalf("created timestamp not set")
	}

	byName, err := repo.GetUserByUsername(ctx, "alice")
	if err != nil || byName == nil || byName.ID != id {
		t.Fatalf("lookup by username failed: %#v, %v", byName, err)
	}
	byEmail, err := repo.GetUserByEmail(ctx, "alice@example.com")
	if err != nil || byEmail == nil || byEmail.ID != id {
		t.Fatalf("lookup by email failed: %#v, %v", byEmail, err)
	}

	// unique constraints
	if _, err := repo.CreateUser(ctx, &models.User{Username: "alice", Email: "other@example.com", PasswordHash: "h"}); err == nil {
		t.Fatalf("expected duplicate username to fail")
	}
	if _, err := repo.CreateUser(ctx, &models.User{Username: "other", Email: "alice@example.com", PasswordHash: "h"}); err == nil {
		t.Fatalf("expected duplicate email to fail")
	}
}

func TestProfileCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	userID := seedUser(t, repo, "bob", "bob@example.com")

	got, err := repo.GetProfileByUserID(ctx, userID)
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil before create, got %#v, %v", got, err)
	}

	profile := &models.FreelancerProfile{
		UserID:      userID,
		FullName:    "Bob Jones",
		Tagline:     "Full-stack developer",
		About:       "Ten years shipping web apps.",
		Skills:      []string{"Go", "React"},
		Portfolio:   "https://bob.dev",
		SocialLinks: []models.SocialLink{{Platform: "github", URL: "https://github.com/bob"}},
	}
	id, err := repo.CreateProfile(ctx, profile)
	if err != nil {
		t.Fatalf("CreateProfile error: %v", err)
	}

	got, err = repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("GetProfileByUserID error: %v", err)
	}
	if got == nil || got.ID != id || got.FullName != "Bob Jones" {
		t.Fatalf("unexpected profile: %#v", got)
	}
	if len(got.Skills) != 2 || got.Skills[1] != "React" {
		t.Fatalf("skills did not round-trip: %#v", got.Skills)
	}
	if len(got.SocialLinks) != 1 || got.SocialLinks[0].Platform != "github" {
		t.Fatalf("social links did not round-trip: %#v", got.SocialLinks)
	}

	got.Tagline = "Backend developer"
	got.Skills = append(got.Skills, "SQL")
	if err := repo.UpdateProfile(ctx, got); err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}

	updated, err := repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("GetProfileByUserID after update error: %v", err)
	}
	if updated.Tagline != "Backend developer" || len(updated.Skills) != 3 {
		t.Fatalf("update not persisted: %#v", updated)
	}
}

func TestImportProfile(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	userID := seedUser(t, repo, "carol", "carol@example.com")

	extracted := &models.ExtractedProfile{
		FullName:          "Carol Mills",
		ProfessionalTitle: "Data Engineer",
		About:             "Pipelines and warehouses.",
		Skills:            []string{"Python", "SQL"},
		PortfolioURI:      "https://carol.dev",
		Experience: []models.ExtractedExperience{
			{Company: "DataCo", Title: "Engineer", StartDate: "2021-02-01"},
			{Company: "", Title: "Incomplete", StartDate: "2020-01-01"}, // skipped
		},
		Projects: []models.ExtractedProject{
			{Title: "ETL", Description: "Nightly loads", Budget: 2000, Platform: "upwork", Status: "completed"},
			{Title: "NoStatus", Description: "x", Platform: "upwork", Status: ""}, // skipped
		},
	}

	if err := repo.ImportProfile(ctx, userID, extracted); err != nil {
		t.Fatalf("ImportProfile error: %v", err)
	}

	profile, err := repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("GetProfileByUserID error: %v", err)
	}
	if profile == nil || profile.FullName != "Carol Mills" || profile.Tagline != "Data Engineer" {
		t.Fatalf("unexpected profile: %#v", profile)
	}

	experiences, err := repo.ListExperiencesByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListExperiencesByUser error: %v", err)
	}
	if len(experiences) != 1 || experiences[0].Company != "DataCo" {
		t.Fatalf("incomplete experience rows must be skipped: %#v", experiences)
	}

	projects, err := repo.ListProjectsByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListProjectsByUser error: %v", err)
	}
	if len(projects) != 1 || projects[0].Title != "ETL" || projects[0].Budget != 2000 {
		t.Fatalf("incomplete project rows must be skipped: %#v", projects)
	}

	// A second import upserts the profile row rather than failing the
	// unique user_id constraint.
	extracted.FullName = "Carol M. Mills"
	if err := repo.ImportProfile(ctx, userID, extracted); err != nil {
		t.Fatalf("second ImportProfile error: %v", err)
	}
	profile, err = repo.GetProfileByUserID(ctx, userID)
	if err != nil || profile.FullName != "Carol M. Mills" {
		t.Fatalf("upsert not applied: %#v, %v", profile, err)
	}
}

func TestExperienceCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	userID := seedUser(t, repo, "dave", "dave@example.com")
	otherID := seedUser(t, repo, "erin", "erin@example.com")

	location := "Berlin"
	oldID, err := repo.CreateExperience(ctx, &models.Experience{
		UserID: userID, Company: "Old Corp", Title: "Junior", StartDate: "2017-05-01",
	})
	if err != nil {
		t.Fatalf("CreateExperience error: %v", err)
	}
	newID, err := repo.CreateExperience(ctx, &models.Experience{
		UserID: userID, Company: "New Corp", Title: "Senior", Location: &location, StartDate: "2022-09-01",
	})
	if err != nil {
		t.Fatalf("CreateExperience error: %v", err)
	}

	list, err := repo.ListExperiencesByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListExperiencesByUser error: %v", err)
	}
	if len(list) != 2 || list[0].ID != newID || list[1].ID != oldID {
		t.Fatalf("expected most recent first: %#v", list)
	}
	if list[0].Location == nil || *list[0].Location != "Berlin" {
		t.Fatalf("location did not round-trip: %#v", list[0])
	}

	// cross-user reads come back empty
	got, err := repo.GetExperience(ctx, otherID, newID)
	if err != nil || got != nil {
		t.Fatalf("cross-user get must be nil, nil: %#v, %v", got, err)
	}

	exp, err := repo.GetExperience(ctx, userID, newID)
	if err != nil || exp == nil {
		t.Fatalf("GetExperience error: %#v, %v", exp, err)
	}
	end := "2024-12-31"
	exp.Title = "Staff"
	exp.EndDate = &end
	if err := repo.UpdateExperience(ctx, exp); err != nil {
		t.Fatalf("UpdateExperience error: %v", err)
	}
	exp, _ = repo.GetExperience(ctx, userID, newID)
	if exp.Title != "Staff" || exp.EndDate == nil || *exp.EndDate != end {
		t.Fatalf("update not persisted: %#v", exp)
	}

	if err := repo.DeleteExperience(ctx, userID, oldID); err != nil {
		t.Fatalf("DeleteExperience error: %v", err)
	}
	list, _ = repo.ListExperiencesByUser(ctx, userID)
	if len(list) != 1 {
		t.Fatalf("expected one row after delete, got %d", len(list))
	}
}

func TestProjectCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	userID := seedUser(t, repo, "frank", "frank@example.com")

	start := "2023-01-10"
	id, err := repo.CreateProject(ctx, &models.Project{
		UserID:      userID,
		Title:       "Storefront",
		Description: "E-commerce rebuild",
		Summary:     "Rebuilt a storefront.",
		Budget:      4500,
		Platform:    "upwork",
		Status:      "in_progress",
		StartDate:   &start,
	})
	if err != nil {
		t.Fatalf("CreateProject error: %v", err)
	}

	got, err := repo.GetProject(ctx, userID, id)
	if err != nil || got == nil {
		t.Fatalf("GetProject error: %#v, %v", got, err)
	}
	if got.Budget != 4500 || got.StartDate == nil || *got.StartDate != start {
		t.Fatalf("unexpected project: %#v", got)
	}
	if got.EndDate != nil {
		t.Fatalf("end date should be nil: %#v", got)
	}

	end := "2023-08-01"
	got.Status = "completed"
	got.EndDate = &end
	if err := repo.UpdateProject(ctx, got); err != nil {
		t.Fatalf("UpdateProject error: %v", err)
	}
	got, _ = repo.GetProject(ctx, userID, id)
	if got.Status != "completed" || got.EndDate == nil {
		t.Fatalf("update not persisted: %#v", got)
	}

	if err := repo.DeleteProject(ctx, userID, id); err != nil {
		t.Fatalf("DeleteProject error: %v", err)
	}
	got, err = repo.GetProject(ctx, userID, id)
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil after delete: %#v, %v", got, err)
	}
}

func TestProposalCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	userID := seedUser(t, repo, "grace", "grace@example.com")
	otherID := seedUser(t, repo, "heidi", "heidi@example.com")

	// id is required
	if err := repo.CreateProposal(ctx, &models.Proposal{UserID: userID}); err == nil {
		t.Fatalf("expected error for empty proposal id")
	}

	const propID = "0b1e6a34-9c0f-4f6e-8d2a-1f4b5c6d7e8f"
	p := &models.Proposal{
		ID:             propID,
		UserID:         userID,
		JobDescription: "Build an API",
		JobDetails:     models.JobDetails{Platform: "upwork", ClientName: "Acme"},
		ProposalText:   "I can build this API.",
		Status:         "generated",
		Style:          "default",
	}
	if err := repo.CreateProposal(ctx, p); err != nil {
		t.Fatalf("CreateProposal error: %v", err)
	}
	if p.Created == 0 {
		t.Fatalf("created timestamp not set on the model")
	}

	got, err := repo.GetProposal(ctx, userID, propID)
	if err != nil || got == nil {
		t.Fatalf("GetProposal error: %#v, %v", got, err)
	}
	if got.JobDetails.ClientName != "Acme" {
		t.Fatalf("job details did not round-trip: %#v", got.JobDetails)
	}
	if got.UserFeedback != nil {
		t.Fatalf("feedback should be nil: %#v", got)
	}

	// another user never sees the row
	got, err = repo.GetProposal(ctx, otherID, propID)
	if err != nil || got != nil {
		t.Fatalf("cross-user get must be nil, nil: %#v, %v", got, err)
	}

	feedback := "Client replied quickly"
	p.Status = "accepted"
	p.UserFeedback = &feedback
	if err := repo.UpdateProposal(ctx, p); err != nil {
		t.Fatalf("UpdateProposal error: %v", err)
	}
	got, _ = repo.GetProposal(ctx, userID, propID)
	if got.Status != "accepted" || got.UserFeedback == nil || *got.UserFeedback != feedback {
		t.Fatalf("update not persisted: %#v", got)
	}

	list, err := repo.ListProposalsByUser(ctx, userID)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListProposalsByUser error: %#v, %v", list, err)
	}

	if err := repo.DeleteProposal(ctx, userID, propID); err != nil {
		t.Fatalf("DeleteProposal error: %v", err)
	}
	list, _ = repo.ListProposalsByUser(ctx, userID)
	if len(list) != 0 {
		t.Fatalf("expected no rows after delete, got %d", len(list))
	}
}

func TestStats(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	userID := seedUser(t, repo, "ivan", "ivan@example.com")

	ids := []string{
		"11111111-1111-1111-1111-111111111111",
		"22222222-2222-2222-2222-222222222222",
		"33333333-3333-3333-3333-333333333333",
	}
	statuses := []string{"accepted", "generated", "accepted"}
	for i, id := range ids {
		if err := repo.CreateProposal(ctx, &models.Proposal{
			ID: id, UserID: userID, JobDescription: "job", ProposalText: "text",
			Status: statuses[i], Style: "default",
		}); err != nil {
			t.Fatalf("CreateProposal error: %v", err)
		}
	}

	total, err := repo.CountProposals(ctx, userID, 0)
	if err != nil || total != 3 {
		t.Fatalf("CountProposals: %d, %v", total, err)
	}
	accepted, err := repo.CountProposalsByStatus(ctx, userID, "accepted", 0)
	if err != nil || accepted != 2 {
		t.Fatalf("CountProposalsByStatus: %d, %v", accepted, err)
	}

	endRecent := "2026-08-15"
	endOld := "2024-01-01"
	projects := []models.Project{
		{UserID: userID, Title: "A", Description: "a", Platform: "upwork", Status: "completed", Budget: 1000, EndDate: &endRecent},
		{UserID: userID, Title: "B", Description: "b", Platform: "upwork", Status: "completed", Budget: 500, EndDate: &endOld},
		{UserID: userID, Title: "C", Description: "c", Platform: "upwork", Status: "pending", Budget: 9000},
	}
	for i := range projects {
		if _, err := repo.CreateProject(ctx, &projects[i]); err != nil {
			t.Fatalf("CreateProject error: %v", err)
		}
	}

	sum, err := repo.SumCompletedProjectBudget(ctx, userID, "")
	if err != nil || sum != 1500 {
		t.Fatalf("SumCompletedProjectBudget all-time: %d, %v", sum, err)
	}
	sum, err = repo.SumCompletedProjectBudget(ctx, userID, "2026-01-01")
	if err != nil || sum != 1000 {
		t.Fatalf("SumCompletedProjectBudget windowed: %d, %v", sum, err)
	}
}
