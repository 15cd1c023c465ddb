package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/avelar/pitch/pkg/repository"
)

// Formatter assembles a freelancer's stored profile, projects, and work
// experience into the labelled text block the prompts embed.
type Formatter struct {
	profiles    repository.ProfileRepo
	projects    repository.ProjectRepo
	experiences repository.ExperienceRepo
}

func NewFormatter(profiles repository.ProfileRepo, projects repository.ProjectRepo, experiences repository.ExperienceRepo) *Formatter {
	return &Formatter{profiles: profiles, projects: projects, experiences: experiences}
}

// FreelancerData returns the formatted block for the given user, or
// ErrProfileNotFound when no profile row exists yet.
func (f *Formatter) FreelancerData(ctx context.Context, userID int64) (string, error) {
	profile, err := f.profiles.GetProfileByUserID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get profile: %w", err)
	}
	if profile == nil {
		return "", ErrProfileNotFound
	}

	projects, err := f.projects.ListProjectsByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("list projects: %w", err)
	}
	experiences, err := f.experiences.ListExperiencesByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("list experiences: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# FREELANCER PROFILE\n")
	fmt.Fprintf(&sb, "Name: %s\n", profile.FullName)
	fmt.Fprintf(&sb, "TagLine: %s\n", profile.Tagline)
	fmt.Fprintf(&sb, "Portfolio: %s\n", profile.Portfolio)
	fmt.Fprintf(&sb, "About: %s\n", profile.About)
	fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(profile.Skills, ", "))

	if len(projects) > 0 {
		sb.WriteString("\n# PROJECTS\n")
		for i, p := range projects {
			fmt.Fprintf(&sb, "Project %d:\n", i+1)
			fmt.Fprintf(&sb, "- Title: %s\n", p.Title)
			fmt.Fprintf(&sb, "- Description: %s\n", p.Description)
			fmt.Fprintf(&sb, "- Budget: %d\n", p.Budget)
			fmt.Fprintf(&sb, "- Platform: %s\n", p.Platform)
			fmt.Fprintf(&sb, "- Status: %s\n", p.Status)
			fmt.Fprintf(&sb, "- Timeline: %s to %s\n", deref(p.StartDate), deref(p.EndDate))
		}
	}

	if len(experiences) > 0 {
		sb.WriteString("\n# WORK EXPERIENCE\n")
		for i, e := range experiences {
			fmt.Fprintf(&sb, "Experience %d:\n", i+1)
			fmt.Fprintf(&sb, "- Company: %s\n", e.Company)
			fmt.Fprintf(&sb, "- Title: %s\n", e.Title)
			fmt.Fprintf(&sb, "- Location: %s\n", deref(e.Location))
			fmt.Fprintf(&sb, "- Period: %s to %s\n", e.StartDate, deref(e.EndDate))
			fmt.Fprintf(&sb, "- Description: %s\n", e.Description)
		}
	}

	return sb.String(), nil
}

// HasProfile reports whether the user already submitted a profile.
func (f *Formatter) HasProfile(ctx context.Context, userID int64) (bool, error) {
	profile, err := f.profiles.GetProfileByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	return profile != nil, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
