package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/avelar/pitch/internal/models"
	"github.com/avelar/pitch/pkg/repository"
)

// profileExtractor is the slice of the AI engine the profile handler needs.
type profileExtractor interface {
	ExtractProfile(ctx context.Context, text string) (*models.ExtractedProfile, error)
}

type ProfileHandler struct {
	profileRepo    repository.ProfileRepo
	experienceRepo repository.ExperienceRepo
	projectRepo    repository.ProjectRepo
	extractor      profileExtractor
}

func NewProfileHandler(pr repository.ProfileRepo, er repository.ExperienceRepo, pjr repository.ProjectRepo, ex profileExtractor) *ProfileHandler {
	return &ProfileHandler{profileRepo: pr, experienceRepo: er, projectRepo: pjr, extractor: ex}
}

type extractProfileRequest struct {
	Text string `json:"text"`
}

// CreateProfile runs the LLM extraction over free-form resume text and
// imports the result in a single transaction.
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req extractProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		writeError(w, "Profile text is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	extracted, err := h.extractor.ExtractProfile(ctx, req.Text)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	if err := h.profileRepo.ImportProfile(ctx, userID, extracted); err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, map[string]any{
		"message": "Freelancer profile created/updated successfully",
		"data":    extracted,
	}, http.StatusOK)
}

// GetProfile returns the profile with its experiences and projects, creating
// an empty profile row on first read.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()

	profile, err := h.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if profile == nil {
		profile = &models.FreelancerProfile{
			UserID:      userID,
			Skills:      []string{},
			SocialLinks: []models.SocialLink{},
		}
		id, cerr := h.profileRepo.CreateProfile(ctx, profile)
		if cerr != nil {
			writeError(w, "An error occurred: "+cerr.Error(), http.StatusInternalServerError)
			return
		}
		profile.ID = id
	}

	experiences, err := h.experienceRepo.ListExperiencesByUser(ctx, userID)
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	projects, err := h.projectRepo.ListProjectsByUser(ctx, userID)
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if experiences == nil {
		experiences = []models.Experience{}
	}
	if projects == nil {
		projects = []models.Project{}
	}

	writeSuccess(w, map[string]any{
		"data": map[string]any{
			"freelance_profile": profile,
			"experience":        experiences,
			"projects":          projects,
		},
	}, http.StatusOK)
}

type updateProfileRequest struct {
	FullName    *string             `json:"full_name"`
	Tagline     *string             `json:"tagline"`
	About       *string             `json:"about"`
	Skills      []string            `json:"skills"`
	Portfolio   *string             `json:"portfolio"`
	SocialLinks []models.SocialLink `json:"social_links"`
}

// UpdateProfile applies a partial update; only the fields present in the
// request change.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	profile, err := h.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if profile == nil {
		writeError(w, "Freelancer profile not found. Please create a profile first.", http.StatusNotFound)
		return
	}

	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.Tagline != nil {
		profile.Tagline = *req.Tagline
	}
	if req.About != nil {
		profile.About = *req.About
	}
	if req.Skills != nil {
		profile.Skills = req.Skills
	}
	if req.Portfolio != nil {
		profile.Portfolio = *req.Portfolio
	}
	if req.SocialLinks != nil {
		profile.SocialLinks = req.SocialLinks
	}

	if err := h.profileRepo.UpdateProfile(ctx, profile); err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, map[string]any{
		"message": "Freelancer profile updated successfully",
		"data":    profile,
	}, http.StatusOK)
}
