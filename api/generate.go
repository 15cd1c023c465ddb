package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/avelar/pitch/internal/ai"
	"github.com/avelar/pitch/internal/models"
	"github.com/avelar/pitch/pkg/repository"
	"github.com/google/uuid"
)

// generationEngine is the slice of the AI engine the generation endpoints
// need. Tests substitute a scripted fake.
type generationEngine interface {
	AnalyzePainPoints(ctx context.Context, jobDescription string) ([]string, error)
	DraftProposal(ctx context.Context, userID int64, jobDescription string, painPoints any, strategy string) (string, error)
	Humanize(ctx context.Context, proposalText string) string
	AnalyzeJobMatch(ctx context.Context, userID int64, jobDescription string) (*ai.JobMatch, error)
	GenerateProposal(ctx context.Context, userID int64, jobDescription string) (string, error)
}

type GenerateHandler struct {
	engine generationEngine
	repo   repository.ProposalRepo
}

func NewGenerateHandler(engine generationEngine, repo repository.ProposalRepo) *GenerateHandler {
	return &GenerateHandler{engine: engine, repo: repo}
}

type painPointsRequest struct {
	JobDescription string `json:"job_description"`
}

// PainPoints extracts the three client pain points from a job description.
func (h *GenerateHandler) PainPoints(w http.ResponseWriter, r *http.Request) {
	var req painPointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.JobDescription == "" {
		writeError(w, "Job description is required", http.StatusBadRequest)
		return
	}

	painPoints, err := h.engine.AnalyzePainPoints(r.Context(), req.JobDescription)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeSuccess(w, map[string]any{
		"analysis": map[string]any{"pain_points": painPoints},
	}, http.StatusOK)
}

type targetedProposalRequest struct {
	JobDescription string `json:"job_description"`
	PainPoints     any    `json:"pain_points"`
	Style          string `json:"style"`
	Strategy       string `json:"strategy"`
}

// TargetedProposal drafts a proposal aimed at previously extracted pain
// points. The draft is returned without being persisted; the humanize step
// stores it.
func (h *GenerateHandler) TargetedProposal(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req targetedProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.JobDescription == "" {
		writeError(w, "Job description is required", http.StatusBadRequest)
		return
	}
	if req.PainPoints == nil {
		writeError(w, "Pain points analysis is required", http.StatusBadRequest)
		return
	}
	if req.Style != "" && !models.ValidStyle(req.Style) {
		writeError(w, "Invalid style. Must be one of: "+models.StyleChoices(), http.StatusBadRequest)
		return
	}

	proposalText, err := h.engine.DraftProposal(r.Context(), userID, req.JobDescription, req.PainPoints, req.Strategy)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeSuccess(w, map[string]any{"proposal": proposalText}, http.StatusOK)
}

type humanizeRequest struct {
	ProposalText   string            `json:"proposal_text"`
	JobDescription string            `json:"job_description"`
	JobDetails     models.JobDetails `json:"job_details"`
	Style          string            `json:"style"`
}

// Humanize rewrites a drafted proposal to read naturally and persists the
// proposal. The stored row keeps the pre-humanize draft; the response carries
// the humanized text together with the new proposal id.
func (h *GenerateHandler) Humanize(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req humanizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.ProposalText == "" {
		writeError(w, "Proposal text is required", http.StatusBadRequest)
		return
	}
	style := req.Style
	if style == "" {
		style = models.StyleDefault
	}
	if !models.ValidStyle(style) {
		writeError(w, "Invalid style. Must be one of: "+models.StyleChoices(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	humanized := h.engine.Humanize(ctx, req.ProposalText)

	proposal := models.Proposal{
		ID:             uuid.NewString(),
		UserID:         userID,
		JobDescription: req.JobDescription,
		JobDetails:     req.JobDetails,
		ProposalText:   req.ProposalText,
		Status:         models.ProposalStatusGenerated,
		Style:          style,
	}
	if err := h.repo.CreateProposal(ctx, &proposal); err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, map[string]any{
		"proposal":    humanized,
		"proposal_id": proposal.ID,
	}, http.StatusOK)
}

type jobMatchRequest struct {
	JobDescription string `json:"job_description"`
}

// JobMatch scores how well the caller's profile fits a job description.
func (h *GenerateHandler) JobMatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req jobMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.JobDescription == "" {
		writeError(w, "Job description is required", http.StatusBadRequest)
		return
	}

	match, err := h.engine.AnalyzeJobMatch(r.Context(), userID, req.JobDescription)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeSuccess(w, map[string]any{"analysis": match}, http.StatusOK)
}

type createProposalRequest struct {
	JobDescription string            `json:"job_description"`
	JobDetails     models.JobDetails `json:"job_details"`
	Style          string            `json:"style"`
}

// Create is the single-call generation path: one LLM call with the full
// prompt, no pain point chain, persisted immediately.
func (h *GenerateHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.JobDescription == "" {
		writeError(w, "Job description is required", http.StatusBadRequest)
		return
	}
	style := req.Style
	if style == "" {
		style = models.StyleDefault
	}
	if !models.ValidStyle(style) {
		writeError(w, "Invalid style. Must be one of: "+models.StyleChoices(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	proposalText, err := h.engine.GenerateProposal(ctx, userID, req.JobDescription)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	proposal := models.Proposal{
		ID:             uuid.NewString(),
		UserID:         userID,
		JobDescription: req.JobDescription,
		JobDetails:     req.JobDetails,
		ProposalText:   proposalText,
		Status:         models.ProposalStatusGenerated,
		Style:          style,
	}
	if err := h.repo.CreateProposal(ctx, &proposal); err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, map[string]any{
		"message":  "Proposal generated successfully",
		"proposal": proposal,
	}, http.StatusCreated)
}
