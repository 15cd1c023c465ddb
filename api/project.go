package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/avelar/pitch/internal/models"
	"github.com/avelar/pitch/pkg/repository"
	"github.com/gorilla/mux"
)

// projectSummarizer is the slice of the AI engine the project handler needs.
type projectSummarizer interface {
	SummarizeProject(ctx context.Context, description string) (string, error)
}

type ProjectHandler struct {
	repo       repository.ProjectRepo
	summarizer projectSummarizer
}

func NewProjectHandler(r repository.ProjectRepo, s projectSummarizer) *ProjectHandler {
	return &ProjectHandler{repo: r, summarizer: s}
}

type projectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Budget      *int64  `json:"budget"`
	Platform    *string `json:"platform"`
	Status      *string `json:"status"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// summarize derives the portfolio summary for a description. Failures never
// block the write; the summary stays empty.
func (h *ProjectHandler) summarize(ctx context.Context, description string) string {
	summary, err := h.summarizer.SummarizeProject(ctx, description)
	if err != nil {
		logger.Warn("project summary failed", slog.String("error", err.Error()))
		return ""
	}
	return summary
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Title == nil || req.Description == nil || req.Platform == nil || req.Status == nil {
		writeError(w, "title, description, platform and status are required", http.StatusBadRequest)
		return
	}
	if !models.ValidProjectPlatform(*req.Platform) {
		writeError(w, "Invalid platform. Must be one of: "+models.ProjectPlatformChoices(), http.StatusBadRequest)
		return
	}
	if !models.ValidProjectStatus(*req.Status) {
		writeError(w, "Invalid status. Must be one of: "+models.ProjectStatusChoices(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	project := models.Project{
		UserID:      userID,
		Title:       *req.Title,
		Description: *req.Description,
		Summary:     h.summarize(ctx, *req.Description),
		Platform:    *req.Platform,
		Status:      *req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.Budget != nil {
		project.Budget = *req.Budget
	}

	id, err := h.repo.CreateProject(ctx, &project)
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	project.ID = id

	writeSuccess(w, map[string]any{
		"message": "Project created successfully",
		"data":    project,
	}, http.StatusCreated)
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	projects, err := h.repo.ListProjectsByUser(r.Context(), userID)
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}

	writeSuccess(w, map[string]any{"data": projects}, http.StatusOK)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, "Invalid project id", http.StatusBadRequest)
		return
	}

	project, err := h.repo.GetProject(r.Context(), userID, id)
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if project == nil {
		writeError(w, "Project not found", http.StatusNotFound)
		return
	}

	writeSuccess(w, map[string]any{"data": project}, http.StatusOK)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, "Invalid project id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	project, err := h.repo.GetProject(ctx, userID, id)
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if project == nil {
		writeError(w, "Project not found", http.StatusNotFound)
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Platform != nil && !models.ValidProjectPlatform(*req.Platform) {
		writeError(w, "Invalid platform. Must be one of: "+models.ProjectPlatformChoices(), http.StatusBadRequest)
		return
	}
	if req.Status != nil && !models.ValidProjectStatus(*req.Status) {
		writeError(w, "Invalid status. Must be one of: "+models.ProjectStatusChoices(), http.StatusBadRequest)
		return
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
		project.Summary = h.summarize(ctx, *req.Description)
	}
	if req.Budget != nil {
		project.Budget = *req.Budget
	}
	if req.Platform != nil {
		project.Platform = *req.Platform
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}

	if err := h.repo.UpdateProject(ctx, project); err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, map[string]any{
		"message": "Project updated successfully",
		"data":    project,
	}, http.StatusOK)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, "Invalid project id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	project, err := h.repo.GetProject(ctx, userID, id)
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if project == nil {
		writeError(w, "Project not found", http.StatusNotFound)
		return
	}

	if err := h.repo.DeleteProject(ctx, userID, id); err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, map[string]any{"message": "Project deleted successfully"}, http.StatusOK)
}
