package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/avelar/pitch/internal/models"
	"github.com/avelar/pitch/pkg/repository"
	"github.com/gorilla/mux"
)

type ExperienceHandler struct {
	repo repository.ExperienceRepo
}

func NewExperienceHandler(r repository.ExperienceRepo) *ExperienceHandler {
	return &ExperienceHandler{repo: r}
}

type experienceRequest struct {
	Company     *string `json:"company"`
	Title       *string `json:"title"`
	Location    *string `json:"location"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description *string `json:"description"`
}

func (h *ExperienceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req experienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Company == nil || req.Title == nil || req.StartDate == nil {
		writeError(w, "company, title and start_date are required", http.StatusBadRequest)
		return
	}

	exp := models.Experience{
		UserID:    userID,
		Company:   *req.Company,
		Title:     *req.Title,
		Location:  req.Location,
		StartDate: *req.StartDate,
		EndDate:   req.EndDate,
	}
	if req.Description != nil {
		exp.Description = *req.Description
	}

	id, err := h.repo.CreateExperience(r.Context(), &exp)
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	exp.ID = id

	writeSuccess(w, map[string]any{
		"message": "Experience created successfully",
		"data":    exp,
	}, http.StatusCreated)
}

func (h *ExperienceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	experiences, err := h.repo.ListExperiencesByUser(r.Context(), userID)
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if experiences == nil {
		experiences = []models.Experience{}
	}

	writeSuccess(w, map[string]any{
		"message": "Experiences retrieved successfully",
		"data":    experiences,
	}, http.StatusOK)
}

func (h *ExperienceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, "Invalid experience id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	exp, err := h.repo.GetExperience(ctx, userID, id)
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if exp == nil {
		writeError(w, "Experience not found", http.StatusNotFound)
		return
	}

	var req experienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Company != nil {
		exp.Company = *req.Company
	}
	if req.Title != nil {
		exp.Title = *req.Title
	}
	if req.Location != nil {
		exp.Location = req.Location
	}
	if req.StartDate != nil {
		exp.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		exp.EndDate = req.EndDate
	}
	if req.Description != nil {
		exp.Description = *req.Description
	}

	if err := h.repo.UpdateExperience(ctx, exp); err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, map[string]any{
		"message": "Experience updated successfully",
		"data":    exp,
	}, http.StatusOK)
}

func (h *ExperienceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, "Invalid experience id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	exp, err := h.repo.GetExperience(ctx, userID, id)
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if exp == nil {
		writeError(w, "Experience not found", http.StatusNotFound)
		return
	}

	if err := h.repo.DeleteExperience(ctx, userID, id); err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, map[string]any{
		"message": "Experience deleted successfully",
	}, http.StatusOK)
}
