package api

import (
	"encoding/json"
	"net/http"

	"github.com/avelar/pitch/internal/models"
	"github.com/avelar/pitch/pkg/repository"
	"github.com/gorilla/mux"
)

type ProposalHandler struct {
	repo repository.ProposalRepo
}

func NewProposalHandler(r repository.ProposalRepo) *ProposalHandler {
	return &ProposalHandler{repo: r}
}

func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	proposals, err := h.repo.ListProposalsByUser(r.Context(), userID)
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if proposals == nil {
		proposals = []models.Proposal{}
	}

	writeSuccess(w, map[string]any{
		"count":     len(proposals),
		"proposals": proposals,
	}, http.StatusOK)
}

func (h *ProposalHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	proposal, err := h.repo.GetProposal(r.Context(), userID, id)
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if proposal == nil {
		writeError(w, "Proposal not found", http.StatusNotFound)
		return
	}

	writeSuccess(w, map[string]any{"proposal": proposal}, http.StatusOK)
}

type updateProposalRequest struct {
	Status       *string `json:"status"`
	ProposalText *string `json:"proposal_text"`
	UserFeedback *string `json:"user_feedback"`
}

func (h *ProposalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()

	id := mux.Vars(r)["id"]
	proposal, err := h.repo.GetProposal(ctx, userID, id)
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if proposal == nil {
		writeError(w, "Proposal not found", http.StatusNotFound)
		return
	}

	var req updateProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Status != nil {
		if !models.ValidProposalStatus(*req.Status) {
			writeError(w, "Invalid status value. Must be one of: "+models.ProposalStatusChoices(), http.StatusBadRequest)
			return
		}
		proposal.Status = *req.Status
	}
	if req.ProposalText != nil {
		proposal.ProposalText = *req.ProposalText
	}
	if req.UserFeedback != nil {
		proposal.UserFeedback = req.UserFeedback
	}

	if err := h.repo.UpdateProposal(ctx, proposal); err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, map[string]any{
		"message":  "Proposal updated successfully",
		"proposal": proposal,
	}, http.StatusOK)
}

func (h *ProposalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()

	id := mux.Vars(r)["id"]
	proposal, err := h.repo.GetProposal(ctx, userID, id)
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if proposal == nil {
		writeError(w, "Proposal not found", http.StatusNotFound)
		return
	}

	if err := h.repo.DeleteProposal(ctx, userID, id); err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, map[string]any{"message": "Proposal deleted successfully"}, http.StatusOK)
}
