package api

import (
	"math"
	"net/http"
	"time"

	"github.com/avelar/pitch/internal/models"
	"github.com/avelar/pitch/pkg/repository"
)

type DashboardHandler struct {
	stats repository.StatsRepo
	now   func() time.Time
}

func NewDashboardHandler(stats repository.StatsRepo) *DashboardHandler {
	return &DashboardHandler{stats: stats, now: time.Now}
}

// Stats returns the aggregates behind the dashboard cards: proposal volume,
// acceptance success rate, and completed-project revenue.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()
	now := h.now().UTC()
	weekAgo := now.AddDate(0, 0, -7).UnixMilli()
	monthAgoDate := now.AddDate(0, 0, -30).Format("2006-01-02")

	totalProposals, err := h.stats.CountProposals(ctx, userID, 0)
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	proposalsThisWeek, err := h.stats.CountProposals(ctx, userID, weekAgo)
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	accepted, err := h.stats.CountProposalsByStatus(ctx, userID, models.ProposalStatusAccepted, 0)
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var successRate int
	if totalProposals > 0 {
		successRate = int(math.Round(float64(accepted) / float64(totalProposals) * 100))
	}

	totalRevenue, err := h.stats.SumCompletedProjectBudget(ctx, userID, "")
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	revenueThisMonth, err := h.stats.SumCompletedProjectBudget(ctx, userID, monthAgoDate)
	if err != nil {
		writeError(w, "An error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, map[string]any{
		"stats": map[string]any{
			"total_proposals":     totalProposals,
			"proposals_this_week": proposalsThisWeek,
			"accepted_proposals":  accepted,
			"success_rate":        successRate,
			"total_revenue":       totalRevenue,
			"revenue_this_month":  revenueThisMonth,
		},
	}, http.StatusOK)
}
