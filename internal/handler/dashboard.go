package handler

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/templui/goaltrack/internal/ctxkeys"
	"github.com/templui/goaltrack/internal/repository"
	"github.com/templui/goaltrack/internal/service"
	"github.com/templui/goaltrack/internal/stats"
	"github.com/templui/goaltrack/internal/ui"
	"github.com/templui/goaltrack/internal/ui/pages"
)

type DashboardHandler struct {
	goalService *service.GoalService
}

func NewDashboardHandler(goalService *service.GoalService) *DashboardHandler {
	return &DashboardHandler{
		goalService: goalService,
	}
}

func (h *DashboardHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	sortBy := r.URL.Query().Get("sort")
	if !slices.Contains(repository.GoalSorts, sortBy) {
		sortBy = repository.GoalSortRecent
	}

	goals, err := h.goalService.Goals(r.Context(), user.ID, sortBy)
	if err != nil {
		slog.Error("failed to get goals", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Dashboard(pages.DashboardData{
		Total:  len(goals),
		Sort:   sortBy,
		Groups: stats.GroupByStatus(goals),
	}))
}
