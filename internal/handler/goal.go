package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/goaltrack/internal/apperror"
	"github.com/templui/goaltrack/internal/ctxkeys"
	"github.com/templui/goaltrack/internal/service"
	"github.com/templui/goaltrack/internal/ui"
	"github.com/templui/goaltrack/internal/ui/pages"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

func goalForm(r *http.Request) service.GoalForm {
	return service.GoalForm{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Priority:    r.FormValue("priority"),
		Progress:    r.FormValue("progress"),
		Deadline:    r.FormValue("deadline"),
		Milestones:  r.FormValue("milestones"),
		Resources:   r.FormValue("resources"),
	}
}

// goalMissing handles lookups that failed ownership or existence checks.
// Both look the same to the user. It reports whether err was handled.
func goalMissing(w http.ResponseWriter, r *http.Request, err error, userID, goalID string) bool {
	switch apperror.KindOf(err) {
	case apperror.Forbidden:
		slog.Warn("goal access denied", "user_id", userID, "goal_id", goalID, "path", r.URL.Path)
	case apperror.NotFound:
	default:
		return false
	}
	redirectWithError(w, r, "/dashboard", service.MsgGoalNotFound)
	return true
}

func (h *GoalHandler) AddGoalPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.GoalForm(pages.GoalFormData{}))
}

func (h *GoalHandler) AddGoal(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	form := goalForm(r)

	_, err := h.goalService.Create(r.Context(), user.ID, form)
	if err != nil {
		msg := userMessage(err, "failed to create goal", "user_id", user.ID)
		renderError(w, r, err, msg, pages.GoalForm(pages.GoalFormData{Form: form}))
		return
	}

	redirectWithSuccess(w, r, "/dashboard", service.MsgGoalCreated)
}

func (h *GoalHandler) EditGoalPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	goal, err := h.goalService.ByID(r.Context(), user.ID, goalID)
	if err != nil {
		if !goalMissing(w, r, err, user.ID, goalID) {
			slog.Error("failed to get goal", "error", err, "user_id", user.ID, "goal_id", goalID)
			redirectWithError(w, r, "/dashboard", service.MsgSomethingWentWrong)
		}
		return
	}

	ui.Render(w, r, pages.GoalForm(pages.GoalFormData{GoalID: goal.ID, Form: pages.FormFromGoal(goal)}))
}

func (h *GoalHandler) EditGoal(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")
	form := goalForm(r)

	_, err := h.goalService.Update(r.Context(), user.ID, goalID, form)
	if err != nil {
		if goalMissing(w, r, err, user.ID, goalID) {
			return
		}
		msg := userMessage(err, "failed to update goal", "user_id", user.ID, "goal_id", goalID)
		renderError(w, r, err, msg, pages.GoalForm(pages.GoalFormData{GoalID: goalID, Form: form}))
		return
	}

	redirectWithSuccess(w, r, "/dashboard", service.MsgGoalUpdated)
}

func (h *GoalHandler) DeleteGoalPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	goal, err := h.goalService.ByID(r.Context(), user.ID, goalID)
	if err != nil {
		if !goalMissing(w, r, err, user.ID, goalID) {
			slog.Error("failed to get goal", "error", err, "user_id", user.ID, "goal_id", goalID)
			redirectWithError(w, r, "/dashboard", service.MsgSomethingWentWrong)
		}
		return
	}

	ui.Render(w, r, pages.GoalDelete(goal))
}

func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	err := h.goalService.Delete(r.Context(), user.ID, goalID)
	if err != nil {
		if !goalMissing(w, r, err, user.ID, goalID) {
			redirectWithError(w, r, "/dashboard", userMessage(err, "failed to delete goal", "user_id", user.ID, "goal_id", goalID))
		}
		return
	}

	redirectWithSuccess(w, r, "/dashboard", service.MsgGoalDeleted)
}

func (h *GoalHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	err := h.goalService.UpdateProgress(r.Context(), user.ID, goalID, r.FormValue("progress"))
	if err != nil {
		if !goalMissing(w, r, err, user.ID, goalID) {
			redirectWithError(w, r, "/dashboard", userMessage(err, "failed to update progress", "user_id", user.ID, "goal_id", goalID))
		}
		return
	}

	redirectWithSuccess(w, r, "/dashboard", service.MsgProgressUpdated)
}
