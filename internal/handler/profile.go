package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/goaltrack/internal/ctxkeys"
	"github.com/templui/goaltrack/internal/flash"
	"github.com/templui/goaltrack/internal/model"
	"github.com/templui/goaltrack/internal/service"
	"github.com/templui/goaltrack/internal/ui"
	"github.com/templui/goaltrack/internal/ui/pages"
)

type ProfileHandler struct {
	userService       *service.UserService
	goalService       *service.GoalService
	minPasswordLength int
}

func NewProfileHandler(userService *service.UserService, goalService *service.GoalService, minPasswordLength int) *ProfileHandler {
	return &ProfileHandler{
		userService:       userService,
		goalService:       goalService,
		minPasswordLength: minPasswordLength,
	}
}

func (h *ProfileHandler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	st, err := h.goalService.Stats(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to compute stats", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to load profile", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Profile(pages.ProfileData{User: user, Stats: st}))
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	update := model.ProfileUpdate{
		Username:    r.FormValue("username"),
		Email:       r.FormValue("email"),
		Name:        r.FormValue("name"),
		Bio:         r.FormValue("bio"),
		CurrentRole: r.FormValue("current_role"),
		Company:     r.FormValue("company"),
		LinkedIn:    r.FormValue("linkedin"),
	}

	err := h.userService.UpdateProfile(r.Context(), user.ID, update)
	if err != nil {
		redirectWithError(w, r, "/profile", userMessage(err, "failed to update profile", "user_id", user.ID))
		return
	}

	redirectWithSuccess(w, r, "/profile", service.MsgProfileUpdated)
}

func (h *ProfileHandler) ChangePasswordPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.ChangePassword(pages.ChangePasswordData{MinPasswordLength: h.minPasswordLength}))
}

func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.userService.ChangePassword(r.Context(), user.ID,
		r.FormValue("old_password"),
		r.FormValue("new_password"),
		r.FormValue("confirm_password"),
	)
	if err != nil {
		msg := userMessage(err, "failed to change password", "user_id", user.ID)
		renderError(w, r, err, msg, pages.ChangePassword(pages.ChangePasswordData{MinPasswordLength: h.minPasswordLength}))
		return
	}

	redirectWithSuccess(w, r, "/profile", service.MsgPasswordUpdated)
}

func (h *ProfileHandler) ExportData(w http.ResponseWriter, r *http.Request) {
	flash.Info(w, r, service.MsgExportNotAvailable)
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	flash.Info(w, r, service.MsgDeleteNotAvailable)
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}
