package handler

import (
	"net/http"

	"github.com/templui/goaltrack/internal/service"
	"github.com/templui/goaltrack/internal/ui"
	"github.com/templui/goaltrack/internal/ui/pages"
)

type AuthHandler struct {
	authService       *service.AuthService
	minPasswordLength int
}

func NewAuthHandler(authService *service.AuthService, minPasswordLength int) *AuthHandler {
	return &AuthHandler{
		authService:       authService,
		minPasswordLength: minPasswordLength,
	}
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Register(pages.RegisterData{MinPasswordLength: h.minPasswordLength}))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	in := service.RegisterInput{
		Username:        r.FormValue("username"),
		Email:           r.FormValue("email"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}

	_, err := h.authService.Register(r.Context(), in)
	if err != nil {
		msg := userMessage(err, "failed to register user", "email", in.Email)
		renderError(w, r, err, msg, pages.Register(pages.RegisterData{
			Username:          in.Username,
			Email:             in.Email,
			MinPasswordLength: h.minPasswordLength,
		}))
		return
	}

	redirectWithSuccess(w, r, "/login", service.MsgAccountCreated)
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Login(pages.LoginData{}))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")

	user, err := h.authService.Login(r.Context(), email, r.FormValue("password"))
	if err != nil {
		msg := userMessage(err, "failed to log in", "email", email)
		renderError(w, r, err, msg, pages.Login(pages.LoginData{Email: email}))
		return
	}

	err = h.authService.StartSession(w, user)
	if err != nil {
		msg := userMessage(err, "failed to start session", "user_id", user.ID)
		renderError(w, r, err, msg, pages.Login(pages.LoginData{Email: email}))
		return
	}

	redirectWithSuccess(w, r, "/dashboard", service.MsgWelcomeBack)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
