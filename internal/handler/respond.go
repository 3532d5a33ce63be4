package handler

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/templui/goaltrack/internal/apperror"
	"github.com/templui/goaltrack/internal/ctxkeys"
	"github.com/templui/goaltrack/internal/flash"
	"github.com/templui/goaltrack/internal/service"
	"github.com/templui/goaltrack/internal/ui"
)

// userMessage returns what the user should see for err. Unexpected errors are
// logged with args and replaced by a generic message.
func userMessage(err error, logMsg string, args ...any) string {
	if appErr, ok := apperror.As(err); ok && appErr.Kind != apperror.Internal {
		return appErr.Message
	}
	slog.Error(logMsg, append([]any{"error", err}, args...)...)
	return service.MsgSomethingWentWrong
}

func statusFor(err error) int {
	if appErr, ok := apperror.As(err); ok {
		return appErr.StatusCode()
	}
	return http.StatusInternalServerError
}

// renderError re-renders a form page with the error shown as a flash.
func renderError(w http.ResponseWriter, r *http.Request, err error, message string, c templ.Component) {
	ctx := ctxkeys.WithFlash(r.Context(), &ctxkeys.Flash{Kind: ctxkeys.FlashError, Message: message})
	ui.RenderStatus(w, r.WithContext(ctx), statusFor(err), c)
}

func redirectWithSuccess(w http.ResponseWriter, r *http.Request, target, message string) {
	flash.Success(w, r, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func redirectWithError(w http.ResponseWriter, r *http.Request, target, message string) {
	flash.Error(w, r, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
