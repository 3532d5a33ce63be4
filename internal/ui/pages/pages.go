// Package pages holds the HTML pages of the app. Each page is an embedded
// html/template file rendered inside the shared layout and exposed as a
// templ.Component.
package pages

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/a-h/templ"
	"github.com/templui/goaltrack/internal/ctxkeys"
	"github.com/templui/goaltrack/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"home",
	"login",
	"register",
	"dashboard",
	"goal_form",
	"goal_delete",
	"profile",
	"change_password",
	"not_found",
}

var templates = mustParse()

func mustParse() map[string]*template.Template {
	base := template.Must(template.New("layout").Funcs(funcs).ParseFS(templateFS, "templates/layout.html"))

	out := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t := template.Must(base.Clone())
		out[name] = template.Must(t.ParseFS(templateFS, "templates/"+name+".html"))
	}
	return out
}

// Layout is what every page needs from the request context.
type Layout struct {
	AppName   string
	Tagline   string
	Title     string
	Path      string
	User      *model.User
	Flash     *ctxkeys.Flash
	CSRFToken string
	Nonce     string
	Year      int
}

type view struct {
	Page Layout
	Data any
}

func layoutFrom(ctx context.Context, title string) Layout {
	l := Layout{
		AppName:   "Goaltrack",
		Title:     title,
		Path:      ctxkeys.URLPath(ctx),
		User:      ctxkeys.User(ctx),
		Flash:     ctxkeys.FlashMessage(ctx),
		CSRFToken: ctxkeys.CSRFToken(ctx),
		Nonce:     templ.GetNonce(ctx),
		Year:      time.Now().Year(),
	}
	if cfg := ctxkeys.Config(ctx); cfg != nil {
		l.AppName = cfg.AppName
		l.Tagline = cfg.AppTagline
	}
	return l
}

func page(name, title string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, ok := templates[name]
		if !ok {
			return fmt.Errorf("unknown page %q", name)
		}
		return t.ExecuteTemplate(w, "layout", view{Page: layoutFrom(ctx, title), Data: data})
	})
}
