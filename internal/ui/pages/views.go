package pages

import (
	"github.com/a-h/templ"
	"github.com/templui/goaltrack/internal/model"
	"github.com/templui/goaltrack/internal/service"
	"github.com/templui/goaltrack/internal/stats"
)

func Home() templ.Component {
	return page("home", "Home", nil)
}

type LoginData struct {
	Email string
}

func Login(data LoginData) templ.Component {
	return page("login", "Log in", data)
}

type RegisterData struct {
	Username          string
	Email             string
	MinPasswordLength int
}

func Register(data RegisterData) templ.Component {
	return page("register", "Create account", data)
}

type DashboardData struct {
	Total int
	// Sort is one of repository.GoalSorts
	Sort   string
	Groups stats.StatusGroups
}

func Dashboard(data DashboardData) templ.Component {
	return page("dashboard", "Dashboard", data)
}

type GoalFormData struct {
	// GoalID is empty when creating
	GoalID     string
	Form       service.GoalForm
	Priorities []string
}

func (d GoalFormData) Editing() bool {
	return d.GoalID != ""
}

func (d GoalFormData) Action() string {
	if d.Editing() {
		return "/edit_goal/" + d.GoalID
	}
	return "/add_goal"
}

func GoalForm(data GoalFormData) templ.Component {
	data.Priorities = model.Priorities
	title := "New goal"
	if data.Editing() {
		title = "Edit goal"
	}
	return page("goal_form", title, data)
}

// FormFromGoal prefills the edit form.
func FormFromGoal(g *model.Goal) service.GoalForm {
	return service.GoalForm{
		Title:       g.Title,
		Description: g.Description,
		Category:    g.Category,
		Priority:    g.Priority,
		Progress:    itoa(g.Progress),
		Deadline:    g.DeadlineString(),
		Milestones:  g.Milestones.Text(),
		Resources:   g.Resources,
	}
}

func GoalDelete(goal *model.Goal) templ.Component {
	return page("goal_delete", "Delete goal", goal)
}

type ProfileData struct {
	User  *model.User
	Stats stats.Stats
}

func Profile(data ProfileData) templ.Component {
	return page("profile", "Profile", data)
}

type ChangePasswordData struct {
	MinPasswordLength int
}

func ChangePassword(data ChangePasswordData) templ.Component {
	return page("change_password", "Change password", data)
}

func NotFound() templ.Component {
	return page("not_found", "Not found", nil)
}
