package pages

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goaltrack/internal/config"
	"github.com/templui/goaltrack/internal/ctxkeys"
	"github.com/templui/goaltrack/internal/model"
	"github.com/templui/goaltrack/internal/service"
	"github.com/templui/goaltrack/internal/stats"
)

func testContext(user *model.User) context.Context {
	ctx := context.Background()
	ctx = ctxkeys.WithConfig(ctx, &config.Config{AppName: "Goaltrack", AppTagline: "Track it"})
	ctx = ctxkeys.WithCSRFToken(ctx, "csrf-123")
	ctx = templ.WithNonce(ctx, "nonce-abc")
	if user != nil {
		ctx = ctxkeys.WithUser(ctx, user)
	}
	return ctx
}

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func strPtr(s string) *string { return &s }

func TestAllPagesParse(t *testing.T) {
	for _, name := range pageNames {
		assert.Contains(t, templates, name)
	}
}

func TestHome(t *testing.T) {
	html := render(t, testContext(nil), Home())

	assert.Contains(t, html, "<title>Home | Goaltrack</title>")
	assert.Contains(t, html, "Track it")
	assert.Contains(t, html, `nonce="nonce-abc"`)
	assert.Contains(t, html, `href="/register"`)
}

func TestFlashIsRendered(t *testing.T) {
	ctx := ctxkeys.WithFlash(testContext(nil), &ctxkeys.Flash{Kind: ctxkeys.FlashError, Message: "Passwords do not match!"})

	html := render(t, ctx, Register(RegisterData{Username: "alice", Email: "a@example.com", MinPasswordLength: 6}))

	assert.Contains(t, html, "Passwords do not match!")
	assert.Contains(t, html, "bg-red-100")
	assert.Contains(t, html, `value="alice"`)
	assert.Contains(t, html, `name="csrf_token" value="csrf-123"`)
}

func TestLoginEscapesInput(t *testing.T) {
	html := render(t, testContext(nil), Login(LoginData{Email: `"><script>`}))
	assert.NotContains(t, html, `"><script>`)
}

func TestDashboard(t *testing.T) {
	user := &model.User{ID: "u1", Username: "alice"}
	deadline := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	goals := []*model.Goal{
		{ID: "g1", Title: "Run", Description: "**5k**", Category: "Health", Priority: "high", Progress: 40,
			Status: model.GoalStatusInProgress, Deadline: &deadline, Milestones: model.Milestones{"1k", "3k"}},
		{ID: "g2", Title: "Read", Description: "books", Category: "General", Priority: "low", Progress: 100,
			Status: model.GoalStatusCompleted},
	}

	html := render(t, testContext(user), Dashboard(DashboardData{Total: len(goals), Sort: "deadline", Groups: stats.GroupByStatus(goals)}))

	assert.Contains(t, html, "Welcome, alice")
	assert.Contains(t, html, "<strong>5k</strong>")
	assert.Contains(t, html, "due 2026-12-31")
	assert.Contains(t, html, "<li>3k</li>")
	assert.Contains(t, html, `action="/update_progress/g1"`)
	assert.Contains(t, html, `value="csrf-123"`)
	assert.Contains(t, html, "Completed")
	assert.Contains(t, html, "bg-green-500")
	assert.Contains(t, html, `<option value="deadline" selected>`)
	assert.NotContains(t, html, `<option value="recent" selected>`)
}

func TestDashboardEmpty(t *testing.T) {
	html := render(t, testContext(&model.User{ID: "u1", Username: "alice"}), Dashboard(DashboardData{}))
	assert.Contains(t, html, "You have no goals yet.")
}

func TestGoalForm(t *testing.T) {
	ctx := testContext(&model.User{ID: "u1", Username: "alice"})

	html := render(t, ctx, GoalForm(GoalFormData{}))
	assert.Contains(t, html, `action="/add_goal"`)
	assert.Contains(t, html, "Create goal")

	goal := &model.Goal{ID: "g1", Title: "Run", Description: "5k", Category: "Health", Priority: "low", Progress: 20,
		Milestones: model.Milestones{"a", "b"}}
	html = render(t, ctx, GoalForm(GoalFormData{GoalID: goal.ID, Form: FormFromGoal(goal)}))
	assert.Contains(t, html, `action="/edit_goal/g1"`)
	assert.Contains(t, html, `<option value="low" selected>Low</option>`)
	assert.Contains(t, html, `value="20"`)
	assert.Contains(t, html, "a\nb</textarea>")
}

func TestGoalDelete(t *testing.T) {
	html := render(t, testContext(&model.User{ID: "u1"}), GoalDelete(&model.Goal{ID: "g1", Title: "Run"}))
	assert.Contains(t, html, `action="/delete_goal/g1"`)
	assert.Contains(t, html, "<strong>Run</strong>")
}

func TestProfile(t *testing.T) {
	user := &model.User{ID: "u1", Username: "alice", Email: "alice@example.com", Name: strPtr("Alice"),
		CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}
	goals := []*model.Goal{
		{Title: "a", Progress: 0, Category: "Health", Priority: "medium"},
		{Title: "b", Progress: 50, Category: "Health", Priority: "medium"},
		{Title: "c", Progress: 100, Category: "Career", Priority: "high"},
	}

	html := render(t, testContext(user), Profile(ProfileData{User: user, Stats: stats.Compute(goals)}))

	assert.Contains(t, html, "<h1>Alice</h1>")
	assert.Contains(t, html, "member since Jan 2, 2026")
	assert.Contains(t, html, `<p id="stat-avg">50.0%</p>`)
	assert.Contains(t, html, "<li>Health: 2</li>")
	assert.Contains(t, html, "<li>Medium: 2</li>")
	assert.NotContains(t, html, "&lt;nil&gt;")
}

func TestChangePasswordAndNotFound(t *testing.T) {
	ctx := testContext(&model.User{ID: "u1"})

	html := render(t, ctx, ChangePassword(ChangePasswordData{MinPasswordLength: 6}))
	assert.Contains(t, html, `name="old_password"`)

	html = render(t, ctx, NotFound())
	assert.Contains(t, html, "Page not found")
}

func TestFormFromGoal(t *testing.T) {
	deadline := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	form := FormFromGoal(&model.Goal{Title: "t", Progress: 7, Deadline: &deadline, Milestones: model.Milestones{"x"}})

	assert.Equal(t, service.GoalForm{Title: "t", Progress: "7", Deadline: "2026-05-01", Milestones: "x"}, form)
}

func TestPriorityClass(t *testing.T) {
	assert.Contains(t, priorityClass("high"), "bg-red-100")
	assert.NotContains(t, priorityClass("high"), "bg-gray-100")
	assert.Contains(t, priorityClass("medium"), "bg-yellow-100")
}
