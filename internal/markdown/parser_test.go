package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	out := string(Render("Run **every** day"))
	assert.Contains(t, out, "<strong>every</strong>")
}

func TestRender_DropsRawHTML(t *testing.T) {
	out := string(Render("hi <script>alert(1)</script>"))
	assert.NotContains(t, out, "<script>")
}

func TestRender_UnsafeLink(t *testing.T) {
	out := string(Render("[x](javascript:alert(1))"))
	assert.False(t, strings.Contains(out, `href="javascript:`))
}

func TestRender_HardWraps(t *testing.T) {
	out := string(Render("line one\nline two"))
	assert.Contains(t, out, "<br />")
}
