package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("a@x.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@x.com"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Password", "secret", 6))

	err := ValidatePassword("Password", "short", 6)
	require.Error(t, err)
	assert.Equal(t, "Password must be at least 6 characters long!", err.Error())

	err = ValidatePassword("New password", strings.Repeat("x", 73), 6)
	require.Error(t, err)
	assert.Equal(t, "New password must not exceed 72 characters!", err.Error())
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("alice"))
	assert.Error(t, ValidateUsername("  "))
	assert.Error(t, ValidateUsername("al ice"))
	assert.Error(t, ValidateUsername(strings.Repeat("a", 51)))
}

func TestParseProgress(t *testing.T) {
	for in, want := range map[string]int{"": 0, "0": 0, " 30 ": 30, "100": 100} {
		got, err := ParseProgress(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"-1", "101", "abc", "12.5"} {
		_, err := ParseProgress(in)
		assert.ErrorIs(t, err, ErrInvalidProgress, in)
	}
}

func TestParseDeadline(t *testing.T) {
	d, err := ParseDeadline("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseDeadline("2026-12-31")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.True(t, d.Equal(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)))

	_, err = ParseDeadline("31/12/2026")
	assert.ErrorIs(t, err, ErrInvalidDeadline)
}
