package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindThroughWrapping(t *testing.T) {
	base := NewConflict("Email already exists!", errors.New("unique violation"))
	wrapped := fmt.Errorf("register: %w", base)

	assert.True(t, IsConflict(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.Equal(t, "Email already exists!", Message(wrapped, "fallback"))
	assert.Equal(t, http.StatusConflict, base.StatusCode())
	assert.Equal(t, "Email already exists!: unique violation", base.Error())
}

func TestMessageFallsBackForInfrastructureErrors(t *testing.T) {
	assert.Equal(t, "fallback", Message(errors.New("connection refused"), "fallback"))
	assert.Equal(t, Internal, KindOf(errors.New("boom")))
	assert.Equal(t, "fallback", Message(New(Internal, "db down", nil), "fallback"))
}

func TestStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, NewValidation("x").StatusCode())
	assert.Equal(t, http.StatusNotFound, NewNotFound("x", nil).StatusCode())
	assert.Equal(t, http.StatusForbidden, NewForbidden("x").StatusCode())
	assert.Equal(t, http.StatusUnauthorized, NewAuth("x", nil).StatusCode())
	assert.Equal(t, "not_found", NotFound.String())
}
