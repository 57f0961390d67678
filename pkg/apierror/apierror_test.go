package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", Validation("All fields are required"), http.StatusBadRequest, "All fields are required"},
		{"auth", Auth("unauthorized request"), http.StatusUnauthorized, "unauthorized request"},
		{"not found", NotFound("User does not exist"), http.StatusNotFound, "User does not exist"},
		{"conflict", Conflict("taken"), http.StatusConflict, "taken"},
		{"wrapped", fmt.Errorf("login: %w", Auth("Invalid user credentials")), http.StatusUnauthorized, "Invalid user credentials"},
		{"plain error", errors.New("connection reset"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := From(tt.err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("signing failed")
	err := Internal("something went wrong", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "something went wrong: signing failed", err.Error())
}
