// internal/apperr/apperr_test.go
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeAndMessage(t *testing.T) {
	err := New(CodeNotFound, "book not found")
	assert.Equal(t, CodeNotFound, Code(err))
	assert.Equal(t, "book not found", Message(err))

	// Codes survive wrapping.
	wrapped := fmt.Errorf("loading book: %w", err)
	assert.Equal(t, CodeNotFound, Code(wrapped))
	assert.Equal(t, "book not found", Message(wrapped))
}

func TestInternalErrorsAreMasked(t *testing.T) {
	err := errors.New("pq: connection refused")
	assert.Equal(t, CodeInternal, Code(err))
	assert.Equal(t, "internal server error", Message(err))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(CodeInvalid))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(CodeNotFound))
	assert.Equal(t, http.StatusConflict, HTTPStatus(CodeConflict))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(CodeUnauthenticated))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(CodeForbidden))
	assert.Equal(t, http.StatusTooManyRequests, HTTPStatus(CodeRateLimited))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(CodeInternal))
}
