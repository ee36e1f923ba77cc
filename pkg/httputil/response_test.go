package httputil

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/clinic-api/pkg/errors"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.NotFound("clinic", nil), http.StatusNotFound},
		{errors.BadRequest("bad date", nil), http.StatusBadRequest},
		{errors.Unauthorized(nil), http.StatusUnauthorized},
		{errors.Forbidden("other clinic"), http.StatusForbidden},
		{errors.Conflict("slot taken", nil), http.StatusConflict},
		{errors.InvalidTransition("COMPLETED", "PENDING"), http.StatusConflict},
		{errors.Configuration("bad timezone", nil), http.StatusUnprocessableEntity},
		{errors.Internal(fmt.Errorf("boom")), http.StatusInternalServerError},
		{fmt.Errorf("plain error"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), "error %v", tt.err)
	}
}

func TestWrappedErrorKeepsStatus(t *testing.T) {
	wrapped := fmt.Errorf("resolving availability: %w", errors.Conflict("slot taken", nil))
	assert.Equal(t, http.StatusConflict, HTTPStatus(wrapped))
}
