package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespond_MapsKindsToStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", ErrValidation("invalid_date", "bad date"), http.StatusBadRequest, "invalid_date"},
		{"not found", ErrNotFound("booking_not_found"), http.StatusNotFound, "booking_not_found"},
		{"conflict", ErrConflict("slot_taken"), http.StatusConflict, "slot_taken"},
		{"rule", ErrBusiness("invalid_transition"), http.StatusUnprocessableEntity, "invalid_transition"},
		{"wrapped", fmt.Errorf("create: %w", ErrConflict("slot_taken")), http.StatusConflict, "slot_taken"},
		{"storage", errors.New("connection reset"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Respond(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), `"error_code":"`+tc.code+`"`)
		})
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("wrap: %w", ErrNotFound("service_not_found"))
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindConflict))
	assert.True(t, IsBusiness(err, "service_not_found"))
}
