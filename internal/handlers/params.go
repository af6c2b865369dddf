package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-engine/internal/httperr"
)

// uuidParam reads a UUID path parameter; on failure it writes a 400 and
// returns false.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_"+toSnake(name), name+" must be a UUID.")
		return uuid.Nil, false
	}
	return id, true
}

func toSnake(s string) string {
	out := make([]byte, 0, len(s)+2)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch >= 'A' && ch <= 'Z' {
			out = append(out, '_', ch+'a'-'A')
			continue
		}
		out = append(out, ch)
	}
	return string(out)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return false
	}
	return true
}
