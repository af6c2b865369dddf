package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-engine/internal/infra/cache"
	"github.com/BruksfildServices01/booking-engine/internal/infra/memory"
)

// 2026-10-19 is a Monday.
const monday = "2026-10-19"

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, limit int) *gin.Engine {
	t.Helper()

	store := memory.NewStore()
	c := cache.NewMemory()

	r := gin.New()
	RegisterRoutes(r, Deps{
		Bookings:           store,
		Catalog:            store,
		Cache:              c,
		Limiter:            c,
		RateLimitPerMinute: limit,
		Logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

// setup creates a business open on Mondays 09:00-12:00 with one service.
func setup(t *testing.T, r http.Handler) (string, string) {
	t.Helper()

	w, biz := do(t, r, http.MethodPost, "/businesses", map[string]any{
		"name": "Studio Nine",
		"slug": "studio-nine",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bizID := biz["id"].(string)

	w, _ = do(t, r, http.MethodPut, "/businesses/"+bizID+"/availability", []map[string]any{
		{"dayOfWeek": 1, "startTime": "09:00", "endTime": "12:00", "isActive": true},
		{"dayOfWeek": 0, "startTime": "09:00", "endTime": "12:00", "isActive": false},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, svc := do(t, r, http.MethodPost, "/businesses/"+bizID+"/services", map[string]any{
		"name":     "Haircut",
		"duration": 30,
		"price":    4500,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return bizID, svc["id"].(string)
}

func bookingBody(serviceID, clock string) map[string]any {
	return map[string]any{
		"customerName":  "Ana Souza",
		"customerEmail": "Ana@Example.com",
		"serviceId":     serviceID,
		"date":          monday,
		"time":          clock,
	}
}

func TestBookingFlow(t *testing.T) {
	r := newRouter(t, 0)
	bizID, svcID := setup(t, r)

	w, slots := do(t, r, http.MethodGet, "/businesses/"+bizID+"/slots/"+monday, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := slots["slots"].([]any)
	require.Len(t, list, 6)
	assert.Equal(t, "9:00 AM", list[0].(map[string]any)["time"])

	w, created := do(t, r, http.MethodPost, "/businesses/"+bizID+"/bookings", bookingBody(svcID, "10:00 AM"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, "10:00 AM", created["time"])
	assert.EqualValues(t, 4500, created["totalPrice"])
	bookingID := created["id"].(string)

	w, body := do(t, r, http.MethodPost, "/businesses/"+bizID+"/bookings", bookingBody(svcID, "10:00"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_taken", body["error_code"])

	w, slots = do(t, r, http.MethodGet, "/businesses/"+bizID+"/slots/"+monday, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, slots["slots"].([]any)[2].(map[string]any)["available"])

	w, updated := do(t, r, http.MethodPatch, "/bookings/"+bookingID, map[string]any{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "confirmed", updated["status"])

	w, body = do(t, r, http.MethodPatch, "/bookings/"+bookingID, map[string]any{"status": "pending"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "invalid_transition", body["error_code"])

	w, got := do(t, r, http.MethodGet, "/bookings/"+bookingID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ana Souza", got["customerName"])
	assert.Equal(t, "Haircut", got["serviceName"])

	w, stats := do(t, r, http.MethodGet, "/businesses/"+bizID+"/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 4500, stats["totalRevenue"])
	assert.Len(t, stats["weeklyRevenue"], 7)
	assert.Len(t, stats["recentBookings"], 1)

	w, _ = do(t, r, http.MethodGet, "/businesses/"+bizID+"/customers?query=ana", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var customers []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customers))
	require.Len(t, customers, 1)
	assert.Equal(t, "ana@example.com", customers[0]["email"])
	assert.EqualValues(t, 1, customers[0]["totalBookings"])

	w, _ = do(t, r, http.MethodGet, "/businesses/"+bizID+"/bookings?date="+monday, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bookings []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookings))
	assert.Len(t, bookings, 1)
}

func TestSlots_ClosedDay(t *testing.T) {
	r := newRouter(t, 0)
	bizID, _ := setup(t, r)

	w, body := do(t, r, http.MethodGet, "/businesses/"+bizID+"/slots/2026-10-18", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["slots"])
	assert.Equal(t, "Closed on Sunday", body["message"])
}

func TestCancelledBookingFreesSlot(t *testing.T) {
	r := newRouter(t, 0)
	bizID, svcID := setup(t, r)

	w, created := do(t, r, http.MethodPost, "/businesses/"+bizID+"/bookings", bookingBody(svcID, "9:30 AM"))
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = do(t, r, http.MethodPatch, "/bookings/"+created["id"].(string), map[string]any{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodPost, "/businesses/"+bizID+"/bookings", bookingBody(svcID, "9:30 AM"))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAvailability_Validation(t *testing.T) {
	r := newRouter(t, 0)
	bizID, _ := setup(t, r)

	w, body := do(t, r, http.MethodPut, "/businesses/"+bizID+"/availability", []map[string]any{
		{"dayOfWeek": 7, "startTime": "09:00", "endTime": "12:00", "isActive": true},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_day_of_week", body["error_code"])

	w, body = do(t, r, http.MethodPut, "/businesses/"+bizID+"/availability", []map[string]any{
		{"dayOfWeek": 1, "startTime": "12:00", "endTime": "09:00", "isActive": true},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_window", body["error_code"])
}

func TestPublicPage(t *testing.T) {
	r := newRouter(t, 0)
	bizID, svcID := setup(t, r)

	w, _ := do(t, r, http.MethodPatch, "/businesses/"+bizID+"/services/"+svcID, map[string]any{"isActive": false})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, r, http.MethodPost, "/businesses/"+bizID+"/services", map[string]any{
		"name": "Beard trim", "duration": 15, "price": 2000,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, page := do(t, r, http.MethodGet, "/public/studio-nine", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Studio Nine", page["business"].(map[string]any)["name"])
	services := page["services"].([]any)
	require.Len(t, services, 1)
	assert.Equal(t, "Beard trim", services[0].(map[string]any)["name"])

	w, _ = do(t, r, http.MethodGet, "/public/nobody", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingRateLimit(t *testing.T) {
	r := newRouter(t, 2)
	bizID, svcID := setup(t, r)

	clocks := []string{"9:00 AM", "9:30 AM", "10:00 AM"}
	codes := make([]int, 0, len(clocks))
	for _, clock := range clocks {
		w, _ := do(t, r, http.MethodPost, "/businesses/"+bizID+"/bookings", bookingBody(svcID, clock))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)
}

func TestHealth(t *testing.T) {
	r := newRouter(t, 0)

	w, body := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
