package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"roombooking/src/app/http/response"
	"roombooking/src/app/middleware"
	"roombooking/src/core/domain"
	"roombooking/src/core/ports"
	"roombooking/src/infra/config"
	"roombooking/src/infra/logger"
)

type memoryStore struct {
	mu          sync.Mutex
	users       []domain.User
	bookings    []domain.Booking
	createCalls int
	err         error
}

func (s *memoryStore) CreateUser(_ context.Context, u domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	s.users = append(s.users, u)
	return &u, nil
}

func (s *memoryStore) GetUserByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	return s.findUser(func(u domain.User) bool { return u.ID == id })
}

func (s *memoryStore) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	return s.findUser(func(u domain.User) bool { return u.Username == username })
}

func (s *memoryStore) findUser(match func(domain.User) bool) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, domain.NewNotFoundError("user")
}

func (s *memoryStore) CreateBooking(_ context.Context, b domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++
	if s.err != nil {
		return nil, s.err
	}
	if clash := domain.FindConflict(s.bookings, &b); clash != nil {
		return nil, domain.NewBookingConflictError(clash)
	}
	b.ID = uuid.New()
	b.CreatedAt = time.Now()
	s.bookings = append(s.bookings, b)
	return &b, nil
}

func (s *memoryStore) GetBooking(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, domain.NewNotFoundError("booking")
}

func (s *memoryStore) ListBookings(_ context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.Booking
	for _, b := range s.bookings {
		if (f.Room == "" || b.Room == f.Room) && (f.Date == "" || b.Date == f.Date) {
			out = append(out, b)
		}
	}
	return out, nil
}

type checkFunc func(context.Context) error

func (f checkFunc) Health(ctx context.Context) error { return f(ctx) }

func newTestServer(t *testing.T, store *memoryStore, dbHealth error) *Server {
	t.Helper()
	return newTestServerWithLog(t, store, dbHealth, nil)
}

func newTestServerWithLog(t *testing.T, store *memoryStore, dbHealth error, log *slog.Logger) *Server {
	t.Helper()
	cfg := &config.Config{Log: config.LogConfig{Level: "error"}}
	return New(cfg, log, Deps{
		Users:    store,
		Bookings: store,
		Health: map[string]ports.HealthChecker{
			"database": checkFunc(func(context.Context) error { return dbHealth }),
		},
	})
}

func do(t *testing.T, s *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorDetail {
	t.Helper()
	var out response.Error
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return out.Error
}

func bookingBody(start, end [2]int) map[string]any {
	return map[string]any{
		"day":        "WEDNESDAY",
		"date":       "2024-05-01",
		"event":      "Sprint Review",
		"clockStart": map[string]int{"hours": start[0], "minutes": start[1]},
		"clockEnd":   map[string]int{"hours": end[0], "minutes": end[1]},
		"room":       "Ruang Rapat F3",
		"pic":        "Budi",
		"kapasitas":  "12",
		"rapat":      "Offline",
		"catatan":    "bring laptops",
	}
}

func TestRoot(t *testing.T) {
	s := newTestServer(t, &memoryStore{}, nil)

	rec := do(t, s, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"msg":"server up"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatalf("expected a request id header")
	}
}

func TestRooms(t *testing.T) {
	s := newTestServer(t, &memoryStore{}, nil)

	rec := do(t, s, http.MethodGet, "/api/v1/rooms", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out struct {
		Data struct {
			Rooms        []string `json:"rooms"`
			MeetingTypes []string `json:"meetingTypes"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Data.Rooms) != 9 || len(out.Data.MeetingTypes) != 2 {
		t.Fatalf("got %d rooms and %d meeting types", len(out.Data.Rooms), len(out.Data.MeetingTypes))
	}
}

func TestCreateBooking(t *testing.T) {
	store := &memoryStore{}
	s := newTestServer(t, store, nil)

	rec := do(t, s, http.MethodPost, "/api/v1/bookings", bookingBody([2]int{9, 0}, [2]int{10, 0}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Data struct {
			ID         string `json:"id"`
			Day        string `json:"day"`
			Event      string `json:"event"`
			ClockStart struct {
				Hours int `json:"hours"`
			} `json:"clockStart"`
			Room string `json:"room"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Data.Day != "wednesday" || out.Data.Event != "sprint review" {
		t.Fatalf("expected lowercased day and event, got %q %q", out.Data.Day, out.Data.Event)
	}
	if out.Data.Room != "Ruang Rapat F3" || out.Data.ClockStart.Hours != 9 {
		t.Fatalf("unexpected booking %+v", out.Data)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/bookings/"+out.Data.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}
}

func TestCreateBooking_Errors(t *testing.T) {
	tests := []struct {
		name      string
		body      any
		storeErr  error
		wantCode  int
		wantError string
		wantField string
	}{
		{
			name: "missing pic",
			body: func() map[string]any {
				b := bookingBody([2]int{9, 0}, [2]int{10, 0})
				delete(b, "pic")
				return b
			}(),
			wantCode:  http.StatusBadRequest,
			wantError: "VALIDATION_ERROR",
			wantField: "pic",
		},
		{
			name: "unknown room",
			body: func() map[string]any {
				b := bookingBody([2]int{9, 0}, [2]int{10, 0})
				b["room"] = "Ruang Rapat Z9"
				return b
			}(),
			wantCode:  http.StatusBadRequest,
			wantError: "VALIDATION_ERROR",
			wantField: "room",
		},
		{
			name:      "end before start",
			body:      bookingBody([2]int{10, 0}, [2]int{9, 0}),
			wantCode:  http.StatusBadRequest,
			wantError: "VALIDATION_ERROR",
			wantField: "clockEnd",
		},
		{
			name: "wrong type",
			body: func() map[string]any {
				b := bookingBody([2]int{9, 0}, [2]int{10, 0})
				b["pic"] = 5
				return b
			}(),
			wantCode:  http.StatusBadRequest,
			wantError: "VALIDATION_ERROR",
			wantField: "pic",
		},
		{
			name:      "malformed json",
			body:      `{"day":`,
			wantCode:  http.StatusBadRequest,
			wantError: "VALIDATION_ERROR",
		},
		{
			name:      "database unreachable",
			body:      bookingBody([2]int{9, 0}, [2]int{10, 0}),
			storeErr:  domain.NewConnectionError(errors.New("dial tcp: connection refused")),
			wantCode:  http.StatusServiceUnavailable,
			wantError: "SERVICE_UNAVAILABLE",
		},
		{
			name:      "unexpected store failure",
			body:      bookingBody([2]int{9, 0}, [2]int{10, 0}),
			storeErr:  errors.New("disk full"),
			wantCode:  http.StatusInternalServerError,
			wantError: "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memoryStore{err: tt.storeErr}
			s := newTestServer(t, store, nil)

			rec := do(t, s, http.MethodPost, "/api/v1/bookings", tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			detail := decodeError(t, rec)
			if detail.Code != tt.wantError {
				t.Fatalf("code = %q, want %q", detail.Code, tt.wantError)
			}
			if tt.wantField != "" && detail.Field != tt.wantField {
				t.Fatalf("field = %q, want %q (fields %+v)", detail.Field, tt.wantField, detail.Fields)
			}
			if detail.RequestID == "" {
				t.Fatalf("expected request id in error body")
			}
			if tt.wantCode == http.StatusBadRequest && store.createCalls != 0 {
				t.Fatalf("invalid request reached the store")
			}
			if strings.Contains(rec.Body.String(), "connection refused") || strings.Contains(rec.Body.String(), "disk full") {
				t.Fatalf("infrastructure detail leaked: %s", rec.Body.String())
			}
		})
	}
}

func TestAccessLogRecordsFailureCause(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(config.LogConfig{Level: "info", Format: "json"}, &buf)
	s := newTestServerWithLog(t, &memoryStore{err: errors.New("disk full")}, nil, log)

	rec := do(t, s, http.MethodPost, "/api/v1/bookings", bookingBody([2]int{9, 0}, [2]int{10, 0}))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "disk full") {
		t.Fatalf("cause leaked to the client: %s", rec.Body.String())
	}

	var line map[string]any
	for _, raw := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		if err := json.Unmarshal(raw, &entry); err != nil {
			t.Fatalf("decode log line %q: %v", raw, err)
		}
		if entry["msg"] == "request failed" {
			line = entry
		}
	}
	if line == nil {
		t.Fatalf("no access log line for the failed request in %s", buf.String())
	}
	if cause, _ := line["errors"].(string); !strings.Contains(cause, "disk full") {
		t.Fatalf("access log is missing the cause: %v", line)
	}
}

func TestCreateBooking_Conflict(t *testing.T) {
	s := newTestServer(t, &memoryStore{}, nil)

	if rec := do(t, s, http.MethodPost, "/api/v1/bookings", bookingBody([2]int{9, 0}, [2]int{10, 0})); rec.Code != http.StatusCreated {
		t.Fatalf("first booking status = %d", rec.Code)
	}

	rec := do(t, s, http.MethodPost, "/api/v1/bookings", bookingBody([2]int{9, 30}, [2]int{10, 30}))
	if rec.Code != http.StatusConflict {
		t.Fatalf("overlapping booking status = %d, want 409", rec.Code)
	}
	if detail := decodeError(t, rec); !strings.Contains(detail.Message, "09:00") {
		t.Fatalf("expected the clashing booking in the message, got %q", detail.Message)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/bookings", bookingBody([2]int{10, 0}, [2]int{11, 0}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("adjacent booking status = %d, want 201", rec.Code)
	}
}

func TestAvailability(t *testing.T) {
	s := newTestServer(t, &memoryStore{}, nil)
	do(t, s, http.MethodPost, "/api/v1/bookings", bookingBody([2]int{9, 0}, [2]int{10, 0}))

	rec := do(t, s, http.MethodGet, "/api/v1/rooms/Ruang%20Rapat%20F3/bookings?date=%202024-05-01%20", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Data struct {
			Room     string            `json:"room"`
			Date     string            `json:"date"`
			Bookings []json.RawMessage `json:"bookings"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Data.Room != "Ruang Rapat F3" || out.Data.Date != "2024-05-01" || len(out.Data.Bookings) != 1 {
		t.Fatalf("unexpected availability %+v", out.Data)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/rooms/Ruang%20Rapat%20F3/bookings", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing date status = %d, want 400", rec.Code)
	}
}

func TestListBookings_EmptyIsArray(t *testing.T) {
	s := newTestServer(t, &memoryStore{}, nil)

	rec := do(t, s, http.MethodGet, "/api/v1/bookings?date=2024-05-01", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Fatalf("expected an empty array, got %s", rec.Body.String())
	}
}

func TestRegisterUser(t *testing.T) {
	s := newTestServer(t, &memoryStore{}, nil)

	rec := do(t, s, http.MethodPost, "/api/v1/users", map[string]string{"username": "  Budi ", "password": "rahasia"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "rahasia") || strings.Contains(strings.ToLower(rec.Body.String()), "password") {
		t.Fatalf("credentials leaked: %s", rec.Body.String())
	}
	var out struct {
		Data struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Data.Username != "budi" {
		t.Fatalf("username = %q, want budi", out.Data.Username)
	}

	if rec := do(t, s, http.MethodGet, "/api/v1/users/"+out.Data.ID, nil); rec.Code != http.StatusOK {
		t.Fatalf("get user status = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/api/v1/users", map[string]string{"username": "budi", "password": "lain1"}); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate username status = %d, want 409", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/api/v1/users/"+uuid.NewString(), nil); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown user status = %d, want 404", rec.Code)
	}
}

func TestDetailedHealth_Degraded(t *testing.T) {
	s := newTestServer(t, &memoryStore{}, domain.NewConnectionError(errors.New("timeout")))

	rec := do(t, s, http.MethodGet, "/health/detailed", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"degraded"`) {
		t.Fatalf("expected degraded status, got %s", rec.Body.String())
	}
}

func TestNoRouteAndPreflight(t *testing.T) {
	s := newTestServer(t, &memoryStore{}, nil)

	rec := do(t, s, http.MethodGet, "/nope", nil)
	if rec.Code != http.StatusNotFound || decodeError(t, rec).Code != "NOT_FOUND" {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, s, http.MethodOptions, "/api/v1/bookings", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header")
	}
}
