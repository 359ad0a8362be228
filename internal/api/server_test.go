package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mogul/internal/game"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	session, err := game.NewSession(game.DefaultContent(), game.WithSeed(1))
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), session)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestDashboardReflectsTicks(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/v1/ticks", `{"count": 5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("ticks status = %d: %s", w.Code, w.Body)
	}

	w = do(t, s, http.MethodGet, "/v1/dashboard", "")
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d", w.Code)
	}
	var dash game.Dashboard
	if err := json.Unmarshal(w.Body.Bytes(), &dash); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if dash.Tick != 5 {
		t.Fatalf("tick = %d", dash.Tick)
	}
}

func TestDomainErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{
			name:   "below minimum deposit",
			method: http.MethodPost,
			path:   "/v1/positions",
			body:   `{"definition": "bonds", "amount": 1}`,
			want:   http.StatusBadRequest,
		},
		{
			name:   "unknown definition",
			method: http.MethodPost,
			path:   "/v1/positions",
			body:   `{"definition": "nope", "amount": 500}`,
			want:   http.StatusNotFound,
		},
		{
			name:   "unknown position",
			method: http.MethodPost,
			path:   "/v1/positions/missing/sell",
			want:   http.StatusNotFound,
		},
		{
			name:   "unknown lot",
			method: http.MethodPost,
			path:   "/v1/lots/nowhere/buy",
			want:   http.StatusNotFound,
		},
		{
			name:   "lot too expensive",
			method: http.MethodPost,
			path:   "/v1/lots/high-street/buy",
			want:   http.StatusBadRequest,
		},
		{
			name:   "summary before terminal",
			method: http.MethodGet,
			path:   "/v1/summary",
			want:   http.StatusConflict,
		},
		{
			name:   "unknown json field",
			method: http.MethodPost,
			path:   "/v1/ticks",
			body:   `{"counter": 3}`,
			want:   http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, newTestServer(t), tt.method, tt.path, tt.body)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.want, w.Body)
			}
		})
	}
}

func TestOpenAndSellPositionRoundTrip(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/v1/positions", `{"definition": "savings", "amount": 500}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("open status = %d: %s", w.Code, w.Body)
	}
	var view game.PositionView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.PrincipalMicros != 500*game.MicrosPerCoin {
		t.Fatalf("principal = %d", view.PrincipalMicros)
	}

	w = do(t, s, http.MethodPost, "/v1/positions/"+view.ID+"/sell", "")
	if w.Code != http.StatusOK {
		t.Fatalf("sell status = %d: %s", w.Code, w.Body)
	}
	var rec game.SaleRecord
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if rec.ProceedsMicros != 500*game.MicrosPerCoin {
		t.Fatalf("proceeds = %d", rec.ProceedsMicros)
	}
}

func TestProjectValueEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodPost, "/v1/positions/project", `{"definition": "savings", "amount": 1000, "ticks": 20}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	var out struct {
		ProjectedValueMicros int64 `json:"projected_value_micros"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// 4% annual, monthly compounding, one event after 20 ticks.
	want := int64(1_003_333_333)
	if out.ProjectedValueMicros != want {
		t.Fatalf("projected = %d, want %d", out.ProjectedValueMicros, want)
	}
}

func TestResetEndpoint(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodPost, "/v1/ticks", `{"count": 10}`)
	w := do(t, s, http.MethodPost, "/v1/reset", "")
	if w.Code != http.StatusOK {
		t.Fatalf("reset status = %d", w.Code)
	}
	w = do(t, s, http.MethodGet, "/v1/dashboard", "")
	var dash game.Dashboard
	if err := json.Unmarshal(w.Body.Bytes(), &dash); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if dash.Tick != 0 {
		t.Fatalf("tick after reset = %d", dash.Tick)
	}
}
