package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"mogul/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes one game session over HTTP. The session serializes its own
// operations, so handlers call straight into it.
type Server struct {
	log     *slog.Logger
	session *game.Session
	mux     *chi.Mux
}

func New(logger *slog.Logger, session *game.Session) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		log:     logger,
		session: session,
		mux:     chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/investments", s.handleInvestments)
		r.Get("/lots", s.handleLots)
		r.Get("/history", s.handleHistory)
		r.Get("/summary", s.handleSummary)

		r.Post("/positions", s.handleOpenPosition)
		r.Post("/positions/{id}/sell", s.handleSellPosition)
		r.Post("/positions/project", s.handleProjectValue)
		r.Post("/income/upgrade", s.handleUpgradeIncome)
		r.Post("/lots/{id}/buy", s.handleBuyLot)
		r.Post("/ticks", s.handleTicks)
		r.Post("/reset", s.handleReset)
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Dashboard())
}

func (s *Server) handleInvestments(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"investments": s.session.Catalog()})
}

func (s *Server) handleLots(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"lots": s.session.Lots()})
}

func (s *Server) handleHistory(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"sales": s.session.History()})
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	summary, err := s.session.Summary()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleOpenPosition(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Definition string  `json:"definition"`
		Amount     float64 `json:"amount"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := s.session.OpenPosition(in.Definition, game.CoinsToMicros(in.Amount))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.log.Info("position opened", "definition", view.Definition, "principal", game.MicrosToCoins(view.PrincipalMicros))
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleSellPosition(w http.ResponseWriter, r *http.Request) {
	rec, err := s.session.SellPosition(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.log.Info("position sold", "definition", rec.Definition, "realized", game.MicrosToCoins(rec.RealizedGainMicros))
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleProjectValue(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Definition string  `json:"definition"`
		Amount     float64 `json:"amount"`
		Ticks      int64   `json:"ticks"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	projected, err := s.session.ProjectValue(in.Definition, game.CoinsToMicros(in.Amount), in.Ticks)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"projected_value_micros": projected})
}

func (s *Server) handleUpgradeIncome(w http.ResponseWriter, _ *http.Request) {
	if err := s.session.UpgradeIncome(); err != nil {
		writeDomainError(w, err)
		return
	}
	dash := s.session.Dashboard()
	s.log.Info("restaurant upgraded", "level", dash.Level)
	writeJSON(w, http.StatusOK, map[string]any{"level": dash.Level, "balance_micros": dash.BalanceMicros})
}

func (s *Server) handleBuyLot(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "id")
	if err := s.session.BuyLot(lotID); err != nil {
		writeDomainError(w, err)
		return
	}
	s.log.Info("lot purchased", "lot", lotID)
	writeJSON(w, http.StatusOK, map[string]any{"lot_id": lotID, "owner": game.OwnerPlayer})
}

func (s *Server) handleTicks(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Count int `json:"count"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Count <= 0 {
		in.Count = 1
	}
	tick := s.session.Advance(in.Count)
	writeJSON(w, http.StatusOK, map[string]any{"tick": tick, "outcome": s.session.Outcome()})
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.session.Reset()
	s.log.Info("session reset")
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrInsufficientFunds), errors.Is(err, game.ErrAtMaxLevel):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrLotAlreadyOwned), errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrGameRunning):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrPositionNotFound), errors.Is(err, game.ErrDefinitionNotFound), errors.Is(err, game.ErrLotNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
