package http

import (
	"encoding/json"
	"net/http"

	"github.com/animo-meet/backend/internal/adapter/driven/gateway/ws"
	"github.com/animo-meet/backend/internal/config"
	"github.com/animo-meet/backend/internal/core/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	Rooms    *service.RoomService
	Signals  *service.SignalService
	Accounts *service.AccountService
	Meetings *service.MeetingService
	Hub      *ws.Hub

	cfg      config.Config
	upgrader websocket.Upgrader
}

func NewHandler(cfg config.Config, rooms *service.RoomService, signals *service.SignalService, accounts *service.AccountService, meetings *service.MeetingService, hub *ws.Hub) *Handler {
	h := &Handler{
		Rooms:    rooms,
		Signals:  signals,
		Accounts: accounts,
		Meetings: meetings,
		Hub:      hub,
		cfg:      cfg,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     h.originAllowed,
	}
	return h
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(h.cors)

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(h.RequireAuth).Get("/verify-user", h.VerifyUser)
	})

	r.Route("/api/v1/meeting", func(r chi.Router) {
		r.With(h.RequireAuth).Get("/check-code/{meetingCode}", h.CheckCode)
		r.Get("/check-meet/{meetingCode}", h.CheckMeet)
		r.Get("/check-host", h.CheckHost)
		r.With(h.RequireAuth).Get("/prev-meets/{username}", h.PrevMeets)
	})

	r.Get("/ws", h.ServeWS)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

// originAllowed applies the configured allowlist to both CORS and the WS
// upgrade. No Origin header (curl, same-origin) passes; an empty allowlist
// admits no cross-origin caller.
func (h *Handler) originAllowed(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.cfg.Origins() {
		if origin == allowed {
			return true
		}
	}
	return false
}

func (h *Handler) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			if !h.originAllowed(r) {
				log.Warn().Str("origin", origin).Msg("CORS blocked origin")
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

type messageResponse struct {
	Message string `json:"message"`
}
