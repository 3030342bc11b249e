package httpserver

import (
	"io"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"glinski/internal/server/game"
	"glinski/internal/server/ws"
)

type Config struct {
	WebDir    string
	MobileDir string
	// AllowedOrigins enables CORS and cross-origin websockets for these
	// origins; empty means same-origin only.
	AllowedOrigins []string
	// AccessLog receives one line per request; nil means stdout.
	AccessLog io.Writer
}

// Server is the HTTP front of the session manager: JSON API under /api,
// websocket event streams and the static web client.
type Server struct {
	games  *game.Manager
	hub    *ws.Hub
	router *mux.Router
	h      http.Handler
}

func NewServer(cfg Config) *Server {
	s := &Server{router: mux.NewRouter()}
	s.hub = ws.NewHub(originChecker(cfg.AllowedOrigins))
	s.games = game.NewManager(s.hub.Publish)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/games", s.handleListGames).Methods(http.MethodGet)
	api.HandleFunc("/games", s.handleNewGame).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}", s.handleGetGame).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", s.handleDeleteGame).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/select", s.handleSelect).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/release", s.handleRelease).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/promotion", s.handlePromote).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/promotion", s.handleCancelPromotion).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/history", s.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/history/back", s.handleStep(false)).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/history/forward", s.handleStep(true)).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/events", s.handleEvents).Methods(http.MethodGet)
	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "no such endpoint", Code: "not_found"})
	})

	RegisterStaticRoutes(s.router, cfg.WebDir, cfg.MobileDir)

	accessLog := cfg.AccessLog
	if accessLog == nil {
		accessLog = os.Stdout
	}
	var h http.Handler = s.router
	if len(cfg.AllowedOrigins) > 0 {
		h = handlers.CORS(
			handlers.AllowedOrigins(cfg.AllowedOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
			handlers.AllowedHeaders([]string{"Content-Type"}),
		)(h)
	}
	h = handlers.LoggingHandler(accessLog, h)
	s.h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
	return s
}

// Games exposes the session manager, e.g. for pruning idle sessions.
func (s *Server) Games() *game.Manager { return s.games }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.h.ServeHTTP(w, r)
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return nil
	}
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set["*"] || set[origin]
	}
}
