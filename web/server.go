// Package web exposes a small HTTP control surface over a running playback
// session: progress polling, pause toggling and stopping.
package web

import (
	"encoding/json"
	"net/http"

	"github.com/Peacockli/webfishing-midi/player"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type Server struct {
	player *player.Player
	addr   string
}

func NewServer(p *player.Player, addr string) *Server {
	return &Server{player: p, addr: addr}
}

func (s *Server) HandleProgress(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.player.Progress())
}

func (s *Server) HandlePause(w http.ResponseWriter, r *http.Request) {
	paused := s.player.TogglePause()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"paused": paused})
}

func (s *Server) HandleStop(w http.ResponseWriter, r *http.Request) {
	s.player.Stop()
	w.WriteHeader(http.StatusAccepted)
}

// Handler builds the router. Split from Run so tests can drive it with
// httptest.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/progress", s.HandleProgress).Methods("GET")
	router.HandleFunc("/pause", s.HandlePause).Methods("POST")
	router.HandleFunc("/stop", s.HandleStop).Methods("POST")
	return cors.Default().Handler(router)
}

// Run serves until the listener fails. Meant to run in its own goroutine
// next to the playback loop; it shares nothing with the driver beyond the
// player's atomic snapshot.
func (s *Server) Run() {
	logrus.Infof("control server listening on %v", s.addr)
	if err := http.ListenAndServe(s.addr, s.Handler()); err != nil {
		logrus.Errorf("control server stopped: %v", err)
	}
}
