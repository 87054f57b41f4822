package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/tomz197/balloonpop/internal/config"
	"github.com/tomz197/balloonpop/internal/store"
)

//go:embed index.html
var htmlPage string

var page = template.Must(template.New("index").Parse(htmlPage))

// scoreSource lists every stored high score.
type scoreSource interface {
	All() (map[string]string, error)
}

type pageData struct {
	SSHHost string
	SSHPort string
	Scores  []store.Entry
}

func main() {
	settings, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, closeLog, err := settings.NewLogger(os.Stderr, "web")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	router := newRouter(settings, store.NewFile(settings.HighScoreFile), logger)

	addr := net.JoinHostPort(settings.WebHost, settings.WebPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("starting web server", "url", "http://"+addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func newRouter(settings config.Settings, scores scoreSource, logger *log.Logger) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		entries, err := leaderboard(scores)
		if err != nil {
			logger.Warn("failed to read high scores", "err", err)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := pageData{
			SSHHost: settings.DisplayHost,
			SSHPort: settings.SSHPort,
			Scores:  entries,
		}
		if err := page.Execute(w, data); err != nil {
			logger.Error("render page", "err", err)
		}
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/highscores", func(w http.ResponseWriter, req *http.Request) {
		entries, err := leaderboard(scores)
		if err != nil {
			logger.Error("failed to read high scores", "err", err)
			http.Error(w, "high scores unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			logger.Error("encode high scores", "err", err)
		}
	}).Methods(http.MethodGet)

	return r
}

func leaderboard(scores scoreSource) ([]store.Entry, error) {
	data, err := scores.All()
	if err != nil {
		return nil, err
	}
	entries := store.Leaderboard(data)
	if entries == nil {
		entries = []store.Entry{}
	}
	return entries, nil
}
