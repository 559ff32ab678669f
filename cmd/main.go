package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Patrickdwa/PatrickBooks/configs"
	"github.com/Patrickdwa/PatrickBooks/internal/audit"
	"github.com/Patrickdwa/PatrickBooks/internal/daemon"
	"github.com/Patrickdwa/PatrickBooks/internal/db"
	"github.com/Patrickdwa/PatrickBooks/internal/handlers"
	"github.com/Patrickdwa/PatrickBooks/internal/library"
	"github.com/Patrickdwa/PatrickBooks/internal/middleware"
	"github.com/Patrickdwa/PatrickBooks/internal/models"
	"github.com/Patrickdwa/PatrickBooks/internal/session"
	"github.com/Patrickdwa/PatrickBooks/internal/store"
)

func main() {
	cfg := configs.LoadConfig()

	st, err := store.Open(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("Database service unavailable: %v", err)
	}
	defer st.Close()

	// The log store is best-effort: without it the service runs with a
	// nop recorder and the dashboard shows zero log entries.
	var recorder audit.Recorder = audit.NopRecorder{}
	reader := &audit.Reader{}
	if cfg.MongoURI != "" {
		client, err := db.Connect(cfg.MongoURI)
		if err != nil {
			slog.Error("log store unreachable, activity logging disabled", "error", err)
		} else {
			defer client.Disconnect(context.Background())
			coll := db.GetCollection(client, cfg.MongoDBName, "activities")
			recorder = &audit.MongoRecorder{Collection: coll}
			reader = &audit.Reader{Collection: coll}
		}
	} else {
		slog.Warn("MONGO_URI not set, activity logging disabled")
	}

	sessions := session.NewManager([]byte(cfg.SessionKey))
	svc := &library.Service{Store: st, Audit: recorder}

	actionHandler := handlers.NewActionHandler(svc, sessions)
	dashboardHandler := &handlers.DashboardHandler{Store: st, Logs: reader, Sessions: sessions}

	r := mux.NewRouter()
	r.Use(middleware.SecurityHeaders, middleware.Metrics)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	})
	r.Handle("/metrics", promhttp.Handler())

	r.HandleFunc("/actions", actionHandler.HandleAction).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.JSONMiddleware)
	api.HandleFunc("/books", dashboardHandler.GetBooks).Methods("GET")
	api.HandleFunc("/members", dashboardHandler.GetMembers).Methods("GET")
	api.HandleFunc("/loans", dashboardHandler.GetLoans).Methods("GET")
	api.HandleFunc("/logs", dashboardHandler.GetLogs).Methods("GET")
	api.HandleFunc("/stats", dashboardHandler.GetStats).Methods("GET")
	api.HandleFunc("/session", dashboardHandler.GetSession).Methods("GET")
	api.HandleFunc("/toast", dashboardHandler.GetToast).Methods("GET")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exporter := &daemon.LogExporter{
		Reader:   reader,
		Interval: 30 * time.Second,
		Export: func(entries []models.ActivityLog) {
			for _, e := range entries {
				slog.Info("activity", "action", e.Action, "description", e.Description, "ip", e.UserIP, "at", e.Timestamp)
			}
		},
	}
	go exporter.Run(ctx)

	server := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Println("Server starting on port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	log.Println("Shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}
	log.Println("Server shut down.")
}
