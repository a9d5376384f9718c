package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/amistack/amistack/internal/api"
	"github.com/amistack/amistack/internal/core"
	"github.com/amistack/amistack/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "sqlite"
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dbDir := os.Getenv("DB_DIR")
		if dbDir == "" {
			dbDir = "/var/lib/amistack"
		}
		if err := os.MkdirAll(dbDir, 0o755); err != nil {
			log.Printf("Warning: failed to create db directory: %v", err)
		}
		dsn = dbDir + "/amistack.db"
	}

	// Initialize Store
	st, err := store.NewStore(driver, dsn)
	if err != nil {
		log.Fatalf("failed to open DB: %v", err)
	}

	webhookSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if webhookSecret == "" {
		log.Println("Warning: STRIPE_WEBHOOK_SECRET not set; webhook endpoint will reject all events")
	}

	srv := api.NewServer(st, webhookSecret)

	// Start Background Scheduler
	go startScheduler(st)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = "127.0.0.1:9000"
	}
	log.Printf("AmiStack backend listening on %s\n", addr)
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func startScheduler(st *store.Store) {
	log.Println("Starting background scheduler...")

	// Catch up on scores immediately on startup
	go func() {
		log.Println("[Scheduler] Running initial lead rescore...")
		if err := core.RescoreAllContacts(st); err != nil {
			log.Printf("Rescore error: %v", err)
		}
	}()

	dailyTicker := time.NewTicker(24 * time.Hour)
	for range dailyTicker.C {
		log.Println("[Scheduler] Running daily lead rescore...")
		if err := core.RescoreAllContacts(st); err != nil {
			log.Printf("Rescore error: %v", err)
		}
	}
}
