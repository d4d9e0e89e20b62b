package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	handler "github.com/adi3433/DS-project/internal/adapters/handler/http"
	"github.com/adi3433/DS-project/internal/adapters/repository/postgres"
	"github.com/adi3433/DS-project/internal/core/services"
)

const (
	defaultTallyCapacity = 50
	defaultIndexBuckets  = 10000
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	pepper := os.Getenv("IDENTITY_PEPPER")
	if pepper == "" {
		log.Fatal("IDENTITY_PEPPER is required")
	}
	undoEnabled, _ := strconv.ParseBool(os.Getenv("UNDO_ENABLED"))

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	store := postgres.NewStore(db)
	catalog := postgres.NewCandidateCatalog(db)

	state := services.NewElectionState(defaultTallyCapacity, defaultIndexBuckets)
	ctx := context.Background()
	if err := state.LoadCatalog(ctx, catalog); err != nil {
		log.Fatal(err)
	}

	credentialSvc := services.NewCredentialService(state, store, services.NewHMACCipher([]byte(pepper)))
	electionSvc := services.NewElectionService(state, store, credentialSvc, undoEnabled)
	resultsSvc := services.NewResultsService(state, store, undoEnabled)
	auditSvc := services.NewAuditService(state)

	// Projections are derived state; recompute them from the ledger before
	// accepting traffic.
	if err := electionSvc.Rebuild(ctx); err != nil {
		log.Fatalf("failed to rebuild projections: %v", err)
	}

	electionHandler := handler.NewElectionHandler(electionSvc, resultsSvc)
	adminHandler := handler.NewAdminHandler(credentialSvc, electionSvc, auditSvc)
	router := handler.NewHandler(electionHandler, adminHandler, []byte(jwtSecret))

	server := &stdhttp.Server{Addr: "0.0.0.0:8080", Handler: router}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("listening on %s (undo enabled: %v)", server.Addr, undoEnabled)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-runCtx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func dbConnString() string {
	dbName, user, password, host, port := dbConfig()
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}

func dbConfig() (dbName string, user string, password string, host string, port string) {
	dbName = os.Getenv("POSTGRES_DB")
	user = os.Getenv("POSTGRES_USER")
	password = os.Getenv("POSTGRES_PASSWORD")
	host = os.Getenv("POSTGRES_HOST")
	port = os.Getenv("POSTGRES_PORT")
	return
}
