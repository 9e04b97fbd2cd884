package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/shopit-labs/shopit-backend/internal/config"
	"github.com/shopit-labs/shopit-backend/internal/modules/catalog"
	"github.com/shopit-labs/shopit-backend/internal/modules/customer"
	"github.com/shopit-labs/shopit-backend/internal/modules/management"
	"github.com/shopit-labs/shopit-backend/internal/modules/owner"
	"github.com/shopit-labs/shopit-backend/internal/modules/store"
	"github.com/shopit-labs/shopit-backend/internal/platform/migrations"
)

func main() {
	// A missing .env is fine in deployed environments.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	if err := migrations.Apply(context.Background(), db); err != nil {
		log.Fatal(err)
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", owner.EmailHeader},
	}))

	tokens := owner.NewTokenIssuer(cfg.SessionSecret)

	// ── Store-owner accounts ────────────────────────────────
	accountRepo := owner.NewPostgresRepository(db)
	ownerService := owner.NewService(accountRepo, tokens)
	owner.NewHandler(ownerService, tokens).RegisterRoutes(router)

	// ── Public store locator ────────────────────────────────
	storeRepo := store.NewPostgresRepository(db)
	storeService := store.NewService(storeRepo)
	store.NewHandler(storeService).RegisterRoutes(router)

	// ── Store management ────────────────────────────────────
	productRepo := catalog.NewPostgresRepository(db)
	ownershipRepo := management.NewOwnershipPostgresRepository(db)
	inventoryRepo := management.NewInventoryPostgresRepository(db)
	managementService := management.NewService(ownershipRepo, inventoryRepo,
		storeRepo, accountRepo, productRepo)
	management.NewHandler(managementService, tokens).RegisterRoutes(router)

	// ── Customer identities ─────────────────────────────────
	customerRepo := customer.NewPostgresRepository(db)
	customerService := customer.NewService(customerRepo)
	customer.NewHandler(customerService).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	fmt.Printf("ShopIt API server starting on :%s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
