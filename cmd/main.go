package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nexushub/agency-api/internal/ai"
	"github.com/nexushub/agency-api/internal/analytics"
	"github.com/nexushub/agency-api/internal/auth"
	"github.com/nexushub/agency-api/internal/client"
	"github.com/nexushub/agency-api/internal/config"
	"github.com/nexushub/agency-api/internal/contract"
	"github.com/nexushub/agency-api/internal/db"
	"github.com/nexushub/agency-api/internal/integration"
	"github.com/nexushub/agency-api/internal/logging"
	"github.com/nexushub/agency-api/internal/notification"
	"github.com/nexushub/agency-api/internal/post"
	"github.com/nexushub/agency-api/internal/product"
	"github.com/nexushub/agency-api/internal/settings"
	"github.com/nexushub/agency-api/internal/vault"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)
	defer logger.Sync()

	if err := auth.Configure(cfg.JWTSecret, cfg.AccessTTL); err != nil {
		logger.Fatal("auth config", zap.Error(err))
	}

	database, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.AutoMigrate(
		&client.Client{},
		&auth.Profile{},
		&auth.RefreshToken{},
		&post.BlogPost{},
		&integration.Integration{},
		&product.Product{},
		&product.GlobalProduct{},
		&contract.Contract{},
		&vault.Item{},
		&analytics.VisitStats{},
		&settings.AgencySettings{},
	); err != nil {
		logger.Fatal("automigrate", zap.Error(err))
	}

	notifier := notification.NewGateway(
		notification.NewEmailChannel(notification.EmailConfig{
			APIURL: cfg.EmailAPIURL,
			APIKey: cfg.EmailAPIKey,
			From:   cfg.EmailFrom,
		}),
		notification.NewWhatsAppChannel(notification.WhatsAppConfig{
			APIURL:   cfg.WhatsAppAPIURL,
			APIKey:   cfg.WhatsAppAPIKey,
			Instance: cfg.WhatsAppInstance,
		}),
		logger,
	)

	if cfg.SeedDemoData {
		if err := client.Seed(database, logger); err != nil {
			logger.Fatal("demo seed", zap.Error(err))
		}
	}

	// Handlers
	clientHandler := client.NewHandler(database, notifier, logger, cfg.RefreshTTL)
	authHandler := auth.NewHandler(database, cfg.RefreshTTL)
	postHandler := post.NewHandler(database)
	integrationHandler := integration.NewHandler(database)
	productHandler := product.NewHandler(database)
	contractHandler := contract.NewHandler(database)
	vaultHandler := vault.NewHandler(database)
	settingsHandler := settings.NewHandler(database)
	analyticsHandler := analytics.NewHandler(database, clientHandler.Repository.Exists)
	aiHandler := ai.NewHandler(ai.NewClient(ai.Config{
		BaseURL: cfg.AIBaseURL,
		APIKey:  cfg.AIAPIKey,
		Model:   cfg.AIModel,
	}), logger)

	// Router
	r := mux.NewRouter()
	r.Use(logging.Middleware(logger))

	// Public auth routes
	r.HandleFunc("/auth/login", clientHandler.Login).Methods("POST")
	r.HandleFunc("/auth/refresh", authHandler.Refresh).Methods("POST")
	r.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")

	// Visit beacon pinged by the client sites, no session required
	r.HandleFunc("/track/{id}", analyticsHandler.Track).Methods("POST")

	// Authenticated routes
	api := r.NewRoute().Subrouter()
	api.Use(auth.Middleware)

	api.HandleFunc("/auth/session", clientHandler.Session).Methods("GET")
	api.HandleFunc("/portal/me", clientHandler.Me).Methods("GET")

	// Portal + dashboard collection routes
	api.HandleFunc("/clients/{id}/posts", postHandler.Create).Methods("POST")
	api.HandleFunc("/clients/{id}/posts", postHandler.ListByClient).Methods("GET")
	api.HandleFunc("/posts/{id}", postHandler.Update).Methods("PUT")
	api.HandleFunc("/posts/{id}", postHandler.Delete).Methods("DELETE")
	api.HandleFunc("/posts/{id}/publish", postHandler.Publish).Methods("POST")

	api.HandleFunc("/clients/{id}/integrations", integrationHandler.Create).Methods("POST")
	api.HandleFunc("/clients/{id}/integrations", integrationHandler.ListByClient).Methods("GET")
	api.HandleFunc("/integrations/{id}/status", integrationHandler.UpdateStatus).Methods("PUT")
	api.HandleFunc("/integrations/{id}", integrationHandler.Delete).Methods("DELETE")

	api.HandleFunc("/clients/{id}/vault", vaultHandler.Create).Methods("POST")
	api.HandleFunc("/clients/{id}/vault", vaultHandler.ListByClient).Methods("GET")
	api.HandleFunc("/vault/{id}", vaultHandler.Delete).Methods("DELETE")

	api.HandleFunc("/ai/outline", aiHandler.Outline).Methods("POST")
	api.HandleFunc("/ai/draft", aiHandler.Draft).Methods("POST")

	// Admin routes
	admin := api.NewRoute().Subrouter()
	admin.Use(auth.RequireAdmin)

	admin.HandleFunc("/clients", clientHandler.Create).Methods("POST")
	admin.HandleFunc("/clients", clientHandler.List).Methods("GET")
	admin.HandleFunc("/clients/{id}", clientHandler.Get).Methods("GET")
	admin.HandleFunc("/clients/{id}", clientHandler.Update).Methods("PATCH")
	admin.HandleFunc("/clients/{id}", clientHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/clients/{id}/products", clientHandler.ReplaceProducts).Methods("PUT")
	admin.HandleFunc("/clients/{id}/contracts", clientHandler.ReplaceContracts).Methods("PUT")

	admin.HandleFunc("/clients/{id}/contracts", contractHandler.ListByClient).Methods("GET")
	admin.HandleFunc("/clients/{id}/contracts", contractHandler.Create).Methods("POST")
	admin.HandleFunc("/contracts/{id}", contractHandler.Update).Methods("PUT")
	admin.HandleFunc("/contracts/{id}", contractHandler.Delete).Methods("DELETE")

	admin.HandleFunc("/products", productHandler.CreateGlobal).Methods("POST")
	admin.HandleFunc("/products", productHandler.ListGlobal).Methods("GET")
	admin.HandleFunc("/products/{id}", productHandler.UpdateGlobal).Methods("PUT")
	admin.HandleFunc("/products/{id}", productHandler.DeleteGlobal).Methods("DELETE")

	admin.HandleFunc("/settings", settingsHandler.Get).Methods("GET")
	admin.HandleFunc("/settings", settingsHandler.Update).Methods("PUT")

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      corsHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", zap.Int("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
