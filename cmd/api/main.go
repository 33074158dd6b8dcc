// cmd/api/main.go
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"bookshop/internal/api"
	"bookshop/internal/auth"
	"bookshop/internal/cart"
	"bookshop/internal/catalog"
	"bookshop/internal/config"
	"bookshop/internal/customer"
	"bookshop/internal/order"
	"bookshop/internal/schema"
	"bookshop/internal/telemetry"
	"bookshop/internal/token"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(".env")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to reach database")
	}

	if err := schema.Up(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	shutdownTracing, err := telemetry.Init(context.Background(), "bookshop", cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init tracing")
	}
	defer shutdownTracing(context.Background())

	tokenMaker := token.NewMaker(cfg.TokenKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	pages := api.PageLimits{Default: cfg.DefaultPageSize, Max: cfg.MaxPageSize}

	authHandler := auth.NewHandler(auth.NewService(auth.NewStore(db), tokenMaker), pages)
	customerHandler := customer.NewHandler(customer.NewService(customer.NewStore(db)), pages)
	catalogHandler := catalog.NewHandler(catalog.NewService(catalog.NewStore(db)), pages)
	cartHandler := cart.NewHandler(cart.NewService(cart.NewStore(db)))
	orderHandler := order.NewHandler(order.NewService(order.NewStore(db)), pages)

	r := newRouter(logger, tokenMaker, authHandler, customerHandler, catalogHandler, cartHandler, orderHandler)

	addr := ":" + cfg.ServerPort
	logger.Info().Str("addr", addr).Msg("bookshop API listening")
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func newRouter(
	logger zerolog.Logger,
	tokenMaker *token.Maker,
	authHandler *auth.Handler,
	customerHandler *customer.Handler,
	catalogHandler *catalog.Handler,
	cartHandler *cart.Handler,
	orderHandler *order.Handler,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(api.RequestID)
	r.Use(api.Logger(logger))
	r.Use(api.Recover(logger))
	r.Use(api.Authenticate(tokenMaker))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		api.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/refresh", authHandler.HandleRefresh)
		r.With(api.RequireUser).Get("/me", authHandler.HandleMe)
		r.With(api.RequireStaff).Get("/", authHandler.HandleList)
	})

	r.Route("/customers", func(r chi.Router) {
		r.Use(api.RequireUser)
		r.Post("/", customerHandler.HandleCreate)
		r.Get("/me", customerHandler.HandleMe)
		r.With(api.RequireStaff).Get("/", customerHandler.HandleList)
		r.Get("/{id}", customerHandler.HandleGet)
		r.Put("/{id}", customerHandler.HandleUpdate)
		r.Patch("/{id}", customerHandler.HandleUpdate)
		r.Delete("/{id}", customerHandler.HandleDelete)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", catalogHandler.HandleListCategories)
		r.Get("/{id}", catalogHandler.HandleGetCategory)
		r.With(api.RequireStaff).Post("/", catalogHandler.HandleCreateCategory)
		r.With(api.RequireStaff).Put("/{id}", catalogHandler.HandleUpdateCategory)
		r.With(api.RequireStaff).Patch("/{id}", catalogHandler.HandleUpdateCategory)
		r.With(api.RequireStaff).Delete("/{id}", catalogHandler.HandleDeleteCategory)
	})

	r.Route("/authors", func(r chi.Router) {
		r.Get("/", catalogHandler.HandleListAuthors)
		r.Get("/{id}", catalogHandler.HandleGetAuthor)
		r.With(api.RequireStaff).Post("/", catalogHandler.HandleCreateAuthor)
		r.With(api.RequireStaff).Put("/{id}", catalogHandler.HandleUpdateAuthor)
		r.With(api.RequireStaff).Patch("/{id}", catalogHandler.HandleUpdateAuthor)
		r.With(api.RequireStaff).Delete("/{id}", catalogHandler.HandleDeleteAuthor)
	})

	r.Route("/publications", func(r chi.Router) {
		r.Get("/", catalogHandler.HandleListPublications)
		r.Get("/{id}", catalogHandler.HandleGetPublication)
		r.With(api.RequireStaff).Post("/", catalogHandler.HandleCreatePublication)
		r.With(api.RequireStaff).Put("/{id}", catalogHandler.HandleUpdatePublication)
		r.With(api.RequireStaff).Patch("/{id}", catalogHandler.HandleUpdatePublication)
		r.With(api.RequireStaff).Delete("/{id}", catalogHandler.HandleDeletePublication)
	})

	r.Route("/books", func(r chi.Router) {
		r.Get("/", catalogHandler.HandleListBooks)
		r.Get("/{id}", catalogHandler.HandleGetBook)
		r.Get("/{id}/reviews", catalogHandler.HandleListReviews)
		// Reviews are open to any client, authenticated or not.
		r.Post("/{id}/reviews", catalogHandler.HandleCreateReview)
		r.With(api.RequireStaff).Post("/", catalogHandler.HandleCreateBook)
		r.With(api.RequireStaff).Post("/clear-stock", catalogHandler.HandleClearStock)
		r.With(api.RequireStaff).Put("/{id}", catalogHandler.HandleUpdateBook)
		r.With(api.RequireStaff).Patch("/{id}", catalogHandler.HandleUpdateBook)
		r.With(api.RequireStaff).Delete("/{id}", catalogHandler.HandleDeleteBook)
	})

	// Carts are anonymous: the client keeps the cart id.
	r.Route("/carts", func(r chi.Router) {
		r.Post("/", cartHandler.HandleCreate)
		r.Get("/{id}", cartHandler.HandleGet)
		r.Delete("/{id}", cartHandler.HandleDelete)
		r.Get("/{id}/items", cartHandler.HandleListItems)
		r.Post("/{id}/items", cartHandler.HandleAddItem)
		r.Patch("/{id}/items/{item_id}", cartHandler.HandleUpdateItem)
		r.Delete("/{id}/items/{item_id}", cartHandler.HandleRemoveItem)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Use(api.RequireUser)
		r.Post("/", orderHandler.HandlePlace)
		r.Get("/", orderHandler.HandleList)
		r.Get("/{id}", orderHandler.HandleGet)
		r.With(api.RequireStaff).Patch("/{id}", orderHandler.HandleUpdatePayment)
		r.With(api.RequireStaff).Delete("/{id}", orderHandler.HandleDelete)
	})

	return r
}
