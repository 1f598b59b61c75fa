// Package router wires middleware and handlers onto the echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/enmanuellle/lemahotelreservas/internal/config"
	"github.com/enmanuellle/lemahotelreservas/internal/handler"
	"github.com/enmanuellle/lemahotelreservas/internal/middleware"
	"github.com/enmanuellle/lemahotelreservas/internal/model"
)

// Handlers collects the constructed handlers the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Rates        *handler.RateHandler
	Catalog      *handler.CatalogHandler
	Rooms        *handler.RoomHandler
	Clients      *handler.ClientHandler
	Reservations *handler.ReservationHandler
	Sales        *handler.SaleHandler
}

// Register mounts all routes.  Public endpoints sit behind the rate
// limiter and the response cache; everything under /api except login and
// the current-rate lookup requires a staff token, and ledger maintenance
// is admin-only.
func Register(e *echo.Echo, cfg config.Config, rdb *redis.Client, h Handlers) {
	rl := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)
	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)

	e.GET("/healthz", handler.Health, rl)

	api := e.Group("/api")
	api.POST("/auth/login", h.Auth.Login, rl)
	// The desk needs the current rate before anyone logs in.
	api.GET("/rates/current", h.Rates.Current, rl, cache)

	auth := api.Group("", middleware.JWTAuth(cfg.JWTSecret))
	auth.GET("/me", h.Auth.Me)

	auth.GET("/clients", h.Clients.List)
	auth.POST("/clients", h.Clients.Create)
	auth.GET("/clients/:id", h.Clients.Get)
	auth.PUT("/clients/:id", h.Clients.Update)

	auth.GET("/room-types", h.Catalog.ListRoomTypes, cache)
	auth.GET("/rooms", h.Rooms.List)
	auth.GET("/rooms/:id", h.Rooms.Get)
	auth.GET("/plans", h.Catalog.ListPlans, cache)
	auth.GET("/products", h.Catalog.ListProducts, cache)

	auth.GET("/reservations", h.Reservations.List)
	auth.POST("/reservations", h.Reservations.Create)
	auth.GET("/reservations/:id", h.Reservations.Get)
	auth.PUT("/reservations/:id", h.Reservations.Update)
	auth.POST("/reservations/:id/cancel", h.Reservations.Cancel)

	auth.GET("/sales", h.Sales.List)
	auth.POST("/sales", h.Sales.Create)
	auth.GET("/sales/:id", h.Sales.Get)
	auth.PUT("/sales/:id", h.Sales.Update)

	// Catalog writes are for managers and admins; receptionists only read.
	manage := auth.Group("", middleware.RequireRole(model.RoleAdmin, model.RoleManager))
	manage.POST("/room-types", h.Catalog.CreateRoomType)
	manage.PUT("/room-types/:id", h.Catalog.UpdateRoomType)
	manage.POST("/rooms", h.Rooms.Create)
	manage.PUT("/rooms/:id", h.Rooms.Update)
	manage.POST("/plans", h.Catalog.CreatePlan)
	manage.PUT("/plans/:id", h.Catalog.UpdatePlan)
	manage.POST("/products", h.Catalog.CreateProduct)
	manage.PUT("/products/:id", h.Catalog.UpdateProduct)

	// Ledger maintenance can move every Bs price in the system.
	admin := auth.Group("", middleware.RequireRole(model.RoleAdmin))
	admin.POST("/users", h.Users.Create)
	admin.GET("/rates", h.Rates.List)
	admin.POST("/rates", h.Rates.Register)
	admin.POST("/rates/reprice", h.Rates.Reprice)
}
