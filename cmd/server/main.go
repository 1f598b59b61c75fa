package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/enmanuellle/lemahotelreservas/internal/config"
	"github.com/enmanuellle/lemahotelreservas/internal/database"
	"github.com/enmanuellle/lemahotelreservas/internal/handler"
	"github.com/enmanuellle/lemahotelreservas/internal/queue"
	"github.com/enmanuellle/lemahotelreservas/internal/repository"
	"github.com/enmanuellle/lemahotelreservas/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	rdb := config.NewRedisClient()

	rates := repository.NewRateRepo(db)
	users := repository.NewUserRepo(db)
	clients := repository.NewClientRepo(db)
	roomTypes := repository.NewRoomTypeRepo(db)
	rooms := repository.NewRoomRepo(db)
	plans := repository.NewPlanRepo(db)
	products := repository.NewProductRepo(db)
	reservations := repository.NewReservationRepo(db)
	sales := repository.NewSaleRepo(db)

	h := router.Handlers{
		Auth:  &handler.AuthHandler{Users: users, Cfg: cfg},
		Users: &handler.UserHandler{Users: users, Cfg: cfg},
		Rates: &handler.RateHandler{Rates: rates},
		Catalog: &handler.CatalogHandler{
			RoomTypes: roomTypes,
			Plans:     plans,
			Products:  products,
			Rates:     rates,
		},
		Rooms:   &handler.RoomHandler{Rooms: rooms, RoomTypes: roomTypes},
		Clients: &handler.ClientHandler{Clients: clients},
		Reservations: &handler.ReservationHandler{
			Reservations: reservations,
			Rooms:        rooms,
			Clients:      clients,
			Users:        users,
			Rates:        rates,
		},
		Sales: &handler.SaleHandler{
			Sales:   sales,
			Clients: clients,
			Users:   users,
			Rates:   rates,
			Catalog: repository.CatalogSource{Products: products, Plans: plans},
		},
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.Register(e, cfg, rdb, h)

	go func() {
		if err := queue.StartOperationsConsumer(); err != nil {
			log.Printf("operations consumer stopped: %v", err)
		}
	}()

	log.Fatal(e.Start(":" + cfg.Port))
}
