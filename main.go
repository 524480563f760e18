package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fiber-mongo-storefront/configs"
	"fiber-mongo-storefront/routes"
	"fiber-mongo-storefront/services"
	"fiber-mongo-storefront/store"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	cfg := configs.Load()

	client, err := configs.ConnectDB(context.Background(), cfg.MongoURI)
	if err != nil {
		log.Fatalf("connect to MongoDB: %v", err)
	}
	db := client.Database(cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := configs.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("create indexes: %v", err)
	}
	cancel()

	if err := os.MkdirAll(cfg.ImageDir(), 0o755); err != nil {
		log.Fatalf("create image dir: %v", err)
	}

	catalog := services.NewCatalogService(store.NewProductStore(configs.GetCollection(db, configs.ProductsCollection)))
	carts := services.NewCartService(store.NewCartStore(configs.GetCollection(db, configs.CartCollection)))
	orders := services.NewOrderService(store.NewOrderStore(configs.GetCollection(db, configs.OrdersCollection)), catalog, carts)
	users := services.NewUserService(store.NewUserStore(configs.GetCollection(db, configs.UsersCollection)), cfg.AdminEmails)

	app := routes.NewApp(cfg, routes.Services{
		Users:   users,
		Catalog: catalog,
		Carts:   carts,
		Orders:  orders,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Errorf("server forced to shutdown: %v", err)
	}

	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Errorf("disconnect MongoDB: %v", err)
	}

	log.Info("Server exiting")
}
