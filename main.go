package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"menu-svc/config"
	httpapi "menu-svc/internal/api/http"
	"menu-svc/internal/service"
	"menu-svc/internal/storage"
)

func main() {
	cfg := config.Load()

	var repo service.ItemRepository
	switch cfg.Storage {
	case "postgres":
		db := config.MustInitPostgres()
		defer db.Close()
		pg := storage.NewPostgresRepository(db)
		if err := pg.EnsureSchema(context.Background()); err != nil {
			log.Fatal("Failed to ensure schema:", err)
		}
		repo = pg
	default:
		repo = storage.NewMemoryRepository()
	}

	var cache service.MenuCache
	if cfg.RedisHost != "" {
		cache = storage.NewRedisMenuCache(config.MustInitRedis(), time.Minute)
	}

	var publisher service.EventPublisher
	if cfg.KafkaBroker != "" {
		publisher = storage.NewKafkaPublisher(config.NewKafkaWriter("menu.events"))
	}

	menu := service.NewMenuService(repo, cache, publisher, service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL})
	handler := httpapi.NewHandler(menu, cfg.APIToken)
	router := httpapi.NewRouter(handler, cfg.AllowedOrigins)

	log.Printf("[menu-svc] starting on port %s (storage=%s)", cfg.Port, cfg.Storage)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
