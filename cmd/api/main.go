package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mominahmadrao/SmartResturantSystem/internal/analytics"
	"github.com/mominahmadrao/SmartResturantSystem/internal/auth"
	"github.com/mominahmadrao/SmartResturantSystem/internal/config"
	"github.com/mominahmadrao/SmartResturantSystem/internal/menu"
	"github.com/mominahmadrao/SmartResturantSystem/internal/notify"
	"github.com/mominahmadrao/SmartResturantSystem/internal/order"
	"github.com/mominahmadrao/SmartResturantSystem/internal/rider"
	"github.com/mominahmadrao/SmartResturantSystem/internal/validation"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		cancel()
		log.Fatalf("connect postgres: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		cancel()
		log.Fatalf("ping postgres: %v", err)
	}
	cancel()
	defer pool.Close()
	log.Printf("[api] connected to postgres")

	var events order.EventSink
	var pub *notify.Publisher
	if cfg.AMQPURL != "" {
		pub, err = notify.Dial(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("connect rabbitmq: %v", err)
		}
		defer pub.Close()
		events = pub
		log.Printf("[api] connected to rabbitmq")
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	menuRepo := menu.NewPGRepo(pool)
	engine := order.NewEngine(order.NewPGRepo(pool), menuRepo, events)

	r := newRouter(deps{
		users:    auth.NewPGRepo(pool),
		tokens:   tokens,
		menu:     menuRepo,
		engine:   engine,
		riders:   rider.NewPGRepo(pool),
		reports:  analytics.NewPGRepo(pool),
		validate: validation.New(),
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Printf("[api] listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("[api] shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[api] shutdown: %v", err)
	}
}
