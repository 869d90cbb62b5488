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

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/MuriellekPINSO/qualiwo-go/internal/stub"
)

type Config struct {
	HTTPPort        string
	RedisAddr       string // empty means in-memory store
	CheckoutBaseURL string
	KitchenInterval time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8090"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		CheckoutBaseURL: getEnv("CHECKOUT_BASE_URL", "http://localhost:8090"),
		KitchenInterval: getEnvDuration("KITCHEN_INTERVAL", 20*time.Second),
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()

	var store stub.OrderStore
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("redis unreachable at %s: %v", cfg.RedisAddr, err)
		}
		store = stub.NewRedisStore(client)
		log.Printf("using redis order store at %s", cfg.RedisAddr)
	} else {
		store = stub.NewMemoryStore()
		log.Println("using in-memory order store")
	}

	server := stub.NewServer(store, stub.RandomStatus{}, cfg.CheckoutBaseURL)

	kitchenCtx, stopKitchen := context.WithCancel(context.Background())
	defer stopKitchen()
	go stub.NewKitchen(store, cfg.KitchenInterval).Run(kitchenCtx)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      server.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("stub backend starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
