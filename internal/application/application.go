package application

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/kuntur-detector/case-service/internal/alarmsvc"
	"github.com/kuntur-detector/case-service/internal/config"
	"github.com/kuntur-detector/case-service/internal/handler"
	"github.com/kuntur-detector/case-service/internal/kafka"
	"github.com/kuntur-detector/case-service/internal/router"
	"github.com/kuntur-detector/case-service/internal/service"
	"github.com/kuntur-detector/case-service/internal/storage"
)

// NewStore builds the persistence adapter for the configured driver.
func NewStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverFile:
		return storage.NewFileStore(cfg.CasesFile), nil
	case config.StoreDriverRedis:
		return storage.NewRedisStore(cfg.RedisAddr, cfg.RedisKey), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// API is the HTTP server application (api mode).
type API struct {
	cfg      *config.Config
	httpSrv  *http.Server
	producer *kafka.Producer
}

// NewAPI wires the store, repository, producer and handlers.
func NewAPI(cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	store, err := NewStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	caseSvc := service.NewCaseService(store)
	if err := caseSvc.Init(context.Background()); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicCase)
	alarms := alarmsvc.NewClient(cfg.AlarmServiceURL)
	caseHandler := handler.NewCaseHandler(caseSvc, producer, alarms)

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.New(caseHandler),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{
		cfg:      cfg,
		httpSrv:  httpSrv,
		producer: producer,
	}, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	log.Printf("HTTP server listening on %s", a.httpSrv.Addr)
	log.Printf("  Docs:          %s/", base)
	log.Printf("  Swagger UI:    %s/swagger", base)
	log.Printf("  Healthcheck:   %s/healthcheck", base)
	log.Printf("  API:           %s/api/casos", base)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := a.producer.Close(); err != nil {
		log.Printf("kafka: close: %v", err)
	}
	return nil
}
