package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"erigateway/internal/admin"
	"erigateway/internal/audit"
	authadapters "erigateway/internal/auth/adapters"
	authhandler "erigateway/internal/auth/handler"
	authservice "erigateway/internal/auth/service"
	sessionstore "erigateway/internal/auth/store"
	"erigateway/internal/envelope"
	filinghandler "erigateway/internal/filing/handler"
	"erigateway/internal/filing/models"
	filingservice "erigateway/internal/filing/service"
	filingstore "erigateway/internal/filing/store"
	"erigateway/internal/health"
	"erigateway/internal/platform/config"
	"erigateway/internal/platform/httpserver"
	"erigateway/internal/platform/logger"
	"erigateway/internal/platform/metrics"
	"erigateway/internal/platform/tracer"
	httptransport "erigateway/internal/transport/http"
)

// main wires dependencies, serves the router and shuts down on SIGINT or
// SIGTERM. Business logic lives in the internal service packages.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.Environment, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer := tracer.Init(ctx, cfg.Tracing, log)
	m := metrics.New()

	auditStore := audit.NewInMemoryStore(cfg.AuditCapacity)
	auditPublisher := audit.NewPublisher(auditStore, log)
	codec := envelope.NewCodec(envelope.LengthVerifier{MinLength: cfg.Protocol.MinSignatureLength})

	authSvc := authservice.New(sessionstore.New(),
		authservice.Config{
			TestClientID: cfg.Protocol.TestClientID,
			SessionTTL:   cfg.Protocol.SessionTTL,
		},
		authservice.WithLogger(log),
		authservice.WithAuditPublisher(auditPublisher),
		authservice.WithMetrics(m),
	)

	filingSvc := filingservice.New(
		filingservice.Stores{
			Clients:     filingstore.NewRegistry[models.ClientMapping]("client"),
			Validations: filingstore.NewRegistry[models.Validation]("validation"),
			Drafts:      filingstore.NewRegistry[models.Draft]("draft"),
			Submissions: filingstore.NewRegistry[models.Submission]("submission"),
		},
		filingservice.Config{PortalBaseURL: cfg.Protocol.PortalBaseURL},
		filingservice.WithLogger(log),
		filingservice.WithAuditPublisher(auditPublisher),
		filingservice.WithMetrics(m),
	)

	router := httptransport.NewRouter(log, m,
		health.New(authSvc, filingSvc, httptransport.ProtocolEndpoints, health.TestCredentials{
			ClientID:     cfg.Protocol.TestClientID,
			ClientSecret: "test_secret_123",
			EriUserID:    "test_user",
			EriPassword:  "test_pass",
		}, log),
		authhandler.New(authSvc, codec, log),
		filinghandler.New(filingSvc, codec, authadapters.NewSessionValidator(authSvc), log),
		admin.New(auditStore, cfg.AdminToken, log),
	)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting eri gateway",
			"addr", cfg.Addr,
			"environment", cfg.Environment,
			"test_client_id", cfg.Protocol.TestClientID,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return shutdownTracer(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

