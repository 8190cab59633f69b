// Package main is the entry point for the Interview Session Service.
// @title Interview Session Service API
// @version 1.0
// @description Session lifecycle, phase sequencing, agent registry and metrics roll-up for automated interviews
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/interviewly/interview-service
// @contact.email support@interviewly.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token authentication (service key)
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/interviewly/interview-service/docs"
	"github.com/interviewly/interview-service/internal/api/handlers"
	"github.com/interviewly/interview-service/internal/api/middleware"
	"github.com/interviewly/interview-service/internal/api/routes"
	"github.com/interviewly/interview-service/internal/config"
	"github.com/interviewly/interview-service/internal/core/agent"
	"github.com/interviewly/interview-service/internal/core/cache"
	"github.com/interviewly/interview-service/internal/core/docdb"
	"github.com/interviewly/interview-service/internal/core/metrics"
	"github.com/interviewly/interview-service/internal/core/phase"
	"github.com/interviewly/interview-service/internal/core/session"
	rediscache "github.com/interviewly/interview-service/internal/infrastructure/cache/redis"
	"github.com/interviewly/interview-service/internal/infrastructure/docdb/mongodb"
	"github.com/interviewly/interview-service/internal/pkg/encryption"
	"github.com/interviewly/interview-service/internal/services/pipeline"
	"github.com/interviewly/interview-service/internal/services/turncache"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogging(cfg.Log)

	ctx := context.Background()

	cacheClient, err := createCacheClient(cfg.Cache)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize cache client")
	}
	defer cacheClient.Close()

	docDBClient, err := createDocDBClient(ctx, cfg.DocDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize document db client")
	}
	defer docDBClient.Close(ctx)

	if err := docDBClient.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure indexes")
	}

	encryptor, err := createEncryptor(cfg.Auth)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize encryptor")
	}

	turnCache, err := turncache.NewService(&turncache.Config{
		CacheClient: cacheClient,
		Encryptor:   encryptor,
		TTL:         cfg.Cache.TTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize turn cache service")
	}

	// Wire the managers bottom-up: session first, the rest on top of it.
	sessionMgr := session.NewManager(docDBClient.Sessions())
	phaseMgr := phase.NewManager(sessionMgr)
	agentMgr := agent.NewManager(sessionMgr)
	metricsMgr := metrics.NewManager(sessionMgr)
	interviewPipeline := pipeline.NewInterviewPipeline(sessionMgr, turnCache)

	gin.SetMode(cfg.Server.GinMode)

	router := setupRouter(cfg, cacheClient, docDBClient, sessionMgr, phaseMgr, agentMgr, metricsMgr, interviewPipeline)

	srv := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: router,
	}

	go func() {
		log.Info().Str("address", cfg.Server.Address()).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// setupLogging configures the global zerolog logger.
func setupLogging(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// createCacheClient creates a cache client based on the configuration.
func createCacheClient(cfg config.CacheConfig) (cache.Client, error) {
	cacheType := cache.Type(cfg.Type)

	switch cacheType {
	case cache.TypeRedis:
		return rediscache.NewCache(rediscache.Config{
			Host:       cfg.Host,
			Port:       cfg.Port,
			Password:   cfg.Password,
			DB:         cfg.DB,
			DefaultTTL: cfg.TTL,
		})
	default:
		log.Fatal().Str("type", cfg.Type).Msg("unsupported cache type")
		return nil, nil
	}
}

// createDocDBClient creates a document database client based on the
// configuration.
func createDocDBClient(ctx context.Context, cfg config.DocDBConfig) (docdb.Client, error) {
	docDBType := docdb.Type(cfg.Type)

	switch docDBType {
	case docdb.TypeMongoDB:
		return mongodb.NewClient(ctx, &mongodb.ClientConfig{
			URI:          cfg.URI,
			DatabaseName: cfg.Database,
		})
	case docdb.TypeCosmosDB:
		// CosmosDB speaks the MongoDB protocol, same client applies.
		return mongodb.NewClient(ctx, &mongodb.ClientConfig{
			URI:          cfg.URI,
			DatabaseName: cfg.Database,
		})
	default:
		log.Fatal().Str("type", cfg.Type).Msg("unsupported docdb type")
		return nil, nil
	}
}

// createEncryptor creates the turn cache encryptor based on the
// configuration.
func createEncryptor(cfg config.AuthConfig) (encryption.Encryptor, error) {
	if cfg.EncryptionKey == "" {
		log.Warn().Msg("SECRETS_ENCRYPTION_KEY not set, using NoOp encryptor")
		return encryption.NewNoOpEncryptor(), nil
	}
	return encryption.NewAESEncryptor(cfg.EncryptionKey)
}

// setupRouter creates and configures the Gin router.
func setupRouter(
	cfg *config.Config,
	cacheClient cache.Client,
	docDBClient docdb.Client,
	sessionMgr *session.Manager,
	phaseMgr *phase.Manager,
	agentMgr *agent.Manager,
	metricsMgr *metrics.Manager,
	interviewPipeline *pipeline.InterviewPipeline,
) *gin.Engine {
	router := gin.New()

	loggingMw := middleware.NewLoggingMiddleware()
	errorMw := middleware.NewErrorMiddleware()
	authMw := middleware.NewAuthMiddleware(cfg.Auth.ServiceKey)

	routesCfg := &routes.Config{
		HealthHandler:     handlers.NewHealthHandler(cacheClient, docDBClient),
		SessionsHandler:   handlers.NewSessionsHandler(sessionMgr),
		PhasesHandler:     handlers.NewPhasesHandler(phaseMgr),
		AgentsHandler:     handlers.NewAgentsHandler(agentMgr),
		MetricsHandler:    handlers.NewMetricsHandler(metricsMgr),
		InterviewsHandler: handlers.NewInterviewsHandler(interviewPipeline),
		AuthMiddleware:    authMw,
	}

	routes.SetupWithMiddleware(router, routesCfg, loggingMw, errorMw)

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation endpoint
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
