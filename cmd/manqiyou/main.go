package main

import (
	"context"
	"log/slog"
	"sync"
	"syscall"

	evbus "github.com/vardius/message-bus"

	"github.com/manqiyou/manqiyou/internal"
	"github.com/manqiyou/manqiyou/internal/adapters"
	"github.com/manqiyou/manqiyou/internal/app"
	"github.com/manqiyou/manqiyou/internal/app/api/core"
	"github.com/manqiyou/manqiyou/internal/app/api/core/translator"
	"github.com/manqiyou/manqiyou/internal/app/api/v1/handlers"
	"github.com/manqiyou/manqiyou/internal/app/audit"
	"github.com/manqiyou/manqiyou/internal/app/auth"
	"github.com/manqiyou/manqiyou/internal/app/catalog"
	"github.com/manqiyou/manqiyou/internal/app/cms"
	"github.com/manqiyou/manqiyou/internal/app/orders"
	"github.com/manqiyou/manqiyou/internal/app/users"
	"github.com/manqiyou/manqiyou/internal/app/validation"
	"github.com/manqiyou/manqiyou/internal/config"
)

// main starts the manqiyou backend.
func main() {
	ctx := internal.SignalAwareContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.GetConfig()
	internal.AssertNoError(err)
	internal.SetupLogging(cfg.Advanced.LogLevel, cfg.Advanced.LogPretty, cfg.Advanced.LogJson)

	slog.Info("starting manqiyou backend", "version", internal.Version)
	cfg.LogStartupValues()

	rawDb, err := adapters.NewDatabase(cfg.Database)
	internal.AssertNoError(err)

	database, err := adapters.NewSqlRepository(rawDb)
	internal.AssertNoError(err)

	sqlDb, err := rawDb.DB()
	internal.AssertNoError(err)

	queueSize := 100
	eventBus := evbus.New(queueSize)

	var metricsServer *adapters.MetricsServer
	translatorOpts := []translator.Option{translator.WithLogger(internal.ComponentLogger("api"))}
	if cfg.Statistics.Enabled {
		metricsServer = adapters.NewMetricsServer(cfg)
		translatorOpts = append(translatorOpts, translator.WithObserver(func(class translator.Class, code int) {
			metricsServer.ObserveResponse(string(class), code)
		}))
	}

	var metricsRecorder audit.MetricsRecorder
	if metricsServer != nil {
		metricsRecorder = metricsServer
	}
	_, err = audit.NewAuditRecorder(eventBus, internal.ComponentLogger("audit"), metricsRecorder)
	internal.AssertNoError(err)

	catalogManager, err := catalog.NewCatalogManager(database, database)
	internal.AssertNoError(err)

	contentManager, err := cms.NewContentManager(database, database)
	internal.AssertNoError(err)

	userManager, err := users.NewUserManager(eventBus, database, database)
	internal.AssertNoError(err)

	orderManager, err := orders.NewOrderManager(eventBus, database, database)
	internal.AssertNoError(err)

	codeStore := adapters.NewMemoryCodeStore(cfg.Advanced.CodeTTL, cfg.Advanced.CodeSweepInterval)
	authenticator, err := auth.NewAuthenticator(cfg, eventBus, codeStore, database, database)
	internal.AssertNoError(err)

	backend, err := app.New(cfg, eventBus, contentManager, codeStore)
	internal.AssertNoError(err)
	internal.AssertNoError(backend.Startup(ctx))

	tr := translator.New(translatorOpts...)
	authMiddleware := handlers.NewAuthenticationHandler(tr, authenticator)
	validator := validation.New()

	endpoints := []handlers.Handler{handlers.NewHealthEndpoint(tr)}
	if cfg.ServiceEnabled("app") {
		endpoints = append(endpoints, handlers.NewCatalogEndpoint(tr, authMiddleware, validator, catalogManager))
	}
	if cfg.ServiceEnabled("cms") {
		endpoints = append(endpoints, handlers.NewContentEndpoint(tr, authMiddleware, validator, contentManager))
	}
	if cfg.ServiceEnabled("auth") {
		endpoints = append(endpoints, handlers.NewAuthEndpoint(tr, authMiddleware, validator, authenticator))
	}
	if cfg.ServiceEnabled("user") {
		endpoints = append(endpoints, handlers.NewUserEndpoint(tr, authMiddleware, validator, userManager))
	}
	if cfg.ServiceEnabled("order") {
		endpoints = append(endpoints, handlers.NewOrderEndpoint(tr, authMiddleware, validator, orderManager))
	}

	webSrv, err := core.NewServer(cfg, tr, handlers.NewRestApi(authMiddleware, endpoints...))
	internal.AssertNoError(err)

	wg := sync.WaitGroup{}
	if metricsServer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			metricsServer.Run(ctx)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		webSrv.Run(ctx, cfg.Web.ListeningAddress)
	}()

	slog.Info("application startup complete")

	// wait until context gets cancelled
	<-ctx.Done()

	slog.Info("stopping manqiyou backend")

	// the servers shut down gracefully once the context is cancelled
	wg.Wait()
	internal.LogClose(sqlDb)

	slog.Info("stopped manqiyou backend")
}
