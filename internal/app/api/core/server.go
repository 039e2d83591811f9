package core

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-pkgz/routegroup"

	"github.com/manqiyou/manqiyou/internal"
	"github.com/manqiyou/manqiyou/internal/app/api/core/middleware/cors"
	"github.com/manqiyou/manqiyou/internal/app/api/core/middleware/logging"
	"github.com/manqiyou/manqiyou/internal/app/api/core/middleware/recovery"
	"github.com/manqiyou/manqiyou/internal/app/api/core/middleware/tracing"
	"github.com/manqiyou/manqiyou/internal/app/api/core/translator"
	"github.com/manqiyou/manqiyou/internal/config"
)

const (
	RequestIDKey = "X-Request-ID"
	shutdownWait = 5 * time.Second
)

type ApiVersion string

type GroupSetupFn func(group *routegroup.Bundle)

type ApiEndpointSetupFunc func() (ApiVersion, GroupSetupFn)

// Server is the public HTTP server. Every response it writes, including panics and
// unknown routes, is an envelope.
type Server struct {
	cfg      *config.Config
	server   *routegroup.Bundle
	tr       *translator.Translator
	versions map[ApiVersion]*routegroup.Bundle
}

func NewServer(cfg *config.Config, tr *translator.Translator, endpoints ...ApiEndpointSetupFunc) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		server: routegroup.New(http.NewServeMux()),
		tr:     tr,
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "apiserver"
	}
	hostname += ", version " + internal.Version

	s.server.Use(recovery.New(
		recovery.WithLogger(internal.ComponentLogger("recovery")),
		recovery.WithErrCallback(tr.RecoveryCallback()),
	).Handler)
	s.server.Use(tracing.New(
		tracing.WithUpstreamHeader(RequestIDKey),
		tracing.WithHeaderIdentifier(RequestIDKey),
	).Handler)
	if cfg.Web.RequestLogging {
		s.server.Use(logging.New(
			logging.WithLogger(internal.ComponentLogger("http")),
			logging.WithLevel(slog.LevelDebug),
			logging.WithContextRequestIdKey(tracing.ContextKey),
			logging.WithSkipPaths("/api/v1/health"),
		).Handler)
	}
	s.server.Use(cors.New(
		cors.WithAllowedOrigins(cfg.Web.CorsOrigins...),
	).Handler)
	if cfg.Web.ExposeHostInfo {
		s.server.Use(func(handler http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Served-By", hostname)
				handler.ServeHTTP(w, r)
			})
		})
	}

	s.server.Use(tr.MethodNotAllowed)

	s.setupRoutes(endpoints...)

	return s, nil
}

// ServeHTTP makes the server usable with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.ServeHTTP(w, r)
}

func (s *Server) Run(ctx context.Context, listenAddress string) {
	// Run web service
	srv := &http.Server{
		Addr:              listenAddress,
		Handler:           s.server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvContext, cancelFn := context.WithCancel(ctx)
	go func() {
		var err error
		slog.Debug("starting server", "certFile", s.cfg.Web.CertFile, "keyFile", s.cfg.Web.KeyFile)
		if s.cfg.Web.CertFile != "" && s.cfg.Web.KeyFile != "" {
			err = srv.ListenAndServeTLS(s.cfg.Web.CertFile, s.cfg.Web.KeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil {
			slog.Info("web service exited", "address", listenAddress, "error", err)
			cancelFn()
		}
	}()
	slog.Info("started web service", "address", listenAddress)

	// Wait for the main context to end
	<-srvContext.Done()

	slog.Debug("web service shutting down", "grace", shutdownWait)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	slog.Debug("web service shut down")
}

func (s *Server) setupRoutes(endpoints ...ApiEndpointSetupFunc) {
	s.versions = make(map[ApiVersion]*routegroup.Bundle)

	for _, setupFunc := range endpoints {
		version, groupSetupFn := setupFunc()

		if _, ok := s.versions[version]; !ok {
			s.versions[version] = s.server.Mount(fmt.Sprintf("/api/%s", version))
			groupSetupFn(s.versions[version])
		}
	}

	// everything else, including unknown api routes, gets an enveloped 404
	s.server.NotFoundHandler(s.tr.NotFoundHandler())
}
