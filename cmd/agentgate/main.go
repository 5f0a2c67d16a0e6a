// Command agentgate runs the signature-verification gateway: it fronts an
// API and an APP upstream, requiring a valid HTTP message signature on
// every request under the gated path prefix before forwarding it on
// unmodified.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/shopsentry/agentgate/config"
	"github.com/shopsentry/agentgate/gateway"
	"github.com/shopsentry/agentgate/keyregistry"
	"github.com/shopsentry/agentgate/mux"
	"github.com/shopsentry/agentgate/muxhandlers"
	"github.com/shopsentry/agentgate/proxy"
	"github.com/shopsentry/agentgate/replayguard"
)

func main() {
	logger := log.New(os.Stderr, "agentgate: ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("loading configuration: %v", err)
	}

	router, err := proxy.NewRouter(proxy.Config{
		APIUpstreamURL: cfg.APIUpstreamURL,
		APPUpstreamURL: cfg.APPUpstreamURL,
		Logger:         logger,
	})
	if err != nil {
		logger.Fatalf("constructing upstream router: %v", err)
	}

	keys := keyregistry.NewClient(keyregistry.Config{
		RegistryURL: cfg.RegistryURL,
		CacheTTL:    cfg.CacheTTL,
	})

	guard := replayguard.NewGuard(cfg.NonceTTL)
	defer guard.Stop()

	gate := gateway.NewGate(gateway.Config{
		KeyRegistry: keys,
		ReplayGuard: guard,
		Upstream:    router,
		ClockSkew:   cfg.ClockSkew,
		Logger:      logger,
	})

	handler, err := buildHandler(gate, cfg, logger)
	if err != nil {
		logger.Fatalf("building middleware chain: %v", err)
	}

	srv := &http.Server{
		Addr:        addr(cfg.ListenPort),
		Handler:     handler,
		ReadTimeout: cfg.RequestTimeout,
	}

	run(srv, logger)
}

// buildHandler wraps gate in the ambient middleware chain: panic recovery
// outermost, then request ID, proxy header trust, security headers,
// request size limit, and a per-request timeout innermost.
func buildHandler(gate http.Handler, cfg config.Config, logger *log.Logger) (http.Handler, error) {
	r := mux.NewRouter()
	// The product-id route is registered first so it wins the match for
	// the common "/product/{id}" case, giving gate a parsed id for
	// logging; the gate's own route policy (gatedPrefix) remains the sole
	// authority on whether a path is gated, so any other path shape under
	// /product/ still falls through to the catch-all below and is gated
	// all the same.
	r.PathPrefix("/product/{id:int}").Handler(gate)
	r.PathPrefix("/").Handler(gate)

	recovery := muxhandlers.RecoveryMiddleware(muxhandlers.RecoveryConfig{
		LogFunc: func(req *http.Request, recovered any) {
			logger.Printf("panic recovered: method=%s path=%s value=%v", req.Method, req.URL.Path, recovered)
		},
	})

	requestID := muxhandlers.RequestIDMiddleware(muxhandlers.RequestIDConfig{})

	proxyHeaders, err := muxhandlers.ProxyHeadersMiddleware(muxhandlers.ProxyHeadersConfig{
		TrustedProxies: cfg.TrustedProxies,
	})
	if err != nil {
		return nil, err
	}

	securityHeaders, err := muxhandlers.SecurityHeadersMiddleware(muxhandlers.SecurityHeadersConfig{})
	if err != nil {
		return nil, err
	}

	sizeLimit, err := muxhandlers.RequestSizeLimitMiddleware(muxhandlers.RequestSizeLimitConfig{
		MaxBytes: 1 << 20,
	})
	if err != nil {
		return nil, err
	}

	timeout, err := muxhandlers.TimeoutMiddleware(muxhandlers.TimeoutConfig{
		Duration: cfg.RequestTimeout,
	})
	if err != nil {
		return nil, err
	}

	r.Use(recovery, requestID, proxyHeaders, securityHeaders, sizeLimit, timeout)

	return r, nil
}

// run starts srv and blocks until SIGINT or SIGTERM, then drains
// in-flight requests before returning.
func run(srv *http.Server, logger *log.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)

	go func() {
		logger.Printf("listening on %s", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	case <-ctx.Done():
		stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Fatalf("graceful shutdown failed: %v", err)
		}
	}
}

func addr(port int) string {
	return ":" + strconv.Itoa(port)
}
