package main

import (
	"context"
	"net/http"
	"time"

	"libraryapi/internal/config"
	"libraryapi/internal/httpx"
	"libraryapi/internal/library"
	"libraryapi/internal/member"

	"github.com/rs/zerolog"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type routerDeps struct {
	db       pinger
	books    *library.HTTPHandler
	members  *member.HTTPHandler
	cfg      config.Config
	log      zerolog.Logger
	shutdown context.Context
}

func newRouter(d routerDeps) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := d.db.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	d.books.RegisterRoutes(router)
	d.members.RegisterRoutes(router)

	limiter := httpx.NewRateLimitMiddleware(d.shutdown, d.cfg.RateLimitRPS, d.cfg.RateLimitBurst, d.cfg.TrustedProxies...)

	return httpx.Chain(router,
		httpx.RecoveryMiddleware(d.log),
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(d.log),
		httpx.SecurityHeadersMiddleware(d.cfg.EnableHSTS),
		httpx.CORSMiddleware(d.cfg.CORSAllowedOrigins),
		httpx.RequestSizeLimitMiddleware(d.cfg.MaxBodyBytes),
		limiter.Middleware,
	)
}
