package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/foliokit/backend/internal/config"
	"github.com/foliokit/backend/internal/delivery"
	"github.com/foliokit/backend/internal/handler"
	"github.com/foliokit/backend/internal/logging"
	"github.com/foliokit/backend/internal/ratelimit"
	"github.com/foliokit/backend/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	// Rate-limit store: process memory by default; Redis when an address is
	// configured, so the limit holds across replicas.
	var store ratelimit.Store
	if cfg.RateLimitRedisAddr != "" {
		rs := ratelimit.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RateLimitRedisAddr}))
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rs.Ping(pingCtx); err != nil {
			slog.Warn("rate limit redis unreachable at startup", "addr", cfg.RateLimitRedisAddr, "error", err)
		}
		cancel()
		store = rs
	} else {
		store = ratelimit.NewMemoryStore()
	}
	limiter := ratelimit.New(store, cfg.RateLimitMaxRequests, cfg.RateLimitWindow, cfg.RateLimitSweepInterval)
	limiter.Start()

	sender, mode, configured := buildSender(cfg)
	if !configured {
		slog.Warn("contact delivery is not configured; submissions will fail closed", "strategy", mode)
	}

	contactService := service.NewContactService(sender, service.Limits{
		MessageMin: cfg.MessageMinLength,
		MessageMax: cfg.MessageMaxLength,
	})

	h := handler.New(cfg.SiteOrigin, mode, configured)
	contactHandler := handler.NewContactHandler(contactService, cfg.TrustedProxyCount)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.Handle("POST /api/contact",
		handler.RateLimit(limiter, cfg.TrustedProxyCount)(http.HandlerFunc(contactHandler.Submit)))
	if cfg.WebDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.WebDir)))
	}

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handler.SecurityHeaders(handler.RequestLogger(h.CORS(mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "delivery", mode)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	limiter.Stop()
}

// buildSender picks the delivery strategy once at startup. An explicit
// CONTACT_DELIVERY wins; otherwise a forms access key selects the forms
// relay and SMTP is the fallback. The chosen strategy fails closed per
// request if its credentials are missing.
func buildSender(cfg *config.Config) (sender delivery.Sender, mode string, configured bool) {
	strategy := cfg.ContactDelivery
	if strategy == "" {
		if cfg.FormsAccessKey != "" {
			strategy = "forms"
		} else {
			strategy = "smtp"
		}
	}

	switch strategy {
	case "forms":
		return delivery.NewFormsSender(delivery.FormsConfig{
			Endpoint:  cfg.FormsEndpoint,
			AccessKey: cfg.FormsAccessKey,
		}), "forms", cfg.FormsAccessKey != ""
	default:
		return delivery.NewSMTPSender(delivery.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.EmailUser,
			Pass: cfg.EmailPass,
			To:   cfg.ContactRecipient,
		}), "smtp", cfg.EmailUser != "" && cfg.EmailPass != ""
	}
}
