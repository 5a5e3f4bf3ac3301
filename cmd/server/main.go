package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/wafadentalclinics/wafa-dental-clinic/internal"
	"github.com/wafadentalclinics/wafa-dental-clinic/internal/email"
	"github.com/wafadentalclinics/wafa-dental-clinic/internal/handler"
	"github.com/wafadentalclinics/wafa-dental-clinic/internal/middleware"
	"github.com/wafadentalclinics/wafa-dental-clinic/internal/receipt"
	"github.com/wafadentalclinics/wafa-dental-clinic/internal/router"
	"github.com/wafadentalclinics/wafa-dental-clinic/internal/service"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Select the mail transport
	var sender email.Sender
	switch cfg.Email.Provider {
	case "smtp":
		sender = email.NewSMTPSender(&email.SMTPConfig{
			Host:     cfg.Email.Host,
			Port:     int(cfg.Email.Port),
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
		}, logger)
	default:
		sender = email.NewResendSender(cfg.Email.ResendAPIKey)
	}
	logger.Info("Mail transport initialized", "provider", cfg.Email.Provider)

	dispatcher := email.NewDispatcher(sender, cfg.Email.From, cfg.Email.FromName, logger)

	// Initialize the receipt renderer
	renderer, err := receipt.NewRenderer(receipt.FileLogo(cfg.Booking.LogoPath), nil)
	if err != nil {
		return fmt.Errorf("failed to initialize receipt renderer: %w", err)
	}
	logger.Info("Receipt renderer initialized", "logo_path", cfg.Booking.LogoPath)

	// Initialize services
	confirmationService := service.NewConfirmationService(renderer, dispatcher, logger)
	proxyService := service.NewProxyService(cfg.Booking.WebAppURL, logger)
	if cfg.Booking.WebAppURL == "" {
		logger.Warn("WEB_APP_URL not set; /book-appointment will report a configuration error")
	}

	bookingHandler := handler.NewBookingHandler(confirmationService, proxyService, logger)

	// Initialize Prometheus metrics
	metrics := middleware.NewMetrics("wafadental")

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		middleware.Timeout(middleware.DefaultTimeout),
		router.CORS(cfg.CORSOrigins),
		router.Logger(logger),
		middleware.WithRequestLogger(logger),
	)

	// Metrics endpoint (protect via firewall in production)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Booking endpoints. The explicit OPTIONS routes let the CORS
	// middleware answer browser preflights for cross-origin form posts.
	r.Post("/send-confirmation", bookingHandler.SendConfirmation)
	r.Post("/book-appointment", bookingHandler.BookAppointment)
	for _, path := range []string{"/send-confirmation", "/book-appointment"} {
		r.Handle(http.MethodOptions, path, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {}))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting booking server", "address", addr, "env", cfg.Env)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
