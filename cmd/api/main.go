package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"guestgate/config"
	"guestgate/internal/adapters/email"
	"guestgate/internal/adapters/qr"
	"guestgate/internal/adapters/token"
	delivery "guestgate/internal/delivery/http"
	"guestgate/internal/delivery/http/controllers"
	"guestgate/internal/delivery/http/middleware"
	"guestgate/internal/repository/postgres"
	"guestgate/internal/services"
)

const serviceTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger(cfg)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	eventRepo := postgres.NewEventRepository(db)
	guestRepo := postgres.NewGuestRepository(db)

	mailer, err := email.NewMailer(cfg.Mail)
	if err != nil {
		log.Fatalf("create mailer: %v", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	eventService := services.NewEventService(eventRepo, serviceTimeout)
	guestService := services.NewGuestService(
		guestRepo,
		eventRepo,
		token.NewIssuer(),
		qr.NewEncoder(cfg.QRBaseURL),
		emailService,
		logger,
		serviceTimeout,
	)
	checkinService := services.NewCheckinService(guestRepo, serviceTimeout)

	mux := delivery.NewRouter(
		controllers.NewEventController(logger, eventService),
		controllers.NewGuestController(logger, guestService),
		controllers.NewCheckinController(logger, checkinService),
		controllers.NewHealthController(),
	)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORSOrigins, handler)
	handler = middleware.Logging(logger, handler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
