package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"guestgate/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	eventController *controllers.EventController,
	guestController *controllers.GuestController,
	checkinController *controllers.CheckinController,
	healthController *controllers.HealthController,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("POST /events", eventController.CreateEvent)
	mux.HandleFunc("GET /events", eventController.ListEvents)

	// Guests
	mux.HandleFunc("POST /guests", guestController.CreateGuest)
	mux.HandleFunc("POST /guests/import", guestController.ImportGuests)
	mux.HandleFunc("GET /guests", guestController.ListGuests)
	mux.HandleFunc("POST /guests/{guestID}/resend", guestController.ResendPass)
	mux.HandleFunc("GET /guests/qr/{file}", guestController.PassPNG)

	// Gate
	mux.HandleFunc("POST /checkin", checkinController.Checkin)

	// Health
	mux.HandleFunc("GET /health/ping", healthController.Ping)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
