package wire

import (
	"net/http"

	"bus-booking/internal/adaptor"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/gateway"
	"bus-booking/internal/membership"
	"bus-booking/internal/notifier"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/middleware"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	swish := gateway.NewClient(config.Swish, logger)
	sender := notifier.NewEmailSender(config.Email, config.App.BaseURL, logger)
	members := membership.NewClient(config.Cardskipper, logger)

	service := usecase.NewService(repo, swish, sender, members, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the chi router
func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireBooking(r, handler.Booking)
	wireCallback(r, handler.Callback)
	wireCancellation(r, handler.Cancellation)
	wireEvent(r, handler.Event)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
