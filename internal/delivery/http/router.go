package http

import (
	"net/http"

	"github.com/arslanrestlos/terminbuchung/internal/delivery/http/handler"
	"github.com/arslanrestlos/terminbuchung/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	appointmentHandler *handler.AppointmentHandler
	bookingHandler     *handler.BookingHandler
	dashboardHandler   *handler.DashboardHandler
	userHandler        *handler.UserHandler
	corsMiddleware     *middleware.CORSMiddleware
	loggingMiddleware  *middleware.LoggingMiddleware
}

func NewRouter(
	appointmentHandler *handler.AppointmentHandler,
	bookingHandler *handler.BookingHandler,
	dashboardHandler *handler.DashboardHandler,
	userHandler *handler.UserHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		appointmentHandler: appointmentHandler,
		bookingHandler:     bookingHandler,
		dashboardHandler:   dashboardHandler,
		userHandler:        userHandler,
		corsMiddleware:     corsMiddleware,
		loggingMiddleware:  loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public browsing and booking routes
	api.HandleFunc("/appointments", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}/availability", r.bookingHandler.GetAvailability).Methods(http.MethodGet)

	api.HandleFunc("/bookings", r.bookingHandler.CreateBooking).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}", r.bookingHandler.GetBooking).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/cancel", r.bookingHandler.CancelBooking).Methods(http.MethodPost)

	api.HandleFunc("/users", r.userHandler.CreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}", r.userHandler.GetUser).Methods(http.MethodGet)

	// Admin routes (authentication handled by an external gateway)
	admin := api.PathPrefix("/admin").Subrouter()

	admin.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/{id}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPut)
	admin.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/{id}/complete", r.appointmentHandler.CompleteAppointment).Methods(http.MethodPost)

	admin.HandleFunc("/bookings", r.bookingHandler.ListBookings).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/no-show", r.bookingHandler.MarkNoShow).Methods(http.MethodPost)

	admin.HandleFunc("/dashboard/stats", r.dashboardHandler.GetStats).Methods(http.MethodGet)

	// Middleware
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.loggingMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
