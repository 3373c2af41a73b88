package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/arslanrestlos/terminbuchung/internal/delivery/dto"
	"github.com/arslanrestlos/terminbuchung/internal/usecase"
	"github.com/arslanrestlos/terminbuchung/pkg/response"
	"github.com/arslanrestlos/terminbuchung/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	reservationUsecase usecase.ReservationUsecase
	validator          *validator.CustomValidator
}

func NewBookingHandler(reservationUsecase usecase.ReservationUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		reservationUsecase: reservationUsecase,
		validator:          validator,
	}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.reservationUsecase.CreateBooking(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			response.NotFound(w, "Appointment not found")
		case errors.Is(err, usecase.ErrAppointmentNotActive):
			response.Error(w, http.StatusConflict, "Appointment is not active", nil)
		case errors.Is(err, usecase.ErrCapacityExceeded):
			response.Error(w, http.StatusConflict, "Appointment is fully booked", nil)
		case errors.Is(err, usecase.ErrUserNotFound):
			response.Error(w, http.StatusBadRequest, "User not found", nil)
		case errors.Is(err, usecase.ErrTransientStore):
			response.ServiceUnavailable(w, "Temporary failure, please retry")
		default:
			response.InternalServerError(w, "Failed to create booking")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	// Reason is optional; an empty body is accepted.
	var req dto.CancelBookingRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.reservationUsecase.CancelBooking(r.Context(), bookingID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		case errors.Is(err, usecase.ErrBookingAlreadyCancelled):
			response.Error(w, http.StatusConflict, "Booking is already cancelled", nil)
		case errors.Is(err, usecase.ErrBookingNotCancellable):
			response.Error(w, http.StatusConflict, "Booking cannot be cancelled", nil)
		case errors.Is(err, usecase.ErrTransientStore):
			response.ServiceUnavailable(w, "Temporary failure, please retry")
		default:
			response.InternalServerError(w, "Failed to cancel booking")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking cancelled successfully", booking)
}

func (h *BookingHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	booking, err := h.reservationUsecase.MarkNoShow(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		case errors.Is(err, usecase.ErrBookingNotCancellable):
			response.Error(w, http.StatusConflict, "Booking is not confirmed", nil)
		default:
			response.InternalServerError(w, "Failed to mark booking as no-show")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking marked as no-show", booking)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	booking, err := h.reservationUsecase.GetBooking(r.Context(), bookingID)
	if err != nil {
		if errors.Is(err, usecase.ErrBookingNotFound) {
			response.NotFound(w, "Booking not found")
			return
		}
		response.InternalServerError(w, "Failed to get booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", booking)
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	filter := &dto.BookingFilterRequest{
		AppointmentID: r.URL.Query().Get("appointment_id"),
		Status:        r.URL.Query().Get("status"),
		Search:        r.URL.Query().Get("search"),
		Limit:         queryInt(r, "limit", 20),
		Offset:        queryInt(r, "offset", 0),
	}

	bookings, err := h.reservationUsecase.ListBookings(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	availability, err := h.reservationUsecase.GetAvailableSlots(r.Context(), appointmentID)
	if err != nil {
		if errors.Is(err, usecase.ErrAppointmentNotFound) {
			response.NotFound(w, "Appointment not found")
			return
		}
		response.InternalServerError(w, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}

// queryInt parses an integer query parameter with a fallback.
func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
