package handlers

import (
	"context"
	"errors"
	"strconv"

	"machinehub/internal/adapters/persistence/models"
	"machinehub/internal/core/domain"
	"machinehub/internal/core/services"
	"machinehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookingHandler handles booking endpoints
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// CreateBookingRequest represents create booking request body
type CreateBookingRequest struct {
	MachineID uint   `json:"machine_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Remark    string `json:"remark"`
}

// CreateBooking handles creating a booking (Customer)
// @Summary Create booking
// @Description Book a machine for a date range
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateBookingRequest true "Booking data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.MachineID == 0 {
		return response.BadRequest(c, "Machine is required")
	}
	if req.StartDate == "" || req.EndDate == "" {
		return response.BadRequest(c, "Start and end dates are required")
	}

	input := &services.CreateBookingInput{
		MachineID: req.MachineID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Remark:    req.Remark,
	}

	booking, err := h.bookingService.CreateBooking(c.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDateFormat):
			return response.BadRequest(c, "Dates must be in "+domain.DateLayout+" format")
		case errors.Is(err, services.ErrInvalidDateRange):
			return response.BadRequest(c, "End date must not be before start date")
		case errors.Is(err, services.ErrMachineNotFound):
			return response.NotFound(c, "Machine not found")
		case errors.Is(err, services.ErrMachineInactive):
			return response.BadRequest(c, "Machine is not accepting bookings")
		case errors.Is(err, services.ErrDatesUnavailable):
			return response.Conflict(c, "Requested dates are not available")
		default:
			return response.InternalServerError(c, "Failed to create booking")
		}
	}

	return response.Created(c, "Booking created successfully", fiber.Map{
		"booking": booking,
	})
}

// GetBooking handles getting a booking by ID
// @Summary Get booking by ID
// @Description Get a booking visible to the current user
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid booking ID")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	isAdmin := c.Locals("role") == string(domain.RoleAdmin)

	booking, err := h.bookingService.GetBooking(c.Context(), uint(id), userID, isAdmin)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			return response.NotFound(c, "Booking not found")
		}
		return response.InternalServerError(c, "Failed to get booking")
	}

	return response.Success(c, "Booking retrieved successfully", fiber.Map{
		"booking": booking,
	})
}

// ListMyBookings handles listing the current customer's bookings
// @Summary List my bookings
// @Description Get the current user's bookings grouped by status
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /bookings/my [get]
func (h *BookingHandler) ListMyBookings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	result, err := h.bookingService.ListMyBookings(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list bookings")
	}

	return response.Success(c, "Bookings retrieved successfully", result)
}

// ListOwnerBookings handles listing bookings on the owner's machines
// @Summary List incoming bookings
// @Description Get bookings on the current owner's machines grouped by status
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /owner/bookings [get]
func (h *BookingHandler) ListOwnerBookings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	result, err := h.bookingService.ListOwnerBookings(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list bookings")
	}

	return response.Success(c, "Bookings retrieved successfully", result)
}

// CancelBooking handles cancelling a booking (Customer)
// @Summary Cancel booking
// @Description Cancel a pending or confirmed booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id}/cancel [put]
func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	return h.decide(c, h.bookingService.CancelBooking, "Booking cancelled successfully")
}

// ConfirmBooking handles confirming a booking (Owner)
// @Summary Confirm booking
// @Description Confirm a pending booking on one of your machines
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bookings/{id}/confirm [put]
func (h *BookingHandler) ConfirmBooking(c *fiber.Ctx) error {
	return h.decide(c, h.bookingService.ConfirmBooking, "Booking confirmed successfully")
}

// RejectBooking handles rejecting a booking (Owner)
// @Summary Reject booking
// @Description Reject a pending booking on one of your machines
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id}/reject [put]
func (h *BookingHandler) RejectBooking(c *fiber.Ctx) error {
	return h.decide(c, h.bookingService.RejectBooking, "Booking rejected successfully")
}

// decide shares the parse/authorize/error-mapping shape of the three
// status-change endpoints
func (h *BookingHandler) decide(
	c *fiber.Ctx,
	fn func(ctx context.Context, id uint, actorID uint, isAdmin bool) (*models.BookingResponse, error),
	message string,
) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid booking ID")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	isAdmin := c.Locals("role") == string(domain.RoleAdmin)

	booking, err := fn(c.Context(), uint(id), userID, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			return response.NotFound(c, "Booking not found")
		case errors.Is(err, services.ErrNotBookingOwner):
			return response.Forbidden(c, "Booking belongs to another customer")
		case errors.Is(err, services.ErrNotBookingRecipient):
			return response.Forbidden(c, "Booking is not on one of your machines")
		case errors.Is(err, services.ErrInvalidStatusChange):
			return response.BadRequest(c, "Booking status does not allow this change")
		case errors.Is(err, services.ErrDatesUnavailable):
			return response.Conflict(c, "Dates already taken by another booking")
		default:
			return response.InternalServerError(c, "Failed to update booking")
		}
	}

	return response.Success(c, message, fiber.Map{
		"booking": booking,
	})
}
