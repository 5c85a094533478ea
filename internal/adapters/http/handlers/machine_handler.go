package handlers

import (
	"errors"
	"strconv"

	"machinehub/internal/core/domain"
	"machinehub/internal/core/services"
	"machinehub/internal/pkg/pagination"
	"machinehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MachineHandler handles machine catalog endpoints
type MachineHandler struct {
	machineService *services.MachineService
	bookingService *services.BookingService
}

// NewMachineHandler creates a new machine handler
func NewMachineHandler(machineService *services.MachineService, bookingService *services.BookingService) *MachineHandler {
	return &MachineHandler{
		machineService: machineService,
		bookingService: bookingService,
	}
}

// ListCategories handles listing machinery categories
// @Summary List categories
// @Description Get all machinery categories
// @Tags Machines
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /categories [get]
func (h *MachineHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.machineService.ListCategories(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list categories")
	}

	return response.Success(c, "Categories retrieved successfully", fiber.Map{
		"categories": categories,
	})
}

// ListMachines handles listing machines with filters
// @Summary List machines
// @Description Get a paginated list of machines
// @Tags Machines
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param category_id query int false "Filter by category"
// @Param location query string false "Filter by location substring"
// @Success 200 {object} response.Response
// @Router /machines [get]
func (h *MachineHandler) ListMachines(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	categoryID, _ := strconv.ParseUint(c.Query("category_id", "0"), 10, 32)

	input := &services.ListMachinesInput{
		CategoryID: uint(categoryID),
		Location:   c.Query("location"),
		ActiveOnly: true,
	}

	machines, total, err := h.machineService.ListMachines(c.Context(), input, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list machines")
	}

	return response.Success(c, "Machines retrieved successfully",
		pagination.NewResponse(machines, params, total))
}

// GetMachine handles getting a machine by ID
// @Summary Get machine by ID
// @Description Get a specific machine listing
// @Tags Machines
// @Accept json
// @Produce json
// @Param id path int true "Machine ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /machines/{id} [get]
func (h *MachineHandler) GetMachine(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid machine ID")
	}

	machine, err := h.machineService.GetMachine(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrMachineNotFound) {
			return response.NotFound(c, "Machine not found")
		}
		return response.InternalServerError(c, "Failed to get machine")
	}

	return response.Success(c, "Machine retrieved successfully", fiber.Map{
		"machine": machine,
	})
}

// GetAvailability handles the blocked-dates query for a machine
// @Summary Get machine availability
// @Description Get blocked dates for a machine in a date window
// @Tags Machines
// @Accept json
// @Produce json
// @Param id path int true "Machine ID"
// @Param from query string true "Window start (YYYY-MM-DD)"
// @Param to query string true "Window end (YYYY-MM-DD)"
// @Param include_pending query bool false "Treat pending bookings as blocking" default(false)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /machines/{id}/availability [get]
func (h *MachineHandler) GetAvailability(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid machine ID")
	}

	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		return response.BadRequest(c, "from and to query parameters are required")
	}

	includePending := c.QueryBool("include_pending", false)

	result, err := h.bookingService.GetAvailability(c.Context(), uint(id), from, to, includePending)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDateFormat):
			return response.BadRequest(c, "Dates must be in "+domain.DateLayout+" format")
		case errors.Is(err, services.ErrInvalidDateRange):
			return response.BadRequest(c, "to must not be before from")
		case errors.Is(err, services.ErrMachineNotFound):
			return response.NotFound(c, "Machine not found")
		default:
			return response.InternalServerError(c, "Failed to get availability")
		}
	}

	return response.Success(c, "Availability retrieved successfully", result)
}

// CreateMachineRequest represents create machine request body
type CreateMachineRequest struct {
	CategoryID  uint    `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DailyRate   float64 `json:"daily_rate"`
	Location    string  `json:"location"`
}

// CreateMachine handles creating a machine listing (Owner)
// @Summary Create machine
// @Description List a new machine for rent (Owner or Admin)
// @Tags Machines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateMachineRequest true "Machine data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /machines [post]
func (h *MachineHandler) CreateMachine(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CreateMachineRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}
	if req.CategoryID == 0 {
		return response.BadRequest(c, "Category is required")
	}
	if req.DailyRate <= 0 {
		return response.BadRequest(c, "Daily rate must be positive")
	}

	input := &services.CreateMachineInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		DailyRate:   req.DailyRate,
		Location:    req.Location,
	}

	machine, err := h.machineService.CreateMachine(c.Context(), userID, input)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			return response.BadRequest(c, "Category not found")
		}
		return response.InternalServerError(c, "Failed to create machine")
	}

	return response.Created(c, "Machine created successfully", fiber.Map{
		"machine": machine,
	})
}

// UpdateMachineRequest represents update machine request body
type UpdateMachineRequest struct {
	CategoryID  *uint    `json:"category_id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	DailyRate   *float64 `json:"daily_rate"`
	Location    *string  `json:"location"`
	IsActive    *bool    `json:"is_active"`
}

// UpdateMachine handles updating a machine (Owner of the machine or Admin)
// @Summary Update machine
// @Description Update a machine listing
// @Tags Machines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Machine ID"
// @Param body body UpdateMachineRequest true "Update data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /machines/{id} [put]
func (h *MachineHandler) UpdateMachine(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid machine ID")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	isAdmin := c.Locals("role") == string(domain.RoleAdmin)

	var req UpdateMachineRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateMachineInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		DailyRate:   req.DailyRate,
		Location:    req.Location,
		IsActive:    req.IsActive,
	}

	machine, err := h.machineService.UpdateMachine(c.Context(), uint(id), userID, isAdmin, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMachineNotFound):
			return response.NotFound(c, "Machine not found")
		case errors.Is(err, services.ErrNotMachineOwner):
			return response.Forbidden(c, "Machine belongs to another owner")
		case errors.Is(err, services.ErrCategoryNotFound):
			return response.BadRequest(c, "Category not found")
		default:
			return response.InternalServerError(c, "Failed to update machine")
		}
	}

	return response.Success(c, "Machine updated successfully", fiber.Map{
		"machine": machine,
	})
}

// DeleteMachine handles deleting a machine (Owner of the machine or Admin)
// @Summary Delete machine
// @Description Soft delete a machine listing
// @Tags Machines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Machine ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /machines/{id} [delete]
func (h *MachineHandler) DeleteMachine(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid machine ID")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	isAdmin := c.Locals("role") == string(domain.RoleAdmin)

	if err := h.machineService.DeleteMachine(c.Context(), uint(id), userID, isAdmin); err != nil {
		switch {
		case errors.Is(err, services.ErrMachineNotFound):
			return response.NotFound(c, "Machine not found")
		case errors.Is(err, services.ErrNotMachineOwner):
			return response.Forbidden(c, "Machine belongs to another owner")
		default:
			return response.InternalServerError(c, "Failed to delete machine")
		}
	}

	return response.Success(c, "Machine deleted successfully", nil)
}

// ListOwnMachines handles listing the current owner's machines
// @Summary List own machines
// @Description Get all machines belonging to the current owner
// @Tags Machines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /owner/machines [get]
func (h *MachineHandler) ListOwnMachines(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	machines, err := h.machineService.ListOwnMachines(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list machines")
	}

	return response.Success(c, "Machines retrieved successfully", fiber.Map{
		"machines": machines,
	})
}
