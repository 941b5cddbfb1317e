package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"

	"nutribook/internal/api"
	"nutribook/internal/auth"
	"nutribook/internal/validation"
)

type Handler struct {
	service   Service
	validator *validation.Validator
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service, validator: validation.New()}
}

// Reserve godoc
// @Summary      Reserve appointment
// @Description  Creates a confirmed booking for an already captured payment.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      ReserveRequest  true  "Reservation"
// @Success      201      {object}  Booking
// @Failure      400      {object}  Error
// @Failure      403      {object}  Error
// @Failure      409      {object}  Error
// @Failure      429      {object}  api.ErrorResponse
// @Failure      500      {object}  Error
// @Router       /api/bookings [post]
func (h *Handler) Reserve(c *gin.Context) {
	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			e := validationError(h.typeErrorFields(req, typeErr))
			e.Err = err
			writeError(c, e)
			return
		}
		writeError(c, &Error{
			Kind:    KindValidation,
			Message: "Invalid request body",
			Fields:  []validation.FieldError{{Field: "body", Tag: "json", Message: err.Error()}},
			Err:     err,
		})
		return
	}

	if req.UserID != "" && !auth.CanActAs(c, req.UserID) {
		writeError(c, &Error{Kind: KindForbidden, Message: "You can only book appointments for yourself"})
		return
	}

	b, err := h.service.Reserve(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// typeErrorFields reports a mistyped field next to every other offending
// field. The decoder keeps going past a type mismatch, so the rest of req is
// populated and can still be validated.
func (h *Handler) typeErrorFields(req ReserveRequest, typeErr *json.UnmarshalTypeError) []validation.FieldError {
	fields := []validation.FieldError{{
		Field:   typeErr.Field,
		Tag:     "type",
		Message: typeErr.Field + " must be a " + jsonKind(typeErr.Type),
	}}
	for _, fe := range h.validator.Struct(req) {
		if fe.Field != typeErr.Field {
			fields = append(fields, fe)
		}
	}
	return fields
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int32, reflect.Int64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	default:
		return "valid value"
	}
}

// GetBooking godoc
// @Summary      Get booking
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      string  true  "Booking ID"
// @Success      200        {object}  Booking
// @Failure      400        {object}  Error
// @Failure      403        {object}  Error
// @Failure      404        {object}  Error
// @Router       /api/bookings/{bookingID} [get]
func (h *Handler) GetBooking(c *gin.Context) {
	b, err := h.service.GetByID(c.Request.Context(), actorOf(c), c.Param("bookingID"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// ListForUser godoc
// @Summary      List bookings of a user
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        userID  path      string  true   "User ID"
// @Param        status  query     string  false  "Status filter"  Enums(confirmed, cancelled, completed, no-show)
// @Param        sort    query     string  false  "Sort order"     Enums(createdAt, -createdAt, date, -date)
// @Success      200     {array}   Booking
// @Failure      400     {object}  Error
// @Failure      403     {object}  api.ErrorResponse
// @Router       /api/bookings/user/{userID} [get]
func (h *Handler) ListForUser(c *gin.Context) {
	userID := c.Param("userID")
	if !auth.CanActAs(c, userID) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only view your own bookings"})
		return
	}

	h.listForUser(c, userID)
}

// ListMine godoc
// @Summary      List my bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Status filter"
// @Param        sort    query     string  false  "Sort order"
// @Success      200     {array}   Booking
// @Failure      400     {object}  Error
// @Failure      401     {object}  api.ErrorResponse
// @Router       /api/bookings/me [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	h.listForUser(c, userID)
}

func (h *Handler) listForUser(c *gin.Context, userID string) {
	bookings, err := h.service.ListForUser(c.Request.Context(), userID, listOptionsOf(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ListForDietitian godoc
// @Summary      List bookings of a dietitian
// @Tags         dietitians
// @Security     BearerAuth
// @Produce      json
// @Param        dietitianID  path      string  true   "Dietitian ID"
// @Param        status       query     string  false  "Status filter"
// @Param        sort         query     string  false  "Sort order"
// @Success      200          {array}   Booking
// @Failure      400          {object}  Error
// @Failure      403          {object}  api.ErrorResponse
// @Router       /api/dietitians/{dietitianID}/bookings [get]
func (h *Handler) ListForDietitian(c *gin.Context) {
	dietitianID := c.Param("dietitianID")
	if !auth.CanActAs(c, dietitianID) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only view your own schedule"})
		return
	}

	bookings, err := h.service.ListForDietitian(c.Request.Context(), dietitianID, listOptionsOf(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// Availability godoc
// @Summary      Taken times of a dietitian day
// @Description  Returns booked and blocked times so the booking form can hide them.
// @Tags         dietitians
// @Security     BearerAuth
// @Produce      json
// @Param        dietitianID  path      string  true  "Dietitian ID"
// @Param        date         query     string  true  "Date (YYYY-MM-DD)"
// @Success      200          {object}  Availability
// @Failure      400          {object}  Error
// @Router       /api/dietitians/{dietitianID}/slots [get]
func (h *Handler) Availability(c *gin.Context) {
	a, err := h.service.Availability(c.Request.Context(), c.Param("dietitianID"), c.Query("date"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}

// Stats godoc
// @Summary      Daily booking counts of a dietitian
// @Tags         dietitians
// @Security     BearerAuth
// @Produce      json
// @Param        dietitianID  path      string  true  "Dietitian ID"
// @Param        from         query     string  true  "First day (YYYY-MM-DD)"
// @Param        to           query     string  true  "Last day (YYYY-MM-DD)"
// @Success      200          {array}   DayStats
// @Failure      400          {object}  Error
// @Failure      403          {object}  api.ErrorResponse
// @Router       /api/dietitians/{dietitianID}/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	dietitianID := c.Param("dietitianID")
	if !auth.CanActAs(c, dietitianID) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only view your own schedule"})
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), dietitianID, c.Query("from"), c.Query("to"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// UpdateStatus godoc
// @Summary      Change booking status
// @Description  Cancels, completes or marks a confirmed booking as a no-show.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        bookingID  path      string               true  "Booking ID"
// @Param        request    body      UpdateStatusRequest  true  "New status"
// @Success      200        {object}  Booking
// @Failure      400        {object}  Error
// @Failure      403        {object}  Error
// @Failure      404        {object}  Error
// @Router       /api/bookings/{bookingID}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fieldError("status", "required", "status is required"))
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), actorOf(c), c.Param("bookingID"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

func actorOf(c *gin.Context) Actor {
	id, _ := auth.GetUserID(c)
	return Actor{ID: id, Role: auth.GetRole(c)}
}

func listOptionsOf(c *gin.Context) ListOptions {
	return ListOptions{
		Status: Status(c.Query("status")),
		Sort:   c.Query("sort"),
	}
}

func writeError(c *gin.Context, err error) {
	var e *Error
	if errors.As(err, &e) {
		c.JSON(e.Kind.HTTPStatus(), e)
		return
	}
	c.JSON(http.StatusInternalServerError, internalError(err))
}
