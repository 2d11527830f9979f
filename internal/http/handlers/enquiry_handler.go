// README: Enquiry handlers - create/list/get bookings and drive status
// transitions.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cabdesk/internal/http/middleware"
	"cabdesk/internal/modules/booking"
	"cabdesk/internal/modules/fare"
	"cabdesk/internal/types"
)

type EnquiryHandler struct {
	bookings *booking.Service
}

func NewEnquiryHandler(svc *booking.Service) *EnquiryHandler {
	return &EnquiryHandler{bookings: svc}
}

type createEnquiryReq struct {
	CustomerName  string            `json:"customer_name"`
	CustomerPhone string            `json:"customer_phone"`
	TripType      fare.TripType     `json:"trip_type"`
	VehicleClass  fare.VehicleClass `json:"vehicle_class"`
	Pickup        booking.Stop      `json:"pickup"`
	Drops         []booking.Stop    `json:"drops"`
	Destination   booking.Stop      `json:"destination"`
	Params        fare.TripParams   `json:"params"`
}

type bookingResp struct {
	ID            types.ID          `json:"id"`
	CustomerName  string            `json:"customer_name"`
	CustomerPhone string            `json:"customer_phone,omitempty"`
	TripType      fare.TripType     `json:"trip_type"`
	VehicleClass  fare.VehicleClass `json:"vehicle_class,omitempty"`
	Pickup        booking.Stop      `json:"pickup"`
	Drops         []booking.Stop    `json:"drops,omitempty"`
	Destination   booking.Stop      `json:"destination"`
	Params        fare.TripParams   `json:"params"`
	Fare          fare.Result       `json:"fare"`
	Message       string            `json:"message"`
	Status        booking.Status    `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
}

func toBookingResp(b *booking.Booking) bookingResp {
	return bookingResp{
		ID:            b.ID,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		TripType:      b.TripType,
		VehicleClass:  b.VehicleClass,
		Pickup:        b.Pickup,
		Drops:         b.Drops,
		Destination:   b.Destination,
		Params:        b.Params,
		Fare:          b.Fare,
		Message:       b.Message,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
	}
}

func (h *EnquiryHandler) Create(c *gin.Context) {
	var req createEnquiryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	b, err := h.bookings.Create(c.Request.Context(), booking.CreateCommand{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		TripType:      req.TripType,
		VehicleClass:  req.VehicleClass,
		Pickup:        req.Pickup,
		Drops:         req.Drops,
		Destination:   req.Destination,
		Params:        req.Params,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResp(b))
}

func (h *EnquiryHandler) Get(c *gin.Context) {
	b, err := h.bookings.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResp(b))
}

func (h *EnquiryHandler) List(c *gin.Context) {
	status := booking.Status(c.Query("status"))
	list, err := h.bookings.List(c.Request.Context(), status, 0)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	out := make([]bookingResp, 0, len(list))
	for _, b := range list {
		out = append(out, toBookingResp(b))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

func (h *EnquiryHandler) Confirm(c *gin.Context) {
	h.transition(c, h.bookings.Confirm)
}

func (h *EnquiryHandler) Complete(c *gin.Context) {
	h.transition(c, h.bookings.Complete)
}

func (h *EnquiryHandler) Cancel(c *gin.Context) {
	h.transition(c, h.bookings.Cancel)
}

type transitionReq struct {
	Reason string `json:"reason"`
}

func (h *EnquiryHandler) transition(c *gin.Context, fn func(ctx context.Context, cmd booking.TransitionCommand) error) {
	var req transitionReq
	_ = c.ShouldBindJSON(&req) // body is optional

	err := fn(c.Request.Context(), booking.TransitionCommand{
		BookingID: types.ID(c.Param("id")),
		Actor:     middleware.UID(c),
		Reason:    req.Reason,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	b, err := h.bookings.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": b.ID, "status": b.Status})
}
