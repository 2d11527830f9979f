// README: Quote handler - prices a trip and renders the outreach message
// without persisting anything. Safe to call on every form keystroke.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabdesk/internal/modules/fare"
)

type QuoteHandler struct {
	fares *fare.Service
}

func NewQuoteHandler(fares *fare.Service) *QuoteHandler {
	return &QuoteHandler{fares: fares}
}

type quoteReq struct {
	TripType     fare.TripType     `json:"trip_type"`
	VehicleClass fare.VehicleClass `json:"vehicle_class"`
	Params       fare.TripParams   `json:"params"`
	Customer     struct {
		Name        string   `json:"name"`
		Pickup      string   `json:"pickup"`
		Drops       []string `json:"drops"`
		Destination string   `json:"destination"`
	} `json:"customer"`
}

type quoteResp struct {
	Items   []fare.LineItem `json:"items"`
	Total   float64         `json:"total"`
	Message string          `json:"message"`
}

func (h *QuoteHandler) Create(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.TripType == "" {
		writeError(c, http.StatusBadRequest, "trip_type is required")
		return
	}

	res, err := h.fares.Quote(c.Request.Context(), req.TripType, req.VehicleClass, req.Params)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	msg := fare.RenderMessage(req.TripType, req.VehicleClass, req.Params, res, fare.CustomerContext{
		Name:        req.Customer.Name,
		Pickup:      req.Customer.Pickup,
		Drops:       req.Customer.Drops,
		Destination: req.Customer.Destination,
	})
	c.JSON(http.StatusOK, quoteResp{Items: res.Items, Total: res.Total, Message: msg})
}
