package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/snackshop/internal/domain/errors"
	"github.com/polkiloo/snackshop/internal/domain/model"
	"github.com/polkiloo/snackshop/internal/domain/repository"
	"github.com/polkiloo/snackshop/internal/server/http/dto"
	"github.com/polkiloo/snackshop/internal/usecase"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, dto.OrderLineResponse{
			ItemID:    l.ItemID,
			ItemName:  l.ItemName,
			Quantity:  l.Quantity,
			Price:     l.Price,
			LineTotal: l.LineTotal,
		})
	}
	return dto.OrderResponse{
		ID:            o.ID,
		Number:        o.Number,
		CustomerID:    o.CustomerID,
		CustomerName:  o.CustomerName,
		Lines:         lines,
		TotalAmount:   o.TotalAmount,
		Discount:      dto.DiscountPayload{Amount: o.Discount.Amount, Percentage: o.Discount.Percentage, Reason: o.Discount.Reason},
		Tax:           dto.TaxPayload{Amount: o.Tax.Amount, Percentage: o.Tax.Percentage},
		PaymentMethod: string(o.PaymentMethod),
		PaymentStatus: string(o.PaymentStatus),
		Status:        string(o.Status),
		RefundAmount:  o.RefundAmount,
		Notes:         o.Notes,
		Location:      dto.LocationPayload{Room: o.Location.Room, Hostel: o.Location.Hostel, Building: o.Location.Building},
		CancelReason:  o.CancelReason,
		CreatedAt:     o.CreatedAt,
		CompletedAt:   o.CompletedAt,
		CancelledAt:   o.CancelledAt,
	}
}

func orderIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid order id"})
		return 0, false
	}
	return id, true
}

// Place handles POST /api/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid payload"})
		return
	}

	lines := make([]repository.RequestedLine, 0, len(req.Items))
	for _, l := range req.Items {
		lines = append(lines, repository.RequestedLine{ItemID: l.ItemID, Quantity: l.Quantity})
	}

	userID := CurrentUserID(c)
	place := usecase.PlaceRequest{
		CustomerID:    userID,
		Lines:         lines,
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
		Discount:      model.Discount{Amount: req.Discount.Amount, Percentage: req.Discount.Percentage, Reason: req.Discount.Reason},
		Tax:           model.Tax{Amount: req.Tax.Amount, Percentage: req.Tax.Percentage},
		Notes:         req.Notes,
		Location:      model.Location{Room: req.Location.Room, Hostel: req.Location.Hostel, Building: req.Location.Building},
	}
	if IsAdmin(c) {
		place.CreatedBy = userID
		if req.CustomerID > 0 {
			// Counter sales: an admin checks out on a customer's behalf.
			place.CustomerID = req.CustomerID
		}
	} else {
		// Customers cannot grant themselves discounts or order for others.
		place.Discount = model.Discount{}
		place.Tax = model.Tax{}
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), place)
	if err != nil {
		var stockErr *domainErrors.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			c.JSON(http.StatusConflict, dto.InsufficientStockResponse{
				Error:     stockErr.Error(),
				ItemID:    stockErr.ItemID,
				ItemName:  stockErr.ItemName,
				Available: stockErr.Available,
				Requested: stockErr.Requested,
			})
		case errors.Is(err, domainErrors.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "item not found"})
		case errors.Is(err, domainErrors.ErrAccountDisabled):
			c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "account disabled"})
		case errors.Is(err, domainErrors.ErrConflict):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "please retry the order"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/orders. Customers see their own orders; admins can
// see everyone's and filter by status or customer.
func (h *OrderHandler) List(c *gin.Context) {
	filter := repository.OrderFilter{}
	if IsAdmin(c) {
		if raw := c.Query("customer_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid customer id"})
				return
			}
			filter.CustomerID = &id
		}
	} else {
		userID := CurrentUserID(c)
		filter.CustomerID = &userID
	}
	if raw := c.Query("status"); raw != "" {
		status := model.OrderStatus(raw)
		if !model.ValidOrderStatus(status) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unknown status"})
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			filter.Limit = n
		}
	}

	orders, err := h.facade.Orders(c.Request.Context(), filter)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/orders/:id. Customers may only read their own orders.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := h.facade.Order(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	if !IsAdmin(c) && order.CustomerID != CurrentUserID(c) {
		c.Status(http.StatusForbidden)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// SetStatus handles PUT /api/orders/:id/status (admin).
func (h *OrderHandler) SetStatus(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid payload"})
		return
	}

	order, err := h.facade.SetOrderStatus(c.Request.Context(), id, model.OrderStatus(req.Status), req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrOrderAlreadyCancelled):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "order is already cancelled"})
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "status transition not allowed"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Refund handles POST /api/orders/:id/refund (admin).
func (h *OrderHandler) Refund(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid payload"})
		return
	}

	order, err := h.facade.RefundOrder(c.Request.Context(), id, req.Amount, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "refund amount must be positive and not exceed the order total"})
		case errors.Is(err, domainErrors.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}
