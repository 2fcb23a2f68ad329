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
)

// ItemHandler manages catalog endpoints.
type ItemHandler struct {
	facade CatalogFacade
}

// NewItemHandler constructs ItemHandler.
func NewItemHandler(facade CatalogFacade) *ItemHandler {
	return &ItemHandler{facade: facade}
}

func toItemResponse(i model.Item, admin bool) dto.ItemResponse {
	resp := dto.ItemResponse{
		ID:            i.ID,
		Name:          i.Name,
		Description:   i.Description,
		Category:      string(i.Category),
		Price:         i.Price,
		Quantity:      i.Quantity,
		LowStockAlert: i.LowStockAlert,
		ImageURL:      i.ImageURL,
		IsActive:      i.IsActive,
		StockStatus:   string(i.StockStatus()),
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
	// Cost and performance counters stay internal to the store operators.
	if admin {
		resp.CostPrice = i.CostPrice
		resp.Sales = i.Sales
		resp.Revenue = i.Revenue
	}
	return resp
}

func itemIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid item id"})
		return 0, false
	}
	return id, true
}

// List handles GET /api/items.
func (h *ItemHandler) List(c *gin.Context) {
	filter := repository.ItemFilter{}
	if raw := c.Query("category"); raw != "" {
		category := model.Category(raw)
		if !model.ValidCategory(category) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unknown category"})
			return
		}
		filter.Category = &category
	}
	admin := IsAdmin(c)
	if admin && c.Query("include_inactive") == "true" {
		filter.IncludeInactive = true
	}

	items, err := h.facade.Items(c.Request.Context(), filter)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toItemResponse(item, admin))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/items/:id.
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := itemIDParam(c)
	if !ok {
		return
	}

	item, err := h.facade.Item(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	if !item.IsActive && !IsAdmin(c) {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, toItemResponse(*item, IsAdmin(c)))
}

func itemFromRequest(req dto.ItemRequest) *model.Item {
	item := &model.Item{
		Name:          req.Name,
		Description:   req.Description,
		Category:      model.Category(req.Category),
		Price:         req.Price,
		CostPrice:     req.CostPrice,
		Quantity:      req.Quantity,
		LowStockAlert: req.LowStockAlert,
		ImageURL:      req.ImageURL,
		IsActive:      true,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	return item
}

// Create handles POST /api/items (admin).
func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid payload"})
		return
	}

	item := itemFromRequest(req)
	item.CreatedBy = CurrentUserID(c)

	created, err := h.facade.CreateItem(c.Request.Context(), item)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusCreated, toItemResponse(*created, true))
}

// Update handles PUT /api/items/:id (admin).
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := itemIDParam(c)
	if !ok {
		return
	}
	var req dto.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid payload"})
		return
	}

	item := itemFromRequest(req)
	item.ID = id

	updated, err := h.facade.UpdateItem(c.Request.Context(), item)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toItemResponse(*updated, true))
}

// Deactivate handles DELETE /api/items/:id (admin, soft-delete).
func (h *ItemHandler) Deactivate(c *gin.Context) {
	id, ok := itemIDParam(c)
	if !ok {
		return
	}

	if err := h.facade.DeactivateItem(c.Request.Context(), id); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

// Restock handles POST /api/items/:id/stock (admin).
func (h *ItemHandler) Restock(c *gin.Context) {
	id, ok := itemIDParam(c)
	if !ok {
		return
	}
	var req dto.StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid payload"})
		return
	}

	item, err := h.facade.RestockItem(c.Request.Context(), id, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "restock quantity must be positive"})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toItemResponse(*item, true))
}

// LowStock handles GET /api/items/low-stock (admin).
func (h *ItemHandler) LowStock(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	items, err := h.facade.LowStockItems(c.Request.Context(), limit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toItemResponse(item, true))
	}
	c.JSON(http.StatusOK, resp)
}
