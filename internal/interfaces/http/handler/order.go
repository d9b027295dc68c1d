package handler

import (
	"context"

	"github.com/Bhargav2112/Flipcart-Clone/internal/application/trade"
	"github.com/Bhargav2112/Flipcart-Clone/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler serves the My Orders and tracking pages
type OrderHandler struct {
	BaseHandler
	orderService *trade.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *trade.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List godoc
// @Summary      Returns the caller's orders, newest first
// @Description  Returns the caller's orders, newest first.
// @Tags         orders
// @Produce      json
// @Success      200 {object} dto.Response{data=[]trade.OrderResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.ListMine(c.Request.Context(), middleware.GetPrincipal(c).Email)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Get godoc
// @Summary      Returns one order
// @Description  Returns one order.
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=trade.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Track godoc
// @Summary      Returns the order's status timeline
// @Description  Returns the order's status timeline.
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=trade.TrackingResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/tracking [get]
func (h *OrderHandler) Track(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	tracking, err := h.orderService.Track(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tracking)
}

// Cancel godoc
// @Summary      Cancels an order that has not been delivered
// @Description  Cancels an order that has not been delivered.
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=trade.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.transition(c, h.orderService.Cancel)
}

// RequestReturn godoc
// @Summary      Starts a return for a delivered order
// @Description  Starts a return for a delivered order.
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=trade.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/return [post]
func (h *OrderHandler) RequestReturn(c *gin.Context) {
	h.transition(c, h.orderService.RequestReturn)
}

func (h *OrderHandler) transition(c *gin.Context, apply func(ctx context.Context, userEmail string, id uuid.UUID) (*trade.OrderResponse, error)) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	order, err := apply(c.Request.Context(), middleware.GetPrincipal(c).Email, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
