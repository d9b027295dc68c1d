package handler

import (
	"github.com/Bhargav2112/Flipcart-Clone/internal/application/admin"
	"github.com/Bhargav2112/Flipcart-Clone/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin panel
type AdminHandler struct {
	BaseHandler
	adminService *admin.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *admin.Service) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Overview godoc
// @Summary      Returns the store-wide counters and moderation queue
// @Description  Returns the store-wide counters and moderation queue.
// @Tags         admin
// @Produce      json
// @Success      200 {object} dto.Response{data=admin.OverviewResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/overview [get]
func (h *AdminHandler) Overview(c *gin.Context) {
	resp, err := h.adminService.Overview(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ApproveProduct godoc
// @Summary      Publishes a pending product
// @Description  Publishes a pending product.
// @Tags         admin
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalog.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/products/{id}/approve [post]
func (h *AdminHandler) ApproveProduct(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.adminService.ApproveProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// RejectProduct godoc
// @Summary      Rejects a pending product
// @Description  Rejects a pending product.
// @Tags         admin
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalog.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/products/{id}/reject [post]
func (h *AdminHandler) RejectProduct(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.adminService.RejectProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// UpdateOrderStatus godoc
// @Summary      Moves an order forward through fulfilment
// @Description  Moves an order forward through fulfilment.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body trade.UpdateStatusRequest true "New order status"
// @Success      200 {object} dto.Response{data=trade.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/orders/{id}/status [put]
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req trade.UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.adminService.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
