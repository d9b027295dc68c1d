package handler

import (
	"github.com/Bhargav2112/Flipcart-Clone/internal/application/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// SellerHandler serves the seller dashboard and product management
type SellerHandler struct {
	BaseHandler
	sellerService *catalog.SellerService
}

// NewSellerHandler creates a new seller handler
func NewSellerHandler(sellerService *catalog.SellerService) *SellerHandler {
	return &SellerHandler{sellerService: sellerService}
}

// Dashboard godoc
// @Summary      Returns the seller's products, orders and revenue
// @Description  Returns the seller's products, orders and revenue.
// @Tags         seller
// @Produce      json
// @Success      200 {object} dto.Response{data=catalog.SellerDashboardResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /seller/dashboard [get]
func (h *SellerHandler) Dashboard(c *gin.Context) {
	resp, err := h.sellerService.Dashboard(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateProduct godoc
// @Summary      Lists a new product pending approval
// @Description  Lists a new product pending approval.
// @Tags         seller
// @Accept       json
// @Produce      json
// @Param        request body catalog.ProductRequest true "Product listing"
// @Success      201 {object} dto.Response{data=catalog.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /seller/products [post]
func (h *SellerHandler) CreateProduct(c *gin.Context) {
	var req catalog.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.sellerService.CreateProduct(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// UpdateProduct godoc
// @Summary      Edits one of the seller's products
// @Description  Edits one of the seller's products.
// @Tags         seller
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalog.ProductRequest true "Product listing"
// @Success      200 {object} dto.Response{data=catalog.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /seller/products/{id} [put]
func (h *SellerHandler) UpdateProduct(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req catalog.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.sellerService.UpdateProduct(c.Request.Context(), middleware.GetPrincipal(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// DeleteProduct godoc
// @Summary      Removes one of the seller's products
// @Description  Removes one of the seller's products.
// @Tags         seller
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /seller/products/{id} [delete]
func (h *SellerHandler) DeleteProduct(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.sellerService.DeleteProduct(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
