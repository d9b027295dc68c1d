package handler

import (
	"context"

	"github.com/Bhargav2112/Flipcart-Clone/internal/application/shopping"
	"github.com/Bhargav2112/Flipcart-Clone/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartHandler serves the cart page
type CartHandler struct {
	BaseHandler
	cartService *shopping.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *shopping.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// View godoc
// @Summary      Returns the cart lines, saved-for-later lines and totals
// @Description  Returns the cart lines, saved-for-later lines and totals.
// @Tags         cart
// @Produce      json
// @Param        coupon query string false "Coupon code"
// @Success      200 {object} dto.Response{data=shopping.CartResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cart [get]
func (h *CartHandler) View(c *gin.Context) {
	resp, err := h.cartService.View(c.Request.Context(), middleware.GetPrincipal(c).Email, c.Query("coupon"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Add godoc
// @Summary      Puts one unit of a product into the cart
// @Description  Puts one unit of a product into the cart.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body shopping.AddToCartRequest true "Product to add"
// @Success      200 {object} dto.Response{data=shopping.CartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cart/items [post]
func (h *CartHandler) Add(c *gin.Context) {
	var req shopping.AddToCartRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.cartService.Add(c.Request.Context(), middleware.GetPrincipal(c).Email, req.ProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ChangeQuantity godoc
// @Summary      Adjusts a line by delta
// @Description  Adjusts a line by delta; a line reaching zero is removed.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        id path string true "Cart item ID" format(uuid)
// @Param        request body shopping.ChangeQuantityRequest true "Quantity delta"
// @Success      200 {object} dto.Response{data=shopping.CartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cart/items/{id} [patch]
func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req shopping.ChangeQuantityRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.cartService.ChangeQuantity(c.Request.Context(), middleware.GetPrincipal(c).Email, id, req.Delta)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Remove godoc
// @Summary      Deletes a cart line
// @Description  Deletes a cart line.
// @Tags         cart
// @Produce      json
// @Param        id path string true "Cart item ID" format(uuid)
// @Success      200 {object} dto.Response{data=shopping.CartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cart/items/{id} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	h.itemAction(c, h.cartService.Remove)
}

// SaveForLater godoc
// @Summary      Parks a line outside the totals
// @Description  Parks a line outside the totals.
// @Tags         cart
// @Produce      json
// @Param        id path string true "Cart item ID" format(uuid)
// @Success      200 {object} dto.Response{data=shopping.CartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cart/items/{id}/save-for-later [post]
func (h *CartHandler) SaveForLater(c *gin.Context) {
	h.itemAction(c, h.cartService.SaveForLater)
}

// MoveToCart godoc
// @Summary      Brings a saved line back into the totals
// @Description  Brings a saved line back into the totals.
// @Tags         cart
// @Produce      json
// @Param        id path string true "Cart item ID" format(uuid)
// @Success      200 {object} dto.Response{data=shopping.CartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cart/items/{id}/move-to-cart [post]
func (h *CartHandler) MoveToCart(c *gin.Context) {
	h.itemAction(c, h.cartService.MoveToCart)
}

// ApplyCoupon godoc
// @Summary      Validates a coupon against the cart subtotal
// @Description  Validates a coupon against the cart subtotal.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body shopping.ApplyCouponRequest true "Coupon code"
// @Success      200 {object} dto.Response{data=shopping.CartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cart/coupon [post]
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	var req shopping.ApplyCouponRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.cartService.ApplyCoupon(c.Request.Context(), middleware.GetPrincipal(c).Email, req.Code)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

type cartItemAction func(ctx context.Context, userEmail string, itemID uuid.UUID) (*shopping.CartResponse, error)

func (h *CartHandler) itemAction(c *gin.Context, action cartItemAction) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	resp, err := action(c.Request.Context(), middleware.GetPrincipal(c).Email, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
