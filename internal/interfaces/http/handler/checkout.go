package handler

import (
	"github.com/Bhargav2112/Flipcart-Clone/internal/application/trade"
	"github.com/Bhargav2112/Flipcart-Clone/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler serves the checkout wizard
type CheckoutHandler struct {
	BaseHandler
	checkoutService *trade.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *trade.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Summary godoc
// @Summary      Returns the addresses, payment options and totals for the wizard
// @Description  Returns the addresses, payment options and totals for the wizard.
// @Tags         checkout
// @Produce      json
// @Param        coupon query string false "Coupon code"
// @Success      200 {object} dto.Response{data=trade.CheckoutSummaryResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /checkout [get]
func (h *CheckoutHandler) Summary(c *gin.Context) {
	resp, err := h.checkoutService.Summary(c.Request.Context(), middleware.GetPrincipal(c).Email, c.Query("coupon"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// PlaceOrder godoc
// @Summary      Turns the cart into an order
// @Description  Turns the cart into an order.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body trade.PlaceOrderRequest true "Address, payment and coupon"
// @Success      201 {object} dto.Response{data=trade.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /checkout/orders [post]
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req trade.PlaceOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.checkoutService.PlaceOrder(c.Request.Context(), middleware.GetPrincipal(c).Email, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}
