package handler

import (
	"github.com/Bhargav2112/Flipcart-Clone/internal/application/shopping"
	"github.com/Bhargav2112/Flipcart-Clone/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// WishlistHandler serves the wishlist page and heart toggles
type WishlistHandler struct {
	BaseHandler
	wishlistService *shopping.WishlistService
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlistService *shopping.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// List godoc
// @Summary      Returns the wishlist, newest first
// @Description  Returns the wishlist, newest first.
// @Tags         wishlist
// @Produce      json
// @Success      200 {object} dto.Response{data=[]shopping.WishlistItemResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /wishlist [get]
func (h *WishlistHandler) List(c *gin.Context) {
	items, err := h.wishlistService.List(c.Request.Context(), middleware.GetPrincipal(c).Email)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Toggle godoc
// @Summary      Adds the product to the wishlist
// @Description  Adds the product to the wishlist, or removes it when already there.
// @Tags         wishlist
// @Accept       json
// @Produce      json
// @Param        request body shopping.ToggleWishlistRequest true "Product to toggle"
// @Success      200 {object} dto.Response{data=shopping.ToggleWishlistResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /wishlist/toggle [post]
func (h *WishlistHandler) Toggle(c *gin.Context) {
	var req shopping.ToggleWishlistRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.wishlistService.Toggle(c.Request.Context(), middleware.GetPrincipal(c).Email, req.ProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Remove godoc
// @Summary      Deletes a wishlist entry
// @Description  Deletes a wishlist entry.
// @Tags         wishlist
// @Produce      json
// @Param        id path string true "Wishlist item ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /wishlist/{id} [delete]
func (h *WishlistHandler) Remove(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.wishlistService.Remove(c.Request.Context(), middleware.GetPrincipal(c).Email, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MoveToCart godoc
// @Summary      Moves a wishlist entry into the cart
// @Description  Moves a wishlist entry into the cart.
// @Tags         wishlist
// @Produce      json
// @Param        id path string true "Wishlist item ID" format(uuid)
// @Success      200 {object} dto.Response{data=shopping.CartItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /wishlist/{id}/move-to-cart [post]
func (h *WishlistHandler) MoveToCart(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	item, err := h.wishlistService.MoveToCart(c.Request.Context(), middleware.GetPrincipal(c).Email, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}
