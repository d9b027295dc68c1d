package handler

import (
	"github.com/Bhargav2112/Flipcart-Clone/internal/application/account"
	"github.com/Bhargav2112/Flipcart-Clone/internal/application/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AccountHandler serves the account page: profile, dashboard and saved addresses
type AccountHandler struct {
	BaseHandler
	authService      *identity.AuthService
	addressService   *identity.AddressService
	dashboardService *account.DashboardService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(
	authService *identity.AuthService,
	addressService *identity.AddressService,
	dashboardService *account.DashboardService,
) *AccountHandler {
	return &AccountHandler{
		authService:      authService,
		addressService:   addressService,
		dashboardService: dashboardService,
	}
}

// Me godoc
// @Summary      Returns the signed-in user
// @Description  Returns the signed-in user.
// @Tags         account
// @Produce      json
// @Success      200 {object} dto.Response{data=identity.UserResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /account/me [get]
func (h *AccountHandler) Me(c *gin.Context) {
	user, err := h.authService.Me(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// UpdateProfile godoc
// @Summary      Edits the name and phone number
// @Description  Edits the name and phone number.
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body identity.UpdateProfileRequest true "Profile fields"
// @Success      200 {object} dto.Response{data=identity.UserResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /account/me [patch]
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req identity.UpdateProfileRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Dashboard godoc
// @Summary      Returns recent orders and the wishlist count
// @Description  Returns recent orders and the wishlist count.
// @Tags         account
// @Produce      json
// @Success      200 {object} dto.Response{data=account.DashboardResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /account/dashboard [get]
func (h *AccountHandler) Dashboard(c *gin.Context) {
	resp, err := h.dashboardService.Dashboard(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListAddresses godoc
// @Summary      Returns the saved addresses, default first
// @Description  Returns the saved addresses, default first.
// @Tags         account
// @Produce      json
// @Success      200 {object} dto.Response{data=[]identity.AddressResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /account/addresses [get]
func (h *AccountHandler) ListAddresses(c *gin.Context) {
	addresses, err := h.addressService.List(c.Request.Context(), middleware.GetPrincipal(c).Email)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addresses)
}

// CreateAddress godoc
// @Summary      Saves a delivery address
// @Description  Saves a delivery address.
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body identity.AddressRequest true "Delivery address"
// @Success      201 {object} dto.Response{data=identity.AddressResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /account/addresses [post]
func (h *AccountHandler) CreateAddress(c *gin.Context) {
	var req identity.AddressRequest
	if !h.bindJSON(c, &req) {
		return
	}

	address, err := h.addressService.Create(c.Request.Context(), middleware.GetPrincipal(c).Email, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, address)
}

// DeleteAddress godoc
// @Summary      Removes a saved address
// @Description  Removes a saved address.
// @Tags         account
// @Produce      json
// @Param        id path string true "Address ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /account/addresses/{id} [delete]
func (h *AccountHandler) DeleteAddress(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.addressService.Delete(c.Request.Context(), middleware.GetPrincipal(c).Email, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SetDefaultAddress godoc
// @Summary      Makes the address the default one
// @Description  Makes the address the default one.
// @Tags         account
// @Produce      json
// @Param        id path string true "Address ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]identity.AddressResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /account/addresses/{id}/default [post]
func (h *AccountHandler) SetDefaultAddress(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	addresses, err := h.addressService.SetDefault(c.Request.Context(), middleware.GetPrincipal(c).Email, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addresses)
}
