package handler

import (
	"github.com/Bhargav2112/Flipcart-Clone/internal/application/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the storefront: home rails, listing, product page and reviews
type CatalogHandler struct {
	BaseHandler
	productService *catalog.ProductService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(productService *catalog.ProductService) *CatalogHandler {
	return &CatalogHandler{productService: productService}
}

// Home godoc
// @Summary      Returns the home page rails
// @Description  Returns the home page rails.
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response{data=catalog.HomeResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/home [get]
func (h *CatalogHandler) Home(c *gin.Context) {
	resp, err := h.productService.Home(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Browse godoc
// @Summary      Lists approved products with the filter panel applied
// @Description  Lists approved products with the filter panel applied.
// @Tags         catalog
// @Produce      json
// @Param        search query string false "Search text"
// @Param        category query string false "Category slug"
// @Param        brand query string false "Brand"
// @Param        min_price query number false "Minimum price"
// @Param        max_price query number false "Maximum price"
// @Param        min_rating query number false "Minimum rating"
// @Param        sort query string false "Sort order"
// @Param        page query int false "Page number"
// @Success      200 {object} dto.Response{data=catalog.ListingResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products [get]
func (h *CatalogHandler) Browse(c *gin.Context) {
	var req catalog.BrowseRequest
	if !h.bindQuery(c, &req) {
		return
	}

	resp, err := h.productService.Browse(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Detail godoc
// @Summary      Returns the product page
// @Description  Returns the product page. Anonymous callers only see approved products.
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalog.ProductDetailResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products/{id} [get]
func (h *CatalogHandler) Detail(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	resp, err := h.productService.Detail(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddReview godoc
// @Summary      Posts a rating and review for the product
// @Description  Posts a rating and review for the product.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalog.CreateReviewRequest true "Rating and review"
// @Success      201 {object} dto.Response{data=catalog.ReviewResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/products/{id}/reviews [post]
func (h *CatalogHandler) AddReview(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req catalog.CreateReviewRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.productService.AddReview(c.Request.Context(), middleware.GetPrincipal(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Categories godoc
// @Summary      Lists the active categories
// @Description  Lists the active categories.
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalog.CategoryResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/categories [get]
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.productService.Categories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// Brands godoc
// @Summary      Lists the brand filter options
// @Description  Lists the brand filter options.
// @Tags         catalog
// @Produce      json
// @Param        category query string false "Category slug"
// @Success      200 {object} dto.Response{data=catalog.BrandsResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/brands [get]
func (h *CatalogHandler) Brands(c *gin.Context) {
	h.Success(c, h.productService.Brands(c.Request.Context(), c.Query("category")))
}
