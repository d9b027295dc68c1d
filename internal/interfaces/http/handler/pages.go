package handler

import (
	"github.com/Bhargav2112/Flipcart-Clone/internal/application/pages"
	"github.com/gin-gonic/gin"
)

// PagesHandler serves the static content pages and the contact form
type PagesHandler struct {
	BaseHandler
	pagesService *pages.Service
}

// NewPagesHandler creates a new pages handler
func NewPagesHandler(pagesService *pages.Service) *PagesHandler {
	return &PagesHandler{pagesService: pagesService}
}

// Page godoc
// @Summary      Returns a content page, with FAQs narrowed by the optional search
// @Description  Returns a content page, with FAQs narrowed by the optional search.
// @Tags         pages
// @Produce      json
// @Param        slug path string true "Page slug"
// @Param        search query string false "FAQ search text"
// @Success      200 {object} dto.Response{data=pages.Page}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /pages/{slug} [get]
func (h *PagesHandler) Page(c *gin.Context) {
	page, err := h.pagesService.Page(c.Param("slug"), c.Query("search"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// Contact godoc
// @Summary      Stores a contact form submission
// @Description  Stores a contact form submission.
// @Tags         pages
// @Accept       json
// @Produce      json
// @Param        request body pages.ContactRequest true "Contact form"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /pages/contact [post]
func (h *PagesHandler) Contact(c *gin.Context) {
	var req pages.ContactRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.pagesService.SubmitContact(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"message": "Thanks for reaching out. We will get back to you shortly."})
}
