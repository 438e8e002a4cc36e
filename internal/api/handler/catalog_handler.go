package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fundbridge/platform/internal/core/ports"
)

// CatalogHandler serves categories, mentors, library resources and
// testimonials.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// --- Categories ---

// ListCategories handles GET /api/categories.
//
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Category
// @Router       /categories [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	items, err := h.catalog.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// CreateCategory handles POST /api/admin/categories.
//
// @Summary      Create a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category"
// @Success      201   {object}  domain.Category
// @Failure      409   {object}  errorResponse
// @Router       /admin/categories [post]
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cat, err := h.catalog.CreateCategory(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cat)
}

// DeleteCategory handles DELETE /api/admin/categories/:id.
//
// @Summary      Delete a category
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Category ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /admin/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	if err := h.catalog.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Mentors ---

// ListMentors handles GET /api/mentors.
//
// @Summary      List mentors
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Mentor
// @Router       /mentors [get]
func (h *CatalogHandler) ListMentors(c echo.Context) error {
	items, err := h.catalog.ListMentors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// GetMentor handles GET /api/mentors/:id.
//
// @Summary      Get a mentor
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Mentor ID"
// @Success      200  {object}  domain.Mentor
// @Failure      404  {object}  errorResponse
// @Router       /mentors/{id} [get]
func (h *CatalogHandler) GetMentor(c echo.Context) error {
	m, err := h.catalog.GetMentor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// CreateMentor handles POST /api/admin/mentors (multipart with "photo").
//
// @Summary      Create a mentor
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name       formData  string  true   "Name"
// @Param        expertise  formData  string  true   "Expertise"
// @Param        bio        formData  string  false  "Bio"
// @Param        userId     formData  string  false  "Linked user, promoted to mentor"
// @Param        photo      formData  file    false  "Photo"
// @Success      201        {object}  domain.Mentor
// @Failure      422        {object}  errorResponse
// @Router       /admin/mentors [post]
func (h *CatalogHandler) CreateMentor(c echo.Context) error {
	var form createMentorForm
	if err := bindAndValidate(c, &form); err != nil {
		return err
	}

	photo, closePhoto, err := formUpload(c, "photo", false)
	if err != nil {
		return err
	}
	defer closePhoto()

	m, err := h.catalog.CreateMentor(c.Request().Context(), ports.CreateMentorInput{
		UserID:    form.UserID,
		Name:      form.Name,
		Expertise: form.Expertise,
		Bio:       form.Bio,
		Photo:     photo,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

// Subscribe handles POST /api/mentors/:id/subscribe.
//
// @Summary      Subscribe to a mentor
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Mentor ID"
// @Success      201  {object}  domain.MentorSubscription
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /mentors/{id}/subscribe [post]
func (h *CatalogHandler) Subscribe(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	sub, err := h.catalog.Subscribe(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sub)
}

// --- Resources ---

// ListResources handles GET /api/resources. Each entry carries a short-lived
// download URL.
//
// @Summary      List library resources
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Resource
// @Router       /resources [get]
func (h *CatalogHandler) ListResources(c echo.Context) error {
	items, err := h.catalog.ListResources(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// CreateResource handles POST /api/admin/resources (multipart with "file").
//
// @Summary      Upload a library resource
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  false  "Description"
// @Param        file         formData  file    true   "File"
// @Success      201          {object}  domain.Resource
// @Failure      413          {object}  errorResponse
// @Failure      422          {object}  errorResponse
// @Router       /admin/resources [post]
func (h *CatalogHandler) CreateResource(c echo.Context) error {
	var form createResourceForm
	if err := bindAndValidate(c, &form); err != nil {
		return err
	}

	file, closeFile, err := formUpload(c, "file", true)
	if err != nil {
		return err
	}
	defer closeFile()

	r, err := h.catalog.CreateResource(c.Request().Context(), ports.CreateResourceInput{
		Title:       form.Title,
		Description: form.Description,
		File:        *file,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

// DeleteResource handles DELETE /api/admin/resources/:id.
//
// @Summary      Delete a library resource
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Resource ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /admin/resources/{id} [delete]
func (h *CatalogHandler) DeleteResource(c echo.Context) error {
	if err := h.catalog.DeleteResource(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Testimonials ---

// ListTestimonials handles GET /api/testimonials.
//
// @Summary      List testimonials
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Testimonial
// @Router       /testimonials [get]
func (h *CatalogHandler) ListTestimonials(c echo.Context) error {
	items, err := h.catalog.ListTestimonials(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// CreateTestimonial handles POST /api/testimonials.
//
// @Summary      Leave a testimonial
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      testimonialRequest  true  "Testimonial"
// @Success      201   {object}  domain.Testimonial
// @Failure      422   {object}  errorResponse
// @Router       /testimonials [post]
func (h *CatalogHandler) CreateTestimonial(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req testimonialRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	t, err := h.catalog.CreateTestimonial(c.Request().Context(), ports.CreateTestimonialInput{
		UserID:  userID,
		Content: req.Content,
		Rating:  req.Rating,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}
