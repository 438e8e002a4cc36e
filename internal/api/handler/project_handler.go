package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fundbridge/platform/internal/api/metrics"
	"github.com/fundbridge/platform/internal/core/ports"
)

// ProjectHandler handles campaigns, favorites and investment intents.
type ProjectHandler struct {
	projects ports.ProjectService
	payments ports.PaymentService
}

func NewProjectHandler(projects ports.ProjectService, payments ports.PaymentService) *ProjectHandler {
	return &ProjectHandler{projects: projects, payments: payments}
}

// List handles GET /api/projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size, max 100"
// @Param        category  query     string  false  "Category ID"
// @Param        search    query     string  false  "Title search"
// @Success      200       {object}  projectListResponse
// @Router       /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	var q listProjectsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	res, err := h.projects.ListProjects(c.Request().Context(), ports.ListProjectsInput{
		CategoryID: q.Category,
		Search:     q.Search,
		Page:       q.Page,
		Limit:      q.Limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projectListResponse{
		Items:      res.Items,
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	})
}

// Get handles GET /api/projects/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  domain.Project
// @Failure      404  {object}  errorResponse
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.projects.GetProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Create handles POST /api/projects (multipart).
//
// @Summary      Create a project
// @Tags         projects
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  true   "Description"
// @Param        categoryId   formData  string  true   "Category ID"
// @Param        goal         formData  int     true   "Funding goal in cents"
// @Param        image        formData  file    false  "Cover image"
// @Success      201          {object}  domain.Project
// @Failure      413          {object}  errorResponse
// @Failure      422          {object}  errorResponse
// @Router       /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var form createProjectForm
	if err := bindAndValidate(c, &form); err != nil {
		return err
	}

	image, closeImage, err := formUpload(c, "image", false)
	if err != nil {
		return err
	}
	defer closeImage()

	project, err := h.projects.CreateProject(c.Request().Context(), ports.CreateProjectInput{
		OwnerID:     userID,
		Title:       form.Title,
		Description: form.Description,
		CategoryID:  form.CategoryID,
		Goal:        form.Goal,
		Image:       image,
	})
	if err != nil {
		return err
	}

	metrics.ProjectsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, project)
}

// AddFavorite handles POST /api/projects/:id/favorite.
//
// @Summary      Favorite a project
// @Tags         projects
// @Security     BearerAuth
// @Param        id   path  string  true  "Project ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /projects/{id}/favorite [post]
func (h *ProjectHandler) AddFavorite(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	if err := h.projects.AddFavorite(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveFavorite handles DELETE /api/projects/:id/favorite.
//
// @Summary      Unfavorite a project
// @Tags         projects
// @Security     BearerAuth
// @Param        id   path  string  true  "Project ID"
// @Success      204
// @Router       /projects/{id}/favorite [delete]
func (h *ProjectHandler) RemoveFavorite(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	if err := h.projects.RemoveFavorite(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Invest handles POST /api/projects/:id/investments. It opens a payment
// intent; the project total only moves once the gateway confirms payment.
//
// @Summary      Start an investment
// @Tags         investments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Project ID"
// @Param        body  body      investRequest  true  "Amount in cents"
// @Success      201   {object}  investResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /projects/{id}/investments [post]
func (h *ProjectHandler) Invest(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req investRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	intent, err := h.payments.StartInvestment(c.Request().Context(), userID, c.Param("id"), req.Amount)
	if err != nil {
		return err
	}

	metrics.InvestmentIntentsTotal.Inc()
	return c.JSON(http.StatusCreated, investResponse{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
	})
}
