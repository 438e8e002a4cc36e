package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fundbridge/platform/internal/core/ports"
)

// UserHandler serves the signed-in user's own record and the admin user panel.
type UserHandler struct {
	users    ports.UserService
	projects ports.ProjectService
	payments ports.PaymentService
}

func NewUserHandler(users ports.UserService, projects ports.ProjectService, payments ports.PaymentService) *UserHandler {
	return &UserHandler{users: users, projects: projects, payments: payments}
}

// Me handles GET /api/users/me.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.users.Me(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// CompleteRegistration handles POST /api/users/me/complete-registration.
//
// @Summary      Complete registration
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      completeRegistrationRequest  true  "Missing profile fields"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /users/me/complete-registration [post]
func (h *UserHandler) CompleteRegistration(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req completeRegistrationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.CompleteRegistration(c.Request().Context(), userID, ports.CompleteRegistrationInput{
		Name:       req.Name,
		NationalID: req.NationalID,
		Phone:      req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateProfile handles PUT /api/users/me.
//
// @Summary      Update profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      422   {object}  errorResponse
// @Router       /users/me [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), userID, ports.ProfileUpdate{
		Name:      req.Name,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Favorites handles GET /api/users/me/favorites.
//
// @Summary      Favorite projects
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Project
// @Router       /users/me/favorites [get]
func (h *UserHandler) Favorites(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	projects, err := h.projects.Favorites(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Investments handles GET /api/users/me/investments.
//
// @Summary      My investments
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Investment
// @Router       /users/me/investments [get]
func (h *UserHandler) Investments(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	investments, err := h.payments.Investments(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, investments)
}

// List handles GET /api/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int     false  "Page (1-based)"
// @Param        limit  query     int     false  "Page size, max 100"
// @Param        role   query     string  false  "Filter by role"
// @Success      200    {object}  userListResponse
// @Failure      403    {object}  errorResponse
// @Router       /admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	var q listUsersQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	res, err := h.users.List(c.Request().Context(), ports.ListUsersFilter{
		Role:  q.Role,
		Page:  q.Page,
		Limit: q.Limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{
		Items:      res.Items,
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	})
}

// ChangeRole handles PUT /api/admin/users/:id/role.
//
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      changeRoleRequest  true  "New role"
// @Success      200   {object}  userResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/users/{id}/role [put]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	var req changeRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.ChangeRole(c.Request().Context(), c.Param("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
