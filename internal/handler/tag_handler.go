package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/deeecoderrr/recipe-app-api/internal/errors"
	"github.com/deeecoderrr/recipe-app-api/internal/service"
)

// TagHandler handles tag endpoints.
type TagHandler struct {
	tagService service.TagService
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// TagRequest represents a tag create/update payload.
type TagRequest struct {
	Name string `json:"name" validate:"required"`
}

func tagIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid tag id",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}

// List godoc
// @Summary List the authenticated user's tags
// @Tags recipe
// @Produce json
// @Security BearerAuth
// @Param assigned_only query int false "Restrict to tags attached to at least one recipe" Enums(0, 1)
// @Success 200 {array} AttrResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipe/tags [get]
func (h *TagHandler) List(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	assignedOnly := c.QueryParam("assigned_only") == "1"

	tags, err := h.tagService.List(c.Request().Context(), userID, assignedOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list tags")
	}

	out := make([]AttrResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, AttrResponse{ID: tag.ID, Name: tag.Name})
	}
	return c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Retrieve one of the authenticated user's tags
// @Tags recipe
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 200 {object} AttrResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/tags/{id} [get]
func (h *TagHandler) Get(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := tagIDParam(c)
	if err != nil {
		return err
	}

	tag, err := h.tagService.Get(c.Request().Context(), userID, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, AttrResponse{ID: tag.ID, Name: tag.Name})
}

// Create godoc
// @Summary Create a tag
// @Tags recipe
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TagRequest true "Tag data"
// @Success 201 {object} AttrResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipe/tags [post]
func (h *TagHandler) Create(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req TagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag, err := h.tagService.Create(c.Request().Context(), userID, req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, AttrResponse{ID: tag.ID, Name: tag.Name})
}

// Update godoc
// @Summary Rename one of the authenticated user's tags
// @Tags recipe
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Param request body TagRequest true "Tag data"
// @Success 200 {object} AttrResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/tags/{id} [patch]
func (h *TagHandler) Update(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := tagIDParam(c)
	if err != nil {
		return err
	}

	var req TagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag, err := h.tagService.Update(c.Request().Context(), userID, id, req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, AttrResponse{ID: tag.ID, Name: tag.Name})
}

// Delete godoc
// @Summary Delete one of the authenticated user's tags
// @Tags recipe
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/tags/{id} [delete]
func (h *TagHandler) Delete(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := tagIDParam(c)
	if err != nil {
		return err
	}

	if err := h.tagService.Delete(c.Request().Context(), userID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.NoContent(http.StatusNoContent)
}
