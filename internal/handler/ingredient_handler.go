package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/deeecoderrr/recipe-app-api/internal/errors"
	"github.com/deeecoderrr/recipe-app-api/internal/service"
)

// IngredientHandler handles ingredient endpoints.
type IngredientHandler struct {
	ingredientService service.IngredientService
}

// NewIngredientHandler creates a new ingredient handler.
func NewIngredientHandler(ingredientService service.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

// IngredientRequest represents an ingredient create/update payload.
type IngredientRequest struct {
	Name string `json:"name" validate:"required"`
}

func ingredientIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid ingredient id",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}

// List godoc
// @Summary List the authenticated user's ingredients
// @Tags recipe
// @Produce json
// @Security BearerAuth
// @Param assigned_only query int false "Restrict to ingredients attached to at least one recipe" Enums(0, 1)
// @Success 200 {array} AttrResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipe/ingredients [get]
func (h *IngredientHandler) List(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	assignedOnly := c.QueryParam("assigned_only") == "1"

	ingredients, err := h.ingredientService.List(c.Request().Context(), userID, assignedOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list ingredients")
	}

	out := make([]AttrResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		out = append(out, AttrResponse{ID: ingredient.ID, Name: ingredient.Name})
	}
	return c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Retrieve one of the authenticated user's ingredients
// @Tags recipe
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Success 200 {object} AttrResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/ingredients/{id} [get]
func (h *IngredientHandler) Get(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := ingredientIDParam(c)
	if err != nil {
		return err
	}

	ingredient, err := h.ingredientService.Get(c.Request().Context(), userID, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, AttrResponse{ID: ingredient.ID, Name: ingredient.Name})
}

// Create godoc
// @Summary Create an ingredient
// @Tags recipe
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body IngredientRequest true "Ingredient data"
// @Success 201 {object} AttrResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipe/ingredients [post]
func (h *IngredientHandler) Create(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req IngredientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ingredient, err := h.ingredientService.Create(c.Request().Context(), userID, req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, AttrResponse{ID: ingredient.ID, Name: ingredient.Name})
}

// Update godoc
// @Summary Rename one of the authenticated user's ingredients
// @Tags recipe
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Param request body IngredientRequest true "Ingredient data"
// @Success 200 {object} AttrResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/ingredients/{id} [patch]
func (h *IngredientHandler) Update(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := ingredientIDParam(c)
	if err != nil {
		return err
	}

	var req IngredientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ingredient, err := h.ingredientService.Update(c.Request().Context(), userID, id, req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, AttrResponse{ID: ingredient.ID, Name: ingredient.Name})
}

// Delete godoc
// @Summary Delete one of the authenticated user's ingredients
// @Tags recipe
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/ingredients/{id} [delete]
func (h *IngredientHandler) Delete(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := ingredientIDParam(c)
	if err != nil {
		return err
	}

	if err := h.ingredientService.Delete(c.Request().Context(), userID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.NoContent(http.StatusNoContent)
}
