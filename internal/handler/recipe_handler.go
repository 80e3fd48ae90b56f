package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/deeecoderrr/recipe-app-api/internal/errors"
	"github.com/deeecoderrr/recipe-app-api/internal/model"
	"github.com/deeecoderrr/recipe-app-api/internal/repository"
	"github.com/deeecoderrr/recipe-app-api/internal/service"
)

// RecipeHandler handles recipe endpoints.
type RecipeHandler struct {
	recipeService service.RecipeService
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(recipeService service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// NamedInput is a nested tag/ingredient reference by name.
type NamedInput struct {
	Name string `json:"name" validate:"required"`
}

// CreateRecipeRequest represents a recipe creation payload. Any
// client-supplied owner field is ignored; ownership comes from the token.
// TimeMinutes and Price are pointers so that an absent field is rejected
// while legitimate zero values pass through.
type CreateRecipeRequest struct {
	Title       string           `json:"title" validate:"required"`
	TimeMinutes *int             `json:"time_minutes" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Description string           `json:"description"`
	Link        string           `json:"link"`
	Tags        []NamedInput     `json:"tags" validate:"omitempty,dive"`
	Ingredients []NamedInput     `json:"ingredients" validate:"omitempty,dive"`
}

// UpdateRecipeRequest represents a full or partial recipe update. An absent
// tags/ingredients key leaves associations untouched; an empty list clears
// them.
type UpdateRecipeRequest struct {
	Title       *string          `json:"title"`
	TimeMinutes *int             `json:"time_minutes"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	Link        *string          `json:"link"`
	Tags        *[]NamedInput    `json:"tags" validate:"omitempty,dive"`
	Ingredients *[]NamedInput    `json:"ingredients" validate:"omitempty,dive"`
}

// AttrResponse represents a tag or ingredient on a recipe.
type AttrResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RecipeResponse is the list representation of a recipe.
type RecipeResponse struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	TimeMinutes int            `json:"time_minutes"`
	Price       string         `json:"price"`
	Link        string         `json:"link"`
	Tags        []AttrResponse `json:"tags"`
	Ingredients []AttrResponse `json:"ingredients"`
}

// RecipeDetailResponse is the detail representation, adding description and
// image to the list fields.
type RecipeDetailResponse struct {
	RecipeResponse
	Description string `json:"description"`
	Image       string `json:"image"`
}

func toAttrResponses(tags []model.Tag, ingredients []model.Ingredient) ([]AttrResponse, []AttrResponse) {
	t := make([]AttrResponse, 0, len(tags))
	for _, tag := range tags {
		t = append(t, AttrResponse{ID: tag.ID, Name: tag.Name})
	}
	i := make([]AttrResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		i = append(i, AttrResponse{ID: ingredient.ID, Name: ingredient.Name})
	}
	return t, i
}

func toRecipeResponse(r model.Recipe) RecipeResponse {
	tags, ingredients := toAttrResponses(r.Tags, r.Ingredients)
	return RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price.String(),
		Link:        r.Link,
		Tags:        tags,
		Ingredients: ingredients,
	}
}

func toRecipeDetailResponse(r *model.Recipe) RecipeDetailResponse {
	return RecipeDetailResponse{
		RecipeResponse: toRecipeResponse(*r),
		Description:    r.Description,
		Image:          r.Image,
	}
}

// parseIDList parses a comma-separated id list query parameter.
func parseIDList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, errors.ErrInvalidFilter
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

func recipeIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid recipe id",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}

func namedInputNames(inputs []NamedInput) []string {
	names := make([]string, 0, len(inputs))
	for _, in := range inputs {
		names = append(names, in.Name)
	}
	return names
}

// List godoc
// @Summary List the authenticated user's recipes
// @Tags recipe
// @Produce json
// @Security BearerAuth
// @Param tags query string false "Comma-separated tag ids to filter by"
// @Param ingredients query string false "Comma-separated ingredient ids to filter by"
// @Success 200 {array} RecipeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipe/recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	tagIDs, err := parseIDList(c.QueryParam("tags"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	ingredientIDs, err := parseIDList(c.QueryParam("ingredients"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	recipes, err := h.recipeService.List(c.Request().Context(), userID, repository.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list recipes")
	}

	out := make([]RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		out = append(out, toRecipeResponse(recipe))
	}
	return c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Retrieve one of the authenticated user's recipes
// @Tags recipe
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 200 {object} RecipeDetailResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := recipeIDParam(c)
	if err != nil {
		return err
	}

	recipe, err := h.recipeService.Get(c.Request().Context(), userID, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, toRecipeDetailResponse(recipe))
}

// Create godoc
// @Summary Create a recipe, resolving nested tags/ingredients by name
// @Tags recipe
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRecipeRequest true "Recipe data"
// @Success 201 {object} RecipeDetailResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipe/recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req CreateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recipe, err := h.recipeService.Create(c.Request().Context(), userID, service.RecipeInput{
		Title:       req.Title,
		TimeMinutes: *req.TimeMinutes,
		Price:       *req.Price,
		Description: req.Description,
		Link:        req.Link,
		Tags:        namedInputNames(req.Tags),
		Ingredients: namedInputNames(req.Ingredients),
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, toRecipeDetailResponse(recipe))
}

// Update godoc
// @Summary Update one of the authenticated user's recipes
// @Tags recipe
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param request body UpdateRecipeRequest true "Recipe changes"
// @Success 200 {object} RecipeDetailResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/recipes/{id} [patch]
func (h *RecipeHandler) Update(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := recipeIDParam(c)
	if err != nil {
		return err
	}

	var req UpdateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := service.RecipeUpdate{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Description: req.Description,
		Link:        req.Link,
	}
	if req.Tags != nil {
		names := namedInputNames(*req.Tags)
		update.Tags = &names
	}
	if req.Ingredients != nil {
		names := namedInputNames(*req.Ingredients)
		update.Ingredients = &names
	}

	recipe, err := h.recipeService.Update(c.Request().Context(), userID, id, update)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, toRecipeDetailResponse(recipe))
}

// Delete godoc
// @Summary Delete one of the authenticated user's recipes
// @Tags recipe
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := recipeIDParam(c)
	if err != nil {
		return err
	}

	if err := h.recipeService.Delete(c.Request().Context(), userID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.NoContent(http.StatusNoContent)
}

// UploadImage godoc
// @Summary Upload an image for one of the authenticated user's recipes
// @Tags recipe
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param image formData file true "Image file"
// @Success 200 {object} RecipeDetailResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/recipes/{id}/upload-image [post]
func (h *RecipeHandler) UploadImage(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := recipeIDParam(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "image field is required",
			Code:  "IMAGE_REQUIRED",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "unable to read image",
			Code:  "INVALID_IMAGE",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "unable to read image",
			Code:  "INVALID_IMAGE",
		})
	}

	recipe, err := h.recipeService.UploadImage(c.Request().Context(), userID, id, fileHeader.Filename, data)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, toRecipeDetailResponse(recipe))
}
