package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"time"

	// Registered decoders for upload validation.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/deeecoderrr/recipe-app-api/internal/cache"
	apperrors "github.com/deeecoderrr/recipe-app-api/internal/errors"
	"github.com/deeecoderrr/recipe-app-api/internal/model"
	"github.com/deeecoderrr/recipe-app-api/internal/repository"
	"github.com/deeecoderrr/recipe-app-api/internal/storage"
)

const recipeCacheTTL = 5 * time.Minute

// MediaStore persists uploaded media files.
type MediaStore interface {
	Save(relPath string, data []byte) error
	Remove(relPath string) error
}

// Ensure the disk store satisfies the service interface.
var _ MediaStore = (*storage.MediaStore)(nil)

// RecipeInput carries fields for creating a recipe. Tag and ingredient names
// are resolved get-or-create against the owner's existing rows.
type RecipeInput struct {
	Title       string
	TimeMinutes int
	Price       decimal.Decimal
	Description string
	Link        string
	Tags        []string
	Ingredients []string
}

// RecipeUpdate carries partial recipe changes. Nil fields are left untouched.
// A non-nil empty Tags/Ingredients slice clears the association set.
type RecipeUpdate struct {
	Title       *string
	TimeMinutes *int
	Price       *decimal.Decimal
	Description *string
	Link        *string
	Tags        *[]string
	Ingredients *[]string
}

// RecipeService handles recipe operations, all scoped to the requesting user.
type RecipeService interface {
	List(ctx context.Context, userID uint, filter repository.RecipeFilter) ([]model.Recipe, error)
	Get(ctx context.Context, userID, id uint) (*model.Recipe, error)
	Create(ctx context.Context, userID uint, input RecipeInput) (*model.Recipe, error)
	Update(ctx context.Context, userID, id uint, update RecipeUpdate) (*model.Recipe, error)
	Delete(ctx context.Context, userID, id uint) error
	UploadImage(ctx context.Context, userID, id uint, filename string, data []byte) (*model.Recipe, error)
}

type recipeService struct {
	recipeRepo     repository.RecipeRepository
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
	media          MediaStore
	cache          *cache.Client
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingredientRepo repository.IngredientRepository,
	media MediaStore,
	cache *cache.Client,
) RecipeService {
	return &recipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		media:          media,
		cache:          cache,
	}
}

func (s *recipeService) cacheKey(userID, id uint) string {
	return fmt.Sprintf("recipe:%d:%d", userID, id)
}

func (s *recipeService) List(ctx context.Context, userID uint, filter repository.RecipeFilter) ([]model.Recipe, error) {
	return s.recipeRepo.List(ctx, userID, filter)
}

// Get retrieves the user's recipe with caching. A foreign recipe surfaces
// as not found.
func (s *recipeService) Get(ctx context.Context, userID, id uint) (*model.Recipe, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID, id)); data != nil {
		var cached model.Recipe
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	recipe, err := s.recipeRepo.FindByID(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrRecipeNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(recipe); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(userID, id), payload, recipeCacheTTL)
	}

	return recipe, nil
}

// Create resolves nested tag and ingredient names get-or-create, then
// inserts the recipe with its associations in a single write. A failed name
// resolution leaves no recipe row behind; resolved tags and ingredients are
// reusable per-user entities and are kept either way.
func (s *recipeService) Create(ctx context.Context, userID uint, input RecipeInput) (*model.Recipe, error) {
	recipe := &model.Recipe{
		UserID:      userID,
		Title:       input.Title,
		TimeMinutes: input.TimeMinutes,
		Price:       input.Price,
		Description: input.Description,
		Link:        input.Link,
	}

	if len(input.Tags) > 0 {
		tags, err := s.resolveTags(ctx, userID, input.Tags)
		if err != nil {
			return nil, err
		}
		recipe.Tags = tags
	}
	if len(input.Ingredients) > 0 {
		ingredients, err := s.resolveIngredients(ctx, userID, input.Ingredients)
		if err != nil {
			return nil, err
		}
		recipe.Ingredients = ingredients
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	return s.reload(ctx, userID, recipe.ID)
}

// Update applies partial changes. Absent tag/ingredient keys leave the
// association sets untouched; supplied sets replace them wholesale.
func (s *recipeService) Update(ctx context.Context, userID, id uint, update RecipeUpdate) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrRecipeNotFound
		}
		return nil, err
	}

	if update.Title != nil {
		recipe.Title = *update.Title
	}
	if update.TimeMinutes != nil {
		recipe.TimeMinutes = *update.TimeMinutes
	}
	if update.Price != nil {
		recipe.Price = *update.Price
	}
	if update.Description != nil {
		recipe.Description = *update.Description
	}
	if update.Link != nil {
		recipe.Link = *update.Link
	}

	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}

	if update.Tags != nil {
		tags, err := s.resolveTags(ctx, userID, *update.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.recipeRepo.ReplaceTags(ctx, recipe, tags); err != nil {
			return nil, fmt.Errorf("set tags: %w", err)
		}
	}
	if update.Ingredients != nil {
		ingredients, err := s.resolveIngredients(ctx, userID, *update.Ingredients)
		if err != nil {
			return nil, err
		}
		if err := s.recipeRepo.ReplaceIngredients(ctx, recipe, ingredients); err != nil {
			return nil, fmt.Errorf("set ingredients: %w", err)
		}
	}

	_ = s.cache.Delete(ctx, s.cacheKey(userID, id))

	return s.reload(ctx, userID, id)
}

func (s *recipeService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.recipeRepo.Delete(ctx, userID, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrRecipeNotFound
		}
		return fmt.Errorf("delete recipe: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID, id))
	return nil
}

// UploadImage validates that the payload decodes as an image and stores it
// at uploads/recipe/{uuid}{ext}, replacing any previously stored file.
func (s *recipeService) UploadImage(ctx context.Context, userID, id uint, filename string, data []byte) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrRecipeNotFound
		}
		return nil, err
	}

	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return nil, apperrors.ErrInvalidImage
	}

	path := storage.RecipeImagePath(uuid.New(), filename)
	if err := s.media.Save(path, data); err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}

	old := recipe.Image
	recipe.Image = path
	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, fmt.Errorf("update recipe image: %w", err)
	}
	if old != "" && old != path {
		_ = s.media.Remove(old)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(userID, id))

	return recipe, nil
}

func (s *recipeService) reload(ctx context.Context, userID, id uint) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("reload recipe: %w", err)
	}
	return recipe, nil
}

func (s *recipeService) resolveTags(ctx context.Context, userID uint, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		tag, err := s.tagRepo.GetOrCreate(ctx, userID, name)
		if err != nil {
			return nil, fmt.Errorf("get or create tag %q: %w", name, err)
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (s *recipeService) resolveIngredients(ctx context.Context, userID uint, names []string) ([]model.Ingredient, error) {
	ingredients := make([]model.Ingredient, 0, len(names))
	for _, name := range names {
		ingredient, err := s.ingredientRepo.GetOrCreate(ctx, userID, name)
		if err != nil {
			return nil, fmt.Errorf("get or create ingredient %q: %w", name, err)
		}
		ingredients = append(ingredients, *ingredient)
	}
	return ingredients, nil
}
