package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/deeecoderrr/recipe-app-api/internal/model"
)

// RecipeFilter narrows recipe listings. IDs filter by membership: a recipe
// matches when it carries at least one of the given tags/ingredients.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeRepository defines recipe persistence operations. Every lookup is
// scoped to the owning user so foreign records surface as not found.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	Update(ctx context.Context, recipe *model.Recipe) error
	FindByID(ctx context.Context, userID, id uint) (*model.Recipe, error)
	List(ctx context.Context, userID uint, filter RecipeFilter) ([]model.Recipe, error)
	Delete(ctx context.Context, userID, id uint) error
	ReplaceTags(ctx context.Context, recipe *model.Recipe, tags []model.Tag) error
	ReplaceIngredients(ctx context.Context, recipe *model.Recipe, ingredients []model.Ingredient) error
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Create inserts the recipe row together with join rows for any tags and
// ingredients already set on it, in one transaction. The tag/ingredient rows
// themselves must exist; they are referenced, never upserted, here.
func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).
		Omit("Tags.*", "Ingredients.*", "User").
		Create(recipe).Error
}

// Update persists scalar recipe fields, leaving associations untouched.
func (r *recipeRepository) Update(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(recipe).Error
}

// FindByID returns the user's recipe with tags and ingredients preloaded.
func (r *recipeRepository) FindByID(ctx context.Context, userID, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List returns the user's recipes ordered by descending id, optionally
// narrowed by tag/ingredient membership, deduplicated.
func (r *recipeRepository) List(ctx context.Context, userID uint, filter RecipeFilter) ([]model.Recipe, error) {
	q := r.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("recipes.user_id = ?", userID)

	if len(filter.TagIDs) > 0 {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", filter.IngredientIDs)
	}

	var recipes []model.Recipe
	err := q.Distinct("recipes.*").
		Preload("Tags").
		Preload("Ingredients").
		Order("recipes.id DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// Delete removes the user's recipe and its join rows. Returns
// gorm.ErrRecordNotFound when the recipe does not belong to the user.
func (r *recipeRepository) Delete(ctx context.Context, userID, id uint) error {
	var recipe model.Recipe
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(&recipe).Error
}

// ReplaceTags swaps the recipe's tag set wholesale. An empty slice clears
// the associations without deleting the tag rows.
func (r *recipeRepository) ReplaceTags(ctx context.Context, recipe *model.Recipe, tags []model.Tag) error {
	assoc := r.db.WithContext(ctx).Model(recipe).Association("Tags")
	if len(tags) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(tags)
}

// ReplaceIngredients swaps the recipe's ingredient set wholesale.
func (r *recipeRepository) ReplaceIngredients(ctx context.Context, recipe *model.Recipe, ingredients []model.Ingredient) error {
	assoc := r.db.WithContext(ctx).Model(recipe).Association("Ingredients")
	if len(ingredients) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(ingredients)
}
