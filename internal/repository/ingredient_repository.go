package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/deeecoderrr/recipe-app-api/internal/model"
)

// IngredientRepository defines ingredient persistence operations, all scoped
// to the owning user.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *model.Ingredient) error
	Update(ctx context.Context, ingredient *model.Ingredient) error
	FindByID(ctx context.Context, userID, id uint) (*model.Ingredient, error)
	// GetOrCreate resolves an ingredient by (owner, name), inserting it when absent.
	GetOrCreate(ctx context.Context, userID uint, name string) (*model.Ingredient, error)
	// List returns the user's ingredients ordered by descending name. With
	// assignedOnly set, only ingredients attached to at least one recipe are
	// returned, deduplicated.
	List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Ingredient, error)
	Delete(ctx context.Context, userID, id uint) error
}

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository.
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) Create(ctx context.Context, ingredient *model.Ingredient) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ingredient).Error
}

func (r *ingredientRepository) Update(ctx context.Context, ingredient *model.Ingredient) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ingredient).Error
}

func (r *ingredientRepository) FindByID(ctx context.Context, userID, id uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&ingredient).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetOrCreate(ctx context.Context, userID uint, name string) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	err := r.db.WithContext(ctx).
		Where(model.Ingredient{UserID: userID, Name: name}).
		FirstOrCreate(&ingredient).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Ingredient, error) {
	q := r.db.WithContext(ctx).Model(&model.Ingredient{}).
		Where("ingredients.user_id = ?", userID)

	if assignedOnly {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id")
	}

	var ingredients []model.Ingredient
	err := q.Distinct("ingredients.*").
		Order("ingredients.name DESC").
		Find(&ingredients).Error
	if err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Delete removes the user's ingredient together with its recipe associations.
// Returns gorm.ErrRecordNotFound when the ingredient does not belong to the user.
func (r *ingredientRepository) Delete(ctx context.Context, userID, id uint) error {
	var ingredient model.Ingredient
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&ingredient).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(&ingredient).Error
}
