package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/deeecoderrr/recipe-app-api/internal/errors"
	"github.com/deeecoderrr/recipe-app-api/internal/model"
	"github.com/deeecoderrr/recipe-app-api/internal/repository"
)

// IngredientService handles ingredient operations scoped to the requesting user.
type IngredientService interface {
	List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Ingredient, error)
	Get(ctx context.Context, userID, id uint) (*model.Ingredient, error)
	Create(ctx context.Context, userID uint, name string) (*model.Ingredient, error)
	Update(ctx context.Context, userID, id uint, name string) (*model.Ingredient, error)
	Delete(ctx context.Context, userID, id uint) error
}

type ingredientService struct {
	repo repository.IngredientRepository
}

// NewIngredientService creates a new ingredient service.
func NewIngredientService(repo repository.IngredientRepository) IngredientService {
	return &ingredientService{repo: repo}
}

func (s *ingredientService) List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Ingredient, error) {
	return s.repo.List(ctx, userID, assignedOnly)
}

func (s *ingredientService) Get(ctx context.Context, userID, id uint) (*model.Ingredient, error) {
	ingredient, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrIngredientNotFound
		}
		return nil, err
	}
	return ingredient, nil
}

func (s *ingredientService) Create(ctx context.Context, userID uint, name string) (*model.Ingredient, error) {
	ingredient := &model.Ingredient{UserID: userID, Name: name}
	if err := s.repo.Create(ctx, ingredient); err != nil {
		return nil, fmt.Errorf("create ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *ingredientService) Update(ctx context.Context, userID, id uint, name string) (*model.Ingredient, error) {
	ingredient, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrIngredientNotFound
		}
		return nil, err
	}

	ingredient.Name = name
	if err := s.repo.Update(ctx, ingredient); err != nil {
		return nil, fmt.Errorf("update ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *ingredientService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrIngredientNotFound
		}
		return fmt.Errorf("delete ingredient: %w", err)
	}
	return nil
}
