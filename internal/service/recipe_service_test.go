package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "github.com/deeecoderrr/recipe-app-api/internal/errors"
	"github.com/deeecoderrr/recipe-app-api/internal/model"
	"github.com/deeecoderrr/recipe-app-api/internal/repository"
)

// MockRecipeRepository is a mock implementation of RecipeRepository.
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) Update(ctx context.Context, recipe *model.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, userID, id uint) (*model.Recipe, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) List(ctx context.Context, userID uint, filter repository.RecipeFilter) ([]model.Recipe, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, userID, id uint) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockRecipeRepository) ReplaceTags(ctx context.Context, recipe *model.Recipe, tags []model.Tag) error {
	args := m.Called(ctx, recipe, tags)
	return args.Error(0)
}

func (m *MockRecipeRepository) ReplaceIngredients(ctx context.Context, recipe *model.Recipe, ingredients []model.Ingredient) error {
	args := m.Called(ctx, recipe, ingredients)
	return args.Error(0)
}

// MockTagRepository is a mock implementation of TagRepository.
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) Create(ctx context.Context, tag *model.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) Update(ctx context.Context, tag *model.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) FindByID(ctx context.Context, userID, id uint) (*model.Tag, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tag), args.Error(1)
}

func (m *MockTagRepository) GetOrCreate(ctx context.Context, userID uint, name string) (*model.Tag, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tag), args.Error(1)
}

func (m *MockTagRepository) List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error) {
	args := m.Called(ctx, userID, assignedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockTagRepository) Delete(ctx context.Context, userID, id uint) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockIngredientRepository is a mock implementation of IngredientRepository.
type MockIngredientRepository struct {
	mock.Mock
}

func (m *MockIngredientRepository) Create(ctx context.Context, ingredient *model.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

func (m *MockIngredientRepository) Update(ctx context.Context, ingredient *model.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

func (m *MockIngredientRepository) FindByID(ctx context.Context, userID, id uint) (*model.Ingredient, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) GetOrCreate(ctx context.Context, userID uint, name string) (*model.Ingredient, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Ingredient, error) {
	args := m.Called(ctx, userID, assignedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) Delete(ctx context.Context, userID, id uint) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockMediaStore is a mock implementation of MediaStore.
type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Save(relPath string, data []byte) error {
	args := m.Called(relPath, data)
	return args.Error(0)
}

func (m *MockMediaStore) Remove(relPath string) error {
	args := m.Called(relPath)
	return args.Error(0)
}

func newTestRecipeService(recipeRepo *MockRecipeRepository, tagRepo *MockTagRepository, ingredientRepo *MockIngredientRepository, media *MockMediaStore) RecipeService {
	return NewRecipeService(recipeRepo, tagRepo, ingredientRepo, media, nil)
}

func TestRecipeService_Create_NestedTags(t *testing.T) {
	mockRecipeRepo := new(MockRecipeRepository)
	mockTagRepo := new(MockTagRepository)
	mockIngredientRepo := new(MockIngredientRepository)

	existingTag := &model.Tag{ID: 7, UserID: 1, Name: "Dessert"}
	newTag := &model.Tag{ID: 8, UserID: 1, Name: "Vegan"}

	// Existing name resolves to the same row, unseen name creates a new one.
	mockTagRepo.On("GetOrCreate", mock.Anything, uint(1), "Dessert").Return(existingTag, nil)
	mockTagRepo.On("GetOrCreate", mock.Anything, uint(1), "Vegan").Return(newTag, nil)
	// The resolved rows ride along on the insert itself.
	mockRecipeRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Recipe) bool {
		return len(r.Tags) == 2 && r.Tags[0].ID == 7 && r.Tags[1].ID == 8
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Recipe).ID = 42
	}).Return(nil)
	mockRecipeRepo.On("FindByID", mock.Anything, uint(1), uint(42)).Return(&model.Recipe{
		ID:     42,
		UserID: 1,
		Title:  "Cake",
		Tags:   []model.Tag{*existingTag, *newTag},
	}, nil)

	service := newTestRecipeService(mockRecipeRepo, mockTagRepo, mockIngredientRepo, nil)
	recipe, err := service.Create(context.Background(), 1, RecipeInput{
		Title:       "Cake",
		TimeMinutes: 30,
		Tags:        []string{"Dessert", "Vegan"},
	})

	assert.NoError(t, err)
	assert.NotNil(t, recipe)
	assert.Len(t, recipe.Tags, 2)

	mockRecipeRepo.AssertExpectations(t)
	mockTagRepo.AssertExpectations(t)
}

func TestRecipeService_Create_ResolutionFailureLeavesNoRecipe(t *testing.T) {
	mockRecipeRepo := new(MockRecipeRepository)
	mockTagRepo := new(MockTagRepository)
	mockIngredientRepo := new(MockIngredientRepository)

	mockTagRepo.On("GetOrCreate", mock.Anything, uint(1), "Dessert").Return(nil, assert.AnError)

	service := newTestRecipeService(mockRecipeRepo, mockTagRepo, mockIngredientRepo, nil)
	recipe, err := service.Create(context.Background(), 1, RecipeInput{
		Title:       "Cake",
		TimeMinutes: 30,
		Tags:        []string{"Dessert"},
	})

	assert.Error(t, err)
	assert.Nil(t, recipe)
	// Names are resolved before the insert, so a failure here never leaves
	// an orphaned recipe row behind.
	mockRecipeRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	mockTagRepo.AssertExpectations(t)
}

func TestRecipeService_Update_ClearTags(t *testing.T) {
	mockRecipeRepo := new(MockRecipeRepository)
	mockTagRepo := new(MockTagRepository)
	mockIngredientRepo := new(MockIngredientRepository)

	existing := &model.Recipe{ID: 5, UserID: 1, Title: "Pie", Tags: []model.Tag{{ID: 2, UserID: 1, Name: "Dessert"}}}

	mockRecipeRepo.On("FindByID", mock.Anything, uint(1), uint(5)).Return(existing, nil)
	mockRecipeRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Recipe")).Return(nil)
	mockRecipeRepo.On("ReplaceTags", mock.Anything, mock.AnythingOfType("*model.Recipe"), []model.Tag{}).Return(nil)

	service := newTestRecipeService(mockRecipeRepo, mockTagRepo, mockIngredientRepo, nil)
	empty := []string{}
	recipe, err := service.Update(context.Background(), 1, 5, RecipeUpdate{Tags: &empty})

	assert.NoError(t, err)
	assert.NotNil(t, recipe)
	// Tag rows themselves are never deleted when clearing associations.
	mockTagRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)

	mockRecipeRepo.AssertExpectations(t)
}

func TestRecipeService_Update_AbsentTagsUntouched(t *testing.T) {
	mockRecipeRepo := new(MockRecipeRepository)
	mockTagRepo := new(MockTagRepository)
	mockIngredientRepo := new(MockIngredientRepository)

	existing := &model.Recipe{ID: 5, UserID: 1, Title: "Pie"}

	mockRecipeRepo.On("FindByID", mock.Anything, uint(1), uint(5)).Return(existing, nil)
	mockRecipeRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Recipe")).Return(nil)

	service := newTestRecipeService(mockRecipeRepo, mockTagRepo, mockIngredientRepo, nil)
	title := "Updated Pie"
	recipe, err := service.Update(context.Background(), 1, 5, RecipeUpdate{Title: &title})

	assert.NoError(t, err)
	assert.Equal(t, "Updated Pie", recipe.Title)
	mockRecipeRepo.AssertNotCalled(t, "ReplaceTags", mock.Anything, mock.Anything, mock.Anything)
	mockRecipeRepo.AssertNotCalled(t, "ReplaceIngredients", mock.Anything, mock.Anything, mock.Anything)

	mockRecipeRepo.AssertExpectations(t)
}

func TestRecipeService_Get_OtherUsersRecipe(t *testing.T) {
	mockRecipeRepo := new(MockRecipeRepository)
	mockTagRepo := new(MockTagRepository)
	mockIngredientRepo := new(MockIngredientRepository)

	// Ownership is enforced by query filtering, so a foreign recipe comes
	// back as a missing record.
	mockRecipeRepo.On("FindByID", mock.Anything, uint(2), uint(5)).Return(nil, gorm.ErrRecordNotFound)

	service := newTestRecipeService(mockRecipeRepo, mockTagRepo, mockIngredientRepo, nil)
	recipe, err := service.Get(context.Background(), 2, 5)

	assert.Nil(t, recipe)
	assert.Equal(t, apperrors.ErrRecipeNotFound, err)

	mockRecipeRepo.AssertExpectations(t)
}

func TestRecipeService_Delete_NotFound(t *testing.T) {
	mockRecipeRepo := new(MockRecipeRepository)
	mockTagRepo := new(MockTagRepository)
	mockIngredientRepo := new(MockIngredientRepository)

	mockRecipeRepo.On("Delete", mock.Anything, uint(2), uint(5)).Return(gorm.ErrRecordNotFound)

	service := newTestRecipeService(mockRecipeRepo, mockTagRepo, mockIngredientRepo, nil)
	err := service.Delete(context.Background(), 2, 5)

	assert.Equal(t, apperrors.ErrRecipeNotFound, err)

	mockRecipeRepo.AssertExpectations(t)
}

func encodeTestPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	assert.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRecipeService_UploadImage(t *testing.T) {
	t.Run("valid image stored under upload namespace", func(t *testing.T) {
		mockRecipeRepo := new(MockRecipeRepository)
		mockMedia := new(MockMediaStore)

		existing := &model.Recipe{ID: 5, UserID: 1, Title: "Pie"}
		mockRecipeRepo.On("FindByID", mock.Anything, uint(1), uint(5)).Return(existing, nil)
		mockMedia.On("Save", mock.MatchedBy(func(path string) bool {
			return strings.HasPrefix(path, "uploads/recipe/") && strings.HasSuffix(path, ".png")
		}), mock.Anything).Return(nil)
		mockRecipeRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Recipe")).Return(nil)

		service := newTestRecipeService(mockRecipeRepo, new(MockTagRepository), new(MockIngredientRepository), mockMedia)
		recipe, err := service.UploadImage(context.Background(), 1, 5, "photo.png", encodeTestPNG(t))

		assert.NoError(t, err)
		assert.NotEmpty(t, recipe.Image)

		mockRecipeRepo.AssertExpectations(t)
		mockMedia.AssertExpectations(t)
	})

	t.Run("undecodable payload rejected", func(t *testing.T) {
		mockRecipeRepo := new(MockRecipeRepository)
		mockMedia := new(MockMediaStore)

		existing := &model.Recipe{ID: 5, UserID: 1, Title: "Pie"}
		mockRecipeRepo.On("FindByID", mock.Anything, uint(1), uint(5)).Return(existing, nil)

		service := newTestRecipeService(mockRecipeRepo, new(MockTagRepository), new(MockIngredientRepository), mockMedia)
		recipe, err := service.UploadImage(context.Background(), 1, 5, "notanimage.txt", []byte("just text"))

		assert.Nil(t, recipe)
		assert.Equal(t, apperrors.ErrInvalidImage, err)
		mockMedia.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
