package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "github.com/deeecoderrr/recipe-app-api/internal/errors"
	"github.com/deeecoderrr/recipe-app-api/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		email    string
		expected string
	}{
		{"test1@EXAMPLE.com", "test1@example.com"},
		{"Test2@Example.com", "Test2@example.com"},
		{"TEST3@EXAMPLE.COM", "TEST3@example.com"},
		{"test4@example.COM", "test4@example.com"},
		{"no-at-sign", "no-at-sign"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeEmail(tt.email))
		})
	}
}

func TestUserService_Create(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		nameField     string
		setupMock     func(*MockUserRepository)
		expectedEmail string
		expectedError error
	}{
		{
			name:      "successful creation normalizes email domain",
			email:     "Test@EXAMPLE.com",
			password:  "password123",
			nameField: "Test User",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "Test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedEmail: "Test@example.com",
			expectedError: nil,
		},
		{
			name:          "empty email rejected",
			email:         "",
			password:      "password123",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrEmailRequired,
		},
		{
			name:     "duplicate email rejected",
			email:    "existing@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewUserService(mockRepo)
			user, err := service.Create(context.Background(), tt.email, tt.password, tt.nameField)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.expectedEmail, user.Email)
				assert.Equal(t, tt.nameField, user.Name)
				assert.False(t, user.IsStaff)
				assert.False(t, user.IsSuperuser)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_CreateSuperuser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "admin@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	service := NewUserService(mockRepo)
	user, err := service.CreateSuperuser(context.Background(), "admin@example.com", "password123", "Admin")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)

	mockRepo.AssertExpectations(t)
}

func TestUserService_Update(t *testing.T) {
	t.Run("new password is re-hashed", func(t *testing.T) {
		oldHash, _ := bcrypt.GenerateFromPassword([]byte("oldpass"), 10)
		existing := &model.User{ID: 1, Email: "user@example.com", PasswordHash: string(oldHash)}

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		service := NewUserService(mockRepo)
		newPassword := "newpassword"
		user, err := service.Update(context.Background(), 1, UserUpdate{Password: &newPassword})

		assert.NoError(t, err)
		assert.NotEqual(t, string(oldHash), user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(newPassword)))

		mockRepo.AssertExpectations(t)
	})

	t.Run("name-only update leaves email and password alone", func(t *testing.T) {
		existing := &model.User{ID: 1, Email: "user@example.com", PasswordHash: "hash", Name: "Old"}

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		service := NewUserService(mockRepo)
		newName := "New Name"
		user, err := service.Update(context.Background(), 1, UserUpdate{Name: &newName})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", user.Name)
		assert.Equal(t, "user@example.com", user.Email)
		assert.Equal(t, "hash", user.PasswordHash)

		mockRepo.AssertExpectations(t)
	})
}
