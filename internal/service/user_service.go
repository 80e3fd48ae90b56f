package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "github.com/deeecoderrr/recipe-app-api/internal/errors"
	"github.com/deeecoderrr/recipe-app-api/internal/model"
	"github.com/deeecoderrr/recipe-app-api/internal/repository"
)

const bcryptCost = 10

// UserUpdate carries optional profile changes. Nil fields are left untouched.
type UserUpdate struct {
	Email    *string
	Name     *string
	Password *string
}

// UserService handles account creation and profile management.
type UserService interface {
	Create(ctx context.Context, email, password, name string) (*model.User, error)
	// CreateSuperuser creates an account with staff and superuser flags set.
	CreateSuperuser(ctx context.Context, email, password, name string) (*model.User, error)
	Get(ctx context.Context, id uint) (*model.User, error)
	Update(ctx context.Context, id uint, update UserUpdate) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService over the user repository.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// NormalizeEmail lowercases the domain part of an email address. The local
// part is preserved as given.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

func (s *userService) Create(ctx context.Context, email, password, name string) (*model.User, error) {
	return s.create(ctx, email, password, name, false)
}

func (s *userService) CreateSuperuser(ctx context.Context, email, password, name string) (*model.User, error) {
	return s.create(ctx, email, password, name, true)
}

func (s *userService) create(ctx context.Context, email, password, name string, superuser bool) (*model.User, error) {
	if email == "" {
		return nil, apperrors.ErrEmailRequired
	}
	email = NormalizeEmail(email)

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         name,
		IsStaff:      superuser,
		IsSuperuser:  superuser,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *userService) Get(ctx context.Context, id uint) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies profile changes. A new password is re-hashed; the stored
// hash never leaves the service.
func (s *userService) Update(ctx context.Context, id uint, update UserUpdate) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Email != nil {
		email := NormalizeEmail(*update.Email)
		if email == "" {
			return nil, apperrors.ErrEmailRequired
		}
		if email != user.Email {
			existing, err := s.repo.FindByEmail(ctx, email)
			if err == nil && existing != nil {
				return nil, apperrors.ErrEmailTaken
			}
			if err != nil && err != gorm.ErrRecordNotFound {
				return nil, fmt.Errorf("check user existence: %w", err)
			}
		}
		user.Email = email
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}
