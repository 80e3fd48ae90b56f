package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/deeecoderrr/recipe-app-api/internal/errors"
	"github.com/deeecoderrr/recipe-app-api/internal/model"
	"github.com/deeecoderrr/recipe-app-api/internal/repository"
)

// TagService handles tag operations scoped to the requesting user.
type TagService interface {
	List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error)
	Get(ctx context.Context, userID, id uint) (*model.Tag, error)
	Create(ctx context.Context, userID uint, name string) (*model.Tag, error)
	Update(ctx context.Context, userID, id uint, name string) (*model.Tag, error)
	Delete(ctx context.Context, userID, id uint) error
}

type tagService struct {
	repo repository.TagRepository
}

// NewTagService creates a new tag service.
func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error) {
	return s.repo.List(ctx, userID, assignedOnly)
}

func (s *tagService) Get(ctx context.Context, userID, id uint) (*model.Tag, error) {
	tag, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Create(ctx context.Context, userID uint, name string) (*model.Tag, error) {
	tag := &model.Tag{UserID: userID, Name: name}
	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}

func (s *tagService) Update(ctx context.Context, userID, id uint, name string) (*model.Tag, error) {
	tag, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTagNotFound
		}
		return nil, err
	}

	tag.Name = name
	if err := s.repo.Update(ctx, tag); err != nil {
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return tag, nil
}

func (s *tagService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrTagNotFound
		}
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
