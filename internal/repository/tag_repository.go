package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/deeecoderrr/recipe-app-api/internal/model"
)

// TagRepository defines tag persistence operations, all scoped to the
// owning user.
type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) error
	Update(ctx context.Context, tag *model.Tag) error
	FindByID(ctx context.Context, userID, id uint) (*model.Tag, error)
	// GetOrCreate resolves a tag by (owner, name), inserting it when absent.
	GetOrCreate(ctx context.Context, userID uint, name string) (*model.Tag, error)
	// List returns the user's tags ordered by descending name. With
	// assignedOnly set, only tags attached to at least one recipe are
	// returned, deduplicated.
	List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error)
	Delete(ctx context.Context, userID, id uint) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(tag).Error
}

func (r *tagRepository) Update(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(tag).Error
}

func (r *tagRepository) FindByID(ctx context.Context, userID, id uint) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetOrCreate(ctx context.Context, userID uint, name string) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.WithContext(ctx).
		Where(model.Tag{UserID: userID, Name: name}).
		FirstOrCreate(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error) {
	q := r.db.WithContext(ctx).Model(&model.Tag{}).
		Where("tags.user_id = ?", userID)

	if assignedOnly {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id")
	}

	var tags []model.Tag
	err := q.Distinct("tags.*").
		Order("tags.name DESC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// Delete removes the user's tag together with its recipe associations.
// Returns gorm.ErrRecordNotFound when the tag does not belong to the user.
func (r *tagRepository) Delete(ctx context.Context, userID, id uint) error {
	var tag model.Tag
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&tag).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(&tag).Error
}
