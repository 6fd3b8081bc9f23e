package repository

import (
	"context"

	"academy_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	return r.DB.WithContext(ctx).Omit("Module", "Attachments").Create(lesson).Error
}

func (r *LessonRepository) Update(ctx context.Context, lesson *model.Lesson) error {
	return r.DB.WithContext(ctx).Omit("Module", "Attachments").Save(lesson).Error
}

// FindByID returns the lesson with its module (for the course id) and its
// attachments in display order.
func (r *LessonRepository) FindByID(ctx context.Context, id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.WithContext(ctx).
		Preload("Module").
		Preload("Attachments", byDisplayOrder).
		First(&lesson, id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", id).Delete(&model.LessonAttachment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Lesson{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
