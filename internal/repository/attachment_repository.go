package repository

import (
	"context"

	"academy_backend/internal/model"

	"gorm.io/gorm"
)

type AttachmentRepository struct {
	DB *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{DB: db}
}

func (r *AttachmentRepository) Create(ctx context.Context, attachment *model.LessonAttachment) error {
	return r.DB.WithContext(ctx).Create(attachment).Error
}

func (r *AttachmentRepository) FindByID(ctx context.Context, id uint) (*model.LessonAttachment, error) {
	var attachment model.LessonAttachment
	if err := r.DB.WithContext(ctx).First(&attachment, id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *AttachmentRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&model.LessonAttachment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
