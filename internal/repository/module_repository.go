package repository

import (
	"context"

	"academy_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(ctx context.Context, module *model.CourseModule) error {
	return r.DB.WithContext(ctx).Create(module).Error
}

func (r *ModuleRepository) Update(ctx context.Context, module *model.CourseModule) error {
	return r.DB.WithContext(ctx).Omit("Lessons").Save(module).Error
}

func (r *ModuleRepository) FindByID(ctx context.Context, id uint) (*model.CourseModule, error) {
	var module model.CourseModule
	if err := r.DB.WithContext(ctx).First(&module, id).Error; err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *ModuleRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lessonIDs := tx.Model(&model.Lesson{}).Select("id").Where("module_id = ?", id)
		if err := tx.Where("lesson_id IN (?)", lessonIDs).Delete(&model.LessonAttachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("module_id = ?", id).Delete(&model.Lesson{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.CourseModule{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
