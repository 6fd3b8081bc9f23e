package repository

import (
	"context"

	"academy_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func byDisplayOrder(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC").Order("id ASC")
}

func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.DB.WithContext(ctx).Create(course).Error
}

func (r *CourseRepository) Update(ctx context.Context, course *model.Course) error {
	return r.DB.WithContext(ctx).Omit("Modules").Save(course).Error
}

// Delete removes the course together with its modules, lessons and attachments.
func (r *CourseRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		moduleIDs := tx.Model(&model.CourseModule{}).Select("id").Where("course_id = ?", id)
		lessonIDs := tx.Model(&model.Lesson{}).Select("id").Where("module_id IN (?)", moduleIDs)

		if err := tx.Where("lesson_id IN (?)", lessonIDs).Delete(&model.LessonAttachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("module_id IN (?)", moduleIDs).Delete(&model.Lesson{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.CourseModule{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Course{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *CourseRepository) FindByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	if err := r.DB.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// GetCourseTree loads a course with its modules, lessons and attachments,
// each level ordered by display_order then id.
func (r *CourseRepository) GetCourseTree(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).
		Preload("Modules", byDisplayOrder).
		Preload("Modules.Lessons", byDisplayOrder).
		Preload("Modules.Lessons.Attachments", byDisplayOrder).
		First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// ListTrees loads the full trees of several courses in one pass.
func (r *CourseRepository) ListTrees(ctx context.Context, publishedOnly bool) ([]model.Course, error) {
	var courses []model.Course
	query := r.DB.WithContext(ctx).
		Preload("Modules", byDisplayOrder).
		Preload("Modules.Lessons", byDisplayOrder).
		Order("id ASC")
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	err := query.Find(&courses).Error
	return courses, err
}
