package repository

import (
	"context"

	"academy_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Upsert writes the (user, lesson) row. On conflict only completed, position
// and updated_at change, so completed_at keeps the first completion time.
func (r *ProgressRepository) Upsert(ctx context.Context, progress *model.LessonProgress) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"completed", "last_watched_position", "updated_at"}),
		}).
		Create(progress).Error
}

func (r *ProgressRepository) Find(ctx context.Context, userID, lessonID uint) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// ListForLessons returns the user's rows for the given lessons keyed by lesson id.
func (r *ProgressRepository) ListForLessons(ctx context.Context, userID uint, lessonIDs []uint) (map[uint]model.LessonProgress, error) {
	result := make(map[uint]model.LessonProgress)
	if len(lessonIDs) == 0 {
		return result, nil
	}

	var rows []model.LessonProgress
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.LessonID] = row
	}
	return result, nil
}

func (r *ProgressRepository) Count(ctx context.Context, userID, lessonID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.LessonProgress{}).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Count(&count).Error
	return count, err
}
