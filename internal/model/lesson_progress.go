package model

import "time"

// LessonProgress holds one row per (user, lesson). Writes are upserts and the
// last write wins.
// swagger:model LessonProgress
type LessonProgress struct {
	ID                  uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID              uint       `gorm:"uniqueIndex:idx_progress_user_lesson;not null" json:"userId"`
	LessonID            uint       `gorm:"uniqueIndex:idx_progress_user_lesson;not null;index" json:"lessonId"`
	Completed           bool       `gorm:"default:false" json:"completed"`
	LastWatchedPosition float64    `gorm:"default:0" json:"lastWatchedPosition"`
	CompletedAt         *time.Time `json:"completedAt"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
