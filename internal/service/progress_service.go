package service

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"time"

	"academy_backend/internal/model"
	"academy_backend/internal/repository"
	"academy_backend/internal/util"
	"academy_backend/pkg/logger"
	"academy_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// swagger:model CourseProgress
type CourseProgress struct {
	CourseID           uint    `json:"courseId"`
	CompletedLessonIDs []uint  `json:"completedLessonIds"`
	CompletedCount     int     `json:"completedCount"`
	TotalLectures      int     `json:"totalLectures"`
	Percent            float64 `json:"percent"`
}

type ProgressService struct {
	Repo    *repository.ProgressRepository
	Courses *CourseService
	Access  *LessonAccessService

	threshold atomic.Uint64
}

func NewProgressService(
	repo *repository.ProgressRepository,
	courses *CourseService,
	access *LessonAccessService,
	threshold float64,
) *ProgressService {
	s := &ProgressService{Repo: repo, Courses: courses, Access: access}
	s.SetThreshold(threshold)
	return s
}

func (s *ProgressService) SetThreshold(v float64) {
	s.threshold.Store(math.Float64bits(v))
}

func (s *ProgressService) Threshold() float64 {
	return math.Float64frombits(s.threshold.Load())
}

// RecordProgress marks the lesson completed once playedFraction passes the
// completion threshold. Calls at or below the threshold record nothing.
// Repeated calls re-upsert the same row with the latest position.
func (s *ProgressService) RecordProgress(ctx context.Context, userID, lessonID uint, playedFraction, playedSeconds float64) (bool, error) {
	if userID == 0 {
		return false, util.ErrAuthRequired
	}
	lesson, err := s.Courses.FindPublishedLesson(ctx, lessonID)
	if err != nil {
		return false, err
	}
	if !s.Access.Resolve(ctx, userID, lesson).CanAccess {
		return false, util.ErrLessonLocked
	}
	if playedFraction <= s.Threshold() {
		monitoring.ProgressWrites.WithLabelValues("skipped").Inc()
		return false, nil
	}

	now := time.Now()
	err = s.Repo.Upsert(ctx, &model.LessonProgress{
		UserID:              userID,
		LessonID:            lessonID,
		Completed:           true,
		LastWatchedPosition: math.Max(playedSeconds, 0),
		CompletedAt:         &now,
	})
	if err != nil {
		monitoring.ProgressWrites.WithLabelValues("failed").Inc()
		logger.Log.Error("failed to save lesson progress",
			zap.Uint("user_id", userID),
			zap.Uint("lesson_id", lessonID),
			zap.Error(err),
		)
		return false, util.ErrProgressNotSaved
	}
	monitoring.ProgressWrites.WithLabelValues("recorded").Inc()
	return true, nil
}

// GetProgress returns nil without error when the user has no row yet.
func (s *ProgressService) GetProgress(ctx context.Context, userID, lessonID uint) (*model.LessonProgress, error) {
	if userID == 0 {
		return nil, util.ErrAuthRequired
	}
	progress, err := s.Repo.Find(ctx, userID, lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return progress, err
}

// CourseProgress lists completed lessons in course order.
func (s *ProgressService) CourseProgress(ctx context.Context, userID, courseID uint) (*CourseProgress, error) {
	if userID == 0 {
		return nil, util.ErrAuthRequired
	}
	tree, err := s.Courses.AssemblePublishedCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	order := tree.LessonOrder()
	rows, err := s.Repo.ListForLessons(ctx, userID, order)
	if err != nil {
		return nil, err
	}

	result := &CourseProgress{
		CourseID:           courseID,
		CompletedLessonIDs: make([]uint, 0, len(rows)),
		TotalLectures:      tree.TotalLectures,
	}
	for _, id := range order {
		if row, ok := rows[id]; ok && row.Completed {
			result.CompletedLessonIDs = append(result.CompletedLessonIDs, id)
		}
	}
	result.CompletedCount = len(result.CompletedLessonIDs)
	if result.TotalLectures > 0 {
		result.Percent = math.Round(float64(result.CompletedCount)*1000/float64(result.TotalLectures)) / 10
	}
	return result, nil
}
