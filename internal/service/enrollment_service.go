package service

import (
	"context"

	"academy_backend/internal/model"
	"academy_backend/internal/repository"
	"academy_backend/internal/util"
	"academy_backend/pkg/logger"
	"academy_backend/pkg/monitoring"

	"go.uber.org/zap"
)

type EnrollmentService struct {
	Repo       *repository.EnrollmentRepository
	CourseRepo *repository.CourseRepository
}

func NewEnrollmentService(repo *repository.EnrollmentRepository, courseRepo *repository.CourseRepository) *EnrollmentService {
	return &EnrollmentService{Repo: repo, CourseRepo: courseRepo}
}

func (s *EnrollmentService) IsEnrolled(ctx context.Context, userID, courseID uint) bool {
	return isEnrolled(ctx, s.Repo, userID, courseID)
}

// Enroll is idempotent: enrolling twice reports success both times and
// created only the first time. Self enrollment needs a published course.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID uint, source model.EnrollmentSource) (bool, error) {
	if userID == 0 {
		return false, util.ErrAuthRequired
	}
	course, err := s.CourseRepo.FindByID(ctx, courseID)
	if err != nil {
		return false, notFound(err, util.ErrCourseNotFound)
	}
	if source == model.EnrollmentSelf && !course.IsPublished {
		return false, util.ErrCourseNotOpen
	}

	created, err := s.Repo.Create(ctx, &model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Source:   source,
	})
	if err != nil {
		logger.Log.Error("failed to create enrollment",
			zap.Uint("user_id", userID),
			zap.Uint("course_id", courseID),
			zap.String("source", string(source)),
			zap.Error(err),
		)
		return false, util.ErrEnrollmentFailed
	}
	if created {
		monitoring.EnrollmentsCreated.WithLabelValues(string(source)).Inc()
		logger.Log.Info("enrollment created",
			zap.Uint("user_id", userID),
			zap.Uint("course_id", courseID),
			zap.String("source", string(source)),
		)
	}
	return created, nil
}

func (s *EnrollmentService) ListForUser(ctx context.Context, userID uint) ([]model.Enrollment, error) {
	if userID == 0 {
		return nil, util.ErrAuthRequired
	}
	return s.Repo.ListByUser(ctx, userID)
}
