package service

import (
	"context"

	"academy_backend/internal/model"
	"academy_backend/pkg/logger"
	"academy_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// AccessDecision is the outcome of resolving a viewer against a lesson.
type AccessDecision struct {
	CanAccess bool             `json:"canAccess"`
	Tier      model.AccessTier `json:"tier"`
}

// ResolveAccess applies the priority chain free > preview > anonymous >
// enrolled. userID 0 is an anonymous viewer. It has no side effects.
func ResolveAccess(userID uint, lesson *model.Lesson, enrolled bool) AccessDecision {
	switch {
	case lesson == nil:
		return AccessDecision{CanAccess: false, Tier: model.TierLocked}
	case lesson.IsFree:
		return AccessDecision{CanAccess: true, Tier: model.TierFree}
	case lesson.IsPreview:
		return AccessDecision{CanAccess: true, Tier: model.TierPreview}
	case userID == 0:
		return AccessDecision{CanAccess: false, Tier: model.TierLocked}
	case enrolled:
		return AccessDecision{CanAccess: true, Tier: model.TierPaid}
	default:
		return AccessDecision{CanAccess: false, Tier: model.TierLocked}
	}
}

// NeedsEnrollment reports whether ResolveAccess can depend on the enrollment
// state at all for this viewer and lesson.
func NeedsEnrollment(userID uint, lesson *model.Lesson) bool {
	return lesson != nil && !lesson.IsFree && !lesson.IsPreview && userID != 0
}

// CanDownload is the attachment download gate: only the paid tier downloads.
func CanDownload(tier model.AccessTier) bool {
	return tier == model.TierPaid
}

// EnrollmentChecker is the persistence side of the enrollment lookup.
type EnrollmentChecker interface {
	Exists(ctx context.Context, userID, courseID uint) (bool, error)
}

type LessonAccessService struct {
	Enrollments EnrollmentChecker
}

func NewLessonAccessService(enrollments EnrollmentChecker) *LessonAccessService {
	return &LessonAccessService{Enrollments: enrollments}
}

func (s *LessonAccessService) IsEnrolled(ctx context.Context, userID, courseID uint) bool {
	return isEnrolled(ctx, s.Enrollments, userID, courseID)
}

// isEnrolled fails closed: any lookup error is logged and reported as false.
func isEnrolled(ctx context.Context, checker EnrollmentChecker, userID, courseID uint) bool {
	if userID == 0 || courseID == 0 {
		return false
	}
	ok, err := checker.Exists(ctx, userID, courseID)
	if err != nil {
		logger.Log.Warn("enrollment lookup failed, treating as not enrolled",
			zap.Uint("user_id", userID),
			zap.Uint("course_id", courseID),
			zap.Error(err),
		)
		return false
	}
	return ok
}

// Resolve looks up enrollment only when the static flags leave it open.
// The lesson must have its Module loaded so the course id is known.
func (s *LessonAccessService) Resolve(ctx context.Context, userID uint, lesson *model.Lesson) AccessDecision {
	enrolled := false
	if NeedsEnrollment(userID, lesson) {
		enrolled = s.IsEnrolled(ctx, userID, lesson.CourseID())
	}
	decision := ResolveAccess(userID, lesson, enrolled)
	monitoring.AccessDecisions.WithLabelValues(string(decision.Tier)).Inc()
	return decision
}
