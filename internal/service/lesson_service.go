package service

import (
	"context"
	"errors"

	"academy_backend/internal/model"
	"academy_backend/internal/repository"
	"academy_backend/internal/util"
	"academy_backend/pkg/logger"

	"go.uber.org/zap"
)

// swagger:model LessonView
type LessonView struct {
	ID           uint              `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	ContentType  model.ContentType `json:"contentType"`
	Duration     *int              `json:"duration"`
	IsFree       bool              `json:"isFree"`
	IsPreview    bool              `json:"isPreview"`
	CourseID     uint              `json:"courseId"`
	ModuleID     uint              `json:"moduleId"`
	Access       AccessDecision    `json:"access"`
	Content      RenderDirective   `json:"content"`
	PrevLessonID *uint             `json:"prevLessonId"`
	NextLessonID *uint             `json:"nextLessonId"`
}

type SeekResult struct {
	Position    float64 `json:"position"`
	Clamped     bool    `json:"clamped"`
	ShouldPause bool    `json:"shouldPause"`
	Message     string  `json:"message,omitempty"`
}

type LessonService struct {
	LessonRepo *repository.LessonRepository
	Courses    *CourseService
	Access     *LessonAccessService
	Renderer   *ContentRenderer
	Storage    *StorageService
}

func NewLessonService(
	lessonRepo *repository.LessonRepository,
	courses *CourseService,
	access *LessonAccessService,
	renderer *ContentRenderer,
	storage *StorageService,
) *LessonService {
	return &LessonService{
		LessonRepo: lessonRepo,
		Courses:    courses,
		Access:     access,
		Renderer:   renderer,
		Storage:    storage,
	}
}

// loadPublished returns the lesson only when its course is published.
func (s *LessonService) loadPublished(ctx context.Context, lessonID uint) (*model.Lesson, *CourseTree, error) {
	lesson, err := s.LessonRepo.FindByID(ctx, lessonID)
	if err != nil {
		return nil, nil, notFound(err, util.ErrLessonNotFound)
	}
	tree, err := s.Courses.AssemblePublishedCourse(ctx, lesson.CourseID())
	if errors.Is(err, util.ErrCourseNotFound) {
		return nil, nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return lesson, tree, nil
}

func (s *LessonService) View(ctx context.Context, userID, lessonID uint) (*LessonView, error) {
	lesson, tree, err := s.loadPublished(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	decision := s.Access.Resolve(ctx, userID, lesson)
	view := &LessonView{
		ID:          lesson.ID,
		Title:       lesson.Title,
		Description: lesson.Description,
		ContentType: lesson.ContentType,
		Duration:    lesson.Duration,
		IsFree:      lesson.IsFree,
		IsPreview:   lesson.IsPreview,
		CourseID:    tree.ID,
		ModuleID:    lesson.ModuleID,
		Access:      decision,
		Content:     s.Renderer.SelectSurface(lesson, decision.Tier),
	}

	order := tree.LessonOrder()
	for i, id := range order {
		if id != lesson.ID {
			continue
		}
		if i > 0 {
			prev := order[i-1]
			view.PrevLessonID = &prev
		}
		if i < len(order)-1 {
			next := order[i+1]
			view.NextLessonID = &next
		}
		break
	}
	return view, nil
}

// Seek validates a requested playback position against the preview cap.
func (s *LessonService) Seek(ctx context.Context, userID, lessonID uint, position float64) (*SeekResult, error) {
	lesson, _, err := s.loadPublished(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	decision := s.Access.Resolve(ctx, userID, lesson)
	if !decision.CanAccess {
		return nil, util.ErrLessonLocked
	}

	tier := decision.Tier
	if lesson.ContentType != model.ContentVideo {
		// only video playback is capped
		tier = model.TierPaid
	}
	pos, clamped := s.Renderer.ClampSeek(tier, position)
	result := &SeekResult{
		Position:    pos,
		Clamped:     clamped,
		ShouldPause: s.Renderer.ShouldPause(tier, pos),
	}
	if result.ShouldPause {
		result.Message = util.LabelUpgradeToContinue
	}
	return result, nil
}

// AttachmentDownload returns a short-lived URL for the attachment. Only the
// paid tier passes the download gate.
func (s *LessonService) AttachmentDownload(ctx context.Context, userID, lessonID, attachmentID uint) (string, error) {
	if userID == 0 {
		return "", util.ErrAuthRequired
	}
	lesson, _, err := s.loadPublished(ctx, lessonID)
	if err != nil {
		return "", err
	}

	var attachment *model.LessonAttachment
	for i := range lesson.Attachments {
		if lesson.Attachments[i].ID == attachmentID {
			attachment = &lesson.Attachments[i]
			break
		}
	}
	if attachment == nil {
		return "", util.ErrAttachmentNotFound
	}

	if !CanDownload(s.Access.Resolve(ctx, userID, lesson).Tier) {
		return "", util.ErrEnrollmentRequired
	}

	if attachment.StoragePath != "" && s.Storage != nil {
		u, err := s.Storage.SignedURL(ctx, attachment.StoragePath)
		if err != nil {
			logger.Log.Error("failed to sign attachment url",
				zap.Uint("attachment_id", attachment.ID),
				zap.Error(err),
			)
			return "", err
		}
		return u, nil
	}
	if attachment.URL == "" {
		return "", util.ErrAttachmentNotFound
	}
	return attachment.URL, nil
}
