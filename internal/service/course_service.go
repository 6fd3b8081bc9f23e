package service

import (
	"context"
	"errors"
	"sort"

	"academy_backend/internal/model"
	"academy_backend/internal/repository"
	"academy_backend/internal/util"
	"academy_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CourseSummary carries course metadata together with the derived stats.
// swagger:model CourseSummary
type CourseSummary struct {
	ID             uint    `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	InstructorName string  `json:"instructorName"`
	Price          float64 `json:"price"`
	Currency       string  `json:"currency"`
	ThumbnailURL   string  `json:"thumbnailUrl"`
	IsPublished    bool    `json:"isPublished"`
	ModuleCount    int     `json:"moduleCount"`
	TotalLectures  int     `json:"totalLectures"`
	TotalDuration  int     `json:"totalDuration"`
	FreeLectures   int     `json:"freeLectures"`
}

// swagger:model CourseTree
type CourseTree struct {
	CourseSummary
	Modules []ModuleNode `json:"modules"`
}

type ModuleNode struct {
	ID           uint         `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	DisplayOrder int          `json:"displayOrder"`
	Duration     int          `json:"duration"`
	Lessons      []LessonNode `json:"lessons"`
}

type LessonNode struct {
	ID           uint                     `json:"id"`
	Title        string                   `json:"title"`
	Description  string                   `json:"description"`
	ContentType  model.ContentType        `json:"contentType"`
	Duration     *int                     `json:"duration"`
	IsFree       bool                     `json:"isFree"`
	IsPreview    bool                     `json:"isPreview"`
	DisplayOrder int                      `json:"displayOrder"`
	Attachments  []model.LessonAttachment `json:"attachments"`
}

// AssembleTree orders every level by display order, keeping the incoming
// order for ties, and computes the derived stats. Empty modules are kept.
func AssembleTree(course *model.Course) *CourseTree {
	tree := &CourseTree{
		CourseSummary: CourseSummary{
			ID:             course.ID,
			Title:          course.Title,
			Description:    course.Description,
			InstructorName: course.InstructorName,
			Price:          course.Price,
			Currency:       course.Currency,
			ThumbnailURL:   course.ThumbnailURL,
			IsPublished:    course.IsPublished,
			ModuleCount:    len(course.Modules),
		},
		Modules: make([]ModuleNode, 0, len(course.Modules)),
	}

	modules := append([]model.CourseModule(nil), course.Modules...)
	sort.SliceStable(modules, func(i, j int) bool { return modules[i].DisplayOrder < modules[j].DisplayOrder })

	for _, m := range modules {
		node := ModuleNode{
			ID:           m.ID,
			Title:        m.Title,
			Description:  m.Description,
			DisplayOrder: m.DisplayOrder,
			Lessons:      make([]LessonNode, 0, len(m.Lessons)),
		}

		lessons := append([]model.Lesson(nil), m.Lessons...)
		sort.SliceStable(lessons, func(i, j int) bool { return lessons[i].DisplayOrder < lessons[j].DisplayOrder })

		for i := range lessons {
			l := &lessons[i]
			attachments := append([]model.LessonAttachment{}, l.Attachments...)
			sort.SliceStable(attachments, func(i, j int) bool { return attachments[i].DisplayOrder < attachments[j].DisplayOrder })

			node.Lessons = append(node.Lessons, LessonNode{
				ID:           l.ID,
				Title:        l.Title,
				Description:  l.Description,
				ContentType:  l.ContentType,
				Duration:     l.Duration,
				IsFree:       l.IsFree,
				IsPreview:    l.IsPreview,
				DisplayOrder: l.DisplayOrder,
				Attachments:  attachments,
			})
			node.Duration += l.DurationSeconds()

			tree.TotalLectures++
			tree.TotalDuration += l.DurationSeconds()
			if l.IsFree || l.IsPreview {
				tree.FreeLectures++
			}
		}
		tree.Modules = append(tree.Modules, node)
	}
	return tree
}

// LessonOrder flattens the tree into course order.
func (t *CourseTree) LessonOrder() []uint {
	ids := make([]uint, 0, t.TotalLectures)
	for _, m := range t.Modules {
		for _, l := range m.Lessons {
			ids = append(ids, l.ID)
		}
	}
	return ids
}

type CourseRequest struct {
	Title          string  `json:"title" binding:"required,max=255"`
	Description    string  `json:"description"`
	InstructorName string  `json:"instructorName" binding:"max=150"`
	Price          float64 `json:"price" binding:"gte=0"`
	Currency       string  `json:"currency" binding:"omitempty,len=3"`
	IsPublished    bool    `json:"isPublished"`
	ThumbnailURL   string  `json:"thumbnailUrl" binding:"omitempty,url"`
}

type ModuleRequest struct {
	Title        string `json:"title" binding:"required,max=255"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"displayOrder"`
}

type LessonRequest struct {
	Title        string            `json:"title" binding:"required,max=255"`
	Description  string            `json:"description"`
	ContentType  model.ContentType `json:"contentType" binding:"required,oneof=video pdf audio document text quiz"`
	VideoType    model.VideoType   `json:"videoType" binding:"omitempty,oneof=upload youtube url"`
	VideoURL     string            `json:"videoUrl" binding:"max=1024"`
	StoragePath  string            `json:"storagePath" binding:"max=512"`
	Duration     *int              `json:"duration" binding:"omitempty,gte=0"`
	IsFree       bool              `json:"isFree"`
	IsPreview    bool              `json:"isPreview"`
	TextContent  string            `json:"textContent"`
	DisplayOrder int               `json:"displayOrder"`
}

type AttachmentRequest struct {
	FileName     string `json:"fileName" binding:"required,max=255"`
	URL          string `json:"url" binding:"omitempty,url"`
	StoragePath  string `json:"storagePath" binding:"max=512"`
	SizeBytes    int64  `json:"sizeBytes" binding:"gte=0"`
	MimeType     string `json:"mimeType" binding:"max=100"`
	DisplayOrder int    `json:"displayOrder"`
}

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	ModuleRepo     *repository.ModuleRepository
	LessonRepo     *repository.LessonRepository
	AttachmentRepo *repository.AttachmentRepository
	Storage        *StorageService
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
	lessonRepo *repository.LessonRepository,
	attachmentRepo *repository.AttachmentRepository,
	storage *StorageService,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		ModuleRepo:     moduleRepo,
		LessonRepo:     lessonRepo,
		AttachmentRepo: attachmentRepo,
		Storage:        storage,
	}
}

// notFound maps a missing row to the given sentinel and passes other errors on.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// AssembleCourse returns the tree of any course, published or not.
func (s *CourseService) AssembleCourse(ctx context.Context, courseID uint) (*CourseTree, error) {
	course, err := s.CourseRepo.GetCourseTree(ctx, courseID)
	if err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}
	return AssembleTree(course), nil
}

// AssemblePublishedCourse hides unpublished courses from the catalog.
func (s *CourseService) AssemblePublishedCourse(ctx context.Context, courseID uint) (*CourseTree, error) {
	tree, err := s.AssembleCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !tree.IsPublished {
		return nil, util.ErrCourseNotFound
	}
	return tree, nil
}

// FindPublishedLesson loads a lesson for learners. Lessons of unpublished
// courses are reported as not found.
func (s *CourseService) FindPublishedLesson(ctx context.Context, lessonID uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(ctx, lessonID)
	if err != nil {
		return nil, notFound(err, util.ErrLessonNotFound)
	}
	course, err := s.CourseRepo.FindByID(ctx, lesson.CourseID())
	if err != nil {
		return nil, notFound(err, util.ErrLessonNotFound)
	}
	if !course.IsPublished {
		return nil, util.ErrLessonNotFound
	}
	return lesson, nil
}

func (s *CourseService) ListPublishedCourses(ctx context.Context) ([]CourseSummary, error) {
	return s.listSummaries(ctx, true)
}

func (s *CourseService) ListCourses(ctx context.Context) ([]CourseSummary, error) {
	return s.listSummaries(ctx, false)
}

func (s *CourseService) listSummaries(ctx context.Context, publishedOnly bool) ([]CourseSummary, error) {
	courses, err := s.CourseRepo.ListTrees(ctx, publishedOnly)
	if err != nil {
		return nil, err
	}
	summaries := make([]CourseSummary, 0, len(courses))
	for i := range courses {
		summaries = append(summaries, AssembleTree(&courses[i]).CourseSummary)
	}
	return summaries, nil
}

func (s *CourseService) CreateCourse(ctx context.Context, req CourseRequest) (*model.Course, error) {
	course := &model.Course{}
	applyCourseRequest(course, req)
	if err := s.CourseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) UpdateCourse(ctx context.Context, id uint, req CourseRequest) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}
	applyCourseRequest(course, req)
	if err := s.CourseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func applyCourseRequest(course *model.Course, req CourseRequest) {
	course.Title = req.Title
	course.Description = req.Description
	course.InstructorName = req.InstructorName
	course.Price = req.Price
	course.Currency = req.Currency
	if course.Currency == "" {
		course.Currency = "USD"
	}
	course.IsPublished = req.IsPublished
	course.ThumbnailURL = req.ThumbnailURL
}

func (s *CourseService) DeleteCourse(ctx context.Context, id uint) error {
	return notFound(s.CourseRepo.Delete(ctx, id), util.ErrCourseNotFound)
}

func (s *CourseService) CreateModule(ctx context.Context, courseID uint, req ModuleRequest) (*model.CourseModule, error) {
	if _, err := s.CourseRepo.FindByID(ctx, courseID); err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}
	module := &model.CourseModule{
		CourseID:     courseID,
		Title:        req.Title,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.ModuleRepo.Create(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *CourseService) UpdateModule(ctx context.Context, id uint, req ModuleRequest) (*model.CourseModule, error) {
	module, err := s.ModuleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrModuleNotFound)
	}
	module.Title = req.Title
	module.Description = req.Description
	module.DisplayOrder = req.DisplayOrder
	if err := s.ModuleRepo.Update(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *CourseService) DeleteModule(ctx context.Context, id uint) error {
	return notFound(s.ModuleRepo.Delete(ctx, id), util.ErrModuleNotFound)
}

func (s *CourseService) CreateLesson(ctx context.Context, moduleID uint, req LessonRequest) (*model.Lesson, error) {
	if _, err := s.ModuleRepo.FindByID(ctx, moduleID); err != nil {
		return nil, notFound(err, util.ErrModuleNotFound)
	}
	lesson := &model.Lesson{ModuleID: moduleID}
	applyLessonRequest(lesson, req)
	if err := s.LessonRepo.Create(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CourseService) UpdateLesson(ctx context.Context, id uint, req LessonRequest) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrLessonNotFound)
	}
	applyLessonRequest(lesson, req)
	if err := s.LessonRepo.Update(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func applyLessonRequest(lesson *model.Lesson, req LessonRequest) {
	lesson.Title = req.Title
	lesson.Description = req.Description
	lesson.ContentType = req.ContentType
	lesson.VideoType = req.VideoType
	if lesson.ContentType == model.ContentVideo && lesson.VideoType == "" {
		lesson.VideoType = model.VideoURL
	}
	lesson.VideoURL = req.VideoURL
	lesson.StoragePath = req.StoragePath
	lesson.Duration = req.Duration
	lesson.IsFree = req.IsFree
	lesson.IsPreview = req.IsPreview
	lesson.TextContent = req.TextContent
	lesson.DisplayOrder = req.DisplayOrder
}

func (s *CourseService) DeleteLesson(ctx context.Context, id uint) error {
	return notFound(s.LessonRepo.Delete(ctx, id), util.ErrLessonNotFound)
}

func (s *CourseService) CreateAttachment(ctx context.Context, lessonID uint, req AttachmentRequest) (*model.LessonAttachment, error) {
	if _, err := s.LessonRepo.FindByID(ctx, lessonID); err != nil {
		return nil, notFound(err, util.ErrLessonNotFound)
	}
	attachment := &model.LessonAttachment{
		LessonID:     lessonID,
		FileName:     req.FileName,
		URL:          req.URL,
		StoragePath:  req.StoragePath,
		SizeBytes:    req.SizeBytes,
		MimeType:     req.MimeType,
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.AttachmentRepo.Create(ctx, attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

// DeleteAttachment removes the row and then, best effort, the stored object.
func (s *CourseService) DeleteAttachment(ctx context.Context, id uint) error {
	attachment, err := s.AttachmentRepo.FindByID(ctx, id)
	if err != nil {
		return notFound(err, util.ErrAttachmentNotFound)
	}
	if err := s.AttachmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.Storage != nil && attachment.StoragePath != "" {
		if err := s.Storage.Delete(ctx, attachment.StoragePath); err != nil {
			logger.Log.Warn("failed to remove attachment object",
				zap.Uint("attachment_id", id),
				zap.String("path", attachment.StoragePath),
				zap.Error(err),
			)
		}
	}
	return nil
}
