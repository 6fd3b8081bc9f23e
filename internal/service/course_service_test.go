package service

import (
	"context"
	"testing"

	"academy_backend/internal/model"
	"academy_backend/internal/repository"
	"academy_backend/internal/testutil"
	"academy_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCourseService(db *gorm.DB) *CourseService {
	return NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewModuleRepository(db),
		repository.NewLessonRepository(db),
		repository.NewAttachmentRepository(db),
		nil,
	)
}

func TestAssembleCourseStatsAndEmptyModule(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	course := testutil.SeedCourse(t, ctx, db, "Foundations", true)
	empty := testutil.SeedModule(t, ctx, db, course.ID, "Welcome", 1)
	full := testutil.SeedModule(t, ctx, db, course.ID, "Basics", 2)
	for i, d := range []int{60, 120, 180} {
		testutil.SeedLesson(t, ctx, db, full.ID, "lesson", i, func(l *model.Lesson) {
			l.Duration = &d
			l.IsPreview = i == 0
			l.IsFree = i == 1
		})
	}

	tree, err := newCourseService(db).AssembleCourse(ctx, course.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, tree.TotalLectures)
	assert.Equal(t, 360, tree.TotalDuration)
	assert.Equal(t, 2, tree.FreeLectures)
	require.Len(t, tree.Modules, 2)
	assert.Equal(t, empty.ID, tree.Modules[0].ID)
	assert.NotNil(t, tree.Modules[0].Lessons)
	assert.Empty(t, tree.Modules[0].Lessons)
	assert.Zero(t, tree.Modules[0].Duration)
	assert.Equal(t, 360, tree.Modules[1].Duration)
}

func TestAssembleCourseNotFound(t *testing.T) {
	db := testutil.DB(t)

	_, err := newCourseService(db).AssembleCourse(context.Background(), 999)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestAssemblePublishedCourseHidesDrafts(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	draft := testutil.SeedCourse(t, ctx, db, "Draft", false)
	svc := newCourseService(db)

	_, err := svc.AssemblePublishedCourse(ctx, draft.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	tree, err := svc.AssembleCourse(ctx, draft.ID)
	require.NoError(t, err)
	assert.False(t, tree.IsPublished)
}

func TestAssembleTreeStableForDuplicateOrder(t *testing.T) {
	course := &model.Course{Modules: []model.CourseModule{
		{BaseModel: model.BaseModel{ID: 3}, DisplayOrder: 1},
		{BaseModel: model.BaseModel{ID: 1}, DisplayOrder: 0, Lessons: []model.Lesson{
			{BaseModel: model.BaseModel{ID: 12}, DisplayOrder: 5},
			{BaseModel: model.BaseModel{ID: 10}, DisplayOrder: 5},
			{BaseModel: model.BaseModel{ID: 11}, DisplayOrder: 2, Duration: testutil.IntPtr(30), IsFree: true, IsPreview: true},
		}},
		{BaseModel: model.BaseModel{ID: 2}, DisplayOrder: 1},
	}}

	for i := 0; i < 5; i++ {
		tree := AssembleTree(course)
		ids := []uint{tree.Modules[0].ID, tree.Modules[1].ID, tree.Modules[2].ID}
		assert.Equal(t, []uint{1, 3, 2}, ids)
		assert.Equal(t, []uint{11, 12, 10}, tree.LessonOrder())
		assert.Equal(t, 1, tree.FreeLectures)
		assert.Equal(t, 30, tree.TotalDuration)
	}
	// input is left untouched
	assert.Equal(t, uint(3), course.Modules[0].ID)
}

func TestAssembleCourseOrdersAttachments(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	course := testutil.SeedCourse(t, ctx, db, "Docs", true)
	m := testutil.SeedModule(t, ctx, db, course.ID, "M", 0)
	l := testutil.SeedLesson(t, ctx, db, m.ID, "L", 0, nil)
	testutil.SeedAttachment(t, ctx, db, l.ID, "second.pdf", 2)
	testutil.SeedAttachment(t, ctx, db, l.ID, "first.pdf", 1)

	tree, err := newCourseService(db).AssembleCourse(ctx, course.ID)
	require.NoError(t, err)
	atts := tree.Modules[0].Lessons[0].Attachments
	require.Len(t, atts, 2)
	assert.Equal(t, "first.pdf", atts[0].FileName)
	assert.Equal(t, "second.pdf", atts[1].FileName)
}

func TestListPublishedCourses(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	pub := testutil.SeedCourse(t, ctx, db, "Public", true)
	testutil.SeedCourse(t, ctx, db, "Hidden", false)
	m := testutil.SeedModule(t, ctx, db, pub.ID, "M", 0)
	testutil.SeedLesson(t, ctx, db, m.ID, "A", 0, func(l *model.Lesson) { l.Duration = testutil.IntPtr(90); l.IsFree = true })
	testutil.SeedLesson(t, ctx, db, m.ID, "B", 1, func(l *model.Lesson) { l.IsPreview = true })
	testutil.SeedLesson(t, ctx, db, m.ID, "C", 2, nil)
	svc := newCourseService(db)

	courses, err := svc.ListPublishedCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Public", courses[0].Title)
	assert.Equal(t, 3, courses[0].TotalLectures)
	assert.Equal(t, 90, courses[0].TotalDuration)
	assert.Equal(t, 2, courses[0].FreeLectures)

	all, err := svc.ListCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCourseAuthoringLifecycle(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := newCourseService(db)

	course, err := svc.CreateCourse(ctx, CourseRequest{Title: "Grant Writing", Price: 20})
	require.NoError(t, err)
	assert.Equal(t, "USD", course.Currency)

	module, err := svc.CreateModule(ctx, course.ID, ModuleRequest{Title: "Intro"})
	require.NoError(t, err)

	lesson, err := svc.CreateLesson(ctx, module.ID, LessonRequest{Title: "Welcome", ContentType: model.ContentVideo, VideoURL: "https://v.test/w.mp4"})
	require.NoError(t, err)
	assert.Equal(t, model.VideoURL, lesson.VideoType)

	_, err = svc.CreateAttachment(ctx, lesson.ID, AttachmentRequest{FileName: "workbook.pdf", SizeBytes: 10})
	require.NoError(t, err)

	_, err = svc.UpdateCourse(ctx, course.ID, CourseRequest{Title: "Grant Writing 101", IsPublished: true})
	require.NoError(t, err)

	tree, err := svc.AssemblePublishedCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grant Writing 101", tree.Title)
	assert.Equal(t, 1, tree.TotalLectures)
	require.Len(t, tree.Modules[0].Lessons[0].Attachments, 1)

	require.NoError(t, svc.DeleteModule(ctx, module.ID))
	tree, err = svc.AssembleCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Empty(t, tree.Modules)

	require.NoError(t, svc.DeleteCourse(ctx, course.ID))
	assert.ErrorIs(t, svc.DeleteCourse(ctx, course.ID), util.ErrCourseNotFound)
}

func TestCourseAuthoringMissingParents(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := newCourseService(db)

	_, err := svc.CreateModule(ctx, 42, ModuleRequest{Title: "x"})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
	_, err = svc.CreateLesson(ctx, 42, LessonRequest{Title: "x", ContentType: model.ContentText})
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
	_, err = svc.CreateAttachment(ctx, 42, AttachmentRequest{FileName: "x"})
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
	assert.ErrorIs(t, svc.DeleteAttachment(ctx, 42), util.ErrAttachmentNotFound)
	assert.ErrorIs(t, svc.DeleteLesson(ctx, 42), util.ErrLessonNotFound)
}
