package service

import (
	"context"
	"errors"
	"testing"

	"academy_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

type fakeEnrollments struct {
	enrolled map[[2]uint]bool
	err      error
	calls    int
}

func (f *fakeEnrollments) Exists(_ context.Context, userID, courseID uint) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.enrolled[[2]uint{userID, courseID}], nil
}

func lessonInCourse(courseID uint, free, preview bool) *model.Lesson {
	return &model.Lesson{
		BaseModel: model.BaseModel{ID: 10},
		ModuleID:  3,
		IsFree:    free,
		IsPreview: preview,
		Module:    &model.CourseModule{BaseModel: model.BaseModel{ID: 3}, CourseID: courseID},
	}
}

func TestResolveAccessFreeAlwaysWins(t *testing.T) {
	for _, preview := range []bool{false, true} {
		for _, user := range []uint{0, 5} {
			for _, enrolled := range []bool{false, true} {
				got := ResolveAccess(user, lessonInCourse(1, true, preview), enrolled)
				assert.Equal(t, AccessDecision{CanAccess: true, Tier: model.TierFree}, got,
					"preview=%v user=%d enrolled=%v", preview, user, enrolled)
			}
		}
	}
}

func TestResolveAccessPreviewIgnoresEnrollment(t *testing.T) {
	for _, user := range []uint{0, 5} {
		for _, enrolled := range []bool{false, true} {
			got := ResolveAccess(user, lessonInCourse(1, false, true), enrolled)
			assert.Equal(t, AccessDecision{CanAccess: true, Tier: model.TierPreview}, got)
		}
	}
}

func TestResolveAccessAnonymousLockedOut(t *testing.T) {
	for _, enrolled := range []bool{false, true} {
		got := ResolveAccess(0, lessonInCourse(1, false, false), enrolled)
		assert.Equal(t, AccessDecision{CanAccess: false, Tier: model.TierLocked}, got)
	}
}

func TestResolveAccessEnrollmentGrantsPaid(t *testing.T) {
	lesson := lessonInCourse(1, false, false)

	assert.Equal(t, AccessDecision{CanAccess: true, Tier: model.TierPaid}, ResolveAccess(5, lesson, true))
	assert.Equal(t, AccessDecision{CanAccess: false, Tier: model.TierLocked}, ResolveAccess(5, lesson, false))
}

func TestResolveAccessNilLesson(t *testing.T) {
	assert.Equal(t, model.TierLocked, ResolveAccess(5, nil, true).Tier)
}

func TestCanDownloadOnlyPaid(t *testing.T) {
	assert.True(t, CanDownload(model.TierPaid))
	assert.False(t, CanDownload(model.TierFree))
	assert.False(t, CanDownload(model.TierPreview))
	assert.False(t, CanDownload(model.TierLocked))
}

func TestLessonAccessServiceSkipsLookupForOpenLessons(t *testing.T) {
	store := &fakeEnrollments{enrolled: map[[2]uint]bool{{5, 1}: true}}
	svc := NewLessonAccessService(store)
	ctx := context.Background()

	assert.Equal(t, model.TierFree, svc.Resolve(ctx, 5, lessonInCourse(1, true, false)).Tier)
	assert.Equal(t, model.TierPreview, svc.Resolve(ctx, 5, lessonInCourse(1, false, true)).Tier)
	assert.Equal(t, model.TierLocked, svc.Resolve(ctx, 0, lessonInCourse(1, false, false)).Tier)
	assert.Equal(t, 0, store.calls)

	assert.Equal(t, model.TierPaid, svc.Resolve(ctx, 5, lessonInCourse(1, false, false)).Tier)
	assert.Equal(t, 1, store.calls)
}

func TestLessonAccessServiceFailsClosed(t *testing.T) {
	store := &fakeEnrollments{err: errors.New("connection reset")}
	svc := NewLessonAccessService(store)

	got := svc.Resolve(context.Background(), 5, lessonInCourse(1, false, false))
	assert.Equal(t, AccessDecision{CanAccess: false, Tier: model.TierLocked}, got)
	assert.False(t, svc.IsEnrolled(context.Background(), 5, 1))
}

func TestLessonAccessServiceChecksExactCourse(t *testing.T) {
	store := &fakeEnrollments{enrolled: map[[2]uint]bool{{5, 2}: true}}
	svc := NewLessonAccessService(store)

	assert.Equal(t, model.TierLocked, svc.Resolve(context.Background(), 5, lessonInCourse(1, false, false)).Tier)
	assert.Equal(t, model.TierPaid, svc.Resolve(context.Background(), 5, lessonInCourse(2, false, false)).Tier)
}
