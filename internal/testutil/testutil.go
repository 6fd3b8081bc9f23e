package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"academy_backend/internal/model"
	"academy_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// DB returns a migrated in-memory sqlite database private to the test.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	name := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, tb.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	// one connection keeps the shared in-memory database alive and serialises writes
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}

func IntPtr(v int) *int {
	return &v
}

func SeedCourse(tb testing.TB, ctx context.Context, db *gorm.DB, title string, published bool) *model.Course {
	tb.Helper()
	c := &model.Course{
		Title:          title,
		Description:    "about " + title,
		InstructorName: "Instructor",
		Price:          49,
		IsPublished:    published,
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedModule(tb testing.TB, ctx context.Context, db *gorm.DB, courseID uint, title string, order int) *model.CourseModule {
	tb.Helper()
	m := &model.CourseModule{
		CourseID:     courseID,
		Title:        title,
		DisplayOrder: order,
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed module: %v", err)
	}
	return m
}

// SeedLesson creates a video lesson; mutate adjusts fields before insert.
func SeedLesson(tb testing.TB, ctx context.Context, db *gorm.DB, moduleID uint, title string, order int, mutate func(*model.Lesson)) *model.Lesson {
	tb.Helper()
	l := &model.Lesson{
		ModuleID:     moduleID,
		Title:        title,
		ContentType:  model.ContentVideo,
		VideoType:    model.VideoURL,
		VideoURL:     "https://cdn.example.org/" + strings.ReplaceAll(title, " ", "-") + ".mp4",
		DisplayOrder: order,
	}
	if mutate != nil {
		mutate(l)
	}
	if err := db.WithContext(ctx).Omit("Module", "Attachments").Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

func SeedAttachment(tb testing.TB, ctx context.Context, db *gorm.DB, lessonID uint, name string, order int) *model.LessonAttachment {
	tb.Helper()
	a := &model.LessonAttachment{
		LessonID:     lessonID,
		FileName:     name,
		URL:          "https://cdn.example.org/files/" + name,
		SizeBytes:    1024,
		MimeType:     "application/pdf",
		StoragePath:  "attachments/" + name,
		DisplayOrder: order,
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed attachment: %v", err)
	}
	return a
}

func SeedEnrollment(tb testing.TB, ctx context.Context, db *gorm.DB, userID, courseID uint) *model.Enrollment {
	tb.Helper()
	e := &model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Source:   model.EnrollmentAdmin,
	}
	if err := db.WithContext(ctx).Omit("Course").Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}
