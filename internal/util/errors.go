package util

import "errors"

var (
	ErrAuthRequired       = errors.New("authentication required")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrCourseNotFound     = errors.New("course not found")
	ErrModuleNotFound     = errors.New("module not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrPageNotFound       = errors.New("page not found")
	ErrLessonLocked       = errors.New("lesson is locked")
	ErrEnrollmentRequired = errors.New("enrollment required")
	ErrCourseNotOpen      = errors.New("course is not open for enrollment")
	ErrProgressNotSaved   = errors.New("could not save progress, please try again")
	ErrEnrollmentFailed   = errors.New("could not complete enrollment, please try again")
)
