package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	DatabaseMySQL    = "mysql"
	DatabasePostgres = "postgres"
)

// User-facing labels shared by the renderer and the controllers.
const (
	LabelEnrollmentRequired = "Enrollment required"
	LabelUpgradeToContinue  = "Upgrade to continue"
	LabelVideoNotAvailable  = "Video not available"
	LabelContentUnavailable = "Content not available"
	LabelQuizComingSoon     = "Quiz coming soon"
	LabelLessonLocked       = "Enroll in this course to unlock this lesson"
)

const RequestIDHeader = "X-Request-ID"
