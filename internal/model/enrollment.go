package model

import "time"

type EnrollmentSource string

const (
	EnrollmentSelf  EnrollmentSource = "self"
	EnrollmentAdmin EnrollmentSource = "admin"
)

// Enrollment is the only signal of paid access to a course. There is no expiry
// or payment state: once a row exists the user is enrolled.
// swagger:model Enrollment
type Enrollment struct {
	ID         uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint             `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"userId"`
	CourseID   uint             `gorm:"uniqueIndex:idx_enrollment_user_course;not null;index" json:"courseId"`
	Source     EnrollmentSource `gorm:"size:20;default:'self'" json:"source"`
	EnrolledAt time.Time        `json:"enrolledAt"`
	Course     *Course          `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
