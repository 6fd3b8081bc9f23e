package model

type ContentType string

const (
	ContentVideo    ContentType = "video"
	ContentPDF      ContentType = "pdf"
	ContentAudio    ContentType = "audio"
	ContentDocument ContentType = "document"
	ContentText     ContentType = "text"
	ContentQuiz     ContentType = "quiz"
)

type VideoType string

const (
	VideoUpload  VideoType = "upload"
	VideoYouTube VideoType = "youtube"
	VideoURL     VideoType = "url"
)

// Lesson belongs to exactly one module. VideoURL is the generic content
// locator for every content type, not only video.
// swagger:model Lesson
type Lesson struct {
	BaseModel
	ModuleID     uint               `gorm:"index;not null" json:"moduleId"`
	Title        string             `gorm:"size:255;not null" json:"title"`
	Description  string             `gorm:"type:text" json:"description"`
	ContentType  ContentType        `gorm:"size:20;not null;default:'video'" json:"contentType"`
	VideoType    VideoType          `gorm:"size:20" json:"videoType"`
	VideoURL     string             `gorm:"size:1024" json:"videoUrl"`
	StoragePath  string             `gorm:"size:512" json:"storagePath"`
	Duration     *int               `json:"duration"` // seconds
	IsFree       bool               `gorm:"default:false" json:"isFree"`
	IsPreview    bool               `gorm:"default:false" json:"isPreview"`
	TextContent  string             `gorm:"type:text" json:"textContent"`
	DisplayOrder int                `gorm:"default:0" json:"displayOrder"`
	Attachments  []LessonAttachment `gorm:"foreignKey:LessonID" json:"attachments,omitempty"`
	Module       *CourseModule      `gorm:"foreignKey:ModuleID" json:"-"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// CourseID is only known when Module was loaded alongside the lesson.
func (l *Lesson) CourseID() uint {
	if l.Module == nil {
		return 0
	}
	return l.Module.CourseID
}

// DurationSeconds treats a missing duration as zero.
func (l *Lesson) DurationSeconds() int {
	if l.Duration == nil {
		return 0
	}
	return *l.Duration
}

// swagger:model LessonAttachment
type LessonAttachment struct {
	BaseModel
	LessonID     uint   `gorm:"index;not null" json:"lessonId"`
	FileName     string `gorm:"size:255;not null" json:"fileName"`
	URL          string `gorm:"size:1024" json:"-"`
	SizeBytes    int64  `gorm:"default:0" json:"sizeBytes"`
	MimeType     string `gorm:"size:100" json:"mimeType"`
	StoragePath  string `gorm:"size:512" json:"-"`
	DisplayOrder int    `gorm:"default:0" json:"displayOrder"`
}

func (LessonAttachment) TableName() string {
	return "lesson_attachments"
}
