package model

// Course is a sellable unit of learning content. Owns zero or more modules.
// swagger:model Course
type Course struct {
	BaseModel
	Title          string         `gorm:"size:255;not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	InstructorName string         `gorm:"size:150" json:"instructorName"`
	Price          float64        `gorm:"default:0" json:"price"`
	Currency       string         `gorm:"size:8;default:'USD'" json:"currency"`
	IsPublished    bool           `gorm:"default:false;index" json:"isPublished"`
	ThumbnailURL   string         `gorm:"size:512" json:"thumbnailUrl"`
	Modules        []CourseModule `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model CourseModule
type CourseModule struct {
	BaseModel
	CourseID     uint     `gorm:"index;not null" json:"courseId"`
	Title        string   `gorm:"size:255;not null" json:"title"`
	Description  string   `gorm:"type:text" json:"description"`
	DisplayOrder int      `gorm:"default:0" json:"displayOrder"`
	Lessons      []Lesson `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}
