package model

import (
	"time"

	"gorm.io/datatypes"
)

// SiteSetting is a single-row table of global header/footer settings.
// swagger:model SiteSetting
type SiteSetting struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"-"`
	SiteName     string         `gorm:"size:150" json:"siteName"`
	Tagline      string         `gorm:"size:255" json:"tagline"`
	LogoURL      string         `gorm:"size:512" json:"logoUrl"`
	ContactEmail string         `gorm:"size:150" json:"contactEmail"`
	DonateURL    string         `gorm:"size:512" json:"donateUrl"`
	NavLinks     datatypes.JSON `json:"navLinks"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func (SiteSetting) TableName() string {
	return "site_settings"
}

// PageContent stores the loosely structured CMS payload of a marketing page.
// The shape of Content is only known per page and is decoded on read.
type PageContent struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"-"`
	Page      string         `gorm:"size:64;uniqueIndex;not null" json:"page"`
	Content   datatypes.JSON `json:"content"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (PageContent) TableName() string {
	return "page_contents"
}
