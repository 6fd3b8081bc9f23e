package repository

import (
	"context"

	"academy_backend/internal/model"

	"gorm.io/gorm"
)

type SiteRepository struct {
	DB *gorm.DB
}

func NewSiteRepository(db *gorm.DB) *SiteRepository {
	return &SiteRepository{DB: db}
}

func (r *SiteRepository) GetSettings(ctx context.Context) (*model.SiteSetting, error) {
	var settings model.SiteSetting
	if err := r.DB.WithContext(ctx).Order("id ASC").First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *SiteRepository) FindPage(ctx context.Context, page string) (*model.PageContent, error) {
	var content model.PageContent
	if err := r.DB.WithContext(ctx).Where("page = ?", page).First(&content).Error; err != nil {
		return nil, err
	}
	return &content, nil
}
