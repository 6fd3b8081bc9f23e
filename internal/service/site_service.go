package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"academy_backend/internal/model"
	"academy_backend/internal/util"
	"academy_backend/pkg/logger"
	"academy_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type NavLink struct {
	Label string `json:"label" validate:"required"`
	URL   string `json:"url" validate:"required"`
}

// SiteSettings is the header and footer configuration served to every page.
// swagger:model SiteSettings
type SiteSettings struct {
	SiteName     string    `json:"siteName"`
	Tagline      string    `json:"tagline"`
	LogoURL      string    `json:"logoUrl"`
	ContactEmail string    `json:"contactEmail"`
	DonateURL    string    `json:"donateUrl"`
	NavLinks     []NavLink `json:"navLinks"`
}

func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		SiteName: "Academy",
		Tagline:  "Learning for everyone",
		NavLinks: []NavLink{
			{Label: "Home", URL: "/"},
			{Label: "About", URL: "/about"},
			{Label: "Courses", URL: "/courses"},
		},
	}
}

// swagger:model PageView
type PageView struct {
	Page      string     `json:"page"`
	Content   any        `json:"content"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// SiteStore is the persistence side of the marketing pages.
type SiteStore interface {
	GetSettings(ctx context.Context) (*model.SiteSetting, error)
	FindPage(ctx context.Context, page string) (*model.PageContent, error)
}

type SiteService struct {
	Store SiteStore
	Cache SettingsCache
	Now   func() time.Time

	ttl atomic.Int64
}

func NewSiteService(store SiteStore, cache SettingsCache, ttl time.Duration) *SiteService {
	s := &SiteService{Store: store, Cache: cache, Now: time.Now}
	s.SetSettingsTTL(ttl)
	return s
}

func (s *SiteService) SetSettingsTTL(ttl time.Duration) {
	s.ttl.Store(int64(ttl))
}

func (s *SiteService) SettingsTTL() time.Duration {
	return time.Duration(s.ttl.Load())
}

// Settings reads through the cache. When the store fails it serves the
// cached entry however old it is, and the built-in defaults when there is
// none.
func (s *SiteService) Settings(ctx context.Context) SiteSettings {
	entry, err := s.Cache.Get(ctx)
	if err != nil {
		logger.Log.Warn("site settings cache read failed", zap.Error(err))
		entry = nil
	}
	now := s.Now()
	if entry != nil && !entry.IsStale(now, s.SettingsTTL()) {
		monitoring.SettingsCache.WithLabelValues("hit").Inc()
		return entry.Value
	}

	row, err := s.Store.GetSettings(ctx)
	if err == nil {
		value := settingsFromModel(row)
		if err := s.Cache.Set(ctx, CacheEntry{Value: value, FetchedAt: now}); err != nil {
			logger.Log.Warn("site settings cache write failed", zap.Error(err))
		}
		monitoring.SettingsCache.WithLabelValues("miss").Inc()
		return value
	}

	logger.Log.Warn("failed to load site settings", zap.Error(err))
	if entry != nil {
		monitoring.SettingsCache.WithLabelValues("stale").Inc()
		return entry.Value
	}
	monitoring.SettingsCache.WithLabelValues("default").Inc()
	return DefaultSiteSettings()
}

func settingsFromModel(row *model.SiteSetting) SiteSettings {
	def := DefaultSiteSettings()
	out := SiteSettings{
		SiteName:     row.SiteName,
		Tagline:      row.Tagline,
		LogoURL:      row.LogoURL,
		ContactEmail: row.ContactEmail,
		DonateURL:    row.DonateURL,
	}
	fillString(&out.SiteName, def.SiteName)

	var links []NavLink
	if len(row.NavLinks) > 0 && json.Unmarshal(row.NavLinks, &links) == nil {
		out.NavLinks = validEntries(links, def.NavLinks)
	} else {
		out.NavLinks = def.NavLinks
	}
	return out
}

// Page decodes the stored content of a known page over its defaults.
func (s *SiteService) Page(ctx context.Context, slug string) (*PageView, error) {
	decode, ok := pageSchemas[slug]
	if !ok {
		return nil, util.ErrPageNotFound
	}

	row, err := s.Store.FindPage(ctx, slug)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Log.Warn("failed to load page content, serving defaults",
				zap.String("page", slug),
				zap.Error(err),
			)
		}
		return &PageView{Page: slug, Content: decode(nil)}, nil
	}

	updatedAt := row.UpdatedAt
	return &PageView{Page: slug, Content: decode(row.Content), UpdatedAt: &updatedAt}, nil
}
