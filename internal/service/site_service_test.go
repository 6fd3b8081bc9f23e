package service

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"academy_backend/internal/model"
	"academy_backend/internal/repository"
	"academy_backend/internal/testutil"
	"academy_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fakeSiteStore struct {
	settings *model.SiteSetting
	pages    map[string]*model.PageContent
	err      error
	calls    int
}

func (f *fakeSiteStore) GetSettings(context.Context) (*model.SiteSetting, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.settings, nil
}

func (f *fakeSiteStore) FindPage(_ context.Context, page string) (*model.PageContent, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.pages[page]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func TestCacheEntryIsStale(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	e := CacheEntry{FetchedAt: base}

	assert.False(t, e.IsStale(base.Add(4*time.Minute), 5*time.Minute))
	assert.True(t, e.IsStale(base.Add(5*time.Minute), 5*time.Minute))
	assert.True(t, e.IsStale(base, 0))
}

func TestSettingsServesFreshEntryWithoutStore(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := &fakeSiteStore{settings: &model.SiteSetting{SiteName: "Hope Academy"}}
	svc := NewSiteService(store, NewMemorySettingsCache(), 5*time.Minute)
	svc.Now = clk.Now

	assert.Equal(t, "Hope Academy", svc.Settings(ctx).SiteName)
	assert.Equal(t, 1, store.calls)

	clk.now = clk.now.Add(time.Minute)
	store.settings = &model.SiteSetting{SiteName: "Renamed"}
	assert.Equal(t, "Hope Academy", svc.Settings(ctx).SiteName)
	assert.Equal(t, 1, store.calls)

	clk.now = clk.now.Add(5 * time.Minute)
	assert.Equal(t, "Renamed", svc.Settings(ctx).SiteName)
	assert.Equal(t, 2, store.calls)
}

func TestSettingsFallsBackToStaleEntry(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := &fakeSiteStore{settings: &model.SiteSetting{SiteName: "Hope Academy"}}
	svc := NewSiteService(store, NewMemorySettingsCache(), time.Minute)
	svc.Now = clk.Now

	svc.Settings(ctx)
	clk.now = clk.now.Add(time.Hour)
	store.err = errors.New("database is down")

	assert.Equal(t, "Hope Academy", svc.Settings(ctx).SiteName)
}

func TestSettingsFallsBackToDefaults(t *testing.T) {
	store := &fakeSiteStore{err: errors.New("database is down")}
	svc := NewSiteService(store, NewMemorySettingsCache(), time.Minute)

	assert.Equal(t, DefaultSiteSettings(), svc.Settings(context.Background()))
}

func TestSettingsNavLinksSchemaOnRead(t *testing.T) {
	store := &fakeSiteStore{settings: &model.SiteSetting{
		SiteName: "",
		NavLinks: datatypes.JSON(`[{"label":"Donate","url":"/donate"},{"label":"","url":"/broken"}]`),
	}}
	svc := NewSiteService(store, NewMemorySettingsCache(), time.Minute)

	got := svc.Settings(context.Background())
	assert.Equal(t, "Academy", got.SiteName)
	assert.Equal(t, []NavLink{{Label: "Donate", URL: "/donate"}}, got.NavLinks)

	store.settings = &model.SiteSetting{SiteName: "X", NavLinks: datatypes.JSON(`{not json`)}
	svc = NewSiteService(store, NewMemorySettingsCache(), time.Minute)
	assert.Equal(t, DefaultSiteSettings().NavLinks, svc.Settings(context.Background()).NavLinks)
}

func TestSettingsFromSeededDatabase(t *testing.T) {
	db := testutil.DB(t)
	svc := NewSiteService(repository.NewSiteRepository(db), NewMemorySettingsCache(), time.Minute)

	got := svc.Settings(context.Background())
	assert.Equal(t, "Academy", got.SiteName)
	assert.NotEmpty(t, got.NavLinks)
}

func TestPageUnknownSlug(t *testing.T) {
	svc := NewSiteService(&fakeSiteStore{}, NewMemorySettingsCache(), time.Minute)

	_, err := svc.Page(context.Background(), "careers")
	assert.ErrorIs(t, err, util.ErrPageNotFound)
}

func TestPageMissingRowAndMalformedJSONUseDefaults(t *testing.T) {
	store := &fakeSiteStore{pages: map[string]*model.PageContent{
		"about": {Page: "about", Content: datatypes.JSON(`{"story": [`)},
	}}
	svc := NewSiteService(store, NewMemorySettingsCache(), time.Minute)

	home, err := svc.Page(context.Background(), "home")
	require.NoError(t, err)
	assert.Equal(t, defaultHomePage(), home.Content)
	assert.Nil(t, home.UpdatedAt)

	about, err := svc.Page(context.Background(), "about")
	require.NoError(t, err)
	assert.Equal(t, defaultAboutPage(), about.Content)

	store.err = errors.New("timeout")
	about, err = svc.Page(context.Background(), "about")
	require.NoError(t, err)
	assert.Equal(t, defaultAboutPage(), about.Content)
}

func TestPagePartialContentMergesDefaults(t *testing.T) {
	store := &fakeSiteStore{pages: map[string]*model.PageContent{
		"home": {Page: "home", UpdatedAt: time.Now(), Content: datatypes.JSON(`{
			"hero": {"title": "", "subtitle": "Join us"},
			"mission": {"body": "Teach everyone"},
			"testimonials": [
				{"quote": "Changed my life", "author": "Ama"},
				{"quote": "No author"}
			],
			"gallery": [{"url": "not a url"}, {"url": "https://img.test/1.jpg", "caption": "Class"}],
			"partners": [{"tier": "Gold", "partners": [{"name": "Acme"}, {"logoUrl": "https://x.test/l.png"}]}, {"partners": []}]
		}`)},
	}}
	svc := NewSiteService(store, NewMemorySettingsCache(), time.Minute)

	view, err := svc.Page(context.Background(), "home")
	require.NoError(t, err)
	require.NotNil(t, view.UpdatedAt)
	home, ok := view.Content.(HomePage)
	require.True(t, ok)

	def := defaultHomePage()
	assert.Equal(t, def.Hero.Title, home.Hero.Title)
	assert.Equal(t, "Join us", home.Hero.Subtitle)
	assert.Equal(t, def.Mission.Title, home.Mission.Title)
	assert.Equal(t, "Teach everyone", home.Mission.Body)
	assert.Equal(t, def.Vision, home.Vision)
	assert.Equal(t, def.Founder, home.Founder)
	assert.Equal(t, []Testimonial{{Quote: "Changed my life", Author: "Ama"}}, home.Testimonials)
	assert.Equal(t, []GalleryImage{{URL: "https://img.test/1.jpg", Caption: "Class"}}, home.Gallery)
	require.Len(t, home.Partners, 1)
	assert.Equal(t, []Partner{{Name: "Acme"}}, home.Partners[0].Partners)
}

func TestRedisSettingsCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	cache := NewRedisSettingsCache(rdb)
	cache.Key = "test:" + t.Name()
	t.Cleanup(func() { rdb.Del(ctx, cache.Key) })

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	fetched := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, cache.Set(ctx, CacheEntry{Value: DefaultSiteSettings(), FetchedAt: fetched}))
	got, err = cache.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, DefaultSiteSettings(), got.Value)
	assert.True(t, fetched.Equal(got.FetchedAt))
}
