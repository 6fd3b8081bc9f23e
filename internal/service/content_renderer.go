package service

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"academy_backend/internal/model"
	"academy_backend/internal/util"
)

type Surface string

const (
	SurfaceVideo       Surface = "video"
	SurfaceDocument    Surface = "document"
	SurfaceAudio       Surface = "audio"
	SurfaceText        Surface = "text"
	SurfaceQuiz        Surface = "quiz_placeholder"
	SurfacePlaceholder Surface = "placeholder"
	SurfaceLocked      Surface = "locked"
)

// RenderDirective tells the client which content surface to mount.
// swagger:model RenderDirective
type RenderDirective struct {
	Surface     Surface          `json:"surface"`
	URL         string           `json:"url,omitempty"`
	Provider    model.VideoType  `json:"provider,omitempty"`
	Text        string           `json:"text,omitempty"`
	Message     string           `json:"message,omitempty"`
	PreviewCap  int              `json:"previewCap,omitempty"`
	Attachments []AttachmentView `json:"attachments"`
}

// AttachmentView exposes attachment metadata. DownloadPath is only set when
// the viewer passes the download gate.
type AttachmentView struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	SizeBytes    int64  `json:"sizeBytes"`
	MimeType     string `json:"mimeType"`
	Downloadable bool   `json:"downloadable"`
	LockedReason string `json:"lockedReason,omitempty"`
	DownloadPath string `json:"downloadPath,omitempty"`
}

type ContentRenderer struct {
	previewSeconds atomic.Int64
	StorageURL     func(path string) string
}

func NewContentRenderer(previewDuration time.Duration, storageURL func(string) string) *ContentRenderer {
	r := &ContentRenderer{StorageURL: storageURL}
	r.SetPreviewDuration(previewDuration)
	return r
}

// SetPreviewDuration is safe to call while requests are being served.
func (r *ContentRenderer) SetPreviewDuration(d time.Duration) {
	r.previewSeconds.Store(int64(d / time.Second))
}

func (r *ContentRenderer) PreviewDuration() time.Duration {
	return time.Duration(r.previewSeconds.Load()) * time.Second
}

// SelectSurface is total over content types; unknown values fall through to
// a placeholder.
func (r *ContentRenderer) SelectSurface(lesson *model.Lesson, tier model.AccessTier) RenderDirective {
	if lesson == nil {
		return RenderDirective{Surface: SurfacePlaceholder, Message: util.LabelContentUnavailable, Attachments: []AttachmentView{}}
	}
	if tier == model.TierLocked {
		return RenderDirective{Surface: SurfaceLocked, Message: util.LabelLessonLocked, Attachments: []AttachmentView{}}
	}

	d := r.dispatch(lesson)
	d.Attachments = r.attachmentViews(lesson, tier)
	if tier == model.TierPreview && d.Surface == SurfaceVideo {
		d.PreviewCap = int(r.previewSeconds.Load())
	}
	return d
}

func (r *ContentRenderer) dispatch(lesson *model.Lesson) RenderDirective {
	switch lesson.ContentType {
	case model.ContentVideo:
		u := r.videoURL(lesson)
		if u == "" {
			return RenderDirective{Surface: SurfacePlaceholder, Message: util.LabelVideoNotAvailable}
		}
		return RenderDirective{Surface: SurfaceVideo, URL: u, Provider: lesson.VideoType}
	case model.ContentPDF, model.ContentDocument:
		if u := r.locator(lesson); u != "" {
			return RenderDirective{Surface: SurfaceDocument, URL: u}
		}
	case model.ContentAudio:
		if u := r.locator(lesson); u != "" {
			return RenderDirective{Surface: SurfaceAudio, URL: u}
		}
	case model.ContentText:
		return RenderDirective{Surface: SurfaceText, Text: lesson.TextContent}
	case model.ContentQuiz:
		return RenderDirective{Surface: SurfaceQuiz, Message: util.LabelQuizComingSoon}
	}
	return RenderDirective{Surface: SurfacePlaceholder, Message: util.LabelContentUnavailable}
}

func (r *ContentRenderer) videoURL(lesson *model.Lesson) string {
	switch lesson.VideoType {
	case model.VideoYouTube:
		return NormalizeYouTubeURL(lesson.VideoURL)
	case model.VideoUpload:
		return r.locator(lesson)
	default:
		return strings.TrimSpace(lesson.VideoURL)
	}
}

// locator prefers the explicit URL and falls back to the stored object.
func (r *ContentRenderer) locator(lesson *model.Lesson) string {
	if u := strings.TrimSpace(lesson.VideoURL); u != "" {
		return u
	}
	if lesson.StoragePath != "" && r.StorageURL != nil {
		return r.StorageURL(lesson.StoragePath)
	}
	return ""
}

func (r *ContentRenderer) attachmentViews(lesson *model.Lesson, tier model.AccessTier) []AttachmentView {
	downloadable := CanDownload(tier)
	views := make([]AttachmentView, 0, len(lesson.Attachments))
	for _, a := range lesson.Attachments {
		v := AttachmentView{
			ID:           a.ID,
			Name:         a.FileName,
			SizeBytes:    a.SizeBytes,
			MimeType:     a.MimeType,
			Downloadable: downloadable,
		}
		if downloadable {
			v.DownloadPath = fmt.Sprintf("/api/lessons/%d/attachments/%d/download", lesson.ID, a.ID)
		} else {
			v.LockedReason = util.LabelEnrollmentRequired
		}
		views = append(views, v)
	}
	return views
}

// ClampSeek caps preview seeks at the preview duration. Negative positions
// become zero. A zero preview duration disables the cap.
func (r *ContentRenderer) ClampSeek(tier model.AccessTier, position float64) (float64, bool) {
	if position < 0 {
		return 0, true
	}
	limit := float64(r.previewSeconds.Load())
	if tier == model.TierPreview && limit > 0 && position > limit {
		return limit, true
	}
	return position, false
}

// ShouldPause reports whether preview playback has reached the cap.
func (r *ContentRenderer) ShouldPause(tier model.AccessTier, position float64) bool {
	limit := float64(r.previewSeconds.Load())
	return tier == model.TierPreview && limit > 0 && position >= limit
}

var youTubeID = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// NormalizeYouTubeURL rewrites short, embed, shorts and live links to the
// canonical watch URL. Links without a recognisable id are returned trimmed.
func NormalizeYouTubeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if id := youTubeVideoID(raw); id != "" {
		return "https://www.youtube.com/watch?v=" + id
	}
	return raw
}

func youTubeVideoID(raw string) string {
	if youTubeID.MatchString(raw) {
		return raw
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	var id string
	switch host {
	case "youtu.be":
		id = segments[0]
	case "youtube.com", "youtube-nocookie.com":
		if v := u.Query().Get("v"); v != "" {
			id = v
		} else if len(segments) == 2 {
			switch segments[0] {
			case "embed", "shorts", "live", "v":
				id = segments[1]
			}
		}
	}
	if youTubeID.MatchString(id) {
		return id
	}
	return ""
}
