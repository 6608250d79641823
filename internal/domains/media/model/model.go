package model

import (
	tagModel "backoffice/internal/domains/tag/model"
	"backoffice/shared/youtube"
	"slices"
	"strings"
)

const (
	EntityName = "media"

	FieldTitle       = "title"
	FieldDescription = "description"
	FieldTagIDs      = "tag_ids"
	FieldTagID       = "tag_id"
	FieldYouTubeURL  = "youtube_url"
	FieldFile        = "file"
)

const (
	TypeImage = "image"
	TypeAudio = "audio"
	TypeVideo = "video"
)

type Media struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	Title         string         `json:"title"`
	Description   *string        `json:"description,omitempty"`
	S3Key         *string        `json:"s3_key,omitempty"`
	CloudfrontURL *string        `json:"cloudfront_url,omitempty"`
	YouTubeURL    *string        `json:"youtube_url,omitempty"`
	Tags          []tagModel.Tag `json:"tags"`
	CreatedAt     string         `json:"created_at"`
	UpdatedAt     string         `json:"updated_at"`
	// PreviewURL is filled by the console: the CloudFront URL or a presigned S3 URL.
	PreviewURL string `json:"preview_url,omitempty"`
}

func (m Media) IsImage() bool { return m.Type == TypeImage }
func (m Media) IsAudio() bool { return m.Type == TypeAudio }
func (m Media) IsVideo() bool { return m.Type == TypeVideo }

func (m Media) IsYouTube() bool {
	return m.YouTubeURL != nil && *m.YouTubeURL != ""
}

// EmbedURL is the player source for YouTube media, "" otherwise.
func (m Media) EmbedURL() string {
	if !m.IsYouTube() {
		return ""
	}

	return youtube.EmbedURL(*m.YouTubeURL)
}

// Aspect is the CSS aspect-ratio of the YouTube player.
func (m Media) Aspect() string {
	if !m.IsYouTube() {
		return youtube.AspectLandscape
	}

	return youtube.Aspect(*m.YouTubeURL)
}

func (m Media) DescriptionText() string {
	if m.Description == nil {
		return ""
	}

	return *m.Description
}

func (m Media) HasTag(tagID string) bool {
	return slices.ContainsFunc(m.Tags, func(t tagModel.Tag) bool { return t.ID == tagID })
}

// TypeFromContentType maps an upload's MIME type onto a media type, "" when unknown.
func TypeFromContentType(contentType string) string {
	family, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(contentType)), "/")

	switch family {
	case TypeImage, TypeAudio, TypeVideo:
		return family
	}

	return ""
}

// Filter is the media list query. Title is a substring match; every tag in TagIDs must be present.
type Filter struct {
	Title  string
	TagIDs []string
}

func (f Filter) IsEmpty() bool {
	return f.Title == "" && len(f.TagIDs) == 0
}
