package dto

import (
	"backoffice/internal/domains/media/model"
	"backoffice/shared"
	"backoffice/shared/constant"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// UploadRequest is the file upload form.
type UploadRequest struct {
	Title       string                `form:"title" validate:"required,max=255"`
	Description string                `form:"description" validate:"max=1000"`
	TagIDs      []string              `form:"tag_ids" validate:"omitempty,dive,uuid"`
	File        *multipart.FileHeader `form:"file" validate:"required,mimetypes=image/* audio/*,maxfilesize=100"`
}

// FromRequest reads a parsed multipart form. A missing file leaves File nil.
func (r *UploadRequest) FromRequest(request *http.Request) {
	r.Title = request.PostFormValue(model.FieldTitle)
	r.Description = request.PostFormValue(model.FieldDescription)

	if request.MultipartForm != nil {
		r.TagIDs = shared.CompactStrings(request.MultipartForm.Value[model.FieldTagIDs])

		if files := request.MultipartForm.File[model.FieldFile]; len(files) > 0 {
			r.File = files[0]
		}
	}
}

// MediaType is the type implied by the chosen file, "" before a file is chosen.
func (r *UploadRequest) MediaType() string {
	if r.File == nil {
		return ""
	}

	return model.TypeFromContentType(r.File.Header.Get(constant.RequestHeaderContentType))
}

// YouTubeRequest is the YouTube registration form.
type YouTubeRequest struct {
	YouTubeURL  string   `form:"youtube_url" validate:"required,url,youtube"`
	Title       string   `form:"title" validate:"required,max=255"`
	Description string   `form:"description" validate:"max=1000"`
	TagIDs      []string `form:"tag_ids" validate:"omitempty,dive,uuid"`
}

func (r *YouTubeRequest) FromRequest(request *http.Request) {
	r.YouTubeURL = strings.TrimSpace(request.PostFormValue(model.FieldYouTubeURL))
	r.Title = request.PostFormValue(model.FieldTitle)
	r.Description = request.PostFormValue(model.FieldDescription)
	r.TagIDs = shared.CompactStrings(request.PostForm[model.FieldTagIDs])
}

// YouTubePayload is the backend body: description is omitted when blank and
// tag_ids is always an array.
type YouTubePayload struct {
	YouTubeURL  string   `json:"youtube_url"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	TagIDs      []string `json:"tag_ids"`
}

func (r *YouTubeRequest) ToPayload() YouTubePayload {
	payload := YouTubePayload{
		YouTubeURL: r.YouTubeURL,
		Title:      r.Title,
		TagIDs:     r.TagIDs,
	}

	if strings.TrimSpace(r.Description) != "" {
		payload.Description = &r.Description
	}

	if payload.TagIDs == nil {
		payload.TagIDs = []string{}
	}

	return payload
}

// AssociateRequest attaches one tag to a media item.
type AssociateRequest struct {
	TagID string `json:"tag_id" form:"tag_id" validate:"required,uuid"`
}

// FilterFromQuery reads the media list filter: title and repeated tag_ids.
func FilterFromQuery(query url.Values) model.Filter {
	return model.Filter{
		Title:  strings.TrimSpace(query.Get(constant.RequestParamTitle)),
		TagIDs: shared.CompactStrings(query[constant.RequestParamTagIDs]),
	}
}

// ListResponse is the backend page shape. Only media and has_more are relied on.
type ListResponse struct {
	Media   []model.Media `json:"media"`
	Total   *int          `json:"total,omitempty"`
	Offset  *int          `json:"offset,omitempty"`
	Limit   *int          `json:"limit,omitempty"`
	HasMore bool          `json:"has_more"`
}

// PageResponse answers the console's load-more endpoint.
type PageResponse struct {
	Media   []model.Media `json:"media"`
	HTML    []string      `json:"html"`
	Loaded  bool          `json:"loaded"`
	Offset  int           `json:"offset"`
	HasMore bool          `json:"has_more"`
	Error   string        `json:"error,omitempty"`
}
