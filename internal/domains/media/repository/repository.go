package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"backoffice/infras/backend"
	"backoffice/internal/domains/media/model"
	"backoffice/internal/domains/media/model/dto"
	"backoffice/shared/constant"
	"backoffice/shared/pager"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

const (
	routeMedia        = "/media"
	routeMediaItem    = "/media/{id}"
	routeMediaUpload  = "/media/upload"
	routeMediaYouTube = "/media/youtube"
	routeMediaTags    = "/media/{id}/tags"
	routeMediaTag     = "/media/{id}/tags/{tagId}"
)

type Media interface {
	// GetAll fetches the unpaginated list.
	GetAll(ctx context.Context) ([]model.Media, error)
	GetPage(ctx context.Context, filter model.Filter, cursor pager.Cursor) (dto.ListResponse, error)
	Get(ctx context.Context, id string) (model.Media, error)
	Upload(ctx context.Context, req dto.UploadRequest, file io.Reader) (model.Media, error)
	CreateYouTube(ctx context.Context, req dto.YouTubeRequest) (model.Media, error)
	Delete(ctx context.Context, id string) error
	AddTag(ctx context.Context, id, tagID string) error
	RemoveTag(ctx context.Context, id, tagID string) error
}

type repositoryImpl struct {
	client backend.Client
}

func New(client backend.Client) Media {
	return &repositoryImpl{client: client}
}

func mediaPath(id string) string {
	return "/media/" + url.PathEscape(id)
}

func (r *repositoryImpl) GetAll(ctx context.Context) ([]model.Media, error) {
	var res dto.ListResponse

	err := r.client.Do(ctx, backend.Request{
		Method:   http.MethodGet,
		Path:     routeMedia,
		Route:    routeMedia,
		Fallback: "Failed to fetch media list",
	}, &res)
	if err != nil {
		return nil, fmt.Errorf("failed to get media list: %w", err)
	}

	return res.Media, nil
}

func (r *repositoryImpl) GetPage(ctx context.Context, filter model.Filter, cursor pager.Cursor) (dto.ListResponse, error) {
	var res dto.ListResponse

	query := url.Values{}
	query.Set(constant.RequestParamOffset, strconv.Itoa(cursor.Offset))
	query.Set(constant.RequestParamLimit, strconv.Itoa(cursor.Limit))

	if filter.Title != "" {
		query.Set(constant.RequestParamTitle, filter.Title)
	}

	for _, tagID := range filter.TagIDs {
		query.Add(constant.RequestParamTagIDs, tagID)
	}

	err := r.client.Do(ctx, backend.Request{
		Method:   http.MethodGet,
		Path:     routeMedia,
		Route:    routeMedia,
		Query:    query,
		Fallback: "Failed to fetch media list",
	}, &res)
	if err != nil {
		return res, fmt.Errorf("failed to get media page: %w", err)
	}

	return res, nil
}

func (r *repositoryImpl) Get(ctx context.Context, id string) (model.Media, error) {
	var media model.Media

	err := r.client.Do(ctx, backend.Request{
		Method:   http.MethodGet,
		Path:     mediaPath(id),
		Route:    routeMediaItem,
		Fallback: "Failed to fetch media",
	}, &media)
	if err != nil {
		return media, fmt.Errorf("failed to get media: %w", err)
	}

	return media, nil
}

// Upload streams the file first, then title, description when set and each tag ID.
func (r *repositoryImpl) Upload(ctx context.Context, req dto.UploadRequest, file io.Reader) (model.Media, error) {
	var media model.Media

	form := &backend.Multipart{
		File: &backend.File{
			Field:  model.FieldFile,
			Reader: file,
		},
		Fields: []backend.Field{{Name: model.FieldTitle, Value: req.Title}},
	}

	if req.File != nil {
		form.File.Name = req.File.Filename
		form.File.ContentType = req.File.Header.Get(constant.RequestHeaderContentType)
	}

	if req.Description != "" {
		form.Fields = append(form.Fields, backend.Field{Name: model.FieldDescription, Value: req.Description})
	}

	for _, tagID := range req.TagIDs {
		form.Fields = append(form.Fields, backend.Field{Name: model.FieldTagIDs, Value: tagID})
	}

	err := r.client.Do(ctx, backend.Request{
		Method:   http.MethodPost,
		Path:     routeMediaUpload,
		Route:    routeMediaUpload,
		Form:     form,
		Fallback: "Failed to upload media",
	}, &media)
	if err != nil {
		return media, fmt.Errorf("failed to upload media: %w", err)
	}

	return media, nil
}

func (r *repositoryImpl) CreateYouTube(ctx context.Context, req dto.YouTubeRequest) (model.Media, error) {
	var media model.Media

	err := r.client.Do(ctx, backend.Request{
		Method:   http.MethodPost,
		Path:     routeMediaYouTube,
		Route:    routeMediaYouTube,
		JSON:     req.ToPayload(),
		Fallback: "Failed to create media with YouTube",
	}, &media)
	if err != nil {
		return media, fmt.Errorf("failed to create youtube media: %w", err)
	}

	return media, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id string) error {
	err := r.client.Do(ctx, backend.Request{
		Method:   http.MethodDelete,
		Path:     mediaPath(id),
		Route:    routeMediaItem,
		Fallback: "Failed to delete media",
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}

	return nil
}

func (r *repositoryImpl) AddTag(ctx context.Context, id, tagID string) error {
	err := r.client.Do(ctx, backend.Request{
		Method:   http.MethodPost,
		Path:     mediaPath(id) + "/tags",
		Route:    routeMediaTags,
		JSON:     dto.AssociateRequest{TagID: tagID},
		Fallback: "Failed to associate tag",
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to associate tag: %w", err)
	}

	return nil
}

func (r *repositoryImpl) RemoveTag(ctx context.Context, id, tagID string) error {
	err := r.client.Do(ctx, backend.Request{
		Method:   http.MethodDelete,
		Path:     mediaPath(id) + "/tags/" + url.PathEscape(tagID),
		Route:    routeMediaTag,
		Fallback: "Failed to remove tag",
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to remove tag: %w", err)
	}

	return nil
}
