package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"backoffice/infras/backend"
	mediaModel "backoffice/internal/domains/media/model"
	"backoffice/internal/domains/tag/model"
	"backoffice/internal/domains/tag/model/dto"
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const (
	routeTags     = "/tags"
	routeTag      = "/tags/{id}"
	routeTagMedia = "/tags/{id}/media"
)

type Tag interface {
	GetAll(ctx context.Context) ([]model.Tag, error)
	Get(ctx context.Context, id string) (model.Tag, error)
	Create(ctx context.Context, req dto.TagRequest) (model.Tag, error)
	Update(ctx context.Context, id string, req dto.TagRequest) (model.Tag, error)
	Delete(ctx context.Context, id string) error
	GetMedia(ctx context.Context, id string) ([]mediaModel.Media, error)
}

type repositoryImpl struct {
	client backend.Client
}

func New(client backend.Client) Tag {
	return &repositoryImpl{client: client}
}

func tagPath(id string) string {
	return "/tags/" + url.PathEscape(id)
}

func (r *repositoryImpl) GetAll(ctx context.Context) ([]model.Tag, error) {
	var res dto.ListResponse

	err := r.client.Do(ctx, backend.Request{
		Method:   http.MethodGet,
		Path:     routeTags,
		Route:    routeTags,
		Fallback: "Failed to fetch tag list",
	}, &res)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}

	return res.Tags, nil
}

func (r *repositoryImpl) Get(ctx context.Context, id string) (model.Tag, error) {
	var tag model.Tag

	err := r.client.Do(ctx, backend.Request{
		Method:   http.MethodGet,
		Path:     tagPath(id),
		Route:    routeTag,
		Fallback: "Failed to fetch tag",
	}, &tag)
	if err != nil {
		return model.Tag{}, fmt.Errorf("failed to get tag: %w", err)
	}

	return tag, nil
}

func (r *repositoryImpl) Create(ctx context.Context, req dto.TagRequest) (model.Tag, error) {
	var tag model.Tag

	err := r.client.Do(ctx, backend.Request{
		Method:   http.MethodPost,
		Path:     routeTags,
		Route:    routeTags,
		JSON:     req,
		Fallback: "Failed to create tag",
	}, &tag)
	if err != nil {
		return model.Tag{}, fmt.Errorf("failed to create tag: %w", err)
	}

	return tag, nil
}

func (r *repositoryImpl) Update(ctx context.Context, id string, req dto.TagRequest) (model.Tag, error) {
	var tag model.Tag

	err := r.client.Do(ctx, backend.Request{
		Method:   http.MethodPut,
		Path:     tagPath(id),
		Route:    routeTag,
		JSON:     req,
		Fallback: "Failed to update tag",
	}, &tag)
	if err != nil {
		return model.Tag{}, fmt.Errorf("failed to update tag: %w", err)
	}

	return tag, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id string) error {
	err := r.client.Do(ctx, backend.Request{
		Method:   http.MethodDelete,
		Path:     tagPath(id),
		Route:    routeTag,
		Fallback: "Failed to delete tag",
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	return nil
}

func (r *repositoryImpl) GetMedia(ctx context.Context, id string) ([]mediaModel.Media, error) {
	var res dto.MediaResponse

	err := r.client.Do(ctx, backend.Request{
		Method:   http.MethodGet,
		Path:     tagPath(id) + "/media",
		Route:    routeTagMedia,
		Fallback: "Failed to fetch media by tag",
	}, &res)
	if err != nil {
		return nil, fmt.Errorf("failed to get media by tag: %w", err)
	}

	return res.Media, nil
}
