package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"backoffice/config"
	"backoffice/infras/otel"
	"backoffice/infras/s3"
	activityModel "backoffice/internal/domains/activity/model"
	activityDto "backoffice/internal/domains/activity/model/dto"
	activityService "backoffice/internal/domains/activity/service"
	"backoffice/internal/domains/media/model"
	"backoffice/internal/domains/media/model/dto"
	"backoffice/internal/domains/media/repository"
	"backoffice/shared/constant"
	"backoffice/shared/failure"
	"backoffice/shared/pager"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Media interface {
	GetAll(ctx context.Context) ([]model.Media, error)
	// GetPage has the pager.Fetcher shape and backs the media list loader.
	GetPage(ctx context.Context, filter model.Filter, cursor pager.Cursor) (pager.Page[model.Media], error)
	Get(ctx context.Context, id string) (model.Media, error)
	Upload(ctx context.Context, req dto.UploadRequest) (model.Media, error)
	CreateYouTube(ctx context.Context, req dto.YouTubeRequest) (model.Media, error)
	Delete(ctx context.Context, id string) error
	AddTag(ctx context.Context, id, tagID string) error
	RemoveTag(ctx context.Context, id, tagID string) error
}

type serviceImpl struct {
	repo     repository.Media
	activity activityService.Activity
	storage  s3.S3
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo repository.Media, activity activityService.Activity, storage s3.S3, cfg *config.Config, otel otel.Otel) Media {
	return &serviceImpl{
		repo:     repo,
		activity: activity,
		storage:  storage,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (media []model.Media, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Media.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	media, err = s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get media list")

		return nil, fmt.Errorf("failed to get media list: %w", err)
	}

	return media, nil
}

func (s *serviceImpl) GetPage(ctx context.Context, filter model.Filter, cursor pager.Cursor) (page pager.Page[model.Media], err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Media.GetPage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"cursor.offset": cursor.Offset,
		"cursor.limit":  cursor.Limit,
	})

	res, err := s.repo.GetPage(ctx, filter, cursor)
	if err != nil {
		log.Error().Err(err).Int("offset", cursor.Offset).Msg("failed to get media page")

		return page, fmt.Errorf("failed to get media page: %w", err)
	}

	for i := range res.Media {
		s.resolvePreview(ctx, &res.Media[i])
	}

	return pager.Page[model.Media]{Items: res.Media, HasMore: res.HasMore}, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (media model.Media, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Media.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	media, err = s.repo.Get(ctx, id)
	if err != nil {
		if !failure.IsNotFound(err) {
			log.Error().Err(err).Str("id", id).Msg("failed to get media")
		}

		return media, fmt.Errorf("failed to get media: %w", err)
	}

	s.resolvePreview(ctx, &media)

	return media, nil
}

func (s *serviceImpl) Upload(ctx context.Context, req dto.UploadRequest) (media model.Media, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Media.Upload")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.File == nil {
		return media, failure.BadRequestFromString("file is required")
	}

	file, err := req.File.Open()
	if err != nil {
		log.Error().Err(err).Str("filename", req.File.Filename).Msg("failed to open uploaded file")

		return media, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	media, err = s.repo.Upload(ctx, req, file)
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("failed to upload media")

		return media, fmt.Errorf("failed to upload media: %w", err)
	}

	s.activity.RecordAsync(ctx, activityDto.Entry{
		Action:   activityModel.ActionUpload,
		Entity:   activityModel.EntityMedia,
		EntityID: media.ID,
		Summary:  fmt.Sprintf("Uploaded %q (%s)", req.Title, req.File.Filename),
	})

	return media, nil
}

func (s *serviceImpl) CreateYouTube(ctx context.Context, req dto.YouTubeRequest) (media model.Media, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Media.CreateYouTube")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	media, err = s.repo.CreateYouTube(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("youtube_url", req.YouTubeURL).Msg("failed to create youtube media")

		return media, fmt.Errorf("failed to create youtube media: %w", err)
	}

	s.activity.RecordAsync(ctx, activityDto.Entry{
		Action:   activityModel.ActionCreate,
		Entity:   activityModel.EntityMedia,
		EntityID: media.ID,
		Summary:  fmt.Sprintf("Registered YouTube video %q", req.Title),
	})

	return media, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Media.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete media")

		return fmt.Errorf("failed to delete media: %w", err)
	}

	s.activity.RecordAsync(ctx, activityDto.Entry{
		Action:   activityModel.ActionDelete,
		Entity:   activityModel.EntityMedia,
		EntityID: id,
		Summary:  "Deleted media " + id,
	})

	return nil
}

func (s *serviceImpl) AddTag(ctx context.Context, id, tagID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Media.AddTag")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repo.AddTag(ctx, id, tagID); err != nil {
		log.Error().Err(err).Str("id", id).Str("tag_id", tagID).Msg("failed to associate tag")

		return fmt.Errorf("failed to associate tag: %w", err)
	}

	s.activity.RecordAsync(ctx, activityDto.Entry{
		Action:   activityModel.ActionAssociate,
		Entity:   activityModel.EntityMedia,
		EntityID: id,
		Summary:  "Associated tag " + tagID,
	})

	return nil
}

func (s *serviceImpl) RemoveTag(ctx context.Context, id, tagID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Media.RemoveTag")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repo.RemoveTag(ctx, id, tagID); err != nil {
		log.Error().Err(err).Str("id", id).Str("tag_id", tagID).Msg("failed to remove tag")

		return fmt.Errorf("failed to remove tag: %w", err)
	}

	s.activity.RecordAsync(ctx, activityDto.Entry{
		Action:   activityModel.ActionDissociate,
		Entity:   activityModel.EntityMedia,
		EntityID: id,
		Summary:  "Removed tag " + tagID,
	})

	return nil
}

// resolvePreview prefers the CDN URL and falls back to a presigned object URL.
func (s *serviceImpl) resolvePreview(ctx context.Context, media *model.Media) {
	if media.CloudfrontURL != nil && *media.CloudfrontURL != "" {
		media.PreviewURL = *media.CloudfrontURL

		return
	}

	if media.S3Key == nil || *media.S3Key == "" {
		return
	}

	url, err := s.storage.PresignGet(ctx, *media.S3Key)
	if err != nil {
		if !errors.Is(err, s3.ErrNotConfigured) {
			log.Warn().Err(err).Str("id", media.ID).Msg("failed to presign media preview")
		}

		return
	}

	media.PreviewURL = url
}
