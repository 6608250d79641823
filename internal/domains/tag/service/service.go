package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"backoffice/config"
	"backoffice/infras/otel"
	activityModel "backoffice/internal/domains/activity/model"
	activityDto "backoffice/internal/domains/activity/model/dto"
	activityService "backoffice/internal/domains/activity/service"
	mediaModel "backoffice/internal/domains/media/model"
	"backoffice/internal/domains/tag/model"
	"backoffice/internal/domains/tag/model/dto"
	"backoffice/internal/domains/tag/repository"
	"backoffice/shared/cache"
	"backoffice/shared/constant"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

const cacheFamily = "tags"

type Tag interface {
	GetAll(ctx context.Context) ([]model.Tag, error)
	// Offered lists the tags that may be attached to media of mediaType.
	Offered(ctx context.Context, mediaType string) ([]model.Tag, error)
	Get(ctx context.Context, id string) (model.Tag, error)
	Create(ctx context.Context, req dto.TagRequest) (model.Tag, error)
	Update(ctx context.Context, id string, req dto.TagRequest) (model.Tag, error)
	Delete(ctx context.Context, id string) error
	GetMedia(ctx context.Context, id string) ([]mediaModel.Media, error)
}

type serviceImpl struct {
	repo     repository.Tag
	activity activityService.Activity
	cache    cache.RedisCache
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo repository.Tag, activity activityService.Activity, cache cache.RedisCache, cfg *config.Config, otel otel.Otel) Tag {
	return &serviceImpl{
		repo:     repo,
		activity: activity,
		cache:    cache,
		cfg:      cfg,
		otel:     otel,
	}
}

func allTagsKey() string {
	return cache.BuildKey(cacheFamily, "all")
}

func (s *serviceImpl) GetAll(ctx context.Context) (tags []model.Tag, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Tag.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := allTagsKey()

	if cacheErr := s.cache.Get(ctx, key, &tags); cacheErr == nil {
		return tags, nil
	} else if !errors.Is(cacheErr, cache.Nil) {
		log.Warn().Err(cacheErr).Str("key", key).Msg("failed to read tags from cache")
	}

	tags, err = s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tags")

		return nil, fmt.Errorf("failed to get tags: %w", err)
	}

	if s.cfg.Cache.TTL > 0 {
		_ = s.cache.Save(ctx, key, tags, s.cfg.Cache.TTL)
	}

	return tags, nil
}

func (s *serviceImpl) Offered(ctx context.Context, mediaType string) ([]model.Tag, error) {
	tags, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return model.Offered(tags, mediaType), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (tag model.Tag, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Tag.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tag, err = s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get tag")

		return tag, fmt.Errorf("failed to get tag: %w", err)
	}

	return tag, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.TagRequest) (tag model.Tag, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Tag.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tag, err = s.repo.Create(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("failed to create tag")

		return tag, fmt.Errorf("failed to create tag: %w", err)
	}

	s.invalidate(ctx)
	s.activity.RecordAsync(ctx, activityDto.Entry{
		Action:   activityModel.ActionCreate,
		Entity:   activityModel.EntityTag,
		EntityID: tag.ID,
		Summary:  fmt.Sprintf("Created tag %q (%s)", req.Name, req.Type),
	})

	return tag, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.TagRequest) (tag model.Tag, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Tag.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tag, err = s.repo.Update(ctx, id, req)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update tag")

		return tag, fmt.Errorf("failed to update tag: %w", err)
	}

	s.invalidate(ctx)
	s.activity.RecordAsync(ctx, activityDto.Entry{
		Action:   activityModel.ActionUpdate,
		Entity:   activityModel.EntityTag,
		EntityID: id,
		Summary:  fmt.Sprintf("Updated tag %q (%s)", req.Name, req.Type),
	})

	return tag, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Tag.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete tag")

		return fmt.Errorf("failed to delete tag: %w", err)
	}

	s.invalidate(ctx)
	s.activity.RecordAsync(ctx, activityDto.Entry{
		Action:   activityModel.ActionDelete,
		Entity:   activityModel.EntityTag,
		EntityID: id,
		Summary:  "Deleted tag " + id,
	})

	return nil
}

func (s *serviceImpl) GetMedia(ctx context.Context, id string) (media []mediaModel.Media, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Tag.GetMedia")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	media, err = s.repo.GetMedia(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get media by tag")

		return nil, fmt.Errorf("failed to get media by tag: %w", err)
	}

	return media, nil
}

// invalidate drops the cached tag list. Errors are logged only.
func (s *serviceImpl) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, allTagsKey()); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate tag cache")
	}
}
