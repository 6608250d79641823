package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"backoffice/config"
	"backoffice/infras/otel"
	"backoffice/internal/domains/activity/model"
	"backoffice/internal/domains/activity/model/dto"
	"backoffice/internal/domains/activity/repository"
	"backoffice/shared/constant"
	gDto "backoffice/shared/dto"
	"backoffice/shared/validator"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Activity interface {
	Record(ctx context.Context, entry dto.Entry) error
	// RecordAsync stores entry in the background; failures are logged only.
	RecordAsync(ctx context.Context, entry dto.Entry)
	List(ctx context.Context, params gDto.QueryParams, filter dto.Filter) (dto.ListResponse, error)
}

type serviceImpl struct {
	repo repository.Activity
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Activity, cfg *config.Config, otel otel.Otel) Activity {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) Record(ctx context.Context, entry dto.Entry) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Activity.Record")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, _ := ctx.Value(constant.ContextKeyActor).(string)

	if err = s.repo.Insert(ctx, entry.ToModel(actor)); err != nil {
		log.Error().Err(err).Str("action", entry.Action).Str("entity", entry.Entity).Msg("failed to record activity")

		return fmt.Errorf("failed to record activity: %w", err)
	}

	return nil
}

func (s *serviceImpl) RecordAsync(ctx context.Context, entry dto.Entry) {
	ctx = context.WithoutCancel(ctx)

	go func() {
		_ = s.Record(ctx, entry)
	}()
}

func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams, filter dto.Filter) (res dto.ListResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Activity.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&filter); err != nil {
		return res, err //nolint:wrapcheck
	}

	params.AllowSort(model.FieldCreatedAt, model.FieldAction, model.FieldEntity, model.FieldCreatedBy)
	group := filter.ToFilterGroup()

	total, err := s.repo.Count(ctx, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to count activities")

		return res, fmt.Errorf("failed to count activities: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get activities")

		return res, fmt.Errorf("failed to get activities: %w", err)
	}

	res.FromModels(models, params, total)
	res.Filter = filter

	return res, nil
}
