package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"backoffice/config"
	"backoffice/infras/otel"
	"backoffice/internal/domains/calendar/model"
	todoModel "backoffice/internal/domains/todo/model"
	todoRepository "backoffice/internal/domains/todo/repository"
	"backoffice/shared/cache"
	"backoffice/shared/constant"
	"backoffice/shared/datefmt"
	"backoffice/shared/failure"
	"backoffice/shared/timezone"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

type Calendar interface {
	// FetchRange loads the TODOs between the first and last day of month.
	FetchRange(ctx context.Context, month model.Month) ([]todoModel.Todo, error)
	// View builds the month grid. The grid is returned even when the fetch fails,
	// with the message in View.Error.
	View(ctx context.Context, month model.Month) (model.View, error)
}

type serviceImpl struct {
	repo  todoRepository.Todo
	cache cache.RedisCache
	cfg   *config.Config
	otel  otel.Otel
	now   func() time.Time
}

func New(repo todoRepository.Todo, cache cache.RedisCache, cfg *config.Config, otel otel.Otel) Calendar {
	return &serviceImpl{
		repo:  repo,
		cache: cache,
		cfg:   cfg,
		otel:  otel,
		now:   timezone.Now,
	}
}

func (s *serviceImpl) FetchRange(ctx context.Context, month model.Month) (todos []todoModel.Todo, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Calendar.FetchRange")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	loc := timezone.GetLocation()
	startDate := datefmt.Day(month.First(loc))
	endDate := datefmt.Day(month.Last(loc))
	key := model.RangeKey(startDate, endDate)

	scope.SetAttributes(map[string]any{
		"range.start": startDate,
		"range.end":   endDate,
	})

	if cacheErr := s.cache.Get(ctx, key, &todos); cacheErr == nil {
		return todos, nil
	} else if !errors.Is(cacheErr, cache.Nil) {
		log.Warn().Err(cacheErr).Str("key", key).Msg("failed to read calendar range from cache")
	}

	todos, err = s.repo.GetByDateRange(ctx, startDate, endDate)
	if err != nil {
		log.Error().Err(err).Str("start_date", startDate).Str("end_date", endDate).Msg("failed to get todos by date range")

		return nil, fmt.Errorf("failed to get todos by date range: %w", err)
	}

	if s.cfg.Cache.TTL > 0 {
		_ = s.cache.Save(ctx, key, todos, s.cfg.Cache.TTL)
	}

	return todos, nil
}

func (s *serviceImpl) View(ctx context.Context, month model.Month) (model.View, error) {
	loc := timezone.GetLocation()
	grid := model.BuildGrid(month, s.now(), loc)

	todos, err := s.FetchRange(ctx, month)
	view := model.NewView(month, grid)

	if err != nil {
		view.Error = failure.Message(err)

		return view, err
	}

	model.Fill(&view.Cells, todos)

	return view, nil
}
