package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"backoffice/config"
	"backoffice/infras/otel"
	activityModel "backoffice/internal/domains/activity/model"
	activityDto "backoffice/internal/domains/activity/model/dto"
	activityService "backoffice/internal/domains/activity/service"
	calendarModel "backoffice/internal/domains/calendar/model"
	"backoffice/internal/domains/todo/model"
	"backoffice/internal/domains/todo/model/dto"
	"backoffice/internal/domains/todo/repository"
	"backoffice/shared/cache"
	"backoffice/shared/constant"
	"backoffice/shared/pager"
	"backoffice/shared/validator"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Todo interface {
	GetAll(ctx context.Context) ([]model.Todo, error)
	Get(ctx context.Context, id string) (model.Todo, error)
	Create(ctx context.Context, req dto.TodoRequest) (model.Todo, error)
	Update(ctx context.Context, id string, req dto.TodoRequest) (model.Todo, error)
	Delete(ctx context.Context, id string) error
	GetByDate(ctx context.Context, date string) ([]model.Todo, error)
	// GetWithoutDueDate has the pager.Fetcher shape and backs the no-due-date loader.
	GetWithoutDueDate(ctx context.Context, filter pager.NoFilter, cursor pager.Cursor) (pager.Page[model.Todo], error)
}

type serviceImpl struct {
	repo     repository.Todo
	activity activityService.Activity
	cache    cache.RedisCache
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo repository.Todo, activity activityService.Activity, cache cache.RedisCache, cfg *config.Config, otel otel.Otel) Todo {
	return &serviceImpl{
		repo:     repo,
		activity: activity,
		cache:    cache,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (todos []model.Todo, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Todo.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	todos, err = s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get todos")

		return nil, fmt.Errorf("failed to get todos: %w", err)
	}

	return todos, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (todo model.Todo, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Todo.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	todo, err = s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get todo")

		return todo, fmt.Errorf("failed to get todo: %w", err)
	}

	return todo, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.TodoRequest) (todo model.Todo, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Todo.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return todo, err //nolint:wrapcheck
	}

	todo, err = s.repo.Create(ctx, req.ToCreatePayload())
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("failed to create todo")

		return todo, fmt.Errorf("failed to create todo: %w", err)
	}

	s.invalidateCalendar(ctx)
	s.activity.RecordAsync(ctx, activityDto.Entry{
		Action:   activityModel.ActionCreate,
		Entity:   activityModel.EntityTodo,
		EntityID: todo.ID,
		Summary:  fmt.Sprintf("Created TODO %q", req.Title),
	})

	return todo, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.TodoRequest) (todo model.Todo, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Todo.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return todo, err //nolint:wrapcheck
	}

	todo, err = s.repo.Update(ctx, id, req.ToUpdatePayload())
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update todo")

		return todo, fmt.Errorf("failed to update todo: %w", err)
	}

	s.invalidateCalendar(ctx)
	s.activity.RecordAsync(ctx, activityDto.Entry{
		Action:   activityModel.ActionUpdate,
		Entity:   activityModel.EntityTodo,
		EntityID: id,
		Summary:  fmt.Sprintf("Updated TODO %q", req.Title),
	})

	return todo, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Todo.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete todo")

		return fmt.Errorf("failed to delete todo: %w", err)
	}

	s.invalidateCalendar(ctx)
	s.activity.RecordAsync(ctx, activityDto.Entry{
		Action:   activityModel.ActionDelete,
		Entity:   activityModel.EntityTodo,
		EntityID: id,
		Summary:  "Deleted TODO " + id,
	})

	return nil
}

func (s *serviceImpl) GetByDate(ctx context.Context, date string) (todos []model.Todo, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Todo.GetByDate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateVar(date, "required,datetime=2006-01-02"); err != nil {
		return nil, err //nolint:wrapcheck
	}

	todos, err = s.repo.GetByDate(ctx, date)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("failed to get todos by date")

		return nil, fmt.Errorf("failed to get todos by date: %w", err)
	}

	return todos, nil
}

func (s *serviceImpl) GetWithoutDueDate(ctx context.Context, _ pager.NoFilter, cursor pager.Cursor) (page pager.Page[model.Todo], err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Todo.GetWithoutDueDate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err := s.repo.GetWithoutDueDate(ctx, cursor)
	if err != nil {
		log.Error().Err(err).Int("offset", cursor.Offset).Msg("failed to get todos without due date")

		return page, fmt.Errorf("failed to get todos without due date: %w", err)
	}

	return pager.Page[model.Todo]{Items: res.Todos, HasMore: res.HasMore}, nil
}

// invalidateCalendar drops every cached month range. Errors are logged only.
func (s *serviceImpl) invalidateCalendar(ctx context.Context) {
	if err := s.cache.Clear(ctx, calendarModel.RangePattern()); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate calendar cache")
	}
}
