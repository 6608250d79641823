package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"backoffice/infras/otel"
	"backoffice/infras/postgres"
	"backoffice/internal/domains/activity/model"
	gDto "backoffice/shared/dto"
	gRepo "backoffice/shared/repository"
	"context"
)

type Activity interface {
	Insert(ctx context.Context, model model.Activity) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Activity, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Activity]
}

func New(db *postgres.Connection, otel otel.Otel) Activity {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Activity](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
