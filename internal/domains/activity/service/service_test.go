package service_test

import (
	"backoffice/config"
	"backoffice/infras/otel/mocks"
	activityMocks "backoffice/internal/domains/activity/mocks"
	"backoffice/internal/domains/activity/model"
	"backoffice/internal/domains/activity/model/dto"
	"backoffice/internal/domains/activity/service"
	"backoffice/shared/constant"
	"backoffice/shared/failure"
	gDto "backoffice/shared/dto"
	gModel "backoffice/shared/model"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestActivityService_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := activityMocks.NewMockActivity(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel())

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
	}{
		{
			name: "stores actor from context",
			ctx:  context.WithValue(context.Background(), constant.ContextKeyActor, "admin"),
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, activity model.Activity) error {
						assert.Equal(t, "admin", activity.CreatedBy)
						assert.Equal(t, model.ActionCreate, activity.Action)
						assert.NotEmpty(t, activity.ID)

						return nil
					})
			},
		},
		{
			name: "anonymous actor is recorded as guest",
			ctx:  context.Background(),
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, activity model.Activity) error {
						assert.Equal(t, constant.ContextGuest, activity.CreatedBy)

						return nil
					})
			},
		},
		{
			name: "repository error",
			ctx:  context.Background(),
			setupMock: func() {
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Record(tt.ctx, dto.Entry{Action: model.ActionCreate, Entity: model.EntityTag, EntityID: "t1", Summary: "Created tag x"})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestActivityService_RecordAsyncOutlivesRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := activityMocks.NewMockActivity(ctrl)

	done := make(chan struct{})
	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ model.Activity) error {
			defer close(done)
			assert.NoError(t, ctx.Err())

			return nil
		})

	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc.RecordAsync(ctx, dto.Entry{Action: model.ActionDelete, Entity: model.EntityMedia, EntityID: "m1"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("activity was not recorded")
	}
}

func TestActivityService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := activityMocks.NewMockActivity(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel())

	params := gDto.QueryParams{Page: 1, Limit: 2, SortBy: "password", SortDir: "DESC"}

	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p gDto.QueryParams, _ gDto.FilterGroup) ([]model.Activity, error) {
			assert.Equal(t, constant.DefaultValueSortBy, p.SortBy)

			return []model.Activity{
				{ID: "a1", Action: "create", Entity: "tag", Metadata: gModel.Metadata{CreatedBy: "admin"}},
				{ID: "a2", Action: "delete", Entity: "tag", Metadata: gModel.Metadata{CreatedBy: "admin"}},
			}, nil
		})

	res, err := svc.List(context.Background(), params, dto.Filter{Entity: "tag"})

	require.NoError(t, err)
	assert.Len(t, res.Activities, 2)
	assert.Equal(t, 2, res.TotalPage)
	assert.True(t, res.HasNext())
	assert.Equal(t, "tag", res.Filter.Entity)
}

func TestActivityService_ListRejectsUnknownFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := service.New(activityMocks.NewMockActivity(ctrl), &config.Config{}, mocks.NewOtel())

	_, err := svc.List(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.Filter{Entity: "user"})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestActivityService_ListCountError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := activityMocks.NewMockActivity(ctrl)
	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("database error"))

	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel())

	_, err := svc.List(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.Filter{})
	assert.Error(t, err)
}
