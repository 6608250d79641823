package service_test

import (
	"backoffice/config"
	"backoffice/infras/otel/mocks"
	"backoffice/infras/s3"
	s3Mocks "backoffice/infras/s3/mocks"
	activityModel "backoffice/internal/domains/activity/model"
	activityDto "backoffice/internal/domains/activity/model/dto"
	activityMocks "backoffice/internal/domains/activity/service/mocks"
	mediaMocks "backoffice/internal/domains/media/mocks"
	"backoffice/internal/domains/media/model"
	"backoffice/internal/domains/media/model/dto"
	"backoffice/internal/domains/media/service"
	"backoffice/shared/failure"
	"backoffice/shared/pager"
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo     *mediaMocks.MockMedia
	activity *activityMocks.MockActivity
	storage  *s3Mocks.MockS3
	svc      service.Media
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		repo:     mediaMocks.NewMockMedia(ctrl),
		activity: activityMocks.NewMockActivity(ctrl),
		storage:  s3Mocks.NewMockS3(ctrl),
	}
	f.svc = service.New(f.repo, f.activity, f.storage, &config.Config{}, mocks.NewOtel())

	return f
}

func ptr(s string) *string { return &s }

// uploadedFile parses a real multipart body so the header can be opened.
func uploadedFile(t *testing.T, name, contentType, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

func TestMediaService_GetPageResolvesPreviews(t *testing.T) {
	f := newFixture(t)

	filter := model.Filter{Title: "cat"}
	cursor := pager.Cursor{Offset: 20, Limit: 20}

	f.repo.EXPECT().GetPage(gomock.Any(), filter, cursor).Return(dto.ListResponse{
		Media: []model.Media{
			{ID: "cdn", Type: model.TypeImage, CloudfrontURL: ptr("https://cdn.example.com/a.png"), S3Key: ptr("uploads/a.png")},
			{ID: "s3", Type: model.TypeImage, S3Key: ptr("uploads/b.png")},
			{ID: "yt", Type: model.TypeVideo, YouTubeURL: ptr("https://youtu.be/dQw4w9WgXcQ")},
		},
		HasMore: true,
	}, nil)
	f.storage.EXPECT().PresignGet(gomock.Any(), "uploads/b.png").Return("https://s3.example.com/b.png?sig", nil)

	page, err := f.svc.GetPage(context.Background(), filter, cursor)
	require.NoError(t, err)
	assert.True(t, page.HasMore)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "https://cdn.example.com/a.png", page.Items[0].PreviewURL)
	assert.Equal(t, "https://s3.example.com/b.png?sig", page.Items[1].PreviewURL)
	assert.Empty(t, page.Items[2].PreviewURL)
}

func TestMediaService_GetPresignFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), "m1").Return(model.Media{ID: "m1", S3Key: ptr("k")}, nil)
	f.storage.EXPECT().PresignGet(gomock.Any(), "k").Return("", s3.ErrNotConfigured)

	media, err := f.svc.Get(context.Background(), "m1")
	require.NoError(t, err)
	assert.Empty(t, media.PreviewURL)
}

func TestMediaService_GetNotFound(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), "missing").Return(model.Media{}, failure.New(http.StatusNotFound, "media not found"))

	_, err := f.svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, failure.IsNotFound(err))
}

func TestMediaService_Upload(t *testing.T) {
	t.Run("streams file and records activity", func(t *testing.T) {
		f := newFixture(t)
		req := dto.UploadRequest{Title: "Cat", File: uploadedFile(t, "cat.png", "image/png", "PNGDATA")}

		f.repo.EXPECT().
			Upload(gomock.Any(), req, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ dto.UploadRequest, file io.Reader) (model.Media, error) {
				body, err := io.ReadAll(file)
				assert.NoError(t, err)
				assert.Equal(t, "PNGDATA", string(body))

				return model.Media{ID: "m1"}, nil
			})
		f.activity.EXPECT().
			RecordAsync(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, entry activityDto.Entry) {
				assert.Equal(t, activityModel.ActionUpload, entry.Action)
				assert.Equal(t, "m1", entry.EntityID)
			})

		media, err := f.svc.Upload(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "m1", media.ID)
	})

	t.Run("missing file is rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Upload(context.Background(), dto.UploadRequest{Title: "Cat"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("backend error is not recorded", func(t *testing.T) {
		f := newFixture(t)
		req := dto.UploadRequest{Title: "Cat", File: uploadedFile(t, "cat.png", "image/png", "x")}

		f.repo.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Media{}, failure.BadGateway("Failed to upload media"))

		_, err := f.svc.Upload(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, "Failed to upload media", failure.Message(err))
	})
}

func TestMediaService_Mutations(t *testing.T) {
	tests := []struct {
		name       string
		setupMock  func(f fixture)
		call       func(service.Media) error
		wantAction string
		wantErr    error
	}{
		{
			name: "youtube",
			setupMock: func(f fixture) {
				f.repo.EXPECT().CreateYouTube(gomock.Any(), gomock.Any()).Return(model.Media{ID: "m1"}, nil)
			},
			call: func(s service.Media) error {
				_, err := s.CreateYouTube(context.Background(), dto.YouTubeRequest{YouTubeURL: "https://youtu.be/dQw4w9WgXcQ", Title: "Song"})
				return err
			},
			wantAction: activityModel.ActionCreate,
		},
		{
			name: "delete",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Delete(gomock.Any(), "m1").Return(nil)
			},
			call: func(s service.Media) error {
				return s.Delete(context.Background(), "m1")
			},
			wantAction: activityModel.ActionDelete,
		},
		{
			name: "associate",
			setupMock: func(f fixture) {
				f.repo.EXPECT().AddTag(gomock.Any(), "m1", "t1").Return(nil)
			},
			call: func(s service.Media) error {
				return s.AddTag(context.Background(), "m1", "t1")
			},
			wantAction: activityModel.ActionAssociate,
		},
		{
			name: "dissociate",
			setupMock: func(f fixture) {
				f.repo.EXPECT().RemoveTag(gomock.Any(), "m1", "t1").Return(nil)
			},
			call: func(s service.Media) error {
				return s.RemoveTag(context.Background(), "m1", "t1")
			},
			wantAction: activityModel.ActionDissociate,
		},
		{
			name: "failed associate",
			setupMock: func(f fixture) {
				f.repo.EXPECT().AddTag(gomock.Any(), "m1", "t1").Return(errors.New("boom"))
			},
			call: func(s service.Media) error {
				return s.AddTag(context.Background(), "m1", "t1")
			},
			wantErr: errors.New("failed to associate tag: boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			if tt.wantErr == nil {
				f.activity.EXPECT().
					RecordAsync(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, entry activityDto.Entry) {
						assert.Equal(t, tt.wantAction, entry.Action)
						assert.Equal(t, activityModel.EntityMedia, entry.Entity)
					})
			}

			err := tt.call(f.svc)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())

				return
			}

			require.NoError(t, err)
		})
	}
}
