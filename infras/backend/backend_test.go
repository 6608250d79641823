package backend_test

import (
	"backoffice/config"
	"backoffice/infras/backend"
	"backoffice/infras/backend/mocks"
	otelMocks "backoffice/infras/otel/mocks"
	"backoffice/shared/constant"
	"backoffice/shared/failure"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type item struct {
	ID string `json:"id"`
}

func newClient(t *testing.T, handler http.HandlerFunc, recorder backend.Recorder) backend.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Backend.BaseURL = server.URL + "/api/v1/"
	cfg.Backend.APIKey = "secret"
	cfg.Backend.TimeoutSeconds = 5

	return backend.NewWithHTTPClient(cfg, otelMocks.NewOtel(), recorder, server.Client())
}

func TestClient_DoDecodesJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := mocks.NewMockRecorder(ctrl)
	recorder.EXPECT().ObserveBackend(http.MethodGet, "/media", http.StatusOK, gomock.Any())

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/media", r.URL.Path)
		assert.Equal(t, []string{"a", "b"}, r.URL.Query()["tag_ids"])
		assert.Equal(t, "secret", r.Header.Get(constant.RequestHeaderAPIKey))
		assert.Equal(t, "req-1", r.Header.Get(constant.RequestHeaderRequestID))

		_, _ = w.Write([]byte(`{"media":[{"id":"m1"}],"has_more":true}`))
	}, recorder)

	var out struct {
		Media   []item `json:"media"`
		HasMore bool   `json:"has_more"`
	}

	ctx := context.WithValue(context.Background(), constant.ContextKeyRequestID, "req-1")
	err := client.Do(ctx, backend.Request{
		Method:   http.MethodGet,
		Path:     "/media",
		Query:    url.Values{"tag_ids": {"a", "b"}},
		Fallback: "Failed to fetch media list",
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "m1"}}, out.Media)
	assert.True(t, out.HasMore)
}

func TestClient_DoSendsJSONBody(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, constant.ContentTypeJSON, r.Header.Get(constant.RequestHeaderContentType))
		assert.NotEmpty(t, r.Header.Get(constant.RequestHeaderRequestID))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"tag_id": "t1"}, body)

		w.WriteHeader(http.StatusNoContent)
	}, nil)

	err := client.Do(context.Background(), backend.Request{
		Method:   http.MethodPost,
		Path:     "/media/m1/tags",
		Route:    "/media/{id}/tags",
		JSON:     map[string]string{"tag_id": "t1"},
		Fallback: "Failed to associate tag",
	}, &struct{}{})

	require.NoError(t, err)
}

func TestClient_DoSendsMultipartInOrder(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		reader, err := r.MultipartReader()
		if !assert.NoError(t, err) {
			return
		}

		var names []string
		for {
			part, err := reader.NextPart()
			if err == io.EOF {
				break
			}

			if !assert.NoError(t, err) {
				return
			}

			names = append(names, part.FormName())

			if part.FormName() == "file" {
				assert.Equal(t, "cat.png", part.FileName())
				content, _ := io.ReadAll(part)
				assert.Equal(t, "png-bytes", string(content))
			}
		}

		assert.Equal(t, []string{"file", "title", "tag_ids", "tag_ids"}, names)

		_, _ = w.Write([]byte(`{"id":"m9"}`))
	}, nil)

	var out item
	err := client.Do(context.Background(), backend.Request{
		Method: http.MethodPost,
		Path:   "/media/upload",
		Form: &backend.Multipart{
			File: &backend.File{Field: "file", Name: "cat.png", ContentType: "image/png", Reader: strings.NewReader("png-bytes")},
			Fields: []backend.Field{
				{Name: "title", Value: "Cat"},
				{Name: "tag_ids", Value: "t1"},
				{Name: "tag_ids", Value: "t2"},
			},
		},
		Fallback: "Failed to upload media",
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, "m9", out.ID)
}

func TestClient_DoMapsErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode int
		wantMsg  string
	}{
		{name: "backend message is surfaced", status: http.StatusBadRequest, body: `{"error":"title is required"}`, wantCode: http.StatusBadRequest, wantMsg: "title is required"},
		{name: "missing message uses fallback", status: http.StatusInternalServerError, body: `{}`, wantCode: http.StatusInternalServerError, wantMsg: "Failed to fetch tag"},
		{name: "non json body uses fallback", status: http.StatusBadGateway, body: `<html>`, wantCode: http.StatusBadGateway, wantMsg: "Failed to fetch tag"},
		{name: "not found keeps status", status: http.StatusNotFound, body: `{"error":"tag not found"}`, wantCode: http.StatusNotFound, wantMsg: "tag not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, nil)

			var out item
			err := client.Do(context.Background(), backend.Request{
				Method:   http.MethodGet,
				Path:     "/tags/t1",
				Fallback: "Failed to fetch tag",
			}, &out)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.Equal(t, tt.wantMsg, failure.Message(err))
		})
	}
}

func TestClient_DoUnreachableBackend(t *testing.T) {
	cfg := &config.Config{}
	cfg.Backend.BaseURL = "http://127.0.0.1:1"
	cfg.Backend.TimeoutSeconds = 1

	client := backend.New(cfg, otelMocks.NewOtel(), nil)

	err := client.Do(context.Background(), backend.Request{
		Method:   http.MethodDelete,
		Path:     "/media/m1",
		Fallback: "Failed to delete media",
	}, nil)

	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
	assert.Equal(t, "Failed to delete media", failure.Message(err))
}

type watchedReader struct {
	read atomic.Bool
}

func (w *watchedReader) Read(p []byte) (int, error) {
	w.read.Store(true)

	return 0, io.EOF
}

func TestClient_DoMalformedBaseURLLeavesUploadUnread(t *testing.T) {
	cfg := &config.Config{}
	cfg.Backend.BaseURL = "http://[::1"
	cfg.Backend.TimeoutSeconds = 1

	client := backend.New(cfg, otelMocks.NewOtel(), nil)
	file := &watchedReader{}

	err := client.Do(context.Background(), backend.Request{
		Method: http.MethodPost,
		Path:   "/media/upload",
		Form: &backend.Multipart{
			File:   &backend.File{Field: "file", Name: "cat.png", ContentType: "image/png", Reader: file},
			Fields: []backend.Field{{Name: "title", Value: "Cat"}},
		},
		Fallback: "Failed to upload media",
	}, nil)

	require.Error(t, err)
	assert.Never(t, file.read.Load, 50*time.Millisecond, 5*time.Millisecond)
}

func TestClient_DoInvalidJSONResponse(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}, nil)

	var out item
	err := client.Do(context.Background(), backend.Request{
		Method:   http.MethodGet,
		Path:     "/todos/t1",
		Fallback: "Failed to fetch todo",
	}, &out)

	require.Error(t, err)
	assert.Equal(t, "Failed to fetch todo", failure.Message(err))
}
