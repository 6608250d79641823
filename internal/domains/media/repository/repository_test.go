package repository_test

import (
	"backoffice/config"
	"backoffice/infras/backend"
	"backoffice/infras/otel/mocks"
	"backoffice/internal/domains/media/model"
	"backoffice/internal/domains/media/model/dto"
	"backoffice/internal/domains/media/repository"
	"backoffice/shared/failure"
	"backoffice/shared/pager"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, handler http.HandlerFunc) repository.Media {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Backend.BaseURL = server.URL + "/api/v1"

	return repository.New(backend.NewWithHTTPClient(cfg, mocks.NewOtel(), nil, server.Client()))
}

func TestMediaRepository_GetPageQuery(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/media", r.URL.Path)

		query := r.URL.Query()
		assert.Equal(t, "40", query.Get("offset"))
		assert.Equal(t, "20", query.Get("limit"))
		assert.Equal(t, "cat", query.Get("title"))
		assert.Equal(t, []string{"a", "b"}, query["tag_ids"])

		_, _ = w.Write([]byte(`{"media":[{"id":"m1","type":"image","title":"cat 1","tags":[]}],"has_more":true}`))
	})

	res, err := repo.GetPage(t.Context(), model.Filter{Title: "cat", TagIDs: []string{"a", "b"}}, pager.Cursor{Offset: 40, Limit: 20})
	require.NoError(t, err)
	assert.True(t, res.HasMore)
	require.Len(t, res.Media, 1)
	assert.Equal(t, "m1", res.Media[0].ID)
}

func TestMediaRepository_GetPageOmitsEmptyFilter(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		assert.False(t, query.Has("title"))
		assert.False(t, query.Has("tag_ids"))

		// has_more absent means no more pages.
		_, _ = w.Write([]byte(`{"media":[]}`))
	})

	res, err := repo.GetPage(t.Context(), model.Filter{}, pager.Cursor{Limit: 20})
	require.NoError(t, err)
	assert.False(t, res.HasMore)
}

func TestMediaRepository_Upload(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/media/upload", r.URL.Path)

		reader, err := r.MultipartReader()
		if !assert.NoError(t, err) {
			return
		}

		var names, values []string
		for {
			part, err := reader.NextPart()
			if err == io.EOF {
				break
			}

			if !assert.NoError(t, err) {
				return
			}

			body, _ := io.ReadAll(part)
			names = append(names, part.FormName())
			values = append(values, string(body))

			if part.FormName() == "file" {
				assert.Equal(t, "cat.png", part.FileName())
				assert.Equal(t, "image/png", part.Header.Get("Content-Type"))
			}
		}

		assert.Equal(t, []string{"file", "title", "description", "tag_ids", "tag_ids"}, names)
		assert.Equal(t, []string{"PNGDATA", "Cat", "A cat", "t1", "t2"}, values)

		_, _ = w.Write([]byte(`{"id":"m1","type":"image","title":"Cat","tags":[]}`))
	})

	header := &multipart.FileHeader{Filename: "cat.png", Size: 7, Header: textproto.MIMEHeader{}}
	header.Header.Set("Content-Type", "image/png")

	media, err := repo.Upload(t.Context(), dto.UploadRequest{
		Title:       "Cat",
		Description: "A cat",
		TagIDs:      []string{"t1", "t2"},
		File:        header,
	}, strings.NewReader("PNGDATA"))
	require.NoError(t, err)
	assert.Equal(t, "m1", media.ID)
}

func TestMediaRepository_UploadWithoutDescription(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}

		_, hasDescription := r.MultipartForm.Value["description"]
		assert.False(t, hasDescription)
		assert.Empty(t, r.MultipartForm.Value["tag_ids"])

		w.WriteHeader(http.StatusRequestEntityTooLarge)
	})

	_, err := repo.Upload(t.Context(), dto.UploadRequest{Title: "Song"}, strings.NewReader("ID3"))
	require.Error(t, err)
	assert.Equal(t, "Failed to upload media", failure.Message(err))
	assert.Equal(t, http.StatusRequestEntityTooLarge, failure.GetCode(err))
}

func TestMediaRepository_CreateYouTube(t *testing.T) {
	tests := []struct {
		name string
		req  dto.YouTubeRequest
		want string
	}{
		{
			name: "blank description omitted and tag_ids defaults to empty array",
			req:  dto.YouTubeRequest{YouTubeURL: "https://youtu.be/dQw4w9WgXcQ", Title: "Song", Description: "   "},
			want: `{"youtube_url":"https://youtu.be/dQw4w9WgXcQ","title":"Song","tag_ids":[]}`,
		},
		{
			name: "description and tags kept",
			req:  dto.YouTubeRequest{YouTubeURL: "https://youtu.be/dQw4w9WgXcQ", Title: "Song", Description: "live", TagIDs: []string{"t1"}},
			want: `{"youtube_url":"https://youtu.be/dQw4w9WgXcQ","title":"Song","description":"live","tag_ids":["t1"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/media/youtube", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				body, _ := io.ReadAll(r.Body)
				assert.JSONEq(t, tt.want, string(body))

				_, _ = w.Write([]byte(`{"id":"m2","type":"video","title":"Song","youtube_url":"https://youtu.be/dQw4w9WgXcQ","tags":[]}`))
			})

			media, err := repo.CreateYouTube(t.Context(), tt.req)
			require.NoError(t, err)
			assert.True(t, media.IsYouTube())
		})
	}
}

func TestMediaRepository_Tags(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
	)

	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()

		if r.Method == http.MethodPost {
			var body map[string]string
			if assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
				assert.Equal(t, map[string]string{"tag_id": "t1"}, body)
			}
		}

		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, repo.AddTag(t.Context(), "m1", "t1"))
	require.NoError(t, repo.RemoveTag(t.Context(), "m1", "t1"))
	require.NoError(t, repo.Delete(t.Context(), "m1"))

	mu.Lock()
	defer mu.Unlock()

	assert.Equal(t, []string{
		"POST /api/v1/media/m1/tags",
		"DELETE /api/v1/media/m1/tags/t1",
		"DELETE /api/v1/media/m1",
	}, calls)
}

func TestMediaRepository_Fallbacks(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := repo.GetAll(t.Context())
	assert.Equal(t, "Failed to fetch media list", failure.Message(err))

	_, err = repo.Get(t.Context(), "m1")
	assert.Equal(t, "Failed to fetch media", failure.Message(err))

	err = repo.AddTag(t.Context(), "m1", "t1")
	assert.Equal(t, "Failed to associate tag", failure.Message(err))

	err = repo.RemoveTag(t.Context(), "m1", "t1")
	assert.Equal(t, "Failed to remove tag", failure.Message(err))

	err = repo.Delete(t.Context(), "m1")
	assert.Equal(t, "Failed to delete media", failure.Message(err))
}
