// Package backend is the single transport to the media/tag/TODO REST API.
//
// Every call goes through Client.Do, which applies the outbound rate limit,
// stamps a request ID, traces the round trip and maps failures onto
// failure.Failure: a non-2xx answer carries the backend's {"error"} text when
// present and the call site's fallback message otherwise.
package backend

//go:generate go run go.uber.org/mock/mockgen -source=./backend.go -destination=./mocks/backend_mock.go -package=mocks

import (
	"backoffice/config"
	"backoffice/infras/otel"
	"backoffice/shared/constant"
	"backoffice/shared/failure"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// maxErrorBody bounds how much of a failed response is read looking for {"error"}.
const maxErrorBody = 64 << 10

type Client interface {
	Do(ctx context.Context, req Request, out any) error
}

// Recorder receives one observation per round trip.
type Recorder interface {
	ObserveBackend(method, route string, status int, duration time.Duration)
}

type Request struct {
	Method string
	Path   string
	// Route is the low-cardinality path template used for metrics and span names.
	Route    string
	Query    url.Values
	JSON     any
	Form     *Multipart
	Fallback string
}

// Multipart is an upload body. The file part is written first, then Fields in order.
type Multipart struct {
	File   *File
	Fields []Field
}

type Field struct {
	Name  string
	Value string
}

type File struct {
	Field       string
	Name        string
	ContentType string
	Reader      io.Reader
}

type errorBody struct {
	Error string `json:"error"`
}

type clientImpl struct {
	baseURL  string
	apiKey   string
	http     *http.Client
	limiter  *rate.Limiter
	otel     otel.Otel
	recorder Recorder
}

func New(cfg *config.Config, ot otel.Otel, recorder Recorder) Client {
	return NewWithHTTPClient(cfg, ot, recorder, &http.Client{
		Timeout: time.Duration(cfg.Backend.TimeoutSeconds) * time.Second,
	})
}

// NewWithHTTPClient is New with a caller-supplied http.Client.
func NewWithHTTPClient(cfg *config.Config, ot otel.Otel, recorder Recorder, httpClient *http.Client) Client {
	limit := rate.Inf
	if cfg.Backend.RatePerSecond > 0 {
		limit = rate.Limit(cfg.Backend.RatePerSecond)
	}

	burst := cfg.Backend.RateBurst
	if burst <= 0 {
		burst = 1
	}

	log.Info().
		Str("base_url", cfg.Backend.BaseURL).
		Float64("rate_per_second", cfg.Backend.RatePerSecond).
		Int("burst", burst).
		Msg("Backend client initialized")

	return &clientImpl{
		baseURL:  strings.TrimRight(cfg.Backend.BaseURL, "/"),
		apiKey:   cfg.Backend.APIKey,
		http:     httpClient,
		limiter:  rate.NewLimiter(limit, burst),
		otel:     ot,
		recorder: recorder,
	}
}

func (c *clientImpl) Do(ctx context.Context, req Request, out any) (err error) {
	route := req.Route
	if route == "" {
		route = req.Path
	}

	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+"."+req.Method+" "+route)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"http.method": req.Method,
		"http.route":  route,
	})

	if err = c.limiter.Wait(ctx); err != nil {
		log.Error().Err(err).Str("route", route).Msg("failed to wait for backend rate limiter")

		return failure.BadGateway(req.Fallback)
	}

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("route", route).Msg("failed to build backend request")

		return fmt.Errorf("failed to build backend request: %w", err)
	}

	scope.SetAttribute("http.request_id", httpReq.Header.Get(constant.RequestHeaderRequestID))

	start := time.Now()
	resp, err := c.http.Do(httpReq)

	if err != nil {
		c.observe(req.Method, route, 0, time.Since(start))
		log.Error().Err(err).Str("route", route).Msg("failed to reach backend")

		return failure.BadGateway(req.Fallback)
	}
	defer resp.Body.Close()

	c.observe(req.Method, route, resp.StatusCode, time.Since(start))
	scope.SetAttribute("http.status_code", resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp, req.Fallback)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)

		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error().Err(err).Str("route", route).Msg("failed to decode backend response")

		return failure.BadGateway(req.Fallback)
	}

	return nil
}

func (c *clientImpl) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
		startWriter func()
	)

	switch {
	case req.Form != nil:
		reader, writer := io.Pipe()
		mw := multipart.NewWriter(writer)
		contentType = mw.FormDataContentType()
		body = reader

		// Started only once the request exists; nothing drains the pipe otherwise.
		startWriter = func() {
			go func() {
				writer.CloseWithError(writeMultipart(mw, req.Form))
			}()
		}
	case req.JSON != nil:
		payload, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}

		body = bytes.NewReader(payload)
		contentType = constant.ContentTypeJSON
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeJSON)
	httpReq.Header.Set(constant.RequestHeaderRequestID, requestID(ctx))

	if contentType != "" {
		httpReq.Header.Set(constant.RequestHeaderContentType, contentType)
	}

	if c.apiKey != "" {
		httpReq.Header.Set(constant.RequestHeaderAPIKey, c.apiKey)
	}

	if startWriter != nil {
		startWriter()
	}

	return httpReq, nil
}

func (c *clientImpl) observe(method, route string, status int, duration time.Duration) {
	if c.recorder != nil {
		c.recorder.ObserveBackend(method, route, status, duration)
	}
}

func writeMultipart(mw *multipart.Writer, form *Multipart) error {
	if form.File != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, form.File.Field, form.File.Name))

		if form.File.ContentType != "" {
			header.Set(constant.RequestHeaderContentType, form.File.ContentType)
		}

		part, err := mw.CreatePart(header)
		if err != nil {
			return fmt.Errorf("failed to create file part: %w", err)
		}

		if _, err = io.Copy(part, form.File.Reader); err != nil {
			return fmt.Errorf("failed to copy file part: %w", err)
		}
	}

	for _, field := range form.Fields {
		if err := mw.WriteField(field.Name, field.Value); err != nil {
			return fmt.Errorf("failed to write field %s: %w", field.Name, err)
		}
	}

	return mw.Close()
}

func decodeError(resp *http.Response, fallback string) error {
	var body errorBody

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(raw, &body); err != nil || strings.TrimSpace(body.Error) == "" {
		return failure.New(resp.StatusCode, fallback)
	}

	return failure.New(resp.StatusCode, body.Error)
}

// requestID propagates the inbound request ID, or mints one for background calls.
func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(constant.ContextKeyRequestID).(string); ok && id != "" {
		return id
	}

	id, err := gonanoid.New()
	if err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}

	return id
}
