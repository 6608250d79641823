package constant

import (
	"time"
)

const (
	ContextGuest = "guest"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyActor     contextKey = "actor"
	ContextKeySessionID contextKey = "session_id"
	ContextKeyRequestID contextKey = "request_id"
	ContextKeySession   contextKey = "session"
)

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamOffset  = "offset"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
	RequestParamTitle   = "title"
	RequestParamTagIDs  = "tag_ids"
	RequestParamYear    = "year"
	RequestParamMonth   = "month"
	RequestParamDate    = "date"
	RequestParamType    = "type"
	RequestParamNext    = "next"
	RequestParamKind    = "kind"
)

const (
	RequestParamID    = "id"
	RequestParamTagID = "tagId"
	// Uploads may carry a 100 MB file plus form fields.
	RequestMaxMemory = 32 << 20
	MaxUploadBytes   = 100 << 20
)

const (
	DefaultValuePage    = 1
	DefaultValueLimit   = 10
	DefaultValueSortBy  = "created_at"
	DefaultValueSortDir = "DESC"
	DefaultPageSize     = 20
)

const (
	FieldCreatedAt = "created_at"
)

const (
	DateFormat    = time.RFC3339
	DayFormat     = time.DateOnly
	MidnightUTC   = "T00:00:00Z"
	DateSeparator = "T"
)

const (
	MinutesToSeconds = 60
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelExternalScopeName   = "external"

	OtelQueryAttributeKey = "query"
	OtelS3ScopeName       = "s3"
	OtelLoaderScopeName   = "loader"
)

const (
	RequestHeaderAccept             = "Accept"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRetryAfter         = "Retry-After"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderAPIKey             = "X-API-Key"
)

const (
	ContentTypeJSON              = "application/json"
	ContentTypeHTML              = "text/html; charset=utf-8"
	ContentTypeFormURLEncoded    = "application/x-www-form-urlencoded"
	ContentTypeMultipartFormData = "multipart/form-data"
	FormFile                     = "file"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	SessionCookieName = "backoffice_session"
)

const (
	RouteHome          = "/"
	RouteLogin         = "/login"
	RouteMedia         = "/media"
	RouteTags          = "/tags"
	RouteTodosUndated  = "/todos/without-due-date"
	RouteSwaggerPrefix = "/swagger"
)

const (
	Asterix = "*"
	Empty   = ""
)
