package dto

import (
	"backoffice/shared/constant"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest populates QueryParams from the HTTP request.
// With defaultRequest set, missing page and limit fall back to the defaults
// and sorting falls back to newest first.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = limitInt
		}
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := strings.ToUpper(queryParams.Get(constant.RequestParamSortDir)); sortDir == SortDirAsc || sortDir == SortDirDesc {
		q.SortDir = sortDir
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}

		if q.SortBy == "" {
			q.SortBy = constant.DefaultValueSortBy
		}

		if q.SortDir == "" {
			q.SortDir = constant.DefaultValueSortDir
		}
	}
}

// AllowSort drops a sort column that is not in allowed, since it ends up in ORDER BY verbatim.
func (q *QueryParams) AllowSort(allowed ...string) {
	if !slices.Contains(allowed, q.SortBy) {
		q.SortBy = constant.DefaultValueSortBy
	}
}

// Offset is the row offset of the requested page.
func (q *QueryParams) Offset() int {
	if q.Page <= 1 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}
