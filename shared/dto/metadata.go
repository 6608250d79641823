package dto

import (
	"backoffice/shared"
	"backoffice/shared/constant"
	"backoffice/shared/model"
	"backoffice/shared/timezone"
)

type Metadata struct {
	CreatedAt string `json:"created_at"`
	CreatedBy string `json:"created_by"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
	m.CreatedBy = model.CreatedBy
}

// Pagination describes a page of a page/limit listing.
type Pagination struct {
	Page      int `json:"page"`
	Limit     int `json:"limit"`
	Total     int `json:"total"`
	TotalPage int `json:"total_page"`
}

func NewPagination(params QueryParams, total int) Pagination {
	return Pagination{
		Page:      params.Page,
		Limit:     params.Limit,
		Total:     total,
		TotalPage: shared.CalculateTotalPage(total, params.Limit),
	}
}

func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPage
}
