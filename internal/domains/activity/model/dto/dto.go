package dto

import (
	"backoffice/internal/domains/activity/model"
	"backoffice/shared/constant"
	gDto "backoffice/shared/dto"
	gModel "backoffice/shared/model"
	"backoffice/shared/timezone"
	"net/http"

	"github.com/google/uuid"
)

// Entry describes a mutation to record.
type Entry struct {
	Action   string
	Entity   string
	EntityID string
	Summary  string
}

func (e *Entry) ToModel(actor string) model.Activity {
	if actor == "" {
		actor = constant.ContextGuest
	}

	return model.Activity{
		ID:       uuid.NewString(),
		Action:   e.Action,
		Entity:   e.Entity,
		EntityID: e.EntityID,
		Summary:  e.Summary,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
			CreatedBy: actor,
		},
	}
}

// Filter narrows the activity page by entity and action.
type Filter struct {
	Entity string `json:"entity" validate:"omitempty,oneof=media tag todo"`
	Action string `json:"action" validate:"omitempty,oneof=create update delete upload associate dissociate"`
}

func (f *Filter) FromRequest(r *http.Request) {
	query := r.URL.Query()
	f.Entity = query.Get(model.FieldEntity)
	f.Action = query.Get(model.FieldAction)
}

func (f *Filter) ToFilterGroup() gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldEntity, Operator: gDto.FilterOperatorEq, Value: f.Entity},
			gDto.Filter{Field: model.FieldAction, Operator: gDto.FilterOperatorEq, Value: f.Action},
		},
	}
}

type ActivityResponse struct {
	ID       string `json:"id"`
	Action   string `json:"action"`
	Entity   string `json:"entity"`
	EntityID string `json:"entity_id"`
	Summary  string `json:"summary"`
	gDto.Metadata
}

func (r *ActivityResponse) FromModel(model model.Activity) {
	r.ID = model.ID
	r.Action = model.Action
	r.Entity = model.Entity
	r.EntityID = model.EntityID
	r.Summary = model.Summary
	r.Metadata.FromModel(model.Metadata)
}

type ListResponse struct {
	Activities []ActivityResponse `json:"activities"`
	Filter     Filter             `json:"filter"`
	gDto.Pagination
}

func (r *ListResponse) FromModels(models []model.Activity, params gDto.QueryParams, total int) {
	r.Pagination = gDto.NewPagination(params, total)

	r.Activities = make([]ActivityResponse, len(models))
	for i, mod := range models {
		r.Activities[i].FromModel(mod)
	}
}
