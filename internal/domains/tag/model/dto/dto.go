package dto

import (
	mediaModel "backoffice/internal/domains/media/model"
	"backoffice/internal/domains/tag/model"
	"net/http"
)

// TagRequest is the create and update form, also the backend request body.
type TagRequest struct {
	Name string `json:"name" form:"name" validate:"required,max=255,nospace"`
	Type string `json:"type" form:"type" validate:"required,oneof=all image audio video"`
}

func (r *TagRequest) FromRequest(request *http.Request) {
	r.Name = request.PostFormValue(model.FieldName)
	r.Type = request.PostFormValue(model.FieldType)
}

func (r *TagRequest) FromModel(tag model.Tag) {
	r.Name = tag.Name
	r.Type = tag.Type
}

type ListResponse struct {
	Tags []model.Tag `json:"tags"`
}

type MediaResponse struct {
	Media []mediaModel.Media `json:"media"`
}
