package model

import "backoffice/shared/model"

const (
	TableName  = "activities"
	EntityName = "activity"

	FieldID        = "id"
	FieldAction    = "action"
	FieldEntity    = "entity"
	FieldCreatedBy = "created_by"
	FieldCreatedAt = "created_at"
)

const (
	ActionCreate     = "create"
	ActionUpdate     = "update"
	ActionDelete     = "delete"
	ActionUpload     = "upload"
	ActionAssociate  = "associate"
	ActionDissociate = "dissociate"
)

const (
	EntityMedia = "media"
	EntityTag   = "tag"
	EntityTodo  = "todo"
)

// Activity is one mutation performed through the console.
type Activity struct {
	ID       string `db:"id"`
	Action   string `db:"action"`
	Entity   string `db:"entity"`
	EntityID string `db:"entity_id"`
	Summary  string `db:"summary"`
	model.Metadata
}
