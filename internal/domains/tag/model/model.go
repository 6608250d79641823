package model

const (
	EntityName = "tag"

	FieldName = "name"
	FieldType = "type"
)

// Tag types. A tag of TypeAll applies to every media type.
const (
	TypeAll   = "all"
	TypeImage = "image"
	TypeAudio = "audio"
	TypeVideo = "video"
)

var Types = []string{TypeAll, TypeImage, TypeAudio, TypeVideo}

type Tag struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// AppliesTo reports whether the tag may be attached to media of mediaType.
// With no media type known yet only TypeAll tags apply.
func (t Tag) AppliesTo(mediaType string) bool {
	if t.Type == TypeAll {
		return true
	}

	return mediaType != "" && t.Type == mediaType
}

// Offered filters tags down to those offered for mediaType, keeping order.
func Offered(tags []Tag, mediaType string) []Tag {
	offered := make([]Tag, 0, len(tags))

	for _, tag := range tags {
		if tag.AppliesTo(mediaType) {
			offered = append(offered, tag)
		}
	}

	return offered
}
