// Package docs registers the Swagger document of the console's JSON endpoints.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "tags": [
        {"name": "Calendar", "description": "Month grid of dated TODOs"},
        {"name": "Media", "description": "Infinite scroll of the media list and tag offers"},
        {"name": "Todo", "description": "Infinite scroll of TODOs without due date"}
    ],
    "paths": {
        "/calendar": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Calendar month",
                "description": "42-cell grid of the month with the TODOs covering each day. Invalid year or month fall back to the current month.",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "month", "in": "query", "type": "integer", "minimum": 1, "maximum": 12}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CalendarEnvelope"}},
                    "401": {"description": "Session expired", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/media/more": {
            "get": {
                "tags": ["Media"],
                "summary": "Load the next media page",
                "description": "Appends the next page of the current media list of the session. Answers loaded=false without calling the backend when a load is already running or the list is exhausted.",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MediaPageEnvelope"}},
                    "401": {"description": "Session expired", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/media/upload/tags": {
            "get": {
                "tags": ["Media"],
                "summary": "Tags offered for a media type",
                "description": "Tags of type all plus those matching type. An empty type offers only the all tags.",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "type", "in": "query", "type": "string", "enum": ["image", "audio", "video"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TagsEnvelope"}},
                    "401": {"description": "Session expired", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/todos/without-due-date/more": {
            "get": {
                "tags": ["Todo"],
                "summary": "Load the next page of TODOs without due date",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TodoPageEnvelope"}},
                    "401": {"description": "Session expired", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        }
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "Tag": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "type": {"type": "string", "enum": ["all", "image", "audio", "video"]},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "Media": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "type": {"type": "string", "enum": ["image", "audio", "video"]},
                "s3_key": {"type": "string"},
                "cloudfront_url": {"type": "string"},
                "youtube_url": {"type": "string"},
                "preview_url": {"type": "string"},
                "tags": {"type": "array", "items": {"$ref": "#/definitions/Tag"}},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "Todo": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "due_date": {"type": "string"},
                "completed": {"type": "boolean"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "MediaPage": {
            "type": "object",
            "properties": {
                "media": {"type": "array", "items": {"$ref": "#/definitions/Media"}},
                "html": {"type": "array", "items": {"type": "string"}},
                "loaded": {"type": "boolean"},
                "offset": {"type": "integer"},
                "has_more": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "TodoPage": {
            "type": "object",
            "properties": {
                "todos": {"type": "array", "items": {"$ref": "#/definitions/Todo"}},
                "html": {"type": "array", "items": {"type": "string"}},
                "loaded": {"type": "boolean"},
                "offset": {"type": "integer"},
                "has_more": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "CalendarEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"}
            }
        },
        "MediaPageEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/MediaPage"}
            }
        },
        "TodoPageEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/TodoPage"}
            }
        },
        "TagsEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/Tag"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Backoffice console",
	Description:      "JSON endpoints behind the console's infinite scroll and calendar.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
