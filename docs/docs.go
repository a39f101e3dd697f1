// Package docs holds the registered OpenAPI document for the HTTP API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/content": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Get content document",
                "parameters": [
                    {
                        "type": "string",
                        "description": "section",
                        "name": "section",
                        "in": "query",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/content/status": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Content status",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.ContentStatus"
                        }
                    }
                }
            }
        },
        "/content/operations": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Apply an operation",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.Operation"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.MutationResult"
                        }
                    },
                    "422": {
                        "description": "Not applied",
                        "schema": {
                            "$ref": "#/definitions/domain.MutationResult"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/content/fields/{field}": {
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Set a field",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "field",
                        "name": "field",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.FieldRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.MutationResult"
                        }
                    },
                    "422": {
                        "description": "Not applied",
                        "schema": {
                            "$ref": "#/definitions/domain.MutationResult"
                        }
                    }
                }
            }
        },
        "/content/fields/{field}/nested": {
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Set a nested field",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "field",
                        "name": "field",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.FieldRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.MutationResult"
                        }
                    },
                    "422": {
                        "description": "Not applied",
                        "schema": {
                            "$ref": "#/definitions/domain.MutationResult"
                        }
                    }
                }
            }
        },
        "/content/fields/{field}/items": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Append an array item",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "field",
                        "name": "field",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.FieldRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.MutationResult"
                        }
                    },
                    "422": {
                        "description": "Not applied",
                        "schema": {
                            "$ref": "#/definitions/domain.MutationResult"
                        }
                    }
                }
            }
        },
        "/content/fields/{field}/items/{index}": {
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Update an array item",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "field",
                        "name": "field",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "index",
                        "name": "index",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.FieldRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.MutationResult"
                        }
                    },
                    "422": {
                        "description": "Not applied",
                        "schema": {
                            "$ref": "#/definitions/domain.MutationResult"
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Remove an array item",
                "parameters": [
                    {
                        "type": "string",
                        "description": "field",
                        "name": "field",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "index",
                        "name": "index",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "section",
                        "name": "section",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "array",
                        "items": {
                            "type": "string"
                        },
                        "collectionFormat": "multi",
                        "description": "Candidate sections, in order",
                        "name": "hints",
                        "in": "query",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.MutationResult"
                        }
                    },
                    "422": {
                        "description": "Not applied",
                        "schema": {
                            "$ref": "#/definitions/domain.MutationResult"
                        }
                    }
                }
            }
        },
        "/content/save": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Save content",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.SaveResponse"
                        }
                    },
                    "503": {
                        "description": "Cache write failed",
                        "schema": {
                            "$ref": "#/definitions/http.SaveResponse"
                        }
                    }
                }
            }
        },
        "/content/reload": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Force reload",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.LoadResult"
                        }
                    },
                    "503": {
                        "description": "Reload canceled, content unchanged",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/content/reset": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Reset to defaults",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.StatusResponse"
                        }
                    }
                }
            }
        },
        "/content/restore": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Restore saved changes",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.RestoreResponse"
                        }
                    },
                    "404": {
                        "description": "Nothing cached",
                        "schema": {
                            "$ref": "#/definitions/http.RestoreResponse"
                        }
                    }
                }
            }
        },
        "/content/clean-images": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Clean external images",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.MutationResult"
                            }
                        }
                    }
                }
            }
        },
        "/content/search": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Content"
                ],
                "summary": "Search content",
                "parameters": [
                    {
                        "type": "string",
                        "description": "q",
                        "name": "q",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.SearchMatch"
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/changes": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Changes"
                ],
                "summary": "List changes",
                "parameters": [
                    {
                        "type": "string",
                        "description": "action",
                        "name": "action",
                        "in": "query",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/domain.ChangeLogEntry"
                            }
                        }
                    }
                }
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Changes"
                ],
                "summary": "Record a change",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.RecordRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.ChangeLogEntry"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/changes/{id}/revert": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Changes"
                ],
                "summary": "Revert a change",
                "parameters": [
                    {
                        "type": "string",
                        "description": "id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.ChangeLogEntry"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/editor": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Editor"
                ],
                "summary": "Editor session",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.EditorSession"
                        }
                    }
                }
            }
        },
        "/editor/triggers": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Editor"
                ],
                "summary": "Fire an editor trigger",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.TriggerRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.EditorSession"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/editor/logo-click": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Editor"
                ],
                "summary": "Register a logo click",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.EditorSession"
                        }
                    }
                }
            }
        },
        "/editor/autosave": {
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Editor"
                ],
                "summary": "Toggle autosave",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Request body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.AutoSaveRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.EditorSession"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/editor/save": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Editor"
                ],
                "summary": "Save and close",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.EditorSaveResponse"
                        }
                    },
                    "503": {
                        "description": "Save failed",
                        "schema": {
                            "$ref": "#/definitions/http.EditorSaveResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.ContentStatus": {
            "type": "object",
            "properties": {
                "ready": {
                    "type": "boolean"
                },
                "source": {
                    "type": "string"
                },
                "loaded_at": {
                    "type": "string"
                },
                "revision": {
                    "type": "integer"
                },
                "saved_revision": {
                    "type": "integer"
                },
                "dirty": {
                    "type": "boolean"
                },
                "last_saved_at": {
                    "type": "string"
                },
                "cache_bytes": {
                    "type": "integer"
                },
                "cache_quota": {
                    "type": "integer"
                },
                "cache_usage_percent": {
                    "type": "number"
                },
                "history_length": {
                    "type": "integer"
                }
            }
        },
        "domain.Operation": {
            "type": "object",
            "properties": {
                "kind": {
                    "type": "string",
                    "enum": [
                        "setField",
                        "setNestedField",
                        "setArrayItem",
                        "appendArrayItem",
                        "removeArrayItem"
                    ]
                },
                "section": {
                    "type": "string"
                },
                "field": {
                    "type": "string"
                },
                "subPath": {
                    "type": "string"
                },
                "index": {
                    "type": "integer"
                },
                "value": {},
                "hints": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "domain.MutationResult": {
            "type": "object",
            "properties": {
                "kind": {
                    "type": "string"
                },
                "section": {
                    "type": "string"
                },
                "field": {
                    "type": "string"
                },
                "applied": {
                    "type": "boolean"
                },
                "reason": {
                    "type": "string"
                }
            }
        },
        "domain.TierAttempt": {
            "type": "object",
            "properties": {
                "tier": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                }
            }
        },
        "domain.LoadResult": {
            "type": "object",
            "properties": {
                "source": {
                    "type": "string"
                },
                "attempts": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.TierAttempt"
                    }
                },
                "loaded_at": {
                    "type": "string"
                }
            }
        },
        "domain.SearchMatch": {
            "type": "object",
            "properties": {
                "section": {
                    "type": "string"
                },
                "path": {
                    "type": "string"
                },
                "value": {
                    "type": "string"
                }
            }
        },
        "domain.ChangeLogEntry": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                },
                "action": {
                    "type": "string"
                },
                "details": {
                    "type": "string"
                }
            }
        },
        "domain.EditorSession": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "state": {
                    "type": "string",
                    "enum": [
                        "closed",
                        "open"
                    ]
                },
                "opened_by": {
                    "type": "string"
                },
                "opened_at": {
                    "type": "string"
                },
                "closed_at": {
                    "type": "string"
                },
                "auto_save": {
                    "type": "boolean"
                },
                "last_saved_at": {
                    "type": "string"
                }
            }
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                }
            }
        },
        "http.StatusResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                }
            }
        },
        "http.FieldRequest": {
            "type": "object",
            "properties": {
                "section": {
                    "type": "string"
                },
                "hints": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "path": {
                    "type": "string"
                },
                "value": {}
            }
        },
        "http.SaveResponse": {
            "type": "object",
            "properties": {
                "saved": {
                    "type": "boolean"
                }
            }
        },
        "http.RestoreResponse": {
            "type": "object",
            "properties": {
                "restored": {
                    "type": "boolean"
                }
            }
        },
        "http.RecordRequest": {
            "type": "object",
            "properties": {
                "action": {
                    "type": "string"
                },
                "details": {
                    "type": "string"
                }
            }
        },
        "http.TriggerRequest": {
            "type": "object",
            "properties": {
                "trigger": {
                    "type": "string",
                    "enum": [
                        "key_combo",
                        "logo_clicks",
                        "custom_event",
                        "escape",
                        "click_outside",
                        "close_control"
                    ]
                }
            }
        },
        "http.AutoSaveRequest": {
            "type": "object",
            "properties": {
                "enabled": {
                    "type": "boolean"
                }
            }
        },
        "http.EditorSaveResponse": {
            "type": "object",
            "properties": {
                "saved": {
                    "type": "boolean"
                },
                "session": {
                    "$ref": "#/definitions/domain.EditorSession"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Folio Core API",
	Description:      "Content synchronization API for the portfolio site: load cascade, mutations, persistence, change history and editor session.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
