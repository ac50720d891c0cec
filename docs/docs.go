// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with `swag init -g cmd/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/imports": {
            "post": {
                "description": "Clear the store and load every record of the source file",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["imports"],
                "summary": "Run a full reload",
                "parameters": [
                    {"description": "Optional object key in the import bucket", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/handlers.ImportRequest"}}
                ],
                "responses": {
                    "200": {"description": "Import report", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "400": {"description": "Invalid request body", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "409": {"description": "Import already running", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "500": {"description": "Import failed", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/imports/last": {
            "get": {
                "produces": ["application/json"],
                "tags": ["imports"],
                "summary": "Get the last import report",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/imports/presign": {
            "get": {
                "produces": ["application/json"],
                "tags": ["imports"],
                "summary": "Get presigned URL for uploading an import file",
                "parameters": [
                    {"type": "string", "description": "Filename", "name": "filename", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/movies": {
            "get": {
                "description": "Get loaded movies with pagination and an optional exact title filter",
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Get all movies",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Items per page", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Exact title", "name": "title", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "List of movies", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/movies/lookup": {
            "get": {
                "description": "Returns the lowest id among movies with this exact title",
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Look up a movie id by title",
                "parameters": [
                    {"type": "string", "description": "Exact title", "name": "title", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/movies/{id}": {
            "get": {
                "description": "Get a movie with its genres, actors and directors",
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Get movie by ID",
                "parameters": [
                    {"type": "integer", "description": "Movie ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Movie details", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "400": {"description": "Invalid movie ID", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "404": {"description": "Movie not found", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        },
        "/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Get table row counts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.StandardResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.StandardResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ImportRequest": {
            "type": "object",
            "properties": {
                "object": {"type": "string", "example": "movies_1a2b3c4d.csv"}
            }
        },
        "utils.StandardResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "message": {"type": "string"},
                "meta": {},
                "status": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8010",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Movie Loader API",
	Description:      "Admin API for reloading the movie catalogue from CSV and browsing the loaded data",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
