// Package docs registers the OpenAPI document served under /swagger.
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
        "/health": {
            "get": {
                "description": "Round-trips a trivial query against storage",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpserver.HealthResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httpserver.HealthResponse"}}
                }
            }
        },
        "/movies": {
            "get": {
                "description": "All movies, newest first, with genres expanded to a list",
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "List Movies",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/movie.Movie"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httpserver.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Add a movie; genres may be a list or a comma separated string",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Create Movie",
                "parameters": [
                    {"description": "Movie", "name": "movie", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpserver.CreateMovieRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/movie.Movie"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpserver.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httpserver.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "httpserver.CreateMovieRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string", "maxLength": 255},
                "year": {"type": "integer"},
                "poster": {"type": "string", "maxLength": 500},
                "movie_link": {"type": "string", "maxLength": 500},
                "description": {"type": "string"},
                "genres": {"type": "array", "items": {"type": "string"}}
            }
        },
        "httpserver.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "error": {"type": "string"},
                "hint": {"type": "string"}
            }
        },
        "httpserver.HealthResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "db": {"type": "integer"},
                "error": {"type": "string"}
            }
        },
        "movie.Movie": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "year": {"type": "integer"},
                "poster": {"type": "string"},
                "movie_link": {"type": "string"},
                "description": {"type": "string"},
                "genres": {"type": "array", "items": {"type": "string"}},
                "created_at": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Movie Catalog API",
	Description:      "Lists and creates movies in the catalog.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
