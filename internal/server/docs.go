package server

import "github.com/swaggo/swag"

// @title dockpanel API
// @version 1.0
// @description Docker host admin panel: container tables, run, restart and compose actions

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:9090
// @BasePath /
// @schemes http

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/server.HealthResponse"}}}
            }
        },
        "/api/state": {
            "get": {
                "tags": ["state"],
                "summary": "Get panel state",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/panel.Snapshot"}}}
            }
        },
        "/api/refresh": {
            "post": {
                "tags": ["state"],
                "summary": "Reload inventory",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/server.RefreshResponse"}}}
            }
        },
        "/api/form": {
            "put": {
                "tags": ["state"],
                "summary": "Update form fields",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/server.FormRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/panel.Form"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/api/containers/{id}/restart": {
            "post": {
                "tags": ["containers"],
                "summary": "Restart a container",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Container ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/panel.ActionResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/api/run": {
            "post": {
                "tags": ["containers"],
                "summary": "Run a container",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/server.RunRequest"}}],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/panel.ActionResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/api/compose": {
            "post": {
                "tags": ["compose"],
                "summary": "Apply a compose file",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "schema": {"$ref": "#/definitions/server.ComposeRequest"}},
                    {"type": "file", "description": "Compose file", "name": "file", "in": "formData"}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/panel.ActionResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "inventory.ContainerRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "name": {"type": "string"}, "image": {"type": "string"},
                "status": {"type": "string"}, "mounts": {"type": "string"}, "ports": {"type": "string"},
                "state": {"type": "string"}, "health": {"type": "string"}, "host": {"type": "string"},
                "gpu": {"type": "string"}
            }
        },
        "inventory.ImageRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "repo_tags": {"type": "string"},
                "size": {"type": "integer"}, "size_human": {"type": "string"}
            }
        },
        "panel.Form": {
            "type": "object",
            "properties": {
                "image": {"type": "string"}, "ports": {"type": "string"},
                "env_vars": {"type": "string"}, "compose_yaml": {"type": "string"}
            }
        },
        "panel.Snapshot": {
            "type": "object",
            "properties": {
                "running": {"type": "array", "items": {"$ref": "#/definitions/inventory.ContainerRecord"}},
                "stopped": {"type": "array", "items": {"$ref": "#/definitions/inventory.ContainerRecord"}},
                "unused": {"type": "array", "items": {"$ref": "#/definitions/inventory.ImageRecord"}},
                "form": {"$ref": "#/definitions/panel.Form"},
                "console": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "panel.ActionResult": {
            "type": "object",
            "properties": {
                "action_id": {"type": "string"}, "ok": {"type": "boolean"},
                "output": {"type": "string"}, "error": {"type": "string"}
            }
        },
        "server.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}, "code": {"type": "string"},
                "details": {"type": "string"}, "request_id": {"type": "string"}
            }
        },
        "server.HealthResponse": {
            "type": "object",
            "properties": {"status": {"type": "string"}, "docker": {"type": "string"}, "uptime": {"type": "string"}}
        },
        "server.RefreshResponse": {
            "type": "object",
            "properties": {"state": {"$ref": "#/definitions/panel.Snapshot"}, "error": {"type": "string"}}
        },
        "server.RunRequest": {
            "type": "object",
            "properties": {"image": {"type": "string"}, "ports": {"type": "string"}, "env_vars": {"type": "string"}}
        },
        "server.ComposeRequest": {
            "type": "object",
            "properties": {"yaml": {"type": "string"}}
        },
        "server.FormRequest": {
            "type": "object",
            "properties": {
                "image": {"type": "string"}, "ports": {"type": "string"},
                "env_vars": {"type": "string"}, "compose_yaml": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:9090",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "dockpanel API",
	Description:      "Docker host admin panel: container tables, run, restart and compose actions",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
