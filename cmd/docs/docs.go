// Package docs registers the OpenAPI document served under /swagger.
// It is maintained by hand and must be kept in step with the route
// annotations in internal/handlers.
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
        "/branches": {
            "get": {
                "produces": ["application/json"],
                "tags": ["branches"],
                "summary": "List branches",
                "parameters": [
                    {"type": "string", "description": "Substring matched against name or code", "name": "search", "in": "query"},
                    {"type": "string", "description": "Branch type filter (Main|Sub|All)", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListBranchesResponse"}},
                    "400": {"description": "Invalid type filter", "schema": {"type": "object", "additionalProperties": true}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["branches"],
                "summary": "Register a new branch",
                "parameters": [
                    {"description": "Branch details", "name": "branch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateBranchRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.BranchResponse"}},
                    "400": {"description": "Validation errors per field", "schema": {"type": "object", "additionalProperties": true}},
                    "409": {"description": "A Main branch already exists", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/branches/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["branches"],
                "summary": "Registry aggregate counts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RegistryStatsResponse"}}
                }
            }
        },
        "/branches/watch": {
            "get": {
                "tags": ["branches"],
                "summary": "Live branch feed",
                "responses": {
                    "101": {"description": "Switching Protocols"}
                }
            }
        },
        "/branches/{branch_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["branches"],
                "summary": "Get a branch by ID",
                "parameters": [
                    {"type": "string", "description": "Branch ID", "name": "branch_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BranchResponse"}},
                    "404": {"description": "Branch not found", "schema": {"type": "object", "additionalProperties": true}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["branches"],
                "summary": "Edit a branch",
                "parameters": [
                    {"type": "string", "description": "Branch ID", "name": "branch_id", "in": "path", "required": true},
                    {"description": "Editable fields", "name": "branch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateBranchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BranchResponse"}},
                    "400": {"description": "Validation errors per field", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Branch not found", "schema": {"type": "object", "additionalProperties": true}},
                    "409": {"description": "Another Main branch exists", "schema": {"type": "object", "additionalProperties": true}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["branches"],
                "summary": "Delete a branch",
                "parameters": [
                    {"type": "string", "description": "Branch ID", "name": "branch_id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Confirmation for deleting the Main branch", "name": "confirm", "in": "query"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Branch not found", "schema": {"type": "object", "additionalProperties": true}},
                    "428": {"description": "Confirmation required", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/branches/{branch_id}/status": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["branches"],
                "summary": "Toggle a branch's status",
                "parameters": [
                    {"type": "string", "description": "Branch ID", "name": "branch_id", "in": "path", "required": true},
                    {"description": "Confirmation flag", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/dto.ToggleStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BranchResponse"}},
                    "404": {"description": "Branch not found", "schema": {"type": "object", "additionalProperties": true}},
                    "428": {"description": "Confirmation required", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "dto.BranchResponse": {
            "type": "object",
            "properties": {
                "branchID": {"type": "string"},
                "branchName": {"type": "string"},
                "branchCode": {"type": "string"},
                "address": {"type": "string"},
                "type": {"type": "string"},
                "status": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "dto.CreateBranchRequest": {
            "type": "object",
            "required": ["branchName", "address", "type"],
            "properties": {
                "branchName": {"type": "string"},
                "address": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "dto.UpdateBranchRequest": {
            "type": "object",
            "required": ["branchName", "address", "type"],
            "properties": {
                "branchName": {"type": "string"},
                "address": {"type": "string"},
                "type": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "dto.ToggleStatusRequest": {
            "type": "object",
            "properties": {
                "confirm": {"type": "boolean"}
            }
        },
        "dto.ListBranchesResponse": {
            "type": "object",
            "properties": {
                "branches": {"type": "array", "items": {"$ref": "#/definitions/dto.BranchResponse"}},
                "count": {"type": "integer"}
            }
        },
        "dto.RegistryStatsResponse": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "main": {"type": "integer"},
                "sub": {"type": "integer"},
                "active": {"type": "integer"},
                "inactive": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Branch Registry API",
	Description:      "Registry of branch locations with live updates and a single-Main invariant.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
