// Package docs registers the swagger document served under /swagger/.
// Keep it in sync with the @-annotations on the handlers.
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
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["root"],
                "summary": "API welcome message",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}}}
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [{"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/programs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["programs"],
                "summary": "List health programs",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.programResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["programs"],
                "summary": "Create a health program",
                "parameters": [
                    {"type": "string", "description": "Key that makes retries return the first program", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Program details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createProgramRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.createProgramResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/clients": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Register a client",
                "parameters": [
                    {"type": "string", "description": "Key that makes retries return the first client", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Client details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerClientRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.registerClientResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/clients/search": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Search clients by name",
                "parameters": [{"type": "string", "description": "Case-insensitive substring of first or last name", "name": "q", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.clientSummaryResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/clients/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Get a client by id",
                "parameters": [{"type": "string", "description": "Client id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.clientResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/clients/{id}/enroll": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Enroll a client in programs",
                "parameters": [
                    {"type": "string", "description": "Client id", "name": "id", "in": "path", "required": true},
                    {"description": "Program ids", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.enrollRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.enrollResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "handler.messageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "handler.loginRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "handler.loginResponse": {"type": "object", "properties": {"token": {"type": "string"}}},
        "handler.createProgramRequest": {
            "type": "object",
            "required": ["name", "description"],
            "properties": {"name": {"type": "string"}, "description": {"type": "string"}}
        },
        "handler.createProgramResponse": {"type": "object", "properties": {"message": {"type": "string"}, "program_id": {"type": "string"}}},
        "handler.programResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "description": {"type": "string"}, "created_by": {"type": "string"}}
        },
        "handler.registerClientRequest": {
            "type": "object",
            "required": ["first_name", "last_name", "date_of_birth"],
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "date_of_birth": {"type": "string"},
                "contact_info": {"type": "object", "additionalProperties": {"type": "string"}},
                "medical_history": {"type": "string"}
            }
        },
        "handler.registerClientResponse": {"type": "object", "properties": {"message": {"type": "string"}, "client_id": {"type": "string"}}},
        "handler.enrollRequest": {"type": "object", "properties": {"program_ids": {"type": "array", "items": {"type": "string"}}}},
        "handler.clientSummaryResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "first_name": {"type": "string"}, "last_name": {"type": "string"}, "date_of_birth": {"type": "string"}}
        },
        "handler.clientResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "date_of_birth": {"type": "string"},
                "contact_info": {"type": "object", "additionalProperties": {"type": "string"}},
                "medical_history": {"type": "string"},
                "enrolled_programs": {"type": "array", "items": {"type": "string"}},
                "registered_by": {"type": "string"},
                "registration_timestamp": {"type": "string", "format": "date-time"}
            }
        },
        "handler.enrollResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "client": {"$ref": "#/definitions/handler.clientResponse"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Health Records API",
	Description:      "Doctors manage health programs, register clients and enroll them into programs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
