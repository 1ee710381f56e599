// Package docs holds swagger spec of the portal served under /swagger.
// Keep it in sync with handler annotations.
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
                "description": "Renders page with customers listing and forms",
                "produces": ["text/html"],
                "tags": ["pages"],
                "summary": "Customers page",
                "parameters": [
                    {"type": "string", "description": "Name filter", "name": "nombre", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "HTML page", "schema": {"type": "string"}}
                }
            }
        },
        "/clientes/actualizar-eliminar": {
            "get": {
                "produces": ["text/html"],
                "tags": ["fragments"],
                "summary": "Update and delete forms",
                "responses": {
                    "200": {"description": "HTML fragment", "schema": {"type": "string"}}
                }
            }
        },
        "/clientes/actualizar-id": {
            "post": {
                "description": "Updates provided fields, falls back to email when remote API ignores id filter",
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["customers"],
                "summary": "Update customer by id",
                "parameters": [
                    {"type": "string", "description": "Customer ObjectId", "name": "id", "in": "formData", "required": true},
                    {"type": "string", "description": "New name", "name": "nombreNuevo", "in": "formData"},
                    {"type": "integer", "description": "New age", "name": "edad", "in": "formData"},
                    {"type": "string", "description": "New city", "name": "ciudad", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ack"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ack"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handlers.ack"}}
                }
            }
        },
        "/clientes/actualizar-nombre": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["customers"],
                "summary": "Update customer by name",
                "parameters": [
                    {"type": "string", "description": "Current name", "name": "nombre", "in": "formData", "required": true},
                    {"type": "string", "description": "New name", "name": "nombreNuevo", "in": "formData"},
                    {"type": "integer", "description": "New age", "name": "edad", "in": "formData"},
                    {"type": "string", "description": "New city", "name": "ciudad", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ack"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ack"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handlers.ack"}}
                }
            }
        },
        "/clientes/eliminar-id": {
            "post": {
                "description": "Deletes customer, falls back to email when remote API ignores id filter",
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["customers"],
                "summary": "Delete customer by id",
                "parameters": [
                    {"type": "string", "description": "Customer ObjectId", "name": "id", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ack"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ack"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handlers.ack"}}
                }
            }
        },
        "/clientes/eliminar-nombre": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["customers"],
                "summary": "Delete customer by name",
                "parameters": [
                    {"type": "string", "description": "Name", "name": "nombre", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ack"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ack"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handlers.ack"}}
                }
            }
        },
        "/clientes/insertar": {
            "get": {
                "produces": ["text/html"],
                "tags": ["fragments"],
                "summary": "Insert form",
                "responses": {
                    "200": {"description": "HTML fragment", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Inserts new customer with name and age",
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["customers"],
                "summary": "Register customer",
                "parameters": [
                    {"type": "string", "description": "Name", "name": "nombre", "in": "formData", "required": true},
                    {"type": "integer", "description": "Age", "name": "edad", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ack"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ack"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handlers.ack"}}
                }
            }
        },
        "/clientes/listado": {
            "get": {
                "description": "Renders table fragment with customers, optionally filtered by name",
                "produces": ["text/html"],
                "tags": ["fragments"],
                "summary": "Customers listing",
                "parameters": [
                    {"type": "string", "description": "Name filter", "name": "nombre", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "HTML fragment", "schema": {"type": "string"}}
                }
            }
        },
        "/diagnostico/ping": {
            "get": {
                "description": "Sends listing request to the remote API and returns its status and raw body",
                "produces": ["text/plain"],
                "tags": ["diagnostics"],
                "summary": "Ping remote API",
                "parameters": [
                    {"type": "string", "description": "Name filter", "name": "nombre", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "STATUS <code> followed by raw body", "schema": {"type": "string"}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "string"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["diagnostics"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ack": {
            "type": "object",
            "properties": {
                "msg": {"type": "string"},
                "ok": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Clientes portal",
	Description:      "Customer management portal over remote document API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
