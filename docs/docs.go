// Package docs registers the Swagger description served under /swagger/.
// Regenerate with `swag init -g cmd/jobboard/main.go` after changing handler
// annotations.
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
                "produces": ["text/html"],
                "tags": ["jobs"],
                "summary": "Job listings",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/register": {
            "get": {
                "produces": ["text/html"],
                "tags": ["auth"],
                "summary": "Registration form",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true},
                    {"type": "string", "description": "jobseeker, employer or admin", "name": "role", "in": "formData", "required": true}
                ],
                "responses": {"302": {"description": "Redirect to /login on success, /register on failure"}}
            }
        },
        "/login": {
            "get": {
                "produces": ["text/html"],
                "tags": ["auth"],
                "summary": "Login form",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {"302": {"description": "Redirect to / on success, /login on failure"}}
            }
        },
        "/logout": {
            "get": {
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"302": {"description": "Redirect to /"}}
            }
        },
        "/post_job": {
            "get": {
                "produces": ["text/html"],
                "tags": ["jobs"],
                "summary": "Job posting form",
                "responses": {
                    "200": {"description": "OK"},
                    "302": {"description": "Redirect to /login when the viewer is not an employer"}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["jobs"],
                "summary": "Post a job",
                "parameters": [
                    {"type": "string", "description": "Job title", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "Job description", "name": "description", "in": "formData", "required": true},
                    {"type": "string", "description": "Salary", "name": "salary", "in": "formData"},
                    {"type": "string", "description": "Location", "name": "location", "in": "formData"}
                ],
                "responses": {"302": {"description": "Redirect to / on success"}}
            }
        },
        "/apply/{jobId}": {
            "get": {
                "tags": ["jobs"],
                "summary": "Apply to a job",
                "parameters": [
                    {"type": "integer", "description": "Job ID", "name": "jobId", "in": "path", "required": true}
                ],
                "responses": {
                    "302": {"description": "Redirect to / with the outcome as a notice"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/admin": {
            "get": {
                "produces": ["text/html"],
                "tags": ["admin"],
                "summary": "Admin overview",
                "responses": {
                    "200": {"description": "OK"},
                    "302": {"description": "Redirect to /login when the viewer is not an admin"}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "dependencies": {
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/handler.dependencyStatus"}
                },
                "status": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Job Board",
	Description:      "Session-authenticated job board: job seekers apply, employers post, admins oversee.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
