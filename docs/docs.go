// Package docs serves the OpenAPI description of the admin portal services
// at /swagger/*.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/api/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Register an admin employee",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/SignupRequest"}}],
                "responses": {"201": {"description": "Account created"}, "409": {"description": "Email already registered"}, "422": {"description": "Validation failed"}}
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in as an admin employee",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {"200": {"description": "Token issued"}, "401": {"description": "Invalid or wrong credentials"}, "403": {"description": "Account is deactivated"}}
            }
        },
        "/api/auth/forgot-password": {
            "post": {
                "tags": ["auth"],
                "summary": "Reset an admin password by email",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ForgotPasswordRequest"}}],
                "responses": {"200": {"description": "Password updated"}, "404": {"description": "Email not found"}}
            }
        },
        "/api/auth/me": {
            "get": {
                "tags": ["auth"],
                "summary": "Current admin profile",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Employee"}, "401": {"description": "Missing or invalid token"}}
            }
        },
        "/api/auth/employees/{id}/status": {
            "patch": {
                "tags": ["auth"],
                "summary": "Activate or deactivate an employee",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"is_active": {"type": "boolean"}}}}
                ],
                "responses": {"200": {"description": "Status changed"}, "403": {"description": "Forbidden"}, "404": {"description": "User not found"}}
            }
        },
        "/api/trainer-auth/login": {
            "post": {
                "tags": ["trainer-auth"],
                "summary": "Log in as a trainer",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {"200": {"description": "Token issued, is_temp_password flags a pending rotation"}, "401": {"description": "Invalid or wrong credentials"}, "403": {"description": "Account is deactivated"}}
            }
        },
        "/api/trainer-auth/set-password": {
            "post": {
                "tags": ["trainer-auth"],
                "summary": "Replace the trainer's password",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/SetPasswordRequest"}}],
                "responses": {"200": {"description": "Password set"}, "401": {"description": "Missing or invalid token"}}
            }
        },
        "/api/trainer-auth/forgot-password": {
            "post": {
                "tags": ["trainer-auth"],
                "summary": "Reset a trainer password by email",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ForgotPasswordRequest"}}],
                "responses": {"200": {"description": "Password updated"}, "404": {"description": "Email not found"}}
            }
        },
        "/api/trainer-auth/me": {
            "get": {
                "tags": ["trainer-auth"],
                "summary": "Current trainer profile",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Trainer"}, "401": {"description": "Missing or invalid token"}}
            }
        },
        "/api/trainers": {
            "get": {
                "tags": ["trainers"],
                "summary": "List trainers",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Trainers"}}
            },
            "post": {
                "tags": ["trainers"],
                "summary": "Provision a trainer with a temporary password",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/TrainerRequest"}}],
                "responses": {"201": {"description": "Trainer added, temp_password returned once"}, "409": {"description": "Trainer email already exists"}}
            }
        },
        "/api/trainers/{id}": {
            "get": {
                "tags": ["trainers"],
                "summary": "Get a trainer",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"200": {"description": "Trainer"}, "404": {"description": "Trainer not found"}}
            },
            "put": {
                "tags": ["trainers"],
                "summary": "Update a trainer",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/TrainerRequest"}}
                ],
                "responses": {"200": {"description": "Trainer updated"}}
            },
            "delete": {
                "tags": ["trainers"],
                "summary": "Deactivate a trainer",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"200": {"description": "Trainer deleted"}}
            }
        },
        "/api/trainers/{id}/activate": {
            "patch": {
                "tags": ["trainers"],
                "summary": "Reactivate a trainer",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"200": {"description": "Trainer activated"}}
            }
        },
        "/api/trainers/{id}/set-password": {
            "patch": {
                "tags": ["trainers"],
                "summary": "Set a permanent trainer password",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/SetPasswordRequest"}}
                ],
                "responses": {"200": {"description": "Password updated"}}
            }
        },
        "/api/trainers/{id}/reset-password": {
            "post": {
                "tags": ["trainers"],
                "summary": "Issue a new temporary password",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"200": {"description": "Temporary password issued"}}
            }
        },
        "/api/trainers/{id}/profile-image": {
            "post": {
                "tags": ["trainers"],
                "summary": "Upload a trainer profile image",
                "consumes": ["multipart/form-data"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "formData", "name": "profile_image", "type": "file", "required": true}
                ],
                "responses": {"200": {"description": "Profile image updated"}, "503": {"description": "Image storage is not configured"}}
            }
        },
        "/api/courses": {
            "get": {
                "tags": ["courses"],
                "summary": "List active courses",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Courses"}}
            },
            "post": {
                "tags": ["courses"],
                "summary": "Create a course",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}],
                "responses": {"201": {"description": "Course added"}}
            }
        },
        "/api/courses/{id}": {
            "get": {
                "tags": ["courses"],
                "summary": "Get a course",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"200": {"description": "Course"}, "404": {"description": "Course not found"}}
            },
            "put": {
                "tags": ["courses"],
                "summary": "Update a course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}
                ],
                "responses": {"200": {"description": "Course updated"}}
            },
            "delete": {
                "tags": ["courses"],
                "summary": "Deactivate a course",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"200": {"description": "Course deleted"}}
            }
        }
    },
    "definitions": {
        "SignupRequest": {
            "type": "object",
            "required": ["name", "email", "password", "confirm_password"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "confirm_password": {"type": "string"},
                "mobile": {"type": "string"},
                "gender": {"type": "string"},
                "marital_status": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ForgotPasswordRequest": {
            "type": "object",
            "required": ["email", "new_password", "confirm_password"],
            "properties": {
                "email": {"type": "string"},
                "new_password": {"type": "string"},
                "confirm_password": {"type": "string"}
            }
        },
        "SetPasswordRequest": {
            "type": "object",
            "required": ["new_password", "confirm_password"],
            "properties": {
                "new_password": {"type": "string"},
                "confirm_password": {"type": "string"}
            }
        },
        "TrainerRequest": {
            "type": "object",
            "required": ["name", "mobile", "email"],
            "properties": {
                "name": {"type": "string"},
                "mobile": {"type": "string"},
                "email": {"type": "string"},
                "course_id": {"type": "integer"},
                "bio": {"type": "string"}
            }
        },
        "CourseRequest": {
            "type": "object",
            "required": ["course_name", "course_fees", "course_duration"],
            "properties": {
                "course_name": {"type": "string"},
                "course_fees": {"type": "number"},
                "course_duration": {"type": "string"},
                "trainer_id": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Admin Portal API",
	Description:      "Admin, trainer and course management services.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
