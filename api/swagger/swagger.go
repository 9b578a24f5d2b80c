package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Student EPR API",
        "description": "Educational performance record portal for admins, teachers and students",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Login and token refresh"},
        {"name": "Disciplines", "description": "Academic program catalog"},
        {"name": "Subjects", "description": "Subject catalog"},
        {"name": "Users", "description": "Teacher and student provisioning"},
        {"name": "Assignments", "description": "Teacher roll-range allocations"},
        {"name": "Marks", "description": "Score entry"},
        {"name": "Performance", "description": "Aggregated reports"},
        {"name": "Students", "description": "Student curriculum and results"},
        {"name": "Advice", "description": "Peer advice pool and AI endpoints"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate with email and password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange a refresh token for new tokens",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current user profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/disciplines": {
            "get": {
                "tags": ["Disciplines"],
                "summary": "List disciplines",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Disciplines"],
                "summary": "Create a discipline",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateDisciplineRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Duplicate name"}
                }
            }
        },
        "/admin/subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List subjects",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Subjects"],
                "summary": "Create a subject",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSubjectRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Duplicate scope"}
                }
            }
        },
        "/admin/teachers": {
            "get": {
                "tags": ["Users"],
                "summary": "List teacher profiles",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Register a teacher account",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTeacherRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/students": {
            "get": {
                "tags": ["Users"],
                "summary": "List student profiles",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Register a student account",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/assignments": {
            "get": {
                "tags": ["Assignments"],
                "summary": "List all assignments",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Assignments"],
                "summary": "Allocate a teacher to a roll range",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAssignmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Roll range already assigned"}
                }
            }
        },
        "/teacher/assignments": {
            "get": {
                "tags": ["Assignments"],
                "summary": "List the authenticated teacher's assignments",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teacher/assignments/{id}/students": {
            "get": {
                "tags": ["Assignments"],
                "summary": "List the students covered by one assignment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teacher/assignments/{id}/marks": {
            "get": {
                "tags": ["Marks"],
                "summary": "List the marks entered for one assignment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teacher/students": {
            "get": {
                "tags": ["Assignments"],
                "summary": "Roster of every student under the teacher's assignments",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teacher/marks": {
            "post": {
                "tags": ["Marks"],
                "summary": "Enter or merge one student's scores",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertMarkRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Student outside the assigned roll range"}
                }
            }
        },
        "/teacher/marks/bulk": {
            "post": {
                "tags": ["Marks"],
                "summary": "Upload scores for many students of one assignment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkMarksRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teacher/performance": {
            "get": {
                "tags": ["Performance"],
                "summary": "Performance report over the teacher's marks",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "assignmentId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teacher/low-performers": {
            "get": {
                "tags": ["Performance"],
                "summary": "Students below the passing threshold",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "assignmentId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teacher/low-performers/export": {
            "get": {
                "tags": ["Performance"],
                "summary": "Download the low-performer report",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "assignmentId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/student/subjects": {
            "get": {
                "tags": ["Students"],
                "summary": "Curriculum of the student's discipline",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/results": {
            "get": {
                "tags": ["Students"],
                "summary": "The student's marks across semesters",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/advice": {
            "get": {
                "tags": ["Advice"],
                "summary": "Advice shared within the student's discipline",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Advice"],
                "summary": "Share advice with juniors",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAdviceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/advice/stats": {
            "get": {
                "tags": ["Advice"],
                "summary": "Advice pool statistics",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/advice/{id}/like": {
            "post": {
                "tags": ["Advice"],
                "summary": "Like or unlike an advice entry",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/advice/ai/summary": {
            "get": {
                "tags": ["Advice"],
                "summary": "AI summary of the discipline's advice pool",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/advice/ai/ask": {
            "post": {
                "tags": ["Advice"],
                "summary": "Ask a question over the advice pool",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AskRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "RefreshTokenRequest": {
            "type": "object",
            "properties": {
                "refresh_token": {"type": "string"}
            },
            "required": ["refresh_token"]
        },
        "CreateDisciplineRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"}
            },
            "required": ["name"]
        },
        "CreateSubjectRequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "semester": {"type": "integer"},
                "discipline_id": {"type": "string"},
                "batch": {"type": "string"}
            },
            "required": ["code", "name", "semester", "discipline_id", "batch"]
        },
        "CreateTeacherRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "teacher_id": {"type": "string"},
                "name": {"type": "string"},
                "joining_date": {"type": "string", "format": "date-time"}
            },
            "required": ["email", "password", "teacher_id", "name", "joining_date"]
        },
        "CreateStudentRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "enroll_no": {"type": "string"},
                "name": {"type": "string"},
                "batch": {"type": "string"},
                "discipline": {"type": "string"}
            },
            "required": ["email", "password", "enroll_no", "name", "batch", "discipline"]
        },
        "CreateAssignmentRequest": {
            "type": "object",
            "properties": {
                "teacher_id": {"type": "string"},
                "subject_id": {"type": "string"},
                "batch": {"type": "string"},
                "start_roll": {"type": "integer"},
                "end_roll": {"type": "integer"}
            },
            "required": ["teacher_id", "subject_id", "batch", "start_roll", "end_roll"]
        },
        "UpsertMarkRequest": {
            "type": "object",
            "properties": {
                "assignment_id": {"type": "string"},
                "student_id": {"type": "string"},
                "mid_sem": {"type": "integer"},
                "end_sem": {"type": "integer"},
                "internal": {"type": "integer"}
            },
            "required": ["assignment_id", "student_id"]
        },
        "BulkMarkItem": {
            "type": "object",
            "properties": {
                "student_id": {"type": "string"},
                "mid_sem": {"type": "integer"},
                "end_sem": {"type": "integer"},
                "internal": {"type": "integer"}
            },
            "required": ["student_id"]
        },
        "BulkMarksRequest": {
            "type": "object",
            "properties": {
                "assignment_id": {"type": "string"},
                "mode": {"type": "string", "enum": ["atomic", "partialOnError"]},
                "items": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/BulkMarkItem"}
                }
            },
            "required": ["assignment_id", "items"]
        },
        "CreateAdviceRequest": {
            "type": "object",
            "properties": {
                "subject_id": {"type": "string"},
                "advice": {"type": "string"}
            },
            "required": ["advice"]
        },
        "AskRequest": {
            "type": "object",
            "properties": {
                "question": {"type": "string"}
            },
            "required": ["question"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
