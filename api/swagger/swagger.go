package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Attendance API",
        "description": "Attendance recording, scheduling and semester ledger service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Sessions and tokens"},
        {"name": "Schedule", "description": "Period timetable and markability"},
        {"name": "Attendance", "description": "Marking sessions and read-backs"},
        {"name": "Students", "description": "Rosters, stats and transitions"},
        {"name": "MDC", "description": "Cross-department electives"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
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
                "tags": ["Authentication"],
                "summary": "Refresh access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Expired or revoked token"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user info",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/windows": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Period timetable for a date",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/markable": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Check whether a period can be marked right now",
                "parameters": [
                    {"name": "period", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/current": {
            "get": {
                "tags": ["Schedule"],
                "summary": "The period in progress right now",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/today": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Today's timetable with per-period markability",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Submit a batch of attendance decisions",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitBatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not an instructor of record"},
                    "422": {"description": "Future date"}
                }
            },
            "get": {
                "tags": ["Attendance"],
                "summary": "Stored decisions for a subject and date",
                "parameters": [
                    {"name": "subjectId", "in": "query", "type": "string", "required": true},
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "own", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance/export": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Download an attendance sheet",
                "parameters": [
                    {"name": "subjectId", "in": "query", "type": "string", "required": true},
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        },
        "/students": {
            "post": {
                "tags": ["Students"],
                "summary": "Register a student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate enrollment number"}
                }
            }
        },
        "/students/roster": {
            "get": {
                "tags": ["Students"],
                "summary": "List the active students of a cohort",
                "parameters": [
                    {"name": "semesterId", "in": "query", "type": "string", "required": true},
                    {"name": "departmentId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/subjects/{subjectId}/attendance": {
            "get": {
                "tags": ["Students"],
                "summary": "Attendance summary for one subject",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "subjectId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/attendance/calendar": {
            "get": {
                "tags": ["Students"],
                "summary": "Present/absent date buckets for a semester",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "semesterId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/attendance/subjects": {
            "get": {
                "tags": ["Students"],
                "summary": "Per-subject attendance breakdown for a semester",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "semesterId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/transition": {
            "post": {
                "tags": ["Students"],
                "summary": "Move a student to another semester",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TransitionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "No change"},
                    "410": {"description": "Student deleted"},
                    "422": {"description": "Invalid semester"}
                }
            }
        },
        "/students/{id}/transitions": {
            "get": {
                "tags": ["Students"],
                "summary": "Transition ledger for a student, newest first",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/mdc/courses": {
            "post": {
                "tags": ["MDC"],
                "summary": "Register an elective course",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/mdc/courses/eligible": {
            "get": {
                "tags": ["MDC"],
                "summary": "Elective catalog for a home department",
                "parameters": [
                    {"name": "homeDepartmentId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/mdc/courses/{id}/students": {
            "post": {
                "tags": ["MDC"],
                "summary": "Add a student to an elective roster",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnrollRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/mdc/courses/{id}/students/{studentId}": {
            "delete": {
                "tags": ["MDC"],
                "summary": "Remove a student from an elective roster",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "studentId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/mdc/courses/{id}/eligible-faculty": {
            "get": {
                "tags": ["MDC"],
                "summary": "Faculty eligible to teach an elective",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/mdc/courses/{id}/faculty": {
            "put": {
                "tags": ["MDC"],
                "summary": "Assign the instructor for an elective",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignFacultyRequest"}}
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
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "RefreshRequest": {
            "type": "object",
            "required": ["refresh_token"],
            "properties": {
                "refresh_token": {"type": "string"}
            }
        },
        "SubmitBatchRequest": {
            "type": "object",
            "required": ["subject_id", "date", "entries"],
            "properties": {
                "subject_id": {"type": "string"},
                "date": {"type": "string"},
                "entries": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/BatchEntry"}
                }
            }
        },
        "BatchEntry": {
            "type": "object",
            "required": ["student_id", "period", "status"],
            "properties": {
                "student_id": {"type": "string"},
                "period": {"type": "integer", "minimum": 1, "maximum": 5},
                "status": {"type": "string", "enum": ["PRESENT", "ABSENT"]}
            }
        },
        "CreateStudentRequest": {
            "type": "object",
            "required": ["user_id", "enrollment_no", "department_id", "semester_id", "admission_year", "current_year"],
            "properties": {
                "user_id": {"type": "string"},
                "enrollment_no": {"type": "string"},
                "department_id": {"type": "string"},
                "semester_id": {"type": "string"},
                "admission_year": {"type": "integer"},
                "current_year": {"type": "integer"}
            }
        },
        "TransitionRequest": {
            "type": "object",
            "required": ["new_semester_id"],
            "properties": {
                "new_semester_id": {"type": "string"},
                "reason": {"type": "string"}
            }
        },
        "CreateCourseRequest": {
            "type": "object",
            "required": ["course_name", "home_department_id", "mdc_department_id", "year", "semester"],
            "properties": {
                "course_name": {"type": "string"},
                "home_department_id": {"type": "string"},
                "mdc_department_id": {"type": "string"},
                "year": {"type": "integer"},
                "semester": {"type": "integer"},
                "faculty_id": {"type": "string"}
            }
        },
        "EnrollRequest": {
            "type": "object",
            "required": ["student_id"],
            "properties": {
                "student_id": {"type": "string"}
            }
        },
        "AssignFacultyRequest": {
            "type": "object",
            "required": ["faculty_id"],
            "properties": {
                "faculty_id": {"type": "string"}
            }
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
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
