package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Skill Exchange API",
        "description": "Skill profile storage and teacher/seeker matching",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Skills", "description": "Skill profile management"},
        {"name": "Matches", "description": "Teacher matching for skill seekers"},
        {"name": "Reports", "description": "Asynchronous match report exports"}
    ],
    "paths": {
        "/skills": {
            "get": {
                "tags": ["Skills"],
                "summary": "List skill profiles",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/skills/{userId}": {
            "get": {
                "tags": ["Skills"],
                "summary": "Get skill profile",
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Profile not found"}
                }
            },
            "put": {
                "tags": ["Skills"],
                "summary": "Submit or replace skill profile",
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Skills"],
                "summary": "Remove skill profile",
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/skills/{userId}/matches": {
            "get": {
                "tags": ["Matches"],
                "summary": "Ranked teacher matches for every requested skill",
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Profile not found"}
                }
            }
        },
        "/skills/{userId}/matches/{skill}": {
            "get": {
                "tags": ["Matches"],
                "summary": "Ranked teacher matches for one requested skill",
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "string"},
                    {"name": "skill", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Skill not in the user's learning list"}
                }
            }
        },
        "/skills/{userId}/matches/export": {
            "post": {
                "tags": ["Reports"],
                "summary": "Queue an asynchronous match report export",
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MatchReportRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Report job status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "userId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/{token}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download a finished report via signed token",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File stream"},
                    "403": {"description": "Invalid or expired token"}
                }
            }
        }
    },
    "definitions": {
        "SkillToTeach": {
            "type": "object",
            "properties": {
                "skill": {"type": "string"},
                "proficiency": {"type": "string", "enum": ["beginner", "intermediate", "advanced"]},
                "description": {"type": "string"}
            },
            "required": ["skill", "proficiency"]
        },
        "SkillToLearn": {
            "type": "object",
            "properties": {
                "skill": {"type": "string"},
                "priority": {"type": "string", "enum": ["low", "medium", "high"]},
                "reason": {"type": "string"}
            },
            "required": ["skill", "priority"]
        },
        "Availability": {
            "type": "object",
            "properties": {
                "days": {"type": "array", "items": {"type": "string"}},
                "timeSlots": {"type": "array", "items": {"type": "string"}}
            }
        },
        "SubmitProfileRequest": {
            "type": "object",
            "properties": {
                "canTeach": {"type": "array", "items": {"$ref": "#/definitions/SkillToTeach"}},
                "wantToLearn": {"type": "array", "items": {"$ref": "#/definitions/SkillToLearn"}},
                "availability": {"$ref": "#/definitions/Availability"}
            }
        },
        "MatchCandidate": {
            "type": "object",
            "properties": {
                "teacherId": {"type": "string"},
                "skill": {"type": "string"},
                "score": {"type": "number"},
                "overlappingDays": {"type": "array", "items": {"type": "string"}},
                "overlappingSlots": {"type": "array", "items": {"type": "string"}}
            }
        },
        "MatchReportRequest": {
            "type": "object",
            "properties": {
                "skill": {"type": "string"},
                "format": {"type": "string", "enum": ["csv", "pdf"]}
            },
            "required": ["format"]
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
