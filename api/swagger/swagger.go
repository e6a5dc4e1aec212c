package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "KU Tutorium Admin API",
        "description": "Admin dashboard aggregation service for the KU Tutorium marketplace",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Dashboard", "description": "KPI cards, daily paid-volume series, account composition"},
        {"name": "Payments", "description": "Filtered transaction table, filter sessions, exports"}
    ],
    "paths": {
        "/dashboard/summary": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard KPI cards",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Marketplace backend unavailable"}
                }
            }
        },
        "/dashboard/series": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Daily paid volume series",
                "parameters": [
                    {"name": "days", "in": "query", "type": "integer", "description": "Window size in days (default 14, max 90)"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Marketplace backend unavailable"}
                }
            }
        },
        "/dashboard/composition": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Teacher vs learner account composition",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Marketplace backend unavailable"}
                }
            }
        },
        "/payments": {
            "get": {
                "tags": ["Payments"],
                "summary": "Filtered transaction page",
                "parameters": [
                    {"name": "X-Filter-Session", "in": "header", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Marketplace backend unavailable"}
                }
            }
        },
        "/payments/filters": {
            "get": {
                "tags": ["Payments"],
                "summary": "Current draft and applied filters",
                "parameters": [
                    {"name": "X-Filter-Session", "in": "header", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Payments"],
                "summary": "Stage draft filter edits",
                "parameters": [
                    {"name": "X-Filter-Session", "in": "header", "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PaymentFilterUpdate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed"}
                }
            }
        },
        "/payments/filters/apply": {
            "post": {
                "tags": ["Payments"],
                "summary": "Apply the draft filter",
                "parameters": [
                    {"name": "X-Filter-Session", "in": "header", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/payments/filters/reset": {
            "post": {
                "tags": ["Payments"],
                "summary": "Reset filters to defaults",
                "parameters": [
                    {"name": "X-Filter-Session", "in": "header", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/payments/export": {
            "get": {
                "tags": ["Payments"],
                "summary": "Download the filtered set",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "X-Filter-Session", "in": "header", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File attachment"},
                    "400": {"description": "Unsupported format"},
                    "502": {"description": "Marketplace backend unavailable"}
                }
            }
        },
        "/system/metrics": {
            "get": {
                "summary": "Aggregated in-process metrics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "PaymentFilterUpdate": {
            "type": "object",
            "properties": {
                "query": {"type": "string"},
                "status": {"type": "string", "enum": ["all", "paid", "pending", "failed"]},
                "channel": {"type": "string", "enum": ["all", "card", "promptpay", "bank_transfer", "other"]},
                "startDate": {"type": "string", "format": "date"},
                "endDate": {"type": "string", "format": "date"},
                "preset": {"type": "string", "enum": ["all", "today", "7d", "30d", "month"]}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
                "total_pages": {"type": "integer"}
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
