// Package docs holds the Swagger 2.0 document served at /swagger, kept in step with the handler annotations.
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
        "/api/invoices": {
            "get": {
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "List invoices",
                "parameters": [
                    {"type": "integer", "description": "Page number, zero-based", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "size", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "property[,asc|desc]", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Invoice"}},
                        "headers": {
                            "Link": {"type": "string"},
                            "X-Total-Count": {"type": "integer"}
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpapi.problem"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Update invoice",
                "parameters": [
                    {"description": "Invoice with id", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpapi.invoicePayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Invoice"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpapi.problem"}},
                    "404": {"description": "Not Found"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Create invoice",
                "parameters": [
                    {"description": "Invoice without id", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpapi.invoicePayload"}}
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/domain.Invoice"},
                        "headers": {"Location": {"type": "string", "description": "/api/invoices/{id}"}}
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpapi.problem"}}
                }
            }
        },
        "/api/invoices/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Get invoice by id",
                "parameters": [
                    {"type": "integer", "description": "Invoice ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Invoice"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpapi.problem"}},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["invoices"],
                "summary": "Delete invoice",
                "parameters": [
                    {"type": "integer", "description": "Invoice ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpapi.problem"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpapi.problem"}}
                }
            }
        },
        "/api/shipments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["shipments"],
                "summary": "List shipments",
                "parameters": [
                    {"type": "integer", "description": "Page number, zero-based", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "size", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "property[,asc|desc]", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Shipment"}},
                        "headers": {
                            "Link": {"type": "string"},
                            "X-Total-Count": {"type": "integer"}
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpapi.problem"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["shipments"],
                "summary": "Update shipment",
                "parameters": [
                    {"description": "Shipment with id", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpapi.shipmentPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Shipment"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpapi.problem"}},
                    "404": {"description": "Not Found"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["shipments"],
                "summary": "Create shipment",
                "parameters": [
                    {"description": "Shipment without id", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpapi.shipmentPayload"}}
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/domain.Shipment"},
                        "headers": {"Location": {"type": "string", "description": "/api/shipments/{id}"}}
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpapi.problem"}}
                }
            }
        },
        "/api/shipments/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["shipments"],
                "summary": "Get shipment by id",
                "parameters": [
                    {"type": "integer", "description": "Shipment ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Shipment"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpapi.problem"}},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["shipments"],
                "summary": "Delete shipment",
                "parameters": [
                    {"type": "integer", "description": "Shipment ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpapi.problem"}}
                }
            }
        },
        "/management/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["management"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "domain.Invoice": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "code": {"type": "string"},
                "date": {"type": "string"},
                "details": {"type": "string"},
                "status": {"type": "string", "enum": ["ISSUED", "PAID", "CANCELLED"]},
                "paymentMethod": {"type": "string", "enum": ["CREDIT_CARD", "CASH_ON_DELIVERY", "PAYPAL"]},
                "paymentDate": {"type": "string"},
                "paymentAmount": {"type": "number"},
                "shipments": {"type": "array", "items": {"$ref": "#/definitions/domain.Shipment"}}
            }
        },
        "domain.Shipment": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "trackingCode": {"type": "string"},
                "date": {"type": "string"},
                "details": {"type": "string"},
                "invoice": {"$ref": "#/definitions/domain.Invoice"}
            }
        },
        "httpapi.fieldError": {
            "type": "object",
            "properties": {
                "objectName": {"type": "string"},
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "httpapi.invoicePayload": {
            "type": "object",
            "required": ["code", "date", "status", "paymentMethod", "paymentDate", "paymentAmount"],
            "properties": {
                "id": {"type": "integer"},
                "code": {"type": "string"},
                "date": {"type": "string"},
                "details": {"type": "string"},
                "status": {"type": "string", "enum": ["ISSUED", "PAID", "CANCELLED"]},
                "paymentMethod": {"type": "string", "enum": ["CREDIT_CARD", "CASH_ON_DELIVERY", "PAYPAL"]},
                "paymentDate": {"type": "string"},
                "paymentAmount": {"type": "number"}
            }
        },
        "httpapi.invoiceRef": {
            "type": "object",
            "required": ["id"],
            "properties": {
                "id": {"type": "integer"}
            }
        },
        "httpapi.problem": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "entityName": {"type": "string"},
                "errorKey": {"type": "string"},
                "message": {"type": "string"},
                "params": {"type": "string"},
                "fieldErrors": {"type": "array", "items": {"$ref": "#/definitions/httpapi.fieldError"}}
            }
        },
        "httpapi.shipmentPayload": {
            "type": "object",
            "required": ["date", "invoice"],
            "properties": {
                "id": {"type": "integer"},
                "trackingCode": {"type": "string"},
                "date": {"type": "string"},
                "details": {"type": "string"},
                "invoice": {"$ref": "#/definitions/httpapi.invoiceRef"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.0.1",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "kinvoice API",
	Description:      "Счета и отгрузки",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
