// Package docs contiene la definición OpenAPI de la API, registrada en swag.
// Se regenera con: swag init -g cmd/api/main.go -o docs
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
        "/api/products": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Listar productos activos",
                "parameters": [
                    {"type": "string", "description": "Busca en código, nombre o categoría", "name": "q", "in": "query"},
                    {"type": "boolean", "description": "Solo stock <= mínimo", "name": "low_stock", "in": "query"},
                    {"type": "integer", "default": 20, "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProductListResponse"}}}
            },
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Crear producto",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateProductRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/products/{code}": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Obtener producto por código",
                "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProductResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Actualizar producto",
                "parameters": [
                    {"type": "string", "name": "code", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateProductRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProductResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/products/{code}/adjustments": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["inventory"],
                "summary": "Ajuste manual de stock",
                "parameters": [
                    {"type": "string", "name": "code", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AdjustStockRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AdjustStockResponse"}},
                    "409": {"description": "NEGATIVE_STOCK", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/products/{code}/movements": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["inventory"],
                "summary": "Kardex del producto",
                "parameters": [
                    {"type": "string", "name": "code", "in": "path", "required": true},
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MovementListResponse"}}}
            }
        },
        "/api/sales": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sales"],
                "summary": "Registrar venta",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterSaleRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.SaleResponse"}},
                    "409": {"description": "INSUFFICIENT_STOCK", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "422": {"description": "PRODUCT_UNAVAILABLE", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/sales/{id}": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["sales"],
                "summary": "Obtener venta",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SaleResponse"}}}
            }
        },
        "/api/sales/{id}/receipt": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/pdf"],
                "tags": ["sales"],
                "summary": "Comprobante de venta en PDF",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/api/receptions": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["receptions"],
                "summary": "Registrar recepción",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterReceptionRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ReceptionResponse"}},
                    "400": {"description": "EMPTY_ORDER / INVALID_QUANTITY / VALIDATION", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "PURCHASE_ORDER_NOT_FOUND", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "CONFLICT: la orden de compra está anulada", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "422": {"description": "PRODUCT_UNAVAILABLE", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/reports/top-products": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Productos más vendidos",
                "parameters": [
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"},
                    {"type": "integer", "default": 10, "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.TopProductDTO"}}}}
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "dto.CreateProductRequest": {
            "type": "object",
            "required": ["code", "name", "category"],
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "category": {"type": "string"},
                "cost": {"type": "string", "example": "0.50"},
                "price": {"type": "string", "example": "1.00"},
                "min_stock": {"type": "integer"}
            }
        },
        "dto.UpdateProductRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "category": {"type": "string"},
                "cost": {"type": "string"},
                "price": {"type": "string"},
                "min_stock": {"type": "integer"}
            }
        },
        "dto.ProductResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "category": {"type": "string"},
                "cost": {"type": "string"},
                "price": {"type": "string"},
                "stock": {"type": "integer"},
                "min_stock": {"type": "integer"},
                "active": {"type": "boolean"},
                "created_at": {"type": "string"}
            }
        },
        "dto.ProductListResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.ProductResponse"}},
                "page": {"$ref": "#/definitions/dto.PageResponse"}
            }
        },
        "dto.PageResponse": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "dto.AdjustStockRequest": {
            "type": "object",
            "required": ["reason"],
            "properties": {
                "quantity": {"type": "integer"},
                "reason": {"type": "string"}
            }
        },
        "dto.AdjustStockResponse": {
            "type": "object",
            "properties": {
                "product_code": {"type": "string"},
                "stock": {"type": "integer"}
            }
        },
        "dto.MovementResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "operation_id": {"type": "string"},
                "product_code": {"type": "string"},
                "type": {"type": "string", "enum": ["ENTRADA", "SALIDA", "AJUSTE"]},
                "quantity": {"type": "integer"},
                "reason": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "dto.MovementListResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.MovementResponse"}},
                "page": {"$ref": "#/definitions/dto.PageResponse"}
            }
        },
        "dto.SaleLineRequest": {
            "type": "object",
            "required": ["product_code"],
            "properties": {
                "product_code": {"type": "string"},
                "quantity": {"type": "integer"},
                "unit_price": {"type": "string"}
            }
        },
        "dto.RegisterSaleRequest": {
            "type": "object",
            "required": ["payment_method"],
            "properties": {
                "payment_method": {"type": "string", "maxLength": 50, "example": "EFECTIVO", "description": "texto libre; Efectivo/Tarjeta/Transferencia se normalizan a mayúsculas"},
                "lines": {"type": "array", "items": {"$ref": "#/definitions/dto.SaleLineRequest"}}
            }
        },
        "dto.SaleLineResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "product_code": {"type": "string"},
                "product_name": {"type": "string"},
                "quantity": {"type": "integer"},
                "unit_price": {"type": "string"},
                "subtotal": {"type": "string"}
            }
        },
        "dto.SaleResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "created_at": {"type": "string"},
                "total": {"type": "string"},
                "status": {"type": "string"},
                "payment_method": {"type": "string"},
                "lines": {"type": "array", "items": {"$ref": "#/definitions/dto.SaleLineResponse"}}
            }
        },
        "dto.ReceptionLineRequest": {
            "type": "object",
            "required": ["product_code"],
            "properties": {
                "product_code": {"type": "string"},
                "quantity": {"type": "integer"}
            }
        },
        "dto.RegisterReceptionRequest": {
            "type": "object",
            "required": ["purchase_order_id", "invoice_ref"],
            "properties": {
                "purchase_order_id": {"type": "integer"},
                "invoice_ref": {"type": "string"},
                "lines": {"type": "array", "items": {"$ref": "#/definitions/dto.ReceptionLineRequest"}}
            }
        },
        "dto.ReceptionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "created_at": {"type": "string"},
                "purchase_order_id": {"type": "integer"},
                "invoice_ref": {"type": "string"},
                "lines": {"type": "array", "items": {"$ref": "#/definitions/dto.ReceptionLineRequest"}}
            }
        },
        "dto.TopProductDTO": {
            "type": "object",
            "properties": {
                "product_code": {"type": "string"},
                "product_name": {"type": "string"},
                "quantity_sold": {"type": "integer"},
                "revenue": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Papyros Backoffice API",
	Description:      "Catálogo, kardex, ventas y recepciones de la papelería.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
