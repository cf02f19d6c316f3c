// Package docs holds the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g cmd/app/main.go -o docs
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
        "/api/v1/roulette/spin": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Escrows the stake and requests randomness. The batch settles asynchronously.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["roulette"],
                "summary": "Submit a batch of spins",
                "parameters": [
                    {"description": "Spin batch", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.SpinRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/handler.SpinResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/v1/roulette/settlements/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["roulette"],
                "summary": "Get a settlement",
                "parameters": [
                    {"type": "string", "description": "Settlement ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.SettlementResult"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/v1/roulette/stats": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["roulette"],
                "summary": "House ledger stats",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.StatsResponse"}}
                }
            }
        },
        "/api/v1/token/on-receive": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["token"],
                "summary": "Receive tokens",
                "parameters": [
                    {"description": "Transfer", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.OnReceiveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.OnReceiveResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.OnReceiveResponse"}}
                }
            }
        },
        "/api/v1/token/balance": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["token"],
                "summary": "Token balance",
                "parameters": [
                    {"type": "string", "name": "token_id", "in": "query", "required": true},
                    {"type": "string", "name": "account", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.BalanceResponse"}}
                }
            }
        },
        "/api/v1/payments/transfers": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "List payouts",
                "parameters": [
                    {"type": "string", "name": "recipient", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.TransferRecord"}}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}}
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Bet": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "example": "red"},
                "amount": {"type": "string", "example": "10"},
                "selector": {"type": "integer"}
            }
        },
        "domain.BetOutcome": {
            "type": "object",
            "properties": {
                "won": {"type": "boolean"},
                "number": {"type": "integer"},
                "red": {"type": "boolean"},
                "multiple": {"type": "integer"}
            }
        },
        "domain.PayoutAsset": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["native", "token"]},
                "token_id": {"type": "string"}
            }
        },
        "domain.SettlementResult": {
            "type": "object",
            "properties": {
                "settlement_id": {"type": "string"},
                "bettor": {"type": "string"},
                "state": {"type": "string"},
                "asset": {"$ref": "#/definitions/domain.PayoutAsset"},
                "stake": {"type": "string"},
                "payout": {"type": "string"},
                "outcomes": {"type": "array", "items": {"type": "array", "items": {"$ref": "#/definitions/domain.BetOutcome"}}},
                "error": {"type": "string"},
                "resolved_at": {"type": "string"}
            }
        },
        "domain.TransferRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "asset": {"$ref": "#/definitions/domain.PayoutAsset"},
                "recipient": {"type": "string"},
                "amount": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "handler.SpinRequest": {
            "type": "object",
            "required": ["bettor", "batch"],
            "properties": {
                "bettor": {"type": "string", "example": "alice.near"},
                "batch": {"type": "array", "items": {"type": "array", "items": {"$ref": "#/definitions/domain.Bet"}}},
                "asset": {"$ref": "#/definitions/domain.PayoutAsset"},
                "stake": {"type": "string", "example": "10"},
                "callback_budget": {"type": "integer"}
            }
        },
        "handler.SpinResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "settlement_id": {"type": "string"},
                "state": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "handler.StatsResponse": {
            "type": "object",
            "properties": {
                "spins_total": {"type": "string"},
                "bets_total": {"type": "string"},
                "house_balance": {"type": "string"},
                "payout_total": {"type": "string"},
                "house_balance_display": {"type": "string"},
                "payout_total_display": {"type": "string"}
            }
        },
        "handler.OnReceiveRequest": {
            "type": "object",
            "properties": {
                "token_id": {"type": "string"},
                "sender_id": {"type": "string"},
                "amount": {"type": "string", "example": "20"},
                "msg": {"type": "string"}
            }
        },
        "handler.OnReceiveResponse": {
            "type": "object",
            "properties": {
                "residual": {"type": "string"},
                "deposited": {"type": "boolean"},
                "settlement": {"type": "object"},
                "error": {"type": "string"}
            }
        },
        "handler.BalanceResponse": {
            "type": "object",
            "properties": {
                "token_id": {"type": "string"},
                "account": {"type": "string"},
                "balance": {"type": "string"}
            }
        },
        "handler.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Roulette House API",
	Description:      "Roulette settlement engine with an asynchronous randomness oracle.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
