package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func registerSwaggerRoutes(r chi.Router) {
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	r.Get("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	r.Get("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Bank Ledger API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {"title": "Bank Ledger API", "version": "1.0.0"},
  "paths": {
    "/api/v1/accounts/my": {"post": {"summary": "Open an account for the caller", "tags": ["accounts"], "security": [{"bearerAuth": []}], "responses": {"201": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}}, "get": {"summary": "List the caller's accounts", "tags": ["accounts"], "security": [{"bearerAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}}},
    "/api/v1/accounts/my/{accountNumber}": {"get": {"summary": "Get one of the caller's accounts", "tags": ["accounts"], "security": [{"bearerAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}, "parameters": [{"name": "accountNumber", "in": "path", "required": true, "schema": {"type": "string"}}]}},
    "/api/v1/accounts/my/{accountNumber}/activate": {"put": {"summary": "Reactivate an expired account", "tags": ["accounts"], "security": [{"bearerAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}, "parameters": [{"name": "accountNumber", "in": "path", "required": true, "schema": {"type": "string"}}]}},
    "/api/v1/cards/my": {"get": {"summary": "List the caller's cards", "tags": ["cards"], "security": [{"bearerAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}}},
    "/api/v1/cards/my/{accountNumber}": {"post": {"summary": "Issue a card on the caller's account", "tags": ["cards"], "security": [{"bearerAuth": []}], "responses": {"201": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}, "parameters": [{"name": "accountNumber", "in": "path", "required": true, "schema": {"type": "string"}}]}},
    "/api/v1/cards/my/{cardNumber}/activate": {"put": {"summary": "Activate an expired card", "tags": ["cards"], "security": [{"bearerAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}, "parameters": [{"name": "cardNumber", "in": "path", "required": true, "schema": {"type": "string"}}]}},
    "/api/v1/cards/my/account/{accountNumber}": {"get": {"summary": "List cards on one of the caller's accounts", "tags": ["cards"], "security": [{"bearerAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}, "parameters": [{"name": "accountNumber", "in": "path", "required": true, "schema": {"type": "string"}}]}},
    "/api/v1/transactions/transfer": {"post": {"summary": "Card to card transfer", "tags": ["transactions"], "security": [{"bearerAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}, "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/TransferRequest"}}}}}},
    "/api/v1/transactions/my": {"get": {"summary": "List the caller's transactions", "tags": ["transactions"], "security": [{"bearerAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}}},
    "/api/v1/admin/customers": {"post": {"summary": "Register a customer", "tags": ["admin"], "security": [{"basicAuth": []}], "responses": {"201": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}, "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CreateCustomerRequest"}}}}}},
    "/api/v1/admin/customers/{customerId}": {"get": {"summary": "Get a customer", "tags": ["admin"], "security": [{"basicAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}, "parameters": [{"name": "customerId", "in": "path", "required": true, "schema": {"type": "string"}}]}},
    "/api/v1/admin/customers/{customerId}/evaluate": {"post": {"summary": "Run the suspicion check for a customer", "tags": ["admin"], "security": [{"basicAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}, "parameters": [{"name": "customerId", "in": "path", "required": true, "schema": {"type": "string"}}]}},
    "/api/v1/admin/customers/{customerId}/accounts": {"get": {"summary": "List a customer's accounts", "tags": ["admin"], "security": [{"basicAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}, "parameters": [{"name": "customerId", "in": "path", "required": true, "schema": {"type": "string"}}]}},
    "/api/v1/admin/customers/{customerId}/cards": {"get": {"summary": "List a customer's cards", "tags": ["admin"], "security": [{"basicAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}, "parameters": [{"name": "customerId", "in": "path", "required": true, "schema": {"type": "string"}}]}},
    "/api/v1/admin/customers/{customerId}/transactions": {"get": {"summary": "List a customer's transactions", "tags": ["admin"], "security": [{"basicAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}, "parameters": [{"name": "customerId", "in": "path", "required": true, "schema": {"type": "string"}}]}},
    "/api/v1/admin/accounts": {"post": {"summary": "Open an account for a customer", "tags": ["admin"], "security": [{"basicAuth": []}], "responses": {"201": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}, "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CreateAccountRequest"}}}}}, "get": {"summary": "List accounts, optionally by status", "tags": ["admin"], "security": [{"basicAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}}},
    "/api/v1/admin/accounts/{accountNumber}": {"get": {"summary": "Get an account", "tags": ["admin"], "security": [{"basicAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}, "parameters": [{"name": "accountNumber", "in": "path", "required": true, "schema": {"type": "string"}}]}},
    "/api/v1/admin/cards": {"get": {"summary": "List cards, optionally by status", "tags": ["admin"], "security": [{"basicAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}}},
    "/api/v1/admin/cards/{accountNumber}": {"post": {"summary": "Issue a card", "tags": ["admin"], "security": [{"basicAuth": []}], "responses": {"201": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}, "parameters": [{"name": "accountNumber", "in": "path", "required": true, "schema": {"type": "string"}}]}},
    "/api/v1/admin/cards/{cardNumber}/activate": {"put": {"summary": "Activate a card", "tags": ["admin"], "security": [{"basicAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}, "parameters": [{"name": "cardNumber", "in": "path", "required": true, "schema": {"type": "string"}}]}},
    "/api/v1/admin/cards/account/{accountNumber}": {"get": {"summary": "List cards on an account", "tags": ["admin"], "security": [{"basicAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}, "parameters": [{"name": "accountNumber", "in": "path", "required": true, "schema": {"type": "string"}}]}},
    "/api/v1/admin/transactions": {"get": {"summary": "List transactions", "tags": ["admin"], "security": [{"basicAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}}},
    "/api/v1/admin/transactions/deposit": {"post": {"summary": "Deposit onto a card's account", "tags": ["admin"], "security": [{"basicAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}, "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/DepositRequest"}}}}}},
    "/api/v1/admin/transactions/{transactionId}": {"get": {"summary": "Get a transaction", "tags": ["admin"], "security": [{"basicAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}, "parameters": [{"name": "transactionId", "in": "path", "required": true, "schema": {"type": "string"}}]}},
    "/api/v1/admin/jobs/settlement": {"post": {"summary": "Run settlement now", "tags": ["admin"], "security": [{"basicAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}}},
    "/api/v1/admin/jobs/expiry": {"post": {"summary": "Run the expiry sweep now", "tags": ["admin"], "security": [{"basicAuth": []}], "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}}, "4XX": {"description": "Error envelope"}}}}
  },
  "components": {
    "securitySchemes": {"bearerAuth": {"type": "http", "scheme": "bearer", "bearerFormat": "JWT"}, "basicAuth": {"type": "http", "scheme": "basic"}},
    "schemas": {
      "Envelope": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}, "code": {"type": "string"}, "data": {}, "errors": {"type": "array", "items": {"type": "string"}}}},
      "TransferRequest": {"type": "object", "required": ["debitCardNumber", "creditCardNumber", "amount"], "properties": {"debitCardNumber": {"type": "string"}, "creditCardNumber": {"type": "string"}, "amount": {"type": "string", "example": "25.00"}}},
      "DepositRequest": {"type": "object", "required": ["cardNumber", "amount"], "properties": {"cardNumber": {"type": "string"}, "amount": {"type": "string"}}},
      "CreateAccountRequest": {"type": "object", "required": ["customerId"], "properties": {"customerId": {"type": "integer", "format": "int64"}}},
      "CreateCustomerRequest": {"type": "object", "required": ["firstName", "lastName", "birthDate", "finCode", "phoneNumber"], "properties": {"firstName": {"type": "string"}, "lastName": {"type": "string"}, "birthDate": {"type": "string", "format": "date"}, "finCode": {"type": "string"}, "phoneNumber": {"type": "string"}}}
    }
  }
}`
