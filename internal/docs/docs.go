// Package docs registers the OpenAPI document served at /swagger. It is
// maintained by hand and lists routes only; the @Param and @Success
// annotations on the handlers are the reference for request and response
// shapes.
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
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a new user", "responses": {"201": {"description": "User created"}, "400": {"description": "Invalid input"}, "409": {"description": "Email already exists"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Log in", "responses": {"200": {"description": "Login successful"}, "401": {"description": "Invalid credentials"}}}},
        "/profile": {"get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Get user profile", "responses": {"200": {"description": "User profile"}}}},
        "/profile/budget": {"put": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Set monthly budget limit", "responses": {"200": {"description": "Updated profile"}}}},
        "/expenses": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["expenses"], "summary": "List expenses", "responses": {"200": {"description": "Paginated expenses"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["expenses"], "summary": "Create an expense", "responses": {"201": {"description": "Expense created"}}}
        },
        "/expenses/history": {"get": {"security": [{"BearerAuth": []}], "tags": ["expenses"], "summary": "Expense history", "responses": {"200": {"description": "Paginated expenses"}}}},
        "/expenses/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["expenses"], "summary": "Get expense", "responses": {"200": {"description": "Expense"}, "404": {"description": "Expense not found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["expenses"], "summary": "Update expense", "responses": {"200": {"description": "Updated expense"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["expenses"], "summary": "Delete expense", "responses": {"204": {"description": "Deleted"}}}
        },
        "/incomes": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["incomes"], "summary": "List incomes", "responses": {"200": {"description": "Paginated incomes"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["incomes"], "summary": "Create an income", "responses": {"201": {"description": "Income created"}}}
        },
        "/incomes/history": {"get": {"security": [{"BearerAuth": []}], "tags": ["incomes"], "summary": "Income history", "responses": {"200": {"description": "Paginated incomes"}}}},
        "/incomes/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["incomes"], "summary": "Get income", "responses": {"200": {"description": "Income"}, "404": {"description": "Income not found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["incomes"], "summary": "Update income", "responses": {"200": {"description": "Updated income"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["incomes"], "summary": "Delete income", "responses": {"204": {"description": "Deleted"}}}
        },
        "/summary": {"get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Financial summary", "responses": {"200": {"description": "Summary"}}}},
        "/expense-trends": {"get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Expense trends", "responses": {"200": {"description": "Trend report"}, "404": {"description": "No expense data"}}}},
        "/analysis": {"get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Income vs expense analysis", "responses": {"200": {"description": "Analysis"}, "404": {"description": "No financial data"}}}},
        "/export/{format}": {"get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Export transactions", "responses": {"200": {"description": "Report file"}}}},
        "/import-transactions": {"post": {"security": [{"BearerAuth": []}], "tags": ["import"], "summary": "Import bank statement", "responses": {"201": {"description": "Import committed"}, "413": {"description": "File too large"}}}},
        "/budget-alert": {"get": {"security": [{"BearerAuth": []}], "tags": ["budget"], "summary": "Budget alert", "responses": {"200": {"description": "Alert"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Fintrack API",
	Description:      "Fintrack is a personal finance tracker for expenses, incomes, budgets and bank statement imports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
