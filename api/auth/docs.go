// Package auth registers the OpenAPI document served under /swagger/.
//
// The template mirrors the swag annotations on the handlers in
// internal/auth/http. Regenerate with `go generate ./internal/auth/http`,
// which replaces this file with swag output.
package auth

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/docit"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "description": "Returns a token, or {mfaRequired, userId} when the account has MFA enabled.\nIn the latter case no token is issued until /auth/mfa/verify-mfa succeeds.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in with a password",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/authsdk.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Token or MFA challenge", "schema": {"$ref": "#/definitions/authsdk.LoginResponse"}},
                    "400": {"description": "Missing field", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}}
                }
            }
        },
        "/auth/mfa/disable": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Turns MFA off after checking a current TOTP code. Recovery codes are discarded.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["MFA"],
                "summary": "Disable MFA",
                "parameters": [
                    {
                        "description": "Current code",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/authsdk.MFACodeRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "MFA disabled", "schema": {"$ref": "#/definitions/authsdk.MessageResponse"}},
                    "400": {"description": "MFA not enabled", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "401": {"description": "Invalid MFA code or token not provided", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "403": {"description": "Invalid token", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}}
                }
            }
        },
        "/auth/mfa/generate-secret": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Generates a TOTP secret for the authenticated user. The secret is held server side\nuntil confirmed with /auth/mfa/verify-setup or until it expires. Calling again replaces it.",
                "produces": ["application/json"],
                "tags": ["MFA"],
                "summary": "Start TOTP enrollment",
                "responses": {
                    "200": {"description": "Secret and otpauth URL", "schema": {"$ref": "#/definitions/authsdk.GenerateSecretResponse"}},
                    "400": {"description": "MFA already enabled", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "401": {"description": "Token not provided", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "403": {"description": "Invalid token", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}}
                }
            }
        },
        "/auth/mfa/recovery-codes": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Replaces every recovery code after checking a current TOTP code.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["MFA"],
                "summary": "Regenerate recovery codes",
                "parameters": [
                    {
                        "description": "Current code",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/authsdk.MFACodeRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "New recovery codes", "schema": {"$ref": "#/definitions/authsdk.RecoveryCodesResponse"}},
                    "400": {"description": "MFA not enabled", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "401": {"description": "Invalid MFA code or token not provided", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "403": {"description": "Invalid token", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}}
                }
            }
        },
        "/auth/mfa/status-mfa": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Reports whether MFA is enabled for the authenticated user.",
                "produces": ["application/json"],
                "tags": ["MFA"],
                "summary": "MFA status",
                "responses": {
                    "200": {"description": "MFA status", "schema": {"$ref": "#/definitions/authsdk.MFAStatusResponse"}},
                    "401": {"description": "Token not provided", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "403": {"description": "Invalid token", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}}
                }
            }
        },
        "/auth/mfa/verify-mfa": {
            "post": {
                "description": "Exchanges the userId from the login challenge and a current TOTP code for a token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Complete an MFA login",
                "parameters": [
                    {
                        "description": "Challenge response",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/authsdk.VerifyMFARequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Token", "schema": {"$ref": "#/definitions/authsdk.TokenResponse"}},
                    "400": {"description": "Missing field", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "401": {"description": "Invalid MFA code or MFA not enabled", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}}
                }
            }
        },
        "/auth/mfa/verify-recovery": {
            "post": {
                "description": "Burns one recovery code in place of a TOTP code. Each code works once.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Complete an MFA login with a recovery code",
                "parameters": [
                    {
                        "description": "Challenge response",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/authsdk.VerifyRecoveryRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Token", "schema": {"$ref": "#/definitions/authsdk.TokenResponse"}},
                    "400": {"description": "Missing field", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "401": {"description": "Invalid recovery code or MFA not enabled", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}}
                }
            }
        },
        "/auth/mfa/verify-setup": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Verifies a code against the pending secret, enables MFA and returns recovery codes.\nThe recovery codes are shown only in this response.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["MFA"],
                "summary": "Confirm TOTP enrollment",
                "parameters": [
                    {
                        "description": "Current code",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/authsdk.VerifySetupRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "MFA enabled", "schema": {"$ref": "#/definitions/authsdk.RecoveryCodesResponse"}},
                    "400": {"description": "Invalid code or no pending enrollment", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "401": {"description": "Token not provided", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "403": {"description": "Invalid token", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "description": "Creates an account. The caller must log in afterwards to obtain a token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Register a user",
                "parameters": [
                    {
                        "description": "Account details",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/authsdk.RegisterRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "User created", "schema": {"$ref": "#/definitions/authsdk.RegisterResponse"}},
                    "400": {"description": "Missing field", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "409": {"description": "Username or email already in use", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}}
                }
            }
        },
        "/livez": {
            "get": {
                "description": "Liveness probe endpoint returning basic service health status, uptime, and version information\nThis endpoint always returns 200 OK if the service is running. Also served at /VerifyHealth.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/authsdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Readiness probe endpoint returning service health status and checks for critical dependencies\nIncludes uptime, version, and status of the database",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/authsdk.HealthResponse"}},
                    "503": {"description": "status, uptime, version, checks - service not ready", "schema": {"$ref": "#/definitions/authsdk.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "authsdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid credentials"}
            }
        },
        "authsdk.GenerateSecretResponse": {
            "type": "object",
            "properties": {
                "otpauthUrl": {"type": "string", "example": "otpauth://totp/Doc-IT:alice@example.com?algorithm=SHA1&digits=6&issuer=Doc-IT&period=30&secret=JBSWY3DPEHPK3PXP"},
                "secretKey": {"type": "string", "example": "JBSWY3DPEHPK3PXP"}
            }
        },
        "authsdk.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {"type": "string", "example": "ok"}
            }
        },
        "authsdk.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {"description": "Checks is only present on readiness responses", "allOf": [{"$ref": "#/definitions/authsdk.HealthChecks"}]},
                "status": {"description": "Status is \"ok\" or \"degraded\"", "type": "string", "example": "ok"},
                "uptime": {"description": "Uptime is the service uptime as a duration string", "type": "string", "example": "1h2m3s"},
                "version": {"description": "Version is the build version", "type": "string", "example": "dev"}
            }
        },
        "authsdk.LoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string", "example": "pw123"},
                "username": {"type": "string", "example": "alice"}
            }
        },
        "authsdk.LoginResponse": {
            "type": "object",
            "properties": {
                "mfaRequired": {"type": "boolean", "example": true},
                "token": {"type": "string", "example": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."},
                "userId": {"type": "integer", "example": 1}
            }
        },
        "authsdk.MFACodeRequest": {
            "type": "object",
            "properties": {
                "mfaCode": {"type": "string", "example": "123456"}
            }
        },
        "authsdk.MFAStatusResponse": {
            "type": "object",
            "properties": {
                "enabled": {"type": "boolean", "example": true},
                "recoveryCodesRemaining": {"type": "integer", "example": 10}
            }
        },
        "authsdk.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "MFA disabled"}
            }
        },
        "authsdk.RecoveryCodesResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "MFA enabled"},
                "recoveryCodes": {"type": "array", "items": {"type": "string"}}
            }
        },
        "authsdk.RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "alice@example.com"},
                "password": {"type": "string", "example": "pw123"},
                "username": {"type": "string", "example": "alice"}
            }
        },
        "authsdk.RegisterResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "user created"},
                "userId": {"type": "integer", "example": 1}
            }
        },
        "authsdk.TokenResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string", "example": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."}
            }
        },
        "authsdk.VerifyMFARequest": {
            "type": "object",
            "properties": {
                "mfaCode": {"type": "string", "example": "123456"},
                "userId": {"type": "integer", "example": 1}
            }
        },
        "authsdk.VerifyRecoveryRequest": {
            "type": "object",
            "properties": {
                "recoveryCode": {"type": "string", "example": "ABCDE-FGHJK"},
                "userId": {"type": "integer", "example": 1}
            }
        },
        "authsdk.VerifySetupRequest": {
            "type": "object",
            "properties": {
                "secret": {"type": "string", "example": "JBSWY3DPEHPK3PXP"},
                "token": {"type": "string", "example": "123456"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT access token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Doc-IT Authentication API",
	Description:      "Account registration, password login and TOTP multi-factor authentication for Doc-IT.\n\nTokens are HS256 signed JWTs sent as \"Authorization: Bearer {token}\".",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
