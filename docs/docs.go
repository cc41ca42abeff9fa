// Package docs registers the swagger document of the provider API
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
        "/emulators": {
            "get": {
                "description": "Returns the emulators of the active platform and whether a refresh is running",
                "produces": ["application/json"],
                "tags": ["emulators"],
                "summary": "Get emulators",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/devices.Snapshot"}}
                }
            }
        },
        "/emulators/refresh/{platform}": {
            "post": {
                "description": "Makes the platform active and reloads its emulators",
                "produces": ["application/json"],
                "tags": ["emulators"],
                "summary": "Refresh emulators",
                "parameters": [
                    {"type": "string", "description": "ios, android or harmony", "name": "platform", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/devices.Snapshot"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/router.JsonErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/router.JsonErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/router.JsonErrorResponse"}}
                }
            }
        },
        "/emulators/capabilities/{platform}": {
            "get": {
                "description": "Reports which emulator operations the platform supports",
                "produces": ["application/json"],
                "tags": ["emulators"],
                "summary": "Get platform capabilities",
                "parameters": [
                    {"type": "string", "description": "ios, android or harmony", "name": "platform", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "boolean"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/router.JsonErrorResponse"}}
                }
            }
        },
        "/emulators/{id}/start": {
            "post": {
                "produces": ["application/json"],
                "tags": ["emulators"],
                "summary": "Start emulator",
                "parameters": [
                    {"type": "string", "description": "Emulator ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.JsonResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/router.JsonErrorResponse"}}
                }
            }
        },
        "/emulators/{id}/stop": {
            "post": {
                "produces": ["application/json"],
                "tags": ["emulators"],
                "summary": "Stop emulator",
                "parameters": [
                    {"type": "string", "description": "Emulator ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.JsonResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/router.JsonErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/router.JsonErrorResponse"}}
                }
            }
        },
        "/emulators/{id}/delete": {
            "post": {
                "description": "Deletes the emulator, does nothing on platforms without delete support",
                "produces": ["application/json"],
                "tags": ["emulators"],
                "summary": "Delete emulator",
                "parameters": [
                    {"type": "string", "description": "Emulator ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.JsonResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/router.JsonErrorResponse"}}
                }
            }
        },
        "/emulators/{id}/wipe": {
            "post": {
                "description": "Wipes the emulator user data, does nothing on platforms without wipe support",
                "produces": ["application/json"],
                "tags": ["emulators"],
                "summary": "Wipe emulator data",
                "parameters": [
                    {"type": "string", "description": "Emulator ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.JsonResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/router.JsonErrorResponse"}}
                }
            }
        },
        "/emulators/{id}/screenshot": {
            "post": {
                "produces": ["application/json"],
                "tags": ["emulators"],
                "summary": "Take emulator screenshot",
                "parameters": [
                    {"type": "string", "description": "Emulator ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.ScreenshotResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/router.JsonErrorResponse"}}
                }
            }
        },
        "/usb-devices": {
            "get": {
                "description": "Lists the physical devices attached to the host",
                "produces": ["application/json"],
                "tags": ["usb-devices"],
                "summary": "Get USB devices",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.USBDevice"}}}
                }
            }
        },
        "/logcat/{id}": {
            "get": {
                "description": "Returns the last captured logcat lines of an emulator",
                "produces": ["application/json"],
                "tags": ["logcat"],
                "summary": "Get logcat lines",
                "parameters": [
                    {"type": "string", "description": "AVD name", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Number of lines, 1000 by default", "name": "lines", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.LogcatResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/router.JsonErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/router.JsonErrorResponse"}}
                }
            }
        },
        "/logcat/{id}/start": {
            "post": {
                "description": "Streams the logcat of a running Android emulator to a process log",
                "produces": ["application/json"],
                "tags": ["logcat"],
                "summary": "Start logcat capture",
                "parameters": [
                    {"type": "string", "description": "AVD name", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.JsonResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/router.JsonErrorResponse"}},
                    "501": {"description": "Not Implemented", "schema": {"$ref": "#/definitions/router.JsonErrorResponse"}}
                }
            }
        },
        "/logcat/{id}/stop": {
            "post": {
                "produces": ["application/json"],
                "tags": ["logcat"],
                "summary": "Stop logcat capture",
                "parameters": [
                    {"type": "string", "description": "AVD name", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.JsonResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/router.JsonErrorResponse"}}
                }
            }
        },
        "/settings": {
            "get": {
                "description": "Returns the settings being edited and the recorded validation outcomes",
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Get settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.SettingsResponse"}}
                }
            },
            "patch": {
                "description": "Sets the provided fields, keys are the camelCase field names. Nothing is persisted until save.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Update settings",
                "parameters": [
                    {"description": "Fields to set", "name": "fields", "in": "body", "required": true, "schema": {"type": "object", "additionalProperties": true}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.SettingsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/router.JsonErrorResponse"}}
                }
            }
        },
        "/settings/validate": {
            "post": {
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Validate settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.SettingsResponse"}}
                }
            }
        },
        "/settings/validate/{field}": {
            "post": {
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Validate settings field",
                "parameters": [
                    {"type": "string", "description": "camelCase field name", "name": "field", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/validation.Outcome"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/router.JsonErrorResponse"}}
                }
            }
        },
        "/settings/save": {
            "post": {
                "description": "Validates every field and persists the settings only when all are valid",
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Save settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.SaveResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/router.SaveResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/router.JsonErrorResponse"}}
                }
            }
        },
        "/settings/load": {
            "post": {
                "description": "Reloads the persisted settings, discarding unsaved changes and validation outcomes",
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Load settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.SettingsResponse"}}
                }
            }
        },
        "/events": {
            "get": {
                "description": "Websocket stream of registry and settings notifications as JSON",
                "tags": ["events"],
                "summary": "Store events",
                "responses": {}
            }
        },
        "/logs": {
            "get": {
                "description": "Provides the last provider log lines as plain text response",
                "produces": ["text/plain"],
                "tags": ["provider-logs"],
                "summary": "Get provider logs",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "devices.Snapshot": {
            "type": "object",
            "properties": {
                "activePlatform": {"type": "string"},
                "devices": {"type": "array", "items": {"$ref": "#/definitions/models.VirtualDevice"}},
                "loading": {"type": "boolean"}
            }
        },
        "models.VirtualDevice": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "platform": {"type": "string"},
                "name": {"type": "string"},
                "deviceProfile": {"type": "string"},
                "osVersion": {"type": "string"},
                "status": {"type": "string"},
                "lastUsedAt": {"type": "string"}
            }
        },
        "models.USBDevice": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "name": {"type": "string"},
                "serial": {"type": "string"},
                "brand": {"type": "string"},
                "vendor_id": {"type": "string"},
                "product_id": {"type": "string"},
                "usb_debugging": {"type": "boolean"},
                "trusted": {"type": "boolean"}
            }
        },
        "router.JsonErrorResponse": {
            "type": "object",
            "properties": {
                "error_message": {"type": "string"},
                "event": {"type": "string"}
            }
        },
        "router.JsonResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "router.LogcatResponse": {
            "type": "object",
            "properties": {
                "lines": {"type": "array", "items": {"type": "string"}}
            }
        },
        "router.ScreenshotResponse": {
            "type": "object",
            "properties": {
                "path": {"type": "string"}
            }
        },
        "router.SettingsResponse": {
            "type": "object",
            "properties": {
                "errors": {"type": "object", "additionalProperties": {"$ref": "#/definitions/validation.Outcome"}},
                "settings": {"type": "object", "additionalProperties": true},
                "valid": {"type": "boolean"}
            }
        },
        "router.SaveResponse": {
            "type": "object",
            "properties": {
                "errors": {"type": "object", "additionalProperties": {"$ref": "#/definitions/validation.Outcome"}},
                "saved": {"type": "boolean"}
            }
        },
        "validation.Outcome": {
            "type": "object",
            "properties": {
                "reason": {"type": "string"},
                "valid": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "GADS emulator manager API",
	Description:      "Manages iOS simulators, Android emulators and HarmonyOS emulators on the provider host.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
