// Package docs registers the swagger document served under /swagger.
// Maintained by hand; regenerate with swag init once the annotation
// set settles.
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
        "/auth/login": {
            "post": {
                "description": "Exchanges credentials for a session; the response asks the browser for a hard navigation to /leagues",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "responses": {}
            }
        },
        "/auth/register": {
            "post": {
                "description": "Creates an account; no token is returned, the caller must then log in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register",
                "responses": {}
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Validates the persisted token against the backend; an invalid session is purged and sent back to the landing route",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Who am I",
                "responses": {}
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Purges both persistence locations and sends the browser back to the landing route",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log out",
                "responses": {}
            }
        },
        "/leagues": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Lists the leagues the authenticated user belongs to, with roles",
                "produces": ["application/json"],
                "tags": ["leagues"],
                "summary": "My leagues",
                "responses": {}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates a league; the creator becomes its admin upstream",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["leagues"],
                "summary": "Create a league",
                "responses": {}
            }
        },
        "/leagues/join": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Joins a league via the composite \"leagueId:code\" invite string shared out-of-band",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["leagues"],
                "summary": "Join a league",
                "responses": {}
            }
        },
        "/leagues/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "League metadata and member list, fetched together; pages degrade on error instead of redirecting",
                "produces": ["application/json"],
                "tags": ["leagues"],
                "summary": "League detail",
                "responses": {}
            }
        },
        "/races": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Lists the race catalog for a season; defaults to the current year",
                "produces": ["application/json"],
                "tags": ["races"],
                "summary": "Season races",
                "responses": {}
            }
        },
        "/races/import/{slug}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Imports a race from ProCyclingStats by slug (league admin feature)",
                "produces": ["application/json"],
                "tags": ["races"],
                "summary": "Import a race",
                "responses": {}
            }
        },
        "/races/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Race metadata including stages for stage races",
                "produces": ["application/json"],
                "tags": ["races"],
                "summary": "Race detail",
                "responses": {}
            }
        },
        "/races/{id}/startlist": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Riders registered for the race; the search filter is a pure projection and never touches selection state",
                "produces": ["application/json"],
                "tags": ["races"],
                "summary": "Race startlist",
                "responses": {}
            }
        },
        "/races/{id}/bet": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Race, startlist and the caller's picker in one parallel load; missing startlist or prediction degrade to empty",
                "produces": ["application/json"],
                "tags": ["predictions"],
                "summary": "Bet page",
                "responses": {}
            }
        },
        "/races/{id}/bet/toggle": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "One rider click: toggles the winner/bonus slots per the bet page rules; rejected once confirmed or once the race started",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["predictions"],
                "summary": "Toggle a rider in the picker",
                "responses": {}
            }
        },
        "/races/{id}/predictions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Everyone's predictions for a race, optionally scoped to a league",
                "produces": ["application/json"],
                "tags": ["predictions"],
                "summary": "Race predictions",
                "responses": {}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates or updates the caller's winner/bonus bet for a classic race",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["predictions"],
                "summary": "Submit a prediction",
                "responses": {}
            }
        },
        "/races/{id}/score-predictions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Triggers the backend scoring run (league admin feature)",
                "produces": ["application/json"],
                "tags": ["predictions"],
                "summary": "Score a race's predictions",
                "responses": {}
            }
        },
        "/predictions/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Removes the caller's bet; the confirm flag is the UI's confirmation step",
                "produces": ["application/json"],
                "tags": ["predictions"],
                "summary": "Delete a prediction",
                "responses": {}
            }
        },
        "/races/{id}/fantasy-bet": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Race, startlist and the caller's team builder in one parallel load; only grand tours have one",
                "produces": ["application/json"],
                "tags": ["fantasy"],
                "summary": "Fantasy bet page",
                "responses": {}
            }
        },
        "/races/{id}/fantasy-bet/toggle": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "One rider click: removes a rostered rider, adds a new one while a slot is free, does nothing on a full roster",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["fantasy"],
                "summary": "Toggle a rider in the team builder",
                "responses": {}
            }
        },
        "/races/{id}/fantasy-teams": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Everyone's fantasy teams for a grand tour, optionally scoped to a league",
                "produces": ["application/json"],
                "tags": ["fantasy"],
                "summary": "Race fantasy teams",
                "responses": {}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates or updates the caller's eight rider team for a grand tour",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["fantasy"],
                "summary": "Submit a fantasy team",
                "responses": {}
            }
        },
        "/races/{id}/score-fantasy-teams": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Triggers the backend scoring run (league admin feature)",
                "produces": ["application/json"],
                "tags": ["fantasy"],
                "summary": "Score a race's fantasy teams",
                "responses": {}
            }
        },
        "/fantasy-teams/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Removes the caller's team; the confirm flag is the UI's confirmation step",
                "produces": ["application/json"],
                "tags": ["fantasy"],
                "summary": "Delete a fantasy team",
                "responses": {}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8082",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Bet Cycling Friends Gateway API",
	Description:      "API passerelle pour les paris cyclistes entre amis",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
