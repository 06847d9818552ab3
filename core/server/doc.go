// Package server holds the HTTP server configuration.
//
// The Config struct defines the listen port, the API key guarding every route, the
// request body limit applied to uploaded tables and the read timeout. The start command
// turns it into fiber.Config.
package server
