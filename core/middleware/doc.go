// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key header or Bearer token) for every route
//     except the configured public prefixes.
//   - rayid: assigns each request a ray id, stores it for logger.WithRayID and echoes it
//     in the X-Ray-ID response header.
package middleware
