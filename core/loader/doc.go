// Package loader registers HTTP features and loads the enabled ones onto the router.
//
// Each feature implements:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps registration order and stops at the first feature that fails to load.
package loader
